package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"lapados-backend/internal/model"
	"lapados-backend/internal/repository"
	"lapados-backend/pkg/progression"
)

// AttemptView is the attempt state returned to the client after every quiz
// operation. The current question is sanitized; grading data never leaves
// the server while the attempt is in progress.
type AttemptView struct {
	SessionID        string              `json:"session_id"`
	ModuloID         uint                `json:"modulo_id"`
	Status           string              `json:"status"`
	QuestionIndex    int                 `json:"question_index"`
	TotalQuestions   int                 `json:"total_questions"`
	Question         *model.QuizQuestion `json:"question,omitempty"`
	Answered         bool                `json:"answered"`
	LastCorrect      bool                `json:"last_correct"`
	Explanation      string              `json:"explanation,omitempty"`
	CorrectAnswer    int                 `json:"correct_answer"`
	FinalScore       float64             `json:"final_score"`
	XPAwarded        int                 `json:"xp_awarded"`
	AlreadyCompleted bool                `json:"already_completed"`
	EarnedBadges     []uint              `json:"earned_badges,omitempty"`
}

type QuizService interface {
	// StartAttempt resumes the active attempt for the modulo or creates a
	// fresh one. A modulo without questions completes immediately at 0%.
	StartAttempt(userEmail string, moduloID uint) (*AttemptView, error)
	// SubmitAnswer grades the current question. Answering an already-answered
	// question is a conflict; the client must advance first.
	SubmitAnswer(userEmail, sessionID string, answerIndex int) (*AttemptView, error)
	// Advance moves to the next question, or finishes the attempt when the
	// last question has been answered.
	Advance(userEmail, sessionID string) (*AttemptView, error)
	GetAttempt(userEmail, sessionID string) (*AttemptView, error)
}

type quizService struct {
	db           *gorm.DB
	attemptRepo  repository.AttemptRepository
	moduloRepo   repository.ModuloRepository
	progressRepo repository.ProgressRepository
	badgeRepo    repository.BadgeRepository
	now          func() time.Time
}

func NewQuizService(gdb *gorm.DB, attemptRepo repository.AttemptRepository,
	moduloRepo repository.ModuloRepository, progressRepo repository.ProgressRepository,
	badgeRepo repository.BadgeRepository) QuizService {
	return &quizService{
		db:           gdb,
		attemptRepo:  attemptRepo,
		moduloRepo:   moduloRepo,
		progressRepo: progressRepo,
		badgeRepo:    badgeRepo,
		now:          time.Now,
	}
}

func (s *quizService) StartAttempt(userEmail string, moduloID uint) (*AttemptView, error) {
	modulo, err := s.moduloRepo.GetByID(moduloID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if attempt, err := s.attemptRepo.GetActive(userEmail, moduloID); err != nil {
		return nil, err
	} else if attempt != nil {
		return s.view(attempt, modulo, nil, 0, false), nil
	}

	attempt := &model.QuizAttempt{
		SessionID: uuid.New().String(),
		UserEmail: userEmail,
		ModuloID:  moduloID,
		Status:    model.AttemptInProgress,
	}
	stored, err := s.createOrResume(attempt)
	if err != nil {
		return nil, err
	}
	if stored.SessionID != attempt.SessionID {
		return s.view(stored, modulo, nil, 0, false), nil
	}

	// A quiz with no questions finishes on the spot: 0% score, no division
	// by the question count anywhere.
	if len(modulo.QuizQuestions) == 0 {
		return s.complete(attempt, modulo)
	}
	return s.view(attempt, modulo, nil, 0, false), nil
}

// createOrResume inserts the fresh attempt. The unique index over
// in-progress attempts turns a concurrent start into a duplicate-key
// error, in which case the attempt that won the race is returned instead.
func (s *quizService) createOrResume(attempt *model.QuizAttempt) (*model.QuizAttempt, error) {
	err := s.attemptRepo.Create(attempt)
	if err == nil {
		return attempt, nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		active, activeErr := s.attemptRepo.GetActive(attempt.UserEmail, attempt.ModuloID)
		if activeErr == nil && active != nil {
			return active, nil
		}
	}
	return nil, err
}

func (s *quizService) SubmitAnswer(userEmail, sessionID string, answerIndex int) (*AttemptView, error) {
	attempt, modulo, err := s.load(userEmail, sessionID)
	if err != nil {
		return nil, err
	}
	if attempt.Status != model.AttemptInProgress {
		return nil, fmt.Errorf("%w: attempt already completed", ErrConflict)
	}
	if attempt.Answered {
		return nil, fmt.Errorf("%w: question already answered", ErrConflict)
	}
	questions := modulo.QuizQuestions
	if attempt.QuestionIndex >= len(questions) {
		return nil, fmt.Errorf("%w: no current question", ErrConflict)
	}
	q := questions[attempt.QuestionIndex]
	if answerIndex < 0 || answerIndex >= len(q.Options) {
		return nil, fmt.Errorf("%w: answer index out of range", ErrValidation)
	}

	attempt.Answered = true
	attempt.LastCorrect = answerIndex == q.CorrectAnswer
	if attempt.LastCorrect {
		attempt.Score++
	}
	if err := s.attemptRepo.Save(attempt); err != nil {
		return nil, err
	}
	// Once answered, the grading fields for this question are revealed.
	return s.view(attempt, modulo, &q, 0, false), nil
}

func (s *quizService) Advance(userEmail, sessionID string) (*AttemptView, error) {
	attempt, modulo, err := s.load(userEmail, sessionID)
	if err != nil {
		return nil, err
	}
	if attempt.Status != model.AttemptInProgress {
		return nil, fmt.Errorf("%w: attempt already completed", ErrConflict)
	}
	if !attempt.Answered {
		return nil, fmt.Errorf("%w: current question not answered", ErrValidation)
	}

	attempt.QuestionIndex++
	attempt.Answered = false
	attempt.LastCorrect = false

	if attempt.QuestionIndex >= len(modulo.QuizQuestions) {
		return s.complete(attempt, modulo)
	}
	if err := s.attemptRepo.Save(attempt); err != nil {
		return nil, err
	}
	return s.view(attempt, modulo, nil, 0, false), nil
}

func (s *quizService) GetAttempt(userEmail, sessionID string) (*AttemptView, error) {
	attempt, modulo, err := s.load(userEmail, sessionID)
	if err != nil {
		return nil, err
	}
	return s.view(attempt, modulo, nil, 0, false), nil
}

func (s *quizService) load(userEmail, sessionID string) (*model.QuizAttempt, *model.Modulo, error) {
	attempt, err := s.attemptRepo.GetBySessionID(sessionID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, ErrNotFound
	}
	if err != nil {
		return nil, nil, err
	}
	if attempt.UserEmail != userEmail {
		return nil, nil, ErrForbidden
	}
	modulo, err := s.moduloRepo.GetByID(attempt.ModuloID)
	if err != nil {
		return nil, nil, err
	}
	return attempt, modulo, nil
}

// complete finishes the attempt and applies the result to the user's
// progression in one transaction. Completing a modulo a second time is a
// no-op for XP; the attempt still records its final score.
func (s *quizService) complete(attempt *model.QuizAttempt, modulo *model.Modulo) (*AttemptView, error) {
	total := len(modulo.QuizQuestions)
	score := 0.0
	if total > 0 {
		score = float64(attempt.Score) / float64(total) * 100
	}

	attempt.Status = model.AttemptCompleted
	attempt.FinalScore = score
	attempt.Answered = false

	var (
		events           []BadgeEarnedEvent
		xpAwarded        int
		alreadyCompleted bool
	)
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.attemptRepo.SaveTx(tx, attempt); err != nil {
			return err
		}
		progress, err := ensureProgressTx(tx, s.progressRepo, attempt.UserEmail)
		if err != nil {
			return err
		}
		state := progress.State()
		err = state.ApplyQuizCompletion(modulo.ID, modulo.XPReward, score, s.now())
		if errors.Is(err, progression.ErrAlreadyCompleted) {
			alreadyCompleted = true
			return nil
		}
		if err != nil {
			return err
		}
		xpAwarded = modulo.XPReward

		earned, err := evaluateBadges(s.badgeRepo, &state, attempt.UserEmail)
		if err != nil {
			return err
		}
		events = earned

		progress.ApplyState(state)
		return s.progressRepo.SaveTx(tx, progress)
	})
	if err != nil {
		return nil, err
	}
	publishBadgeEvents(events)

	view := s.view(attempt, modulo, nil, xpAwarded, alreadyCompleted)
	for _, ev := range events {
		view.EarnedBadges = append(view.EarnedBadges, ev.BadgeID)
	}
	return view, nil
}

// view builds the client-facing attempt state. answered is non-nil right
// after grading, which reveals that question's answer and explanation.
func (s *quizService) view(attempt *model.QuizAttempt, modulo *model.Modulo,
	answered *model.QuizQuestion, xpAwarded int, alreadyCompleted bool) *AttemptView {
	v := &AttemptView{
		SessionID:        attempt.SessionID,
		ModuloID:         attempt.ModuloID,
		Status:           attempt.Status,
		QuestionIndex:    attempt.QuestionIndex,
		TotalQuestions:   len(modulo.QuizQuestions),
		Answered:         attempt.Answered,
		LastCorrect:      attempt.LastCorrect,
		CorrectAnswer:    -1,
		FinalScore:       attempt.FinalScore,
		XPAwarded:        xpAwarded,
		AlreadyCompleted: alreadyCompleted,
	}
	if answered != nil {
		v.Explanation = answered.Explanation
		v.CorrectAnswer = answered.CorrectAnswer
	}
	if attempt.Status == model.AttemptInProgress && attempt.QuestionIndex < len(modulo.QuizQuestions) {
		q := modulo.QuizQuestions[attempt.QuestionIndex]
		q.CorrectAnswer = -1
		q.Explanation = ""
		v.Question = &q
	}
	return v
}
