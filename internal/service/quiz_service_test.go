package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"lapados-backend/internal/model"
	"lapados-backend/pkg/progression"
)

func newQuizServiceAt(e *testEnv, now time.Time) *quizService {
	svc := NewQuizService(e.db, e.attemptRepo, e.moduloRepo, e.progressRepo, e.badgeRepo).(*quizService)
	svc.now = func() time.Time { return now }
	return svc
}

func TestQuizPerfectRun(t *testing.T) {
	e := newTestEnv(t)
	user := e.createUser(t, "runner@example.com", model.RoleUser)
	modulo := e.twoQuestionModulo(t, 150)
	svc := newQuizServiceAt(e, time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC))

	view, err := svc.StartAttempt(user.Email, modulo.ID)
	require.NoError(t, err)
	assert.Equal(t, model.AttemptInProgress, view.Status)
	assert.Equal(t, 2, view.TotalQuestions)
	require.NotNil(t, view.Question)
	assert.Equal(t, -1, view.Question.CorrectAnswer, "answer key must not leak")
	assert.Empty(t, view.Question.Explanation)

	view, err = svc.SubmitAnswer(user.Email, view.SessionID, 0)
	require.NoError(t, err)
	assert.True(t, view.LastCorrect)
	assert.Equal(t, 0, view.CorrectAnswer, "grading reveals the answer")

	view, err = svc.Advance(user.Email, view.SessionID)
	require.NoError(t, err)
	assert.Equal(t, 1, view.QuestionIndex)

	view, err = svc.SubmitAnswer(user.Email, view.SessionID, 0)
	require.NoError(t, err)
	view, err = svc.Advance(user.Email, view.SessionID)
	require.NoError(t, err)

	assert.Equal(t, model.AttemptCompleted, view.Status)
	assert.Equal(t, 100.0, view.FinalScore)
	assert.Equal(t, 150, view.XPAwarded)
	assert.False(t, view.AlreadyCompleted)

	progress, err := e.progressRepo.GetByEmail(user.Email)
	require.NoError(t, err)
	assert.Equal(t, 150, progress.TotalPoints)
	assert.Equal(t, 1, progress.Level)
	assert.Equal(t, []uint{modulo.ID}, progress.CompletedModuloz)
	assert.Equal(t, 1, progress.CurrentStreak)
	require.Len(t, progress.QuizHistory, 1)
	assert.Equal(t, 100.0, progress.QuizHistory[0].Score)
}

func TestQuizAllWrongStillCompletes(t *testing.T) {
	e := newTestEnv(t)
	user := e.createUser(t, "runner@example.com", model.RoleUser)
	modulo := e.twoQuestionModulo(t, 100)
	svc := newQuizServiceAt(e, time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC))

	view, err := svc.StartAttempt(user.Email, modulo.ID)
	require.NoError(t, err)
	for i := 0; i < 2; i++ {
		view, err = svc.SubmitAnswer(user.Email, view.SessionID, 1)
		require.NoError(t, err)
		assert.False(t, view.LastCorrect)
		view, err = svc.Advance(user.Email, view.SessionID)
		require.NoError(t, err)
	}

	assert.Equal(t, model.AttemptCompleted, view.Status)
	assert.Equal(t, 0.0, view.FinalScore)
	assert.Equal(t, 100, view.XPAwarded, "completion XP does not depend on score")
}

func TestQuizEmptyModuloCompletesImmediately(t *testing.T) {
	e := newTestEnv(t)
	user := e.createUser(t, "runner@example.com", model.RoleUser)
	modulo := &model.Modulo{Title: "No Quiz Yet", XPReward: 50}
	require.NoError(t, e.moduloRepo.Create(modulo))
	svc := newQuizServiceAt(e, time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC))

	view, err := svc.StartAttempt(user.Email, modulo.ID)
	require.NoError(t, err)
	assert.Equal(t, model.AttemptCompleted, view.Status)
	assert.Equal(t, 0.0, view.FinalScore, "no questions means a zero score, never NaN")
	assert.Equal(t, 50, view.XPAwarded)
}

func TestQuizRepeatCompletionAwardsNoXP(t *testing.T) {
	e := newTestEnv(t)
	user := e.createUser(t, "runner@example.com", model.RoleUser)
	modulo := e.twoQuestionModulo(t, 150)
	svc := newQuizServiceAt(e, time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC))

	runThrough := func() *AttemptView {
		view, err := svc.StartAttempt(user.Email, modulo.ID)
		require.NoError(t, err)
		for view.Status == model.AttemptInProgress {
			view, err = svc.SubmitAnswer(user.Email, view.SessionID, 0)
			require.NoError(t, err)
			view, err = svc.Advance(user.Email, view.SessionID)
			require.NoError(t, err)
		}
		return view
	}

	first := runThrough()
	assert.Equal(t, 150, first.XPAwarded)

	second := runThrough()
	assert.True(t, second.AlreadyCompleted)
	assert.Equal(t, 0, second.XPAwarded)
	assert.Equal(t, 100.0, second.FinalScore, "the attempt itself still records its score")

	progress, err := e.progressRepo.GetByEmail(user.Email)
	require.NoError(t, err)
	assert.Equal(t, 150, progress.TotalPoints, "second completion is a no-op for XP")
	assert.Len(t, progress.QuizHistory, 1)
}

func TestQuizResumeActiveAttempt(t *testing.T) {
	e := newTestEnv(t)
	user := e.createUser(t, "runner@example.com", model.RoleUser)
	modulo := e.twoQuestionModulo(t, 150)
	svc := newQuizServiceAt(e, time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC))

	first, err := svc.StartAttempt(user.Email, modulo.ID)
	require.NoError(t, err)
	_, err = svc.SubmitAnswer(user.Email, first.SessionID, 0)
	require.NoError(t, err)

	resumed, err := svc.StartAttempt(user.Email, modulo.ID)
	require.NoError(t, err)
	assert.Equal(t, first.SessionID, resumed.SessionID, "starting again resumes the open attempt")
	assert.True(t, resumed.Answered)
}

func TestQuizSingleActiveAttemptPerModulo(t *testing.T) {
	e := newTestEnv(t)
	user := e.createUser(t, "runner@example.com", model.RoleUser)
	modulo := e.twoQuestionModulo(t, 150)
	svc := newQuizServiceAt(e, time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC))

	first, err := svc.StartAttempt(user.Email, modulo.ID)
	require.NoError(t, err)

	// A second insert for the same user and modulo hits the unique index
	// over in-progress attempts, so two racing starts cannot both create
	// a row.
	err = e.attemptRepo.Create(&model.QuizAttempt{
		SessionID: "racer", UserEmail: user.Email, ModuloID: modulo.ID,
		Status: model.AttemptInProgress,
	})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	// The start path recovers from losing that race by resuming the
	// attempt that won.
	stored, err := svc.createOrResume(&model.QuizAttempt{
		SessionID: "loser", UserEmail: user.Email, ModuloID: modulo.ID,
		Status: model.AttemptInProgress,
	})
	require.NoError(t, err)
	assert.Equal(t, first.SessionID, stored.SessionID)

	// Completed attempts never block a fresh start.
	require.NoError(t, e.db.Model(&model.QuizAttempt{}).
		Where("session_id = ?", first.SessionID).
		Update("status", model.AttemptCompleted).Error)
	fresh, err := svc.StartAttempt(user.Email, modulo.ID)
	require.NoError(t, err)
	assert.NotEqual(t, first.SessionID, fresh.SessionID)
}

func TestQuizAnswerValidation(t *testing.T) {
	e := newTestEnv(t)
	user := e.createUser(t, "runner@example.com", model.RoleUser)
	modulo := e.twoQuestionModulo(t, 150)
	svc := newQuizServiceAt(e, time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC))

	view, err := svc.StartAttempt(user.Email, modulo.ID)
	require.NoError(t, err)

	_, err = svc.SubmitAnswer(user.Email, view.SessionID, 5)
	assert.ErrorIs(t, err, ErrValidation, "out-of-range answer index")
	_, err = svc.SubmitAnswer(user.Email, view.SessionID, -1)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Advance(user.Email, view.SessionID)
	assert.ErrorIs(t, err, ErrValidation, "cannot advance before answering")

	_, err = svc.SubmitAnswer(user.Email, view.SessionID, 0)
	require.NoError(t, err)
	_, err = svc.SubmitAnswer(user.Email, view.SessionID, 1)
	assert.ErrorIs(t, err, ErrConflict, "double submission of the same question")
}

func TestQuizAttemptOwnership(t *testing.T) {
	e := newTestEnv(t)
	owner := e.createUser(t, "owner@example.com", model.RoleUser)
	intruder := e.createUser(t, "intruder@example.com", model.RoleUser)
	modulo := e.twoQuestionModulo(t, 150)
	svc := newQuizServiceAt(e, time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC))

	view, err := svc.StartAttempt(owner.Email, modulo.ID)
	require.NoError(t, err)

	_, err = svc.GetAttempt(intruder.Email, view.SessionID)
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = svc.SubmitAnswer(intruder.Email, view.SessionID, 0)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestQuizCompletionAwardsBadges(t *testing.T) {
	e := newTestEnv(t)
	user := e.createUser(t, "runner@example.com", model.RoleUser)
	modulo := e.twoQuestionModulo(t, 150)
	require.NoError(t, e.badgeRepo.Create(&model.Badge{
		Name: "First Steps", CriteriaType: progression.CriteriaModulesCompleted, CriteriaValue: 1,
	}))
	require.NoError(t, e.badgeRepo.Create(&model.Badge{
		Name: "Point Collector", CriteriaType: progression.CriteriaPoints, CriteriaValue: 1000,
	}))
	svc := newQuizServiceAt(e, time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC))

	view, err := svc.StartAttempt(user.Email, modulo.ID)
	require.NoError(t, err)
	for view.Status == model.AttemptInProgress {
		view, err = svc.SubmitAnswer(user.Email, view.SessionID, 0)
		require.NoError(t, err)
		view, err = svc.Advance(user.Email, view.SessionID)
		require.NoError(t, err)
	}

	require.Len(t, view.EarnedBadges, 1, "only the satisfied badge is awarded")
	progress, err := e.progressRepo.GetByEmail(user.Email)
	require.NoError(t, err)
	assert.Equal(t, view.EarnedBadges, progress.EarnedBadges)
}

func TestQuizUnknownModulo(t *testing.T) {
	e := newTestEnv(t)
	user := e.createUser(t, "runner@example.com", model.RoleUser)
	svc := newQuizServiceAt(e, time.Now())

	_, err := svc.StartAttempt(user.Email, 999)
	assert.ErrorIs(t, err, ErrNotFound)
}
