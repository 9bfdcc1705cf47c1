package service

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"lapados-backend/internal/db/query"
	"lapados-backend/internal/model"
	"lapados-backend/internal/repository"
	"lapados-backend/pkg/progression"
	"lapados-backend/utilities"
)

// BadgeEarnedEvent is published on the global bus whenever a badge is
// awarded. Listeners must not assume the originating transaction is
// still open.
type BadgeEarnedEvent struct {
	UserEmail string
	BadgeID   uint
	BadgeName string
}

// ProgressView is a progress record enriched with the derived XP fields
// clients render on the dashboard.
type ProgressView struct {
	model.UserProgress
	XPProgressPercent float64 `json:"xp_progress_percent"`
	XPToNextLevel     int     `json:"xp_to_next_level"`
}

// LeaderboardEntry is one row of the public leaderboard.
type LeaderboardEntry struct {
	Rank        int    `json:"rank"`
	UserEmail   string `json:"user_email"`
	FullName    string `json:"full_name"`
	TotalPoints int    `json:"total_points"`
	Level       int    `json:"level"`
}

type ProgressService interface {
	// EnsureForUser fetches the progress record, creating an empty one on
	// first access.
	EnsureForUser(email string) (*model.UserProgress, error)
	GetForUser(email string) (*ProgressView, error)
	// RecordDailyActivity counts today towards the user's streak and
	// re-evaluates badge criteria.
	RecordDailyActivity(email string) error
	Leaderboard(limit int) ([]LeaderboardEntry, error)

	// Admin surface. Normal mutation happens through the quiz and login
	// flows; these exist for corrections.
	GetByID(id uint) (*model.UserProgress, error)
	List(p query.Params) ([]model.UserProgress, error)
	Create(progress *model.UserProgress) (*model.UserProgress, error)
	Update(id uint, changes *model.UserProgress) (*model.UserProgress, error)
	Delete(id uint) error
}

type progressService struct {
	db           *gorm.DB
	progressRepo repository.ProgressRepository
	badgeRepo    repository.BadgeRepository
	userRepo     repository.UserRepository
	now          func() time.Time
}

// NewProgressService initializes the progression service. The clock is
// injectable for streak tests.
func NewProgressService(gdb *gorm.DB, progressRepo repository.ProgressRepository,
	badgeRepo repository.BadgeRepository, userRepo repository.UserRepository) ProgressService {
	return &progressService{
		db:           gdb,
		progressRepo: progressRepo,
		badgeRepo:    badgeRepo,
		userRepo:     userRepo,
		now:          time.Now,
	}
}

func (s *progressService) EnsureForUser(email string) (*model.UserProgress, error) {
	return ensureProgressTx(s.db, s.progressRepo, email)
}

// ensureProgressTx loads the progress row inside the caller's transaction,
// creating an empty one on first access.
func ensureProgressTx(tx *gorm.DB, progressRepo repository.ProgressRepository, email string) (*model.UserProgress, error) {
	progress, err := progressRepo.GetByEmailTx(tx, email)
	if err == nil {
		return progress, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	progress = &model.UserProgress{
		UserEmail:        email,
		CompletedModuloz: []uint{},
		EarnedBadges:     []uint{},
	}
	if err := tx.Create(progress).Error; err != nil {
		return nil, err
	}
	progress.Level = progression.LevelForPoints(0)
	return progress, nil
}

func (s *progressService) GetForUser(email string) (*ProgressView, error) {
	progress, err := s.EnsureForUser(email)
	if err != nil {
		return nil, err
	}
	return viewOf(progress), nil
}

func viewOf(p *model.UserProgress) *ProgressView {
	toNext := p.Level*progression.XPPerLevel - p.TotalPoints
	if toNext < 0 {
		toNext = 0
	}
	return &ProgressView{
		UserProgress:      *p,
		XPProgressPercent: progression.XPProgressPercent(p.TotalPoints),
		XPToNextLevel:     toNext,
	}
}

func (s *progressService) RecordDailyActivity(email string) error {
	var events []BadgeEarnedEvent
	err := s.db.Transaction(func(tx *gorm.DB) error {
		progress, err := ensureProgressTx(tx, s.progressRepo, email)
		if err != nil {
			return err
		}
		state := progress.State()
		state.UpdateStreak(s.now())

		earned, err := evaluateBadges(s.badgeRepo, &state, email)
		if err != nil {
			return err
		}
		events = earned

		progress.ApplyState(state)
		return s.progressRepo.SaveTx(tx, progress)
	})
	if err != nil {
		return err
	}
	publishBadgeEvents(events)
	return nil
}

// evaluateBadges mutates the state with any newly met criteria and returns
// the events to publish once the surrounding transaction commits.
func evaluateBadges(badgeRepo repository.BadgeRepository, state *progression.State, email string) ([]BadgeEarnedEvent, error) {
	badges, err := badgeRepo.GetAll()
	if err != nil {
		return nil, err
	}
	criteria := make([]progression.BadgeCriterion, 0, len(badges))
	byID := make(map[uint]model.Badge, len(badges))
	for _, b := range badges {
		criteria = append(criteria, b.Criterion())
		byID[b.ID] = b
	}
	var events []BadgeEarnedEvent
	for _, id := range progression.EvaluateBadges(state, criteria) {
		state.EarnedBadges = append(state.EarnedBadges, id)
		events = append(events, BadgeEarnedEvent{
			UserEmail: email,
			BadgeID:   id,
			BadgeName: byID[id].Name,
		})
	}
	return events, nil
}

func publishBadgeEvents(events []BadgeEarnedEvent) {
	for _, ev := range events {
		utilities.GlobalEventBus.Publish(utilities.EventBadgeEarned, ev)
	}
}

func (s *progressService) Leaderboard(limit int) ([]LeaderboardEntry, error) {
	rows, err := s.progressRepo.Leaderboard(limit)
	if err != nil {
		return nil, err
	}
	entries := make([]LeaderboardEntry, 0, len(rows))
	for i, row := range rows {
		entry := LeaderboardEntry{
			Rank:        i + 1,
			UserEmail:   row.UserEmail,
			TotalPoints: row.TotalPoints,
			Level:       row.Level,
		}
		if user, err := s.userRepo.GetByEmail(row.UserEmail); err == nil {
			entry.FullName = user.FullName
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (s *progressService) GetByID(id uint) (*model.UserProgress, error) {
	progress, err := s.progressRepo.GetByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return progress, err
}

func (s *progressService) List(p query.Params) ([]model.UserProgress, error) {
	rows, err := s.progressRepo.List(p)
	if err != nil {
		return nil, asValidation(err)
	}
	return rows, nil
}

func (s *progressService) Create(progress *model.UserProgress) (*model.UserProgress, error) {
	if progress.UserEmail == "" {
		return nil, fmt.Errorf("%w: user_email is required", ErrValidation)
	}
	if _, err := s.progressRepo.GetByEmail(progress.UserEmail); err == nil {
		return nil, fmt.Errorf("%w: progress already exists for %s", ErrConflict, progress.UserEmail)
	}
	progress.ID = 0
	if progress.CompletedModuloz == nil {
		progress.CompletedModuloz = []uint{}
	}
	if progress.EarnedBadges == nil {
		progress.EarnedBadges = []uint{}
	}
	if err := s.progressRepo.Create(progress); err != nil {
		return nil, err
	}
	progress.Level = progression.LevelForPoints(progress.TotalPoints)
	return progress, nil
}

// Update patches the XP and streak counters. Level stays derived and quiz
// history is never editable here.
func (s *progressService) Update(id uint, changes *model.UserProgress) (*model.UserProgress, error) {
	progress, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if changes.TotalPoints < 0 {
		return nil, fmt.Errorf("%w: total_points cannot be negative", ErrValidation)
	}
	progress.TotalPoints = changes.TotalPoints
	progress.CurrentStreak = changes.CurrentStreak
	progress.LongestStreak = changes.LongestStreak
	if changes.CompletedModuloz != nil {
		progress.CompletedModuloz = changes.CompletedModuloz
	}
	if changes.EarnedBadges != nil {
		progress.EarnedBadges = changes.EarnedBadges
	}
	if err := s.progressRepo.Save(progress); err != nil {
		return nil, err
	}
	return progress, nil
}

func (s *progressService) Delete(id uint) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}
	return s.progressRepo.Delete(id)
}
