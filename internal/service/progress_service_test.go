package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lapados-backend/internal/model"
	"lapados-backend/pkg/progression"
)

func newProgressServiceAt(e *testEnv, now *time.Time) *progressService {
	svc := NewProgressService(e.db, e.progressRepo, e.badgeRepo, e.userRepo).(*progressService)
	svc.now = func() time.Time { return *now }
	return svc
}

func TestEnsureForUserCreatesOnce(t *testing.T) {
	e := newTestEnv(t)
	user := e.createUser(t, "new@example.com", model.RoleUser)
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	svc := newProgressServiceAt(e, &now)

	first, err := svc.EnsureForUser(user.Email)
	require.NoError(t, err)
	assert.Equal(t, 1, first.Level)
	assert.Zero(t, first.TotalPoints)

	second, err := svc.EnsureForUser(user.Email)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "repeat access reuses the row")
}

func TestGetForUserDerivedFields(t *testing.T) {
	e := newTestEnv(t)
	user := e.createUser(t, "new@example.com", model.RoleUser)
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	svc := newProgressServiceAt(e, &now)

	progress, err := svc.EnsureForUser(user.Email)
	require.NoError(t, err)
	progress.TotalPoints = 225
	require.NoError(t, e.progressRepo.Save(progress))

	view, err := svc.GetForUser(user.Email)
	require.NoError(t, err)
	assert.Equal(t, 2, view.Level)
	assert.InDelta(t, 12.5, view.XPProgressPercent, 0.001)
	assert.Equal(t, 175, view.XPToNextLevel)
}

func TestRecordDailyActivityStreaks(t *testing.T) {
	e := newTestEnv(t)
	user := e.createUser(t, "daily@example.com", model.RoleUser)
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	svc := newProgressServiceAt(e, &now)

	require.NoError(t, svc.RecordDailyActivity(user.Email))
	progress, err := e.progressRepo.GetByEmail(user.Email)
	require.NoError(t, err)
	assert.Equal(t, 1, progress.CurrentStreak)

	// Logging in again the same day changes nothing.
	now = now.Add(6 * time.Hour)
	require.NoError(t, svc.RecordDailyActivity(user.Email))
	progress, err = e.progressRepo.GetByEmail(user.Email)
	require.NoError(t, err)
	assert.Equal(t, 1, progress.CurrentStreak)

	// Next calendar day extends it.
	now = now.AddDate(0, 0, 1)
	require.NoError(t, svc.RecordDailyActivity(user.Email))
	progress, err = e.progressRepo.GetByEmail(user.Email)
	require.NoError(t, err)
	assert.Equal(t, 2, progress.CurrentStreak)

	// A gap resets to one but keeps the longest.
	now = now.AddDate(0, 0, 3)
	require.NoError(t, svc.RecordDailyActivity(user.Email))
	progress, err = e.progressRepo.GetByEmail(user.Email)
	require.NoError(t, err)
	assert.Equal(t, 1, progress.CurrentStreak)
	assert.Equal(t, 2, progress.LongestStreak)
}

func TestRecordDailyActivityAwardsStreakBadge(t *testing.T) {
	e := newTestEnv(t)
	user := e.createUser(t, "daily@example.com", model.RoleUser)
	require.NoError(t, e.badgeRepo.Create(&model.Badge{
		Name: "Three In A Row", CriteriaType: progression.CriteriaStreak, CriteriaValue: 3,
	}))
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	svc := newProgressServiceAt(e, &now)

	for i := 0; i < 3; i++ {
		require.NoError(t, svc.RecordDailyActivity(user.Email))
		now = now.AddDate(0, 0, 1)
	}

	progress, err := e.progressRepo.GetByEmail(user.Email)
	require.NoError(t, err)
	require.Len(t, progress.EarnedBadges, 1)
}

func TestLeaderboardOrdering(t *testing.T) {
	e := newTestEnv(t)
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	svc := newProgressServiceAt(e, &now)

	points := map[string]int{
		"bronze@example.com": 100,
		"gold@example.com":   900,
		"silver@example.com": 400,
	}
	for email, pts := range points {
		e.createUser(t, email, model.RoleUser)
		progress, err := svc.EnsureForUser(email)
		require.NoError(t, err)
		progress.TotalPoints = pts
		require.NoError(t, e.progressRepo.Save(progress))
	}

	entries, err := svc.Leaderboard(10)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "gold@example.com", entries[0].UserEmail)
	assert.Equal(t, "silver@example.com", entries[1].UserEmail)
	assert.Equal(t, "bronze@example.com", entries[2].UserEmail)
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, 5, entries[0].Level)

	top, err := svc.Leaderboard(1)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, "gold@example.com", top[0].UserEmail)
}
