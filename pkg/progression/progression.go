// Package progression holds the pure gamification rules of the platform:
// XP-to-level mapping, streak bookkeeping, quiz-completion application and
// badge criteria evaluation. It has no persistence concerns; callers map
// their stored records into a State, apply the rules and write the State
// back inside whatever transaction they run.
package progression

import (
	"errors"
	"time"
)

// XPPerLevel is the amount of XP between two consecutive levels.
const XPPerLevel = 200

// ErrAlreadyCompleted is returned when a quiz completion is applied for a
// modulo the user has already completed. XP is awarded at most once per
// (user, modulo) pair.
var ErrAlreadyCompleted = errors.New("modulo already completed")

// State is the mutable progression snapshot of a single user.
type State struct {
	TotalPoints      int
	CurrentStreak    int
	LongestStreak    int
	LastActivity     time.Time
	CompletedModuloz []uint
	EarnedBadges     []uint
	QuizHistory      []QuizResult
}

// QuizResult is one completed quiz in a user's history.
type QuizResult struct {
	ModuloID    uint
	Score       float64
	CompletedAt time.Time
}

// LevelForPoints derives the level from accumulated XP. Level is never
// stored; this is the single source of truth.
func LevelForPoints(points int) int {
	if points < 0 {
		return 1
	}
	return points/XPPerLevel + 1
}

// XPProgressPercent reports how far into the current level the given XP
// total is, clamped to [0,100].
func XPProgressPercent(points int) float64 {
	if points < 0 {
		return 0
	}
	level := LevelForPoints(points)
	inLevel := points - (level-1)*XPPerLevel
	pct := float64(inLevel) / float64(XPPerLevel) * 100
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// Completed reports whether the modulo is already in the completed set.
func (s *State) Completed(moduloID uint) bool {
	for _, id := range s.CompletedModuloz {
		if id == moduloID {
			return true
		}
	}
	return false
}

// HasBadge reports whether the badge has already been earned.
func (s *State) HasBadge(badgeID uint) bool {
	for _, id := range s.EarnedBadges {
		if id == badgeID {
			return true
		}
	}
	return false
}

// UpdateStreak records a qualifying daily activity at the given time.
// Same calendar day: streak unchanged. Exactly the previous calendar day:
// streak increments. Anything else (including the first activity ever):
// streak resets to 1. LongestStreak tracks the maximum reached.
func (s *State) UpdateStreak(now time.Time) {
	switch {
	case s.LastActivity.IsZero():
		s.CurrentStreak = 1
	case sameDay(s.LastActivity, now):
		// no change
	case sameDay(s.LastActivity.AddDate(0, 0, 1), now):
		s.CurrentStreak++
	default:
		s.CurrentStreak = 1
	}
	if s.CurrentStreak > s.LongestStreak {
		s.LongestStreak = s.CurrentStreak
	}
	s.LastActivity = now
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// ApplyQuizCompletion applies a finished quiz to the state: marks the modulo
// completed, appends the history entry, awards the XP and counts the day
// towards the streak. A repeat completion of an already-completed modulo is
// rejected with ErrAlreadyCompleted and leaves the state untouched.
func (s *State) ApplyQuizCompletion(moduloID uint, xpReward int, score float64, now time.Time) error {
	if s.Completed(moduloID) {
		return ErrAlreadyCompleted
	}
	s.CompletedModuloz = append(s.CompletedModuloz, moduloID)
	s.QuizHistory = append(s.QuizHistory, QuizResult{
		ModuloID:    moduloID,
		Score:       score,
		CompletedAt: now,
	})
	s.TotalPoints += xpReward
	s.UpdateStreak(now)
	return nil
}
