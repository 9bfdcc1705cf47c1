package progression

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEvaluateBadgesSkipsEarned(t *testing.T) {
	s := State{TotalPoints: 500, EarnedBadges: []uint{1}}
	criteria := []BadgeCriterion{
		{BadgeID: 1, Type: CriteriaPoints, Value: 100},
		{BadgeID: 2, Type: CriteriaPoints, Value: 400},
	}
	assert.Equal(t, []uint{2}, EvaluateBadges(&s, criteria))
}

func TestModulesCompletedCriterion(t *testing.T) {
	s := State{CompletedModuloz: []uint{3, 8}}

	assert.True(t, criterionMet(&s, BadgeCriterion{Type: CriteriaModulesCompleted, Value: 2}))
	assert.False(t, criterionMet(&s, BadgeCriterion{Type: CriteriaModulesCompleted, Value: 3}))
	assert.True(t, criterionMet(&s, BadgeCriterion{Type: CriteriaModulesCompleted, SpecificModulo: 8}))
	assert.False(t, criterionMet(&s, BadgeCriterion{Type: CriteriaModulesCompleted, SpecificModulo: 5}))
}

func TestQuizScoreCriterion(t *testing.T) {
	s := State{QuizHistory: []QuizResult{
		{ModuloID: 1, Score: 60},
		{ModuloID: 2, Score: 100},
	}}

	assert.True(t, criterionMet(&s, BadgeCriterion{Type: CriteriaQuizScore, Value: 100}))
	assert.False(t, criterionMet(&s, BadgeCriterion{Type: CriteriaQuizScore, Value: 100, SpecificModulo: 1}))
	assert.True(t, criterionMet(&s, BadgeCriterion{Type: CriteriaQuizScore, Value: 50, SpecificModulo: 1}))
}

func TestStreakAndPointsCriteria(t *testing.T) {
	s := State{TotalPoints: 950, CurrentStreak: 2, LongestStreak: 7}

	assert.True(t, criterionMet(&s, BadgeCriterion{Type: CriteriaStreak, Value: 7}),
		"streak badges honor the longest streak ever reached")
	assert.False(t, criterionMet(&s, BadgeCriterion{Type: CriteriaStreak, Value: 8}))
	assert.False(t, criterionMet(&s, BadgeCriterion{Type: CriteriaPoints, Value: 1000}))
}

func TestTimeBasedCriterion(t *testing.T) {
	early := State{QuizHistory: []QuizResult{
		{ModuloID: 1, Score: 50, CompletedAt: time.Date(2026, 3, 10, 7, 30, 0, 0, time.UTC)},
	}}
	late := State{QuizHistory: []QuizResult{
		{ModuloID: 1, Score: 50, CompletedAt: time.Date(2026, 3, 10, 19, 0, 0, 0, time.UTC)},
	}}

	assert.True(t, criterionMet(&early, BadgeCriterion{Type: CriteriaTimeBased}))
	assert.False(t, criterionMet(&late, BadgeCriterion{Type: CriteriaTimeBased}))
	assert.True(t, criterionMet(&late, BadgeCriterion{Type: CriteriaTimeBased, Value: 20}))
}

func TestUnknownCriterionNeverMatches(t *testing.T) {
	s := State{TotalPoints: 10000}
	assert.False(t, criterionMet(&s, BadgeCriterion{Type: "mystery", Value: 1}))
}
