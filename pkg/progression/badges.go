package progression

// Badge criterion types. Mirrors the stored badge records.
const (
	CriteriaModulesCompleted = "modules_completed"
	CriteriaQuizScore        = "quiz_score"
	CriteriaStreak           = "streak"
	CriteriaPoints           = "points"
	CriteriaTimeBased        = "time_based"
)

// EarlyBirdHour is the default cutoff for time_based badges: a quiz
// completed before this local hour qualifies.
const EarlyBirdHour = 9

// BadgeCriterion is the evaluable part of a badge record.
type BadgeCriterion struct {
	BadgeID        uint
	Type           string
	Value          int
	SpecificModulo uint // 0 means "any modulo"
}

// EvaluateBadges returns the IDs of badges that are newly satisfied by the
// state, skipping badges already earned. It must run after every
// XP-affecting mutation so awards never lag behind progress.
func EvaluateBadges(s *State, criteria []BadgeCriterion) []uint {
	var earned []uint
	for _, c := range criteria {
		if s.HasBadge(c.BadgeID) {
			continue
		}
		if criterionMet(s, c) {
			earned = append(earned, c.BadgeID)
		}
	}
	return earned
}

func criterionMet(s *State, c BadgeCriterion) bool {
	switch c.Type {
	case CriteriaModulesCompleted:
		if c.SpecificModulo != 0 {
			return s.Completed(c.SpecificModulo)
		}
		return len(s.CompletedModuloz) >= c.Value
	case CriteriaQuizScore:
		for _, q := range s.QuizHistory {
			if c.SpecificModulo != 0 && q.ModuloID != c.SpecificModulo {
				continue
			}
			if q.Score >= float64(c.Value) {
				return true
			}
		}
		return false
	case CriteriaStreak:
		return s.LongestStreak >= c.Value
	case CriteriaPoints:
		return s.TotalPoints >= c.Value
	case CriteriaTimeBased:
		hour := EarlyBirdHour
		if c.Value > 0 {
			hour = c.Value
		}
		for _, q := range s.QuizHistory {
			if q.CompletedAt.Hour() < hour {
				return true
			}
		}
		return false
	}
	return false
}
