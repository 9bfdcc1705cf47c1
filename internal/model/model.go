package model

import (
	"time"

	"gorm.io/gorm"

	"lapados-backend/pkg/progression"
)

// User roles.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null"`
	Password  string    `json:"password,omitempty" gorm:"not null"` // bcrypt hash, stripped before responses
	Role      string    `json:"role" gorm:"default:'user'"`
	CreatedAt time.Time `json:"created_date"`
	UpdatedAt time.Time `json:"updated_date"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }

type Blog struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"not null"`
	Content     string    `json:"content" gorm:"not null"`
	AuthorEmail string    `json:"author_email" gorm:"index;not null"`
	AuthorName  string    `json:"author_name"`
	Type        string    `json:"type" gorm:"default:'blog'"` // blog, infographic
	ImageURL    string    `json:"image_url"`
	Tags        []string  `json:"tags" gorm:"serializer:json"`
	LikedBy     []string  `json:"liked_by" gorm:"serializer:json"`
	LikesCount  int       `json:"likes_count"` // always len(LikedBy), recomputed server-side
	CreatedAt   time.Time `json:"created_date"`
	UpdatedAt   time.Time `json:"updated_date"`
}

type Comment struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	BlogID      uint      `json:"blog_id" gorm:"index;not null"`
	Content     string    `json:"content" gorm:"not null"`
	AuthorEmail string    `json:"author_email" gorm:"index;not null"`
	AuthorName  string    `json:"author_name"`
	CreatedAt   time.Time `json:"created_date"`
	UpdatedAt   time.Time `json:"updated_date"`
}

type Modulo struct {
	ID               uint           `json:"id" gorm:"primaryKey"`
	Title            string         `json:"title" gorm:"not null"`
	Description      string         `json:"description"`
	Category         string         `json:"category" gorm:"index"`
	Difficulty       string         `json:"difficulty"` // beginner, intermediate, advanced
	XPReward         int            `json:"xp_reward" gorm:"not null"`
	EstimatedMinutes int            `json:"estimated_minutes"`
	Content          string         `json:"content"`
	QuizQuestions    []QuizQuestion `json:"quiz_questions" gorm:"foreignKey:ModuloID"`
	CreatedAt        time.Time      `json:"created_date"`
	UpdatedAt        time.Time      `json:"updated_date"`
}

type QuizQuestion struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	ModuloID      uint      `json:"modulo_id" gorm:"index"`
	Question      string    `json:"question" gorm:"not null"`
	Options       []string  `json:"options" gorm:"serializer:json"`
	CorrectAnswer int       `json:"correct_answer"` // index into Options
	Explanation   string    `json:"explanation"`
	SequenceOrder int       `json:"sequence_order"`
	CreatedAt     time.Time `json:"created_date"`
	UpdatedAt     time.Time `json:"updated_date"`
}

// Sanitize blanks the grading fields so learners cannot read the answer key.
// Grading stays server-side in the quiz attempt flow.
func (m *Modulo) Sanitize() {
	for i := range m.QuizQuestions {
		m.QuizQuestions[i].CorrectAnswer = -1
		m.QuizQuestions[i].Explanation = ""
	}
}

type Badge struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	Name           string    `json:"name" gorm:"not null"`
	Description    string    `json:"description"`
	Icon           string    `json:"icon"`
	Color          string    `json:"color"`  // gold, silver, bronze, blue, green, purple
	Rarity         string    `json:"rarity"` // common, rare, epic, legendary
	CriteriaType   string    `json:"criteria_type"`
	CriteriaValue  int       `json:"criteria_value"`
	SpecificModulo uint      `json:"specific_modulo"` // 0 = any modulo
	CreatedAt      time.Time `json:"created_date"`
	UpdatedAt      time.Time `json:"updated_date"`
}

// Criterion maps the stored badge onto the progression engine's view of it.
func (b *Badge) Criterion() progression.BadgeCriterion {
	return progression.BadgeCriterion{
		BadgeID:        b.ID,
		Type:           b.CriteriaType,
		Value:          b.CriteriaValue,
		SpecificModulo: b.SpecificModulo,
	}
}

type UserProgress struct {
	ID               uint         `json:"id" gorm:"primaryKey"`
	UserEmail        string       `json:"user_email" gorm:"uniqueIndex;not null"`
	TotalPoints      int          `json:"total_points"`
	Level            int          `json:"level" gorm:"-"` // derived, never persisted
	CurrentStreak    int          `json:"current_streak"`
	LongestStreak    int          `json:"longest_streak"`
	LastActivity     *time.Time   `json:"last_activity"`
	CompletedModuloz []uint       `json:"completed_moduloz" gorm:"serializer:json"`
	EarnedBadges     []uint       `json:"earned_badges" gorm:"serializer:json"`
	QuizHistory      []QuizRecord `json:"quiz_history" gorm:"foreignKey:ProgressID"`
	CreatedAt        time.Time    `json:"created_date"`
	UpdatedAt        time.Time    `json:"updated_date"`
}

type QuizRecord struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	ProgressID  uint      `json:"-" gorm:"index"`
	ModuloID    uint      `json:"modulo_id" gorm:"index"`
	Score       float64   `json:"score"`
	CompletedAt time.Time `json:"completed_at"`
}

// AfterFind keeps Level in sync with the stored XP total.
func (p *UserProgress) AfterFind(*gorm.DB) error {
	p.Level = progression.LevelForPoints(p.TotalPoints)
	return nil
}

// AfterSave recomputes Level so freshly written records carry it too.
func (p *UserProgress) AfterSave(*gorm.DB) error {
	p.Level = progression.LevelForPoints(p.TotalPoints)
	return nil
}

// State maps the record onto the progression engine's snapshot.
func (p *UserProgress) State() progression.State {
	s := progression.State{
		TotalPoints:      p.TotalPoints,
		CurrentStreak:    p.CurrentStreak,
		LongestStreak:    p.LongestStreak,
		CompletedModuloz: append([]uint(nil), p.CompletedModuloz...),
		EarnedBadges:     append([]uint(nil), p.EarnedBadges...),
	}
	if p.LastActivity != nil {
		s.LastActivity = *p.LastActivity
	}
	for _, q := range p.QuizHistory {
		s.QuizHistory = append(s.QuizHistory, progression.QuizResult{
			ModuloID:    q.ModuloID,
			Score:       q.Score,
			CompletedAt: q.CompletedAt,
		})
	}
	return s
}

// ApplyState writes an engine snapshot back onto the record. Existing quiz
// history rows keep their IDs; new results come back without one.
func (p *UserProgress) ApplyState(s progression.State) {
	p.TotalPoints = s.TotalPoints
	p.CurrentStreak = s.CurrentStreak
	p.LongestStreak = s.LongestStreak
	if !s.LastActivity.IsZero() {
		t := s.LastActivity
		p.LastActivity = &t
	}
	p.CompletedModuloz = s.CompletedModuloz
	p.EarnedBadges = s.EarnedBadges
	for i := len(p.QuizHistory); i < len(s.QuizHistory); i++ {
		q := s.QuizHistory[i]
		p.QuizHistory = append(p.QuizHistory, QuizRecord{
			ProgressID:  p.ID,
			ModuloID:    q.ModuloID,
			Score:       q.Score,
			CompletedAt: q.CompletedAt,
		})
	}
	p.Level = progression.LevelForPoints(p.TotalPoints)
}

// Quiz attempt states.
const (
	AttemptInProgress = "in_progress"
	AttemptCompleted  = "completed"
)

// QuizAttempt is one server-tracked run through a modulo's quiz. The
// partial unique index admits at most one in-progress attempt per user
// and modulo; concurrent starts race on the insert and the loser resumes
// the winner's session.
type QuizAttempt struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	SessionID     string    `json:"session_id" gorm:"uniqueIndex;not null"`
	UserEmail     string    `json:"user_email" gorm:"not null;uniqueIndex:idx_active_attempt,where:status = 'in_progress'"`
	ModuloID      uint      `json:"modulo_id" gorm:"index;not null;uniqueIndex:idx_active_attempt,where:status = 'in_progress'"`
	QuestionIndex int       `json:"question_index"`
	Score         int       `json:"score"` // correct answers so far
	Answered      bool      `json:"answered"`
	LastCorrect   bool      `json:"last_correct"`
	Status        string    `json:"status" gorm:"default:'in_progress'"`
	FinalScore    float64   `json:"final_score"`
	CreatedAt     time.Time `json:"created_date"`
	UpdatedAt     time.Time `json:"updated_date"`
}
