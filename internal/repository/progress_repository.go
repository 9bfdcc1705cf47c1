package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"lapados-backend/internal/db/query"
	"lapados-backend/internal/model"
)

var progressFields = map[string]string{
	"id":             "id",
	"user_email":     "user_email",
	"total_points":   "total_points",
	"current_streak": "current_streak",
	"longest_streak": "longest_streak",
	"created_date":   "created_at",
}

type ProgressRepository interface {
	GetByID(id uint) (*model.UserProgress, error)
	GetByEmail(email string) (*model.UserProgress, error)
	// GetByEmailTx reads inside a caller-owned transaction, taking a row
	// lock so concurrent mutators of the same progress row serialize
	// instead of overwriting each other's state.
	GetByEmailTx(tx *gorm.DB, email string) (*model.UserProgress, error)
	Create(progress *model.UserProgress) error
	Save(progress *model.UserProgress) error
	SaveTx(tx *gorm.DB, progress *model.UserProgress) error
	Delete(id uint) error
	List(p query.Params) ([]model.UserProgress, error)
	Leaderboard(limit int) ([]model.UserProgress, error)
}

type progressRepository struct {
	db *gorm.DB
}

func NewProgressRepository(gdb *gorm.DB) ProgressRepository {
	return &progressRepository{db: gdb}
}

func preloadHistory(tx *gorm.DB) *gorm.DB {
	return tx.Preload("QuizHistory", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("completed_at ASC, id ASC")
	})
}

func (r *progressRepository) GetByID(id uint) (*model.UserProgress, error) {
	var progress model.UserProgress
	err := preloadHistory(r.db).First(&progress, id).Error
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

// GetByEmail is a plain read for display paths; mutating flows go through
// GetByEmailTx.
func (r *progressRepository) GetByEmail(email string) (*model.UserProgress, error) {
	var progress model.UserProgress
	err := preloadHistory(r.db).Where("user_email = ?", email).First(&progress).Error
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

func (r *progressRepository) GetByEmailTx(tx *gorm.DB, email string) (*model.UserProgress, error) {
	var progress model.UserProgress
	locked := tx.Clauses(rowLockClauses(tx.Dialector.Name())...)
	err := preloadHistory(locked).Where("user_email = ?", email).First(&progress).Error
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

// rowLockClauses yields SELECT ... FOR UPDATE on dialects with row locks.
// Two transactions applying XP to the same row then read sequentially:
// the second sees the first's committed total instead of a stale snapshot.
// sqlite serializes writers on its own and rejects the syntax.
func rowLockClauses(dialect string) []clause.Expression {
	switch dialect {
	case "sqlite", "sqlite3":
		return nil
	default:
		return []clause.Expression{clause.Locking{Strength: "UPDATE"}}
	}
}

func (r *progressRepository) Create(progress *model.UserProgress) error {
	return r.db.Create(progress).Error
}

func (r *progressRepository) Save(progress *model.UserProgress) error {
	return r.SaveTx(r.db, progress)
}

func (r *progressRepository) SaveTx(tx *gorm.DB, progress *model.UserProgress) error {
	return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(progress).Error
}

func (r *progressRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("progress_id = ?", id).Delete(&model.QuizRecord{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.UserProgress{}, id).Error
	})
}

func (r *progressRepository) List(p query.Params) ([]model.UserProgress, error) {
	tx, err := query.Apply(r.db.Model(&model.UserProgress{}), p, progressFields, "-total_points", 50)
	if err != nil {
		return nil, err
	}
	var rows []model.UserProgress
	err = preloadHistory(tx).Find(&rows).Error
	return rows, err
}

// Leaderboard ranks users by accumulated XP, highest first. Streak and
// level never influence the order.
func (r *progressRepository) Leaderboard(limit int) ([]model.UserProgress, error) {
	if limit <= 0 {
		limit = 50
	}
	var rows []model.UserProgress
	err := r.db.Order("total_points DESC, user_email ASC").Limit(limit).Find(&rows).Error
	return rows, err
}
