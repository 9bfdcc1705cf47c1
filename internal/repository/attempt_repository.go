package repository

import (
	"errors"

	"gorm.io/gorm"

	"lapados-backend/internal/model"
)

type AttemptRepository interface {
	GetBySessionID(sessionID string) (*model.QuizAttempt, error)
	GetBySessionIDTx(tx *gorm.DB, sessionID string) (*model.QuizAttempt, error)
	// GetActive returns the in-progress attempt for a (user, modulo) pair,
	// or nil when there is none.
	GetActive(userEmail string, moduloID uint) (*model.QuizAttempt, error)
	Create(attempt *model.QuizAttempt) error
	Save(attempt *model.QuizAttempt) error
	SaveTx(tx *gorm.DB, attempt *model.QuizAttempt) error
}

type attemptRepository struct {
	db *gorm.DB
}

func NewAttemptRepository(gdb *gorm.DB) AttemptRepository {
	return &attemptRepository{db: gdb}
}

func (r *attemptRepository) GetBySessionID(sessionID string) (*model.QuizAttempt, error) {
	return r.GetBySessionIDTx(r.db, sessionID)
}

func (r *attemptRepository) GetBySessionIDTx(tx *gorm.DB, sessionID string) (*model.QuizAttempt, error) {
	var attempt model.QuizAttempt
	err := tx.Where("session_id = ?", sessionID).First(&attempt).Error
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *attemptRepository) GetActive(userEmail string, moduloID uint) (*model.QuizAttempt, error) {
	var attempt model.QuizAttempt
	err := r.db.Where("user_email = ? AND modulo_id = ? AND status = ?",
		userEmail, moduloID, model.AttemptInProgress).First(&attempt).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *attemptRepository) Create(attempt *model.QuizAttempt) error {
	return r.db.Create(attempt).Error
}

func (r *attemptRepository) Save(attempt *model.QuizAttempt) error {
	return r.SaveTx(r.db, attempt)
}

func (r *attemptRepository) SaveTx(tx *gorm.DB, attempt *model.QuizAttempt) error {
	return tx.Save(attempt).Error
}
