package repository

import (
	"gorm.io/gorm"

	"lapados-backend/internal/db/query"
	"lapados-backend/internal/model"
)

var moduloFields = map[string]string{
	"id":           "id",
	"title":        "title",
	"category":     "category",
	"difficulty":   "difficulty",
	"xp_reward":    "xp_reward",
	"created_date": "created_at",
}

type ModuloRepository interface {
	GetByID(id uint) (*model.Modulo, error)
	Create(modulo *model.Modulo) error
	// Save replaces the modulo including its question list.
	Save(modulo *model.Modulo) error
	Delete(id uint) error
	List(p query.Params) ([]model.Modulo, error)
}

type moduloRepository struct {
	db *gorm.DB
}

func NewModuloRepository(gdb *gorm.DB) ModuloRepository {
	return &moduloRepository{db: gdb}
}

func (r *moduloRepository) GetByID(id uint) (*model.Modulo, error) {
	var modulo model.Modulo
	err := r.db.Preload("QuizQuestions", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("sequence_order ASC, id ASC")
	}).First(&modulo, id).Error
	if err != nil {
		return nil, err
	}
	return &modulo, nil
}

func (r *moduloRepository) Create(modulo *model.Modulo) error {
	return r.db.Create(modulo).Error
}

func (r *moduloRepository) Save(modulo *model.Modulo) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("modulo_id = ?", modulo.ID).Delete(&model.QuizQuestion{}).Error; err != nil {
			return err
		}
		for i := range modulo.QuizQuestions {
			modulo.QuizQuestions[i].ID = 0
			modulo.QuizQuestions[i].ModuloID = modulo.ID
		}
		return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(modulo).Error
	})
}

func (r *moduloRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("modulo_id = ?", id).Delete(&model.QuizQuestion{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Modulo{}, id).Error
	})
}

func (r *moduloRepository) List(p query.Params) ([]model.Modulo, error) {
	tx, err := query.Apply(r.db.Model(&model.Modulo{}), p, moduloFields, "-created_date", 50)
	if err != nil {
		return nil, err
	}
	var moduloz []model.Modulo
	err = tx.Preload("QuizQuestions", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("sequence_order ASC, id ASC")
	}).Find(&moduloz).Error
	return moduloz, err
}
