package repository

import (
	"gorm.io/gorm"

	"lapados-backend/internal/db/query"
	"lapados-backend/internal/model"
)

var badgeFields = map[string]string{
	"id":            "id",
	"name":          "name",
	"color":         "color",
	"rarity":        "rarity",
	"criteria_type": "criteria_type",
	"created_date":  "created_at",
}

type BadgeRepository interface {
	GetByID(id uint) (*model.Badge, error)
	GetAll() ([]model.Badge, error)
	Create(badge *model.Badge) error
	Save(badge *model.Badge) error
	Delete(id uint) error
	List(p query.Params) ([]model.Badge, error)
}

type badgeRepository struct {
	db *gorm.DB
}

func NewBadgeRepository(gdb *gorm.DB) BadgeRepository {
	return &badgeRepository{db: gdb}
}

func (r *badgeRepository) GetByID(id uint) (*model.Badge, error) {
	var badge model.Badge
	err := r.db.First(&badge, id).Error
	if err != nil {
		return nil, err
	}
	return &badge, nil
}

func (r *badgeRepository) GetAll() ([]model.Badge, error) {
	var badges []model.Badge
	err := r.db.Find(&badges).Error
	return badges, err
}

func (r *badgeRepository) Create(badge *model.Badge) error {
	return r.db.Create(badge).Error
}

func (r *badgeRepository) Save(badge *model.Badge) error {
	return r.db.Save(badge).Error
}

func (r *badgeRepository) Delete(id uint) error {
	return r.db.Delete(&model.Badge{}, id).Error
}

func (r *badgeRepository) List(p query.Params) ([]model.Badge, error) {
	tx, err := query.Apply(r.db.Model(&model.Badge{}), p, badgeFields, "-created_date", 50)
	if err != nil {
		return nil, err
	}
	var badges []model.Badge
	err = tx.Find(&badges).Error
	return badges, err
}
