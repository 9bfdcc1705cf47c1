package repository

import (
	"gorm.io/gorm"

	"lapados-backend/internal/db/query"
	"lapados-backend/internal/model"
)

// userFields whitelists the JSON field names clients may filter/sort on.
var userFields = map[string]string{
	"id":           "id",
	"full_name":    "full_name",
	"email":        "email",
	"role":         "role",
	"created_date": "created_at",
}

type UserRepository interface {
	GetByID(id uint) (*model.User, error)
	GetByEmail(email string) (*model.User, error)
	Create(user *model.User) error
	Save(user *model.User) error
	Delete(id uint) error
	List(p query.Params) ([]model.User, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(gdb *gorm.DB) UserRepository {
	return &userRepository{db: gdb}
}

func (r *userRepository) GetByID(id uint) (*model.User, error) {
	var user model.User
	err := r.db.First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Create(user *model.User) error {
	return r.db.Create(user).Error
}

func (r *userRepository) Save(user *model.User) error {
	return r.db.Save(user).Error
}

func (r *userRepository) Delete(id uint) error {
	return r.db.Delete(&model.User{}, id).Error
}

func (r *userRepository) List(p query.Params) ([]model.User, error) {
	tx, err := query.Apply(r.db.Model(&model.User{}), p, userFields, "-created_date", 50)
	if err != nil {
		return nil, err
	}
	var users []model.User
	err = tx.Find(&users).Error
	return users, err
}
