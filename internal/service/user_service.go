package service

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"lapados-backend/internal/db/query"
	"lapados-backend/internal/model"
	"lapados-backend/internal/repository"
)

// UserService is the admin-facing user directory.
type UserService interface {
	GetByID(id uint) (*model.User, error)
	List(p query.Params) ([]model.User, error)
	Update(id uint, changes *model.User) (*model.User, error)
	Delete(id uint) error
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) GetByID(id uint) (*model.User, error) {
	user, err := s.userRepo.GetByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	user.Password = ""
	return user, nil
}

func (s *userService) List(p query.Params) ([]model.User, error) {
	users, err := s.userRepo.List(p)
	if err != nil {
		return nil, asValidation(err)
	}
	for i := range users {
		users[i].Password = ""
	}
	return users, nil
}

func (s *userService) Update(id uint, changes *model.User) (*model.User, error) {
	user, err := s.userRepo.GetByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if changes.FullName != "" {
		user.FullName = changes.FullName
	}
	if changes.Role != "" {
		if changes.Role != model.RoleUser && changes.Role != model.RoleAdmin {
			return nil, fmt.Errorf("%w: unknown role %q", ErrValidation, changes.Role)
		}
		user.Role = changes.Role
	}
	if changes.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(changes.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.Password = string(hashed)
	}
	if err := s.userRepo.Save(user); err != nil {
		return nil, err
	}
	user.Password = ""
	return user, nil
}

func (s *userService) Delete(id uint) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}
	return s.userRepo.Delete(id)
}
