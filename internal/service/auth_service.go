package service

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"lapados-backend/internal/model"
	"lapados-backend/internal/repository"
	"lapados-backend/utilities"
)

// AuthService handles registration, login and the /auth/me profile.
type AuthService interface {
	Register(fullName, email, password string) (*model.User, string, error)
	Login(email, password string) (*model.User, string, error)
	GetMe(email string) (*model.User, error)
	// UpdateMe applies profile changes; email, role and password are not
	// updatable through this path.
	UpdateMe(email string, fullName string) (*model.User, error)
}

type authService struct {
	userRepo    repository.UserRepository
	progressSvc ProgressService
}

// NewAuthService initializes authentication service
func NewAuthService(userRepo repository.UserRepository, progressSvc ProgressService) AuthService {
	return &authService{userRepo: userRepo, progressSvc: progressSvc}
}

func (s *authService) Register(fullName, email, password string) (*model.User, string, error) {
	if email == "" || password == "" {
		return nil, "", fmt.Errorf("%w: email and password are required", ErrValidation)
	}

	if _, err := s.userRepo.GetByEmail(email); err == nil {
		return nil, "", fmt.Errorf("%w: user already exists", ErrConflict)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user := &model.User{
		FullName: fullName,
		Email:    email,
		Password: string(hashed),
		Role:     model.RoleUser,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, "", err
	}

	// Initial progress record, level 1 with no XP.
	if _, err := s.progressSvc.EnsureForUser(email); err != nil {
		return nil, "", err
	}

	token, err := utilities.GenerateToken(user)
	if err != nil {
		return nil, "", err
	}

	user.Password = ""
	return user, token, nil
}

func (s *authService) Login(email, password string) (*model.User, string, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return nil, "", errors.New("invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", errors.New("invalid email or password")
	}

	// Logging in counts as daily activity for the streak.
	if err := s.progressSvc.RecordDailyActivity(email); err != nil {
		return nil, "", err
	}

	token, err := utilities.GenerateToken(user)
	if err != nil {
		return nil, "", err
	}

	user.Password = ""
	return user, token, nil
}

func (s *authService) GetMe(email string) (*model.User, error) {
	user, err := s.userRepo.GetByEmail(email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	user.Password = ""
	return user, nil
}

func (s *authService) UpdateMe(email string, fullName string) (*model.User, error) {
	user, err := s.userRepo.GetByEmail(email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if fullName != "" {
		user.FullName = fullName
	}
	if err := s.userRepo.Save(user); err != nil {
		return nil, err
	}
	user.Password = ""
	return user, nil
}
