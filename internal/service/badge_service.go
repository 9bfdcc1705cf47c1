package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"lapados-backend/internal/db/query"
	"lapados-backend/internal/model"
	"lapados-backend/internal/repository"
	"lapados-backend/pkg/progression"
)

// BadgeService: the catalogue is public to authenticated users; only admins
// shape it.
type BadgeService interface {
	GetByID(id uint) (*model.Badge, error)
	List(p query.Params) ([]model.Badge, error)
	Create(badge *model.Badge) (*model.Badge, error)
	Update(id uint, badge *model.Badge) (*model.Badge, error)
	Delete(id uint) error
}

type badgeService struct {
	badgeRepo repository.BadgeRepository
}

func NewBadgeService(badgeRepo repository.BadgeRepository) BadgeService {
	return &badgeService{badgeRepo: badgeRepo}
}

var validCriteria = map[string]bool{
	progression.CriteriaModulesCompleted: true,
	progression.CriteriaQuizScore:        true,
	progression.CriteriaStreak:           true,
	progression.CriteriaPoints:           true,
	progression.CriteriaTimeBased:        true,
}

func (s *badgeService) GetByID(id uint) (*model.Badge, error) {
	badge, err := s.badgeRepo.GetByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return badge, err
}

func (s *badgeService) List(p query.Params) ([]model.Badge, error) {
	badges, err := s.badgeRepo.List(p)
	if err != nil {
		return nil, asValidation(err)
	}
	return badges, nil
}

func (s *badgeService) Create(badge *model.Badge) (*model.Badge, error) {
	if err := validateBadge(badge); err != nil {
		return nil, err
	}
	badge.ID = 0
	if err := s.badgeRepo.Create(badge); err != nil {
		return nil, err
	}
	return badge, nil
}

func (s *badgeService) Update(id uint, badge *model.Badge) (*model.Badge, error) {
	if _, err := s.GetByID(id); err != nil {
		return nil, err
	}
	if err := validateBadge(badge); err != nil {
		return nil, err
	}
	badge.ID = id
	if err := s.badgeRepo.Save(badge); err != nil {
		return nil, err
	}
	return badge, nil
}

func (s *badgeService) Delete(id uint) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}
	return s.badgeRepo.Delete(id)
}

func validateBadge(b *model.Badge) error {
	if b.Name == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if !validCriteria[b.CriteriaType] {
		return fmt.Errorf("%w: unknown criteria_type %q", ErrValidation, b.CriteriaType)
	}
	if b.CriteriaValue < 0 {
		return fmt.Errorf("%w: criteria_value cannot be negative", ErrValidation)
	}
	return nil
}
