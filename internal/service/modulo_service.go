package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"lapados-backend/internal/db/query"
	"lapados-backend/internal/model"
	"lapados-backend/internal/repository"
)

// ModuloService manages learning modules. Reads are open to every
// authenticated user but the answer key is stripped unless the caller is an
// admin; writes are admin-only (enforced at the route level).
type ModuloService interface {
	GetByID(id uint, includeAnswers bool) (*model.Modulo, error)
	List(p query.Params, includeAnswers bool) ([]model.Modulo, error)
	Create(modulo *model.Modulo) (*model.Modulo, error)
	Update(id uint, modulo *model.Modulo) (*model.Modulo, error)
	Delete(id uint) error
}

type moduloService struct {
	moduloRepo repository.ModuloRepository
}

func NewModuloService(moduloRepo repository.ModuloRepository) ModuloService {
	return &moduloService{moduloRepo: moduloRepo}
}

func (s *moduloService) GetByID(id uint, includeAnswers bool) (*model.Modulo, error) {
	modulo, err := s.moduloRepo.GetByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if !includeAnswers {
		modulo.Sanitize()
	}
	return modulo, nil
}

func (s *moduloService) List(p query.Params, includeAnswers bool) ([]model.Modulo, error) {
	moduloz, err := s.moduloRepo.List(p)
	if err != nil {
		return nil, asValidation(err)
	}
	if !includeAnswers {
		for i := range moduloz {
			moduloz[i].Sanitize()
		}
	}
	return moduloz, nil
}

func (s *moduloService) Create(modulo *model.Modulo) (*model.Modulo, error) {
	if err := validateModulo(modulo); err != nil {
		return nil, err
	}
	modulo.ID = 0
	if err := s.moduloRepo.Create(modulo); err != nil {
		return nil, err
	}
	return modulo, nil
}

func (s *moduloService) Update(id uint, modulo *model.Modulo) (*model.Modulo, error) {
	if _, err := s.GetByID(id, true); err != nil {
		return nil, err
	}
	if err := validateModulo(modulo); err != nil {
		return nil, err
	}
	modulo.ID = id
	if err := s.moduloRepo.Save(modulo); err != nil {
		return nil, err
	}
	return s.GetByID(id, true)
}

func (s *moduloService) Delete(id uint) error {
	if _, err := s.GetByID(id, true); err != nil {
		return err
	}
	return s.moduloRepo.Delete(id)
}

func validateModulo(m *model.Modulo) error {
	if m.Title == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	if m.XPReward < 0 {
		return fmt.Errorf("%w: xp_reward cannot be negative", ErrValidation)
	}
	for i, q := range m.QuizQuestions {
		if q.Question == "" {
			return fmt.Errorf("%w: question %d has no text", ErrValidation, i)
		}
		if len(q.Options) < 2 {
			return fmt.Errorf("%w: question %d needs at least two options", ErrValidation, i)
		}
		if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
			return fmt.Errorf("%w: question %d correct_answer out of range", ErrValidation, i)
		}
	}
	return nil
}
