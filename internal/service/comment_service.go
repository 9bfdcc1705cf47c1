package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"lapados-backend/internal/db/query"
	"lapados-backend/internal/model"
	"lapados-backend/internal/repository"
)

// CommentService: updates are author-only, deletes allow the author or an
// admin moderating the thread.
type CommentService interface {
	GetByID(id uint) (*model.Comment, error)
	List(p query.Params) ([]model.Comment, error)
	Create(author *model.User, comment *model.Comment) (*model.Comment, error)
	Update(actor *model.User, id uint, content string) (*model.Comment, error)
	Delete(actor *model.User, id uint) error
}

type commentService struct {
	commentRepo repository.CommentRepository
	blogRepo    repository.BlogRepository
}

func NewCommentService(commentRepo repository.CommentRepository, blogRepo repository.BlogRepository) CommentService {
	return &commentService{commentRepo: commentRepo, blogRepo: blogRepo}
}

func (s *commentService) GetByID(id uint) (*model.Comment, error) {
	comment, err := s.commentRepo.GetByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return comment, err
}

func (s *commentService) List(p query.Params) ([]model.Comment, error) {
	comments, err := s.commentRepo.List(p)
	if err != nil {
		return nil, asValidation(err)
	}
	return comments, nil
}

func (s *commentService) Create(author *model.User, comment *model.Comment) (*model.Comment, error) {
	if comment.Content == "" {
		return nil, fmt.Errorf("%w: content is required", ErrValidation)
	}
	if _, err := s.blogRepo.GetByID(comment.BlogID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: blog does not exist", ErrValidation)
		}
		return nil, err
	}
	comment.ID = 0
	comment.AuthorEmail = author.Email
	comment.AuthorName = author.FullName
	if err := s.commentRepo.Create(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *commentService) Update(actor *model.User, id uint, content string) (*model.Comment, error) {
	comment, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if comment.AuthorEmail != actor.Email {
		return nil, ErrForbidden
	}
	if content == "" {
		return nil, fmt.Errorf("%w: content is required", ErrValidation)
	}
	comment.Content = content
	if err := s.commentRepo.Save(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *commentService) Delete(actor *model.User, id uint) error {
	comment, err := s.GetByID(id)
	if err != nil {
		return err
	}
	if comment.AuthorEmail != actor.Email && !actor.IsAdmin() {
		return ErrForbidden
	}
	return s.commentRepo.Delete(id)
}
