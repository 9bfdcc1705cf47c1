package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"lapados-backend/internal/db/query"
	"lapados-backend/internal/model"
	"lapados-backend/internal/repository"
)

// BlogService covers blog and infographic posts. Authorship fields are
// always taken from the authenticated caller, never from the payload.
type BlogService interface {
	GetByID(id uint) (*model.Blog, error)
	List(p query.Params) ([]model.Blog, error)
	Create(author *model.User, blog *model.Blog) (*model.Blog, error)
	Update(actor *model.User, id uint, changes *model.Blog) (*model.Blog, error)
	Delete(actor *model.User, id uint) error
	ToggleLike(userEmail string, id uint) (*model.Blog, error)
}

type blogService struct {
	blogRepo repository.BlogRepository
}

func NewBlogService(blogRepo repository.BlogRepository) BlogService {
	return &blogService{blogRepo: blogRepo}
}

func (s *blogService) GetByID(id uint) (*model.Blog, error) {
	blog, err := s.blogRepo.GetByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return blog, err
}

func (s *blogService) List(p query.Params) ([]model.Blog, error) {
	blogs, err := s.blogRepo.List(p)
	if err != nil {
		return nil, asValidation(err)
	}
	return blogs, nil
}

func (s *blogService) Create(author *model.User, blog *model.Blog) (*model.Blog, error) {
	if blog.Title == "" || blog.Content == "" {
		return nil, fmt.Errorf("%w: title and content are required", ErrValidation)
	}
	blog.ID = 0
	blog.AuthorEmail = author.Email
	blog.AuthorName = author.FullName
	blog.LikedBy = []string{}
	blog.LikesCount = 0
	if blog.Type == "" {
		blog.Type = "blog"
	}
	if err := s.blogRepo.Create(blog); err != nil {
		return nil, err
	}
	return blog, nil
}

func (s *blogService) Update(actor *model.User, id uint, changes *model.Blog) (*model.Blog, error) {
	blog, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if blog.AuthorEmail != actor.Email && !actor.IsAdmin() {
		return nil, ErrForbidden
	}

	if changes.Title != "" {
		blog.Title = changes.Title
	}
	if changes.Content != "" {
		blog.Content = changes.Content
	}
	if changes.Type != "" {
		blog.Type = changes.Type
	}
	if changes.ImageURL != "" {
		blog.ImageURL = changes.ImageURL
	}
	if changes.Tags != nil {
		blog.Tags = changes.Tags
	}
	// liked_by and likes_count only move through ToggleLike.
	if err := s.blogRepo.Save(blog); err != nil {
		return nil, err
	}
	return blog, nil
}

func (s *blogService) Delete(actor *model.User, id uint) error {
	blog, err := s.GetByID(id)
	if err != nil {
		return err
	}
	if blog.AuthorEmail != actor.Email && !actor.IsAdmin() {
		return ErrForbidden
	}
	return s.blogRepo.Delete(id)
}

func (s *blogService) ToggleLike(userEmail string, id uint) (*model.Blog, error) {
	blog, err := s.blogRepo.ToggleLike(id, userEmail)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return blog, err
}
