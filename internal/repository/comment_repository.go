package repository

import (
	"gorm.io/gorm"

	"lapados-backend/internal/db/query"
	"lapados-backend/internal/model"
)

var commentFields = map[string]string{
	"id":           "id",
	"blog_id":      "blog_id",
	"author_email": "author_email",
	"created_date": "created_at",
}

type CommentRepository interface {
	GetByID(id uint) (*model.Comment, error)
	Create(comment *model.Comment) error
	Save(comment *model.Comment) error
	Delete(id uint) error
	List(p query.Params) ([]model.Comment, error)
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(gdb *gorm.DB) CommentRepository {
	return &commentRepository{db: gdb}
}

func (r *commentRepository) GetByID(id uint) (*model.Comment, error) {
	var comment model.Comment
	err := r.db.First(&comment, id).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) Create(comment *model.Comment) error {
	return r.db.Create(comment).Error
}

func (r *commentRepository) Save(comment *model.Comment) error {
	return r.db.Save(comment).Error
}

func (r *commentRepository) Delete(id uint) error {
	return r.db.Delete(&model.Comment{}, id).Error
}

func (r *commentRepository) List(p query.Params) ([]model.Comment, error) {
	tx, err := query.Apply(r.db.Model(&model.Comment{}), p, commentFields, "-created_date", 50)
	if err != nil {
		return nil, err
	}
	var comments []model.Comment
	err = tx.Find(&comments).Error
	return comments, err
}
