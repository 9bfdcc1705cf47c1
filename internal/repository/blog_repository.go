package repository

import (
	"gorm.io/gorm"

	"lapados-backend/internal/db/query"
	"lapados-backend/internal/model"
)

var blogFields = map[string]string{
	"id":           "id",
	"title":        "title",
	"author_email": "author_email",
	"type":         "type",
	"likes_count":  "likes_count",
	"created_date": "created_at",
}

type BlogRepository interface {
	GetByID(id uint) (*model.Blog, error)
	Create(blog *model.Blog) error
	Save(blog *model.Blog) error
	Delete(id uint) error
	List(p query.Params) ([]model.Blog, error)
	// ToggleLike flips the caller's membership in liked_by and recomputes
	// likes_count inside one transaction, keeping the counter equal to the
	// set size no matter what the client sends.
	ToggleLike(id uint, userEmail string) (*model.Blog, error)
}

type blogRepository struct {
	db *gorm.DB
}

func NewBlogRepository(gdb *gorm.DB) BlogRepository {
	return &blogRepository{db: gdb}
}

func (r *blogRepository) GetByID(id uint) (*model.Blog, error) {
	var blog model.Blog
	err := r.db.First(&blog, id).Error
	if err != nil {
		return nil, err
	}
	return &blog, nil
}

func (r *blogRepository) Create(blog *model.Blog) error {
	return r.db.Create(blog).Error
}

func (r *blogRepository) Save(blog *model.Blog) error {
	return r.db.Save(blog).Error
}

func (r *blogRepository) Delete(id uint) error {
	return r.db.Delete(&model.Blog{}, id).Error
}

func (r *blogRepository) List(p query.Params) ([]model.Blog, error) {
	tx, err := query.Apply(r.db.Model(&model.Blog{}), p, blogFields, "-created_date", 50)
	if err != nil {
		return nil, err
	}
	var blogs []model.Blog
	err = tx.Find(&blogs).Error
	return blogs, err
}

func (r *blogRepository) ToggleLike(id uint, userEmail string) (*model.Blog, error) {
	var blog model.Blog
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&blog, id).Error; err != nil {
			return err
		}

		liked := make([]string, 0, len(blog.LikedBy)+1)
		found := false
		for _, email := range blog.LikedBy {
			if email == userEmail {
				found = true
				continue
			}
			liked = append(liked, email)
		}
		if !found {
			liked = append(liked, userEmail)
		}

		blog.LikedBy = liked
		blog.LikesCount = len(liked)
		return tx.Model(&blog).Select("liked_by", "likes_count").Updates(blog).Error
	})
	if err != nil {
		return nil, err
	}
	return &blog, nil
}
