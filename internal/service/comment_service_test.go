package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lapados-backend/internal/model"
)

func TestCommentLifecycle(t *testing.T) {
	e := newTestEnv(t)
	author := e.createUser(t, "author@example.com", model.RoleUser)
	commenter := e.createUser(t, "commenter@example.com", model.RoleUser)
	blogSvc := NewBlogService(e.blogRepo)
	svc := NewCommentService(e.commentRepo, e.blogRepo)

	blog, err := blogSvc.Create(author, &model.Blog{Title: "T", Content: "C"})
	require.NoError(t, err)

	comment, err := svc.Create(commenter, &model.Comment{BlogID: blog.ID, Content: "Nice writeup"})
	require.NoError(t, err)
	assert.Equal(t, commenter.Email, comment.AuthorEmail)

	updated, err := svc.Update(commenter, comment.ID, "Edited")
	require.NoError(t, err)
	assert.Equal(t, "Edited", updated.Content)
}

func TestCommentRequiresExistingBlog(t *testing.T) {
	e := newTestEnv(t)
	commenter := e.createUser(t, "commenter@example.com", model.RoleUser)
	svc := NewCommentService(e.commentRepo, e.blogRepo)

	_, err := svc.Create(commenter, &model.Comment{BlogID: 12345, Content: "orphan"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCommentUpdateIsAuthorOnly(t *testing.T) {
	e := newTestEnv(t)
	author := e.createUser(t, "author@example.com", model.RoleUser)
	commenter := e.createUser(t, "commenter@example.com", model.RoleUser)
	admin := e.createUser(t, "admin@example.com", model.RoleAdmin)
	blogSvc := NewBlogService(e.blogRepo)
	svc := NewCommentService(e.commentRepo, e.blogRepo)

	blog, err := blogSvc.Create(author, &model.Blog{Title: "T", Content: "C"})
	require.NoError(t, err)
	comment, err := svc.Create(commenter, &model.Comment{BlogID: blog.ID, Content: "hi"})
	require.NoError(t, err)

	// Even admins cannot rewrite someone else's words.
	_, err = svc.Update(admin, comment.ID, "reworded")
	assert.ErrorIs(t, err, ErrForbidden)

	// Deletion is author or admin.
	err = svc.Delete(author, comment.ID)
	assert.ErrorIs(t, err, ErrForbidden)
	require.NoError(t, svc.Delete(admin, comment.ID))
}
