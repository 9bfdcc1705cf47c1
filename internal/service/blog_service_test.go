package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lapados-backend/internal/db/query"
	"lapados-backend/internal/model"
)

func TestBlogCreateStampsAuthor(t *testing.T) {
	e := newTestEnv(t)
	author := e.createUser(t, "author@example.com", model.RoleUser)
	svc := NewBlogService(e.blogRepo)

	blog, err := svc.Create(author, &model.Blog{
		Title:   "Why Clean Sport Matters",
		Content: "...",
		// Clients cannot smuggle in likes or authorship.
		AuthorEmail: "someone-else@example.com",
		LikedBy:     []string{"a", "b", "c"},
		LikesCount:  99,
	})
	require.NoError(t, err)
	assert.Equal(t, author.Email, blog.AuthorEmail)
	assert.Equal(t, author.FullName, blog.AuthorName)
	assert.Empty(t, blog.LikedBy)
	assert.Zero(t, blog.LikesCount)
}

func TestBlogLikeToggle(t *testing.T) {
	e := newTestEnv(t)
	author := e.createUser(t, "author@example.com", model.RoleUser)
	svc := NewBlogService(e.blogRepo)

	blog, err := svc.Create(author, &model.Blog{Title: "T", Content: "C"})
	require.NoError(t, err)

	liked, err := svc.ToggleLike("fan@example.com", blog.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"fan@example.com"}, liked.LikedBy)
	assert.Equal(t, 1, liked.LikesCount)

	liked, err = svc.ToggleLike("other@example.com", blog.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, liked.LikesCount)

	// Second toggle by the same user removes the like.
	liked, err = svc.ToggleLike("fan@example.com", blog.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"other@example.com"}, liked.LikedBy)
	assert.Equal(t, 1, liked.LikesCount)
	assert.Len(t, liked.LikedBy, liked.LikesCount, "counter always matches the set")
}

func TestBlogUpdateAuthorization(t *testing.T) {
	e := newTestEnv(t)
	author := e.createUser(t, "author@example.com", model.RoleUser)
	stranger := e.createUser(t, "stranger@example.com", model.RoleUser)
	admin := e.createUser(t, "admin@example.com", model.RoleAdmin)
	svc := NewBlogService(e.blogRepo)

	blog, err := svc.Create(author, &model.Blog{Title: "T", Content: "C"})
	require.NoError(t, err)

	_, err = svc.Update(stranger, blog.ID, &model.Blog{Title: "Hijacked"})
	assert.ErrorIs(t, err, ErrForbidden)

	updated, err := svc.Update(admin, blog.ID, &model.Blog{Title: "Moderated"})
	require.NoError(t, err)
	assert.Equal(t, "Moderated", updated.Title)

	err = svc.Delete(stranger, blog.ID)
	assert.ErrorIs(t, err, ErrForbidden)
	require.NoError(t, svc.Delete(author, blog.ID))
	_, err = svc.GetByID(blog.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBlogListRejectsUnknownFilterField(t *testing.T) {
	e := newTestEnv(t)
	svc := NewBlogService(e.blogRepo)

	_, err := svc.List(query.Params{Filter: map[string]interface{}{"password": "x"}})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestBlogListFiltersByType(t *testing.T) {
	e := newTestEnv(t)
	author := e.createUser(t, "author@example.com", model.RoleUser)
	svc := NewBlogService(e.blogRepo)

	_, err := svc.Create(author, &model.Blog{Title: "Post", Content: "C", Type: "blog"})
	require.NoError(t, err)
	_, err = svc.Create(author, &model.Blog{Title: "Chart", Content: "C", Type: "infographic"})
	require.NoError(t, err)

	got, err := svc.List(query.Params{Filter: map[string]interface{}{"type": "infographic"}})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Chart", got[0].Title)
}
