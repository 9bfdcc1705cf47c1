package service

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"lapados-backend/internal/model"
	"lapados-backend/internal/repository"
)

// newTestDB opens a per-test in-memory database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, gdb.AutoMigrate(
		&model.User{}, &model.Blog{}, &model.Comment{},
		&model.Modulo{}, &model.QuizQuestion{}, &model.Badge{},
		&model.UserProgress{}, &model.QuizRecord{}, &model.QuizAttempt{},
	))
	return gdb
}

type testEnv struct {
	db           *gorm.DB
	userRepo     repository.UserRepository
	blogRepo     repository.BlogRepository
	commentRepo  repository.CommentRepository
	moduloRepo   repository.ModuloRepository
	badgeRepo    repository.BadgeRepository
	progressRepo repository.ProgressRepository
	attemptRepo  repository.AttemptRepository
}

func newTestEnv(t *testing.T) *testEnv {
	gdb := newTestDB(t)
	return &testEnv{
		db:           gdb,
		userRepo:     repository.NewUserRepository(gdb),
		blogRepo:     repository.NewBlogRepository(gdb),
		commentRepo:  repository.NewCommentRepository(gdb),
		moduloRepo:   repository.NewModuloRepository(gdb),
		badgeRepo:    repository.NewBadgeRepository(gdb),
		progressRepo: repository.NewProgressRepository(gdb),
		attemptRepo:  repository.NewAttemptRepository(gdb),
	}
}

func (e *testEnv) createUser(t *testing.T, email, role string) *model.User {
	t.Helper()
	user := &model.User{FullName: "User " + email, Email: email, Password: "x", Role: role}
	require.NoError(t, e.userRepo.Create(user))
	return user
}

// twoQuestionModulo seeds a module whose correct answers are both option 0.
func (e *testEnv) twoQuestionModulo(t *testing.T, xp int) *model.Modulo {
	t.Helper()
	m := &model.Modulo{
		Title:    "Prohibited Substances",
		Category: "fundamentals",
		XPReward: xp,
		QuizQuestions: []model.QuizQuestion{
			{Question: "Q1", Options: []string{"right", "wrong"}, CorrectAnswer: 0, SequenceOrder: 1},
			{Question: "Q2", Options: []string{"right", "wrong", "also wrong"}, CorrectAnswer: 0, SequenceOrder: 2},
		},
	}
	require.NoError(t, e.moduloRepo.Create(m))
	return m
}
