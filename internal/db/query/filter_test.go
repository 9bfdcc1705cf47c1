package query

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type item struct {
	ID       uint
	Title    string
	Category string
	Score    int
}

var itemFields = map[string]string{
	"id":       "id",
	"title":    "title",
	"category": "category",
	"score":    "score",
}

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(&item{}))

	seed := []item{
		{Title: "alpha", Category: "a", Score: 10},
		{Title: "bravo", Category: "b", Score: 30},
		{Title: "charlie", Category: "a", Score: 20},
	}
	require.NoError(t, gdb.Create(&seed).Error)
	return gdb
}

func TestApplyEqualityFilter(t *testing.T) {
	gdb := testDB(t)

	tx, err := Apply(gdb.Model(&item{}), Params{
		Filter: map[string]interface{}{"category": "a"},
	}, itemFields, "title", 50)
	require.NoError(t, err)

	var got []item
	require.NoError(t, tx.Find(&got).Error)
	require.Len(t, got, 2)
	assert.Equal(t, "alpha", got[0].Title)
}

func TestApplyInFilter(t *testing.T) {
	gdb := testDB(t)

	tx, err := Apply(gdb.Model(&item{}), Params{
		Filter: map[string]interface{}{"title": []interface{}{"alpha", "bravo"}},
	}, itemFields, "title", 50)
	require.NoError(t, err)

	var got []item
	require.NoError(t, tx.Find(&got).Error)
	assert.Len(t, got, 2)
}

func TestApplyDescendingSortAndLimit(t *testing.T) {
	gdb := testDB(t)

	tx, err := Apply(gdb.Model(&item{}), Params{Sort: "-score", Limit: 2}, itemFields, "", 50)
	require.NoError(t, err)

	var got []item
	require.NoError(t, tx.Find(&got).Error)
	require.Len(t, got, 2)
	assert.Equal(t, 30, got[0].Score)
	assert.Equal(t, 20, got[1].Score)
}

func TestApplyRejectsUnknownFields(t *testing.T) {
	gdb := testDB(t)

	_, err := Apply(gdb.Model(&item{}), Params{
		Filter: map[string]interface{}{"password; DROP TABLE items": "x"},
	}, itemFields, "", 50)
	var unknown ErrUnknownField
	require.ErrorAs(t, err, &unknown)

	_, err = Apply(gdb.Model(&item{}), Params{Sort: "-sneaky"}, itemFields, "", 50)
	require.ErrorAs(t, err, &unknown)
}

func TestApplyDefaults(t *testing.T) {
	gdb := testDB(t)

	tx, err := Apply(gdb.Model(&item{}), Params{}, itemFields, "-score", 2)
	require.NoError(t, err)

	var got []item
	require.NoError(t, tx.Find(&got).Error)
	require.Len(t, got, 2, "default limit applies")
	assert.Equal(t, 30, got[0].Score, "default sort applies")
}
