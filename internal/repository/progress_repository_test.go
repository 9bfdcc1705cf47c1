package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/clause"
)

// Progress mutations read the row through GetByEmailTx, which must lock it
// on postgres so two transactions applying XP cannot both work from the
// same snapshot. sqlite has no row locks and rejects FOR UPDATE, so the
// clause stays off there.
func TestRowLockClauses(t *testing.T) {
	assert.Empty(t, rowLockClauses("sqlite"))
	assert.Empty(t, rowLockClauses("sqlite3"))

	locks := rowLockClauses("postgres")
	require.Len(t, locks, 1)
	locking, ok := locks[0].(clause.Locking)
	require.True(t, ok)
	assert.Equal(t, "UPDATE", locking.Strength)

	assert.Len(t, rowLockClauses("mysql"), 1)
}
