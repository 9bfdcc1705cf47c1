package utilities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lapados-backend/internal/model"
)

func TestTokenRoundTrip(t *testing.T) {
	InitJWT("test-secret", 1)

	user := &model.User{ID: 42, FullName: "Test User", Email: "test@example.com", Role: model.RoleAdmin}
	token, err := GenerateToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "test@example.com", claims.Email)
	assert.Equal(t, model.RoleAdmin, claims.Role)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	InitJWT("test-secret", 1)

	_, err := ValidateToken("not-a-token")
	assert.Error(t, err)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	InitJWT("secret-one", 1)
	user := &model.User{ID: 1, Email: "a@example.com", Role: model.RoleUser}
	token, err := GenerateToken(user)
	require.NoError(t, err)

	InitJWT("secret-two", 1)
	_, err = ValidateToken(token)
	assert.Error(t, err)
}
