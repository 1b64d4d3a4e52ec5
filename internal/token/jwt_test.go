package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"matchpoint/internal/model"
)

func TestJWT_GenerateAndParse(t *testing.T) {
	manager := NewJWT("test-secret")

	tokenString, err := manager.Generate(7, []string{model.RoleMember, model.RoleModerator})
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	identity, err := manager.Parse(tokenString)
	require.NoError(t, err)
	assert.Equal(t, int64(7), identity.UserID)
	assert.Equal(t, []string{model.RoleMember, model.RoleModerator}, identity.Roles)
	assert.True(t, identity.HasRole(model.RoleModerator))
	assert.False(t, identity.HasRole(model.RoleAdmin))
}

func TestJWT_Parse_WrongSecret(t *testing.T) {
	tokenString, err := NewJWT("secret-a").Generate(7, nil)
	require.NoError(t, err)

	_, err = NewJWT("secret-b").Parse(tokenString)
	assert.Error(t, err)
}

func TestJWT_Parse_Garbage(t *testing.T) {
	_, err := NewJWT("test-secret").Parse("not-a-token")
	assert.Error(t, err)
}
