package utils

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"media-review/internal/data/entity"
)

func TestAccessToken_Roundtrip(t *testing.T) {
	cfg := JWTConfig{Secret: "test-secret", ExpiryHours: 1}
	user := &entity.User{
		Base:     entity.Base{ID: uuid.New()},
		Username: "reader",
		Role:     entity.RoleModerator,
	}

	token, err := GenerateAccessToken(cfg, user)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := ParseAccessToken(cfg, token)
	assert.NoError(t, err)
	assert.Equal(t, user.ID.String(), claims.Subject)
	assert.Equal(t, "reader", claims.Username)
	assert.Equal(t, "moderator", claims.Role)
}

func TestAccessToken_WrongSecret(t *testing.T) {
	user := &entity.User{
		Base:     entity.Base{ID: uuid.New()},
		Username: "reader",
		Role:     entity.RoleUser,
	}

	token, err := GenerateAccessToken(JWTConfig{Secret: "secret-a", ExpiryHours: 1}, user)
	assert.NoError(t, err)

	_, err = ParseAccessToken(JWTConfig{Secret: "secret-b", ExpiryHours: 1}, token)
	assert.Error(t, err)
}

func TestAccessToken_Garbage(t *testing.T) {
	_, err := ParseAccessToken(JWTConfig{Secret: "test-secret"}, "not-a-token")
	assert.Error(t, err)
}
