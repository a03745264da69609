package utils

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"media-review/internal/data/entity"
)

func testUser() *entity.User {
	return &entity.User{
		Base: entity.Base{
			ID: uuid.New(),
		},
		Username: "reader",
		Email:    "reader@example.com",
		Role:     entity.RoleUser,
	}
}

func TestConfirmationCode_Roundtrip(t *testing.T) {
	gen := NewCodeGenerator("test-secret", 15*time.Minute)
	user := testUser()

	code := gen.Generate(user)

	assert.NotEmpty(t, code)
	assert.True(t, gen.Verify(user, code))
}

func TestConfirmationCode_WrongUser(t *testing.T) {
	gen := NewCodeGenerator("test-secret", 15*time.Minute)
	user := testUser()
	other := testUser()

	code := gen.Generate(user)

	assert.False(t, gen.Verify(other, code))
}

func TestConfirmationCode_WrongSecret(t *testing.T) {
	user := testUser()
	code := NewCodeGenerator("secret-a", 15*time.Minute).Generate(user)

	assert.False(t, NewCodeGenerator("secret-b", 15*time.Minute).Verify(user, code))
}

func TestConfirmationCode_InvalidatedByLastLogin(t *testing.T) {
	gen := NewCodeGenerator("test-secret", 15*time.Minute)
	user := testUser()

	code := gen.Generate(user)
	assert.True(t, gen.Verify(user, code))

	// Token issuance moves last_login_at; old codes must stop working.
	now := time.Now()
	user.LastLoginAt = &now

	assert.False(t, gen.Verify(user, code))
}

func TestConfirmationCode_Expired(t *testing.T) {
	gen := NewCodeGenerator("test-secret", 15*time.Minute)
	user := testUser()

	code := gen.generateAt(user, time.Now().Add(-time.Hour))

	assert.False(t, gen.Verify(user, code))
}

func TestConfirmationCode_FutureTimestamp(t *testing.T) {
	gen := NewCodeGenerator("test-secret", 15*time.Minute)
	user := testUser()

	code := gen.generateAt(user, time.Now().Add(time.Hour))

	assert.False(t, gen.Verify(user, code))
}

func TestConfirmationCode_Malformed(t *testing.T) {
	gen := NewCodeGenerator("test-secret", 15*time.Minute)
	user := testUser()

	for _, code := range []string{"", "nodash", "!!-sig", "zzzzzzzzzzzzzzzzzz-sig"} {
		assert.False(t, gen.Verify(user, code), "code %q should not verify", code)
	}
}
