package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"media-review/internal/data/entity"
	"media-review/internal/data/repository"
	"media-review/internal/dto/request"
	"media-review/pkg/utils"
)

func newAuthService(users *MockUserRepository, mail *MockMailer) AuthService {
	config := &utils.Config{
		JWT: utils.JWTConfig{Secret: "test-secret", ExpiryHours: 1},
	}
	codes := utils.NewCodeGenerator("test-secret", 15*time.Minute)
	return NewAuthService(users, config, codes, mail, zap.NewNop())
}

func TestSignUp_NewUser(t *testing.T) {
	users := new(MockUserRepository)
	mail := new(MockMailer)
	svc := newAuthService(users, mail)

	users.On("FindByUsername", mock.Anything, "reader").Return(nil, repository.ErrNotFound)
	users.On("FindByEmail", mock.Anything, "reader@example.com").Return(nil, repository.ErrNotFound)
	users.On("Create", mock.Anything, mock.AnythingOfType("*entity.User")).Return(nil)
	mail.On("SendConfirmationCode", mock.Anything, "reader@example.com", mock.AnythingOfType("string")).Return(nil)

	resp, err := svc.SignUp(context.Background(), &request.SignUpRequest{
		Username: "reader",
		Email:    "reader@example.com",
	})

	assert.NoError(t, err)
	assert.Equal(t, "reader", resp.Username)
	assert.Equal(t, "reader@example.com", resp.Email)
	users.AssertExpectations(t)
	mail.AssertExpectations(t)
}

func TestSignUp_ExistingUserResendsCode(t *testing.T) {
	users := new(MockUserRepository)
	mail := new(MockMailer)
	svc := newAuthService(users, mail)

	existing := &entity.User{
		Base:     entity.Base{ID: uuid.New()},
		Username: "reader",
		Email:    "reader@example.com",
		Role:     entity.RoleUser,
	}
	users.On("FindByUsername", mock.Anything, "reader").Return(existing, nil)
	mail.On("SendConfirmationCode", mock.Anything, "reader@example.com", mock.AnythingOfType("string")).Return(nil)

	resp, err := svc.SignUp(context.Background(), &request.SignUpRequest{
		Username: "reader",
		Email:    "reader@example.com",
	})

	assert.NoError(t, err)
	assert.Equal(t, "reader", resp.Username)
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	mail.AssertExpectations(t)
}

func TestSignUp_UsernameTakenWithOtherEmail(t *testing.T) {
	users := new(MockUserRepository)
	mail := new(MockMailer)
	svc := newAuthService(users, mail)

	existing := &entity.User{
		Base:     entity.Base{ID: uuid.New()},
		Username: "reader",
		Email:    "someone-else@example.com",
	}
	users.On("FindByUsername", mock.Anything, "reader").Return(existing, nil)

	resp, err := svc.SignUp(context.Background(), &request.SignUpRequest{
		Username: "reader",
		Email:    "reader@example.com",
	})

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrUserExists)
	mail.AssertNotCalled(t, "SendConfirmationCode", mock.Anything, mock.Anything, mock.Anything)
}

func TestSignUp_EmailTakenWithOtherUsername(t *testing.T) {
	users := new(MockUserRepository)
	mail := new(MockMailer)
	svc := newAuthService(users, mail)

	existing := &entity.User{
		Base:     entity.Base{ID: uuid.New()},
		Username: "other",
		Email:    "reader@example.com",
	}
	users.On("FindByUsername", mock.Anything, "reader").Return(nil, repository.ErrNotFound)
	users.On("FindByEmail", mock.Anything, "reader@example.com").Return(existing, nil)

	resp, err := svc.SignUp(context.Background(), &request.SignUpRequest{
		Username: "reader",
		Email:    "reader@example.com",
	})

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestToken_Success(t *testing.T) {
	users := new(MockUserRepository)
	mail := new(MockMailer)
	svc := newAuthService(users, mail)

	user := &entity.User{
		Base:     entity.Base{ID: uuid.New()},
		Username: "reader",
		Email:    "reader@example.com",
		Role:     entity.RoleUser,
	}
	code := utils.NewCodeGenerator("test-secret", 15*time.Minute).Generate(user)

	users.On("FindByUsername", mock.Anything, "reader").Return(user, nil)
	users.On("UpdateLastLogin", mock.Anything, user.ID, mock.AnythingOfType("time.Time")).Return(nil)

	resp, err := svc.Token(context.Background(), &request.TokenRequest{
		Username:         "reader",
		ConfirmationCode: code,
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	users.AssertExpectations(t)
}

func TestToken_UnknownUser(t *testing.T) {
	users := new(MockUserRepository)
	mail := new(MockMailer)
	svc := newAuthService(users, mail)

	users.On("FindByUsername", mock.Anything, "ghost").Return(nil, repository.ErrNotFound)

	resp, err := svc.Token(context.Background(), &request.TokenRequest{
		Username:         "ghost",
		ConfirmationCode: "whatever",
	})

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestToken_BadCode(t *testing.T) {
	users := new(MockUserRepository)
	mail := new(MockMailer)
	svc := newAuthService(users, mail)

	user := &entity.User{
		Base:     entity.Base{ID: uuid.New()},
		Username: "reader",
		Email:    "reader@example.com",
	}
	users.On("FindByUsername", mock.Anything, "reader").Return(user, nil)

	resp, err := svc.Token(context.Background(), &request.TokenRequest{
		Username:         "reader",
		ConfirmationCode: "1abc-deadbeef",
	})

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrInvalidCode)
	users.AssertNotCalled(t, "UpdateLastLogin", mock.Anything, mock.Anything, mock.Anything)
}
