package usecase

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"media-review/internal/data/entity"
	"media-review/internal/data/repository"
	"media-review/internal/dto/request"
)

func userFixture(role entity.UserRole) *entity.User {
	return &entity.User{
		Base:     entity.Base{ID: uuid.New()},
		Username: "reader",
		Email:    "reader@example.com",
		Role:     role,
	}
}

func TestCreateUser_DefaultsToUserRole(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewUserService(users, zap.NewNop())

	users.On("Create", mock.Anything, mock.MatchedBy(func(u *entity.User) bool {
		return u.Role == entity.RoleUser
	})).Return(nil)

	resp, err := svc.CreateUser(context.Background(), &request.CreateUserRequest{
		Username: "reader",
		Email:    "reader@example.com",
	})

	assert.NoError(t, err)
	assert.Equal(t, "user", resp.Role)
	users.AssertExpectations(t)
}

func TestCreateUser_Duplicate(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewUserService(users, zap.NewNop())

	users.On("Create", mock.Anything, mock.AnythingOfType("*entity.User")).Return(repository.ErrDuplicate)

	resp, err := svc.CreateUser(context.Background(), &request.CreateUserRequest{
		Username: "reader",
		Email:    "reader@example.com",
	})

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestUpdateUser_AdminCanChangeRole(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewUserService(users, zap.NewNop())

	user := userFixture(entity.RoleUser)
	users.On("FindByUsername", mock.Anything, "reader").Return(user, nil)
	users.On("Update", mock.Anything, user).Return(nil)

	role := "moderator"
	resp, err := svc.UpdateUser(context.Background(), "reader", &request.UpdateUserRequest{Role: &role})

	assert.NoError(t, err)
	assert.Equal(t, "moderator", resp.Role)
	users.AssertExpectations(t)
}

func TestUpdateProfile_RoleChangeDiscarded(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewUserService(users, zap.NewNop())

	user := userFixture(entity.RoleUser)
	users.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	users.On("Update", mock.Anything, user).Return(nil)

	role := "admin"
	bio := "I read a lot"
	resp, err := svc.UpdateProfile(context.Background(), user.ID, &request.UpdateUserRequest{
		Role: &role,
		Bio:  &bio,
	})

	assert.NoError(t, err)
	assert.Equal(t, "user", resp.Role)
	assert.Equal(t, "I read a lot", resp.Bio)
}

func TestUpdateProfile_NoChangesSkipsWrite(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewUserService(users, zap.NewNop())

	user := userFixture(entity.RoleUser)
	users.On("FindByID", mock.Anything, user.ID).Return(user, nil)

	resp, err := svc.UpdateProfile(context.Background(), user.ID, &request.UpdateUserRequest{})

	assert.NoError(t, err)
	assert.Equal(t, "reader", resp.Username)
	users.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestDeleteUser_Unknown(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewUserService(users, zap.NewNop())

	users.On("FindByUsername", mock.Anything, "ghost").Return(nil, repository.ErrNotFound)

	err := svc.DeleteUser(context.Background(), "ghost")

	assert.ErrorIs(t, err, repository.ErrNotFound)
	users.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestGetUsers_Paginates(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewUserService(users, zap.NewNop())

	list := []*entity.User{userFixture(entity.RoleUser), userFixture(entity.RoleAdmin)}
	users.On("List", mock.Anything, "", 10, 0).Return(list, nil)
	users.On("Count", mock.Anything, "").Return(int64(2), nil)

	resp, err := svc.GetUsers(context.Background(), &request.PaginatedRequest{Page: 1, PerPage: 10}, "")

	assert.NoError(t, err)
	assert.Len(t, resp.Data, 2)
	assert.Equal(t, int64(2), resp.Pagination.Total)
	assert.Equal(t, 1, resp.Pagination.TotalPages)
}
