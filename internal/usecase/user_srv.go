package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"media-review/internal/data/entity"
	"media-review/internal/data/repository"
	"media-review/internal/dto/request"
	"media-review/internal/dto/response"
)

type UserService interface {
	GetUsers(ctx context.Context, req *request.PaginatedRequest, search string) (*response.PaginatedResponse[response.UserResponse], error)
	CreateUser(ctx context.Context, req *request.CreateUserRequest) (*response.UserResponse, error)
	GetUserByUsername(ctx context.Context, username string) (*response.UserResponse, error)
	UpdateUser(ctx context.Context, username string, req *request.UpdateUserRequest) (*response.UserResponse, error)
	DeleteUser(ctx context.Context, username string) error

	// Profile operations act on the authenticated account; role changes
	// are discarded there.
	GetProfile(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *request.UpdateUserRequest) (*response.UserResponse, error)
}

type userService struct {
	users repository.UserRepository
	log   *zap.Logger
}

func NewUserService(users repository.UserRepository, log *zap.Logger) UserService {
	return &userService{
		users: users,
		log:   log.With(zap.String("service", "user")),
	}
}

func (s *userService) GetUsers(ctx context.Context, req *request.PaginatedRequest, search string) (*response.PaginatedResponse[response.UserResponse], error) {
	users, err := s.users.List(ctx, search, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("get users: %w", err)
	}

	total, err := s.users.Count(ctx, search)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}

	userResponses := make([]response.UserResponse, len(users))
	for i, user := range users {
		userResponses[i] = response.UserToResponse(user)
	}

	return response.NewPaginatedResponse(userResponses, req.Page, req.PerPage, total), nil
}

func (s *userService) CreateUser(ctx context.Context, req *request.CreateUserRequest) (*response.UserResponse, error) {
	role := entity.UserRole(req.Role)
	if req.Role == "" {
		role = entity.RoleUser
	}

	now := time.Now()
	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Bio:       req.Bio,
		Role:      role,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("create user %s: %w", req.Username, err)
	}

	s.log.Info("User created",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username),
		zap.String("role", string(user.Role)),
	)

	userResp := response.UserToResponse(user)
	return &userResp, nil
}

func (s *userService) GetUserByUsername(ctx context.Context, username string) (*response.UserResponse, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	userResp := response.UserToResponse(user)
	return &userResp, nil
}

func (s *userService) UpdateUser(ctx context.Context, username string, req *request.UpdateUserRequest) (*response.UserResponse, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	return s.applyUpdate(ctx, user, req, true)
}

func (s *userService) DeleteUser(ctx context.Context, username string) error {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return err
	}

	if err := s.users.Delete(ctx, user.ID); err != nil {
		return fmt.Errorf("delete user %s: %w", username, err)
	}

	return nil
}

func (s *userService) GetProfile(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	userResp := response.UserToResponse(user)
	return &userResp, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *request.UpdateUserRequest) (*response.UserResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return s.applyUpdate(ctx, user, req, false)
}

// applyUpdate merges non-nil fields into user and persists it. allowRole
// is false on the self-profile path so users cannot escalate themselves.
func (s *userService) applyUpdate(ctx context.Context, user *entity.User, req *request.UpdateUserRequest, allowRole bool) (*response.UserResponse, error) {
	updated := false

	if req.Username != nil && *req.Username != user.Username {
		user.Username = *req.Username
		updated = true
	}
	if req.Email != nil && *req.Email != user.Email {
		user.Email = *req.Email
		updated = true
	}
	if req.FirstName != nil && *req.FirstName != user.FirstName {
		user.FirstName = *req.FirstName
		updated = true
	}
	if req.LastName != nil && *req.LastName != user.LastName {
		user.LastName = *req.LastName
		updated = true
	}
	if req.Bio != nil && *req.Bio != user.Bio {
		user.Bio = *req.Bio
		updated = true
	}
	if allowRole && req.Role != nil && entity.UserRole(*req.Role) != user.Role {
		user.Role = entity.UserRole(*req.Role)
		updated = true
	}

	if updated {
		user.UpdatedAt = time.Now()
		if err := s.users.Update(ctx, user); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return nil, ErrUserExists
			}
			return nil, fmt.Errorf("update user %s: %w", user.ID.String(), err)
		}

		s.log.Info("User updated",
			zap.String("user_id", user.ID.String()),
			zap.String("username", user.Username),
		)
	}

	userResp := response.UserToResponse(user)
	return &userResp, nil
}
