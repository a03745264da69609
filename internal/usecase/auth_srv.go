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
	"media-review/pkg/mailer"
	"media-review/pkg/utils"
)

type AuthService interface {
	// SignUp registers the user (or re-sends a code to an existing one)
	// and emails a confirmation code.
	SignUp(ctx context.Context, req *request.SignUpRequest) (*response.SignUpResponse, error)
	// Token exchanges a valid confirmation code for a bearer token.
	Token(ctx context.Context, req *request.TokenRequest) (*response.TokenResponse, error)
}

type authService struct {
	users  repository.UserRepository
	config *utils.Config
	codes  *utils.CodeGenerator
	mail   mailer.Mailer
	log    *zap.Logger
}

func NewAuthService(
	users repository.UserRepository,
	config *utils.Config,
	codes *utils.CodeGenerator,
	mail mailer.Mailer,
	log *zap.Logger,
) AuthService {
	return &authService{
		users:  users,
		config: config,
		codes:  codes,
		mail:   mail,
		log:    log.With(zap.String("service", "auth")),
	}
}

func (s *authService) SignUp(ctx context.Context, req *request.SignUpRequest) (*response.SignUpResponse, error) {
	user, err := s.findOrCreate(ctx, req.Username, req.Email)
	if err != nil {
		return nil, err
	}

	code := s.codes.Generate(user)
	if err := s.mail.SendConfirmationCode(ctx, user.Email, code); err != nil {
		s.log.Error("Failed to deliver confirmation code",
			zap.Error(err),
			zap.String("username", user.Username),
		)
		return nil, fmt.Errorf("deliver confirmation code: %w", err)
	}

	s.log.Info("Confirmation code issued",
		zap.String("username", user.Username),
	)

	return &response.SignUpResponse{
		Username: user.Username,
		Email:    user.Email,
	}, nil
}

// findOrCreate returns the existing account when username and email both
// match it, creates a fresh one when neither is taken, and refuses partial
// matches so accounts cannot be hijacked by re-signup.
func (s *authService) findOrCreate(ctx context.Context, username, email string) (*entity.User, error) {
	byUsername, err := s.users.FindByUsername(ctx, username)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("look up username %s: %w", username, err)
	}

	if byUsername != nil {
		if byUsername.Email != email {
			s.log.Warn("Signup rejected, username taken with different email",
				zap.String("username", username),
			)
			return nil, ErrUserExists
		}
		return byUsername, nil
	}

	byEmail, err := s.users.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("look up email %s: %w", email, err)
	}
	if byEmail != nil {
		s.log.Warn("Signup rejected, email taken with different username",
			zap.String("username", username),
		)
		return nil, ErrUserExists
	}

	now := time.Now()
	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Username: username,
		Email:    email,
		Role:     entity.RoleUser,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			// Raced with a concurrent signup.
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("create user %s: %w", username, err)
	}

	s.log.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username),
	)

	return user, nil
}

func (s *authService) Token(ctx context.Context, req *request.TokenRequest) (*response.TokenResponse, error) {
	user, err := s.users.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Unknown username is 404, not 400: the username is a resource
			// reference, not a credential.
			return nil, err
		}
		return nil, fmt.Errorf("look up username %s: %w", req.Username, err)
	}

	if !s.codes.Verify(user, req.ConfirmationCode) {
		s.log.Warn("Confirmation code rejected",
			zap.String("username", user.Username),
		)
		return nil, ErrInvalidCode
	}

	token, err := utils.GenerateAccessToken(s.config.JWT, user)
	if err != nil {
		return nil, fmt.Errorf("issue token for %s: %w", user.Username, err)
	}

	// Moving last_login_at invalidates every code issued before this
	// exchange. Token issuance must not fail on it.
	if err := s.users.UpdateLastLogin(ctx, user.ID, time.Now()); err != nil {
		s.log.Warn("Failed to update last login",
			zap.Error(err),
			zap.String("username", user.Username),
		)
	}

	s.log.Info("Access token issued",
		zap.String("username", user.Username),
	)

	return &response.TokenResponse{Token: token}, nil
}
