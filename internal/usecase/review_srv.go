package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"media-review/internal/cache"
	"media-review/internal/data/entity"
	"media-review/internal/data/repository"
	"media-review/internal/dto/request"
	"media-review/internal/dto/response"
	"media-review/pkg/utils"
)

type ReviewService interface {
	GetReviews(ctx context.Context, titleID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error)
	GetReviewByID(ctx context.Context, titleID, reviewID uuid.UUID) (*response.ReviewResponse, error)
	CreateReview(ctx context.Context, titleID uuid.UUID, req *request.CreateReviewRequest) (*response.ReviewResponse, error)
	UpdateReview(ctx context.Context, titleID, reviewID uuid.UUID, req *request.UpdateReviewRequest) (*response.ReviewResponse, error)
	DeleteReview(ctx context.Context, titleID, reviewID uuid.UUID) error
}

type reviewService struct {
	repo    *repository.Repository
	ratings *cache.RatingCache
	log     *zap.Logger
}

func NewReviewService(repo *repository.Repository, ratings *cache.RatingCache, log *zap.Logger) ReviewService {
	return &reviewService{
		repo:    repo,
		ratings: ratings,
		log:     log.With(zap.String("service", "review")),
	}
}

func (s *reviewService) GetReviews(ctx context.Context, titleID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error) {
	if _, err := s.repo.Title.FindByID(ctx, titleID); err != nil {
		return nil, err
	}

	reviews, err := s.repo.Review.ListByTitle(ctx, titleID, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("get reviews: %w", err)
	}

	total, err := s.repo.Review.CountByTitle(ctx, titleID)
	if err != nil {
		return nil, fmt.Errorf("count reviews: %w", err)
	}

	reviewResponses := make([]response.ReviewResponse, len(reviews))
	for i, review := range reviews {
		reviewResponses[i] = response.ReviewToResponse(review)
	}

	return response.NewPaginatedResponse(reviewResponses, req.Page, req.PerPage, total), nil
}

func (s *reviewService) GetReviewByID(ctx context.Context, titleID, reviewID uuid.UUID) (*response.ReviewResponse, error) {
	review, err := s.repo.Review.FindByTitleAndID(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	reviewResp := response.ReviewToResponse(review)
	return &reviewResp, nil
}

func (s *reviewService) CreateReview(ctx context.Context, titleID uuid.UUID, req *request.CreateReviewRequest) (*response.ReviewResponse, error) {
	authorID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrForbidden
	}

	if _, err := s.repo.Title.FindByID(ctx, titleID); err != nil {
		return nil, err
	}

	exists, err := s.repo.Review.ExistsByTitleAndAuthor(ctx, titleID, authorID)
	if err != nil {
		return nil, fmt.Errorf("check existing review: %w", err)
	}
	if exists {
		return nil, ErrDuplicateReview
	}

	review := &entity.Review{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		TitleID:  titleID,
		AuthorID: authorID,
		Text:     req.Text,
		Score:    req.Score,
	}

	if err := s.repo.Review.Create(ctx, review); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateReview
		}
		return nil, fmt.Errorf("create review: %w", err)
	}

	s.ratings.Invalidate(ctx, titleID)

	s.log.Info("Review created",
		zap.String("review_id", review.ID.String()),
		zap.String("title_id", titleID.String()),
		zap.Int("score", review.Score),
	)

	// Re-read for the joined author username.
	return s.GetReviewByID(ctx, titleID, review.ID)
}

func (s *reviewService) UpdateReview(ctx context.Context, titleID, reviewID uuid.UUID, req *request.UpdateReviewRequest) (*response.ReviewResponse, error) {
	review, err := s.repo.Review.FindByTitleAndID(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	if err := authorizeWrite(ctx, review.AuthorID); err != nil {
		return nil, err
	}

	updated := false
	if req.Text != nil && *req.Text != review.Text {
		review.Text = *req.Text
		updated = true
	}
	if req.Score != nil && *req.Score != review.Score {
		review.Score = *req.Score
		updated = true
	}

	if updated {
		if err := s.repo.Review.Update(ctx, review); err != nil {
			return nil, fmt.Errorf("update review %s: %w", reviewID.String(), err)
		}
		s.ratings.Invalidate(ctx, titleID)
	}

	reviewResp := response.ReviewToResponse(review)
	return &reviewResp, nil
}

func (s *reviewService) DeleteReview(ctx context.Context, titleID, reviewID uuid.UUID) error {
	review, err := s.repo.Review.FindByTitleAndID(ctx, titleID, reviewID)
	if err != nil {
		return err
	}

	if err := authorizeWrite(ctx, review.AuthorID); err != nil {
		return err
	}

	if err := s.repo.Review.Delete(ctx, review.ID); err != nil {
		return fmt.Errorf("delete review %s: %w", reviewID.String(), err)
	}

	s.ratings.Invalidate(ctx, titleID)
	return nil
}

// authorizeWrite lets the author, moderators and admins modify content.
// The middleware stores the effective role, so superusers arrive as admin.
func authorizeWrite(ctx context.Context, authorID uuid.UUID) error {
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return ErrForbidden
	}
	if userID == authorID {
		return nil
	}

	role, _ := utils.GetRoleFromContext(ctx)
	switch entity.UserRole(role) {
	case entity.RoleModerator, entity.RoleAdmin:
		return nil
	}

	return ErrForbidden
}
