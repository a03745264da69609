package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"media-review/internal/data/entity"
	"media-review/internal/data/repository"
	"media-review/internal/dto/request"
	"media-review/internal/dto/response"
	"media-review/pkg/utils"
)

type CommentService interface {
	GetComments(ctx context.Context, titleID, reviewID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.CommentResponse], error)
	GetCommentByID(ctx context.Context, titleID, reviewID, commentID uuid.UUID) (*response.CommentResponse, error)
	CreateComment(ctx context.Context, titleID, reviewID uuid.UUID, req *request.CreateCommentRequest) (*response.CommentResponse, error)
	UpdateComment(ctx context.Context, titleID, reviewID, commentID uuid.UUID, req *request.UpdateCommentRequest) (*response.CommentResponse, error)
	DeleteComment(ctx context.Context, titleID, reviewID, commentID uuid.UUID) error
}

type commentService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewCommentService(repo *repository.Repository, log *zap.Logger) CommentService {
	return &commentService{
		repo: repo,
		log:  log.With(zap.String("service", "comment")),
	}
}

// resolveReview walks the title/review chain so a comment is only ever
// reachable through its real parents.
func (s *commentService) resolveReview(ctx context.Context, titleID, reviewID uuid.UUID) (*entity.Review, error) {
	review, err := s.repo.Review.FindByTitleAndID(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}
	return review, nil
}

func (s *commentService) GetComments(ctx context.Context, titleID, reviewID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.CommentResponse], error) {
	review, err := s.resolveReview(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	comments, err := s.repo.Comment.ListByReview(ctx, review.ID, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("get comments: %w", err)
	}

	total, err := s.repo.Comment.CountByReview(ctx, review.ID)
	if err != nil {
		return nil, fmt.Errorf("count comments: %w", err)
	}

	commentResponses := make([]response.CommentResponse, len(comments))
	for i, comment := range comments {
		commentResponses[i] = response.CommentToResponse(comment)
	}

	return response.NewPaginatedResponse(commentResponses, req.Page, req.PerPage, total), nil
}

func (s *commentService) GetCommentByID(ctx context.Context, titleID, reviewID, commentID uuid.UUID) (*response.CommentResponse, error) {
	review, err := s.resolveReview(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	comment, err := s.repo.Comment.FindByReviewAndID(ctx, review.ID, commentID)
	if err != nil {
		return nil, err
	}

	commentResp := response.CommentToResponse(comment)
	return &commentResp, nil
}

func (s *commentService) CreateComment(ctx context.Context, titleID, reviewID uuid.UUID, req *request.CreateCommentRequest) (*response.CommentResponse, error) {
	authorID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrForbidden
	}

	review, err := s.resolveReview(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	comment := &entity.Comment{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		ReviewID: review.ID,
		AuthorID: authorID,
		Text:     req.Text,
	}

	if err := s.repo.Comment.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}

	s.log.Info("Comment created",
		zap.String("comment_id", comment.ID.String()),
		zap.String("review_id", review.ID.String()),
	)

	// Re-read for the joined author username.
	comment, err = s.repo.Comment.FindByReviewAndID(ctx, review.ID, comment.ID)
	if err != nil {
		return nil, fmt.Errorf("reload comment: %w", err)
	}

	commentResp := response.CommentToResponse(comment)
	return &commentResp, nil
}

func (s *commentService) UpdateComment(ctx context.Context, titleID, reviewID, commentID uuid.UUID, req *request.UpdateCommentRequest) (*response.CommentResponse, error) {
	review, err := s.resolveReview(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	comment, err := s.repo.Comment.FindByReviewAndID(ctx, review.ID, commentID)
	if err != nil {
		return nil, err
	}

	if err := authorizeWrite(ctx, comment.AuthorID); err != nil {
		return nil, err
	}

	if req.Text != nil && *req.Text != comment.Text {
		comment.Text = *req.Text
		if err := s.repo.Comment.Update(ctx, comment); err != nil {
			return nil, fmt.Errorf("update comment %s: %w", commentID.String(), err)
		}
	}

	commentResp := response.CommentToResponse(comment)
	return &commentResp, nil
}

func (s *commentService) DeleteComment(ctx context.Context, titleID, reviewID, commentID uuid.UUID) error {
	review, err := s.resolveReview(ctx, titleID, reviewID)
	if err != nil {
		return err
	}

	comment, err := s.repo.Comment.FindByReviewAndID(ctx, review.ID, commentID)
	if err != nil {
		return err
	}

	if err := authorizeWrite(ctx, comment.AuthorID); err != nil {
		return err
	}

	if err := s.repo.Comment.Delete(ctx, comment.ID); err != nil {
		return fmt.Errorf("delete comment %s: %w", commentID.String(), err)
	}

	return nil
}
