package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"media-review/internal/data/entity"
	"media-review/pkg/database"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	FindByTitleAndID(ctx context.Context, titleID, reviewID uuid.UUID) (*entity.Review, error)
	ListByTitle(ctx context.Context, titleID uuid.UUID, limit, offset int) ([]*entity.Review, error)
	CountByTitle(ctx context.Context, titleID uuid.UUID) (int64, error)
	ExistsByTitleAndAuthor(ctx context.Context, titleID, authorID uuid.UUID) (bool, error)
	Update(ctx context.Context, review *entity.Review) error
	Delete(ctx context.Context, id uuid.UUID) error
	// AverageScoreByTitle returns nil when the title has no reviews.
	AverageScoreByTitle(ctx context.Context, titleID uuid.UUID) (*float64, error)
}

type reviewRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReviewRepository(db database.PgxIface, log *zap.Logger) ReviewRepository {
	return &reviewRepository{
		db:  db,
		log: log.With(zap.String("repository", "review")),
	}
}

func (r *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	query := `
		INSERT INTO reviews (id, title_id, author_id, text, score, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		review.ID,
		review.TitleID,
		review.AuthorID,
		review.Text,
		review.Score,
		review.CreatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		r.log.Error("Failed to create review",
			zap.Error(err),
			zap.String("title_id", review.TitleID.String()),
			zap.String("author_id", review.AuthorID.String()),
		)
		return fmt.Errorf("create review for title %s by user %s: %w",
			review.TitleID.String(), review.AuthorID.String(), err)
	}

	return nil
}

func (r *reviewRepository) FindByTitleAndID(ctx context.Context, titleID, reviewID uuid.UUID) (*entity.Review, error) {
	query := `
		SELECT r.id, r.title_id, r.author_id, r.text, r.score, r.created_at, u.username
		FROM reviews r
		JOIN users u ON u.id = r.author_id
		WHERE r.title_id = $1 AND r.id = $2
	`

	var review entity.Review
	err := r.db.QueryRow(ctx, query, titleID, reviewID).Scan(
		&review.ID,
		&review.TitleID,
		&review.AuthorID,
		&review.Text,
		&review.Score,
		&review.CreatedAt,
		&review.AuthorUsername,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		r.log.Error("Failed to find review",
			zap.Error(err),
			zap.String("review_id", reviewID.String()),
		)
		return nil, fmt.Errorf("find review %s: %w", reviewID.String(), err)
	}

	return &review, nil
}

func (r *reviewRepository) ListByTitle(ctx context.Context, titleID uuid.UUID, limit, offset int) ([]*entity.Review, error) {
	query := `
		SELECT r.id, r.title_id, r.author_id, r.text, r.score, r.created_at, u.username
		FROM reviews r
		JOIN users u ON u.id = r.author_id
		WHERE r.title_id = $1
		ORDER BY r.created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, titleID, limit, offset)
	if err != nil {
		r.log.Error("Failed to list reviews",
			zap.Error(err),
			zap.String("title_id", titleID.String()),
		)
		return nil, fmt.Errorf("list reviews for title %s: %w", titleID.String(), err)
	}
	defer rows.Close()

	var reviews []*entity.Review
	for rows.Next() {
		var review entity.Review
		err := rows.Scan(
			&review.ID,
			&review.TitleID,
			&review.AuthorID,
			&review.Text,
			&review.Score,
			&review.CreatedAt,
			&review.AuthorUsername,
		)
		if err != nil {
			r.log.Error("Failed to scan review row", zap.Error(err))
			return nil, fmt.Errorf("scan review row: %w", err)
		}
		reviews = append(reviews, &review)
	}

	return reviews, rows.Err()
}

func (r *reviewRepository) CountByTitle(ctx context.Context, titleID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM reviews WHERE title_id = $1`

	var count int64
	if err := r.db.QueryRow(ctx, query, titleID).Scan(&count); err != nil {
		r.log.Error("Failed to count reviews", zap.Error(err))
		return 0, fmt.Errorf("count reviews for title %s: %w", titleID.String(), err)
	}

	return count, nil
}

func (r *reviewRepository) ExistsByTitleAndAuthor(ctx context.Context, titleID, authorID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM reviews WHERE title_id = $1 AND author_id = $2)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, titleID, authorID).Scan(&exists); err != nil {
		r.log.Error("Failed to check review existence",
			zap.Error(err),
			zap.String("title_id", titleID.String()),
			zap.String("author_id", authorID.String()),
		)
		return false, fmt.Errorf("check review for title %s by user %s: %w",
			titleID.String(), authorID.String(), err)
	}

	return exists, nil
}

func (r *reviewRepository) Update(ctx context.Context, review *entity.Review) error {
	// created_at is the publication date and is never touched.
	query := `
		UPDATE reviews
		SET text = $2, score = $3
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		review.ID,
		review.Text,
		review.Score,
	)

	if err != nil {
		r.log.Error("Failed to update review",
			zap.Error(err),
			zap.String("review_id", review.ID.String()),
		)
		return fmt.Errorf("update review %s: %w", review.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *reviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM reviews WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete review",
			zap.Error(err),
			zap.String("review_id", id.String()),
		)
		return fmt.Errorf("delete review %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	r.log.Info("Review deleted", zap.String("review_id", id.String()))
	return nil
}

func (r *reviewRepository) AverageScoreByTitle(ctx context.Context, titleID uuid.UUID) (*float64, error) {
	query := `SELECT AVG(score) FROM reviews WHERE title_id = $1`

	var avg *float64
	if err := r.db.QueryRow(ctx, query, titleID).Scan(&avg); err != nil {
		r.log.Error("Failed to compute average score",
			zap.Error(err),
			zap.String("title_id", titleID.String()),
		)
		return nil, fmt.Errorf("average score for title %s: %w", titleID.String(), err)
	}

	return avg, nil
}
