package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"media-review/internal/data/entity"
	"media-review/pkg/database"
)

type TitleGenreRepository interface {
	// Set replaces the title's genre associations with the given set.
	Set(ctx context.Context, titleID uuid.UUID, genreIDs []uuid.UUID) error
	// Add creates a single association without touching existing ones.
	Add(ctx context.Context, titleID, genreID uuid.UUID) error
	ListGenresByTitle(ctx context.Context, titleID uuid.UUID) ([]*entity.Genre, error)
}

type titleGenreRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewTitleGenreRepository(db database.PgxIface, log *zap.Logger) TitleGenreRepository {
	return &titleGenreRepository{
		db:  db,
		log: log.With(zap.String("repository", "title_genre")),
	}
}

func (r *titleGenreRepository) Set(ctx context.Context, titleID uuid.UUID, genreIDs []uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin set genres tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM title_genres WHERE title_id = $1`, titleID); err != nil {
		r.log.Error("Failed to clear title genres",
			zap.Error(err),
			zap.String("title_id", titleID.String()),
		)
		return fmt.Errorf("clear genres for title %s: %w", titleID.String(), err)
	}

	insert := `
		INSERT INTO title_genres (id, title_id, genre_id, created_at)
		VALUES ($1, $2, $3, $4)
	`
	now := time.Now()
	for _, genreID := range genreIDs {
		if _, err := tx.Exec(ctx, insert, uuid.New(), titleID, genreID, now); err != nil {
			r.log.Error("Failed to link genre to title",
				zap.Error(err),
				zap.String("title_id", titleID.String()),
				zap.String("genre_id", genreID.String()),
			)
			return fmt.Errorf("link genre %s to title %s: %w",
				genreID.String(), titleID.String(), err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit set genres tx: %w", err)
	}

	return nil
}

func (r *titleGenreRepository) Add(ctx context.Context, titleID, genreID uuid.UUID) error {
	query := `
		INSERT INTO title_genres (id, title_id, genre_id, created_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.db.Exec(ctx, query, uuid.New(), titleID, genreID, time.Now())
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		r.log.Error("Failed to link genre to title",
			zap.Error(err),
			zap.String("title_id", titleID.String()),
			zap.String("genre_id", genreID.String()),
		)
		return fmt.Errorf("link genre %s to title %s: %w",
			genreID.String(), titleID.String(), err)
	}

	return nil
}

func (r *titleGenreRepository) ListGenresByTitle(ctx context.Context, titleID uuid.UUID) ([]*entity.Genre, error) {
	query := `
		SELECT g.id, g.name, g.slug, g.created_at
		FROM genres g
		JOIN title_genres tg ON tg.genre_id = g.id
		WHERE tg.title_id = $1
		ORDER BY g.slug
	`

	rows, err := r.db.Query(ctx, query, titleID)
	if err != nil {
		r.log.Error("Failed to list genres for title",
			zap.Error(err),
			zap.String("title_id", titleID.String()),
		)
		return nil, fmt.Errorf("list genres for title %s: %w", titleID.String(), err)
	}
	defer rows.Close()

	var genres []*entity.Genre
	for rows.Next() {
		var genre entity.Genre
		err := rows.Scan(
			&genre.ID,
			&genre.Name,
			&genre.Slug,
			&genre.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan genre row", zap.Error(err))
			return nil, fmt.Errorf("scan genre row: %w", err)
		}
		genres = append(genres, &genre)
	}

	return genres, rows.Err()
}
