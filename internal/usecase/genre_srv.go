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

type GenreService interface {
	GetGenres(ctx context.Context, req *request.PaginatedRequest, search string) (*response.PaginatedResponse[response.GenreResponse], error)
	CreateGenre(ctx context.Context, req *request.GenreRequest) (*response.GenreResponse, error)
	DeleteGenre(ctx context.Context, slug string) error
}

type genreService struct {
	genres repository.GenreRepository
	log    *zap.Logger
}

func NewGenreService(genres repository.GenreRepository, log *zap.Logger) GenreService {
	return &genreService{
		genres: genres,
		log:    log.With(zap.String("service", "genre")),
	}
}

func (s *genreService) GetGenres(ctx context.Context, req *request.PaginatedRequest, search string) (*response.PaginatedResponse[response.GenreResponse], error) {
	genres, err := s.genres.List(ctx, search, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("get genres: %w", err)
	}

	total, err := s.genres.Count(ctx, search)
	if err != nil {
		return nil, fmt.Errorf("count genres: %w", err)
	}

	genreResponses := make([]response.GenreResponse, len(genres))
	for i, genre := range genres {
		genreResponses[i] = response.GenreToResponse(genre)
	}

	return response.NewPaginatedResponse(genreResponses, req.Page, req.PerPage, total), nil
}

func (s *genreService) CreateGenre(ctx context.Context, req *request.GenreRequest) (*response.GenreResponse, error) {
	genre := &entity.Genre{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		Name: req.Name,
		Slug: req.Slug,
	}

	if err := s.genres.Create(ctx, genre); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("genre %s: %w", req.Slug, ErrAlreadyExists)
		}
		return nil, fmt.Errorf("create genre %s: %w", req.Slug, err)
	}

	s.log.Info("Genre created",
		zap.String("slug", genre.Slug),
		zap.String("name", genre.Name),
	)

	genreResp := response.GenreToResponse(genre)
	return &genreResp, nil
}

func (s *genreService) DeleteGenre(ctx context.Context, slug string) error {
	if err := s.genres.DeleteBySlug(ctx, slug); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return err
		}
		return fmt.Errorf("delete genre %s: %w", slug, err)
	}

	return nil
}
