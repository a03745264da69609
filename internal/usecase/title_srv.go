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
)

type TitleService interface {
	GetTitles(ctx context.Context, req *request.PaginatedRequest, filter repository.TitleFilter) (*response.PaginatedResponse[response.TitleResponse], error)
	GetTitleByID(ctx context.Context, titleID uuid.UUID) (*response.TitleResponse, error)
	CreateTitle(ctx context.Context, req *request.TitleRequest) (*response.TitleResponse, error)
	UpdateTitle(ctx context.Context, titleID uuid.UUID, req *request.UpdateTitleRequest) (*response.TitleResponse, error)
	DeleteTitle(ctx context.Context, titleID uuid.UUID) error
}

type titleService struct {
	repo    *repository.Repository
	ratings *cache.RatingCache
	log     *zap.Logger
}

func NewTitleService(repo *repository.Repository, ratings *cache.RatingCache, log *zap.Logger) TitleService {
	return &titleService{
		repo:    repo,
		ratings: ratings,
		log:     log.With(zap.String("service", "title")),
	}
}

func (s *titleService) GetTitles(ctx context.Context, req *request.PaginatedRequest, filter repository.TitleFilter) (*response.PaginatedResponse[response.TitleResponse], error) {
	titles, err := s.repo.Title.List(ctx, filter, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("get titles: %w", err)
	}

	total, err := s.repo.Title.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count titles: %w", err)
	}

	titleResponses := make([]response.TitleResponse, len(titles))
	for i, title := range titles {
		resp, err := s.buildResponse(ctx, title)
		if err != nil {
			return nil, err
		}
		titleResponses[i] = *resp
	}

	return response.NewPaginatedResponse(titleResponses, req.Page, req.PerPage, total), nil
}

func (s *titleService) GetTitleByID(ctx context.Context, titleID uuid.UUID) (*response.TitleResponse, error) {
	title, err := s.repo.Title.FindByID(ctx, titleID)
	if err != nil {
		return nil, err
	}

	return s.buildResponse(ctx, title)
}

func (s *titleService) CreateTitle(ctx context.Context, req *request.TitleRequest) (*response.TitleResponse, error) {
	categoryID, err := s.resolveCategory(ctx, req.Category)
	if err != nil {
		return nil, err
	}

	genres, err := s.resolveGenres(ctx, req.Genre)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	title := &entity.Title{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:        req.Name,
		Year:        req.Year,
		Description: req.Description,
		CategoryID:  categoryID,
	}

	if err := s.repo.Title.Create(ctx, title); err != nil {
		return nil, fmt.Errorf("create title %s: %w", req.Name, err)
	}

	if len(genres) > 0 {
		genreIDs := make([]uuid.UUID, len(genres))
		for i, genre := range genres {
			genreIDs[i] = genre.ID
		}
		if err := s.repo.TitleGenre.Set(ctx, title.ID, genreIDs); err != nil {
			return nil, fmt.Errorf("set genres for title %s: %w", title.ID.String(), err)
		}
	}

	s.log.Info("Title created",
		zap.String("title_id", title.ID.String()),
		zap.String("name", title.Name),
		zap.Int("year", title.Year),
	)

	return s.buildResponse(ctx, title)
}

func (s *titleService) UpdateTitle(ctx context.Context, titleID uuid.UUID, req *request.UpdateTitleRequest) (*response.TitleResponse, error) {
	title, err := s.repo.Title.FindByID(ctx, titleID)
	if err != nil {
		return nil, err
	}

	updated := false

	if req.Name != nil && *req.Name != title.Name {
		title.Name = *req.Name
		updated = true
	}
	if req.Year != nil && *req.Year != title.Year {
		title.Year = *req.Year
		updated = true
	}
	if req.Description != nil && *req.Description != title.Description {
		title.Description = *req.Description
		updated = true
	}
	if req.Category != nil {
		categoryID, err := s.resolveCategory(ctx, *req.Category)
		if err != nil {
			return nil, err
		}
		title.CategoryID = categoryID
		updated = true
	}

	if updated {
		title.UpdatedAt = time.Now()
		if err := s.repo.Title.Update(ctx, title); err != nil {
			return nil, fmt.Errorf("update title %s: %w", titleID.String(), err)
		}
	}

	// A non-nil genre list replaces the association set; nil leaves it
	// untouched.
	if req.Genre != nil {
		genres, err := s.resolveGenres(ctx, req.Genre)
		if err != nil {
			return nil, err
		}
		genreIDs := make([]uuid.UUID, len(genres))
		for i, genre := range genres {
			genreIDs[i] = genre.ID
		}
		if err := s.repo.TitleGenre.Set(ctx, title.ID, genreIDs); err != nil {
			return nil, fmt.Errorf("set genres for title %s: %w", title.ID.String(), err)
		}
	}

	s.log.Info("Title updated",
		zap.String("title_id", title.ID.String()),
		zap.Bool("was_updated", updated),
	)

	return s.buildResponse(ctx, title)
}

func (s *titleService) DeleteTitle(ctx context.Context, titleID uuid.UUID) error {
	if err := s.repo.Title.Delete(ctx, titleID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return err
		}
		return fmt.Errorf("delete title %s: %w", titleID.String(), err)
	}

	s.ratings.Invalidate(ctx, titleID)
	return nil
}

// resolveCategory maps a category slug from a write request to its id. An
// empty slug clears the category. Unknown slugs are a client error, not a
// missing resource.
func (s *titleService) resolveCategory(ctx context.Context, slug string) (*uuid.UUID, error) {
	if slug == "" {
		return nil, nil
	}

	category, err := s.repo.Category.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("category %s: %w", slug, ErrInvalidReference)
		}
		return nil, fmt.Errorf("resolve category %s: %w", slug, err)
	}

	return &category.ID, nil
}

func (s *titleService) resolveGenres(ctx context.Context, slugs []string) ([]*entity.Genre, error) {
	genres, err := s.repo.Genre.FindBySlugs(ctx, slugs)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%v: %w", err, ErrInvalidReference)
		}
		return nil, fmt.Errorf("resolve genres: %w", err)
	}

	return genres, nil
}

// buildResponse assembles the read shape: nested genres and category plus
// the computed rating.
func (s *titleService) buildResponse(ctx context.Context, title *entity.Title) (*response.TitleResponse, error) {
	genres, err := s.repo.TitleGenre.ListGenresByTitle(ctx, title.ID)
	if err != nil {
		return nil, fmt.Errorf("load genres for title %s: %w", title.ID.String(), err)
	}

	var category *entity.Category
	if title.CategoryID != nil {
		category, err = s.repo.Category.FindByID(ctx, *title.CategoryID)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("load category for title %s: %w", title.ID.String(), err)
		}
	}

	rating, err := s.rating(ctx, title.ID)
	if err != nil {
		return nil, err
	}

	resp := response.TitleToResponse(title, genres, category, rating)
	return &resp, nil
}

func (s *titleService) rating(ctx context.Context, titleID uuid.UUID) (*float64, error) {
	if rating, ok := s.ratings.Get(ctx, titleID); ok {
		return rating, nil
	}

	rating, err := s.repo.Review.AverageScoreByTitle(ctx, titleID)
	if err != nil {
		return nil, fmt.Errorf("compute rating for title %s: %w", titleID.String(), err)
	}

	s.ratings.Set(ctx, titleID, rating)
	return rating, nil
}
