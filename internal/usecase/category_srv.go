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

type CategoryService interface {
	GetCategories(ctx context.Context, req *request.PaginatedRequest, search string) (*response.PaginatedResponse[response.CategoryResponse], error)
	CreateCategory(ctx context.Context, req *request.CategoryRequest) (*response.CategoryResponse, error)
	DeleteCategory(ctx context.Context, slug string) error
}

type categoryService struct {
	categories repository.CategoryRepository
	log        *zap.Logger
}

func NewCategoryService(categories repository.CategoryRepository, log *zap.Logger) CategoryService {
	return &categoryService{
		categories: categories,
		log:        log.With(zap.String("service", "category")),
	}
}

func (s *categoryService) GetCategories(ctx context.Context, req *request.PaginatedRequest, search string) (*response.PaginatedResponse[response.CategoryResponse], error) {
	categories, err := s.categories.List(ctx, search, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("get categories: %w", err)
	}

	total, err := s.categories.Count(ctx, search)
	if err != nil {
		return nil, fmt.Errorf("count categories: %w", err)
	}

	categoryResponses := make([]response.CategoryResponse, len(categories))
	for i, category := range categories {
		categoryResponses[i] = response.CategoryToResponse(category)
	}

	return response.NewPaginatedResponse(categoryResponses, req.Page, req.PerPage, total), nil
}

func (s *categoryService) CreateCategory(ctx context.Context, req *request.CategoryRequest) (*response.CategoryResponse, error) {
	category := &entity.Category{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		Name: req.Name,
		Slug: req.Slug,
	}

	if err := s.categories.Create(ctx, category); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("category %s: %w", req.Slug, ErrAlreadyExists)
		}
		return nil, fmt.Errorf("create category %s: %w", req.Slug, err)
	}

	s.log.Info("Category created",
		zap.String("slug", category.Slug),
		zap.String("name", category.Name),
	)

	categoryResp := response.CategoryToResponse(category)
	return &categoryResp, nil
}

func (s *categoryService) DeleteCategory(ctx context.Context, slug string) error {
	if err := s.categories.DeleteBySlug(ctx, slug); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return err
		}
		return fmt.Errorf("delete category %s: %w", slug, err)
	}

	return nil
}
