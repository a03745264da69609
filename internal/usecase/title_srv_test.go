package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"media-review/internal/data/entity"
	"media-review/internal/data/repository"
	"media-review/internal/dto/request"
)

func titleRepos() (*MockTitleRepository, *MockCategoryRepository, *MockGenreRepository, *MockTitleGenreRepository, *MockReviewRepository, *repository.Repository) {
	titles := new(MockTitleRepository)
	categories := new(MockCategoryRepository)
	genres := new(MockGenreRepository)
	titleGenres := new(MockTitleGenreRepository)
	reviews := new(MockReviewRepository)

	repo := &repository.Repository{
		Title:      titles,
		Category:   categories,
		Genre:      genres,
		TitleGenre: titleGenres,
		Review:     reviews,
	}
	return titles, categories, genres, titleGenres, reviews, repo
}

func TestCreateTitle_WithCategoryAndGenres(t *testing.T) {
	titles, categories, genres, titleGenres, reviews, repo := titleRepos()
	svc := NewTitleService(repo, noopRatings(), zap.NewNop())

	category := &entity.Category{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
		Name:       "Movies",
		Slug:       "movies",
	}
	scifi := &entity.Genre{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
		Name:       "Sci-Fi",
		Slug:       "sci-fi",
	}

	categories.On("FindBySlug", mock.Anything, "movies").Return(category, nil)
	genres.On("FindBySlugs", mock.Anything, []string{"sci-fi"}).Return([]*entity.Genre{scifi}, nil)
	titles.On("Create", mock.Anything, mock.AnythingOfType("*entity.Title")).Return(nil)
	titleGenres.On("Set", mock.Anything, mock.AnythingOfType("uuid.UUID"), []uuid.UUID{scifi.ID}).Return(nil)
	titleGenres.On("ListGenresByTitle", mock.Anything, mock.AnythingOfType("uuid.UUID")).Return([]*entity.Genre{scifi}, nil)
	categories.On("FindByID", mock.Anything, category.ID).Return(category, nil)
	reviews.On("AverageScoreByTitle", mock.Anything, mock.AnythingOfType("uuid.UUID")).Return(nil, nil)

	resp, err := svc.CreateTitle(context.Background(), &request.TitleRequest{
		Name:     "Alien",
		Year:     1979,
		Genre:    []string{"sci-fi"},
		Category: "movies",
	})

	assert.NoError(t, err)
	assert.Equal(t, "Alien", resp.Name)
	assert.Equal(t, 1979, resp.Year)
	assert.Nil(t, resp.Rating)
	assert.Equal(t, "movies", resp.Category.Slug)
	assert.Len(t, resp.Genre, 1)
	assert.Equal(t, "sci-fi", resp.Genre[0].Slug)
	titles.AssertExpectations(t)
	titleGenres.AssertExpectations(t)
}

func TestCreateTitle_UnknownCategorySlug(t *testing.T) {
	titles, categories, _, _, _, repo := titleRepos()
	svc := NewTitleService(repo, noopRatings(), zap.NewNop())

	categories.On("FindBySlug", mock.Anything, "nope").Return(nil, repository.ErrNotFound)

	resp, err := svc.CreateTitle(context.Background(), &request.TitleRequest{
		Name:     "Alien",
		Year:     1979,
		Category: "nope",
	})

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrInvalidReference)
	titles.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestGetTitleByID_RatingRounded(t *testing.T) {
	titles, _, _, titleGenres, reviews, repo := titleRepos()
	svc := NewTitleService(repo, noopRatings(), zap.NewNop())

	titleID := uuid.New()
	title := &entity.Title{
		Base: entity.Base{ID: titleID},
		Name: "Alien",
		Year: 1979,
	}
	avg := 7.5

	titles.On("FindByID", mock.Anything, titleID).Return(title, nil)
	titleGenres.On("ListGenresByTitle", mock.Anything, titleID).Return(nil, nil)
	reviews.On("AverageScoreByTitle", mock.Anything, titleID).Return(&avg, nil)

	resp, err := svc.GetTitleByID(context.Background(), titleID)

	assert.NoError(t, err)
	assert.NotNil(t, resp.Rating)
	assert.Equal(t, 8, *resp.Rating)
	assert.Nil(t, resp.Category)
}

func TestUpdateTitle_ReplacesGenres(t *testing.T) {
	titles, _, genres, titleGenres, reviews, repo := titleRepos()
	svc := NewTitleService(repo, noopRatings(), zap.NewNop())

	titleID := uuid.New()
	title := &entity.Title{
		Base: entity.Base{ID: titleID},
		Name: "Alien",
		Year: 1979,
	}
	horror := &entity.Genre{
		BaseSimple: entity.BaseSimple{ID: uuid.New()},
		Name:       "Horror",
		Slug:       "horror",
	}

	titles.On("FindByID", mock.Anything, titleID).Return(title, nil)
	genres.On("FindBySlugs", mock.Anything, []string{"horror"}).Return([]*entity.Genre{horror}, nil)
	titleGenres.On("Set", mock.Anything, titleID, []uuid.UUID{horror.ID}).Return(nil)
	titleGenres.On("ListGenresByTitle", mock.Anything, titleID).Return([]*entity.Genre{horror}, nil)
	reviews.On("AverageScoreByTitle", mock.Anything, titleID).Return(nil, nil)

	resp, err := svc.UpdateTitle(context.Background(), titleID, &request.UpdateTitleRequest{
		Genre: []string{"horror"},
	})

	assert.NoError(t, err)
	assert.Len(t, resp.Genre, 1)
	assert.Equal(t, "horror", resp.Genre[0].Slug)
	// Genre-only change must not rewrite the titles row.
	titles.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	titleGenres.AssertExpectations(t)
}

func TestDeleteTitle_NotFound(t *testing.T) {
	titles, _, _, _, _, repo := titleRepos()
	svc := NewTitleService(repo, noopRatings(), zap.NewNop())

	titleID := uuid.New()
	titles.On("Delete", mock.Anything, titleID).Return(repository.ErrNotFound)

	err := svc.DeleteTitle(context.Background(), titleID)

	assert.ErrorIs(t, err, repository.ErrNotFound)
}
