package wire

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"media-review/internal/adaptor"
	"media-review/internal/data/repository"
	"media-review/pkg/middleware"
	"media-review/pkg/utils"
)

func wireCategory(
	r chi.Router,
	categoryHandler *adaptor.CategoryHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// Reading the catalog is public.
	r.Get("/api/v1/categories", categoryHandler.GetCategories)

	// Catalog writes are admin only.
	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(repo.User, config, log))
		r.Use(middleware.RequireAdmin(log))

		r.Post("/api/v1/categories", categoryHandler.CreateCategory)
		r.Delete("/api/v1/categories/{slug}", categoryHandler.DeleteCategory)
	})
}
