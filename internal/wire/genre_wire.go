package wire

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"media-review/internal/adaptor"
	"media-review/internal/data/repository"
	"media-review/pkg/middleware"
	"media-review/pkg/utils"
)

func wireGenre(
	r chi.Router,
	genreHandler *adaptor.GenreHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	r.Get("/api/v1/genres", genreHandler.GetGenres)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(repo.User, config, log))
		r.Use(middleware.RequireAdmin(log))

		r.Post("/api/v1/genres", genreHandler.CreateGenre)
		r.Delete("/api/v1/genres/{slug}", genreHandler.DeleteGenre)
	})
}
