package wire

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"media-review/internal/adaptor"
	"media-review/internal/data/repository"
	"media-review/pkg/middleware"
	"media-review/pkg/utils"
)

func wireTitle(
	r chi.Router,
	titleHandler *adaptor.TitleHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	r.Get("/api/v1/titles", titleHandler.GetTitles)
	r.Get("/api/v1/titles/{titleID}", titleHandler.GetTitle)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(repo.User, config, log))
		r.Use(middleware.RequireAdmin(log))

		r.Post("/api/v1/titles", titleHandler.CreateTitle)
		r.Patch("/api/v1/titles/{titleID}", titleHandler.UpdateTitle)
		r.Delete("/api/v1/titles/{titleID}", titleHandler.DeleteTitle)
	})
}
