package wire

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"media-review/internal/adaptor"
	"media-review/internal/data/repository"
	"media-review/pkg/middleware"
	"media-review/pkg/utils"
)

func wireUser(
	r chi.Router,
	userHandler *adaptor.UserHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	r.Route("/api/v1/users", func(r chi.Router) {
		r.Use(middleware.Authenticate(repo.User, config, log))

		// "me" is reserved and always refers to the requester.
		r.Get("/me", userHandler.GetProfile)
		r.Patch("/me", userHandler.UpdateProfile)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin(log))

			r.Get("/", userHandler.GetUsers)
			r.Post("/", userHandler.CreateUser)
			r.Get("/{username}", userHandler.GetUser)
			r.Patch("/{username}", userHandler.UpdateUser)
			r.Delete("/{username}", userHandler.DeleteUser)
		})
	})
}
