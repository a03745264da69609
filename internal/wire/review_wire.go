package wire

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"media-review/internal/adaptor"
	"media-review/internal/data/repository"
	"media-review/pkg/middleware"
	"media-review/pkg/utils"
)

func wireReview(
	r chi.Router,
	reviewHandler *adaptor.ReviewHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	r.Get("/api/v1/titles/{titleID}/reviews", reviewHandler.GetReviews)
	r.Get("/api/v1/titles/{titleID}/reviews/{reviewID}", reviewHandler.GetReview)

	// Any authenticated user can post; edits are authorized in the
	// service (author, moderator or admin).
	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(repo.User, config, log))

		r.Post("/api/v1/titles/{titleID}/reviews", reviewHandler.CreateReview)
		r.Patch("/api/v1/titles/{titleID}/reviews/{reviewID}", reviewHandler.UpdateReview)
		r.Delete("/api/v1/titles/{titleID}/reviews/{reviewID}", reviewHandler.DeleteReview)
	})
}
