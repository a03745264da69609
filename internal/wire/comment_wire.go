package wire

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"media-review/internal/adaptor"
	"media-review/internal/data/repository"
	"media-review/pkg/middleware"
	"media-review/pkg/utils"
)

func wireComment(
	r chi.Router,
	commentHandler *adaptor.CommentHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	r.Get("/api/v1/titles/{titleID}/reviews/{reviewID}/comments", commentHandler.GetComments)
	r.Get("/api/v1/titles/{titleID}/reviews/{reviewID}/comments/{commentID}", commentHandler.GetComment)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(repo.User, config, log))

		r.Post("/api/v1/titles/{titleID}/reviews/{reviewID}/comments", commentHandler.CreateComment)
		r.Patch("/api/v1/titles/{titleID}/reviews/{reviewID}/comments/{commentID}", commentHandler.UpdateComment)
		r.Delete("/api/v1/titles/{titleID}/reviews/{reviewID}/comments/{commentID}", commentHandler.DeleteComment)
	})
}
