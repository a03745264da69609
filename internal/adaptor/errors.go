package adaptor

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"media-review/internal/data/repository"
	"media-review/internal/dto/request"
	"media-review/internal/usecase"
	"media-review/pkg/utils"
)

// respondError maps service errors onto HTTP status codes.
func respondError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, usecase.ErrForbidden):
		log.Warn(operation+" failed - forbidden", zap.Error(err))
		utils.ResponseForbidden(w, err.Error())

	case errors.Is(err, usecase.ErrUserExists),
		errors.Is(err, usecase.ErrAlreadyExists),
		errors.Is(err, usecase.ErrInvalidCode),
		errors.Is(err, usecase.ErrDuplicateReview),
		errors.Is(err, usecase.ErrInvalidReference):
		log.Warn(operation+" failed - bad request", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	default:
		log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}

// pathUUID parses a uuid path parameter. A malformed id can never name an
// existing resource, so the caller should answer 404.
func pathUUID(r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// parsePagination reads page/per_page query parameters with defaults.
func parsePagination(r *http.Request) *request.PaginatedRequest {
	query := r.URL.Query()
	return &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}
}
