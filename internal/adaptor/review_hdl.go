package adaptor

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"media-review/internal/dto/request"
	"media-review/internal/usecase"
	"media-review/pkg/utils"
)

type ReviewHandler struct {
	service usecase.ReviewService
	log     *zap.Logger
}

func NewReviewHandler(service usecase.ReviewService, log *zap.Logger) *ReviewHandler {
	return &ReviewHandler{
		service: service,
		log:     log.With(zap.String("handler", "review")),
	}
}

// GetReviews handles GET /api/v1/titles/{titleID}/reviews (public)
func (h *ReviewHandler) GetReviews(w http.ResponseWriter, r *http.Request) {
	titleID, ok := pathUUID(r, "titleID")
	if !ok {
		utils.ResponseNotFound(w, "Title not found")
		return
	}

	req := parsePagination(r)

	reviews, err := h.service.GetReviews(r.Context(), titleID, req)
	if err != nil {
		respondError(w, h.log, err, "get reviews")
		return
	}

	utils.ResponseSuccess(w, "success", reviews)
}

// GetReview handles GET /api/v1/titles/{titleID}/reviews/{reviewID} (public)
func (h *ReviewHandler) GetReview(w http.ResponseWriter, r *http.Request) {
	titleID, ok := pathUUID(r, "titleID")
	if !ok {
		utils.ResponseNotFound(w, "Title not found")
		return
	}
	reviewID, ok := pathUUID(r, "reviewID")
	if !ok {
		utils.ResponseNotFound(w, "Review not found")
		return
	}

	review, err := h.service.GetReviewByID(r.Context(), titleID, reviewID)
	if err != nil {
		respondError(w, h.log, err, "get review")
		return
	}

	utils.ResponseSuccess(w, "success", review)
}

// CreateReview handles POST /api/v1/titles/{titleID}/reviews (authenticated)
func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	titleID, ok := pathUUID(r, "titleID")
	if !ok {
		utils.ResponseNotFound(w, "Title not found")
		return
	}

	var req request.CreateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	review, err := h.service.CreateReview(r.Context(), titleID, &req)
	if err != nil {
		respondError(w, h.log, err, "create review")
		return
	}

	utils.ResponseCreated(w, "success", review)
}

// UpdateReview handles PATCH /api/v1/titles/{titleID}/reviews/{reviewID}
// (author, moderator or admin)
func (h *ReviewHandler) UpdateReview(w http.ResponseWriter, r *http.Request) {
	titleID, ok := pathUUID(r, "titleID")
	if !ok {
		utils.ResponseNotFound(w, "Title not found")
		return
	}
	reviewID, ok := pathUUID(r, "reviewID")
	if !ok {
		utils.ResponseNotFound(w, "Review not found")
		return
	}

	var req request.UpdateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	review, err := h.service.UpdateReview(r.Context(), titleID, reviewID, &req)
	if err != nil {
		respondError(w, h.log, err, "update review")
		return
	}

	utils.ResponseSuccess(w, "success", review)
}

// DeleteReview handles DELETE /api/v1/titles/{titleID}/reviews/{reviewID}
// (author, moderator or admin)
func (h *ReviewHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	titleID, ok := pathUUID(r, "titleID")
	if !ok {
		utils.ResponseNotFound(w, "Title not found")
		return
	}
	reviewID, ok := pathUUID(r, "reviewID")
	if !ok {
		utils.ResponseNotFound(w, "Review not found")
		return
	}

	if err := h.service.DeleteReview(r.Context(), titleID, reviewID); err != nil {
		respondError(w, h.log, err, "delete review")
		return
	}

	utils.ResponseNoContent(w)
}
