package adaptor

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"media-review/internal/dto/request"
	"media-review/internal/usecase"
	"media-review/pkg/utils"
)

type CommentHandler struct {
	service usecase.CommentService
	log     *zap.Logger
}

func NewCommentHandler(service usecase.CommentService, log *zap.Logger) *CommentHandler {
	return &CommentHandler{
		service: service,
		log:     log.With(zap.String("handler", "comment")),
	}
}

// commentPath extracts the title/review (and optional comment) ids from the
// URL. ok is false when any of them is malformed.
func commentPath(r *http.Request, withComment bool) (titleID, reviewID, commentID uuid.UUID, ok bool) {
	titleID, ok = pathUUID(r, "titleID")
	if !ok {
		return
	}
	reviewID, ok = pathUUID(r, "reviewID")
	if !ok {
		return
	}
	if withComment {
		commentID, ok = pathUUID(r, "commentID")
	}
	return
}

// GetComments handles GET /api/v1/titles/{titleID}/reviews/{reviewID}/comments (public)
func (h *CommentHandler) GetComments(w http.ResponseWriter, r *http.Request) {
	titleID, reviewID, _, ok := commentPath(r, false)
	if !ok {
		utils.ResponseNotFound(w, "Review not found")
		return
	}

	req := parsePagination(r)

	comments, err := h.service.GetComments(r.Context(), titleID, reviewID, req)
	if err != nil {
		respondError(w, h.log, err, "get comments")
		return
	}

	utils.ResponseSuccess(w, "success", comments)
}

// GetComment handles GET /api/v1/titles/{titleID}/reviews/{reviewID}/comments/{commentID} (public)
func (h *CommentHandler) GetComment(w http.ResponseWriter, r *http.Request) {
	titleID, reviewID, commentID, ok := commentPath(r, true)
	if !ok {
		utils.ResponseNotFound(w, "Comment not found")
		return
	}

	comment, err := h.service.GetCommentByID(r.Context(), titleID, reviewID, commentID)
	if err != nil {
		respondError(w, h.log, err, "get comment")
		return
	}

	utils.ResponseSuccess(w, "success", comment)
}

// CreateComment handles POST /api/v1/titles/{titleID}/reviews/{reviewID}/comments (authenticated)
func (h *CommentHandler) CreateComment(w http.ResponseWriter, r *http.Request) {
	titleID, reviewID, _, ok := commentPath(r, false)
	if !ok {
		utils.ResponseNotFound(w, "Review not found")
		return
	}

	var req request.CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	comment, err := h.service.CreateComment(r.Context(), titleID, reviewID, &req)
	if err != nil {
		respondError(w, h.log, err, "create comment")
		return
	}

	utils.ResponseCreated(w, "success", comment)
}

// UpdateComment handles PATCH /api/v1/titles/{titleID}/reviews/{reviewID}/comments/{commentID}
// (author, moderator or admin)
func (h *CommentHandler) UpdateComment(w http.ResponseWriter, r *http.Request) {
	titleID, reviewID, commentID, ok := commentPath(r, true)
	if !ok {
		utils.ResponseNotFound(w, "Comment not found")
		return
	}

	var req request.UpdateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	comment, err := h.service.UpdateComment(r.Context(), titleID, reviewID, commentID, &req)
	if err != nil {
		respondError(w, h.log, err, "update comment")
		return
	}

	utils.ResponseSuccess(w, "success", comment)
}

// DeleteComment handles DELETE /api/v1/titles/{titleID}/reviews/{reviewID}/comments/{commentID}
// (author, moderator or admin)
func (h *CommentHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	titleID, reviewID, commentID, ok := commentPath(r, true)
	if !ok {
		utils.ResponseNotFound(w, "Comment not found")
		return
	}

	if err := h.service.DeleteComment(r.Context(), titleID, reviewID, commentID); err != nil {
		respondError(w, h.log, err, "delete comment")
		return
	}

	utils.ResponseNoContent(w)
}
