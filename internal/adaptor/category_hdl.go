package adaptor

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"media-review/internal/dto/request"
	"media-review/internal/usecase"
	"media-review/pkg/utils"
)

type CategoryHandler struct {
	service usecase.CategoryService
	log     *zap.Logger
}

func NewCategoryHandler(service usecase.CategoryService, log *zap.Logger) *CategoryHandler {
	return &CategoryHandler{
		service: service,
		log:     log.With(zap.String("handler", "category")),
	}
}

// GetCategories handles GET /api/v1/categories (public)
func (h *CategoryHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	req := parsePagination(r)
	search := r.URL.Query().Get("search")

	categories, err := h.service.GetCategories(r.Context(), req, search)
	if err != nil {
		respondError(w, h.log, err, "get categories")
		return
	}

	utils.ResponseSuccess(w, "success", categories)
}

// CreateCategory handles POST /api/v1/categories (admin)
func (h *CategoryHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req request.CategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	category, err := h.service.CreateCategory(r.Context(), &req)
	if err != nil {
		respondError(w, h.log, err, "create category")
		return
	}

	utils.ResponseCreated(w, "success", category)
}

// DeleteCategory handles DELETE /api/v1/categories/{slug} (admin)
func (h *CategoryHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	if err := h.service.DeleteCategory(r.Context(), slug); err != nil {
		respondError(w, h.log, err, "delete category")
		return
	}

	utils.ResponseNoContent(w)
}
