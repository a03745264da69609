package adaptor

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"media-review/internal/data/repository"
	"media-review/internal/dto/request"
	"media-review/internal/usecase"
	"media-review/pkg/utils"
)

type TitleHandler struct {
	service usecase.TitleService
	log     *zap.Logger
}

func NewTitleHandler(service usecase.TitleService, log *zap.Logger) *TitleHandler {
	return &TitleHandler{
		service: service,
		log:     log.With(zap.String("handler", "title")),
	}
}

// GetTitles handles GET /api/v1/titles (public)
// Supports ?category=slug&genre=slug&name=text&year=1994 filters.
func (h *TitleHandler) GetTitles(w http.ResponseWriter, r *http.Request) {
	req := parsePagination(r)

	query := r.URL.Query()
	filter := repository.TitleFilter{
		CategorySlug: query.Get("category"),
		GenreSlug:    query.Get("genre"),
		Name:         query.Get("name"),
	}
	if yearStr := query.Get("year"); yearStr != "" {
		year := utils.ParseInt(yearStr, 0)
		if year == 0 {
			utils.ResponseBadRequest(w, "Invalid year filter", nil)
			return
		}
		filter.Year = &year
	}

	titles, err := h.service.GetTitles(r.Context(), req, filter)
	if err != nil {
		respondError(w, h.log, err, "get titles")
		return
	}

	utils.ResponseSuccess(w, "success", titles)
}

// GetTitle handles GET /api/v1/titles/{titleID} (public)
func (h *TitleHandler) GetTitle(w http.ResponseWriter, r *http.Request) {
	titleID, ok := pathUUID(r, "titleID")
	if !ok {
		utils.ResponseNotFound(w, "Title not found")
		return
	}

	title, err := h.service.GetTitleByID(r.Context(), titleID)
	if err != nil {
		respondError(w, h.log, err, "get title")
		return
	}

	utils.ResponseSuccess(w, "success", title)
}

// CreateTitle handles POST /api/v1/titles (admin)
func (h *TitleHandler) CreateTitle(w http.ResponseWriter, r *http.Request) {
	var req request.TitleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	title, err := h.service.CreateTitle(r.Context(), &req)
	if err != nil {
		respondError(w, h.log, err, "create title")
		return
	}

	utils.ResponseCreated(w, "success", title)
}

// UpdateTitle handles PATCH /api/v1/titles/{titleID} (admin)
func (h *TitleHandler) UpdateTitle(w http.ResponseWriter, r *http.Request) {
	titleID, ok := pathUUID(r, "titleID")
	if !ok {
		utils.ResponseNotFound(w, "Title not found")
		return
	}

	var req request.UpdateTitleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	title, err := h.service.UpdateTitle(r.Context(), titleID, &req)
	if err != nil {
		respondError(w, h.log, err, "update title")
		return
	}

	utils.ResponseSuccess(w, "success", title)
}

// DeleteTitle handles DELETE /api/v1/titles/{titleID} (admin)
func (h *TitleHandler) DeleteTitle(w http.ResponseWriter, r *http.Request) {
	titleID, ok := pathUUID(r, "titleID")
	if !ok {
		utils.ResponseNotFound(w, "Title not found")
		return
	}

	if err := h.service.DeleteTitle(r.Context(), titleID); err != nil {
		respondError(w, h.log, err, "delete title")
		return
	}

	utils.ResponseNoContent(w)
}
