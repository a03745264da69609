package adaptor

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"media-review/internal/dto/request"
	"media-review/internal/usecase"
	"media-review/pkg/utils"
)

type AuthHandler struct {
	service usecase.AuthService
	log     *zap.Logger
}

func NewAuthHandler(service usecase.AuthService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		log:     log.With(zap.String("handler", "auth")),
	}
}

// SignUp handles POST /api/v1/auth/signup (public)
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req request.SignUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	resp, err := h.service.SignUp(r.Context(), &req)
	if err != nil {
		respondError(w, h.log, err, "sign up")
		return
	}

	utils.ResponseSuccess(w, "confirmation code sent", resp)
}

// Token handles POST /api/v1/auth/token (public)
func (h *AuthHandler) Token(w http.ResponseWriter, r *http.Request) {
	var req request.TokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	resp, err := h.service.Token(r.Context(), &req)
	if err != nil {
		respondError(w, h.log, err, "issue token")
		return
	}

	utils.ResponseSuccess(w, "success", resp)
}
