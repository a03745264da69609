package wire

import (
	"github.com/go-chi/chi/v5"

	"media-review/internal/adaptor"
)

func wireAuth(r chi.Router, authHandler *adaptor.AuthHandler) {
	// Both endpoints are public; they are how a client gets a token in
	// the first place.
	r.Post("/api/v1/auth/signup", authHandler.SignUp)
	r.Post("/api/v1/auth/token", authHandler.Token)
}
