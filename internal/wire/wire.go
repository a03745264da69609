package wire

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"media-review/internal/adaptor"
	"media-review/internal/cache"
	"media-review/internal/data/repository"
	"media-review/internal/usecase"
	"media-review/pkg/mailer"
	"media-review/pkg/middleware"
	"media-review/pkg/utils"
)

// App holds the wired HTTP surface.
type App struct {
	Router *chi.Mux
}

// Wiring initializes all dependencies.
func Wiring(repo *repository.Repository, config *utils.Config, logger *zap.Logger) (*App, error) {
	mail, err := mailer.New(config.Email, logger)
	if err != nil {
		return nil, err
	}

	codes := utils.NewCodeGenerator(
		config.JWT.Secret,
		time.Duration(config.Code.TTLMinutes)*time.Minute,
	)
	ratings := cache.NewRatingCache(config.Redis, logger)

	service := usecase.NewService(repo, config, codes, mail, ratings, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, repo, config, logger)

	return &App{
		Router: router,
	}, nil
}

// setupRouter configures the chi router.
func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	// Updates go through PATCH; PUT on a registered path answers 405.
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseMethodNotAllowed(w, r.Method)
	})

	// Apply routes
	wireAuth(r, handler.Auth)
	wireUser(r, handler.User, repo, config, logger)
	wireCategory(r, handler.Category, repo, config, logger)
	wireGenre(r, handler.Genre, repo, config, logger)
	wireTitle(r, handler.Title, repo, config, logger)
	wireReview(r, handler.Review, repo, config, logger)
	wireComment(r, handler.Comment, repo, config, logger)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
