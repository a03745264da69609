package usecase

import (
	"go.uber.org/zap"

	"media-review/internal/cache"
	"media-review/internal/data/repository"
	"media-review/pkg/mailer"
	"media-review/pkg/utils"
)

type Service struct {
	Auth     AuthService
	User     UserService
	Category CategoryService
	Genre    GenreService
	Title    TitleService
	Review   ReviewService
	Comment  CommentService
}

func NewService(
	repo *repository.Repository,
	config *utils.Config,
	codes *utils.CodeGenerator,
	mail mailer.Mailer,
	ratings *cache.RatingCache,
	log *zap.Logger,
) *Service {
	title := NewTitleService(repo, ratings, log)

	return &Service{
		Auth:     NewAuthService(repo.User, config, codes, mail, log),
		User:     NewUserService(repo.User, log),
		Category: NewCategoryService(repo.Category, log),
		Genre:    NewGenreService(repo.Genre, log),
		Title:    title,
		Review:   NewReviewService(repo, ratings, log),
		Comment:  NewCommentService(repo, log),
	}
}
