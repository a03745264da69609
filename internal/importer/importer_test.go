package importer

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"media-review/internal/data/entity"
	"media-review/internal/data/repository"
)

// The fakes record what was created; embedding the interface satisfies the
// methods the importer never calls.

type fakeCategoryRepo struct {
	repository.CategoryRepository
	created []*entity.Category
}

func (f *fakeCategoryRepo) Create(_ context.Context, c *entity.Category) error {
	f.created = append(f.created, c)
	return nil
}

type fakeGenreRepo struct {
	repository.GenreRepository
	created []*entity.Genre
}

func (f *fakeGenreRepo) Create(_ context.Context, g *entity.Genre) error {
	f.created = append(f.created, g)
	return nil
}

type fakeUserRepo struct {
	repository.UserRepository
	created []*entity.User
}

func (f *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	f.created = append(f.created, u)
	return nil
}

type fakeTitleRepo struct {
	repository.TitleRepository
	created []*entity.Title
}

func (f *fakeTitleRepo) Create(_ context.Context, t *entity.Title) error {
	f.created = append(f.created, t)
	return nil
}

type fakeTitleGenreRepo struct {
	repository.TitleGenreRepository
	links int
}

func (f *fakeTitleGenreRepo) Add(_ context.Context, _, _ uuid.UUID) error {
	f.links++
	return nil
}

type fakeReviewRepo struct {
	repository.ReviewRepository
	created []*entity.Review
}

func (f *fakeReviewRepo) Create(_ context.Context, r *entity.Review) error {
	f.created = append(f.created, r)
	return nil
}

type fakeCommentRepo struct {
	repository.CommentRepository
	created []*entity.Comment
}

func (f *fakeCommentRepo) Create(_ context.Context, c *entity.Comment) error {
	f.created = append(f.created, c)
	return nil
}

func writeFixtures(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

func goodFixtures() map[string]string {
	return map[string]string{
		"category.csv":    "id,name,slug\n1,Movies,movies\n",
		"genre.csv":       "id,name,slug\n1,Sci-Fi,sci-fi\n",
		"users.csv":       "id,username,email,role,bio,first_name,last_name\n100,reader,reader@example.com,user,,,\n",
		"titles.csv":      "id,name,year,category\n10,Alien,1979,1\n",
		"genre_title.csv": "id,title_id,genre_id\n1,10,1\n",
		"review.csv":      "id,title_id,text,author,score,pub_date\n5,10,Great,100,9,2019-09-24T21:08:21.567Z\n",
		"comments.csv":    "id,review_id,text,author,pub_date\n7,5,Agreed,100,2019-09-25T10:00:00Z\n",
	}
}

func newFakes() (*fakeCategoryRepo, *fakeGenreRepo, *fakeUserRepo, *fakeTitleRepo, *fakeTitleGenreRepo, *fakeReviewRepo, *fakeCommentRepo, *repository.Repository) {
	categories := &fakeCategoryRepo{}
	genres := &fakeGenreRepo{}
	users := &fakeUserRepo{}
	titles := &fakeTitleRepo{}
	titleGenres := &fakeTitleGenreRepo{}
	reviews := &fakeReviewRepo{}
	comments := &fakeCommentRepo{}

	repo := &repository.Repository{
		User:       users,
		Category:   categories,
		Genre:      genres,
		Title:      titles,
		TitleGenre: titleGenres,
		Review:     reviews,
		Comment:    comments,
	}
	return categories, genres, users, titles, titleGenres, reviews, comments, repo
}

func TestImporter_LoadsFixtures(t *testing.T) {
	categories, genres, users, titles, titleGenres, reviews, comments, repo := newFakes()
	dir := writeFixtures(t, goodFixtures())

	im := New(repo, false, zap.NewNop())
	err := im.Run(context.Background(), dir)

	require.NoError(t, err)
	assert.Len(t, categories.created, 1)
	assert.Len(t, genres.created, 1)
	assert.Len(t, users.created, 1)
	assert.Len(t, titles.created, 1)
	assert.Equal(t, 1, titleGenres.links)
	assert.Len(t, reviews.created, 1)
	assert.Len(t, comments.created, 1)

	// Integer ids map deterministically, so cross-file references line up.
	require.NotNil(t, titles.created[0].CategoryID)
	assert.Equal(t, categories.created[0].ID, *titles.created[0].CategoryID)
	assert.Equal(t, titles.created[0].ID, reviews.created[0].TitleID)
	assert.Equal(t, users.created[0].ID, reviews.created[0].AuthorID)
	assert.Equal(t, reviews.created[0].ID, comments.created[0].ReviewID)

	// pub_date becomes the record's creation time.
	assert.Equal(t, 2019, reviews.created[0].CreatedAt.Year())
	assert.Equal(t, 9, reviews.created[0].Score)
}

func TestImporter_SkipErrorsContinues(t *testing.T) {
	_, _, _, _, _, reviews, _, repo := newFakes()

	files := goodFixtures()
	files["review.csv"] = "id,title_id,text,author,score,pub_date\n" +
		"5,10,Bad score,100,eleven,2019-09-24T21:08:21Z\n" +
		"6,10,Fine,100,7,2019-09-24T21:08:21Z\n"
	dir := writeFixtures(t, files)

	im := New(repo, true, zap.NewNop())
	err := im.Run(context.Background(), dir)

	require.NoError(t, err)
	assert.Len(t, reviews.created, 1)
	assert.Equal(t, "Fine", reviews.created[0].Text)
}

func TestImporter_StrictModeAborts(t *testing.T) {
	_, _, _, _, _, reviews, _, repo := newFakes()

	files := goodFixtures()
	files["review.csv"] = "id,title_id,text,author,score,pub_date\n" +
		"5,10,Out of range,100,11,2019-09-24T21:08:21Z\n"
	dir := writeFixtures(t, files)

	im := New(repo, false, zap.NewNop())
	err := im.Run(context.Background(), dir)

	assert.Error(t, err)
	assert.Empty(t, reviews.created)
}

func TestImporter_MissingFile(t *testing.T) {
	_, _, _, _, _, _, _, repo := newFakes()

	files := goodFixtures()
	delete(files, "titles.csv")
	dir := writeFixtures(t, files)

	im := New(repo, true, zap.NewNop())
	err := im.Run(context.Background(), dir)

	assert.Error(t, err)
}
