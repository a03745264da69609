package importer

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"media-review/internal/data/entity"
	"media-review/internal/data/repository"
)

// Importer loads catalog fixtures from a directory of CSV files. Files
// reference each other by integer id, so they are loaded in dependency
// order and ids are mapped to deterministic UUIDs.
type Importer struct {
	repo       *repository.Repository
	skipErrors bool
	log        *zap.Logger
}

func New(repo *repository.Repository, skipErrors bool, log *zap.Logger) *Importer {
	return &Importer{
		repo:       repo,
		skipErrors: skipErrors,
		log:        log.With(zap.String("component", "importer")),
	}
}

// rowID maps a CSV integer id to a stable UUID so re-imports and
// cross-file references resolve to the same rows.
func rowID(kind, id string) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(kind+"/"+id))
}

// Run loads every fixture file from dir. With skipErrors set, a bad record
// is logged and skipped; otherwise the first bad record aborts the run.
func (im *Importer) Run(ctx context.Context, dir string) error {
	steps := []struct {
		file string
		load func(ctx context.Context, row record) error
	}{
		{"category.csv", im.loadCategory},
		{"genre.csv", im.loadGenre},
		{"users.csv", im.loadUser},
		{"titles.csv", im.loadTitle},
		{"genre_title.csv", im.loadTitleGenre},
		{"review.csv", im.loadReview},
		{"comments.csv", im.loadComment},
	}

	for _, step := range steps {
		if err := im.loadFile(ctx, filepath.Join(dir, step.file), step.load); err != nil {
			return fmt.Errorf("load %s: %w", step.file, err)
		}
	}

	return nil
}

// record is a header-indexed CSV row.
type record struct {
	header map[string]int
	fields []string
}

func (r record) get(name string) (string, error) {
	idx, ok := r.header[name]
	if !ok || idx >= len(r.fields) {
		return "", fmt.Errorf("missing column %q", name)
	}
	return r.fields[idx], nil
}

func (im *Importer) loadFile(ctx context.Context, path string, load func(ctx context.Context, row record) error) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	headerRow, err := reader.Read()
	if err != nil {
		return fmt.Errorf("read header: %w", err)
	}

	header := make(map[string]int, len(headerRow))
	for i, name := range headerRow {
		header[name] = i
	}

	line := 1
	loaded := 0
	for {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err == nil {
			err = load(ctx, record{header: header, fields: fields})
		}
		if err != nil {
			if !im.skipErrors {
				return fmt.Errorf("line %d: %w", line, err)
			}
			im.log.Warn("Skipping bad record",
				zap.String("file", filepath.Base(path)),
				zap.Int("line", line),
				zap.Error(err),
			)
			continue
		}
		loaded++
	}

	im.log.Info("Fixture file loaded",
		zap.String("file", filepath.Base(path)),
		zap.Int("records", loaded),
	)

	return nil
}

func (im *Importer) loadCategory(ctx context.Context, row record) error {
	id, err := row.get("id")
	if err != nil {
		return err
	}
	name, err := row.get("name")
	if err != nil {
		return err
	}
	slug, err := row.get("slug")
	if err != nil {
		return err
	}

	return im.repo.Category.Create(ctx, &entity.Category{
		BaseSimple: entity.BaseSimple{
			ID:        rowID("category", id),
			CreatedAt: time.Now(),
		},
		Name: name,
		Slug: slug,
	})
}

func (im *Importer) loadGenre(ctx context.Context, row record) error {
	id, err := row.get("id")
	if err != nil {
		return err
	}
	name, err := row.get("name")
	if err != nil {
		return err
	}
	slug, err := row.get("slug")
	if err != nil {
		return err
	}

	return im.repo.Genre.Create(ctx, &entity.Genre{
		BaseSimple: entity.BaseSimple{
			ID:        rowID("genre", id),
			CreatedAt: time.Now(),
		},
		Name: name,
		Slug: slug,
	})
}

func (im *Importer) loadUser(ctx context.Context, row record) error {
	id, err := row.get("id")
	if err != nil {
		return err
	}
	username, err := row.get("username")
	if err != nil {
		return err
	}
	email, err := row.get("email")
	if err != nil {
		return err
	}
	role, err := row.get("role")
	if err != nil {
		return err
	}
	if role == "" {
		role = string(entity.RoleUser)
	}
	if !entity.ValidRole(role) {
		return fmt.Errorf("unknown role %q", role)
	}

	// Optional profile columns.
	bio, _ := row.get("bio")
	firstName, _ := row.get("first_name")
	lastName, _ := row.get("last_name")

	now := time.Now()
	return im.repo.User.Create(ctx, &entity.User{
		Base: entity.Base{
			ID:        rowID("user", id),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Username:  username,
		Email:     email,
		FirstName: firstName,
		LastName:  lastName,
		Bio:       bio,
		Role:      entity.UserRole(role),
	})
}

func (im *Importer) loadTitle(ctx context.Context, row record) error {
	id, err := row.get("id")
	if err != nil {
		return err
	}
	name, err := row.get("name")
	if err != nil {
		return err
	}
	yearStr, err := row.get("year")
	if err != nil {
		return err
	}
	year, err := strconv.Atoi(yearStr)
	if err != nil {
		return fmt.Errorf("bad year %q: %w", yearStr, err)
	}

	var categoryID *uuid.UUID
	if category, _ := row.get("category"); category != "" {
		cid := rowID("category", category)
		categoryID = &cid
	}

	now := time.Now()
	return im.repo.Title.Create(ctx, &entity.Title{
		Base: entity.Base{
			ID:        rowID("title", id),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:       name,
		Year:       year,
		CategoryID: categoryID,
	})
}

func (im *Importer) loadTitleGenre(ctx context.Context, row record) error {
	titleID, err := row.get("title_id")
	if err != nil {
		return err
	}
	genreID, err := row.get("genre_id")
	if err != nil {
		return err
	}

	return im.repo.TitleGenre.Add(ctx, rowID("title", titleID), rowID("genre", genreID))
}

func (im *Importer) loadReview(ctx context.Context, row record) error {
	id, err := row.get("id")
	if err != nil {
		return err
	}
	titleID, err := row.get("title_id")
	if err != nil {
		return err
	}
	text, err := row.get("text")
	if err != nil {
		return err
	}
	author, err := row.get("author")
	if err != nil {
		return err
	}
	scoreStr, err := row.get("score")
	if err != nil {
		return err
	}
	score, err := strconv.Atoi(scoreStr)
	if err != nil {
		return fmt.Errorf("bad score %q: %w", scoreStr, err)
	}
	if score < 1 || score > 10 {
		return fmt.Errorf("score %d out of range", score)
	}

	pubDate, err := parsePubDate(row)
	if err != nil {
		return err
	}

	return im.repo.Review.Create(ctx, &entity.Review{
		BaseSimple: entity.BaseSimple{
			ID:        rowID("review", id),
			CreatedAt: pubDate,
		},
		TitleID:  rowID("title", titleID),
		AuthorID: rowID("user", author),
		Text:     text,
		Score:    score,
	})
}

func (im *Importer) loadComment(ctx context.Context, row record) error {
	id, err := row.get("id")
	if err != nil {
		return err
	}
	reviewID, err := row.get("review_id")
	if err != nil {
		return err
	}
	text, err := row.get("text")
	if err != nil {
		return err
	}
	author, err := row.get("author")
	if err != nil {
		return err
	}

	pubDate, err := parsePubDate(row)
	if err != nil {
		return err
	}

	return im.repo.Comment.Create(ctx, &entity.Comment{
		BaseSimple: entity.BaseSimple{
			ID:        rowID("comment", id),
			CreatedAt: pubDate,
		},
		ReviewID: rowID("review", reviewID),
		AuthorID: rowID("user", author),
		Text:     text,
	})
}

func parsePubDate(row record) (time.Time, error) {
	raw, err := row.get("pub_date")
	if err != nil || raw == "" {
		return time.Now(), nil
	}

	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("bad pub_date %q", raw)
}
