package entity

import (
	"github.com/google/uuid"
)

// Review is a scored write-up of a title. At most one review exists per
// (title, author) pair; the constraint lives in the database. CreatedAt is
// the publication date and never changes after insert.
type Review struct {
	BaseSimple
	TitleID  uuid.UUID `db:"title_id"`
	AuthorID uuid.UUID `db:"author_id"`
	Text     string    `db:"text"`
	Score    int       `db:"score"` // 1-10

	// AuthorUsername is joined from users on read paths.
	AuthorUsername string `db:"author_username"`
}
