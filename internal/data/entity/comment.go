package entity

import (
	"github.com/google/uuid"
)

type Comment struct {
	BaseSimple
	ReviewID uuid.UUID `db:"review_id"`
	AuthorID uuid.UUID `db:"author_id"`
	Text     string    `db:"text"`

	// AuthorUsername is joined from users on read paths.
	AuthorUsername string `db:"author_username"`
}
