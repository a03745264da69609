package entity

import (
	"github.com/google/uuid"
)

// TitleGenre is the many-to-many join between titles and genres. Rows are
// cascade-deleted with either parent.
type TitleGenre struct {
	BaseSimple
	TitleID uuid.UUID `db:"title_id"`
	GenreID uuid.UUID `db:"genre_id"`
}
