package entity

// Category groups titles by medium (film, book, music). Deleting a category
// detaches its titles rather than removing them.
type Category struct {
	BaseSimple
	Name string `db:"name"`
	Slug string `db:"slug"`
}
