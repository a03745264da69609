package request

// TitleRequest is the write shape: genres and category are referenced by
// slug, never by id or nested object.
type TitleRequest struct {
	Name        string   `json:"name" validate:"required,max=256"`
	Year        int      `json:"year" validate:"required,year"`
	Description string   `json:"description"`
	Genre       []string `json:"genre" validate:"omitempty,dive,max=50,slug"`
	Category    string   `json:"category" validate:"omitempty,max=50,slug"`
}

type UpdateTitleRequest struct {
	Name        *string  `json:"name,omitempty" validate:"omitempty,max=256"`
	Year        *int     `json:"year,omitempty" validate:"omitempty,year"`
	Description *string  `json:"description,omitempty"`
	Genre       []string `json:"genre,omitempty" validate:"omitempty,dive,max=50,slug"`
	Category    *string  `json:"category,omitempty" validate:"omitempty,max=50,slug"`
}
