package response

import (
	"math"

	"media-review/internal/data/entity"
)

// TitleResponse is the read shape: nested genre/category objects and the
// computed rating, null when the title has no reviews.
type TitleResponse struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Year        int               `json:"year"`
	Rating      *int              `json:"rating"`
	Description string            `json:"description"`
	Genre       []GenreResponse   `json:"genre"`
	Category    *CategoryResponse `json:"category"`
}

func TitleToResponse(title *entity.Title, genres []*entity.Genre, category *entity.Category, rating *float64) TitleResponse {
	resp := TitleResponse{
		ID:          title.ID.String(),
		Name:        title.Name,
		Year:        title.Year,
		Description: title.Description,
		Genre:       GenresToResponse(genres),
	}

	if category != nil {
		c := CategoryToResponse(category)
		resp.Category = &c
	}

	if rating != nil {
		rounded := int(math.Round(*rating))
		resp.Rating = &rounded
	}

	return resp
}
