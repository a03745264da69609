package request

// Author and title come from the authenticated requester and the URL path;
// the body cannot override them.
type CreateReviewRequest struct {
	Text  string `json:"text" validate:"required"`
	Score int    `json:"score" validate:"required,min=1,max=10"`
}

type UpdateReviewRequest struct {
	Text  *string `json:"text,omitempty" validate:"omitempty,min=1"`
	Score *int    `json:"score,omitempty" validate:"omitempty,min=1,max=10"`
}
