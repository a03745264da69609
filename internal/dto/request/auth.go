package request

type SignUpRequest struct {
	Username string `json:"username" validate:"required,max=150,username"`
	Email    string `json:"email" validate:"required,email,max=254"`
}

type TokenRequest struct {
	Username         string `json:"username" validate:"required,max=150,username"`
	ConfirmationCode string `json:"confirmation_code" validate:"required,max=200"`
}
