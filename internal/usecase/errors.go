package usecase

import (
	"errors"
)

// Sentinel errors handlers map onto HTTP status codes with errors.Is.
var (
	// ErrForbidden means the requester is authenticated but lacks the
	// rights for the operation.
	ErrForbidden = errors.New("operation not allowed")

	// ErrUserExists means the username or email is already taken by a
	// different account.
	ErrUserExists = errors.New("username or email already taken")

	// ErrAlreadyExists means a unique field (slug) is already in use.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidCode means the confirmation code did not verify.
	ErrInvalidCode = errors.New("invalid or expired confirmation code")

	// ErrDuplicateReview means the author already reviewed this title.
	ErrDuplicateReview = errors.New("review for this title already exists")

	// ErrInvalidReference means the request body referenced a category or
	// genre slug that does not exist.
	ErrInvalidReference = errors.New("referenced slug does not exist")
)
