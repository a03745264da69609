package utils

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type usernameProbe struct {
	Username string `validate:"required,username"`
}

type yearProbe struct {
	Year int `validate:"required,year"`
}

type slugProbe struct {
	Slug string `validate:"required,slug"`
}

func TestValidateStruct_Username(t *testing.T) {
	assert.Empty(t, ValidateStruct(usernameProbe{Username: "some.user@site-1"}))
	assert.Empty(t, ValidateStruct(usernameProbe{Username: "reader_42"}))

	// "me" is reserved for the self-profile endpoint.
	assert.NotEmpty(t, ValidateStruct(usernameProbe{Username: "me"}))
	assert.NotEmpty(t, ValidateStruct(usernameProbe{Username: "has space"}))
	assert.NotEmpty(t, ValidateStruct(usernameProbe{Username: "bang!"}))
	assert.NotEmpty(t, ValidateStruct(usernameProbe{Username: ""}))
}

func TestValidateStruct_Year(t *testing.T) {
	assert.Empty(t, ValidateStruct(yearProbe{Year: 1994}))
	assert.Empty(t, ValidateStruct(yearProbe{Year: time.Now().Year()}))

	assert.NotEmpty(t, ValidateStruct(yearProbe{Year: time.Now().Year() + 1}))
	assert.NotEmpty(t, ValidateStruct(yearProbe{Year: -5}))
}

func TestValidateStruct_Slug(t *testing.T) {
	assert.Empty(t, ValidateStruct(slugProbe{Slug: "sci-fi_2"}))

	assert.NotEmpty(t, ValidateStruct(slugProbe{Slug: "bad slug"}))
	assert.NotEmpty(t, ValidateStruct(slugProbe{Slug: "ümlaut"}))
}

func TestValidateStruct_Messages(t *testing.T) {
	errs := ValidateStruct(usernameProbe{Username: ""})
	assert.Equal(t, "This field is required", errs["Username"])

	errs = ValidateStruct(yearProbe{Year: time.Now().Year() + 10})
	assert.Equal(t, fmt.Sprintf("Year must be between 1 and %d", time.Now().Year()), errs["Year"])
}
