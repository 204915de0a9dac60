package search

import "github.com/go-playground/validator/v10"

// MaxCount bounds how many vacancies one search may return.
const MaxCount = 50

// Request is everything the fetcher needs for one search.
type Request struct {
	Query   string `validate:"required"`
	Region  string `validate:"required"`
	Count   int    `validate:"min=1,max=50"`
	Filters Filters
}

var validate = validator.New()

// Validate checks the request bounds.
func (r *Request) Validate() error {
	return validate.Struct(r)
}
