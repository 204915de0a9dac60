// Package scraper implements hh.ru vacancy fetching and normalisation.
package scraper

import "github.com/lxstatmose/edu-practice-parser/internal/model"

// Page mirrors the top-level /vacancies JSON response.
type Page struct {
	Items   []Item `json:"items"`
	Found   int    `json:"found"`
	Pages   int    `json:"pages"`
	Page    int    `json:"page"`
	PerPage int    `json:"per_page"`
}

// Item mirrors a single hh.ru vacancy in a search response. Optional
// sections are pointers so that a missing section can be told apart from
// an empty one.
type Item struct {
	ID                string        `json:"id"`
	Name              string        `json:"name"`
	Area              Named         `json:"area"`
	Salary            *model.Salary `json:"salary"`
	Experience        *Named        `json:"experience"`
	Employment        *Named        `json:"employment"`
	Schedule          *Named        `json:"schedule"`
	ProfessionalRoles []Named       `json:"professional_roles"`
	Snippet           *Snippet      `json:"snippet"`
	Employer          *Named        `json:"employer"`
	AlternateURL      string        `json:"alternate_url"`
}

// Named is the {id, name} shape hh.ru uses for dictionary values.
type Named struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Snippet holds the short highlighted excerpts of a vacancy.
type Snippet struct {
	Requirement    *string `json:"requirement"`
	Responsibility *string `json:"responsibility"`
}
