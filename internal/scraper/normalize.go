package scraper

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lxstatmose/edu-practice-parser/internal/model"
)

// ErrContract is returned when hh.ru omits a section it always promises.
var ErrContract = errors.New("hh.ru item violates payload contract")

// TitleMatches reports whether query appears (case-insensitive) in title.
// hh.ru's own text search also matches descriptions and synonyms, so this
// is applied on top of it before a vacancy counts toward the quota.
func TitleMatches(title, query string) bool {
	return strings.Contains(strings.ToLower(title), strings.ToLower(query))
}

// Normalize converts one raw item into a Vacancy. The bool result is false
// when the title does not match query and the item must be skipped.
func Normalize(item Item, query string) (model.Vacancy, bool, error) {
	if !TitleMatches(item.Name, query) {
		return model.Vacancy{}, false, nil
	}

	switch {
	case item.Name == "":
		return model.Vacancy{}, false, fmt.Errorf("vacancy %s: missing name: %w", item.ID, ErrContract)
	case item.AlternateURL == "":
		return model.Vacancy{}, false, fmt.Errorf("vacancy %s: missing alternate_url: %w", item.ID, ErrContract)
	case item.Experience == nil:
		return model.Vacancy{}, false, fmt.Errorf("vacancy %s: missing experience: %w", item.ID, ErrContract)
	case item.Employment == nil:
		return model.Vacancy{}, false, fmt.Errorf("vacancy %s: missing employment: %w", item.ID, ErrContract)
	}

	v := model.Vacancy{
		Title:      item.Name,
		Area:       item.Area.Name,
		Salary:     item.Salary,
		Experience: item.Experience.Name,
		Employment: item.Employment.Name,
		Roles:      make([]string, 0, len(item.ProfessionalRoles)),
		Employer:   model.EmployerUnknown,
		URL:        item.AlternateURL,
	}
	if item.Schedule != nil {
		v.Schedule = item.Schedule.Name
	}
	for _, r := range item.ProfessionalRoles {
		v.Roles = append(v.Roles, r.Name)
	}
	if item.Snippet != nil && item.Snippet.Responsibility != nil {
		v.Snippet = *item.Snippet.Responsibility
	}
	if item.Employer != nil {
		v.Employer = item.Employer.Name
	}

	return v, true, nil
}
