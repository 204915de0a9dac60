// Package model defines shared data structures for the vacancy bot.
package model

import (
	"bytes"
	"encoding/json"
)

// EmployerUnknown is stored when hh.ru omits the employer section.
const EmployerUnknown = "Не указано"

// Salary mirrors the hh.ru salary object. Either bound may be absent.
// A decoded salary keeps the original object and encodes back to it, so
// fields hh.ru adds beyond the typed ones reach vacancies.salary (JSONB)
// unchanged.
type Salary struct {
	From     *int   `json:"from"`
	To       *int   `json:"to"`
	Currency string `json:"currency"`
	Gross    *bool  `json:"gross,omitempty"`

	raw json.RawMessage
}

type plainSalary Salary

func (s *Salary) UnmarshalJSON(data []byte) error {
	var p plainSalary
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*s = Salary(p)
	if trimmed := bytes.TrimSpace(data); !bytes.Equal(trimmed, []byte("null")) {
		s.raw = append(json.RawMessage(nil), trimmed...)
	}
	return nil
}

func (s Salary) MarshalJSON() ([]byte, error) {
	if len(s.raw) > 0 {
		return s.raw, nil
	}
	return json.Marshal(plainSalary(s))
}

// Vacancy is a normalised job posting. Title and URL are never empty;
// every other field degrades to "" (or nil salary) instead of being absent.
type Vacancy struct {
	Title      string   `json:"name"`
	Area       string   `json:"area"`
	Salary     *Salary  `json:"salary"`
	Experience string   `json:"experience"`
	Employment string   `json:"employment"`
	Schedule   string   `json:"schedule"`
	Roles      []string `json:"professional_roles"`
	Snippet    string   `json:"snippet"`
	Employer   string   `json:"employer"`
	URL        string   `json:"url"`
}
