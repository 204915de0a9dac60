// Package search holds the search parameters gathered by the dialogue:
// the optional filter state and its translation into hh.ru query
// parameters.
package search

import (
	"bytes"
	"encoding/json"
	"net/url"
	"strconv"
)

// Optional is a value that may be unset. Unset means "no constraint",
// which is not the same thing as a set value that translates to nothing.
type Optional[T any] struct {
	value T
	set   bool
}

// Some returns a set Optional.
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, set: true}
}

// Get returns the value and whether it is set.
func (o Optional[T]) Get() (T, bool) { return o.value, o.set }

// IsSet reports whether a value is present.
func (o Optional[T]) IsSet() bool { return o.set }

// MarshalJSON encodes an unset Optional as null.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.set {
		return []byte("null"), nil
	}
	return json.Marshal(o.value)
}

// UnmarshalJSON treats null as unset.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*o = Optional[T]{}
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*o = Some(v)
	return nil
}

// SalaryRange is the "low-high" bound pair typed by the user.
type SalaryRange struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// Filters accumulates the optional constraints of one search session.
// Experience, Employment and Schedule hold option labels.
type Filters struct {
	Salary     Optional[SalaryRange] `json:"salary"`
	Experience Optional[string]      `json:"experience"`
	Employment Optional[string]      `json:"employment"`
	Schedule   Optional[string]      `json:"schedule"`
}

// Reset drops every constraint.
func (f *Filters) Reset() { *f = Filters{} }

// Empty reports whether no filter is set.
func (f Filters) Empty() bool {
	return !f.Salary.IsSet() && !f.Experience.IsSet() && !f.Employment.IsSet() && !f.Schedule.IsSet()
}

// Apply writes the hh.ru parameters for every set filter into q.
// Labels that translate to no code add nothing.
func (f Filters) Apply(q url.Values) {
	if r, ok := f.Salary.Get(); ok {
		q.Set("salary_from", strconv.Itoa(r.From))
		q.Set("salary_to", strconv.Itoa(r.To))
	}
	setCode(q, "experience", f.Experience, ExperienceOptions)
	setCode(q, "employment", f.Employment, EmploymentOptions)
	setCode(q, "schedule", f.Schedule, ScheduleOptions)
}

func setCode(q url.Values, param string, label Optional[string], options []Option) {
	l, ok := label.Get()
	if !ok {
		return
	}
	if code := codeForLabel(options, l); code != "" {
		q.Set(param, code)
	}
}
