package dialogue

import (
	"strconv"
	"strings"

	"github.com/lxstatmose/edu-practice-parser/internal/search"
)

// EventKind tells commands, free text and button presses apart.
type EventKind int

const (
	EventText EventKind = iota
	EventCommand
	EventChoice
)

// Event is one user input. For commands Value is the name without the
// leading slash; for choices it is the callback data.
type Event struct {
	Kind  EventKind
	Value string
}

// Command, Text and Choice build events.
func Command(name string) Event { return Event{Kind: EventCommand, Value: name} }
func Text(s string) Event       { return Event{Kind: EventText, Value: s} }
func Choice(data string) Event  { return Event{Kind: EventChoice, Value: data} }

// InputError is a malformed user input. Msg is shown to the user as is.
type InputError struct{ Msg string }

func (e *InputError) Error() string { return e.Msg }

// ParseCount reads the requested number of vacancies.
func ParseCount(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, &InputError{Msg: msgCountNotNumber}
	}
	if n <= 0 {
		return 0, &InputError{Msg: msgCountNotPositiv}
	}
	if n > search.MaxCount {
		return 0, &InputError{Msg: msgCountTooLarge}
	}
	return n, nil
}

// ParseSalary reads a "low-high" range.
func ParseSalary(s string) (search.SalaryRange, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 2 {
		return search.SalaryRange{}, &InputError{Msg: msgSalaryFormat}
	}
	from, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
	to, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err1 != nil || err2 != nil {
		return search.SalaryRange{}, &InputError{Msg: msgSalaryNumbers}
	}
	return search.SalaryRange{From: from, To: to}, nil
}
