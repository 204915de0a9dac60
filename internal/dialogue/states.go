// Package dialogue defines the search conversation as a state machine.
//
// Valid state graph:
//
//	IDLE ──/search──► SEARCH ──► REGION ──► COUNT ──► FILTERS ──search──► IDLE
//	                                        ▲  │        │  ▲
//	                                        └──┘        ▼  │
//	                           SALARY | EXPERIENCE | EMPLOYMENT | SCHEDULE
//
// Every collecting state loops on input it cannot use. /start returns to IDLE and
// /search restarts at SEARCH from any state.
package dialogue

import "fmt"

// State is the position of one user in the conversation.
type State string

const (
	StateIdle       State = "IDLE"
	StateSearch     State = "SEARCH"
	StateRegion     State = "REGION"
	StateCount      State = "COUNT"
	StateFilters    State = "FILTERS"
	StateSalary     State = "SALARY"
	StateExperience State = "EXPERIENCE"
	StateEmployment State = "EMPLOYMENT"
	StateSchedule   State = "SCHEDULE"
)

// validTransitions lists every (from → to) pair a turn may produce.
// Staying in place is listed explicitly where it is a re-prompt.
var validTransitions = map[State][]State{
	StateSearch:     {StateSearch, StateRegion},
	StateRegion:     {StateRegion, StateCount},
	StateCount:      {StateCount, StateFilters},
	StateFilters:    {StateSalary, StateExperience, StateEmployment, StateSchedule, StateFilters, StateIdle},
	StateSalary:     {StateSalary, StateFilters},
	StateExperience: {StateExperience, StateFilters},
	StateEmployment: {StateEmployment, StateFilters},
	StateSchedule:   {StateSchedule, StateFilters},
	// IDLE only leaves through /search
}

// ParseState converts a stored string to a State.
func ParseState(s string) (State, error) {
	st := State(s)
	switch st {
	case StateIdle, StateSearch, StateRegion, StateCount, StateFilters,
		StateSalary, StateExperience, StateEmployment, StateSchedule:
		return st, nil
	}
	return "", fmt.Errorf("unknown dialogue state %q", s)
}

// IsTransitionAllowed reports whether a turn may move from → to. The
// global commands make IDLE and SEARCH reachable from anywhere.
func IsTransitionAllowed(from, to State) bool {
	if to == StateIdle || to == StateSearch {
		return true
	}
	for _, s := range validTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// InConversation reports whether the user is in the middle of a search dialogue.
func InConversation(s State) bool { return s != StateIdle && s != "" }
