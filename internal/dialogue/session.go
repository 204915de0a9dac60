package dialogue

import (
	"github.com/lxstatmose/edu-practice-parser/internal/model"
	"github.com/lxstatmose/edu-practice-parser/internal/search"
)

// Session is the per-user conversation context threaded through
// Transition. The transport serialises one user's turns, so a Session is
// never mutated concurrently.
type Session struct {
	UserID  int64          `json:"user_id"`
	ChatID  int64          `json:"chat_id"`
	State   State          `json:"state"`
	Query   string         `json:"query"`
	Region  string         `json:"region"`
	Count   int            `json:"count"`
	Filters search.Filters `json:"filters"`

	// LastResults is the list returned by the last completed search. It
	// survives the end of the dialogue so that /save can store it.
	LastResults []model.Vacancy `json:"last_results,omitempty"`
}

// NewSession returns an idle session.
func NewSession(userID, chatID int64) *Session {
	return &Session{UserID: userID, ChatID: chatID, State: StateIdle}
}

// Results implements archive.Results.
func (s *Session) Results() []model.Vacancy { return s.LastResults }

// ClearResults implements archive.Results.
func (s *Session) ClearResults() { s.LastResults = nil }

// Request builds the fetcher input from the gathered parameters.
func (s *Session) Request(region string) search.Request {
	return search.Request{
		Query:   s.Query,
		Region:  region,
		Count:   s.Count,
		Filters: s.Filters,
	}
}

// beginSearch drops the parameters of any previous dialogue.
func (s *Session) beginSearch() {
	s.Query, s.Region, s.Count = "", "", 0
	s.Filters.Reset()
}
