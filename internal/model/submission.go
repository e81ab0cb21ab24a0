package model

import "time"

// Submission represents a message submitted via the contact form.
// ID and CreatedAt are assigned by the store on creation and never change.
type Submission struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

// Filter selects which submissions the moderation view shows.
type Filter string

const (
	FilterAll    Filter = "all"
	FilterUnread Filter = "unread"
)

// ParseFilter maps a query value to a Filter. Unknown values fall back to FilterAll.
func ParseFilter(s string) Filter {
	if Filter(s) == FilterUnread {
		return FilterUnread
	}
	return FilterAll
}

// Matches reports whether s is visible under f.
func (f Filter) Matches(s *Submission) bool {
	if f == FilterUnread {
		return !s.Read
	}
	return true
}
