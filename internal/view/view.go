// Package view decides which top-level view a page load renders.
//
// The decision is a plain query-string check. It is not authentication:
// anyone can add the parameter.
package view

import "net/url"

// AdminParam is the query parameter that switches to the moderation view.
const AdminParam = "admin"

// Mode is the top-level view of a page.
type Mode int

const (
	ModePublic Mode = iota
	ModeModeration
)

func (m Mode) String() string {
	if m == ModeModeration {
		return "moderation"
	}
	return "public"
}

// Select returns ModeModeration iff admin is exactly "true".
func Select(q url.Values) Mode {
	if q.Get(AdminParam) == "true" {
		return ModeModeration
	}
	return ModePublic
}
