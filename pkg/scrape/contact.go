// Package scrape defines the shared data contract between the bot surface,
// the scraping engine, and the persistence sinks.
package scrape

import (
	"strings"
	"time"
)

// Contact is one collected group member. It is immutable after creation and
// owned by the in-run batch until flushed to the sinks.
type Contact struct {
	// ID is the member's numeric Telegram identifier.
	ID int64 `json:"id"`

	// Username is the member's public handle prefixed with "@", or empty.
	Username string `json:"username,omitempty"`

	// Phone is the member's phone number prefixed with "+", or empty.
	// Only visible when the scraping session is allowed to see it.
	Phone string `json:"phone,omitempty"`

	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`

	// Group is the requester-supplied label of the group this contact was
	// collected from. Always non-empty.
	Group string `json:"group"`

	// CapturedAt is when the member was collected.
	CapturedAt time.Time `json:"captured_at"`
}

// HasUsername reports whether the contact carries a public handle.
func (c Contact) HasUsername() bool { return c.Username != "" }

// HasPhone reports whether the contact carries a visible phone number.
func (c Contact) HasPhone() bool { return c.Phone != "" }

// DisplayName returns "First Last" with missing parts omitted.
func (c Contact) DisplayName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}
