package session

import (
	"math"

	"github.com/jarda-app/jarda/internal/domain/item"
)

// Status represents the lifecycle status of a counting session.
type Status string

const (
	// StatusActive means the supervisor may still edit entries.
	StatusActive Status = "active"
	// StatusSubmitted means the session awaits an admin decision.
	StatusSubmitted Status = "submitted"
	// StatusApproved means the session is locked; an admin may reopen it.
	StatusApproved Status = "approved"
)

// Entry is one item's recorded quantity within a session. A nil Quantity is
// "not yet counted" and is distinct from an explicit zero.
type Entry struct {
	ItemID   string   `json:"itemId"`
	Quantity *float64 `json:"quantity"`
	Notes    string   `json:"notes,omitempty"`
	Flagged  bool     `json:"flagged,omitempty"`
}

// Session is one periodic inventory count for one site. It owns its items
// snapshot and entries map exclusively; the item list is independent of the
// template once the session exists.
type Session struct {
	ID        string           `json:"id"`
	SiteID    string           `json:"siteId"`
	SiteName  string           `json:"siteName"`
	StartDate string           `json:"startDate"`
	EndDate   string           `json:"endDate"`
	Status    Status           `json:"status"`
	Entries   map[string]Entry `json:"entries"`
	Items     []item.Item      `json:"items"`
}

// Clone returns a deep copy of the session.
func (s *Session) Clone() *Session {
	out := *s
	out.Items = item.CloneList(s.Items)
	out.Entries = CloneEntries(s.Entries)
	return &out
}

// CloneEntries returns a deep copy of an entries map.
func CloneEntries(entries map[string]Entry) map[string]Entry {
	out := make(map[string]Entry, len(entries))
	for id, e := range entries {
		if e.Quantity != nil {
			q := *e.Quantity
			e.Quantity = &q
		}
		out[id] = e
	}
	return out
}

// Progress is the derived completion state of a session. It is computed,
// never stored.
type Progress struct {
	Filled     int `json:"filled"`
	Total      int `json:"total"`
	Percentage int `json:"percentage"`
}

// Progress reports how many items have a counted quantity. Entries with a
// nil quantity do not count as filled; an explicit zero does.
func (s *Session) Progress() Progress {
	filled := 0
	for _, e := range s.Entries {
		if e.Quantity != nil {
			filled++
		}
	}

	total := len(s.Items)
	pct := 0
	if total > 0 {
		pct = int(math.Round(float64(filled) / float64(total) * 100))
	}
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}

	return Progress{Filled: filled, Total: total, Percentage: pct}
}
