// Package domain holds calendar view types and ports
package domain

import (
	"time"

	tw "daybrief/internal/core/timewindow"
)

// Query carries the per request inputs shared by the calendar endpoints.
// Zone is an optional display zone override from the query string; Days is
// the span for the range endpoints and stays zero for today
type Query struct {
	UserID string
	OrgID  string
	Token  string
	Zone   string
	Days   int
}

// WindowView echoes the resolved day window back to the caller.
// Label appears here once; the per event local strings never repeat it
type WindowView struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Zone  string    `json:"zone"`
	Label string    `json:"label"`
}

// WindowViewOf shapes a core window for the wire
func WindowViewOf(w tw.Window) WindowView {
	return WindowView{Start: w.Start, End: w.End, Zone: w.Zone, Label: w.Label}
}

// EventView is one concrete event instance shaped for display.
// Instants are UTC RFC3339; the local strings are rendered in the window zone
type EventView struct {
	ID          string    `json:"id"`
	Subject     string    `json:"subject"`
	Organizer   string    `json:"organizer,omitempty"`
	Location    string    `json:"location,omitempty"`
	StartsAt    time.Time `json:"starts_at"`
	EndsAt      time.Time `json:"ends_at"`
	StartsLocal string    `json:"starts_local"`
	EndsLocal   string    `json:"ends_local"`
	AllDay      bool      `json:"all_day,omitempty"`
	Online      bool      `json:"online,omitempty"`
	JoinURL     string    `json:"join_url,omitempty"`
	Recurring   bool      `json:"recurring,omitempty"`
	WebLink     string    `json:"web_link,omitempty"`
}

// DayView is the today response
type DayView struct {
	Date   string      `json:"date"`
	Window WindowView  `json:"window"`
	Events []EventView `json:"events"`
}

// RangeView is the upcoming response
type RangeView struct {
	Days   int         `json:"days"`
	Window WindowView  `json:"window"`
	Events []EventView `json:"events"`
}
