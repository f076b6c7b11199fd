// Package domain holds inbox view types and ports
package domain

import (
	"time"

	tw "daybrief/internal/core/timewindow"
)

// Query carries the per request inputs shared by the inbox endpoints
type Query struct {
	UserID string
	OrgID  string
	Token  string
	Zone   string
	Days   int
}

// WindowView echoes the resolved window back to the caller.
// Label appears here once; per message local strings never repeat it
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

// MessageView is one message shaped for display
type MessageView struct {
	ID             string    `json:"id"`
	Subject        string    `json:"subject"`
	From           string    `json:"from"`
	Preview        string    `json:"preview,omitempty"`
	ReceivedAt     time.Time `json:"received_at"`
	ReceivedLocal  string    `json:"received_local"`
	Unread         bool      `json:"unread,omitempty"`
	Important      bool      `json:"important,omitempty"`
	HasAttachments bool      `json:"has_attachments,omitempty"`
	WebLink        string    `json:"web_link,omitempty"`
}

// DayView is the today response
type DayView struct {
	Date     string        `json:"date"`
	Window   WindowView    `json:"window"`
	Unread   int           `json:"unread"`
	Messages []MessageView `json:"messages"`
}

// RangeView is the recent response
type RangeView struct {
	Days     int           `json:"days"`
	Window   WindowView    `json:"window"`
	Unread   int           `json:"unread"`
	Messages []MessageView `json:"messages"`
}
