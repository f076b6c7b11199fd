// Package domain holds assistant inputs, views, and ports
package domain

import "time"

// Ident is the caller identity extracted by the auth middleware
type Ident struct {
	UserID string
	OrgID  string
	Token  string
}

// BriefingInput asks for a summary of today, or of today through Days ahead
type BriefingInput struct {
	Days int    `json:"days" validate:"omitempty,min=0,max=31" example:"0"`
	Zone string `json:"zone,omitempty" validate:"omitempty,max=64" example:"America/New_York"`
}

// QueryInput asks a free-form question over the same windowed context
type QueryInput struct {
	Question string `json:"question" validate:"required" example:"When is my first meeting?"`
	Days     int    `json:"days" validate:"omitempty,min=0,max=31" example:"0"`
	Zone     string `json:"zone,omitempty" validate:"omitempty,max=64"`
}

// DraftInput asks for a reply draft to one message. The draft is returned to
// the caller, never sent
type DraftInput struct {
	MessageID    string `json:"message_id" validate:"required" example:"AAMkADg3"`
	Instructions string `json:"instructions,omitempty" example:"Accept the invitation and propose Friday"`
	Tone         string `json:"tone,omitempty" validate:"omitempty,max=64" example:"friendly"`
}

// WindowView echoes the context window the answer was built over
type WindowView struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Zone  string    `json:"zone"`
	Label string    `json:"label"`
}

// Briefing is the summary response
type Briefing struct {
	Summary      string     `json:"summary"`
	Window       WindowView `json:"window"`
	EventCount   int        `json:"event_count"`
	MessageCount int        `json:"message_count"`
	Model        string     `json:"model"`
}

// Answer is the question response
type Answer struct {
	Answer       string     `json:"answer"`
	Window       WindowView `json:"window"`
	EventCount   int        `json:"event_count"`
	MessageCount int        `json:"message_count"`
	Model        string     `json:"model"`
}

// DraftReply is a drafted reply for the caller to review and send themselves
type DraftReply struct {
	MessageID string `json:"message_id"`
	To        string `json:"to"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
	Model     string `json:"model"`
}
