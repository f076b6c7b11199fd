package domain

import (
	"context"

	"golang.org/x/oauth2"

	"daybrief/internal/adapters/llm"
	"daybrief/internal/adapters/mailapi"
	tw "daybrief/internal/core/timewindow"
	usagedom "daybrief/internal/services/usage/domain"
)

// WorkerPort is the scheduled digest loop
type WorkerPort interface {
	Run(ctx context.Context) error
}

// MailPort is the slice of the mailbox API the worker uses. Every call names
// the target user because the worker holds no caller session
type MailPort interface {
	ListEventsFor(ctx context.Context, token, userID string, w tw.Window) ([]mailapi.Event, error)
	ListMessagesFor(ctx context.Context, token, userID string, w tw.Window, top int) ([]mailapi.Message, error)
	SendMailFor(ctx context.Context, token, userID string, d mailapi.Draft) error
	UserProfile(ctx context.Context, token, userID string) (mailapi.Profile, error)
}

// LLMPort runs chat completions
type LLMPort interface {
	Complete(ctx context.Context, req llm.CompletionRequest) (llm.Completion, error)
}

// Ports are dependencies injected into the digest module
type Ports struct {
	Mail   MailPort              // required
	LLM    LLMPort               // required
	Tokens oauth2.TokenSource    // required, app-only credentials
	Usage  usagedom.RecorderPort // optional, nil disables metering
}
