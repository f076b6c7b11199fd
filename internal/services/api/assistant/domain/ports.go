package domain

import (
	"context"

	"daybrief/internal/adapters/llm"
	"daybrief/internal/adapters/mailapi"
	caldom "daybrief/internal/services/api/calendar/domain"
	inboxdom "daybrief/internal/services/api/inbox/domain"
	usagedom "daybrief/internal/services/usage/domain"
)

// ServicePort defines the assistant service contract
type ServicePort interface {
	Briefing(ctx context.Context, id Ident, in BriefingInput) (Briefing, error)
	Query(ctx context.Context, id Ident, in QueryInput) (Answer, error)
	Draft(ctx context.Context, id Ident, in DraftInput) (DraftReply, error)
}

// CalendarPort is the slice of the calendar service the assistant reads
type CalendarPort interface {
	Today(ctx context.Context, q caldom.Query) (caldom.DayView, error)
	Upcoming(ctx context.Context, q caldom.Query) (caldom.RangeView, error)
}

// InboxPort is the slice of the inbox service the assistant reads
type InboxPort interface {
	Today(ctx context.Context, q inboxdom.Query) (inboxdom.DayView, error)
}

// MailPort covers the direct mail API calls the assistant makes itself
type MailPort interface {
	GetMessage(ctx context.Context, token, id string) (mailapi.MessageDetail, error)
	Me(ctx context.Context, token string) (mailapi.Profile, error)
}

// LLMPort runs chat completions
type LLMPort interface {
	Complete(ctx context.Context, req llm.CompletionRequest) (llm.Completion, error)
}

// Ports are dependencies injected into the assistant module
type Ports struct {
	Calendar CalendarPort          // required
	Inbox    InboxPort             // required
	Mail     MailPort              // required
	LLM      LLMPort               // required
	Usage    usagedom.RecorderPort // optional, nil disables metering
}
