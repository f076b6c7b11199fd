// Package service runs LLM assisted summaries, answers, and reply drafts
// over windowed calendar and mail context
package service

import (
	"context"
	"strings"
	"time"

	"daybrief/internal/adapters/llm"
	"daybrief/internal/adapters/mailapi"
	"daybrief/internal/core/prompt"
	tw "daybrief/internal/core/timewindow"
	perr "daybrief/internal/platform/errors"
	"daybrief/internal/platform/logger"
	pnet "daybrief/internal/platform/net"
	"daybrief/internal/services/api/assistant/domain"
	caldom "daybrief/internal/services/api/calendar/domain"
	inboxdom "daybrief/internal/services/api/inbox/domain"
	usagedom "daybrief/internal/services/usage/domain"
)

const (
	defaultMaxTokens = 700

	routeBriefing = "assistant.briefing"
	routeQuery    = "assistant.query"
	routeDraft    = "assistant.draft"
)

// Config tunes the service
type Config struct {
	// MaxTokens caps the completion size; zero means 700
	MaxTokens int
}

// Service defines the service contract for assistant
type Service interface{ domain.ServicePort }

// Svc implements the Service interface
type Svc struct {
	cal   domain.CalendarPort
	inbox domain.InboxPort
	mail  domain.MailPort
	llm   domain.LLMPort
	usage usagedom.RecorderPort

	maxTokens int
	log       *logger.Logger
	now       func() time.Time
}

// New creates a new assistant service
func New(p domain.Ports, cfg Config) *Svc {
	if p.Calendar == nil {
		panic("assistant.Service requires a calendar port")
	}
	if p.Inbox == nil {
		panic("assistant.Service requires an inbox port")
	}
	if p.Mail == nil {
		panic("assistant.Service requires a mail port")
	}
	if p.LLM == nil {
		panic("assistant.Service requires an llm port")
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	return &Svc{
		cal:       p.Calendar,
		inbox:     p.Inbox,
		mail:      p.Mail,
		llm:       p.LLM,
		usage:     p.Usage,
		maxTokens: maxTokens,
		log:       logger.Named("assistant"),
		now:       time.Now,
	}
}

// Briefing summarizes the caller's day, or today through Days ahead
func (s *Svc) Briefing(ctx context.Context, id domain.Ident, in domain.BriefingInput) (domain.Briefing, error) {
	started := s.now()
	out, usage, err := s.briefing(ctx, id, in)
	s.meter(ctx, id, routeBriefing, usagedom.KindBriefing, started, usage, err)
	return out, err
}

func (s *Svc) briefing(ctx context.Context, id domain.Ident, in domain.BriefingInput) (domain.Briefing, llm.Usage, error) {
	dc, err := s.dayContext(ctx, id, in.Days, in.Zone)
	if err != nil {
		return domain.Briefing{}, llm.Usage{}, err
	}
	comp, err := s.complete(ctx, prompt.Briefing(dc.data))
	if err != nil {
		return domain.Briefing{}, llm.Usage{}, err
	}
	return domain.Briefing{
		Summary:      comp.Content,
		Window:       dc.window,
		EventCount:   len(dc.data.Events),
		MessageCount: len(dc.data.Messages),
		Model:        comp.Model,
	}, comp.Usage, nil
}

// Query answers a free-form question over the same windowed context
func (s *Svc) Query(ctx context.Context, id domain.Ident, in domain.QueryInput) (domain.Answer, error) {
	started := s.now()
	out, usage, err := s.query(ctx, id, in)
	s.meter(ctx, id, routeQuery, usagedom.KindQuery, started, usage, err)
	return out, err
}

func (s *Svc) query(ctx context.Context, id domain.Ident, in domain.QueryInput) (domain.Answer, llm.Usage, error) {
	question := strings.TrimSpace(in.Question)
	if question == "" {
		return domain.Answer{}, llm.Usage{}, perr.WithField(perr.InvalidArgf("question is required"), "question")
	}
	dc, err := s.dayContext(ctx, id, in.Days, in.Zone)
	if err != nil {
		return domain.Answer{}, llm.Usage{}, err
	}
	comp, err := s.complete(ctx, prompt.Query(dc.data, question))
	if err != nil {
		return domain.Answer{}, llm.Usage{}, err
	}
	return domain.Answer{
		Answer:       comp.Content,
		Window:       dc.window,
		EventCount:   len(dc.data.Events),
		MessageCount: len(dc.data.Messages),
		Model:        comp.Model,
	}, comp.Usage, nil
}

// Draft writes a reply to one message and returns it for review. Nothing is
// sent on the caller's behalf
func (s *Svc) Draft(ctx context.Context, id domain.Ident, in domain.DraftInput) (domain.DraftReply, error) {
	started := s.now()
	out, usage, err := s.draft(ctx, id, in)
	s.meter(ctx, id, routeDraft, usagedom.KindDraft, started, usage, err)
	return out, err
}

func (s *Svc) draft(ctx context.Context, id domain.Ident, in domain.DraftInput) (domain.DraftReply, llm.Usage, error) {
	msgID := strings.TrimSpace(in.MessageID)
	if msgID == "" {
		return domain.DraftReply{}, llm.Usage{}, perr.WithField(perr.InvalidArgf("message_id is required"), "message_id")
	}
	if len([]rune(in.Tone)) > 64 {
		return domain.DraftReply{}, llm.Usage{}, perr.WithField(perr.InvalidArgf("tone must be at most 64 characters"), "tone")
	}

	md, err := s.mail.GetMessage(ctx, id.Token, msgID)
	if err != nil {
		return domain.DraftReply{}, llm.Usage{}, err
	}
	comp, err := s.complete(ctx, prompt.Draft(prompt.ReplyContext{
		Subject: md.Subject,
		From:    senderOf(md.From.EmailAddress),
		Body:    md.Body.Content,
	}, in.Instructions, in.Tone))
	if err != nil {
		return domain.DraftReply{}, llm.Usage{}, err
	}
	return domain.DraftReply{
		MessageID: md.ID,
		To:        md.From.EmailAddress.Address,
		Subject:   replySubject(md.Subject),
		Body:      comp.Content,
		Model:     comp.Model,
	}, comp.Usage, nil
}

// dayContext is the assembled prompt context plus the window it covers
type dayContext struct {
	data   prompt.BriefingData
	window domain.WindowView
}

// dayContext gathers calendar and mail context for the caller. Multi day
// spans widen only the calendar side; mail context always comes from the
// current day. The profile lookup is best effort
func (s *Svc) dayContext(ctx context.Context, id domain.Ident, days int, zone string) (dayContext, error) {
	var (
		events   []caldom.EventView
		window   caldom.WindowView
		dateText string
	)

	calq := caldom.Query{UserID: id.UserID, OrgID: id.OrgID, Token: id.Token, Zone: zone, Days: days}
	if days == 0 {
		day, err := s.cal.Today(ctx, calq)
		if err != nil {
			return dayContext{}, err
		}
		events, window, dateText = day.Events, day.Window, day.Date
	} else {
		rng, err := s.cal.Upcoming(ctx, calq)
		if err != nil {
			return dayContext{}, err
		}
		events, window = rng.Events, rng.Window
		dateText, err = spanText(rng.Window)
		if err != nil {
			return dayContext{}, err
		}
	}

	inb, err := s.inbox.Today(ctx, inboxdom.Query{UserID: id.UserID, OrgID: id.OrgID, Token: id.Token, Zone: zone})
	if err != nil {
		return dayContext{}, err
	}

	data := prompt.BriefingData{
		DateText:  dateText,
		ZoneLabel: window.Label,
		Events:    eventItems(events),
		Messages:  mailItems(inb.Messages),
	}
	if prof, err := s.mail.Me(ctx, id.Token); err == nil {
		data.UserName = prof.DisplayName
	} else {
		s.log.Debug().Err(err).Msg("assistant profile lookup failed")
	}
	return dayContext{data: data, window: domain.WindowView(window)}, nil
}

// complete maps prompt turns onto the wire shape and runs one completion
func (s *Svc) complete(ctx context.Context, msgs []prompt.Message) (llm.Completion, error) {
	req := llm.CompletionRequest{
		Messages:  make([]llm.ChatMessage, 0, len(msgs)),
		MaxTokens: s.maxTokens,
	}
	for _, m := range msgs {
		req.Messages = append(req.Messages, llm.ChatMessage{Role: m.Role, Content: m.Content})
	}
	return s.llm.Complete(ctx, req)
}

func eventItems(events []caldom.EventView) []prompt.EventItem {
	out := make([]prompt.EventItem, 0, len(events))
	for _, e := range events {
		out = append(out, prompt.EventItem{
			Subject:   e.Subject,
			StartText: e.StartsLocal,
			EndText:   e.EndsLocal,
			Location:  e.Location,
			Organizer: e.Organizer,
			AllDay:    e.AllDay,
		})
	}
	return out
}

func mailItems(msgs []inboxdom.MessageView) []prompt.MailItem {
	out := make([]prompt.MailItem, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, prompt.MailItem{
			Subject:   m.Subject,
			From:      m.From,
			TimeText:  m.ReceivedLocal,
			Preview:   m.Preview,
			Unread:    m.Unread,
			Important: m.Important,
		})
	}
	return out
}

// spanText renders a multi day window's date line in its own zone
func spanText(w caldom.WindowView) (string, error) {
	from, err := tw.FormatLocalTime(w.Start, w.Zone, tw.StyleDateOnly)
	if err != nil {
		return "", err
	}
	to, err := tw.FormatLocalTime(w.End, w.Zone, tw.StyleDateOnly)
	if err != nil {
		return "", err
	}
	return from + " to " + to, nil
}

func senderOf(a mailapi.EmailAddress) string {
	if a.Name != "" {
		return a.Name
	}
	return a.Address
}

func replySubject(subject string) string {
	if len(subject) >= 3 && strings.EqualFold(subject[:3], "re:") {
		return subject
	}
	return "Re: " + subject
}

func (s *Svc) meter(
	ctx context.Context,
	id domain.Ident,
	route, kind string,
	started time.Time,
	u llm.Usage,
	err error,
) {
	if s.usage == nil {
		return
	}
	status := usagedom.StatusOK
	if err != nil {
		status = usagedom.StatusError
	}
	s.usage.Record(usagedom.Event{
		OrgID:            id.OrgID,
		UserID:           id.UserID,
		Route:            route,
		Kind:             kind,
		Status:           status,
		DurationMS:       uint64(s.now().Sub(started).Milliseconds()),
		PromptTokens:     uint32(u.PromptTokens),
		CompletionTokens: uint32(u.CompletionTokens),
		RequestID:        pnet.RequestID(ctx),
	})
}
