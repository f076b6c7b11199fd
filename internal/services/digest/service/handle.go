package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"daybrief/internal/adapters/llm"
	"daybrief/internal/adapters/mailapi"
	"daybrief/internal/core/prompt"
	tw "daybrief/internal/core/timewindow"
	perr "daybrief/internal/platform/errors"
	"daybrief/internal/platform/logger"
	orgsdom "daybrief/internal/services/api/orgs/domain"
	dom "daybrief/internal/services/digest/domain"
	usagedom "daybrief/internal/services/usage/domain"
)

// handleRun generates and delivers one user's digest, then records the run.
// The row is written whatever happened so reruns inside the hour skip cleanly
func (s *Svc) handleRun(ctx context.Context, org orgsdom.Org, userID, runDate string, ref time.Time) error {
	started := s.now()
	run, usage, err := s.deliver(ctx, org, userID, runDate, ref)
	if err != nil {
		run.Status = dom.RunStatusFailed
		run.Error = err.Error()
	}
	s.meter(org.ID, userID, started, usage, err)

	run.CreatedAt = s.now().UTC()
	if ierr := s.repo.InsertRun(ctx, run); ierr != nil {
		logger.Named("digest-worker").Error().Err(ierr).
			Str("org_id", org.ID).Str("user_id", userID).Msg("insert digest run failed")
	}
	return err
}

// deliver builds one user's briefing and optionally mails it. The returned
// run always carries ids and window bounds so a failure still records fully
func (s *Svc) deliver(
	ctx context.Context,
	org orgsdom.Org,
	userID, runDate string,
	ref time.Time,
) (dom.Run, llm.Usage, error) {
	run := dom.Run{
		ID:      uuid.NewString(),
		OrgID:   org.ID,
		UserID:  userID,
		RunDate: runDate,
	}

	w, err := tw.DayWindow(org.Zone, 0, ref)
	if err != nil {
		return run, llm.Usage{}, perr.Wrap(err, perr.ErrorCodeUnknown, "digest window")
	}
	run.WindowStart, run.WindowEnd = w.Start, w.End

	tok, err := s.tokens.Token()
	if err != nil {
		return run, llm.Usage{}, perr.Wrapf(err, perr.ErrorCodeUnavailable, "digest app token")
	}

	events, err := s.mail.ListEventsFor(ctx, tok.AccessToken, userID, w)
	if err != nil {
		return run, llm.Usage{}, err
	}
	msgs, err := s.mail.ListMessagesFor(ctx, tok.AccessToken, userID, w, defaultTop)
	if err != nil {
		return run, llm.Usage{}, err
	}

	occs := mailapi.ExpandOccurrences(s.log, events, w)
	if len(occs) == 0 && len(msgs) == 0 {
		// a quiet day; don't wake the model or the user
		run.Status = dom.RunStatusSkipped
		return run, llm.Usage{}, nil
	}

	dateText, err := tw.FormatLocalTime(w.Start, org.Zone, tw.StyleDateOnly)
	if err != nil {
		return run, llm.Usage{}, perr.Wrap(err, perr.ErrorCodeUnknown, "digest date")
	}

	data := prompt.BriefingData{
		DateText:  dateText,
		ZoneLabel: w.Label,
	}
	if data.Events, err = eventItems(occs, org.Zone); err != nil {
		return run, llm.Usage{}, err
	}
	if data.Messages, err = mailItems(msgs, org.Zone); err != nil {
		return run, llm.Usage{}, err
	}

	// profile is best effort for the display name, but delivery needs an address
	var address string
	if prof, err := s.mail.UserProfile(ctx, tok.AccessToken, userID); err == nil {
		data.UserName = prof.DisplayName
		address = prof.Mail
		if address == "" {
			address = prof.UserPrincipalName
		}
	} else {
		s.log.Debug().Err(err).Str("user_id", userID).Msg("digest profile lookup failed")
	}

	comp, err := s.ai.Complete(ctx, chatOf(prompt.Briefing(data), s.cfg.MaxTokens))
	if err != nil {
		return run, llm.Usage{}, err
	}
	run.Model = comp.Model
	run.Summary = comp.Content

	if s.cfg.Send {
		if address == "" {
			return run, comp.Usage, perr.Unavailablef("no mailbox address for user")
		}
		d := mailapi.Draft{
			Subject:      "Your daybrief for " + dateText,
			Body:         mailapi.ItemBody{ContentType: "text", Content: comp.Content},
			ToRecipients: []mailapi.Recipient{{EmailAddress: mailapi.EmailAddress{Address: address}}},
		}
		if err := s.mail.SendMailFor(ctx, tok.AccessToken, userID, d); err != nil {
			return run, comp.Usage, err
		}
	}

	run.Status = dom.RunStatusOK
	return run, comp.Usage, nil
}

// chatOf maps prompt turns onto the wire shape
func chatOf(msgs []prompt.Message, maxTokens int) llm.CompletionRequest {
	req := llm.CompletionRequest{
		Messages:  make([]llm.ChatMessage, 0, len(msgs)),
		MaxTokens: maxTokens,
	}
	for _, m := range msgs {
		req.Messages = append(req.Messages, llm.ChatMessage{Role: m.Role, Content: m.Content})
	}
	return req
}

func eventItems(occs []mailapi.Occurrence, zone string) ([]prompt.EventItem, error) {
	out := make([]prompt.EventItem, 0, len(occs))
	for _, o := range occs {
		it := prompt.EventItem{
			Subject:   o.Event.Subject,
			Location:  o.Event.Location.DisplayName,
			Organizer: nameOf(o.Event.Organizer.EmailAddress),
			AllDay:    o.Event.IsAllDay,
			Cancelled: o.Event.IsCancelled,
		}
		if !it.AllDay {
			st, err := tw.FormatLocalTime(o.Start, zone, tw.StyleTimeOnly)
			if err != nil {
				return nil, err
			}
			et, err := tw.FormatLocalTime(o.End, zone, tw.StyleTimeOnly)
			if err != nil {
				return nil, err
			}
			it.StartText, it.EndText = st, et
		}
		out = append(out, it)
	}
	return out, nil
}

func mailItems(msgs []mailapi.Message, zone string) ([]prompt.MailItem, error) {
	out := make([]prompt.MailItem, 0, len(msgs))
	for _, m := range msgs {
		local, err := tw.FormatLocalTime(m.ReceivedDateTime, zone, tw.StyleTimeOnly)
		if err != nil {
			return nil, err
		}
		out = append(out, prompt.MailItem{
			Subject:   m.Subject,
			From:      nameOf(m.From.EmailAddress),
			TimeText:  local,
			Preview:   m.BodyPreview,
			Unread:    !m.IsRead,
			Important: m.Importance == mailapi.ImportanceHigh,
		})
	}
	return out, nil
}

func nameOf(a mailapi.EmailAddress) string {
	if a.Name != "" {
		return a.Name
	}
	return a.Address
}

func (s *Svc) meter(orgID, userID string, started time.Time, u llm.Usage, err error) {
	if s.usage == nil {
		return
	}
	status := usagedom.StatusOK
	if err != nil {
		status = usagedom.StatusError
	}
	s.usage.Record(usagedom.Event{
		OrgID:            orgID,
		UserID:           userID,
		Route:            routeDigest,
		Kind:             usagedom.KindDigest,
		Status:           status,
		DurationMS:       uint64(s.now().Sub(started).Milliseconds()),
		PromptTokens:     uint32(u.PromptTokens),
		CompletionTokens: uint32(u.CompletionTokens),
	})
}
