package mailapi

import (
	"context"
	json "encoding/json/v2"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	tw "daybrief/internal/core/timewindow"
	perr "daybrief/internal/platform/errors"
)

// isoMillis is the wire form for window bounds, UTC with millisecond precision
const isoMillis = "2006-01-02T15:04:05.000Z07:00"

// mailboxPath roots a resource under the token's own mailbox or, for app-only
// tokens acting on a user's behalf, under that user's mailbox
func mailboxPath(userID, resource string) string {
	if userID == "" {
		return "/me/" + resource
	}
	return "/users/" + url.PathEscape(userID) + "/" + resource
}

// ListMessages fetches messages received inside the window, newest first.
// The window's UTC instants go onto the wire untouched; this adapter never
// recomputes local day boundaries
func (c *Client) ListMessages(ctx context.Context, token string, w tw.Window, top int) ([]Message, error) {
	return c.ListMessagesFor(ctx, token, "", w, top)
}

// ListMessagesFor is ListMessages against a specific user's mailbox.
// An empty userID targets the token's own mailbox
func (c *Client) ListMessagesFor(ctx context.Context, token, userID string, w tw.Window, top int) ([]Message, error) {
	if top <= 0 {
		top = 50
	}
	q := url.Values{}
	q.Set("$filter", fmt.Sprintf("receivedDateTime ge %s and receivedDateTime le %s",
		w.Start.UTC().Format(isoMillis), w.End.UTC().Format(isoMillis)))
	q.Set("$orderby", "receivedDateTime desc")
	q.Set("$top", strconv.Itoa(top))

	path := mailboxPath(userID, "messages")
	resp, err := c.do(ctx, http.MethodGet, path+"?"+q.Encode(), token, nil)
	if err != nil {
		return nil, err
	}
	var env listEnvelope[Message]
	if err := c.decode(resp, path, &env); err != nil {
		return nil, err
	}
	return env.Value, nil
}

// GetMessage fetches one message with its full body
func (c *Client) GetMessage(ctx context.Context, token, id string) (MessageDetail, error) {
	path := "/me/messages/" + url.PathEscape(id)
	resp, err := c.do(ctx, http.MethodGet, path, token, nil)
	if err != nil {
		return MessageDetail{}, err
	}
	var out MessageDetail
	if err := c.decode(resp, path, &out); err != nil {
		return MessageDetail{}, err
	}
	return out, nil
}

// ListEvents fetches events starting inside the window, earliest first.
// Series masters come back unexpanded with their RRULE attached
func (c *Client) ListEvents(ctx context.Context, token string, w tw.Window) ([]Event, error) {
	return c.ListEventsFor(ctx, token, "", w)
}

// ListEventsFor is ListEvents against a specific user's calendar.
// An empty userID targets the token's own calendar
func (c *Client) ListEventsFor(ctx context.Context, token, userID string, w tw.Window) ([]Event, error) {
	q := url.Values{}
	q.Set("$filter", fmt.Sprintf("start/dateTime ge '%s' and start/dateTime le '%s'",
		w.Start.UTC().Format(isoMillis), w.End.UTC().Format(isoMillis)))
	q.Set("$orderby", "start/dateTime asc")

	path := mailboxPath(userID, "events")
	resp, err := c.do(ctx, http.MethodGet, path+"?"+q.Encode(), token, nil)
	if err != nil {
		return nil, err
	}
	var env listEnvelope[Event]
	if err := c.decode(resp, path, &env); err != nil {
		return nil, err
	}
	return env.Value, nil
}

// SendMail submits a draft for delivery and saves it to sent items
func (c *Client) SendMail(ctx context.Context, token string, d Draft) error {
	return c.SendMailFor(ctx, token, "", d)
}

// SendMailFor is SendMail from a specific user's mailbox.
// An empty userID sends as the token's own mailbox
func (c *Client) SendMailFor(ctx context.Context, token, userID string, d Draft) error {
	body, err := json.Marshal(sendMailRequest{Message: d, SaveToSentItems: true})
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnknown, "mailapi encode draft failed")
	}
	resp, err := c.do(ctx, http.MethodPost, mailboxPath(userID, "sendMail"), token, body)
	if err != nil {
		return err
	}
	return drainAndClose(resp.Body)
}

// Me fetches the caller's mailbox profile
func (c *Client) Me(ctx context.Context, token string) (Profile, error) {
	resp, err := c.do(ctx, http.MethodGet, "/me", token, nil)
	if err != nil {
		return Profile{}, err
	}
	var out Profile
	if err := c.decode(resp, "/me", &out); err != nil {
		return Profile{}, err
	}
	return out, nil
}

// UserProfile fetches a specific user's profile with an app-only token
func (c *Client) UserProfile(ctx context.Context, token, userID string) (Profile, error) {
	path := "/users/" + url.PathEscape(userID)
	resp, err := c.do(ctx, http.MethodGet, path, token, nil)
	if err != nil {
		return Profile{}, err
	}
	var out Profile
	if err := c.decode(resp, path, &out); err != nil {
		return Profile{}, err
	}
	return out, nil
}

// decode drains one JSON document from resp into out and closes the body
func (c *Client) decode(resp *http.Response, path string, out any) error {
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.log.Error().Err(cerr).Str("path", path).Msg("mailapi close body failed")
		}
	}()

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnavailable, "mailapi read body failed")
	}
	if err := json.Unmarshal(b, out); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnknown, "mailapi decode failed")
	}
	return nil
}
