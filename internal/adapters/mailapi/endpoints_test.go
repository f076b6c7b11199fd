package mailapi

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	tw "daybrief/internal/core/timewindow"
	perr "daybrief/internal/platform/errors"
)

func mustTime(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return ts
}

func testWindow(t *testing.T) tw.Window {
	t.Helper()
	return tw.Window{
		Start: mustTime(t, "2025-01-15T05:00:00.000Z"),
		End:   mustTime(t, "2025-01-16T04:59:59.999Z"),
		Zone:  "America/New_York",
		Label: "EST",
	}
}

func TestListMessages_FilterCarriesWindowBounds(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		if r.URL.Path != "/v1.0/me/messages" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("Authorization = %q", got)
		}
		_, _ = w.Write([]byte(`{"value":[
			{"id":"m1","subject":"Quarterly numbers","receivedDateTime":"2025-01-15T14:30:00Z","isRead":false},
			{"id":"m2","subject":"Lunch?","receivedDateTime":"2025-01-15T12:00:00Z","isRead":true}
		]}`))
	}))
	t.Cleanup(srv.Close)

	c := NewClient(Options{BaseURL: srv.URL})
	msgs, err := c.ListMessages(context.Background(), "tok", testWindow(t), 25)
	if err != nil {
		t.Fatalf("ListMessages: %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("len = %d want 2", len(msgs))
	}
	if msgs[0].ID != "m1" || msgs[0].Subject != "Quarterly numbers" {
		t.Fatalf("first message %+v", msgs[0])
	}

	q, err := url.ParseQuery(gotQuery)
	if err != nil {
		t.Fatalf("parse query: %v", err)
	}
	wantFilter := "receivedDateTime ge 2025-01-15T05:00:00.000Z and receivedDateTime le 2025-01-16T04:59:59.999Z"
	if got := q.Get("$filter"); got != wantFilter {
		t.Fatalf("$filter = %q want %q", got, wantFilter)
	}
	if got := q.Get("$orderby"); got != "receivedDateTime desc" {
		t.Fatalf("$orderby = %q", got)
	}
	if got := q.Get("$top"); got != "25" {
		t.Fatalf("$top = %q", got)
	}
}

func TestListMessages_DefaultTop(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("$top"); got != "50" {
			t.Errorf("$top = %q want 50", got)
		}
		_, _ = w.Write([]byte(`{"value":[]}`))
	}))
	t.Cleanup(srv.Close)

	c := NewClient(Options{BaseURL: srv.URL})
	msgs, err := c.ListMessages(context.Background(), "tok", testWindow(t), 0)
	if err != nil {
		t.Fatalf("ListMessages: %v", err)
	}
	if len(msgs) != 0 {
		t.Fatalf("expected empty list, got %d", len(msgs))
	}
}

func TestGetMessage_DecodesBodyAndEscapesID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.EscapedPath() != "/v1.0/me/messages/AAMkAG%2F1" {
			t.Errorf("path = %q", r.URL.EscapedPath())
		}
		_, _ = w.Write([]byte(`{
			"id":"AAMkAG/1","subject":"Plan",
			"from":{"emailAddress":{"name":"Ana","address":"ana@corp.test"}},
			"body":{"contentType":"Text","content":"full body here"}
		}`))
	}))
	t.Cleanup(srv.Close)

	c := NewClient(Options{BaseURL: srv.URL})
	md, err := c.GetMessage(context.Background(), "tok", "AAMkAG/1")
	if err != nil {
		t.Fatalf("GetMessage: %v", err)
	}
	if md.Body.Content != "full body here" {
		t.Fatalf("body = %+v", md.Body)
	}
	if md.From.EmailAddress.Address != "ana@corp.test" {
		t.Fatalf("from = %+v", md.From)
	}
}

func TestListEvents_FilterQuotedAscending(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`{"value":[
			{"id":"e1","subject":"Standup","type":"occurrence","seriesMasterId":"sm1",
			 "start":{"dateTime":"2025-01-15T14:00:00.0000000","timeZone":"UTC"},
			 "end":{"dateTime":"2025-01-15T14:15:00.0000000","timeZone":"UTC"}},
			{"id":"sm2","subject":"Weekly review","type":"seriesMaster",
			 "recurrenceRule":"FREQ=WEEKLY;BYDAY=WE",
			 "start":{"dateTime":"2025-01-15T17:00:00.0000000","timeZone":"UTC"},
			 "end":{"dateTime":"2025-01-15T18:00:00.0000000","timeZone":"UTC"}}
		]}`))
	}))
	t.Cleanup(srv.Close)

	c := NewClient(Options{BaseURL: srv.URL})
	evs, err := c.ListEvents(context.Background(), "tok", testWindow(t))
	if err != nil {
		t.Fatalf("ListEvents: %v", err)
	}
	if len(evs) != 2 {
		t.Fatalf("len = %d want 2", len(evs))
	}
	if evs[1].Type != EventSeriesMaster || evs[1].RecurrenceRule != "FREQ=WEEKLY;BYDAY=WE" {
		t.Fatalf("series master %+v", evs[1])
	}

	q, err := url.ParseQuery(gotQuery)
	if err != nil {
		t.Fatalf("parse query: %v", err)
	}
	wantFilter := "start/dateTime ge '2025-01-15T05:00:00.000Z' and start/dateTime le '2025-01-16T04:59:59.999Z'"
	if got := q.Get("$filter"); got != wantFilter {
		t.Fatalf("$filter = %q want %q", got, wantFilter)
	}
	if got := q.Get("$orderby"); got != "start/dateTime asc" {
		t.Fatalf("$orderby = %q", got)
	}
}

func TestSendMail_PostsEnvelope(t *testing.T) {
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1.0/me/sendMail" {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusAccepted)
	}))
	t.Cleanup(srv.Close)

	c := NewClient(Options{BaseURL: srv.URL})
	err := c.SendMail(context.Background(), "tok", Draft{
		Subject:      "Your daily brief",
		Body:         ItemBody{ContentType: "HTML", Content: "<p>hi</p>"},
		ToRecipients: []Recipient{{EmailAddress: EmailAddress{Address: "pat@corp.test"}}},
	})
	if err != nil {
		t.Fatalf("SendMail: %v", err)
	}

	for _, want := range []string{`"saveToSentItems":true`, `"subject":"Your daily brief"`, `"pat@corp.test"`} {
		if !bytes.Contains(gotBody, []byte(want)) {
			t.Fatalf("body missing %q: %s", want, gotBody)
		}
	}
}

func TestUserScopedPaths(t *testing.T) {
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		switch {
		case r.Method == http.MethodPost:
			w.WriteHeader(http.StatusAccepted)
		case r.URL.Path == "/v1.0/users/u42":
			_, _ = w.Write([]byte(`{"id":"u42","displayName":"Pat"}`))
		default:
			_, _ = w.Write([]byte(`{"value":[]}`))
		}
	}))
	t.Cleanup(srv.Close)

	c := NewClient(Options{BaseURL: srv.URL})
	ctx := context.Background()
	if _, err := c.ListEventsFor(ctx, "tok", "u42", testWindow(t)); err != nil {
		t.Fatalf("ListEventsFor: %v", err)
	}
	if _, err := c.ListMessagesFor(ctx, "tok", "u42", testWindow(t), 10); err != nil {
		t.Fatalf("ListMessagesFor: %v", err)
	}
	if err := c.SendMailFor(ctx, "tok", "u42", Draft{Subject: "brief"}); err != nil {
		t.Fatalf("SendMailFor: %v", err)
	}
	if _, err := c.UserProfile(ctx, "tok", "u42"); err != nil {
		t.Fatalf("UserProfile: %v", err)
	}

	want := []string{
		"/v1.0/users/u42/events",
		"/v1.0/users/u42/messages",
		"/v1.0/users/u42/sendMail",
		"/v1.0/users/u42",
	}
	if len(paths) != len(want) {
		t.Fatalf("paths = %v", paths)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("path %d = %q want %q", i, paths[i], want[i])
		}
	}
}

func TestMe_Decodes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1.0/me" {
			t.Errorf("path = %q", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"id":"u1","displayName":"Pat","mail":"pat@corp.test","userPrincipalName":"pat@corp.test"}`))
	}))
	t.Cleanup(srv.Close)

	c := NewClient(Options{BaseURL: srv.URL})
	p, err := c.Me(context.Background(), "tok")
	if err != nil {
		t.Fatalf("Me: %v", err)
	}
	if p.ID != "u1" || p.Mail != "pat@corp.test" {
		t.Fatalf("profile %+v", p)
	}
}

func TestDo_RateLimitedThenOK(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			w.Header().Set("Retry-After", "2")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(`{"id":"u1"}`))
	}))
	t.Cleanup(srv.Close)

	c := NewClient(Options{BaseURL: srv.URL, MaxRetries: 2})
	var slept []time.Duration
	c.sleep = func(d time.Duration) { slept = append(slept, d) }

	if _, err := c.Me(context.Background(), "tok"); err != nil {
		t.Fatalf("Me: %v", err)
	}
	if len(slept) != 1 || slept[0] != 2*time.Second {
		t.Fatalf("slept %v want one 2s wait", slept)
	}
}

func TestDo_UnauthorizedMapsCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	t.Cleanup(srv.Close)

	c := NewClient(Options{BaseURL: srv.URL})
	_, err := c.Me(context.Background(), "tok")
	if err == nil {
		t.Fatal("expected error")
	}
	if !perr.IsCode(err, perr.ErrorCodeUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestDo_NotFoundMapsCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(srv.Close)

	c := NewClient(Options{BaseURL: srv.URL})
	_, err := c.GetMessage(context.Background(), "tok", "gone")
	if !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
