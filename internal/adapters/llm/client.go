// Package llm provides a chat completions client for summaries and reply drafts
package llm

import (
	"bytes"
	"context"
	json "encoding/json/v2"
	"io"
	"net/http"
	"strconv"
	"time"

	perr "daybrief/internal/platform/errors"
	"daybrief/internal/platform/logger"
)

const (
	completionsPath  = "/v1/chat/completions"
	defaultModel     = "gpt-4o-mini"
	defaultTimeout   = 60 * time.Second
	defaultUA        = "daybrief"
	defaultMaxRetry  = 3
	defaultRetryBase = time.Second

	maxBodyBytes = 1 << 20
)

// Options configures the Client
type Options struct {
	BaseURL string
	APIKey  string

	// Model used when the request does not name one
	Model     string
	UserAgent string
	Timeout   time.Duration

	// Retry config for transient and rate limited responses
	MaxRetries int
	RetryBase  time.Duration
}

// Client is a minimal chat completions client.
// The API key is a server side secret, never a caller token
type Client struct {
	http  *http.Client
	opts  Options
	log   logger.Logger
	now   func() time.Time
	sleep func(time.Duration)
}

// NewClient creates a new Client with sane defaults
func NewClient(o Options) *Client {
	if o.Model == "" {
		o.Model = defaultModel
	}
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.MaxRetries <= 0 {
		o.MaxRetries = defaultMaxRetry
	}
	if o.RetryBase <= 0 {
		o.RetryBase = defaultRetryBase
	}
	return &Client{
		http:  &http.Client{Timeout: o.Timeout},
		opts:  o,
		log:   *logger.Named("llm"),
		now:   time.Now,
		sleep: time.Sleep,
	}
}

// Complete runs one chat completion and returns the first choice.
// 429 and 5xx retry with capped backoff, other 4xx fail fast
func (c *Client) Complete(ctx context.Context, req CompletionRequest) (Completion, error) {
	if len(req.Messages) == 0 {
		return Completion{}, perr.InvalidArgf("completion request needs at least one message")
	}
	if req.Model == "" {
		req.Model = c.opts.Model
	}

	body, err := json.Marshal(req)
	if err != nil {
		return Completion{}, perr.Wrapf(err, perr.ErrorCodeUnknown, "llm encode request failed")
	}

	url := c.opts.BaseURL + completionsPath
	attempts := 0
	for {
		select {
		case <-ctx.Done():
			return Completion{}, ctx.Err()
		default:
		}

		hreq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return Completion{}, perr.Wrapf(err, perr.ErrorCodeUnknown, "llm new request failed")
		}
		hreq.Header.Set("User-Agent", c.opts.UserAgent)
		hreq.Header.Set("Content-Type", "application/json")
		hreq.Header.Set("Accept", "application/json")
		if c.opts.APIKey != "" {
			hreq.Header.Set("Authorization", "Bearer "+c.opts.APIKey)
		}

		start := c.now()
		resp, err := c.http.Do(hreq)
		lat := c.now().Sub(start)

		if err != nil {
			if !c.shouldRetry(attempts) {
				return Completion{}, perr.Wrapf(err, perr.ErrorCodeUnavailable, "llm do failed")
			}
			back := c.backoff(attempts)
			c.log.Warn().Dur("retry_in", back).Int("attempt", attempts).Msg("llm transport error retrying")
			c.sleep(back)
			attempts++
			continue
		}

		c.log.Debug().
			Str("model", req.Model).
			Int("status", resp.StatusCode).
			Int("attempt", attempts).
			Dur("latency", lat).
			Msg("llm http response")

		switch {
		case resp.StatusCode == http.StatusOK:
			return c.decode(resp)
		case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
			_ = drainAndClose(resp.Body)
			return Completion{}, perr.Unauthorizedf("llm rejected api key")
		case resp.StatusCode == http.StatusTooManyRequests:
			wait := retryAfter(resp.Header)
			if wait <= 0 {
				wait = c.backoff(attempts)
			}
			_ = drainAndClose(resp.Body)
			if !c.shouldRetry(attempts) {
				return Completion{}, perr.Newf(perr.ErrorCodeTooManyRequests, "llm rate limited")
			}
			c.log.Warn().Dur("sleep", wait).Msg("llm rate limited backing off")
			c.sleep(wait)
			attempts++
			continue
		case resp.StatusCode >= 500:
			_ = drainAndClose(resp.Body)
			if !c.shouldRetry(attempts) {
				return Completion{}, perr.Newf(perr.ErrorCodeUnavailable, "llm transient server error")
			}
			back := c.backoff(attempts)
			c.log.Warn().Dur("retry_in", back).Int("attempt", attempts).Msg("llm transient error retrying")
			c.sleep(back)
			attempts++
			continue
		default:
			tail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
			_ = resp.Body.Close()
			return Completion{}, perr.Newf(perr.ErrorCodeInvalidArgument, "llm rejected request status %d body %s", resp.StatusCode, string(tail))
		}
	}
}

func (c *Client) decode(resp *http.Response) (Completion, error) {
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.log.Error().Err(cerr).Msg("llm close body failed")
		}
	}()

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return Completion{}, perr.Wrapf(err, perr.ErrorCodeUnavailable, "llm read body failed")
	}
	var out completionResponse
	if err := json.Unmarshal(b, &out); err != nil {
		return Completion{}, perr.Wrapf(err, perr.ErrorCodeUnknown, "llm decode response failed")
	}
	if len(out.Choices) == 0 {
		return Completion{}, perr.Newf(perr.ErrorCodeUnknown, "llm response has no choices")
	}
	return Completion{
		Content: out.Choices[0].Message.Content,
		Model:   out.Model,
		Usage:   out.Usage,
	}, nil
}

func (c *Client) backoff(attempt int) time.Duration {
	d := c.opts.RetryBase
	// simple exponential with cap
	ms := int64(d / time.Millisecond)
	ms = ms << uint(attempt)
	max := int64(20 * time.Second / time.Millisecond)
	if ms > max {
		ms = max
	}
	return time.Duration(ms) * time.Millisecond
}

func (c *Client) shouldRetry(attempt int) bool {
	return attempt < c.opts.MaxRetries
}

func retryAfter(h http.Header) time.Duration {
	s := h.Get("Retry-After")
	if s == "" {
		return 0
	}
	sec, _ := strconv.Atoi(s)
	if sec <= 0 {
		return 0
	}
	return time.Duration(sec) * time.Second
}

func drainAndClose(rc io.ReadCloser) error {
	_, _ = io.Copy(io.Discard, io.LimitReader(rc, 512))
	return rc.Close()
}
