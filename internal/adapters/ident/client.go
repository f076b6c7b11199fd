// Package ident verifies provider bearer tokens against the cloud identity provider
package ident

import (
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
	userinfoPath     = "/oidc/userinfo"
	defaultTimeout   = 10 * time.Second
	defaultUA        = "daybrief-api"
	defaultMaxRetry  = 3
	defaultRetryBase = 250 * time.Millisecond
)

// Options configures the Client
type Options struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration

	// Retry config for transient and rate limited responses
	MaxRetries int
	RetryBase  time.Duration
}

// Client is a minimal identity provider client for userinfo confirmation
type Client struct {
	http  *http.Client
	opts  Options
	log   logger.Logger
	now   func() time.Time
	sleep func(time.Duration)
}

// NewClient creates a new Client with sane defaults
func NewClient(o Options) *Client {
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
		log:   *logger.Named("ident"),
		now:   time.Now,
		sleep: time.Sleep,
	}
}

// UserInfo confirms a bearer token against the provider's userinfo endpoint.
// 401 means the provider rejected the token; transient failures retry with backoff
func (c *Client) UserInfo(ctx context.Context, token string) (UserInfo, error) {
	url := c.opts.BaseURL + userinfoPath
	attempts := 0
	for {
		select {
		case <-ctx.Done():
			return UserInfo{}, ctx.Err()
		default:
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return UserInfo{}, perr.Wrapf(err, perr.ErrorCodeUnknown, "ident new request failed")
		}
		req.Header.Set("User-Agent", c.opts.UserAgent)
		req.Header.Set("Accept", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)

		start := c.now()
		resp, err := c.http.Do(req)
		lat := c.now().Sub(start)

		if err != nil {
			if !c.shouldRetry(attempts) {
				return UserInfo{}, perr.Wrapf(err, perr.ErrorCodeUnavailable, "ident userinfo failed")
			}
			back := c.backoff(attempts)
			c.log.Warn().Dur("retry_in", back).Int("attempt", attempts).Msg("ident transport error retrying")
			c.sleep(back)
			attempts++
			continue
		}

		c.log.Debug().
			Int("status", resp.StatusCode).
			Int("attempt", attempts).
			Dur("latency", lat).
			Msg("ident userinfo response")

		switch resp.StatusCode {
		case http.StatusOK:
			var out UserInfo
			b, rerr := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
			_ = resp.Body.Close()
			if rerr != nil {
				return UserInfo{}, perr.Wrapf(rerr, perr.ErrorCodeUnavailable, "ident read body failed")
			}
			if uerr := json.Unmarshal(b, &out); uerr != nil {
				return UserInfo{}, perr.Wrapf(uerr, perr.ErrorCodeUnknown, "ident decode userinfo failed")
			}
			return out, nil
		case http.StatusUnauthorized, http.StatusForbidden:
			_ = drainAndClose(resp.Body)
			return UserInfo{}, perr.Unauthorizedf("provider rejected token")
		case http.StatusTooManyRequests:
			wait := retryAfter(resp.Header)
			if wait <= 0 {
				wait = c.backoff(attempts)
			}
			_ = drainAndClose(resp.Body)
			if !c.shouldRetry(attempts) {
				return UserInfo{}, perr.Newf(perr.ErrorCodeTooManyRequests, "ident rate limited")
			}
			c.log.Warn().Dur("sleep", wait).Msg("ident rate limited backing off")
			c.sleep(wait)
			attempts++
			continue
		case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			_ = drainAndClose(resp.Body)
			if !c.shouldRetry(attempts) {
				return UserInfo{}, perr.Newf(perr.ErrorCodeUnavailable, "ident transient server error")
			}
			back := c.backoff(attempts)
			c.log.Warn().Dur("retry_in", back).Int("attempt", attempts).Msg("ident transient error retrying")
			c.sleep(back)
			attempts++
			continue
		default:
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
			_ = resp.Body.Close()
			return UserInfo{}, perr.Newf(perr.ErrorCodeUnknown, "ident unexpected status %d body %s", resp.StatusCode, string(body))
		}
	}
}

func (c *Client) backoff(attempt int) time.Duration {
	d := c.opts.RetryBase
	// simple exponential with cap
	ms := int64(d / time.Millisecond)
	ms = ms << uint(attempt)
	max := int64(10 * time.Second / time.Millisecond)
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
