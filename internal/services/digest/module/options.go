package module

import (
	"daybrief/internal/platform/config"
)

// Options controls the digest worker
type Options struct {
	Enabled     bool
	Schedule    string
	Concurrency int
	Send        bool
	MaxTokens   int
}

// FromConfig reads with DIGEST_ prefix
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("DIGEST_")
	return Options{
		Enabled:     c.MayBool("ENABLED", true),
		Schedule:    c.MayString("CRON", "0 * * * *"),
		Concurrency: c.MayInt("WORKER_CONCURRENCY", 4),
		Send:        c.MayBool("SEND", false),
		MaxTokens:   c.MayInt("MAX_TOKENS", 700),
	}
}
