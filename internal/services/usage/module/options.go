package module

import (
	"time"

	"daybrief/internal/platform/config"
)

// Options controls usage buffering and flush cadence
type Options struct {
	Buffer        int
	BatchSize     int
	FlushInterval time.Duration
}

// FromConfig reads with USAGE_ prefix
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("USAGE_")
	return Options{
		Buffer:        c.MayInt("BUFFER", 4096),
		BatchSize:     c.MayInt("BATCH", 256),
		FlushInterval: c.MayDuration("FLUSH_INTERVAL", 5*time.Second),
	}
}
