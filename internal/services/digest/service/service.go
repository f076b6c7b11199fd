// Package service implements the scheduled digest worker
package service

import (
	"time"

	"golang.org/x/oauth2"

	"daybrief/internal/modkit/repokit"
	"daybrief/internal/platform/logger"
	dom "daybrief/internal/services/digest/domain"
	drepo "daybrief/internal/services/digest/repo"
	usagedom "daybrief/internal/services/usage/domain"
)

const (
	defaultSchedule    = "0 * * * *"
	defaultConcurrency = 4
	defaultMaxTokens   = 700
	defaultTop         = 25

	routeDigest = "digest.run"
)

// Config controls the worker
type Config struct {
	// Enabled is the kill switch; a disabled worker parks until shutdown
	Enabled bool
	// Schedule is a cron expression; empty means hourly on the hour
	Schedule    string
	Concurrency int
	// Send mails the summary to the user's own mailbox; off records it only
	Send      bool
	MaxTokens int
}

// Service defines the service contract for the digest worker
type Service interface{ dom.WorkerPort }

// Svc implements the Service interface
type Svc struct {
	db     repokit.TxRunner
	binder repokit.Binder[drepo.Storage]
	repo   drepo.Storage

	mail   dom.MailPort
	ai     dom.LLMPort
	tokens oauth2.TokenSource
	usage  usagedom.RecorderPort

	cfg Config
	log *logger.Logger
	now func() time.Time
}

// New constructs the service
func New(db repokit.TxRunner, binder repokit.Binder[drepo.Storage], p dom.Ports, cfg Config) *Svc {
	if db == nil {
		panic("digest.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("digest.Service requires a non nil Repo binder")
	}
	if p.Mail == nil {
		panic("digest.Service requires a mail port")
	}
	if p.LLM == nil {
		panic("digest.Service requires an llm port")
	}
	if p.Tokens == nil {
		panic("digest.Service requires an app token source")
	}
	if cfg.Schedule == "" {
		cfg.Schedule = defaultSchedule
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = defaultConcurrency
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = defaultMaxTokens
	}
	return &Svc{
		db:     db,
		binder: binder,
		repo:   binder.Bind(db),
		mail:   p.Mail,
		ai:     p.LLM,
		tokens: p.Tokens,
		usage:  p.Usage,
		cfg:    cfg,
		log:    logger.Named("digest"),
		now:    time.Now,
	}
}
