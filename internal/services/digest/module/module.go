// Package module wires the digest worker service and exposes its ports
package module

import (
	"daybrief/internal/modkit"
	"daybrief/internal/modkit/httpkit"
	dom "daybrief/internal/services/digest/domain"
	"daybrief/internal/services/digest/repo"
	"daybrief/internal/services/digest/service"
)

// Module defines the digest worker module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs the digest worker module with its ports.
// The kill switch and send flag come from config alone; the remaining
// non-zero overrides win over config
func New(deps modkit.Deps, in dom.Ports, overrides Options) *Module {
	opts := FromConfig(deps.Cfg)

	if overrides.Schedule != "" {
		opts.Schedule = overrides.Schedule
	}
	if overrides.Concurrency != 0 {
		opts.Concurrency = overrides.Concurrency
	}
	if overrides.MaxTokens != 0 {
		opts.MaxTokens = overrides.MaxTokens
	}

	svc := service.New(deps.PG, repo.NewPG(), in, service.Config{
		Enabled:     opts.Enabled,
		Schedule:    opts.Schedule,
		Concurrency: opts.Concurrency,
		Send:        opts.Send,
		MaxTokens:   opts.MaxTokens,
	})

	m := &Module{deps: deps}
	m.ports = Ports{Worker: svc}
	return m
}

// Ports returns the module ports (Worker)
func (m *Module) Ports() any { return m.ports }

// Name returns the module name
func (m *Module) Name() string { return "digest" }

// Prefix returns the module config prefix (none for worker-only service)
func (m *Module) Prefix() string { return "" }

// MountRoutes returns no HTTP routes
func (m *Module) MountRoutes(_ httpkit.Router) {}
