// Package module wires the usage recorder and reader and exposes their ports
package module

import (
	"daybrief/internal/modkit"
	"daybrief/internal/modkit/httpkit"
	"daybrief/internal/services/usage/repo"
	"daybrief/internal/services/usage/service"
)

// Module defines the usage module; it has no HTTP routes of its own
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs the usage module with its ports
func New(deps modkit.Deps, overrides Options) *Module {
	opts := FromConfig(deps.Cfg)

	if overrides.Buffer != 0 {
		opts.Buffer = overrides.Buffer
	}
	if overrides.BatchSize != 0 {
		opts.BatchSize = overrides.BatchSize
	}
	if overrides.FlushInterval != 0 {
		opts.FlushInterval = overrides.FlushInterval
	}

	st := repo.NewCH(deps.CH)
	rec := service.NewRecorder(st, service.RecorderConfig{
		Buffer:        opts.Buffer,
		BatchSize:     opts.BatchSize,
		FlushInterval: opts.FlushInterval,
	})

	m := &Module{deps: deps}
	m.ports = Ports{
		Recorder: rec,
		Flusher:  rec,
		Reader:   service.NewReader(st),
	}
	return m
}

// Ports returns the module ports (Recorder, Flusher, Reader)
func (m *Module) Ports() any { return m.ports }

// Name returns the module name
func (m *Module) Name() string { return "usage" }

// Prefix returns the module config prefix (none; ports only)
func (m *Module) Prefix() string { return "" }

// MountRoutes returns no HTTP routes
func (m *Module) MountRoutes(_ httpkit.Router) {}
