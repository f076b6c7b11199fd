// Package module wires the assistant into the API using modkit
package module

import (
	"net/http"

	modkit "daybrief/internal/modkit"
	"daybrief/internal/modkit/httpkit"
	str "daybrief/internal/platform/strings"
	"daybrief/internal/services/api/assistant/domain"
	asthttp "daybrief/internal/services/api/assistant/http"
	astsvc "daybrief/internal/services/api/assistant/service"
)

// Module implements the modkit.Module interface
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	ports     any
	swaggerOn bool

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc astsvc.Service
}

// New constructs an assistant module. The calendar, inbox, mail, and llm
// ports must be injected with modkit.WithPorts(assistant/domain.Ports)
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("assistant"), modkit.WithPrefix("/assistant")}, opts...)...)

	ports, ok := b.Ports.(domain.Ports)
	if !ok {
		panic("assistant module: expected WithPorts(assistant/domain.Ports)")
	}
	if ports.Calendar == nil || ports.Inbox == nil || ports.Mail == nil || ports.LLM == nil {
		panic("assistant module: Ports missing Calendar, Inbox, Mail, or LLM")
	}

	svc := astsvc.New(ports, astsvc.Config{
		MaxTokens: deps.Cfg.Prefix("ASSISTANT_").MayInt("MAX_TOKENS", 0),
	})

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = adaptAssistantPort{svc: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		asthttp.Register(r, m.svc)
		if external != nil {
			external(r)
		}
	}
	return m
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.prefix, func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		if m.subrouter != nil {
			rr = m.subrouter(rr)
		}
		if m.register != nil {
			m.register(rr)
		}
	})
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Middlewares returns the module middlewares
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }
