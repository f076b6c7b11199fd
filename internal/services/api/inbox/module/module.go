// Package module wires inbox into the API using modkit
package module

import (
	"net/http"

	modkit "daybrief/internal/modkit"
	"daybrief/internal/modkit/httpkit"
	str "daybrief/internal/platform/strings"
	"daybrief/internal/services/api/inbox/domain"
	inboxhttp "daybrief/internal/services/api/inbox/http"
	inboxsvc "daybrief/internal/services/api/inbox/service"
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

	svc inboxsvc.Service
}

// New constructs an inbox module. The mail and zone ports must be injected
// with modkit.WithPorts(inbox/domain.Ports)
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("inbox"), modkit.WithPrefix("/inbox")}, opts...)...)

	ports, ok := b.Ports.(domain.Ports)
	if !ok {
		panic("inbox module: expected WithPorts(inbox/domain.Ports)")
	}
	if ports.Mail == nil || ports.Zones == nil {
		panic("inbox module: Ports missing Mail or Zones")
	}

	cfg := deps.Cfg.Prefix("INBOX_")
	svc := inboxsvc.New(ports, inboxsvc.Config{
		Top:     cfg.MayInt("TOP", 0),
		MaxDays: cfg.MayInt("MAX_DAYS", 0),
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
	m.ports = adaptInboxPort{svc: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		inboxhttp.Register(r, m.svc)
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
