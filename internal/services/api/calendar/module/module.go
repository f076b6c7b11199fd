// Package module wires calendar into the API using modkit
package module

import (
	"net/http"

	modkit "daybrief/internal/modkit"
	"daybrief/internal/modkit/httpkit"
	str "daybrief/internal/platform/strings"
	"daybrief/internal/services/api/calendar/domain"
	calhttp "daybrief/internal/services/api/calendar/http"
	calsvc "daybrief/internal/services/api/calendar/service"
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

	svc calsvc.Service
}

// New constructs a calendar module. The mail and zone ports must be injected
// with modkit.WithPorts(calendar/domain.Ports)
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("calendar"), modkit.WithPrefix("/calendar")}, opts...)...)

	ports, ok := b.Ports.(domain.Ports)
	if !ok {
		panic("calendar module: expected WithPorts(calendar/domain.Ports)")
	}
	if ports.Mail == nil || ports.Zones == nil {
		panic("calendar module: Ports missing Mail or Zones")
	}

	svc := calsvc.New(ports, calsvc.Config{
		MaxDays: deps.Cfg.Prefix("CALENDAR_").MayInt("MAX_DAYS", 0),
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
	m.ports = adaptCalendarPort{svc: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		calhttp.Register(r, m.svc)
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
