// Package module wires the admin dashboard into the API using modkit
package module

import (
	"net/http"

	modkit "daybrief/internal/modkit"
	"daybrief/internal/modkit/httpkit"
	str "daybrief/internal/platform/strings"
	"daybrief/internal/services/api/admin/domain"
	adminhttp "daybrief/internal/services/api/admin/http"
	adminsvc "daybrief/internal/services/api/admin/service"
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

	svc adminsvc.Service
}

// New constructs an admin module. The orgs, usage, and digests ports must be
// injected with modkit.WithPorts(admin/domain.Ports)
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("admin"), modkit.WithPrefix("/admin")}, opts...)...)

	ports, ok := b.Ports.(domain.Ports)
	if !ok {
		panic("admin module: expected WithPorts(admin/domain.Ports)")
	}
	if ports.Orgs == nil || ports.Usage == nil || ports.Digests == nil {
		panic("admin module: Ports missing Orgs, Usage, or Digests")
	}

	svc := adminsvc.New(ports, adminsvc.Config{
		AdminTenant: deps.Cfg.MayString("ADMIN_TENANT", ""),
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
	m.ports = adaptAdminPort{svc: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		adminhttp.Register(r, m.svc)
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
