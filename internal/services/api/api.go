// Package api provides the HTTP API for the application
package api

import (
	"context"

	"daybrief/internal/platform/config"
	"daybrief/internal/platform/logger"
	pnet "daybrief/internal/platform/net"
	phttp "daybrief/internal/platform/net/http"
	"daybrief/internal/platform/store"

	"daybrief/internal/modkit"
	"daybrief/internal/modkit/httpkit"
	"daybrief/internal/modkit/module"
	"daybrief/internal/modkit/swaggerkit"

	"daybrief/internal/adapters/ident"
	"daybrief/internal/adapters/llm"
	"daybrief/internal/adapters/mailapi"

	admindom "daybrief/internal/services/api/admin/domain"
	adminmod "daybrief/internal/services/api/admin/module"
	astdom "daybrief/internal/services/api/assistant/domain"
	astmod "daybrief/internal/services/api/assistant/module"
	caldom "daybrief/internal/services/api/calendar/domain"
	calmod "daybrief/internal/services/api/calendar/module"
	inboxdom "daybrief/internal/services/api/inbox/domain"
	inboxmod "daybrief/internal/services/api/inbox/module"
	metamod "daybrief/internal/services/api/meta/module"
	orgsdom "daybrief/internal/services/api/orgs/domain"
	orgsmod "daybrief/internal/services/api/orgs/module"

	digestrepo "daybrief/internal/services/digest/repo"
	digestsvc "daybrief/internal/services/digest/service"
	usagemod "daybrief/internal/services/usage/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	cfg := opt.Config

	// shared deps for modules
	deps := modkit.Deps{
		Cfg: cfg,
		PG:  opt.Store.PG,
		CH:  opt.Store.CH,
	}

	// Orgs first; auth resolves every verified identity through its tenant lookup
	orgs := orgsmod.New(deps)
	orgsPort := module.MustPortsOf[orgsdom.ServicePort](orgs)

	// Usage recorder fans out to every metered module; the reader serves admin.
	// The flusher port is the caller's to run (see cmd/daybrief-api)
	usage := usagemod.New(deps, usagemod.Options{})
	up := module.MustPortsOf[usagemod.Ports](usage)

	// Outbound clients are built once and shared across modules
	mail := mailapi.NewClient(mailapi.Options{
		BaseURL: cfg.MayString("MAILAPI_BASE_URL", ""),
	})
	ai := llm.NewClient(llm.Options{
		BaseURL: cfg.MustString("LLM_BASE_URL"),
		APIKey:  cfg.MustString("LLM_API_KEY"),
		Model:   cfg.MayString("LLM_MODEL", ""),
	})

	// The browser app carries the provider token in a session cookie; API
	// clients send Authorization Bearer. Verified identities must map onto an
	// active org before any handler runs
	verifier := ident.NewVerifier(ident.NewClient(ident.Options{
		BaseURL: cfg.MustString("IDENT_BASE_URL"),
	}), cfg.MayDuration("IDENT_CACHE_TTL", 0))

	authPort := httpkit.NewPortFunc(
		cfg.MayString("AUTH_COOKIE", "daybrief_token"),
		func(ctx context.Context, token string) (pnet.Identity, error) {
			id, err := verifier.Verify(ctx, token)
			if err != nil {
				return pnet.Identity{}, err
			}
			org, err := orgsPort.ResolveProviderTenant(ctx, id.ProviderTenantID)
			if err != nil {
				return pnet.Identity{}, err
			}
			return pnet.Identity{UserID: id.UserID, OrgID: org.ID}, nil
		},
	)

	calendar := calmod.New(deps, modkit.WithPorts(caldom.Ports{
		Mail:  mail,
		Zones: orgsPort,
		Usage: up.Recorder,
	}))

	inbox := inboxmod.New(deps, modkit.WithPorts(inboxdom.Ports{
		Mail:  mail,
		Zones: orgsPort,
		Usage: up.Recorder,
	}))

	// Assistant composes the calendar and inbox slices rather than re-reading
	// the mail API for context
	assistant := astmod.New(deps, modkit.WithPorts(astdom.Ports{
		Calendar: module.MustPortsOf[astdom.CalendarPort](calendar),
		Inbox:    module.MustPortsOf[astdom.InboxPort](inbox),
		Mail:     mail,
		LLM:      ai,
		Usage:    up.Recorder,
	}))

	admin := adminmod.New(deps, modkit.WithPorts(admindom.Ports{
		Orgs:    orgsPort,
		Usage:   up.Reader,
		Digests: digestsvc.NewReader(deps.PG, digestrepo.NewPG()),
	}))

	// Probe routes mount at the root, unauthenticated and unversioned
	meta := metamod.New(deps)
	module.Register(meta.Name(), meta.Ports())
	meta.MountRoutes(r)

	module.Register(usage.Name(), usage.Ports())

	mods := []module.Module{orgs, calendar, inbox, assistant, admin}

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(), func(api httpkit.Router) {
		// Swagger + profiler
		swaggerkit.Mount(r, opt.EnableSwagger)
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		// everything under /api/v1 requires a verified caller
		httpkit.Protected(api, authPort, func(sec httpkit.Router) {
			for _, m := range mods {
				// register each module's ports under its own name (for cross-module lookups)
				module.Register(m.Name(), m.Ports())

				// mount module routes under its Prefix()
				m.MountRoutes(sec)
			}
		})
	})
}
