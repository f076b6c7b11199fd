package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"daybrief/internal/modkit"
	"daybrief/internal/modkit/module"
	"daybrief/internal/platform/config"
	"daybrief/internal/platform/logger"
	"daybrief/internal/platform/store"

	"daybrief/internal/adapters/ident"
	"daybrief/internal/adapters/llm"
	"daybrief/internal/adapters/mailapi"

	digestdom "daybrief/internal/services/digest/domain"
	digestmod "daybrief/internal/services/digest/module"
	usagemod "daybrief/internal/services/usage/module"
)

func mustSetEnv(key, val string) {
	if val != "" {
		_ = os.Setenv(key, val)
	}
}

func main() {
	root := config.New()
	appCfg := root.Prefix("DAYBRIEF_")

	pgCfg := root.Prefix("SERVICE_PGSQL_")
	chCfg := root.Prefix("SERVICE_CLICKHOUSE_")

	l := logger.Get()

	st, err := store.Open(context.Background(), store.Config{
		PG: store.PGConfig{
			Enabled:     true,
			URL:         pgCfg.MustString("DBURL"),
			MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
			SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
			LogSQL:      pgCfg.MayBool("LOG_SQL", false),
		},
		CH: store.CHConfig{
			Enabled:    true,
			URL:        chCfg.MustString("DBURL"),
			ClientName: "daybrief",
			ClientTag:  "digest",
		},
	}, store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	// Flags (same spirit as the api's env keys)
	var (
		fCron   = flag.String("cron", "", "digest schedule in cron form (default hourly on the hour)")
		fConc   = flag.Int("concurrency", 0, "per-org delivery concurrency")
		fTokens = flag.Int("max_tokens", 0, "completion token cap per summary")
	)
	flag.Parse()

	deps := modkit.Deps{
		Cfg: appCfg,
		PG:  st.PG,
		CH:  st.CH,
		Log: *l,
	}

	// Export as env so the module can also read via FromConfig
	mustSetEnv("DAYBRIEF_DIGEST_CRON", *fCron)
	if *fConc > 0 {
		mustSetEnv("DAYBRIEF_DIGEST_WORKER_CONCURRENCY", fmt.Sprintf("%d", *fConc))
	}
	if *fTokens > 0 {
		mustSetEnv("DAYBRIEF_DIGEST_MAX_TOKENS", fmt.Sprintf("%d", *fTokens))
	}

	// Root context with cancellation on SIGINT/SIGTERM so the cron loop can
	// drain in-flight runs before exit
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		l.Info().Str("signal", sig.String()).Msg("signal received, shutting down")
		cancel()
	}()

	// Usage metering shares the api's recorder; runs get kind=digest events
	usage := usagemod.New(deps, usagemod.Options{})
	up := module.MustPortsOf[usagemod.Ports](usage)
	go func() {
		if err := up.Flusher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			l.Error().Err(err).Msg("usage flusher stopped")
		}
	}()

	mail := mailapi.NewClient(mailapi.Options{
		BaseURL: appCfg.MayString("MAILAPI_BASE_URL", ""),
	})
	ai := llm.NewClient(llm.Options{
		BaseURL: appCfg.MustString("LLM_BASE_URL"),
		APIKey:  appCfg.MustString("LLM_API_KEY"),
		Model:   appCfg.MayString("LLM_MODEL", ""),
	})

	// App-only credentials; the worker reads mailboxes without a user session
	tokens := ident.AppTokenSource(ctx, ident.AppCredentials{
		TokenURL:     appCfg.MustString("APP_TOKEN_URL"),
		ClientID:     appCfg.MustString("APP_CLIENT_ID"),
		ClientSecret: appCfg.MustString("APP_CLIENT_SECRET"),
		Scopes:       splitScopes(appCfg.MayString("APP_SCOPES", "")),
	})

	mod := digestmod.New(deps, digestdom.Ports{
		Mail:   mail,
		LLM:    ai,
		Tokens: tokens,
		Usage:  up.Recorder,
	}, digestmod.Options{
		Schedule:    *fCron,
		Concurrency: *fConc,
		MaxTokens:   *fTokens,
	})
	module.Register(mod.Name(), mod.Ports())

	ports := module.MustPortsOf[digestmod.Ports](mod)

	if err := ports.Worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		l.Fatal().Err(err).Msg("digest worker failed")
	}
}

func splitScopes(csv string) []string {
	if strings.TrimSpace(csv) == "" {
		return nil
	}
	parts := strings.Split(csv, ",")
	out := parts[:0]
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
