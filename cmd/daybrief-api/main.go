// @title         Daybrief API
// @version       0.1.0
// @description   Calendar, inbox, assistant, and admin endpoints for the daily briefing app

package main

import (
	"context"
	"errors"

	"daybrief/internal/platform/config"
	"daybrief/internal/platform/logger"
	phttp "daybrief/internal/platform/net/http"
	"daybrief/internal/platform/store"

	"daybrief/internal/modkit/module"
	"daybrief/internal/services/api"
	usagemod "daybrief/internal/services/usage/module"
)

func main() {
	// service-scoped config for HTTP etc (DAYBRIEF_*)
	root := config.New()
	apiCfg := root.Prefix("DAYBRIEF_")

	pgCfg := root.Prefix("SERVICE_PGSQL_")      // pgCfg lives under SERVICE_PGSQL_*
	chCfg := root.Prefix("SERVICE_CLICKHOUSE_") // chCfg lives under SERVICE_CLICKHOUSE_*
	// bring up logging early
	l := logger.Get()

	// open the platform store (postgres + CH adapter)
	st, err := store.Open(
		context.Background(),
		store.Config{
			PG: store.PGConfig{
				Enabled:     true,
				URL:         pgCfg.MustString("DBURL"),
				MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
				SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
				LogSQL:      pgCfg.MayBool("LOG_SQL", true),
			},
			CH: store.CHConfig{
				Enabled:    true,
				URL:        chCfg.MustString("DBURL"),
				ClientName: "daybrief",
				ClientTag:  "api",
			},
		},
		store.WithLogger(*logger.Get()),
	)
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	// http server (reads DAYBRIEF_API_PORT)
	srv := phttp.NewServer(apiCfg)

	// mount our API
	api.Mount(
		srv.Router(),
		api.Options{
			Config:         apiCfg,
			Store:          st,
			Logger:         l,
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", true),
		},
	)

	// drain recorded usage events for the life of the process
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if up, ok := module.PortsAs[usagemod.Ports]("usage"); ok {
		go func() {
			if err := up.Flusher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				l.Error().Err(err).Msg("usage flusher stopped")
			}
		}()
	}

	// run
	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
