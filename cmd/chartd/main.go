package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"chartd/internal/collector"
	"chartd/internal/config"
	"chartd/internal/logging"
	"chartd/internal/overlay"
	"chartd/internal/recorder"
	"chartd/internal/scheduler"
	"chartd/internal/server"
	"chartd/internal/stream"
	"chartd/internal/surface"
)

func main() {
	_ = godotenv.Load()

	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		bootLog := logging.New("info")
		bootLog.Fatal().Err(err).Msg("load config")
	}
	if err := cfg.Validate(); err != nil {
		bootLog := logging.New("info")
		bootLog.Fatal().Err(err).Msg("config validation")
	}

	log := logging.New(cfg.Log.Level)
	log.Info().Str("listen", cfg.Server.Listen).Msg("chartd starting")

	var fetcher collector.Fetcher
	if cfg.DataSource.BaseURL != "" {
		fetcher = collector.NewAnalysisFetcher(cfg.DataSource.BaseURL, cfg.DataSource.APIKey, cfg.Proxy)
	} else {
		fetcher = &collector.MockFetcher{}
	}
	log.Info().Str("source", fetcher.Name()).Msg("data source ready")

	col := collector.NewCollector(fetcher, cfg.DataSource.Symbol, cfg.DataSource.Pattern, cfg.DataSource.CandleLimit)

	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Warn().Err(err).Msg("init sqlite recorder failed, using noop")
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// The hub needs the surface for late-joiner snapshots and the surface
	// needs the hub to publish mutations, so wire them in two steps.
	var surf *surface.Stream
	hub := stream.NewHub(func() surface.Snapshot { return surf.Snapshot() }, logging.WithComponent(log, "stream"))
	surf = surface.NewStream(hub.Publish)

	eng := overlay.NewEngine(surf, cfg.OverlayOptions(), logging.WithComponent(log, "overlay"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sched := scheduler.NewScheduler(ctx, col, eng, rec, logging.WithComponent(log, "scheduler"))
	if err := sched.Register(cfg.Schedule.RefreshCron); err != nil {
		log.Fatal().Err(err).Msg("register refresh task")
	}
	sched.Start()
	defer sched.Stop()

	if err := sched.Refresh(ctx); err != nil {
		log.Warn().Err(err).Msg("initial refresh failed")
	}

	srv := server.New(surf, col, sched, hub.HandleWS, logging.WithComponent(log, "server"))
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Run(ctx, cfg.Server.Listen) }()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			log.Error().Err(err).Msg("server stopped")
		}
	}
	cancel()
	log.Info().Msg("chartd stopped")
}
