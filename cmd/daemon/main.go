// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// SPDX-License-Identifier: MIT
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/ManuGH/firelog/internal/api"
	"github.com/ManuGH/firelog/internal/config"
	"github.com/ManuGH/firelog/internal/daemon"
	xglog "github.com/ManuGH/firelog/internal/log"
	"github.com/ManuGH/firelog/internal/telemetry"
	"github.com/ManuGH/firelog/internal/version"
)

func main() {
	showVersion := flag.Bool("version", false, "print version and exit")
	configPath := flag.String("config", "", "path to config file (YAML)")
	flag.Parse()

	if *showVersion {
		fmt.Println(versionString())
		os.Exit(0)
	}

	// Safe defaults until config is loaded
	xglog.Configure(xglog.Config{
		Level:   "info",
		Service: "firelog",
		Version: version.Version,
	})
	logger := xglog.WithComponent("daemon")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	path := strings.TrimSpace(*configPath)
	loader := config.NewLoader(path, version.Version)
	cfg, err := loader.Load()
	if err != nil {
		logger.Fatal().
			Err(err).
			Str(xglog.FieldEvent, "config.load_failed").
			Str("config_path", path).
			Msg("failed to load configuration")
	}

	xglog.Configure(xglog.Config{
		Level:   cfg.LogLevel,
		Service: cfg.LogService,
		Version: cfg.Version,
	})
	logger = xglog.WithComponent("daemon")

	source := "env+defaults"
	if path != "" {
		source = "file"
	}
	logger.Info().
		Str(xglog.FieldEvent, "config.loaded").
		Str("source", source).
		Str("path", path).
		Int("env_keys_checked", len(loader.ConsumedEnvKeys)).
		Msg("loaded configuration")

	if cfg.Wildfire.Enabled {
		logger.Warn().
			Str(xglog.FieldEvent, "wildfire.enabled").
			Bool("require_client", cfg.Wildfire.RequireClient).
			Msg("console headers enabled: log output is sent to clients, do not expose this instance publicly")
	}

	tp, err := telemetry.NewProvider(ctx, tracingConfig(cfg))
	if err != nil {
		logger.Fatal().
			Err(err).
			Str(xglog.FieldEvent, "telemetry.init_failed").
			Msg("failed to initialise tracing")
	}

	s := api.New(cfg)
	mgr, err := daemon.NewManager(daemon.DefaultServerConfig(cfg.ListenAddr), daemon.Deps{
		Logger:     logger,
		APIHandler: s.Handler(),
		OnDrain:    func() { s.SetDraining(true) },
	})
	if err != nil {
		logger.Fatal().
			Err(err).
			Str(xglog.FieldEvent, "manager.creation.failed").
			Msg("failed to create daemon manager")
	}
	mgr.RegisterShutdownHook("telemetry", tp.Shutdown)

	if err := mgr.Start(ctx); err != nil {
		logger.Fatal().
			Err(err).
			Str(xglog.FieldEvent, "manager.failed").
			Msg("daemon manager failed")
	}

	logger.Info().Msg("server exiting")
}

func versionString() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", version.Version, version.Commit, version.Date)
}

func tracingConfig(cfg config.AppConfig) telemetry.Config {
	return telemetry.Config{
		Enabled:        cfg.Tracing.Enabled,
		ServiceName:    cfg.LogService,
		ServiceVersion: cfg.Version,
		ExporterType:   cfg.Tracing.Exporter,
		Endpoint:       cfg.Tracing.Endpoint,
		SamplingRate:   cfg.Tracing.SamplingRate,
	}
}
