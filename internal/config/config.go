// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package config loads the firelog daemon configuration from defaults,
// an optional YAML file and FIRELOG_* environment variables.
package config

import (
	"fmt"
	"net"
	"strings"

	"github.com/rs/zerolog"
)

// AppConfig is the effective daemon configuration.
type AppConfig struct {
	ListenAddr string `yaml:"listenAddr"`
	LogLevel   string `yaml:"logLevel"`
	LogService string `yaml:"logService"`

	Wildfire  WildfireConfig  `yaml:"wildfire"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	Tracing   TracingConfig   `yaml:"tracing"`
	RateLimit RateLimitConfig `yaml:"rateLimit"`

	// Version is taken from the binary, never from file or env.
	Version string `yaml:"-"`
}

// WildfireConfig controls the console header emitter.
type WildfireConfig struct {
	// Enabled turns on console headers. They expose log output to any
	// client, so this must stay off on public deployments.
	Enabled bool `yaml:"enabled"`

	// RequireClient only opens a console session for requests from a
	// browser announcing a FirePHP extension.
	RequireClient bool `yaml:"requireClient"`
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// TracingConfig controls OpenTelemetry tracing.
type TracingConfig struct {
	Enabled      bool    `yaml:"enabled"`
	Exporter     string  `yaml:"exporter"`
	Endpoint     string  `yaml:"endpoint"`
	SamplingRate float64 `yaml:"samplingRate"`
}

// RateLimitConfig controls per-client request limiting.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requestsPerMinute"`
}

// Defaults returns the built-in configuration.
func Defaults() AppConfig {
	return AppConfig{
		ListenAddr: ":8080",
		LogLevel:   "info",
		LogService: "firelog",
		Wildfire: WildfireConfig{
			Enabled:       false,
			RequireClient: false,
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
		Tracing: TracingConfig{
			Enabled:      false,
			Exporter:     "grpc",
			Endpoint:     "localhost:4317",
			SamplingRate: 1.0,
		},
		RateLimit: RateLimitConfig{
			Enabled:           false,
			RequestsPerMinute: 600,
		},
	}
}

// Validate checks cfg for values the daemon cannot run with.
func Validate(cfg AppConfig) error {
	var problems []string

	if _, _, err := net.SplitHostPort(cfg.ListenAddr); err != nil {
		problems = append(problems, fmt.Sprintf("listenAddr %q: %v", cfg.ListenAddr, err))
	}
	if _, err := zerolog.ParseLevel(cfg.LogLevel); err != nil {
		problems = append(problems, fmt.Sprintf("logLevel %q is not a known level", cfg.LogLevel))
	}
	if cfg.Metrics.Enabled && !strings.HasPrefix(cfg.Metrics.Path, "/") {
		problems = append(problems, fmt.Sprintf("metrics.path %q must start with /", cfg.Metrics.Path))
	}
	if cfg.Tracing.Enabled {
		switch cfg.Tracing.Exporter {
		case "grpc", "http":
		default:
			problems = append(problems, fmt.Sprintf("tracing.exporter %q must be grpc or http", cfg.Tracing.Exporter))
		}
		if cfg.Tracing.Endpoint == "" {
			problems = append(problems, "tracing.endpoint is required when tracing is enabled")
		}
	}
	if cfg.Tracing.SamplingRate < 0 || cfg.Tracing.SamplingRate > 1 {
		problems = append(problems, fmt.Sprintf("tracing.samplingRate %v must be within [0,1]", cfg.Tracing.SamplingRate))
	}
	if cfg.RateLimit.Enabled && cfg.RateLimit.RequestsPerMinute <= 0 {
		problems = append(problems, "rateLimit.requestsPerMinute must be positive when rate limiting is enabled")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}
