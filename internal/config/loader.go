// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Environment variables read by the loader.
const (
	EnvListenAddr            = "FIRELOG_LISTEN"
	EnvLogLevel              = "FIRELOG_LOG_LEVEL"
	EnvLogService            = "FIRELOG_LOG_SERVICE"
	EnvWildfireEnabled       = "FIRELOG_WILDFIRE_ENABLED"
	EnvWildfireRequireClient = "FIRELOG_WILDFIRE_REQUIRE_CLIENT"
	EnvMetricsEnabled        = "FIRELOG_METRICS_ENABLED"
	EnvMetricsPath           = "FIRELOG_METRICS_PATH"
	EnvTracingEnabled        = "FIRELOG_TRACING_ENABLED"
	EnvTracingExporter       = "FIRELOG_TRACING_EXPORTER"
	EnvTracingEndpoint       = "FIRELOG_TRACING_ENDPOINT"
	EnvTracingSamplingRate   = "FIRELOG_TRACING_SAMPLING_RATE"
	EnvRateLimitEnabled      = "FIRELOG_RATELIMIT_ENABLED"
	EnvRateLimitRPM          = "FIRELOG_RATELIMIT_RPM"
)

// Loader handles configuration loading with precedence
type Loader struct {
	configPath      string
	version         string
	ConsumedEnvKeys map[string]struct{}
}

// NewLoader creates a new configuration loader
func NewLoader(configPath, version string) *Loader {
	return &Loader{
		configPath:      configPath,
		version:         version,
		ConsumedEnvKeys: make(map[string]struct{}),
	}
}

func (l *Loader) envString(key, defaultVal string) string {
	l.ConsumedEnvKeys[key] = struct{}{}
	return ParseString(key, defaultVal)
}

func (l *Loader) envBool(key string, defaultVal bool) bool {
	l.ConsumedEnvKeys[key] = struct{}{}
	return ParseBool(key, defaultVal)
}

func (l *Loader) envInt(key string, defaultVal int) int {
	l.ConsumedEnvKeys[key] = struct{}{}
	return ParseInt(key, defaultVal)
}

func (l *Loader) envFloat(key string, defaultVal float64) float64 {
	l.ConsumedEnvKeys[key] = struct{}{}
	return ParseFloat(key, defaultVal)
}

// Load loads configuration with precedence: ENV > File > Defaults
func (l *Loader) Load() (AppConfig, error) {
	cfg := Defaults()

	if l.configPath != "" {
		if err := l.loadFile(l.configPath, &cfg); err != nil {
			return cfg, fmt.Errorf("load config file: %w", err)
		}
	}

	l.mergeEnv(&cfg)
	cfg.Version = l.version

	if err := Validate(cfg); err != nil {
		return cfg, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// loadFile decodes a YAML file over cfg with STRICT parsing.
// Unknown fields are rejected to prevent silent misconfiguration.
func (l *Loader) loadFile(path string, cfg *AppConfig) error {
	path = filepath.Clean(path)

	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("unsupported config format: %s (only YAML supported)", ext)
	}

	// #nosec G304 -- configuration file paths are provided by the operator via CLI/ENV
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		if strings.Contains(err.Error(), "field") && strings.Contains(err.Error(), "not found") {
			return fmt.Errorf("%w: %v", ErrUnknownConfigField, err)
		}
		return fmt.Errorf("strict config parse error: %w", err)
	}

	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return fmt.Errorf("config file contains multiple documents or trailing content")
	}
	return nil
}

func (l *Loader) mergeEnv(cfg *AppConfig) {
	cfg.ListenAddr = l.envString(EnvListenAddr, cfg.ListenAddr)
	cfg.LogLevel = l.envString(EnvLogLevel, cfg.LogLevel)
	cfg.LogService = l.envString(EnvLogService, cfg.LogService)

	cfg.Wildfire.Enabled = l.envBool(EnvWildfireEnabled, cfg.Wildfire.Enabled)
	cfg.Wildfire.RequireClient = l.envBool(EnvWildfireRequireClient, cfg.Wildfire.RequireClient)

	cfg.Metrics.Enabled = l.envBool(EnvMetricsEnabled, cfg.Metrics.Enabled)
	cfg.Metrics.Path = l.envString(EnvMetricsPath, cfg.Metrics.Path)

	cfg.Tracing.Enabled = l.envBool(EnvTracingEnabled, cfg.Tracing.Enabled)
	cfg.Tracing.Exporter = l.envString(EnvTracingExporter, cfg.Tracing.Exporter)
	cfg.Tracing.Endpoint = l.envString(EnvTracingEndpoint, cfg.Tracing.Endpoint)
	cfg.Tracing.SamplingRate = l.envFloat(EnvTracingSamplingRate, cfg.Tracing.SamplingRate)

	cfg.RateLimit.Enabled = l.envBool(EnvRateLimitEnabled, cfg.RateLimit.Enabled)
	cfg.RateLimit.RequestsPerMinute = l.envInt(EnvRateLimitRPM, cfg.RateLimit.RequestsPerMinute)
}

// LoadFileConfig loads a YAML config file over the defaults without env overrides.
func LoadFileConfig(path string) (AppConfig, error) {
	cfg := Defaults()
	err := NewLoader(path, "").loadFile(path, &cfg)
	return cfg, err
}
