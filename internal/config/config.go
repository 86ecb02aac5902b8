// Package config loads server settings from DICE_* environment variables
package config

import (
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/KirkDiggler/rpg-dice-mcp/internal/errors"
)

// Transport values for the MCP listener
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// Log formats
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Config holds runtime settings. Cobra flags override the environment.
type Config struct {
	Transport string `env:"DICE_TRANSPORT" envDefault:"stdio"`
	HTTPAddr  string `env:"DICE_HTTP_ADDR" envDefault:"localhost:8081"`
	// GRPCPort of 0 disables the gRPC listener
	GRPCPort int `env:"DICE_GRPC_PORT" envDefault:"0"`
	// Seed selects a reproducible random source when set
	Seed *uint64 `env:"DICE_SEED"`

	LogLevel  string `env:"DICE_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"DICE_LOG_FORMAT" envDefault:"text"`

	// OTelEndpoint is an OTLP/HTTP traces URL. Empty disables tracing.
	OTelEndpoint    string        `env:"DICE_OTEL_ENDPOINT"`
	ShutdownTimeout time.Duration `env:"DICE_SHUTDOWN_TIMEOUT" envDefault:"30s"`
}

// Load parses the environment into a Config
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "parse env")
	}
	return cfg, nil
}

// Validate checks value ranges and enums
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateEnum("transport", c.Transport, []string{TransportStdio, TransportHTTP}, vb)
	if c.Transport == TransportHTTP {
		errors.ValidateRequired("http_addr", c.HTTPAddr, vb)
	}
	errors.ValidateRange("grpc_port", c.GRPCPort, 0, 65535, vb)
	errors.ValidateEnum("log_level", strings.ToLower(c.LogLevel), []string{"debug", "info", "warn", "error"}, vb)
	errors.ValidateEnum("log_format", c.LogFormat, []string{LogFormatText, LogFormatJSON}, vb)
	if c.ShutdownTimeout <= 0 {
		vb.Field("shutdown_timeout", "must be positive")
	}

	return vb.Build()
}

// Level returns the configured slog level, defaulting to info
func (c *Config) Level() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// NewLogger builds the process logger. Stdio serving owns stdout, so callers
// pass stderr.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.Level()}
	if c.LogFormat == LogFormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
