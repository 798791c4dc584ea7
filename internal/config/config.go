// Package config loads server settings from the environment
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/cabeard21/ao-bin-dumps/internal/errors"
)

// Defaults applied when a variable is unset
const (
	DefaultPort                    = 50051
	DefaultMetricsPort             = 9090
	DefaultRedisAddr               = "localhost:6379"
	DefaultMarketBaseURL           = "https://west.albion-online-data.com"
	DefaultMarketTimeout           = 30 * time.Second
	DefaultMarketRequestsPerSecond = 3.0
	DefaultLocation                = "Caerleon"
	DefaultLogLevel                = "info"
	DefaultLogFormat               = "text"
	DefaultSelectionTTL            = 24 * time.Hour
)

// Config holds the application configuration
type Config struct {
	Port        int
	MetricsPort int

	// RedisAddrs is a single address, a redis:// URL or several cluster nodes
	RedisAddrs []string

	MarketBaseURL string
	MarketTimeout time.Duration
	// MarketRequestsPerSecond is shared by every in-flight price fetch.
	// Zero disables the limit.
	MarketRequestsPerSecond float64

	DefaultLocation string
	SelectionTTL    time.Duration

	LogLevel  string
	LogFormat string
}

// Load reads the configuration from the environment. A .env file in the
// working directory is applied first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromLookup(os.LookupEnv)
}

// FromLookup builds the configuration from an arbitrary variable source
func FromLookup(lookup func(string) (string, bool)) (*Config, error) {
	env := reader{lookup: lookup, vb: errors.NewValidationBuilder()}

	cfg := &Config{
		Port:                    env.integer("PORT", DefaultPort),
		MetricsPort:             env.integer("METRICS_PORT", DefaultMetricsPort),
		RedisAddrs:              env.list("REDIS_ADDR", DefaultRedisAddr),
		MarketBaseURL:           env.str("MARKET_BASE_URL", DefaultMarketBaseURL),
		MarketTimeout:           env.dur("MARKET_TIMEOUT", DefaultMarketTimeout),
		MarketRequestsPerSecond: env.number("MARKET_REQUESTS_PER_SECOND", DefaultMarketRequestsPerSecond),
		DefaultLocation:         env.str("DEFAULT_LOCATION", DefaultLocation),
		SelectionTTL:            env.dur("SELECTION_TTL", DefaultSelectionTTL),
		LogLevel:                env.str("LOG_LEVEL", DefaultLogLevel),
		LogFormat:               env.str("LOG_FORMAT", DefaultLogFormat),
	}

	if err := cfg.validate(env.vb); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate(vb *errors.ValidationBuilder) error {
	if c.Port < 1 || c.Port > 65535 {
		vb.Field("PORT", "must be between 1 and 65535")
	}
	if c.MetricsPort < 0 || c.MetricsPort > 65535 {
		vb.Field("METRICS_PORT", "must be between 0 and 65535")
	}
	if len(c.RedisAddrs) == 0 {
		vb.RequiredField("REDIS_ADDR")
	}
	if c.MarketTimeout <= 0 {
		vb.Field("MARKET_TIMEOUT", "must be positive")
	}
	if c.MarketRequestsPerSecond < 0 {
		vb.Field("MARKET_REQUESTS_PER_SECOND", "must not be negative")
	}
	if c.SelectionTTL <= 0 {
		vb.Field("SELECTION_TTL", "must be positive")
	}
	return vb.Build()
}

// reader collects parse failures so every bad variable is reported at once
type reader struct {
	lookup func(string) (string, bool)
	vb     *errors.ValidationBuilder
}

func (r reader) str(key, defaultValue string) string {
	if value, ok := r.lookup(key); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return defaultValue
}

func (r reader) integer(key string, defaultValue int) int {
	raw := r.str(key, "")
	if raw == "" {
		return defaultValue
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		r.vb.Fieldf(key, "%q is not an integer", raw)
		return defaultValue
	}
	return v
}

func (r reader) number(key string, defaultValue float64) float64 {
	raw := r.str(key, "")
	if raw == "" {
		return defaultValue
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		r.vb.Fieldf(key, "%q is not a number", raw)
		return defaultValue
	}
	return v
}

func (r reader) dur(key string, defaultValue time.Duration) time.Duration {
	raw := r.str(key, "")
	if raw == "" {
		return defaultValue
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		r.vb.Fieldf(key, "%q is not a duration", raw)
		return defaultValue
	}
	return v
}

func (r reader) list(key, defaultValue string) []string {
	var out []string
	for _, part := range strings.Split(r.str(key, defaultValue), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
