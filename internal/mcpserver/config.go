package mcpserver

import (
	"log/slog"
	"os"
	"strconv"
	"time"
)

// serverConfig holds all configurable MCP server defaults.
// Loaded once at startup from environment variables via loadConfig().
type serverConfig struct {
	// Cache settings.
	CacheEnabled       bool
	CacheMaxSize       int
	CacheFileTTL       time.Duration
	CacheContentTTL    time.Duration
	CacheSweepInterval time.Duration

	// Input limits.
	MaxInlineSize int64
	MaxDepth      int

	// Error list pagination.
	ErrorLimit int
	MaxLimit   int

	// Describe tool default output, "text", "oas3" or "oas2".
	DescribeFormat string
}

// cfg is the active server configuration, initialized at package load time.
var cfg = loadConfig()

// loadConfig reads configuration from PARAMPREP_* environment variables.
// Invalid values log a warning and fall back to the hardcoded default.
func loadConfig() *serverConfig {
	return &serverConfig{
		CacheEnabled:       envBool("PARAMPREP_CACHE_ENABLED", true),
		CacheMaxSize:       envInt("PARAMPREP_CACHE_MAX_SIZE", 10),
		CacheFileTTL:       envDuration("PARAMPREP_CACHE_FILE_TTL", 15*time.Minute),
		CacheContentTTL:    envDuration("PARAMPREP_CACHE_CONTENT_TTL", 15*time.Minute),
		CacheSweepInterval: envDuration("PARAMPREP_CACHE_SWEEP_INTERVAL", 60*time.Second),
		MaxInlineSize:      int64(envInt("PARAMPREP_MAX_INLINE_SIZE", 1024*1024)),
		MaxDepth:           envInt("PARAMPREP_MAX_DEPTH", 64),
		ErrorLimit:         envInt("PARAMPREP_ERROR_LIMIT", 100),
		MaxLimit:           envInt("PARAMPREP_MAX_LIMIT", 1000),
		DescribeFormat:     envChoice("PARAMPREP_DESCRIBE_FORMAT", describeFormats, "text"),
	}
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid bool env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return b
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return n
}

func envChoice(key string, allowed []string, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	for _, a := range allowed {
		if v == a {
			return v
		}
	}
	slog.Warn("invalid choice env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		slog.Warn("invalid duration env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return d
}
