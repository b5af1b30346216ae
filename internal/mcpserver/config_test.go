package mcpserver

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// clearParamprepEnv clears all PARAMPREP_* env vars to isolate tests from the ambient environment.
func clearParamprepEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PARAMPREP_CACHE_ENABLED", "PARAMPREP_CACHE_MAX_SIZE",
		"PARAMPREP_CACHE_FILE_TTL", "PARAMPREP_CACHE_CONTENT_TTL",
		"PARAMPREP_CACHE_SWEEP_INTERVAL", "PARAMPREP_MAX_INLINE_SIZE",
		"PARAMPREP_MAX_DEPTH", "PARAMPREP_ERROR_LIMIT", "PARAMPREP_MAX_LIMIT",
		"PARAMPREP_DESCRIBE_FORMAT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearParamprepEnv(t)

	c := loadConfig()

	assert.True(t, c.CacheEnabled)
	assert.Equal(t, 10, c.CacheMaxSize)
	assert.Equal(t, 15*time.Minute, c.CacheFileTTL)
	assert.Equal(t, 15*time.Minute, c.CacheContentTTL)
	assert.Equal(t, 60*time.Second, c.CacheSweepInterval)
	assert.Equal(t, int64(1024*1024), c.MaxInlineSize)
	assert.Equal(t, 64, c.MaxDepth)
	assert.Equal(t, 100, c.ErrorLimit)
	assert.Equal(t, 1000, c.MaxLimit)
	assert.Equal(t, "text", c.DescribeFormat)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	clearParamprepEnv(t)
	t.Setenv("PARAMPREP_CACHE_ENABLED", "false")
	t.Setenv("PARAMPREP_CACHE_MAX_SIZE", "50")
	t.Setenv("PARAMPREP_CACHE_FILE_TTL", "30m")
	t.Setenv("PARAMPREP_CACHE_CONTENT_TTL", "10m")
	t.Setenv("PARAMPREP_CACHE_SWEEP_INTERVAL", "30s")
	t.Setenv("PARAMPREP_MAX_INLINE_SIZE", "2048")
	t.Setenv("PARAMPREP_MAX_DEPTH", "8")
	t.Setenv("PARAMPREP_ERROR_LIMIT", "20")
	t.Setenv("PARAMPREP_MAX_LIMIT", "500")
	t.Setenv("PARAMPREP_DESCRIBE_FORMAT", "oas2")

	c := loadConfig()

	assert.False(t, c.CacheEnabled)
	assert.Equal(t, 50, c.CacheMaxSize)
	assert.Equal(t, 30*time.Minute, c.CacheFileTTL)
	assert.Equal(t, 10*time.Minute, c.CacheContentTTL)
	assert.Equal(t, 30*time.Second, c.CacheSweepInterval)
	assert.Equal(t, int64(2048), c.MaxInlineSize)
	assert.Equal(t, 8, c.MaxDepth)
	assert.Equal(t, 20, c.ErrorLimit)
	assert.Equal(t, 500, c.MaxLimit)
	assert.Equal(t, "oas2", c.DescribeFormat)
}

func TestLoadConfig_InvalidValues_UseDefaults(t *testing.T) {
	clearParamprepEnv(t)
	t.Setenv("PARAMPREP_CACHE_MAX_SIZE", "banana")
	t.Setenv("PARAMPREP_CACHE_FILE_TTL", "not-a-duration")
	t.Setenv("PARAMPREP_CACHE_ENABLED", "maybe")
	t.Setenv("PARAMPREP_MAX_DEPTH", "-5")
	t.Setenv("PARAMPREP_MAX_LIMIT", "0")
	t.Setenv("PARAMPREP_DESCRIBE_FORMAT", "markdown")

	c := loadConfig()

	assert.True(t, c.CacheEnabled)
	assert.Equal(t, 10, c.CacheMaxSize)
	assert.Equal(t, 15*time.Minute, c.CacheFileTTL)
	assert.Equal(t, 64, c.MaxDepth)
	assert.Equal(t, 1000, c.MaxLimit)
	assert.Equal(t, "text", c.DescribeFormat)
}
