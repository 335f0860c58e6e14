package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadRateLimitConfigDefaults(t *testing.T) {
	cfg := LoadRateLimitConfig()
	assert.True(t, cfg.Enabled)
	assert.Equal(t, 60, cfg.Capacity)
	assert.Equal(t, 1, cfg.RefillTokens)
	assert.Equal(t, time.Second, cfg.RefillInterval)
	assert.Equal(t, "rl", cfg.Prefix)
}

func TestLoadRateLimitConfigNormalizesBadValues(t *testing.T) {
	t.Setenv("RATE_LIMIT_CAPACITY", "0")
	t.Setenv("RATE_LIMIT_REFILL_TOKENS", "-5")
	t.Setenv("RATE_LIMIT_REFILL_INTERVAL", "2s")
	t.Setenv("RATE_LIMIT_TTL", "1s")

	cfg := LoadRateLimitConfig()
	assert.Equal(t, 1, cfg.Capacity)
	assert.Equal(t, 1, cfg.RefillTokens)
	assert.Equal(t, 2*time.Second, cfg.RefillInterval)
	// TTL is raised so bucket state survives several refill rounds
	assert.Equal(t, 10*time.Second, cfg.TTL)
}

func TestLoadRateLimitConfigBurstOverride(t *testing.T) {
	t.Setenv("RATE_LIMIT_BURST", "120")
	t.Setenv("RATE_LIMIT_REFILL_EVERY", "500ms")

	cfg := LoadRateLimitConfig()
	assert.Equal(t, 120, cfg.Capacity)
	assert.Equal(t, 1, cfg.RefillTokens)
	assert.Equal(t, 500*time.Millisecond, cfg.RefillInterval)
}

func TestLoadCacheConfigDefaults(t *testing.T) {
	cfg := LoadCacheConfig()
	assert.True(t, cfg.Enabled)
	assert.True(t, cfg.Methods["GET"])
	assert.False(t, cfg.Methods["POST"])
	assert.Equal(t, 30*time.Second, cfg.TTL)
	assert.Equal(t, "route_query", cfg.KeyStrategy)
	assert.Equal(t, 1048576, cfg.MaxBodyBytes)
}

func TestLoadCacheConfigMethodsParsing(t *testing.T) {
	t.Setenv("CACHE_METHODS", "get, head ,POST")
	cfg := LoadCacheConfig()
	assert.True(t, cfg.Methods["GET"])
	assert.True(t, cfg.Methods["HEAD"])
	assert.True(t, cfg.Methods["POST"])
}

func TestEnvBool(t *testing.T) {
	t.Setenv("FLAG_X", "yes")
	assert.True(t, envBool("FLAG_X", false))
	t.Setenv("FLAG_X", "off")
	assert.False(t, envBool("FLAG_X", true))
	assert.True(t, envBool("FLAG_UNSET_Y", true))
}
