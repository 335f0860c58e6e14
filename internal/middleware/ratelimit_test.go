package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/iliyamo/cricket-ticket-booking/internal/config"
)

func limiterCtx(userID interface{}) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/matches", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath("/v1/matches")
	if userID != nil {
		c.Set("user_id", userID)
	}
	return c
}

func TestCurrentUserIDNormalizesClaimTypes(t *testing.T) {
	cases := []struct {
		name  string
		value interface{}
		want  string
	}{
		{"float64 from jwt claims", float64(42), "42"},
		{"uint64", uint64(7), "7"},
		{"int64", int64(8), "8"},
		{"int", 9, "9"},
		{"string", "10", "10"},
		{"empty string", "", "anon"},
		{"missing", nil, "anon"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, currentUserID(limiterCtx(tc.value)))
		})
	}
}

func TestBuildRateKeyStrategies(t *testing.T) {
	c := limiterCtx(float64(42))
	ip := c.RealIP()

	cases := []struct {
		strategy string
		want     string
	}{
		{"ip", "rl:ip:" + ip},
		{"user", "rl:user:42"},
		{"route", "rl:route:GET /v1/matches"},
		{"ip_user", "rl:ip:" + ip + ":user:42"},
		{"", "rl:ip:" + ip + ":user:42:route:GET /v1/matches"},
	}
	for _, tc := range cases {
		cfg := config.RateLimitConfig{Prefix: "rl", KeyStrategy: tc.strategy}
		assert.Equal(t, tc.want, buildRateKey(cfg, c), "strategy %q", tc.strategy)
	}
}

func TestBuildRateKeyAnonymousUser(t *testing.T) {
	cfg := config.RateLimitConfig{Prefix: "rl", KeyStrategy: "user"}
	assert.Equal(t, "rl:user:anon", buildRateKey(cfg, limiterCtx(nil)))
}
