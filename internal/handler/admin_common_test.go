package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ctxWithUserID(v interface{}) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	if v != nil {
		c.Set("user_id", v)
	}
	return c
}

func TestGetUserID(t *testing.T) {
	cases := []struct {
		name  string
		value interface{}
		want  uint64
		ok    bool
	}{
		{"uint64", uint64(7), 7, true},
		{"int", 8, 8, true},
		{"int64", int64(9), 9, true},
		{"float64 from jwt claims", float64(10), 10, true},
		{"numeric string", "11", 11, true},
		{"garbage string", "abc", 0, false},
		{"missing", nil, 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := getUserID(ctxWithUserID(tc.value))
			if tc.ok {
				require.NoError(t, err)
				assert.Equal(t, tc.want, got)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestIDParam(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues("123")

	id, err := idParam(c)
	require.NoError(t, err)
	assert.Equal(t, uint64(123), id)

	c.SetParamValues("not-a-number")
	_, err = idParam(c)
	assert.Error(t, err)
}

func TestParseMatchDate(t *testing.T) {
	got, ok := parseMatchDate("2026-04-12T19:30:00Z")
	require.True(t, ok)
	assert.Equal(t, 2026, got.Year())

	got, ok = parseMatchDate("2026-04-12 19:30")
	require.True(t, ok)
	assert.Equal(t, 19, got.Hour())

	_, ok = parseMatchDate("12/04/2026")
	assert.False(t, ok)
}
