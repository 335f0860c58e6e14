package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cricket-ticket-booking/internal/config"
	"github.com/iliyamo/cricket-ticket-booking/internal/repository"
	"github.com/iliyamo/cricket-ticket-booking/internal/utils"
)

func sqlmockAuthHandler(t *testing.T) (*AuthHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	cfg := config.Config{JWTSecret: "test-secret", AccessTTLMin: 15, RefreshTTLDays: 7, BcryptCost: 4}
	return NewAuthHandler(cfg, repository.NewUserRepo(db), repository.NewTokenRepo(db)), mock
}

func authCtx(t *testing.T, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/refresh", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestRefreshRotatesTokenPair(t *testing.T) {
	h, mock := sqlmockAuthHandler(t)

	const raw = "old-refresh-token"
	hash := utils.HashRefreshRaw(raw)
	now := time.Now().UTC()
	future := now.Add(24 * time.Hour)

	mock.ExpectQuery(`SELECT user_id, expires_at, revoked_at FROM refresh_tokens`).
		WithArgs(hash).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "expires_at", "revoked_at"}).
			AddRow(5, future, nil))
	mock.ExpectExec(`UPDATE refresh_tokens SET revoked_at`).
		WithArgs(hash).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`FROM users WHERE id`).
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "phone", "password_hash", "role", "is_active", "created_at", "updated_at"}).
			AddRow(5, "Rohit", "rohit@example.com", "", "x", "CUSTOMER", true, now, now))
	mock.ExpectExec(`INSERT INTO refresh_tokens`).
		WithArgs(5, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	c, rec := authCtx(t, `{"refresh_token":"`+raw+`"}`)
	require.NoError(t, h.Refresh(c))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		User struct {
			ID    uint64 `json:"id"`
			Email string `json:"email"`
		} `json:"user"`
		Access  struct{ Token string } `json:"access"`
		Refresh struct{ Token string } `json:"refresh"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, uint64(5), resp.User.ID)
	assert.Equal(t, "rohit@example.com", resp.User.Email)
	assert.NotEmpty(t, resp.Access.Token)
	assert.NotEmpty(t, resp.Refresh.Token)
	assert.NotEqual(t, raw, resp.Refresh.Token)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRefreshFailsWhenRevocationFails(t *testing.T) {
	h, mock := sqlmockAuthHandler(t)

	const raw = "old-refresh-token"
	hash := utils.HashRefreshRaw(raw)
	future := time.Now().UTC().Add(24 * time.Hour)

	mock.ExpectQuery(`SELECT user_id, expires_at, revoked_at FROM refresh_tokens`).
		WithArgs(hash).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "expires_at", "revoked_at"}).
			AddRow(5, future, nil))
	// the old token must not stay alive next to a freshly issued pair
	mock.ExpectExec(`UPDATE refresh_tokens SET revoked_at`).
		WithArgs(hash).
		WillReturnError(errors.New("connection lost"))

	c, rec := authCtx(t, `{"refresh_token":"`+raw+`"}`)
	require.NoError(t, h.Refresh(c))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "rotate refresh failed")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRefreshRejectsRevokedToken(t *testing.T) {
	h, mock := sqlmockAuthHandler(t)

	const raw = "revoked-token"
	hash := utils.HashRefreshRaw(raw)
	now := time.Now().UTC()

	mock.ExpectQuery(`SELECT user_id, expires_at, revoked_at FROM refresh_tokens`).
		WithArgs(hash).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "expires_at", "revoked_at"}).
			AddRow(5, now.Add(24*time.Hour), now.Add(-time.Minute)))

	c, rec := authCtx(t, `{"refresh_token":"`+raw+`"}`)
	require.NoError(t, h.Refresh(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
