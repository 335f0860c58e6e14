package handler

import (
	"database/sql/driver"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cricket-ticket-booking/internal/repository"
)

// testBookingHandler has no live database; only code paths that return
// before touching storage are exercised here.
func testBookingHandler() *BookingHandler {
	return NewBookingHandler(
		repository.NewMatchRepo(nil),
		repository.NewMatchSeatRepo(nil),
		repository.NewTicketRepo(nil),
		repository.NewPaymentRepo(nil),
	)
}

func bookingCtx(t *testing.T, method, target, body string, ticketOrMatchID string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", float64(1))
	c.SetParamNames("id")
	c.SetParamValues(ticketOrMatchID)
	return c, rec
}

func TestBookRejectsEmptySeatSelection(t *testing.T) {
	h := testBookingHandler()

	for _, body := range []string{`{}`, `{"seat_ids":[]}`, `{"seat_ids":[0,0]}`} {
		c, rec := bookingCtx(t, http.MethodPost, "/v1/matches/1/book", body, "1")
		require.NoError(t, h.Book(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body %s", body)
	}
}

func TestBookRejectsBadMatchID(t *testing.T) {
	h := testBookingHandler()
	c, rec := bookingCtx(t, http.MethodPost, "/v1/matches/x/book", `{"seat_ids":[1]}`, "x")
	require.NoError(t, h.Book(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBookRequiresIdentity(t *testing.T) {
	h := testBookingHandler()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/matches/1/book", strings.NewReader(`{"seat_ids":[1]}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")

	require.NoError(t, h.Book(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestPayValidatesCardFields(t *testing.T) {
	h := testBookingHandler()

	cases := []struct {
		name string
		body string
		want []string // field keys expected in the error map
	}{
		{
			"all invalid",
			`{"card_number":"123","card_name":"","expiry":"13-25","cvv":"12"}`,
			[]string{"card_number", "card_name", "expiry", "cvv"},
		},
		{
			"short card number",
			`{"card_number":"4111 1111 1111 111","card_name":"R Sharma","expiry":"12/25","cvv":"123"}`,
			[]string{"card_number"},
		},
		{
			"bad expiry",
			`{"card_number":"4111111111111111","card_name":"R Sharma","expiry":"12/2025","cvv":"123"}`,
			[]string{"expiry"},
		},
		{
			"bad cvv",
			`{"card_number":"4111111111111111","card_name":"R Sharma","expiry":"12/25","cvv":"1234"}`,
			[]string{"cvv"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := bookingCtx(t, http.MethodPost, "/v1/tickets/1/pay", tc.body, "1")
			require.NoError(t, h.Pay(c))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			for _, field := range tc.want {
				assert.Contains(t, rec.Body.String(), field)
			}
		})
	}
}

// expectOpenMatch queues the match lookup every booking starts with: match 1
// is SCHEDULED, in the future and priced at 1500.
func expectOpenMatch(mock sqlmock.Sqlmock) {
	starts := time.Now().UTC().Add(48 * time.Hour)
	mock.ExpectQuery(`SELECT id, team1_id, team2_id, stadium_id, starts_at, ticket_price, status, created_at, updated_at`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "team1_id", "team2_id", "stadium_id", "starts_at", "ticket_price", "status", "created_at", "updated_at"}).
			AddRow(1, 1, 2, 1, starts, 1500, "SCHEDULED", starts, starts))
}

func sqlmockBookingHandler(t *testing.T) (*BookingHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	h := NewBookingHandler(
		repository.NewMatchRepo(db),
		repository.NewMatchSeatRepo(db),
		repository.NewTicketRepo(db),
		repository.NewPaymentRepo(db),
	)
	return h, mock
}

func TestBookCreatesOneTicketPerSeatAndSumsTotal(t *testing.T) {
	cases := []struct {
		name      string
		body      string
		seatIDs   []uint64
		labels    []string
		wantTotal uint32
	}{
		{"single seat", `{"seat_ids":[10]}`, []uint64{10}, []string{"A01"}, 1500},
		{"two seats double the total", `{"seat_ids":[10,11]}`, []uint64{10, 11}, []string{"A01", "A02"}, 3000},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h, mock := sqlmockBookingHandler(t)
			expectOpenMatch(mock)
			mock.ExpectBegin()

			lockRows := sqlmock.NewRows([]string{"id", "match_id", "stadium_id", "seat_label", "status"})
			lockArgs := []driver.Value{1}
			for i, id := range tc.seatIDs {
				lockRows.AddRow(id, 1, 1, tc.labels[i], "AVAILABLE")
				lockArgs = append(lockArgs, id)
			}
			mock.ExpectQuery(`SELECT id, match_id, stadium_id, seat_label, status FROM match_seats`).
				WithArgs(lockArgs...).
				WillReturnRows(lockRows)
			mock.ExpectExec(`UPDATE match_seats SET status = 'BOOKED'`).
				WithArgs(lockArgs[1:]...).
				WillReturnResult(sqlmock.NewResult(0, int64(len(tc.seatIDs))))
			for i, id := range tc.seatIDs {
				ticketID := int64(101 + i)
				mock.ExpectExec(`INSERT INTO tickets`).
					WithArgs(1, 1, id).
					WillReturnResult(sqlmock.NewResult(ticketID, 1))
				mock.ExpectExec(`INSERT INTO payments`).
					WithArgs(1, ticketID, 1500).
					WillReturnResult(sqlmock.NewResult(int64(201+i), 1))
			}
			mock.ExpectCommit()

			c, rec := bookingCtx(t, http.MethodPost, "/v1/matches/1/book", tc.body, "1")
			require.NoError(t, h.Book(c))
			require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

			var resp struct {
				TotalAmount uint32 `json:"total_amount"`
				Tickets     []struct {
					TicketID  uint64 `json:"ticket_id"`
					SeatID    uint64 `json:"seat_id"`
					SeatLabel string `json:"seat_label"`
					Amount    uint32 `json:"amount"`
					Status    string `json:"status"`
				} `json:"tickets"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tc.wantTotal, resp.TotalAmount)
			require.Len(t, resp.Tickets, len(tc.seatIDs))
			for i, tk := range resp.Tickets {
				assert.Equal(t, tc.seatIDs[i], tk.SeatID)
				assert.Equal(t, tc.labels[i], tk.SeatLabel)
				assert.Equal(t, uint32(1500), tk.Amount)
				assert.Equal(t, "CONFIRMED", tk.Status)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestBookConflictsWhenSeatAlreadyBooked(t *testing.T) {
	h, mock := sqlmockBookingHandler(t)
	expectOpenMatch(mock)
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id, match_id, stadium_id, seat_label, status FROM match_seats`).
		WithArgs(1, 10).
		WillReturnRows(sqlmock.NewRows([]string{"id", "match_id", "stadium_id", "seat_label", "status"}).
			AddRow(10, 1, 1, "A01", "BOOKED"))
	mock.ExpectRollback()

	c, rec := bookingCtx(t, http.MethodPost, "/v1/matches/1/book", `{"seat_ids":[10]}`, "1")
	require.NoError(t, h.Book(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "A01")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDedupeIDs(t *testing.T) {
	assert.Equal(t, []uint64{3, 1, 2}, dedupeIDs([]uint64{3, 1, 3, 2, 1}))
	assert.Empty(t, dedupeIDs([]uint64{0, 0}))
	assert.Empty(t, dedupeIDs(nil))
}
