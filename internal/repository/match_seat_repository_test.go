package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookTxFlipsAllRequestedSeats(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE match_seats SET status = 'BOOKED'`).
		WithArgs(10, 11).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	tx, err := db.Begin()
	require.NoError(t, err)

	require.NoError(t, NewMatchSeatRepo(db).BookTx(context.Background(), tx, []uint64{10, 11}))
	require.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookTxRejectsSeatBookedInBetween(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// seat 11 was taken by a concurrent booking, so the status guard in the
	// UPDATE flips only one of the two rows
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE match_seats SET status = 'BOOKED'`).
		WithArgs(10, 11).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectRollback()

	tx, err := db.Begin()
	require.NoError(t, err)

	err = NewMatchSeatRepo(db).BookTx(context.Background(), tx, []uint64{10, 11})
	assert.ErrorIs(t, err, ErrSeatsUnavailable)
	require.NoError(t, tx.Rollback())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookTxNoSeatsIsNoOp(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	tx, err := db.Begin()
	require.NoError(t, err)

	require.NoError(t, NewMatchSeatRepo(db).BookTx(context.Background(), tx, nil))
	require.NoError(t, tx.Rollback())
	assert.NoError(t, mock.ExpectationsWereMet())
}
