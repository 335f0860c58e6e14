// Package seatmap generates and tracks the seat grid used by the booking
// flow. Stadium stands are modelled as a fixed grid of 10 rows ('A'-'J')
// with 20 seats per row; seats carry labels like "A01" or "J20".
//
// The generator is a fixture utility: live availability comes from the
// match_seats table, and Generate is used to seed that table with demo
// data where a share of seats is already taken.
package seatmap

import (
	"fmt"
	"math/rand/v2"
)

const (
	// Rows is the number of labeled rows in a stand.
	Rows = 10
	// SeatsPerRow is the number of seats in each row.
	SeatsPerRow = 20
	// TotalSeats is the size of a full seat grid.
	TotalSeats = Rows * SeatsPerRow

	// bookedShare is the probability that a generated seat starts out booked.
	bookedShare = 0.3
)

// Seat statuses shared with the match_seats table.
const (
	StatusAvailable = "AVAILABLE"
	StatusBooked    = "BOOKED"
)

// Seat is one position in a generated seat grid.
type Seat struct {
	ID        uint64 `json:"seat_id"`
	MatchID   uint64 `json:"match_id"`
	StadiumID uint64 `json:"stadium_id"`
	Label     string `json:"seat_label"`
	Status    string `json:"status"`
}

// Label builds the human-readable seat label for a zero-based row index and
// a one-based seat number, e.g. (0, 1) -> "A01".
func Label(row, seatNum int) string {
	return fmt.Sprintf("%c%02d", 'A'+row, seatNum)
}

// Generate produces the full seat grid for a match/stadium pair: exactly
// TotalSeats records in row-major order with seat IDs 1..TotalSeats. Each
// seat is independently marked booked with probability bookedShare. The
// identifiers are embedded as given without validation, and every call
// re-rolls the booked set.
func Generate(matchID, stadiumID uint64) []Seat {
	seats := make([]Seat, 0, TotalSeats)
	for row := 0; row < Rows; row++ {
		for num := 1; num <= SeatsPerRow; num++ {
			status := StatusAvailable
			if rand.Float64() < bookedShare {
				status = StatusBooked
			}
			seats = append(seats, Seat{
				ID:        uint64(row*SeatsPerRow + num),
				MatchID:   matchID,
				StadiumID: stadiumID,
				Label:     Label(row, num),
				Status:    status,
			})
		}
	}
	return seats
}
