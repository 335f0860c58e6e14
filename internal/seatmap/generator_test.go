package seatmap

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLabel(t *testing.T) {
	cases := []struct {
		row, num int
		want     string
	}{
		{0, 1, "A01"},
		{0, 20, "A20"},
		{1, 5, "B05"},
		{9, 20, "J20"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Label(tc.row, tc.num))
	}
}

func TestGenerateGridShape(t *testing.T) {
	seats := Generate(42, 7)
	require.Len(t, seats, TotalSeats)

	labels := make(map[string]bool, len(seats))
	for i, s := range seats {
		assert.Equal(t, uint64(i+1), s.ID)
		assert.Equal(t, uint64(42), s.MatchID)
		assert.Equal(t, uint64(7), s.StadiumID)
		assert.False(t, labels[s.Label], "duplicate label %s", s.Label)
		labels[s.Label] = true
		if s.Status != StatusAvailable && s.Status != StatusBooked {
			t.Fatalf("unexpected status %q for seat %s", s.Status, s.Label)
		}
	}

	// Row-major order: first seat A01, last seat J20, every row complete.
	assert.Equal(t, "A01", seats[0].Label)
	assert.Equal(t, "J20", seats[len(seats)-1].Label)
	for row := 0; row < Rows; row++ {
		for num := 1; num <= SeatsPerRow; num++ {
			want := fmt.Sprintf("%c%02d", 'A'+row, num)
			assert.Equal(t, want, seats[row*SeatsPerRow+num-1].Label)
		}
	}
}

func TestGenerateMixesStatuses(t *testing.T) {
	// With 1000 seats at a 0.3 booked share, an all-available or all-booked
	// outcome would indicate a broken roll.
	booked := 0
	for i := 0; i < 5; i++ {
		for _, s := range Generate(1, 1) {
			if s.Status == StatusBooked {
				booked++
			}
		}
	}
	assert.Greater(t, booked, 0)
	assert.Less(t, booked, 5*TotalSeats)
}
