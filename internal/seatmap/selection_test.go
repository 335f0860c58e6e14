package seatmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() []Seat {
	return []Seat{
		{ID: 1, Label: "A01", Status: StatusAvailable},
		{ID: 2, Label: "A02", Status: StatusBooked},
		{ID: 3, Label: "A03", Status: StatusAvailable},
		{ID: 4, Label: "A04", Status: StatusAvailable},
	}
}

func TestToggleSelectsAndDeselects(t *testing.T) {
	sel := NewSelection(testCatalog(), nil)

	sel.Toggle(1)
	assert.Equal(t, []uint64{1}, sel.SelectedIDs())

	sel.Toggle(1)
	assert.Empty(t, sel.SelectedIDs())
}

func TestToggleBookedSeatIsNoOp(t *testing.T) {
	notified := 0
	sel := NewSelection(testCatalog(), func([]Seat) { notified++ })

	sel.Toggle(2)
	assert.Empty(t, sel.SelectedIDs())
	assert.Zero(t, notified)
}

func TestToggleUnknownSeatIsNoOp(t *testing.T) {
	notified := 0
	sel := NewSelection(testCatalog(), func([]Seat) { notified++ })

	sel.Toggle(99)
	assert.Empty(t, sel.SelectedIDs())
	assert.Zero(t, notified)
}

func TestSelectedKeepsCatalogOrder(t *testing.T) {
	sel := NewSelection(testCatalog(), nil)

	sel.Toggle(4)
	sel.Toggle(1)
	sel.Toggle(3)

	got := sel.Selected()
	require.Len(t, got, 3)
	assert.Equal(t, []uint64{1, 3, 4}, sel.SelectedIDs())
	assert.Equal(t, "A01", got[0].Label)
	assert.Equal(t, "A04", got[2].Label)
}

func TestObserverSeesEveryChange(t *testing.T) {
	var snapshots [][]uint64
	sel := NewSelection(testCatalog(), func(seats []Seat) {
		ids := make([]uint64, 0, len(seats))
		for _, s := range seats {
			ids = append(ids, s.ID)
		}
		snapshots = append(snapshots, ids)
	})

	sel.Toggle(1)
	sel.Toggle(3)
	sel.Toggle(1)

	require.Len(t, snapshots, 3)
	assert.Equal(t, []uint64{1}, snapshots[0])
	assert.Equal(t, []uint64{1, 3}, snapshots[1])
	assert.Equal(t, []uint64{3}, snapshots[2])
}

func TestClear(t *testing.T) {
	notified := 0
	sel := NewSelection(testCatalog(), func([]Seat) { notified++ })

	sel.Clear() // empty selection, no notification
	assert.Zero(t, notified)

	sel.Toggle(1)
	sel.Clear()
	assert.Empty(t, sel.SelectedIDs())
	assert.Equal(t, 2, notified)
}
