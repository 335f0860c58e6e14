package seatmap

// Selection tracks which seats of a catalog a user has picked. Booked seats
// can never enter the set; everything else toggles in and out. After every
// change the observer receives the selected seats materialized in catalog
// order. There is no cap on how many seats may be selected.
type Selection struct {
	catalog  []Seat
	byID     map[uint64]int
	selected map[uint64]struct{}
	onChange func([]Seat)
}

// NewSelection builds an empty selection over the given catalog. onChange
// may be nil when the caller only polls Selected().
func NewSelection(catalog []Seat, onChange func([]Seat)) *Selection {
	byID := make(map[uint64]int, len(catalog))
	for i, s := range catalog {
		byID[s.ID] = i
	}
	return &Selection{
		catalog:  catalog,
		byID:     byID,
		selected: make(map[uint64]struct{}),
		onChange: onChange,
	}
}

// Toggle flips membership of the given seat in the selection set. Seats
// that are booked or unknown to the catalog are ignored silently. Any
// actual change notifies the observer.
func (s *Selection) Toggle(seatID uint64) {
	idx, ok := s.byID[seatID]
	if !ok || s.catalog[idx].Status == StatusBooked {
		return
	}
	if _, picked := s.selected[seatID]; picked {
		delete(s.selected, seatID)
	} else {
		s.selected[seatID] = struct{}{}
	}
	if s.onChange != nil {
		s.onChange(s.Selected())
	}
}

// Selected returns the currently selected seats in catalog order.
func (s *Selection) Selected() []Seat {
	out := make([]Seat, 0, len(s.selected))
	for _, seat := range s.catalog {
		if _, ok := s.selected[seat.ID]; ok {
			out = append(out, seat)
		}
	}
	return out
}

// SelectedIDs returns the IDs of the selected seats in catalog order.
func (s *Selection) SelectedIDs() []uint64 {
	seats := s.Selected()
	ids := make([]uint64, 0, len(seats))
	for _, seat := range seats {
		ids = append(ids, seat.ID)
	}
	return ids
}

// Clear empties the selection and notifies the observer when it was not
// already empty.
func (s *Selection) Clear() {
	if len(s.selected) == 0 {
		return
	}
	s.selected = make(map[uint64]struct{})
	if s.onChange != nil {
		s.onChange(nil)
	}
}
