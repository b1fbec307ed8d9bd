package venue

// SeatState describes one cell of a seat map.
type SeatState int

const (
	SeatFree SeatState = iota
	SeatHeld
	SeatReserved
)

// String returns the upper-case label used in API responses.
func (s SeatState) String() string {
	switch s {
	case SeatHeld:
		return "HELD"
	case SeatReserved:
		return "RESERVED"
	default:
		return "FREE"
	}
}

// Stats is a point-in-time summary of the venue.
type Stats struct {
	TotalSeats    int `json:"total_seats"`
	Available     int `json:"available"`
	ActiveHolds   int `json:"active_holds"`
	Reservations  int `json:"reservations"`
	HeldSeats     int `json:"held_seats"`
	ReservedSeats int `json:"reserved_seats"`
}

// SeatMap returns a rows x columns snapshot of seat states as of now.
// Expired holds are released before the snapshot is taken.
func (v *Venue) SeatMap() [][]SeatState {
	now := v.clock.Now()

	v.mu.Lock()
	defer v.mu.Unlock()

	v.sweep(now)
	out := make([][]SeatState, len(v.seats))
	for r := range v.seats {
		out[r] = make([]SeatState, len(v.seats[r]))
	}
	for _, hold := range v.holds {
		for _, s := range hold.Seats {
			out[s.Row][s.Column] = SeatHeld
		}
	}
	for _, res := range v.reservations {
		for _, s := range res.Seats {
			out[s.Row][s.Column] = SeatReserved
		}
	}
	return out
}

// Stats returns counters for the venue as of now, after a sweep.
func (v *Venue) Stats() Stats {
	now := v.clock.Now()

	v.mu.Lock()
	defer v.mu.Unlock()

	v.sweep(now)
	st := Stats{
		TotalSeats:   v.total,
		Available:    v.total - v.occupied,
		ActiveHolds:  len(v.holds),
		Reservations: len(v.reservations),
	}
	for _, hold := range v.holds {
		st.HeldSeats += len(hold.Seats)
	}
	for _, res := range v.reservations {
		st.ReservedSeats += len(res.Seats)
	}
	return st
}
