// Package venue implements the seat allocation engine for a single venue.
// It tracks which seats are free, held for a customer or reserved, hands out
// best available seats in row-major order and lazily releases holds whose
// expiry instant has passed.  Every operation runs under one mutex, so the
// sweep, scan and mutation steps of a hold are atomic as a whole.
package venue

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/iliyamo/venue-ticket-service/internal/clock"
	"github.com/iliyamo/venue-ticket-service/internal/model"
)

// Venue owns the occupancy grid, the active holds and the confirmed
// reservations.  The zero value is not usable; construct one with New.
type Venue struct {
	mu sync.Mutex

	// seats[row][column] is true while the seat is held or reserved.
	seats        [][]bool
	holds        map[uuid.UUID]model.SeatHold
	reservations map[string]model.Reservation
	total        int
	occupied     int

	holdDuration time.Duration
	clock        clock.Clock
	logger       zerolog.Logger
	onSweep      func([]model.SeatHold)
	newID        func() uuid.UUID
}

// New builds a venue with rows*columns free seats.  It returns
// ErrInvalidArgument when either dimension is not positive.
func New(rows, columns int, opts ...Option) (*Venue, error) {
	if rows <= 0 {
		return nil, fmt.Errorf("%w: rows must be greater than 0, got %d", ErrInvalidArgument, rows)
	}
	if columns <= 0 {
		return nil, fmt.Errorf("%w: columns must be greater than 0, got %d", ErrInvalidArgument, columns)
	}

	seats := make([][]bool, rows)
	for i := range seats {
		seats[i] = make([]bool, columns)
	}
	v := &Venue{
		seats:        seats,
		holds:        make(map[uuid.UUID]model.SeatHold),
		reservations: make(map[string]model.Reservation),
		total:        rows * columns,
		holdDuration: DefaultHoldDuration,
		clock:        clock.NewSystem(),
		logger:       zerolog.Nop(),
		newID:        uuid.New,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v, nil
}

// Rows returns the number of seat rows.
func (v *Venue) Rows() int { return len(v.seats) }

// Columns returns the number of seats per row.
func (v *Venue) Columns() int { return len(v.seats[0]) }

// TotalSeats returns rows*columns.
func (v *Venue) TotalSeats() int { return v.total }

// HoldDuration returns how long new holds stay valid.
func (v *Venue) HoldDuration() time.Duration { return v.holdDuration }

// NumSeatsAvailable returns the number of seats that are neither held nor
// reserved as of now.  Expired holds are released first.
func (v *Venue) NumSeatsAvailable() int {
	return v.NumSeatsAvailableAt(v.clock.Now())
}

// NumSeatsAvailableAt is NumSeatsAvailable evaluated at asOf.  Holds that
// are expired at asOf are released for good, even if asOf lies in the
// future.
func (v *Venue) NumSeatsAvailableAt(asOf time.Time) int {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.sweep(asOf)
	return v.total - v.occupied
}

// FindAndHoldSeats holds the first numSeats free seats in row-major order
// for customerEmail.  It returns a nil hold and a nil error when fewer than
// numSeats seats are free; no partial holds are ever created.
func (v *Venue) FindAndHoldSeats(numSeats int, customerEmail string) (*model.SeatHold, error) {
	if numSeats <= 0 {
		return nil, fmt.Errorf("%w: number of seats to hold must be greater than 0, got %d", ErrInvalidArgument, numSeats)
	}
	if customerEmail == "" {
		return nil, fmt.Errorf("%w: customer email cannot be empty", ErrInvalidArgument)
	}

	now := v.clock.Now()

	v.mu.Lock()
	defer v.mu.Unlock()

	v.sweep(now)
	if numSeats > v.total-v.occupied {
		v.logger.Debug().
			Int("requested", numSeats).
			Int("available", v.total-v.occupied).
			Msg("not enough seats to hold")
		return nil, nil
	}

	held := v.bestAvailable(numSeats)
	for _, s := range held {
		v.seats[s.Row][s.Column] = true
	}
	v.occupied += len(held)

	hold := model.SeatHold{
		ID:            v.nextHoldID(),
		Seats:         held,
		CustomerEmail: customerEmail,
		ExpiresAt:     now.Add(v.holdDuration),
	}
	v.holds[hold.ID] = hold

	v.logger.Debug().
		Str("hold_id", hold.ID.String()).
		Int("seats", len(held)).
		Time("expires_at", hold.ExpiresAt).
		Msg("seats held")

	out := hold
	out.Seats = cloneSeats(held)
	return &out, nil
}

// ReserveSeats promotes the hold identified by holdID into a reservation
// and returns its confirmation id.  It returns an empty string and a nil
// error when the hold is unknown, already promoted, expired, or held for a
// different email.  A hold can be promoted only once.
func (v *Venue) ReserveSeats(holdID uuid.UUID, customerEmail string) (string, error) {
	if holdID == uuid.Nil {
		return "", fmt.Errorf("%w: seat hold id cannot be empty", ErrInvalidArgument)
	}
	if customerEmail == "" {
		return "", fmt.Errorf("%w: customer email cannot be empty", ErrInvalidArgument)
	}

	now := v.clock.Now()

	v.mu.Lock()
	defer v.mu.Unlock()

	hold, ok := v.holds[holdID]
	if !ok {
		return "", nil
	}
	if hold.CustomerEmail != customerEmail || hold.IsExpired(now) {
		return "", nil
	}

	delete(v.holds, holdID)
	res := model.Reservation{
		ConfirmationID: holdID.String(),
		Seats:          hold.Seats,
		CustomerEmail:  hold.CustomerEmail,
		ReservedAt:     now,
	}
	v.reservations[res.ConfirmationID] = res

	v.logger.Debug().
		Str("confirmation_id", res.ConfirmationID).
		Int("seats", len(res.Seats)).
		Msg("hold reserved")

	return res.ConfirmationID, nil
}

// Reservation looks up a confirmed reservation by its confirmation id.
func (v *Venue) Reservation(confirmationID string) (model.Reservation, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	res, ok := v.reservations[confirmationID]
	if !ok {
		return model.Reservation{}, false
	}
	res.Seats = cloneSeats(res.Seats)
	return res, true
}

// sweep releases every hold that is expired at now.  Callers must hold v.mu.
func (v *Venue) sweep(now time.Time) {
	var expired []model.SeatHold
	for id, hold := range v.holds {
		if !hold.IsExpired(now) {
			continue
		}
		for _, s := range hold.Seats {
			v.seats[s.Row][s.Column] = false
		}
		v.occupied -= len(hold.Seats)
		delete(v.holds, id)
		expired = append(expired, hold)

		v.logger.Debug().
			Str("hold_id", id.String()).
			Int("seats", len(hold.Seats)).
			Msg("hold expired")
	}
	if len(expired) > 0 && v.onSweep != nil {
		v.onSweep(expired)
	}
}

// bestAvailable collects the first n free seats front to back, left to
// right.  Callers must hold v.mu and have checked that n seats are free.
func (v *Venue) bestAvailable(n int) []model.Seat {
	found := make([]model.Seat, 0, n)
	for r, row := range v.seats {
		for c, taken := range row {
			if taken {
				continue
			}
			found = append(found, model.Seat{Row: r, Column: c})
			if len(found) == n {
				return found
			}
		}
	}
	return found
}

// nextHoldID draws random ids until one is not used by a live hold or a
// reservation.  Callers must hold v.mu.
func (v *Venue) nextHoldID() uuid.UUID {
	for {
		id := v.newID()
		if id == uuid.Nil {
			continue
		}
		if _, ok := v.holds[id]; ok {
			continue
		}
		if _, ok := v.reservations[id.String()]; ok {
			continue
		}
		return id
	}
}

func cloneSeats(seats []model.Seat) []model.Seat {
	out := make([]model.Seat, len(seats))
	copy(out, seats)
	return out
}
