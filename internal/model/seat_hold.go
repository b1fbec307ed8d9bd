package model

import (
	"time"

	"github.com/google/uuid"
)

// SeatHold represents a temporary claim on a set of seats for a customer.
// Holds prevent concurrent customers from grabbing the same seats while a
// purchase is in progress.  A hold stops counting as soon as the clock
// reaches ExpiresAt; the venue releases its seats the next time it sweeps.
//
// Fields:
//  ID            – random identifier, never reused for the process lifetime.
//  Seats         – the held seats in allocation order (never empty).
//  CustomerEmail – email of the customer the seats are held for.
//  ExpiresAt     – instant at which the hold stops being valid.
type SeatHold struct {
	ID            uuid.UUID `json:"id"`
	Seats         []Seat    `json:"seats"`
	CustomerEmail string    `json:"customer_email"`
	ExpiresAt     time.Time `json:"expires_at"`
}

// IsExpired reports whether the hold is no longer valid at now.  The expiry
// instant itself already counts as expired.
func (h SeatHold) IsExpired(now time.Time) bool {
	return !h.ExpiresAt.After(now)
}
