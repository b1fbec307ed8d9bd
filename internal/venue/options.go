package venue

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/iliyamo/venue-ticket-service/internal/clock"
	"github.com/iliyamo/venue-ticket-service/internal/model"
)

// DefaultHoldDuration is how long a hold lasts when no WithHoldDuration
// option is supplied.
const DefaultHoldDuration = 60 * time.Second

// Option configures a Venue at construction time.
type Option func(*Venue)

// WithHoldDuration overrides the default lifetime of new holds.
func WithHoldDuration(d time.Duration) Option {
	return func(v *Venue) {
		if d > 0 {
			v.holdDuration = d
		}
	}
}

// WithClock replaces the system clock, mostly for tests.
func WithClock(c clock.Clock) Option {
	return func(v *Venue) {
		if c != nil {
			v.clock = c
		}
	}
}

// WithLogger sets the logger used for hold and reservation debug events.
func WithLogger(logger zerolog.Logger) Option {
	return func(v *Venue) {
		v.logger = logger
	}
}

// WithSweepHook registers fn to be called with the holds released by each
// sweep that released at least one hold.  fn runs while the venue lock is
// held and must not call back into the venue.
func WithSweepHook(fn func(expired []model.SeatHold)) Option {
	return func(v *Venue) {
		v.onSweep = fn
	}
}
