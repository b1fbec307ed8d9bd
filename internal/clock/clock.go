package clock

import "time"

// Clock supplies the current instant to the venue and handlers.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

// NewSystem returns a clock backed by time.Now.
func NewSystem() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}

type fixedClock struct {
	now time.Time
}

// NewFixed returns a clock that always returns the same instant (useful for tests).
func NewFixed(t time.Time) Clock {
	return fixedClock{now: t.UTC()}
}

func (f fixedClock) Now() time.Time {
	return f.now
}

type offsetClock struct {
	base   Clock
	offset time.Duration
}

// NewOffset returns a clock that reports base.Now() shifted by d, e.g. to
// evaluate availability as of now+holdDuration.
func NewOffset(base Clock, d time.Duration) Clock {
	return offsetClock{base: base, offset: d}
}

func (o offsetClock) Now() time.Time {
	return o.base.Now().Add(o.offset)
}
