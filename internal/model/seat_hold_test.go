package model

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestSeatHoldIsExpired(t *testing.T) {
	t.Parallel()

	expiresAt := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	hold := SeatHold{
		ID:            uuid.New(),
		Seats:         []Seat{{Row: 0, Column: 0}},
		CustomerEmail: "a@example.com",
		ExpiresAt:     expiresAt,
	}

	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{name: "before expiry", now: expiresAt.Add(-time.Nanosecond), want: false},
		{name: "at expiry", now: expiresAt, want: true},
		{name: "after expiry", now: expiresAt.Add(time.Second), want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := hold.IsExpired(tt.now); got != tt.want {
				t.Fatalf("IsExpired(%v) = %v, want %v", tt.now, got, tt.want)
			}
		})
	}
}

func TestSeatString(t *testing.T) {
	t.Parallel()

	if got := (Seat{Row: 3, Column: 14}).String(); got != "3:14" {
		t.Fatalf("expected 3:14, got %q", got)
	}
}

func TestRowLabel(t *testing.T) {
	t.Parallel()

	tests := map[int]string{-1: "", 0: "A", 25: "Z", 26: "AA", 27: "AB", 701: "ZZ", 702: "AAA"}
	for i, want := range tests {
		if got := RowLabel(i); got != want {
			t.Fatalf("RowLabel(%d) = %q, want %q", i, got, want)
		}
	}
	if got := (Seat{Row: 27, Column: 11}).Label(); got != "AB12" {
		t.Fatalf("expected AB12, got %q", got)
	}
}
