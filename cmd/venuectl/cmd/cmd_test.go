package cmd

import (
	"bytes"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/venue-ticket-service/internal/clock"
	"github.com/iliyamo/venue-ticket-service/internal/handler"
	"github.com/iliyamo/venue-ticket-service/internal/venue"
)

func newServer(t *testing.T) string {
	t.Helper()
	clk := clock.NewFixed(time.Date(2025, 3, 1, 18, 0, 0, 0, time.UTC))
	v, err := venue.New(2, 3, venue.WithClock(clk))
	if err != nil {
		t.Fatalf("venue.New: %v", err)
	}
	h := handler.NewVenueHandler(v, nil, zerolog.Nop())

	e := echo.New()
	e.GET("/v1/venue", h.GetVenue)
	e.GET("/v1/seats/available", h.Available)
	e.GET("/v1/seats", h.SeatMap)
	e.POST("/v1/holds", h.CreateHold)
	e.POST("/v1/holds/:id/reserve", h.ReserveHold)
	e.GET("/v1/reservations/:id", h.GetReservation)

	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)
	return srv.URL
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

var holdIDPattern = regexp.MustCompile(`venuectl reserve ([0-9a-f-]{36})`)

func TestHoldReserveFlow(t *testing.T) {
	url := newServer(t)

	out, err := run(t, "--server", url, "available")
	if err != nil || strings.TrimSpace(out) != "6" {
		t.Fatalf("available: %q, %v", out, err)
	}

	out, err = run(t, "--server", url, "hold", "-n", "4", "-e", "fan@example.com")
	if err != nil {
		t.Fatalf("hold: %v", err)
	}
	if !strings.Contains(out, "A1 A2 A3 B1") {
		t.Fatalf("expected row-major seat labels, got:\n%s", out)
	}
	m := holdIDPattern.FindStringSubmatch(out)
	if m == nil {
		t.Fatalf("no hold id in output:\n%s", out)
	}
	holdID := m[1]

	if _, err := run(t, "--server", url, "hold", "-n", "3", "-e", "x@example.com"); err == nil {
		t.Fatalf("expected hold of 3 with 2 free seats to fail")
	}

	out, err = run(t, "--server", url, "reserve", holdID, "-e", "fan@example.com")
	if err != nil || !strings.Contains(out, "confirmed: "+holdID) {
		t.Fatalf("reserve: %q, %v", out, err)
	}

	out, err = run(t, "--server", url, "reservation", holdID, "-e", "fan@example.com")
	if err != nil || !strings.Contains(out, "B1") {
		t.Fatalf("reservation: %q, %v", out, err)
	}

	out, err = run(t, "--server", url, "seats")
	if err != nil {
		t.Fatalf("seats: %v", err)
	}
	if !strings.Contains(out, "free 2  held 0  reserved 4") {
		t.Fatalf("unexpected seat map:\n%s", out)
	}
}

func TestHoldRejectsNonPositiveSeats(t *testing.T) {
	if _, err := run(t, "--server", "http://127.0.0.1:1", "hold", "-n", "0", "-e", "a@example.com"); err == nil {
		t.Fatalf("expected error for -n 0")
	}
}

func TestHashPassword(t *testing.T) {
	out, err := run(t, "hash-password", "--cost", "4", "correct horse")
	if err != nil {
		t.Fatalf("hash-password: %v", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(strings.TrimSpace(out)), []byte("correct horse")); err != nil {
		t.Fatalf("hash does not verify: %v", err)
	}
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	if err != nil || !strings.HasPrefix(out, "venuectl ") {
		t.Fatalf("version: %q, %v", out, err)
	}
}
