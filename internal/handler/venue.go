package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/iliyamo/venue-ticket-service/internal/model"
	"github.com/iliyamo/venue-ticket-service/internal/observability"
	"github.com/iliyamo/venue-ticket-service/internal/queue"
	"github.com/iliyamo/venue-ticket-service/internal/venue"
)

// EventPublisher is the part of queue.Publisher the venue handler needs.
type EventPublisher interface {
	PublishReservationConfirmed(ctx context.Context, ev queue.ReservationConfirmedEvent) error
}

// VenueHandler exposes the seat engine over HTTP.  Publisher may be nil, in
// which case reservations are not announced on the queue.
type VenueHandler struct {
	Venue     *venue.Venue
	Publisher EventPublisher
	Logger    zerolog.Logger
}

// NewVenueHandler wires a handler around v.
func NewVenueHandler(v *venue.Venue, pub EventPublisher, logger zerolog.Logger) *VenueHandler {
	if v == nil {
		panic("nil venue passed to NewVenueHandler")
	}
	return &VenueHandler{Venue: v, Publisher: pub, Logger: logger}
}

// ----- DTOs -----

type venueResp struct {
	Rows                int     `json:"rows"`
	Columns             int     `json:"columns"`
	TotalSeats          int     `json:"total_seats"`
	HoldDurationSeconds float64 `json:"hold_duration_seconds"`
}

type availableResp struct {
	Available int `json:"available"`
}

type seatMapResp struct {
	Rows [][]string `json:"rows"`
}

type holdReq struct {
	NumSeats      int    `json:"num_seats"`
	CustomerEmail string `json:"customer_email"`
}

type holdResp struct {
	ID            string       `json:"id"`
	CustomerEmail string       `json:"customer_email"`
	ExpiresAt     time.Time    `json:"expires_at"`
	Seats         []model.Seat `json:"seats"`
}

type reserveReq struct {
	CustomerEmail string `json:"customer_email"`
}

type reserveResp struct {
	ConfirmationID string `json:"confirmation_id"`
}

type reservationResp struct {
	ConfirmationID string       `json:"confirmation_id"`
	CustomerEmail  string       `json:"customer_email"`
	ReservedAt     time.Time    `json:"reserved_at"`
	Seats          []model.Seat `json:"seats"`
}

// GetVenue handles GET /v1/venue.
func (h *VenueHandler) GetVenue(c echo.Context) error {
	return c.JSON(http.StatusOK, venueResp{
		Rows:                h.Venue.Rows(),
		Columns:             h.Venue.Columns(),
		TotalSeats:          h.Venue.TotalSeats(),
		HoldDurationSeconds: h.Venue.HoldDuration().Seconds(),
	})
}

// Available handles GET /v1/seats/available.
func (h *VenueHandler) Available(c echo.Context) error {
	return c.JSON(http.StatusOK, availableResp{Available: h.Venue.NumSeatsAvailable()})
}

// SeatMap handles GET /v1/seats and returns FREE, HELD or RESERVED per
// seat, row by row.
func (h *VenueHandler) SeatMap(c echo.Context) error {
	grid := h.Venue.SeatMap()
	rows := make([][]string, len(grid))
	for r, row := range grid {
		rows[r] = make([]string, len(row))
		for col, st := range row {
			rows[r][col] = st.String()
		}
	}
	return c.JSON(http.StatusOK, seatMapResp{Rows: rows})
}

// CreateHold handles POST /v1/holds.  It returns 201 with the hold, 400 on
// bad input and 409 when not enough seats are free.
func (h *VenueHandler) CreateHold(c echo.Context) error {
	var req holdReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	email := normalizeEmail(req.CustomerEmail)

	hold, err := h.Venue.FindAndHoldSeats(req.NumSeats, email)
	if err != nil {
		if errors.Is(err, venue.ErrInvalidArgument) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "hold failed"})
	}
	if hold == nil {
		observability.RecordHoldUnavailable()
		return c.JSON(http.StatusConflict, echo.Map{"error": "not enough seats available"})
	}
	observability.RecordHoldCreated()

	return c.JSON(http.StatusCreated, holdResp{
		ID:            hold.ID.String(),
		CustomerEmail: hold.CustomerEmail,
		ExpiresAt:     hold.ExpiresAt,
		Seats:         hold.Seats,
	})
}

// ReserveHold handles POST /v1/holds/:id/reserve.  A hold that is unknown,
// expired, already reserved or held under another email yields 409.
func (h *VenueHandler) ReserveHold(c echo.Context) error {
	holdID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid hold id"})
	}
	var req reserveReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	email := normalizeEmail(req.CustomerEmail)

	confirmation, err := h.Venue.ReserveSeats(holdID, email)
	if err != nil {
		if errors.Is(err, venue.ErrInvalidArgument) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "reserve failed"})
	}
	if confirmation == "" {
		observability.RecordReservation(false)
		return c.JSON(http.StatusConflict, echo.Map{"error": "hold not found, expired or owned by another customer"})
	}
	observability.RecordReservation(true)
	h.announce(c.Request().Context(), confirmation)

	return c.JSON(http.StatusCreated, reserveResp{ConfirmationID: confirmation})
}

// GetReservation handles GET /v1/reservations/:id?customer_email=.  The
// email must match the reservation; otherwise it reports 404 so ids cannot
// be probed.
func (h *VenueHandler) GetReservation(c echo.Context) error {
	email := normalizeEmail(c.QueryParam("customer_email"))
	if email == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "customer_email is required"})
	}
	res, ok := h.Venue.Reservation(c.Param("id"))
	if !ok || res.CustomerEmail != email {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
	}
	return c.JSON(http.StatusOK, reservationResp{
		ConfirmationID: res.ConfirmationID,
		CustomerEmail:  res.CustomerEmail,
		ReservedAt:     res.ReservedAt,
		Seats:          res.Seats,
	})
}

// announce publishes the confirmation event outside the engine lock.
// Failures are logged by the publisher and never fail the request.
func (h *VenueHandler) announce(ctx context.Context, confirmationID string) {
	if h.Publisher == nil {
		return
	}
	res, ok := h.Venue.Reservation(confirmationID)
	if !ok {
		return
	}
	seats := make([]queue.EventSeat, len(res.Seats))
	for i, s := range res.Seats {
		seats[i] = queue.EventSeat{Row: s.Row, Column: s.Column}
	}
	ev := queue.ReservationConfirmedEvent{
		ConfirmationID: res.ConfirmationID,
		CustomerEmail:  res.CustomerEmail,
		Seats:          seats,
		ConfirmedAt:    res.ReservedAt.UTC().Format(time.RFC3339),
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := h.Publisher.PublishReservationConfirmed(ctx, ev); err != nil {
		h.Logger.Warn().Err(err).Str("confirmation_id", confirmationID).Msg("reservation event not published")
	}
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
