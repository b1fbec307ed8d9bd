// Package client talks to the venue HTTP API on behalf of venuectl.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/iliyamo/venue-ticket-service/internal/model"
)

// ErrUnavailable is returned when the server answers 409: not enough free
// seats for a hold, or a hold that can no longer be reserved.
var ErrUnavailable = errors.New("unavailable")

// ErrNotFound is returned for 404 responses.
var ErrNotFound = errors.New("not found")

// APIError carries any other non-2xx response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
}

type Venue struct {
	Rows                int     `json:"rows"`
	Columns             int     `json:"columns"`
	TotalSeats          int     `json:"total_seats"`
	HoldDurationSeconds float64 `json:"hold_duration_seconds"`
}

type Hold struct {
	ID            string       `json:"id"`
	CustomerEmail string       `json:"customer_email"`
	ExpiresAt     time.Time    `json:"expires_at"`
	Seats         []model.Seat `json:"seats"`
}

type Reservation struct {
	ConfirmationID string       `json:"confirmation_id"`
	CustomerEmail  string       `json:"customer_email"`
	ReservedAt     time.Time    `json:"reserved_at"`
	Seats          []model.Seat `json:"seats"`
}

// Client is a thin JSON client for the venue API.
type Client struct {
	base string
	http *http.Client
}

// New returns a client for the server at baseURL, e.g.
// "http://localhost:8080".  A nil hc uses a client with a 10s timeout.
func New(baseURL string, hc *http.Client) *Client {
	if hc == nil {
		hc = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{base: strings.TrimRight(baseURL, "/"), http: hc}
}

func (c *Client) Venue(ctx context.Context) (Venue, error) {
	var out Venue
	err := c.do(ctx, http.MethodGet, "/v1/venue", nil, &out)
	return out, err
}

func (c *Client) Available(ctx context.Context) (int, error) {
	var out struct {
		Available int `json:"available"`
	}
	err := c.do(ctx, http.MethodGet, "/v1/seats/available", nil, &out)
	return out.Available, err
}

// SeatMap returns the seat states row by row (FREE, HELD or RESERVED).
func (c *Client) SeatMap(ctx context.Context) ([][]string, error) {
	var out struct {
		Rows [][]string `json:"rows"`
	}
	err := c.do(ctx, http.MethodGet, "/v1/seats", nil, &out)
	return out.Rows, err
}

// Hold asks the server to hold numSeats seats for email.
func (c *Client) Hold(ctx context.Context, numSeats int, email string) (Hold, error) {
	body := map[string]any{"num_seats": numSeats, "customer_email": email}
	var out Hold
	err := c.do(ctx, http.MethodPost, "/v1/holds", body, &out)
	return out, err
}

// Reserve promotes holdID and returns the confirmation id.
func (c *Client) Reserve(ctx context.Context, holdID, email string) (string, error) {
	body := map[string]any{"customer_email": email}
	var out struct {
		ConfirmationID string `json:"confirmation_id"`
	}
	err := c.do(ctx, http.MethodPost, "/v1/holds/"+url.PathEscape(holdID)+"/reserve", body, &out)
	return out.ConfirmationID, err
}

func (c *Client) Reservation(ctx context.Context, confirmationID, email string) (Reservation, error) {
	path := "/v1/reservations/" + url.PathEscape(confirmationID) + "?customer_email=" + url.QueryEscape(email)
	var out Reservation
	err := c.do(ctx, http.MethodGet, path, nil, &out)
	return out, err
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		bs, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(bs)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if res.StatusCode >= 300 {
		msg := errorMessage(raw)
		switch res.StatusCode {
		case http.StatusConflict:
			return fmt.Errorf("%w: %s", ErrUnavailable, msg)
		case http.StatusNotFound:
			return fmt.Errorf("%w: %s", ErrNotFound, msg)
		default:
			return &APIError{Status: res.StatusCode, Message: msg}
		}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func errorMessage(raw []byte) string {
	var e struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(raw, &e) == nil && e.Error != "" {
		return e.Error
	}
	return strings.TrimSpace(string(raw))
}
