package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/iliyamo/venue-ticket-service/internal/clock"
	"github.com/iliyamo/venue-ticket-service/internal/config"
	"github.com/iliyamo/venue-ticket-service/internal/handler"
	"github.com/iliyamo/venue-ticket-service/internal/observability"
	"github.com/iliyamo/venue-ticket-service/internal/utils"
	"github.com/iliyamo/venue-ticket-service/internal/venue"
)

const testSecret = "router-secret"

func newServer(t *testing.T) *echo.Echo {
	t.Helper()
	observability.RegisterMetrics()

	clk := clock.NewFixed(time.Date(2025, 3, 1, 18, 0, 0, 0, time.UTC))
	v, err := venue.New(4, 4, venue.WithClock(clk))
	if err != nil {
		t.Fatalf("venue.New: %v", err)
	}
	cfg := config.Config{JWTSecret: testSecret, AccessTTLMin: 15}

	e := echo.New()
	RegisterRoutes(e)
	RegisterVenue(e, handler.NewVenueHandler(v, nil, zerolog.Nop()), nil, config.CacheConfig{}, config.RateLimitConfig{})
	RegisterAuth(e, handler.NewAuthHandler(cfg, clk))
	RegisterAdmin(e, handler.NewAdminHandler(v), testSecret)
	return e
}

func TestRoutes(t *testing.T) {
	e := newServer(t)

	adminToken, err := utils.NewAccessToken(testSecret, "ops@example.com", handler.RoleAdmin, 15, time.Now())
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	otherToken, err := utils.NewAccessToken(testSecret, "fan@example.com", "CUSTOMER", 15, time.Now())
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}

	tests := []struct {
		name   string
		method string
		target string
		body   string
		token  string
		want   int
	}{
		{name: "health", method: http.MethodGet, target: "/healthz", want: http.StatusOK},
		{name: "metrics", method: http.MethodGet, target: "/metrics", want: http.StatusOK},
		{name: "venue", method: http.MethodGet, target: "/v1/venue", want: http.StatusOK},
		{name: "available", method: http.MethodGet, target: "/v1/seats/available", want: http.StatusOK},
		{name: "seat map", method: http.MethodGet, target: "/v1/seats", want: http.StatusOK},
		{name: "hold", method: http.MethodPost, target: "/v1/holds", body: `{"num_seats":2,"customer_email":"fan@example.com"}`, want: http.StatusCreated},
		{name: "login disabled", method: http.MethodPost, target: "/v1/auth/login", body: `{"email":"ops@example.com","password":"x"}`, want: http.StatusUnauthorized},
		{name: "admin without token", method: http.MethodGet, target: "/v1/admin/stats", want: http.StatusUnauthorized},
		{name: "admin wrong role", method: http.MethodGet, target: "/v1/admin/stats", token: otherToken.Token, want: http.StatusForbidden},
		{name: "admin stats", method: http.MethodGet, target: "/v1/admin/stats", token: adminToken.Token, want: http.StatusOK},
		{name: "admin as_of", method: http.MethodGet, target: "/v1/admin/seats/available?as_of=2025-03-01T18:00:00Z", token: adminToken.Token, want: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req *http.Request
			if tt.body != "" {
				req = httptest.NewRequest(tt.method, tt.target, strings.NewReader(tt.body))
				req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			} else {
				req = httptest.NewRequest(tt.method, tt.target, nil)
			}
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Fatalf("%s %s: expected %d, got %d (%s)", tt.method, tt.target, tt.want, rec.Code, rec.Body.String())
			}
		})
	}
}
