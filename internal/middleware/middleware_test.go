package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/venue-ticket-service/internal/config"
	"github.com/iliyamo/venue-ticket-service/internal/utils"
)

func TestJWTAuthAndRequireRole(t *testing.T) {
	t.Parallel()

	const secret = "test-secret"
	e := echo.New()
	g := e.Group("/admin", JWTAuth(secret), RequireRole("ADMIN"))
	g.GET("/whoami", func(c echo.Context) error {
		return c.String(http.StatusOK, c.Get(ContextSubject).(string))
	})

	issue := func(t *testing.T, secret, role string, ttl int, now time.Time) string {
		t.Helper()
		tok, err := utils.NewAccessToken(secret, "admin@example.com", role, ttl, now)
		if err != nil {
			t.Fatalf("NewAccessToken: %v", err)
		}
		return tok.Token
	}

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{name: "missing token", header: "", want: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic abc", want: http.StatusUnauthorized},
		{name: "bad signature", header: "Bearer " + issue(t, "other", "ADMIN", 5, time.Now()), want: http.StatusUnauthorized},
		{name: "expired", header: "Bearer " + issue(t, secret, "ADMIN", 1, time.Now().Add(-time.Hour)), want: http.StatusUnauthorized},
		{name: "wrong role", header: "Bearer " + issue(t, secret, "CUSTOMER", 5, time.Now()), want: http.StatusForbidden},
		{name: "admin", header: "Bearer " + issue(t, secret, "ADMIN", 5, time.Now()), want: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin/whoami", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Fatalf("expected %d, got %d (%s)", tt.want, rec.Code, rec.Body.String())
			}
			if tt.want == http.StatusOK && rec.Body.String() != "admin@example.com" {
				t.Fatalf("expected subject in context, got %q", rec.Body.String())
			}
		})
	}
}

func TestBuildRateKey(t *testing.T) {
	t.Parallel()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/holds", nil)
	req.Header.Set(echo.HeaderXRealIP, "10.0.0.7")
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath("/v1/holds")

	tests := map[string]string{
		"ip":       "rl:ip:10.0.0.7",
		"route":    "rl:route:POST /v1/holds",
		"ip_route": "rl:ip:10.0.0.7:route:POST /v1/holds",
		"":         "rl:ip:10.0.0.7:user:anon:route:POST /v1/holds",
	}
	for strategy, want := range tests {
		got := buildRateKey(config.RateLimitConfig{Prefix: "rl", KeyStrategy: strategy}, c)
		if got != want {
			t.Fatalf("strategy %q: expected %q, got %q", strategy, want, got)
		}
	}
}

func TestRetryAfterSeconds(t *testing.T) {
	t.Parallel()

	for ms, want := range map[int64]int{0: 0, 1: 1, 1000: 1, 1001: 2, -50: 0} {
		if got := retryAfterSeconds(ms); got != want {
			t.Fatalf("retryAfterSeconds(%d) = %d, want %d", ms, got, want)
		}
	}
}

func TestPayloadRoundTrip(t *testing.T) {
	t.Parallel()

	hdr := http.Header{"Content-Type": []string{"application/json"}}
	body := []byte(`{"rows":10}`)
	bs, err := encodePayload(http.StatusOK, hdr, body)
	if err != nil {
		t.Fatalf("encodePayload: %v", err)
	}
	status, gotHdr, gotBody, ok := decodePayload(bs)
	if !ok || status != http.StatusOK || gotHdr.Get("Content-Type") != "application/json" || string(gotBody) != string(body) {
		t.Fatalf("unexpected decode: ok=%v status=%d hdr=%v body=%q", ok, status, gotHdr, gotBody)
	}
	if _, _, _, ok := decodePayload(bs[:5]); ok {
		t.Fatalf("expected truncated payload to be rejected")
	}
}

func TestCacheKeyIgnoresQueryForRouteStrategy(t *testing.T) {
	t.Parallel()

	e := echo.New()
	key := func(strategy, target string) string {
		c := e.NewContext(httptest.NewRequest(http.MethodGet, target, nil), httptest.NewRecorder())
		c.SetPath("/v1/venue")
		return cacheKeyFrom(config.CacheConfig{Prefix: "c", KeyStrategy: strategy}, c)
	}
	if key("route", "/v1/venue?a=1") != key("route", "/v1/venue?a=2") {
		t.Fatalf("route strategy should ignore the query")
	}
	if key("route_query", "/v1/venue?a=1") == key("route_query", "/v1/venue?a=2") {
		t.Fatalf("route_query strategy should include the query")
	}
}

func TestMiddlewaresPassThroughWithoutRedis(t *testing.T) {
	t.Parallel()

	e := echo.New()
	e.GET("/v1/venue", func(c echo.Context) error { return c.String(http.StatusOK, "ok") },
		NewRedisCache(config.CacheConfig{Enabled: true, Methods: map[string]bool{"GET": true}}, nil),
		NewTokenBucket(config.RateLimitConfig{Enabled: true, Capacity: 1}, nil),
	)
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/venue", nil))
		if rec.Code != http.StatusOK || rec.Header().Get("X-Cache") != "" {
			t.Fatalf("request %d: expected plain 200, got %d headers=%v", i, rec.Code, rec.Header())
		}
	}
}
