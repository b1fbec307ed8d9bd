package observability

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/iliyamo/venue-ticket-service/internal/model"
)

var (
	registerOnce sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "venue",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)
	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "venue",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
	holdsCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "venue",
		Subsystem: "holds",
		Name:      "created_total",
		Help:      "Seat holds created.",
	})
	holdsUnavailable = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "venue",
		Subsystem: "holds",
		Name:      "unavailable_total",
		Help:      "Hold requests refused for lack of free seats.",
	})
	holdsExpired = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "venue",
		Subsystem: "holds",
		Name:      "expired_total",
		Help:      "Seat holds released by the expiry sweep.",
	})
	seatsReleased = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "venue",
		Subsystem: "holds",
		Name:      "seats_released_total",
		Help:      "Seats returned to the free pool by the expiry sweep.",
	})
	reservations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "venue",
			Subsystem: "reservations",
			Name:      "attempts_total",
			Help:      "Hold promotion attempts by outcome.",
		},
		[]string{"outcome"},
	)
)

// RegisterMetrics registers the collectors with the default registry.  It
// is safe to call more than once.
func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(httpRequests, httpDuration, holdsCreated, holdsUnavailable,
			holdsExpired, seatsReleased, reservations)
	})
}

// RegisterAvailableSeats exposes fn as the venue_seats_available gauge.
// fn is evaluated on every scrape.
func RegisterAvailableSeats(fn func() int) error {
	return prometheus.Register(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Namespace: "venue",
			Name:      "seats_available",
			Help:      "Seats neither held nor reserved.",
		},
		func() float64 { return float64(fn()) },
	))
}

func RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	RegisterMetrics()
	statusLabel := strconv.Itoa(status)
	httpRequests.WithLabelValues(method, path, statusLabel).Inc()
	httpDuration.WithLabelValues(method, path, statusLabel).Observe(duration.Seconds())
}

func RecordHoldCreated() {
	RegisterMetrics()
	holdsCreated.Inc()
}

func RecordHoldUnavailable() {
	RegisterMetrics()
	holdsUnavailable.Inc()
}

// RecordHoldsExpired matches the venue sweep hook signature.
func RecordHoldsExpired(expired []model.SeatHold) {
	RegisterMetrics()
	holdsExpired.Add(float64(len(expired)))
	n := 0
	for _, h := range expired {
		n += len(h.Seats)
	}
	seatsReleased.Add(float64(n))
}

// RecordReservation counts a promotion attempt; confirmed is false when
// the venue returned no confirmation id.
func RecordReservation(confirmed bool) {
	RegisterMetrics()
	outcome := "confirmed"
	if !confirmed {
		outcome = "unavailable"
	}
	reservations.WithLabelValues(outcome).Inc()
}
