package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/venue-ticket-service/internal/venue"
)

// AdminHandler serves operator views of the venue.
type AdminHandler struct {
	Venue *venue.Venue
}

func NewAdminHandler(v *venue.Venue) *AdminHandler {
	return &AdminHandler{Venue: v}
}

type availableAtResp struct {
	Available int       `json:"available"`
	AsOf      time.Time `json:"as_of"`
}

// Stats handles GET /v1/admin/stats.
func (h *AdminHandler) Stats(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Venue.Stats())
}

// AvailableAsOf handles GET /v1/admin/seats/available?as_of=RFC3339.  Holds
// expired at as_of are released for good, so a future instant drops them
// early.
func (h *AdminHandler) AvailableAsOf(c echo.Context) error {
	raw := c.QueryParam("as_of")
	if raw == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "as_of is required"})
	}
	asOf, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "as_of must be RFC3339"})
	}
	return c.JSON(http.StatusOK, availableAtResp{
		Available: h.Venue.NumSeatsAvailableAt(asOf),
		AsOf:      asOf.UTC(),
	})
}
