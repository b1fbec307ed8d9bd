package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/venue-ticket-service/internal/clock"
	"github.com/iliyamo/venue-ticket-service/internal/config"
	"github.com/iliyamo/venue-ticket-service/internal/utils"
)

// RoleAdmin is the role claim carried by admin access tokens.
const RoleAdmin = "ADMIN"

// AuthHandler issues access tokens for the single configured admin.
type AuthHandler struct {
	Cfg   config.Config
	Clock clock.Clock
}

func NewAuthHandler(cfg config.Config, clk clock.Clock) *AuthHandler {
	if clk == nil {
		clk = clock.NewSystem()
	}
	return &AuthHandler{Cfg: cfg, Clock: clk}
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenPart struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}

type loginResp struct {
	Email  string    `json:"email"`
	Role   string    `json:"role"`
	Access tokenPart `json:"access"`
}

// Login verifies the admin credentials and returns a short-lived access
// token.  When no admin is configured every attempt is rejected.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/password required"})
	}
	if !h.Cfg.AdminEnabled() ||
		req.Email != strings.ToLower(h.Cfg.AdminEmail) ||
		!utils.VerifyPassword(h.Cfg.AdminPasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, req.Email, RoleAdmin, h.Cfg.AccessTTLMin, h.Clock.Now())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue access failed"})
	}
	return c.JSON(http.StatusOK, loginResp{
		Email:  req.Email,
		Role:   RoleAdmin,
		Access: tokenPart{Token: access.Token, Expires: access.Exp},
	})
}
