package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"

	"github.com/iliyamo/venue-ticket-service/internal/clock"
	"github.com/iliyamo/venue-ticket-service/internal/config"
	"github.com/iliyamo/venue-ticket-service/internal/handler"
	"github.com/iliyamo/venue-ticket-service/internal/observability"
	"github.com/iliyamo/venue-ticket-service/internal/queue"
	"github.com/iliyamo/venue-ticket-service/internal/router"
	"github.com/iliyamo/venue-ticket-service/internal/venue"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warn().Err(err).Msg("failed to load .env")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	logger := observability.InitLogger("venue-server", cfg.LogLevel)

	observability.RegisterMetrics()
	clk := clock.NewSystem()
	v, err := venue.New(cfg.Rows, cfg.Columns,
		venue.WithHoldDuration(cfg.HoldDuration),
		venue.WithClock(clk),
		venue.WithLogger(logger.With().Str("component", "venue").Logger()),
		venue.WithSweepHook(observability.RecordHoldsExpired),
	)
	if err != nil {
		logger.Fatal().Err(err).Msg("build venue")
	}
	if err := observability.RegisterAvailableSeats(v.NumSeatsAvailable); err != nil {
		logger.Fatal().Err(err).Msg("register seats gauge")
	}

	rdb := config.NewRedisClient()
	if rdb == nil {
		logger.Warn().Msg("redis unavailable, cache and rate limit disabled")
	} else {
		defer rdb.Close()
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var pub handler.EventPublisher
	if cfg.QueueEnabled {
		pub = queue.NewPublisher(cfg.AMQPURL, logger.With().Str("component", "publisher").Logger())
		consumer := queue.NewConsumer(cfg.AMQPURL, cfg.ReservationLogDir, logger.With().Str("component", "consumer").Logger())
		go func() {
			if err := consumer.Run(runCtx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error().Err(err).Msg("reservation consumer stopped")
			}
		}()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(echomw.Recover())
	e.Use(observability.RequestLogger(logger))
	e.Use(observability.RequestMetrics())

	router.RegisterRoutes(e)
	router.RegisterVenue(e, handler.NewVenueHandler(v, pub, logger), rdb, config.LoadCacheConfig(), config.LoadRateLimitConfig())
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, clk))
	router.RegisterAdmin(e, handler.NewAdminHandler(v), cfg.JWTSecret)
	if !cfg.AdminEnabled() {
		logger.Warn().Msg("ADMIN_EMAIL/ADMIN_PASSWORD_HASH not set, admin login disabled")
	}

	addr := ":" + cfg.Port
	logger.Info().
		Str("addr", addr).
		Str("env", cfg.Env).
		Int("rows", cfg.Rows).
		Int("columns", cfg.Columns).
		Dur("hold_duration", v.HoldDuration()).
		Bool("queue", cfg.QueueEnabled).
		Msg("listening")

	srvErr := make(chan error, 1)
	go func() {
		srvErr <- e.Start(addr)
	}()

	select {
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("server error")
		}
	case <-runCtx.Done():
		logger.Info().Msg("shutdown signal received, stopping server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error().Err(err).Msg("server shutdown error")
	}
	logger.Info().Msg("server stopped")
}
