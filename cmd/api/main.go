package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/fitbook/booking-api/internal/config"
	"github.com/fitbook/booking-api/internal/handler"
	bookingHandler "github.com/fitbook/booking-api/internal/handler/booking"
	catalogHandler "github.com/fitbook/booking-api/internal/handler/catalog"
	"github.com/fitbook/booking-api/internal/middleware"
	"github.com/fitbook/booking-api/internal/notifier"
	"github.com/fitbook/booking-api/internal/repository/postgres"
	"github.com/fitbook/booking-api/internal/router"
	bookingService "github.com/fitbook/booking-api/internal/service/booking"
	catalogService "github.com/fitbook/booking-api/internal/service/catalog"
	seedService "github.com/fitbook/booking-api/internal/service/seed"
	"github.com/fitbook/booking-api/migrations"
	"github.com/fitbook/booking-api/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	logger.Setup(cfg.Server.LogLevel)

	// Initialize database
	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	if err := migrations.Apply(context.Background(), db); err != nil {
		log.Fatal().Err(err).Msg("failed to apply migrations")
	}

	// Initialize repositories
	clientRepo := postgres.NewClientRepository(db)
	classRepo := postgres.NewClassRepository(db)
	sessionRepo := postgres.NewSessionRepository(db)
	bookingRepo := postgres.NewBookingRepository(db)

	// Initialize services
	notifSvc := notifier.NewService(cfg.SMTP)
	bookingSvc := bookingService.NewService(bookingRepo, sessionRepo, classRepo, clientRepo, notifSvc)
	catalogSvc := catalogService.NewService(classRepo)

	if cfg.Seed {
		seeder := seedService.NewService(classRepo, clientRepo, sessionRepo)
		if err := seeder.SeedAll(context.Background()); err != nil {
			log.Fatal().Err(err).Msg("failed to seed demo data")
		}
	}

	// Initialize handlers
	h := handler.NewHandler(db)
	bookingH := bookingHandler.NewHandler(bookingSvc, cfg.Catalog.DefaultTimezone)
	catalogH := catalogHandler.NewHandler(catalogSvc, cfg.Catalog.DefaultTimezone)

	// Setup router
	r := router.NewRouter(catalogH, bookingH, h, router.RouterConfig{
		RPS:           cfg.Server.RequestsPerSecond,
		RateBurst:     cfg.Server.RateBurst,
		CORSConfig:    middleware.DefaultCORSConfig(),
		MetricsPrefix: "booking_api",
	})
	r.Setup()

	// Create server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r.Engine(),
	}

	// Start server
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()
	log.Info().Int("port", cfg.Server.Port).Msg("server started")

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
