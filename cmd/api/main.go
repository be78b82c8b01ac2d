package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/fairyhunter13/court-booking-system/internal/config"
	"github.com/fairyhunter13/court-booking-system/internal/handler"
	"github.com/fairyhunter13/court-booking-system/internal/repository"
	"github.com/fairyhunter13/court-booking-system/internal/service"
	"github.com/fairyhunter13/court-booking-system/internal/validator"
	"github.com/fairyhunter13/court-booking-system/pkg/database"
	"github.com/fairyhunter13/court-booking-system/pkg/mq"
)

// stores bundles the record stores selected by configuration.
type stores struct {
	bookings interface {
		service.BookingStore
		handler.Pinger
	}
	coupons interface {
		service.CouponStore
		handler.Pinger
	}
	close func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	initLogger(cfg)

	ctx := context.Background()

	st, err := openStores(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Store.Driver).Msg("failed to open record store")
	}

	// Events are optional; a nil publisher disables them.
	var publisher service.EventPublisher
	if cfg.Events.Enabled() {
		pub, err := mq.NewPublisher(cfg.Events.RabbitURL, cfg.Events.Exchange)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to rabbitmq")
		}
		defer func() { _ = pub.Close() }()
		publisher = pub
		log.Info().Str("exchange", cfg.Events.Exchange).Msg("booking events enabled")
	}

	app := fiber.New(fiber.Config{
		AppName:      "Court Booking Service",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
		BodyLimit:    1 * 1024 * 1024,
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.New())

	validate := validator.New()

	bookingService := service.NewBookingService(st.bookings, publisher, service.BookingOptions{
		MockMode: cfg.Booking.MockMode,
	})
	couponService := service.NewCouponService(st.coupons)

	healthHandler := handler.NewHealthHandler(cfg.Store.Driver,
		handler.HealthCheck{Name: "bookings", Pinger: st.bookings},
		handler.HealthCheck{Name: "coupons", Pinger: st.coupons},
	)
	app.Get("/health", healthHandler.Check)

	api := app.Group("/api")
	handler.NewBookingHandler(bookingService, validate).Register(api)
	handler.NewCouponHandler(couponService, validate).Register(api)

	go func() {
		log.Info().
			Str("port", cfg.Server.Port).
			Str("store", cfg.Store.Driver).
			Bool("mock_mode", cfg.Booking.MockMode).
			Msg("starting server")
		if err := app.Listen(":" + cfg.Server.Port); err != nil {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("received shutdown signal")

	shutdownCtx, shutdownCancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer shutdownCancel()

	log.Info().Msg("waiting for in-flight requests to complete...")
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error during server shutdown")
	}

	// Close stores AFTER server shutdown (even if shutdown timed out)
	st.close()
	log.Info().Msg("server stopped")
}

// openStores builds the file or postgres record stores.
func openStores(ctx context.Context, cfg *config.Config) (*stores, error) {
	switch cfg.Store.Driver {
	case config.DriverPostgres:
		pool, err := database.NewPool(ctx, database.PoolConfig{
			DSN:        cfg.DB.DSN(),
			MaxConns:   cfg.DB.MaxConns,
			MinConns:   cfg.DB.MinConns,
			MaxRetries: cfg.DB.MaxRetries,
		})
		if err != nil {
			return nil, err
		}
		if err := repository.EnsureSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		return &stores{
			bookings: repository.NewBookingRepository(pool),
			coupons:  repository.NewCouponRepository(pool),
			close: func() {
				log.Info().Msg("closing database connections...")
				pool.Close()
			},
		}, nil
	default:
		log.Info().Str("dir", cfg.Store.DataDir).Msg("using file record store")
		return &stores{
			bookings: repository.NewFileBookingStore(cfg.Store.DataDir),
			coupons:  repository.NewFileCouponStore(cfg.Store.DataDir),
			close:    func() {},
		}, nil
	}
}

// initLogger configures zerolog based on the application configuration.
func initLogger(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.Log.Pretty {
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).
			With().Timestamp().Logger()
	} else {
		zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	}
}
