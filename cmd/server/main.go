package main // Entry point package

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/iliyamo/movie-ticket-booking/internal/config"
	"github.com/iliyamo/movie-ticket-booking/internal/database"
	"github.com/iliyamo/movie-ticket-booking/internal/handler"
	"github.com/iliyamo/movie-ticket-booking/internal/middleware"
	"github.com/iliyamo/movie-ticket-booking/internal/queue"
	"github.com/iliyamo/movie-ticket-booking/internal/repository"
	"github.com/iliyamo/movie-ticket-booking/internal/router"
	"github.com/iliyamo/movie-ticket-booking/internal/service"
	"github.com/iliyamo/movie-ticket-booking/internal/store"
)

func main() {
	_ = godotenv.Load() // a missing .env is fine

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	log := newLogger(cfg)
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func newLogger(cfg config.Config) *zap.Logger {
	var (
		log *zap.Logger
		err error
	)
	if cfg.IsProd() {
		log, err = zap.NewProduction()
	} else {
		log, err = zap.NewDevelopment()
	}
	if err != nil {
		return zap.NewNop()
	}
	return log.With(zap.String("env", cfg.Env))
}

func openStore(ctx context.Context, cfg config.Config) (store.Store, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	switch cfg.StoreDriver {
	case config.DriverMySQL:
		db, err := database.OpenMySQL(ctx, cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
		if err != nil {
			return nil, err
		}
		st, err := store.NewMySQLStore(ctx, db)
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		return st, nil
	case config.DriverMongo:
		client, db, err := database.OpenMongo(ctx, cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return nil, err
		}
		return store.NewMongoStore(client, db), nil
	default:
		return store.NewFileStore(cfg.DataDir)
	}
}

func run(cfg config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := openStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open %s store: %w", cfg.StoreDriver, err)
	}
	defer func() { _ = st.Close() }()
	log.Info("store ready", zap.String("driver", cfg.StoreDriver))

	repo := repository.New(st, log)

	var events service.EventPublisher = service.NopPublisher{}
	if cfg.EventsEnabled {
		publisher := service.NewAMQPPublisher(cfg.RabbitMQURL, log)
		events = publisher
		go func() {
			if err := publisher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error("booking publisher stopped", zap.Error(err))
			}
		}()
		consumer := &queue.Consumer{URL: cfg.RabbitMQURL, LogPath: cfg.BookingLogPath, Log: log}
		go func() {
			if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error("booking consumer stopped", zap.Error(err))
			}
		}()
	}

	accounts := service.NewAccountService(repo.Users, cfg.BcryptCost, log)
	catalog := service.NewCatalogService(repo.Movies, log)
	bookings := service.NewBookingService(repo.Users, repo.Movies, events, log)
	reviews := service.NewReviewService(repo.Reviews, repo.Users, log)

	if cfg.AdminAccountID != "" {
		if err := accounts.EnsureAdmin(ctx, cfg.AdminAccountID, cfg.AdminPassword); err != nil {
			return fmt.Errorf("ensure admin: %w", err)
		}
	}

	rdb := config.NewRedisClient(cfg.Redis)
	if rdb == nil {
		log.Warn("redis unavailable, response cache and rate limiting disabled")
	} else {
		defer func() { _ = rdb.Close() }()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{AllowOrigins: cfg.CORSOrigins}))
	e.Use(middleware.RequestLogger(log.Named("http")))

	router.RegisterRoutes(e, router.Handlers{
		Health:   &handler.HealthHandler{Store: st, Log: log},
		Movies:   handler.NewMovieHandler(catalog, log),
		Auth:     handler.NewAuthHandler(accounts, cfg.JWTSecret, cfg.AccessTTLMin, log),
		Users:    handler.NewUserHandler(accounts, bookings, log),
		Bookings: handler.NewBookingHandler(bookings, log),
		Reviews:  handler.NewReviewHandler(reviews, log),
	}, router.Options{
		JWTSecret:    cfg.JWTSecret,
		AuthRequired: cfg.AuthRequired,
		Cache:        cfg.Cache,
		RateLimit:    cfg.RateLimit,
		Redis:        rdb,
		Log:          log,
	})

	addr := ":" + cfg.Port
	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("addr", addr), zap.Bool("auth_required", cfg.AuthRequired))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
