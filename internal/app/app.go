package app

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gin-contrib/cors"
	"github.com/pressly/goose/v3"
	"github.com/wb-go/wbf/dbpg"
	"github.com/wb-go/wbf/logger"

	"github.com/Gifford23/youth-xtreme-checkin/internal/config"
	"github.com/Gifford23/youth-xtreme-checkin/internal/handler"
	"github.com/Gifford23/youth-xtreme-checkin/internal/middleware"
	"github.com/Gifford23/youth-xtreme-checkin/internal/repository"
	"github.com/Gifford23/youth-xtreme-checkin/internal/roster"
	"github.com/Gifford23/youth-xtreme-checkin/internal/router"
	"github.com/Gifford23/youth-xtreme-checkin/internal/service"
)

const migrationsDir = "migrations"

type App struct {
	cfg        *config.Config
	log        logger.Logger
	db         *dbpg.DB
	hub        *roster.Hub
	httpServer *http.Server
}

func New(cfg *config.Config) (*App, error) {
	app := &App{cfg: cfg}

	log, err := logger.InitLogger(
		cfg.Logger.LogEngine(),
		"youth-xtreme-checkin",
		cfg.Gin.Mode,
		logger.WithLevel(cfg.Logger.LogLevel()),
	)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	app.log = log

	if err = app.runMigrations(); err != nil {
		return nil, fmt.Errorf("migrations: %w", err)
	}

	if err = app.initDB(); err != nil {
		return nil, fmt.Errorf("init db: %w", err)
	}

	if err = app.initServices(); err != nil {
		return nil, fmt.Errorf("init services: %w", err)
	}

	return app, nil
}

func (a *App) initDB() error {
	db, err := dbpg.New(
		a.cfg.Postgres.DSN(),
		nil,
		&dbpg.Options{
			MaxOpenConns: a.cfg.Postgres.MaxOpenConns,
			MaxIdleConns: a.cfg.Postgres.MaxIdleConns,
		},
	)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}

	if err := db.Master.PingContext(context.Background()); err != nil {
		return fmt.Errorf("pinging database: %w", err)
	}

	a.db = db
	a.log.LogAttrs(context.Background(), logger.InfoLevel, "database connected",
		logger.String("host", a.cfg.Postgres.Host),
		logger.Int("port", a.cfg.Postgres.Port),
		logger.String("database", a.cfg.Postgres.Database),
	)

	return nil
}

func (a *App) initServices() error {
	eventRepo := repository.NewEventRepo(a.db)
	registrationRepo := repository.NewRegistrationRepo(a.db)
	profileRepo := repository.NewProfileRepo(a.db)

	listener, err := roster.NewPQListener(a.cfg.Postgres.DSN(), a.log)
	if err != nil {
		return fmt.Errorf("init roster listener: %w", err)
	}

	a.hub = roster.New(
		registrationRepo,
		listener,
		a.cfg.Roster.PingInterval,
		a.cfg.Roster.SubscriberBuffer,
		a.log,
	)

	eventService := service.NewEventService(eventRepo, registrationRepo)
	checkinService := service.NewCheckinService(registrationRepo, eventRepo, a.log)
	scannerService := service.NewScannerService(a.hub, checkinService, a.cfg.Scanner.DedupeWindow, a.log)
	gateService := service.NewGateService(profileRepo, a.cfg.Gate.PIN, a.log)
	profileService := service.NewProfileService(profileRepo)

	h := handler.NewHandler(
		eventService,
		checkinService,
		scannerService,
		gateService,
		profileService,
		rosterStream{hub: a.hub},
	)

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = a.cfg.CORS.Origins()
	corsConfig.AllowMethods = []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "X-Profile-ID", "X-Device-ID", "X-Request-ID"}

	r := router.InitRouter(
		a.cfg.Gin.Mode,
		h,
		middleware.Identity(),
		middleware.VolunteerOnly(profileRepo),
		cors.New(corsConfig),
		middleware.RequestID(),
		middleware.RequestLogger(a.log),
		middleware.Recovery(a.log),
	)

	a.httpServer = &http.Server{
		Addr:         a.cfg.Server.Addr,
		Handler:      r,
		ReadTimeout:  a.cfg.Server.ReadTimeout,
		WriteTimeout: a.cfg.Server.WriteTimeout,
		IdleTimeout:  a.cfg.Server.IdleTimeout,
	}

	return nil
}

func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go a.hub.Start(ctx)

	errCh := make(chan error, 1)
	go func() {
		a.log.LogAttrs(ctx, logger.InfoLevel, "HTTP server starting",
			logger.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.log.LogAttrs(context.Background(), logger.InfoLevel, "shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.shutdown()
}

func (a *App) shutdown() error {
	a.log.LogAttrs(context.Background(), logger.InfoLevel, "shutting down...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		a.cfg.Server.WriteTimeout,
	)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	a.log.LogAttrs(context.Background(), logger.InfoLevel, "HTTP server stopped")

	if err := a.db.Master.Close(); err != nil {
		return fmt.Errorf("close db: %w", err)
	}
	a.log.LogAttrs(context.Background(), logger.InfoLevel, "database connection closed")

	a.log.LogAttrs(context.Background(), logger.InfoLevel, "app stopped")

	return nil
}

func (a *App) runMigrations() error {
	db, err := sql.Open("postgres", a.cfg.Postgres.DSN())
	if err != nil {
		return fmt.Errorf("open db for migrations: %w", err)
	}
	defer db.Close()

	if err := goose.Up(db, migrationsDir); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}

	a.log.Info("migrations applied successfully")
	return nil
}

// rosterStream adapts the hub's concrete subscription to the handler's
// consumer-side interface.
type rosterStream struct {
	hub *roster.Hub
}

func (r rosterStream) Subscribe(ctx context.Context, eventID string) (handler.RosterSub, error) {
	sub, err := r.hub.Subscribe(ctx, eventID)
	if err != nil {
		return nil, err
	}
	return sub, nil
}
