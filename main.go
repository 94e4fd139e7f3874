package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"hotel-ops/clock"
	"hotel-ops/config"
	"hotel-ops/controllers"
	"hotel-ops/routes"
	"hotel-ops/services"
	"hotel-ops/utils"
)

const sessionPurgeInterval = 30 * time.Minute

func main() {
	// .env is optional
	if err := godotenv.Load(); err != nil {
		log.Println(".env not found; continuing with environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := config.NewLogger(cfg.Env)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := config.ConnectDatabase(cfg, logger); err != nil {
		logger.Fatal("database connect failed", zap.Error(err))
	}
	db := config.DB
	logger.Info("database ready", zap.String("driver", cfg.DBDriver))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	settingsService := services.NewSettingsService(db)
	if _, err := settingsService.Get(ctx); err != nil {
		logger.Warn("hotel settings unavailable; using UTC for today", zap.Error(err))
	}
	clk := clock.InZone(clock.NewSystem(), settingsService.Location)

	var sessions services.SessionStore
	rdb, err := config.ConnectRedis(ctx, cfg.RedisURL)
	if err != nil {
		logger.Fatal("redis connect failed", zap.Error(err))
	}
	if rdb != nil {
		defer func() { _ = rdb.Close() }()
		sessions = services.NewRedisSessionStore(rdb, clk)
		logger.Info("sessions stored in redis")
	} else {
		store := services.NewGormSessionStore(db, clk)
		sessions = store
		go purgeSessions(ctx, store, logger)
		logger.Info("sessions stored in database")
	}

	// Services
	roleService := services.NewRoleService(db)
	authService := services.NewAuthService(db, sessions, utils.NewTokenIssuer(cfg.JWTSecret, "hotel-ops"), roleService, clk, cfg.SessionTTL, logger)
	auditService := services.NewAuditService(db, logger)
	roomService := services.NewRoomService(db, clk)
	bookingService := services.NewBookingService(db, clk, logger)
	availabilityService := services.NewAvailabilityService(db, logger)
	cleaningService := services.NewCleaningService(db, clk)
	ownerService := services.NewOwnerService(db)
	expenseService := services.NewExpenseService(db)
	userService := services.NewUserService(db, roleService)
	dashboardService := services.NewDashboardService(db, clk, availabilityService, bookingService, logger)
	exportService := services.NewExportService(bookingService, expenseService)

	// Controllers
	availabilityController := controllers.NewAvailabilityController(availabilityService, clk, logger)
	cleaningController := controllers.NewCleaningController(cleaningService, auditService, logger)
	handlers := routes.Handlers{
		Auth:         controllers.NewAuthController(authService, auditService, cfg.Production(), logger),
		Rooms:        controllers.NewRoomController(roomService, auditService, logger),
		Bookings:     controllers.NewBookingController(bookingService, exportService, auditService, logger),
		Availability: availabilityController,
		Cleaning:     cleaningController,
		Owners:       controllers.NewOwnerController(ownerService, auditService, logger),
		Expenses:     controllers.NewExpenseController(expenseService, exportService, auditService, logger),
		Users:        controllers.NewUserController(userService, auditService, logger),
		Roles:        controllers.NewRoleController(roleService, auditService, logger),
		Settings:     controllers.NewSettingsController(settingsService, auditService, logger),
		Dashboard:    controllers.NewDashboardController(dashboardService, logger),
		OwnerPortal: controllers.NewOwnerPortalController(
			dashboardService, ownerService, bookingService, availabilityController, cleaningController, clk, logger,
		),
		Audit: controllers.NewAuditController(auditService, logger),
	}

	router := routes.SetupRouter(cfg, logger, authService, handlers)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("listen failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownPeriod)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("forced shutdown", zap.Error(err))
		return
	}
	logger.Info("server stopped")
}

func purgeSessions(ctx context.Context, store *services.GormSessionStore, logger *zap.Logger) {
	t := time.NewTicker(sessionPurgeInterval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			n, err := store.PurgeExpired(ctx)
			if err != nil {
				logger.Warn("session purge failed", zap.Error(err))
				continue
			}
			if n > 0 {
				logger.Debug("expired sessions purged", zap.Int64("count", n))
			}
		}
	}
}
