package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/nhatro-labs/booking-engine/internal/config"
	"github.com/nhatro-labs/booking-engine/internal/handler"
	"github.com/nhatro-labs/booking-engine/internal/repository"
	"github.com/nhatro-labs/booking-engine/internal/service"
	"github.com/nhatro-labs/booking-engine/pkg/response"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	logger := newLogger(cfg)

	db, err := initDB(cfg)
	if err != nil {
		logger.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	redisClient := initRedis(cfg)
	defer redisClient.Close()

	// Repositories
	bookingRepo := repository.NewBookingRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	tenantRepo := repository.NewTenantRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	contractRepo := repository.NewContractRepository(db)

	// Services
	ledger := service.NewDepositLedger(bookingRepo)
	bookings := service.NewBookingService(bookingRepo, ledger, cfg)
	catalog := service.NewCatalogService(serviceRepo, redisClient, cfg.Business.CatalogCacheTTL)
	resolver := service.NewTenantResolver(bookingRepo, tenantRepo)
	composer := service.NewContractComposer(bookingRepo, roomRepo, tenantRepo, contractRepo, catalog, cfg)

	// Handlers
	bookingHandler := handler.NewBookingHandler(bookings, composer, resolver)
	directoryHandler := handler.NewDirectoryHandler(roomRepo, tenantRepo, catalog)
	healthHandler := handler.NewHealthHandler(db, redisClient)

	router := setupRoutes(bookingHandler, directoryHandler, healthHandler, logger)

	server := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.WithField("addr", server.Addr).Info("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Info("server exited")
}

func newLogger(cfg *config.Config) *logrus.Logger {
	logger := logrus.New()
	if cfg.Logging.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	level, err := logrus.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	return logger
}

func initDB(cfg *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	return db, nil
}

func initRedis(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}

func setupRoutes(
	bookingHandler *handler.BookingHandler,
	directoryHandler *handler.DirectoryHandler,
	healthHandler *handler.HealthHandler,
	logger *logrus.Logger,
) *mux.Router {
	router := mux.NewRouter()
	router.Use(response.CORSMiddleware)
	router.Use(response.LoggingMiddleware(logger))

	// Health check
	router.HandleFunc("/health", healthHandler.Health).Methods("GET")
	router.HandleFunc("/health/ready", healthHandler.Ready).Methods("GET")

	// API routes
	api := router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/bookings", bookingHandler.List).Methods("GET")
	api.HandleFunc("/bookings", bookingHandler.Create).Methods("POST")
	api.HandleFunc("/bookings/{id}", bookingHandler.Get).Methods("GET")
	api.HandleFunc("/bookings/{id}", bookingHandler.Delete).Methods("DELETE")
	api.HandleFunc("/bookings/{id}/confirm", bookingHandler.Confirm).Methods("POST")
	api.HandleFunc("/bookings/{id}/cancel", bookingHandler.Cancel).Methods("POST")
	api.HandleFunc("/bookings/{id}/refund", bookingHandler.Refund).Methods("POST")
	api.HandleFunc("/bookings/{id}/contract", bookingHandler.CreateContract).Methods("POST")
	api.HandleFunc("/bookings/{id}/tenant-match", bookingHandler.TenantMatch).Methods("GET")

	api.HandleFunc("/rooms", directoryHandler.Rooms).Methods("GET")
	api.HandleFunc("/tenants", directoryHandler.Tenants).Methods("GET")
	api.HandleFunc("/services", directoryHandler.Services).Methods("GET")
	api.HandleFunc("/services/default-plan", directoryHandler.DefaultPlan).Methods("GET")

	return router
}
