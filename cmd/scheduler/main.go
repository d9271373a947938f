package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/nhatro-labs/booking-engine/internal/config"
	"github.com/nhatro-labs/booking-engine/internal/repository"
	"github.com/nhatro-labs/booking-engine/internal/service"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.Info("starting booking scheduler")

	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	bookingRepo := repository.NewBookingRepository(db)
	serviceRepo := repository.NewServiceRepository(db)

	ledger := service.NewDepositLedger(bookingRepo)
	bookings := service.NewBookingService(bookingRepo, ledger, cfg)
	catalog := service.NewCatalogService(serviceRepo, redisClient, cfg.Business.CatalogCacheTTL)

	loc, err := time.LoadLocation(cfg.Scheduler.Timezone)
	if err != nil {
		logger.Fatalf("Invalid scheduler timezone: %v", err)
	}

	c := cron.New(cron.WithSeconds(), cron.WithLocation(loc))
	setupCronJobs(c, cfg, bookings, catalog, logger)

	c.Start()
	logger.Info("scheduler started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down scheduler")
	c.Stop()
	logger.Info("scheduler stopped")
}

func setupCronJobs(
	c *cron.Cron,
	cfg *config.Config,
	bookings *service.BookingService,
	catalog *service.CatalogService,
	logger *logrus.Logger,
) {
	// Daily: cancel pending bookings whose move-in date passed the expiry
	// window, refunding the full deposit.
	_, err := c.AddFunc(cfg.Scheduler.ExpirySpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		expired, err := bookings.ExpireStale(ctx, logger)
		if err != nil {
			logger.WithError(err).Error("stale booking expiry run failed")
			return
		}
		logger.WithField("expired", expired).Info("stale booking expiry run complete")
	})
	if err != nil {
		logger.Fatalf("Error scheduling booking expiry job: %v", err)
	}

	// Hourly: refresh the cached service catalog snapshot.
	_, err = c.AddFunc(cfg.Scheduler.WarmSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		if err := catalog.Warm(ctx); err != nil {
			logger.WithError(err).Warn("catalog cache warm failed")
			return
		}
		logger.Info("catalog cache warmed")
	})
	if err != nil {
		logger.Fatalf("Error scheduling catalog warm job: %v", err)
	}

	logger.Info("cron jobs scheduled")
}
