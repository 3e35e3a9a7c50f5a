package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	"cinemax/internal/api"
	"cinemax/internal/auth"
	"cinemax/internal/cart"
	"cinemax/internal/cart/storage"
	"cinemax/internal/catalog"
	"cinemax/internal/checkout"
	"cinemax/internal/config"
	"cinemax/internal/coupon"
	"cinemax/internal/kafka"
	"cinemax/internal/logger"
	"cinemax/internal/orders/db"
	"cinemax/internal/tickets/qr"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	log := logger.NewLogger()
	defer log.Close()

	ctx := context.Background()

	// --- SQLite Setup ---
	sqldb, err := sql.Open(sqliteshim.ShimName, cfg.Database.Path)
	if err != nil {
		log.Fatal("DATABASE", fmt.Sprintf("Failed to open database: %v", err))
	}
	defer sqldb.Close()

	bunDB := bun.NewDB(sqldb, sqlitedialect.New())
	db.Migrate(bunDB)
	ordersDB := &db.DB{Bun: bunDB, Logger: log}

	// --- Cart Persistence ---
	// Redis mirrors the browser localStorage side channel. When it is
	// disabled or unreachable the cart falls back to memory-only state.
	var cartStorage cart.Storage = storage.NewMemory()
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Warn("REDIS", fmt.Sprintf("Redis unreachable (%v), cart state is memory-only", err))
		} else {
			sessionID := os.Getenv("CART_SESSION_ID")
			if sessionID == "" {
				sessionID = uuid.NewString()
			}
			cartStorage = storage.NewRedis(redisClient, sessionID, log)
			log.Info("REDIS", fmt.Sprintf("Cart persistence on %s (session %s)", cfg.Redis.Addr, sessionID))
		}
	}

	// --- Kafka Setup ---
	var publisher kafka.Publisher = kafka.NewMockProducer(log)
	if cfg.Kafka.Enabled && !cfg.Kafka.MockMode {
		if err := kafka.EnsureTopicExists(cfg.Kafka.Brokers, cfg.Kafka.OrderTopic); err != nil {
			log.Warn("KAFKA", fmt.Sprintf("Topic bootstrap failed: %v", err))
		}
		publisher = kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.OrderTopic, log)
	}
	defer publisher.Close()

	// --- Core Services ---
	movieCatalog := catalog.NewDefault()
	couponRegistry := coupon.NewDefault()

	cartSvc := cart.NewService(movieCatalog, couponRegistry, cartStorage, log, cart.Options{
		ConvenienceFee: cfg.Pricing.ConvenienceFee,
		TaxRate:        cfg.Pricing.TaxRate,
		FeeWaiverCode:  cfg.Pricing.FeeWaiverCode,
	})

	authStore := auth.NewStore(ordersDB, log, cfg.Auth.LoginDelay)
	tokens := auth.NewTokenManager(cfg.Auth.TokenSecret, cfg.Auth.TokenTTL)

	checkoutSvc := checkout.NewService(cartSvc, authStore, publisher, log, cfg.Pricing.CheckoutDelay)
	checkoutSvc.Tickets = qr.NewGenerator(cfg.Auth.TokenSecret)

	handler := &api.Handler{
		Cart:     cartSvc,
		Checkout: checkoutSvc,
		Auth:     authStore,
		Tokens:   tokens,
		Catalog:  movieCatalog,
		Logger:   log,
	}

	// --- HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      handler.Routes(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("SERVER", fmt.Sprintf("Storefront running on %s", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("SERVER", fmt.Sprintf("HTTP server error: %v", err))
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("SERVER", "Shutdown signal received, cleaning up")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Fatal("SERVER", fmt.Sprintf("Forced to shutdown: %v", err))
	}

	log.Info("SERVER", "Server exited gracefully")
}
