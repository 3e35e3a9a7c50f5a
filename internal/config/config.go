package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server   ServerConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Pricing  PricingConfig
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type RedisConfig struct {
	Addr    string
	Enabled bool
}

type KafkaConfig struct {
	Brokers    []string
	OrderTopic string
	MockMode   bool
	Enabled    bool
}

type DatabaseConfig struct {
	Path string
}

type AuthConfig struct {
	TokenSecret string
	TokenTTL    time.Duration
	// LoginDelay simulates the network round trip of the mock auth backend.
	LoginDelay time.Duration
}

type PricingConfig struct {
	// ConvenienceFee is the flat per-order fee added after discounts.
	ConvenienceFee float64
	// TaxRate applies to subtotal minus discount. Ticket sales are untaxed
	// by default but the computation stays generic over a nonzero rate.
	TaxRate float64
	// FeeWaiverCode is the coupon code that zeroes the convenience fee.
	FeeWaiverCode string
	// CheckoutDelay simulates payment-gateway latency.
	CheckoutDelay time.Duration
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", ":8080"),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		Redis: RedisConfig{
			Addr:    getEnv("REDIS_ADDR", "localhost:6379"),
			Enabled: getEnvBool("REDIS_ENABLED", true),
		},
		Kafka: KafkaConfig{
			Brokers:    []string{getEnv("KAFKA_BROKERS", "localhost:9092")},
			OrderTopic: getEnv("KAFKA_TOPIC_ORDERS", "order-confirmed"),
			Enabled:    getEnvBool("KAFKA_ENABLED", false),
			MockMode:   getEnvBool("KAFKA_MOCK_MODE", true),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "storefront.db"),
		},
		Auth: AuthConfig{
			TokenSecret: getEnv("AUTH_TOKEN_SECRET", "cinemax-dev-secret"),
			TokenTTL:    time.Duration(getEnvInt("AUTH_TOKEN_TTL_HOURS", 24)) * time.Hour,
			LoginDelay:  time.Duration(getEnvInt("AUTH_LOGIN_DELAY_MS", 1000)) * time.Millisecond,
		},
		Pricing: PricingConfig{
			ConvenienceFee: getEnvFloat("CONVENIENCE_FEE", 5.00),
			TaxRate:        getEnvFloat("TAX_RATE", 0.0),
			FeeWaiverCode:  getEnv("FEE_WAIVER_CODE", "FRETE"),
			CheckoutDelay:  time.Duration(getEnvInt("CHECKOUT_DELAY_MS", 2000)) * time.Millisecond,
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}
