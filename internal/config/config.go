package config

import (
	"os"
	"time"
)

type Config struct {
	Addr        string
	DatabaseURL string
	RedisAddr   string
	JWTSecret   string

	// TxTimeout bounds every database transaction. A transaction that
	// exceeds it is rolled back and surfaces as a storage error.
	TxTimeout time.Duration

	// RestockOnCancel controls whether cancelling an order returns its
	// items to product stock.
	RestockOnCancel bool

	// Email settings for SES. Leaving SenderEmail empty disables
	// outbound mail; the server then logs instead of sending.
	AWSRegion    string
	AWSAccessKey string
	AWSSecretKey string
	SenderEmail  string
}

func Load() Config {
	cfg := Config{
		Addr:        getenv("SHOP_ADDR", ":8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisAddr:   getenv("REDIS_ADDR", "localhost:6379"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		TxTimeout:   5 * time.Second,

		AWSRegion:    getenv("AWS_REGION", "us-east-1"),
		AWSAccessKey: os.Getenv("AWS_ACCESS_KEY_ID"),
		AWSSecretKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		SenderEmail:  os.Getenv("SENDER_EMAIL"),
	}

	if v := os.Getenv("DB_TX_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.TxTimeout = d
		}
	}
	if os.Getenv("RESTOCK_ON_CANCEL") == "1" {
		cfg.RestockOnCancel = true
	}

	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
