package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config carries all runtime settings. Values come from the environment;
// every field has a development default except DatabaseURL, which the
// Postgres entrypoint requires explicitly.
type Config struct {
	Addr        string
	MetricsAddr string

	DatabaseURL string
	JWTSecret   string
	TokenTTL    time.Duration

	KafkaBrokers []string

	PaymentBaseURL string
	PaymentAPIKey  string

	TaxRate         float64
	ShippingFee     float64
	FreeShippingMin float64
}

func Load() Config {
	return Config{
		Addr:        getenv("STOREFRONT_ADDR", ":8080"),
		MetricsAddr: os.Getenv("METRICS_ADDR"),

		DatabaseURL: os.Getenv("DATABASE_URL"),
		JWTSecret:   getenv("JWT_SECRET", "dev-secret"),
		TokenTTL:    time.Duration(getenvInt("TOKEN_TTL_HOURS", 72)) * time.Hour,

		KafkaBrokers: splitCSV(os.Getenv("KAFKA_BROKERS")),

		PaymentBaseURL: strings.TrimRight(os.Getenv("PAYMENT_BASE_URL"), "/"),
		PaymentAPIKey:  os.Getenv("PAYMENT_API_KEY"),

		TaxRate:         getenvFloat("TAX_RATE", 0.10),
		ShippingFee:     getenvFloat("SHIPPING_FEE", 10),
		FreeShippingMin: getenvFloat("FREE_SHIPPING_MIN", 100),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getenvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func splitCSV(raw string) []string {
	if raw == "" {
		return nil
	}
	out := make([]string, 0)
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
