package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	AppEnv   string
	LogLevel string

	HTTPPort int

	CommerceBaseURL string
	RecipeBaseURL   string

	RequestTimeout time.Duration
	UpstreamRPS    float64
	UpstreamBurst  int

	DeliveryFee         decimal.Decimal
	CheckoutConcurrency int
	DefaultUserID       int
}

// Load reads the process environment. Values from ENV_FILE (default ".env") fill in
// variables that are not already set; a missing file is not an error.
func Load() Config {
	_ = godotenv.Load(getEnv("ENV_FILE", ".env"))

	return Config{
		AppEnv:              getEnv("APP_ENV", "dev"),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		HTTPPort:            getEnvInt("HTTP_PORT", 8080),
		CommerceBaseURL:     getEnv("COMMERCE_BASE_URL", "https://fakestoreapi.com"),
		RecipeBaseURL:       getEnv("RECIPE_BASE_URL", "https://www.themealdb.com/api/json/v1/1"),
		RequestTimeout:      getEnvDuration("REQUEST_TIMEOUT", 10*time.Second),
		UpstreamRPS:         getEnvFloat("UPSTREAM_RPS", 5),
		UpstreamBurst:       getEnvInt("UPSTREAM_BURST", 10),
		DeliveryFee:         getEnvDecimal("DELIVERY_FEE", decimal.RequireFromString("25.00")),
		CheckoutConcurrency: getEnvInt("CHECKOUT_CONCURRENCY", 10),
		DefaultUserID:       getEnvInt("DEFAULT_USER_ID", 1),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)

	if v == "" {
		return def
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}

	return n
}

func getEnvFloat(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f <= 0 {
		return def
	}
	return f
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

func getEnvDecimal(key string, def decimal.Decimal) decimal.Decimal {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := decimal.NewFromString(v)
	if err != nil || d.IsNegative() {
		return def
	}
	return d
}
