package config

import (
	"errors"
	"os"
	"strconv"
	"time"
)

// Config carries every value the service reads from the environment.
// Required values are validated in main (fail fast); everything here
// only applies defaults for the optional ones.
type Config struct {
	ListenAddr     string
	RestaurantName string

	MenuFile      string
	MenuObjectKey string // optional: fetch menu from R2 instead of disk

	TaxRate       float64
	ReadyOffset   time.Duration
	SubmitTimeout time.Duration

	WebhookURL string

	DatabaseURL       string // optional: empty means in-memory archive
	AdminPasswordHash string
}

// Required env vars checked by cmd/api before anything else starts.
var Required = []string{
	"ORDER_WEBHOOK_URL",
	"JWT_SECRET",
	"ADMIN_PASSWORD_HASH",
}

func Load() (*Config, error) {
	cfg := &Config{
		ListenAddr:        getEnv("LISTEN_ADDR", ":8000"),
		RestaurantName:    getEnv("RESTAURANT_NAME", "Oishii Sushi Windsor"),
		MenuFile:          getEnv("MENU_FILE", "docs/menu.json"),
		MenuObjectKey:     os.Getenv("MENU_OBJECT_KEY"),
		WebhookURL:        os.Getenv("ORDER_WEBHOOK_URL"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
	}

	var err error

	// Ontario HST unless overridden
	if cfg.TaxRate, err = getFloat("TAX_RATE", 0.13); err != nil {
		return nil, err
	}
	if cfg.TaxRate < 0 {
		return nil, errors.New("TAX_RATE must be non-negative")
	}

	readyMinutes, err := getInt("READY_TIME_MINUTES", 20)
	if err != nil {
		return nil, err
	}
	cfg.ReadyOffset = time.Duration(readyMinutes) * time.Minute

	submitSeconds, err := getInt("SUBMIT_TIMEOUT_SECONDS", 10)
	if err != nil {
		return nil, err
	}
	cfg.SubmitTimeout = time.Duration(submitSeconds) * time.Second

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getFloat(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, errors.New(key + " is not a number: " + v)
	}
	return f, nil
}

func getInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errors.New(key + " is not an integer: " + v)
	}
	return n, nil
}
