package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

var ErrMissingAPIBaseURL = errors.New("API_BASE_URL is not set")

// Config holds every tunable of the storefront client. Values come from the
// process environment, with an optional .env file loaded first.
type Config struct {
	APIBaseURL       string        `env:"API_BASE_URL"`
	ProcessorBaseURL string        `env:"PAYMENT_PROCESSOR_URL" envDefault:"https://api.stripe.com"`
	PaymentPublicKey string        `env:"PAYMENT_PUBLIC_KEY"`
	AppEnv           string        `env:"APP_ENV" envDefault:"development"`
	StateDir         string        `env:"NAILSTORE_STATE_DIR" envDefault:".nailstore"`
	Language         string        `env:"NAILSTORE_LANG" envDefault:"EN"`
	HTTPTimeout      time.Duration `env:"HTTP_TIMEOUT" envDefault:"15s"`
	RefreshInterval  time.Duration `env:"TOKEN_REFRESH_INTERVAL" envDefault:"15m"`
	RateLimit        float64       `env:"API_RATE_LIMIT" envDefault:"10"`
	RateBurst        int           `env:"API_RATE_BURST" envDefault:"20"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if cfg.APIBaseURL == "" {
		return nil, ErrMissingAPIBaseURL
	}

	return cfg, nil
}
