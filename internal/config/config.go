package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type Config struct {
	HTTPAddr string     `env:"HTTP_ADDR" envDefault:":8080"`
	DBPath   string     `env:"DB_PATH" envDefault:"data/cardtalk.db"`
	LogLevel slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`
	SPADir   string     `env:"SPA_DIR" envDefault:"../web/dist"`

	// FreeDailyLimit is the number of draws a non-premium user gets per
	// calendar day.
	FreeDailyLimit int `env:"FREE_DAILY_LIMIT" envDefault:"10"`
	// DeckSize caps the shuffled working set offered per draw session.
	DeckSize int `env:"DECK_SIZE" envDefault:"12"`
	// MaxLinks bounds the link collection (1..10).
	MaxLinks int `env:"MAX_LINKS" envDefault:"5"`

	// ProxyBaseURL is the CORS-bypass HTML mirror; the target URL is
	// appended query-encoded.
	ProxyBaseURL string        `env:"PROXY_BASE_URL" envDefault:"https://api.allorigins.win/get?url="`
	FetchTimeout time.Duration `env:"FETCH_TIMEOUT" envDefault:"10s"`

	// PremiumCodeHash is the bcrypt hash of the premium activation code.
	// Empty disables activation.
	PremiumCodeHash string `env:"PREMIUM_CODE_HASH"`
}

// Validate checks the parsed configuration.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.HTTPAddr, validation.Required),
		validation.Field(&c.DBPath, validation.Required),
		validation.Field(&c.FreeDailyLimit, validation.Required, validation.Min(1)),
		validation.Field(&c.DeckSize, validation.Required, validation.Min(1)),
		validation.Field(&c.MaxLinks, validation.Required, validation.Min(1), validation.Max(10)),
		validation.Field(&c.ProxyBaseURL, validation.Required),
		validation.Field(&c.FetchTimeout, validation.Required, validation.Min(time.Second)),
	)
}

func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return &cfg, nil
}
