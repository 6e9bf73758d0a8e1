package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	Port           string   `env:"PORT" envDefault:"8080"`
	DBDriver       string   `env:"DB_DRIVER" envDefault:"postgres"`
	DBURL          string   `env:"DB_URL,required"`
	JWTSecret      string   `env:"JWT_SECRET,required"`
	JWTExpiryHours int      `env:"JWT_EXPIRY_HOURS" envDefault:"24"`
	Timezone       string   `env:"TIMEZONE" envDefault:"Local"`
	LogMode        string   `env:"LOG_MODE" envDefault:"dev"`
	CORSOrigins    []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`

	TwilioAccountSID     string `env:"TWILIO_ACCOUNT_SID"`
	TwilioAuthToken      string `env:"TWILIO_AUTH_TOKEN"`
	TwilioWhatsAppNumber string `env:"TWILIO_WHATSAPP_NUMBER"`
	ReengagementCron     string `env:"REENGAGEMENT_CRON"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	// Attempt to load .env file for local development.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	if cfg.JWTExpiryHours <= 0 {
		return nil, fmt.Errorf("JWT_EXPIRY_HOURS must be positive, got %d", cfg.JWTExpiryHours)
	}
	return cfg, nil
}

// Location resolves TIMEZONE. Day and month report windows are computed in it.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Production reports whether LOG_MODE selects production behaviour: the
// production log encoder, gin release mode and Secure auth cookies.
func (c *Config) Production() bool {
	switch strings.ToLower(c.LogMode) {
	case "prod", "production":
		return true
	}
	return false
}

// TwilioEnabled reports whether outbound reengagement messages can be sent.
func (c *Config) TwilioEnabled() bool {
	return c.TwilioAccountSID != "" && c.TwilioAuthToken != "" && c.TwilioWhatsAppNumber != ""
}
