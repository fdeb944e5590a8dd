package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/yourneighborhoodchef/stocksms/internal/domain"
)

// Credentials for the SMS API. Read-only after Load.
type Credentials struct {
	AccountSID string `envconfig:"TWILIO_ACCOUNT_SID" required:"true"`
	AuthToken  string `envconfig:"TWILIO_AUTH_TOKEN" required:"true"`
	From       string `envconfig:"TWILIO_FROM_NUMBER" required:"true"`
	To         string `envconfig:"TWILIO_TO_NUMBER" required:"true"`
}

// Config holds all runtime configuration loaded from environment variables.
// Credentials are embedded so their variables keep unprefixed names.
type Config struct {
	Credentials

	ProductURL        string        `envconfig:"PRODUCT_URL" default:"https://2a2d0e3f-9b06-4381-a183-f2a75519cadf.mysimplestore.com/api/v2/products/asi-bac4000-plug-and-play-kit-for-surron"`
	UserAgent         string        `envconfig:"USER_AGENT" default:"stocksms/1.0 (single product stock watcher; contact ops@stocksms.invalid; at most one request per 20s)"`
	BaselineUpdatedAt string        `envconfig:"BASELINE_UPDATED_AT" default:"2021-02-10T02:09:37.000Z"`
	PollInterval      time.Duration `envconfig:"POLL_INTERVAL" default:"20s"`
	Cooldown          time.Duration `envconfig:"COOLDOWN" default:"120s"`
	RequestTimeout    time.Duration `envconfig:"REQUEST_TIMEOUT" default:"30s"`
	ProxyURL          string        `envconfig:"PROXY_URL" default:""`

	TwilioBaseURL string `envconfig:"TWILIO_BASE_URL" default:"https://api.twilio.com"`

	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat   string `envconfig:"LOG_FORMAT" default:"json"`
	MetricsAddr string `envconfig:"METRICS_ADDR" default:""`
}

// Load reads a .env file when one exists, then the process environment.
// Missing credentials fail with an error naming the variable.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	for key, v := range map[string]string{
		"TWILIO_ACCOUNT_SID": c.AccountSID,
		"TWILIO_AUTH_TOKEN":  c.AuthToken,
		"TWILIO_FROM_NUMBER": c.From,
		"TWILIO_TO_NUMBER":   c.To,
	} {
		if v == "" {
			return fmt.Errorf("%s must not be empty", key)
		}
	}
	for key, raw := range map[string]string{"PRODUCT_URL": c.ProductURL, "TWILIO_BASE_URL": c.TwilioBaseURL} {
		u, err := url.Parse(raw)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("%s must be an absolute http(s) URL, got %q", key, raw)
		}
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("POLL_INTERVAL must be positive, got %s", c.PollInterval)
	}
	if c.Cooldown < 0 {
		return fmt.Errorf("COOLDOWN must not be negative, got %s", c.Cooldown)
	}
	if c.RequestTimeout < time.Second {
		return fmt.Errorf("REQUEST_TIMEOUT must be at least 1s, got %s", c.RequestTimeout)
	}
	switch c.LogFormat {
	case "json", "console":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.LogFormat)
	}
	return nil
}

// Baseline is the comparison value for this run.
func (c *Config) Baseline() domain.Product {
	return domain.Baseline(c.BaselineUpdatedAt)
}
