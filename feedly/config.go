package feedly

import (
	"fmt"
	"net/url"
	"time"

	"github.com/kelseyhightower/envconfig"

	apierrors "github.com/olgasafonova/feedly-go/internal/errors"
)

const (
	// DefaultBaseURL is the Feedly Cloud API root
	DefaultBaseURL = "https://cloud.feedly.com"

	// DefaultTimeout bounds each HTTP request
	DefaultTimeout = 30 * time.Second

	// DefaultUserAgent is sent when Config.UserAgent is empty
	DefaultUserAgent = "feedly-go/1.0"

	// EnvPrefix is the prefix for environment variables read by LoadConfig
	EnvPrefix = "FEEDLY"
)

// Config holds client settings. It is copied into the Client and never changed afterwards.
type Config struct {
	// AccessToken is sent as "Authorization: OAuth <token>". Empty sends no Authorization header.
	AccessToken string `envconfig:"ACCESS_TOKEN"`

	// BaseURL is joined with the endpoint paths, e.g. https://cloud.feedly.com
	BaseURL string `envconfig:"BASE_URL" default:"https://cloud.feedly.com"`

	Timeout    time.Duration `envconfig:"TIMEOUT" default:"30s"`
	UserAgent  string        `envconfig:"USER_AGENT" default:"feedly-go/1.0"`
	MaxRetries int           `envconfig:"MAX_RETRIES" default:"0"`
}

// LoadConfig reads FEEDLY_ACCESS_TOKEN, FEEDLY_BASE_URL, FEEDLY_TIMEOUT,
// FEEDLY_USER_AGENT and FEEDLY_MAX_RETRIES from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// withDefaults fills zero fields with their defaults
func (c Config) withDefaults() Config {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
	if c.UserAgent == "" {
		c.UserAgent = DefaultUserAgent
	}
	return c
}

// Validate checks the config after defaults are applied.
// The access token is never inspected.
func (c Config) Validate() error {
	c = c.withDefaults()

	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return apierrors.NewValidationError("base_url", c.BaseURL, "must be an absolute http or https URL")
	}
	if c.Timeout < 0 {
		return apierrors.NewValidationError("timeout", c.Timeout.String(), "must not be negative")
	}
	if c.MaxRetries < 0 {
		return apierrors.NewValidationError("max_retries", fmt.Sprintf("%d", c.MaxRetries), "must not be negative")
	}
	return nil
}
