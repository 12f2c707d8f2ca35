package meshclient

import (
	"errors"
	"net/url"
	"strings"
	"time"
)

// Config holds the API connection settings.
type Config struct {
	BaseURL       string        `mapstructure:"base_url"`
	APIKey        string        `mapstructure:"key"`
	Timeout       time.Duration `mapstructure:"timeout"`
	RetryAttempts int           `mapstructure:"retry_attempts"`
	RetryInterval time.Duration `mapstructure:"retry_interval"`
}

const (
	DefaultTimeout       = 10 * time.Second
	DefaultRetryAttempts = 3
	DefaultRetryInterval = 500 * time.Millisecond
)

func (c Config) withDefaults() Config {
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	c.APIKey = strings.TrimSpace(c.APIKey)
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.RetryAttempts <= 0 {
		c.RetryAttempts = DefaultRetryAttempts
	}
	if c.RetryInterval <= 0 {
		c.RetryInterval = DefaultRetryInterval
	}
	return c
}

func (c Config) validate() error {
	if c.BaseURL == "" {
		return errors.Join(ErrInvalidConfig, errors.New("base URL is required"))
	}
	u, err := url.ParseRequestURI(c.BaseURL)
	if err != nil {
		return errors.Join(ErrInvalidConfig, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.Join(ErrInvalidConfig, errors.New("base URL must be http or https"))
	}
	return nil
}
