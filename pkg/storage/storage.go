package storage

import (
	"context"
	"errors"
	"strings"
)

// URLer resolves object keys to URLs.
type URLer interface {
	URL(ctx context.Context, key string, opts ...URLOption) (string, error)
}

// Config holds S3-compatible bucket settings.
type Config struct {
	Bucket    string `mapstructure:"bucket"`
	Region    string `mapstructure:"region"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`

	// Endpoint overrides the AWS endpoint, e.g. for MinIO or R2.
	Endpoint string `mapstructure:"endpoint"`

	// PathStyle addresses the bucket as {endpoint}/{bucket}/{key}.
	PathStyle bool `mapstructure:"path_style"`

	// PublicURL is a CDN prefix used for unsigned URLs.
	PublicURL string `mapstructure:"public_url"`

	// PublicRead makes URL return unsigned URLs unless WithSigned is given.
	PublicRead bool `mapstructure:"public_read"`
}

const DefaultRegion = "us-east-1"

func (c *Config) applyDefaults() {
	c.Bucket = strings.TrimSpace(c.Bucket)
	c.Endpoint = strings.TrimRight(strings.TrimSpace(c.Endpoint), "/")
	c.PublicURL = strings.TrimRight(strings.TrimSpace(c.PublicURL), "/")
	if c.Region == "" {
		c.Region = DefaultRegion
	}
}

func (c *Config) validate() error {
	var errs []error
	if c.Bucket == "" {
		errs = append(errs, errors.New("bucket is required"))
	}
	if c.AccessKey == "" || c.SecretKey == "" {
		errs = append(errs, errors.New("access key and secret key are required"))
	}
	if len(errs) > 0 {
		return errors.Join(append([]error{ErrInvalidConfig}, errs...)...)
	}
	return nil
}
