package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/culturemesh/meshkit/pkg/avatar"
	"github.com/culturemesh/meshkit/pkg/logger"
	"github.com/culturemesh/meshkit/pkg/meshclient"
	"github.com/culturemesh/meshkit/pkg/storage"
)

const envPrefix = "MESHKIT"

// Cache drivers.
const (
	DriverMemory = "memory"
	DriverRedis  = "redis"
)

// Config is the complete meshkit configuration.
type Config struct {
	HTTP   HTTPConfig        `mapstructure:"http"`
	API    meshclient.Config `mapstructure:"api"`
	Cache  CacheConfig       `mapstructure:"cache"`
	Images ImagesConfig      `mapstructure:"images"`
	Log    logger.Config     `mapstructure:"log"`
	Events EventsConfig      `mapstructure:"events"`

	// Fixtures is a YAML fixtures file served instead of the API when
	// api.base_url is empty.
	Fixtures string `mapstructure:"fixtures"`
}

type HTTPConfig struct {
	Addr            string        `mapstructure:"addr"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type CacheConfig struct {
	// Driver is memory or redis.
	Driver     string        `mapstructure:"driver"`
	TTL        time.Duration `mapstructure:"ttl"`
	MaxEntries int           `mapstructure:"max_entries"`
	RedisURL   string        `mapstructure:"redis_url"`
	Prefix     string        `mapstructure:"prefix"`

	// WarmSchedule is a cron expression; on each tick the events of
	// WarmNetworks are refetched into the cache.
	WarmSchedule string  `mapstructure:"warm_schedule"`
	WarmNetworks []int64 `mapstructure:"warm_networks"`
}

type ImagesConfig struct {
	BlankURL  string         `mapstructure:"blank_url"`
	URLFormat string         `mapstructure:"url_format"`
	S3        storage.Config `mapstructure:"s3"`
}

type EventsConfig struct {
	// Concurrency is how many networks are fetched at once per user.
	Concurrency int `mapstructure:"concurrency"`

	// StrictOffset rejects event and join dates that carry no UTC offset
	// instead of reading them as UTC.
	StrictOffset bool `mapstructure:"strict_offset"`
}

// Option configures Load.
type Option func(*loadSettings)

type loadSettings struct {
	file string
}

// WithFile merges a YAML file over the defaults. A missing file is an error.
func WithFile(path string) Option {
	return func(s *loadSettings) {
		s.file = strings.TrimSpace(path)
	}
}

// Load resolves and validates the configuration.
func Load(opts ...Option) (Config, error) {
	var s loadSettings
	for _, opt := range opts {
		opt(&s)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if s.file != "" {
		if err := mergeFile(v, s.file); err != nil {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, errors.Join(ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func mergeFile(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Join(ErrReadFile, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := v.MergeConfig(bytes.NewReader(data)); err != nil {
		return errors.Join(ErrReadFile, fmt.Errorf("parse %s: %w", path, err))
	}
	return nil
}

// Every key needs a default, otherwise AutomaticEnv cannot see it during
// Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.shutdown_timeout", 10*time.Second)

	v.SetDefault("api.base_url", "")
	v.SetDefault("api.key", "")
	v.SetDefault("api.timeout", meshclient.DefaultTimeout)
	v.SetDefault("api.retry_attempts", meshclient.DefaultRetryAttempts)
	v.SetDefault("api.retry_interval", meshclient.DefaultRetryInterval)

	v.SetDefault("cache.driver", DriverMemory)
	v.SetDefault("cache.ttl", 5*time.Minute)
	v.SetDefault("cache.max_entries", 10_000)
	v.SetDefault("cache.redis_url", "")
	v.SetDefault("cache.prefix", "meshkit")
	v.SetDefault("cache.warm_schedule", "")
	v.SetDefault("cache.warm_networks", []int64{})

	v.SetDefault("fixtures", "")

	v.SetDefault("images.blank_url", avatar.DefaultBlankURL)
	v.SetDefault("images.url_format", avatar.DefaultURLFormat)
	v.SetDefault("images.s3.bucket", "")
	v.SetDefault("images.s3.region", "")
	v.SetDefault("images.s3.access_key", "")
	v.SetDefault("images.s3.secret_key", "")
	v.SetDefault("images.s3.endpoint", "")
	v.SetDefault("images.s3.path_style", false)
	v.SetDefault("images.s3.public_url", "")
	v.SetDefault("images.s3.public_read", false)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.sentry_dsn", "")
	v.SetDefault("log.sentry_environment", "")

	v.SetDefault("events.concurrency", 4)
	v.SetDefault("events.strict_offset", false)
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error

	switch c.Cache.Driver {
	case DriverMemory:
	case DriverRedis:
		if c.Cache.RedisURL == "" {
			errs = append(errs, errors.New("cache.redis_url is required for the redis driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("cache.driver %q is not memory or redis", c.Cache.Driver))
	}
	if c.Cache.TTL < 0 {
		errs = append(errs, errors.New("cache.ttl must not be negative"))
	}
	if len(c.Cache.WarmNetworks) > 0 && strings.TrimSpace(c.Cache.WarmSchedule) == "" {
		errs = append(errs, errors.New("cache.warm_schedule is required when cache.warm_networks is set"))
	}
	for _, id := range c.Cache.WarmNetworks {
		if id <= 0 {
			errs = append(errs, fmt.Errorf("cache.warm_networks: %d is not a network id", id))
		}
	}
	if c.Events.Concurrency < 1 {
		errs = append(errs, errors.New("events.concurrency must be at least 1"))
	}
	if f := strings.ToLower(c.Log.Format); f != "json" && f != "text" {
		errs = append(errs, fmt.Errorf("log.format %q is not json or text", c.Log.Format))
	}
	if c.Images.S3.Bucket == "" && strings.Count(c.Images.URLFormat, "%s") != 1 {
		errs = append(errs, errors.New("images.url_format must contain exactly one %s"))
	}

	if len(errs) > 0 {
		return errors.Join(append([]error{ErrInvalidConfig}, errs...)...)
	}
	return nil
}

// UseS3 reports whether profile images are served from a bucket.
func (c Config) UseS3() bool {
	return c.Images.S3.Bucket != ""
}
