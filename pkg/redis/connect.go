package redis

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"time"

	"github.com/redis/go-redis/v9"
)

// Open connects to the Redis server at rawURL and returns a client once the
// server answers PING. Only the redis and rediss schemes are accepted.
func Open(ctx context.Context, rawURL string, opts ...Option) (redis.UniversalClient, error) {
	if rawURL == "" {
		return nil, ErrEmptyURL
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	ro, err := clientOptions(rawURL, o)
	if err != nil {
		return nil, err
	}

	return dial(ctx, ro, o)
}

func clientOptions(rawURL string, o *options) (*redis.Options, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, errors.Join(ErrInvalidURL, err)
	}
	if u.Scheme != "redis" && u.Scheme != "rediss" {
		return nil, ErrInvalidURL
	}

	ro, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, errors.Join(ErrInvalidURL, err)
	}

	ro.PoolSize = o.poolSize
	ro.MinIdleConns = o.minIdle
	ro.ConnMaxIdleTime = o.connMaxIdle
	ro.DialTimeout = o.dialTimeout
	ro.ReadTimeout = o.ioTimeout
	ro.WriteTimeout = o.ioTimeout

	return ro, nil
}

func dial(ctx context.Context, ro *redis.Options, o *options) (redis.UniversalClient, error) {
	attempts := max(o.attempts, 1)

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		client := redis.NewClient(ro)

		lastErr = client.Ping(ctx).Err()
		if lastErr == nil {
			return client, nil
		}
		_ = client.Close()

		o.logger.WarnContext(ctx, "redis ping failed",
			slog.String("addr", ro.Addr),
			slog.Int("attempt", attempt),
			slog.Int("attempts", attempts),
			slog.Any("error", lastErr),
		)

		if attempt == attempts {
			break
		}
		if err := sleep(ctx, backoffFor(attempt, o.backoff)); err != nil {
			return nil, errors.Join(ErrUnreachable, err)
		}
	}

	return nil, errors.Join(ErrUnreachable, lastErr)
}

// backoffFor grows linearly with the attempt number.
func backoffFor(attempt int, base time.Duration) time.Duration {
	return time.Duration(attempt) * base
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
