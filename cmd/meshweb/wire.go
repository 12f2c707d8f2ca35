package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/culturemesh/meshkit/internal/server"
	"github.com/culturemesh/meshkit/pkg/avatar"
	"github.com/culturemesh/meshkit/pkg/cache"
	"github.com/culturemesh/meshkit/pkg/config"
	"github.com/culturemesh/meshkit/pkg/dates"
	"github.com/culturemesh/meshkit/pkg/events"
	"github.com/culturemesh/meshkit/pkg/health"
	"github.com/culturemesh/meshkit/pkg/job"
	"github.com/culturemesh/meshkit/pkg/mesh"
	"github.com/culturemesh/meshkit/pkg/meshclient"
	"github.com/culturemesh/meshkit/pkg/redis"
	"github.com/culturemesh/meshkit/pkg/sourcecache"
	"github.com/culturemesh/meshkit/pkg/storage"
)

const warmTask = "warm-events"

// upstream is what meshweb needs from the API or its fixture stand-in.
type upstream interface {
	events.Source
	server.Users
	Ping(ctx context.Context) error
}

var (
	_ upstream = (*meshclient.Client)(nil)
	_ upstream = (*meshclient.Memory)(nil)
)

func openUpstream(cfg config.Config, log *slog.Logger) (upstream, error) {
	if cfg.API.BaseURL != "" {
		client, err := meshclient.New(cfg.API, meshclient.WithLogger(log))
		if err != nil {
			return nil, err
		}
		return client, nil
	}

	if cfg.Fixtures == "" {
		return nil, fmt.Errorf("%w: set api.base_url or fixtures", config.ErrInvalidConfig)
	}

	m, err := meshclient.LoadFixturesFile(cfg.Fixtures)
	if err != nil {
		return nil, err
	}
	log.Warn("serving fixtures instead of the API", slog.String("file", cfg.Fixtures))
	return m, nil
}

// newParser reads naive dates as UTC unless events.strict_offset is set.
func newParser(cfg config.Config) dates.Parser {
	if cfg.Events.StrictOffset {
		return dates.New(dates.WithStrictOffset())
	}
	return dates.New()
}

type cacheSet struct {
	networks cache.Cache[[]mesh.Network]
	events   cache.Cache[[]mesh.Event]
	checks   health.Checks
	close    server.Hook
}

func openCaches(ctx context.Context, cfg config.Config, reg prometheus.Registerer, log *slog.Logger) (*cacheSet, error) {
	if cfg.Cache.Driver == config.DriverRedis {
		client, err := redis.Open(ctx, cfg.Cache.RedisURL, redis.WithLogger(log))
		if err != nil {
			return nil, err
		}
		return &cacheSet{
			networks: cache.NewRedis[[]mesh.Network](client, cache.JSON[[]mesh.Network]{},
				cache.WithPrefix(cfg.Cache.Prefix+":networks")),
			events: cache.NewRedis[[]mesh.Event](client, cache.JSON[[]mesh.Event]{},
				cache.WithPrefix(cfg.Cache.Prefix+":events")),
			checks: health.Checks{"redis": redis.Healthcheck(client)},
			close:  redis.Closer(client),
		}, nil
	}

	networks := cache.NewMemory[[]mesh.Network](
		cache.WithMaxEntries(cfg.Cache.MaxEntries),
		cache.WithDefaultTTL(cfg.Cache.TTL),
	)
	evs := cache.NewMemory[[]mesh.Event](
		cache.WithMaxEntries(cfg.Cache.MaxEntries),
		cache.WithDefaultTTL(cfg.Cache.TTL),
	)
	if err := errors.Join(
		registerCacheStats(reg, "networks", networks),
		registerCacheStats(reg, "events", evs),
	); err != nil {
		return nil, errors.Join(err, networks.Close(), evs.Close())
	}

	return &cacheSet{
		networks: networks,
		events:   evs,
		close: func(context.Context) error {
			return errors.Join(networks.Close(), evs.Close())
		},
	}, nil
}

type statser interface {
	Stats() cache.Stats
}

// registerCacheStats exposes the counters of an in-memory cache as
// meshweb_cache_* series labelled with the cache name.
func registerCacheStats(reg prometheus.Registerer, name string, c statser) error {
	labels := prometheus.Labels{"cache": name}
	counter := func(metric, help string, read func(cache.Stats) uint64) prometheus.Collector {
		return prometheus.NewCounterFunc(prometheus.CounterOpts{
			Namespace:   "meshweb",
			Subsystem:   "cache",
			Name:        metric,
			Help:        help,
			ConstLabels: labels,
		}, func() float64 { return float64(read(c.Stats())) })
	}

	collectors := []prometheus.Collector{
		counter("hits_total", "Cache lookups that found a live entry",
			func(s cache.Stats) uint64 { return s.Hits }),
		counter("misses_total", "Cache lookups that found nothing",
			func(s cache.Stats) uint64 { return s.Misses }),
		counter("evictions_total", "Entries dropped to stay under the entry limit",
			func(s cache.Stats) uint64 { return s.Evictions }),
		counter("expirations_total", "Entries dropped after their TTL",
			func(s cache.Stats) uint64 { return s.Expirations }),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace:   "meshweb",
			Subsystem:   "cache",
			Name:        "entries",
			Help:        "Entries currently stored",
			ConstLabels: labels,
		}, func() float64 { return float64(c.Stats().Entries) }),
	}

	for _, col := range collectors {
		if err := reg.Register(col); err != nil {
			return fmt.Errorf("cache %s metrics: %w", name, err)
		}
	}
	return nil
}

func openAvatars(cfg config.Config, log *slog.Logger) (*avatar.Resolver, error) {
	opts := []avatar.Option{
		avatar.WithBlankURL(cfg.Images.BlankURL),
		avatar.WithURLFormat(cfg.Images.URLFormat),
		avatar.WithLogger(log),
	}
	if cfg.UseS3() {
		store, err := storage.New(cfg.Images.S3)
		if err != nil {
			return nil, err
		}
		opts = append(opts, avatar.WithStore(store))
	}
	return avatar.New(opts...)
}

// warmer refetches configured networks into the cache on a schedule.
type warmer struct {
	sched *job.Scheduler
	log   *slog.Logger
}

// openScheduler returns nil when no warming is configured.
func openScheduler(cfg config.Config, src *sourcecache.Source, log *slog.Logger) (*warmer, error) {
	if cfg.Cache.WarmSchedule == "" || len(cfg.Cache.WarmNetworks) == 0 {
		return nil, nil
	}

	sched := job.New(job.WithLogger(log))
	ids := cfg.Cache.WarmNetworks

	err := sched.Add(warmTask, cfg.Cache.WarmSchedule, func(ctx context.Context) error {
		var errs []error
		for _, id := range ids {
			if err := src.RefreshNetworkEvents(ctx, mesh.ID(id), events.NetworkEventLimit); err != nil {
				errs = append(errs, fmt.Errorf("network %d: %w", id, err))
			}
		}
		return errors.Join(errs...)
	})
	if err != nil {
		return nil, err
	}

	return &warmer{sched: sched, log: log}, nil
}

// start warms once before serving. A failed warm-up is logged, not fatal.
func (w *warmer) start(ctx context.Context) error {
	if err := w.sched.Run(ctx, warmTask); err != nil {
		w.log.WarnContext(ctx, "initial cache warm-up failed", slog.Any("error", err))
	}
	return w.sched.Start(ctx)
}

func (w *warmer) stop(ctx context.Context) error {
	return w.sched.Stop(ctx)
}

func (w *warmer) check(ctx context.Context) error {
	return job.Healthcheck(w.sched)(ctx)
}
