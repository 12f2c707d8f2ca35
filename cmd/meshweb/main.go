// Command meshweb serves upcoming CultureMesh events over HTTP.
//
// Configuration comes from an optional YAML file and MESHKIT_* environment
// variables:
//
//	meshweb -config meshweb.yaml
//	MESHKIT_API_BASE_URL=https://www.culturemesh.com/api/v1 MESHKIT_API_KEY=... meshweb
//	MESHKIT_FIXTURES=fixtures.yaml meshweb
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/culturemesh/meshkit/internal/server"
	"github.com/culturemesh/meshkit/pkg/config"
	"github.com/culturemesh/meshkit/pkg/events"
	"github.com/culturemesh/meshkit/pkg/health"
	"github.com/culturemesh/meshkit/pkg/logger"
	"github.com/culturemesh/meshkit/pkg/sourcecache"
	"github.com/culturemesh/meshkit/pkg/timeago"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintln(os.Stderr, "meshweb:", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	var opts []config.Option
	if configPath != "" {
		opts = append(opts, config.WithFile(configPath))
	}
	cfg, err := config.Load(opts...)
	if err != nil {
		return err
	}

	log := logger.New(cfg.Log, logger.RequestIDExtractor, logger.UserIDExtractor).With(slog.String("app", "meshweb"))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		checks        = health.Checks{}
		shutdownHooks []server.Hook
	)

	up, err := openUpstream(cfg, log)
	if err != nil {
		return err
	}
	checks["upstream"] = up.Ping

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	caches, err := openCaches(ctx, cfg, reg, log)
	if err != nil {
		return err
	}
	for name, check := range caches.checks {
		checks[name] = check
	}
	shutdownHooks = append(shutdownHooks, caches.close)

	src := sourcecache.New(up, caches.networks, caches.events,
		sourcecache.WithTTL(cfg.Cache.TTL),
		sourcecache.WithLogger(log),
	)

	parser := newParser(cfg)
	agg := events.New(src,
		events.WithParser(parser),
		events.WithConcurrency(cfg.Events.Concurrency),
		events.WithLogger(log),
	)

	avatars, err := openAvatars(cfg, log)
	if err != nil {
		return err
	}

	sched, err := openScheduler(cfg, src, log)
	if err != nil {
		return err
	}

	runOpts := []server.RunOption{
		server.WithAddr(cfg.HTTP.Addr),
		server.WithLogger(log),
		server.WithShutdownTimeout(cfg.HTTP.ShutdownTimeout),
	}
	if sched != nil {
		checks["scheduler"] = sched.check
		runOpts = append(runOpts, server.WithStartupHook(sched.start))
		shutdownHooks = append([]server.Hook{sched.stop}, shutdownHooks...)
	}
	shutdownHooks = append(shutdownHooks, func(context.Context) error {
		logger.Flush(2 * time.Second)
		return nil
	})
	for _, h := range shutdownHooks {
		runOpts = append(runOpts, server.WithShutdownHook(h))
	}

	handler := server.New(server.Deps{
		Aggregator:     agg,
		Networks:       src,
		Users:          up,
		Avatars:        avatars,
		Formatter:      timeago.New(timeago.WithParser(parser), timeago.WithLogger(log)),
		Parser:         parser,
		Logger:         log,
		Checks:         checks,
		OptionalChecks: []string{"upstream"},
		Metrics:        reg,
	})

	return server.Run(ctx, handler, runOpts...)
}
