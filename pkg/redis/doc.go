// Package redis opens the go-redis client used by the shared event cache.
//
// [Open] parses a redis:// or rediss:// URL, applies pool and timeout
// options, and pings the server until it answers or the retry budget runs
// out. Between attempts it waits attempt*backoff, so the default budget of
// three attempts with a two second backoff gives up after roughly six seconds.
//
//	client, err := redis.Open(ctx, cfg.Cache.RedisURL,
//		redis.WithPool(20, 2),
//		redis.WithLogger(log),
//	)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
// [Healthcheck] adapts any client to the func(context.Context) error shape
// the HTTP server uses for its /healthz endpoint, and [Closer] does the same
// for shutdown hooks.
package redis
