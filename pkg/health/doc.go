// Package health serves liveness and readiness probes.
//
// A readiness probe runs named checks in parallel under a shared timeout:
//
//	r.Get("/livez", health.Live())
//	r.Get("/readyz", health.Ready(health.Checks{
//	    "redis":     redis.Healthcheck(client),
//	    "scheduler": job.Healthcheck(sched),
//	    "upstream":  client.Ping,
//	}, health.WithOptional("upstream"), health.WithLogger(log)))
//
// A failing required check makes the service unhealthy (503). A failing
// optional check only degrades it (200), which suits dependencies whose
// outage a cache can ride out.
//
// Responses are plain text unless the client sends Accept: application/json
// or ?format=json:
//
//	{
//	  "status": "degraded",
//	  "checks": {
//	    "redis":    {"status": "healthy", "duration_ms": 1},
//	    "upstream": {"status": "unhealthy", "error": "health: check timeout", "duration_ms": 2000}
//	  }
//	}
package health
