// Package logger builds the structured slog loggers used across meshkit.
//
// Loggers write JSON (or text) records to stdout and, when a Sentry DSN is
// configured, forward warnings and errors to Sentry as well:
//
//	log := logger.New(logger.Config{
//		Level:     "debug",
//		Format:    "json",
//		SentryDSN: os.Getenv("SENTRY_DSN"),
//	}, logger.RequestIDExtractor)
//
// Context extractors add request-scoped attributes on every call:
//
//	ctx = logger.WithRequestID(ctx, "abc-123")
//	log.InfoContext(ctx, "rendered upcoming events")
//	// {"level":"INFO","msg":"rendered upcoming events","request_id":"abc-123"}
//
// Library components default to [NewNope] and accept a logger through their
// WithLogger option.
package logger
