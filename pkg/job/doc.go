// Package job runs named tasks on cron schedules inside the process.
//
// It wraps robfig/cron with the things a long-running service needs around
// it: structured logging of every run, a per-run timeout, panic recovery,
// overlap protection and a health check.
//
// # Usage
//
//	s := job.New(job.WithLogger(log), job.WithTaskTimeout(30*time.Second))
//
//	err := s.Add("warm-events", "*/5 * * * *", func(ctx context.Context) error {
//	    return src.RefreshNetworkEvents(ctx, 42, events.NetworkEventLimit)
//	})
//	if err != nil {
//	    return err
//	}
//
//	if err := s.Start(ctx); err != nil {
//	    return err
//	}
//	defer s.Stop(context.Background())
//
// # Schedules
//
// Schedules use the standard five-field cron syntax (minute, hour, day of
// month, month, day of week) plus the descriptors @hourly, @daily and
// @every <duration>. Intervals below one second are rounded up by cron.
//
// # Overlap
//
// A run that is still in progress when its next tick arrives causes that
// tick to be skipped.
package job
