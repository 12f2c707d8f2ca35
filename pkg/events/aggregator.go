package events

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/culturemesh/meshkit/pkg/dates"
	"github.com/culturemesh/meshkit/pkg/mesh"
)

// Aggregator produces capped, chronologically sorted lists of upcoming events.
// It holds no mutable state and is safe for concurrent use if its Source is.
type Aggregator struct {
	source Source
	opts   *options
}

// New creates an Aggregator reading from source.
func New(source Source, opts ...Option) *Aggregator {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return &Aggregator{source: source, opts: o}
}

// UpcomingByNetwork returns up to count upcoming events of one network,
// soonest first.
func (a *Aggregator) UpcomingByNetwork(ctx context.Context, networkID mesh.ID, count int) ([]mesh.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fetched, err := a.source.EventsForNetwork(ctx, networkID, a.opts.networkEvents)
	if err != nil {
		return nil, err
	}

	upcoming, err := Select(fetched, a.opts.clock.Now(), a.opts.parser, count)
	if err != nil {
		return nil, err
	}

	a.opts.logger.DebugContext(ctx, "upcoming events by network",
		slog.String("network_id", networkID.String()),
		slog.Int("fetched", len(fetched)),
		slog.Int("returned", len(upcoming)),
	)

	return upcoming, nil
}

// UpcomingByUser returns up to count upcoming events across every network the
// user belongs to, soonest first.
func (a *Aggregator) UpcomingByUser(ctx context.Context, userID mesh.ID, count int) ([]mesh.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	networks, err := a.source.NetworksForUser(ctx, userID, a.opts.userNetworks)
	if err != nil {
		return nil, err
	}
	if len(networks) == 0 {
		return []mesh.Event{}, nil
	}

	fetched, err := a.collect(ctx, networks)
	if err != nil {
		return nil, err
	}

	upcoming, err := Select(fetched, a.opts.clock.Now(), a.opts.parser, count)
	if err != nil {
		return nil, err
	}

	a.opts.logger.DebugContext(ctx, "upcoming events by user",
		slog.String("user_id", userID.String()),
		slog.Int("networks", len(networks)),
		slog.Int("fetched", len(fetched)),
		slog.Int("returned", len(upcoming)),
	)

	return upcoming, nil
}

// collect fetches the events of every network and concatenates them in
// network order.
func (a *Aggregator) collect(ctx context.Context, networks []mesh.Network) ([]mesh.Event, error) {
	if a.opts.concurrency <= 1 {
		var all []mesh.Event
		for _, n := range networks {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			batch, err := a.source.EventsForNetwork(ctx, n.ID, a.opts.perNetworkEvents)
			if err != nil {
				return nil, err
			}
			all = append(all, batch...)
		}
		return all, nil
	}

	batches := make([][]mesh.Event, len(networks))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.opts.concurrency)

	for i, n := range networks {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			batch, err := a.source.EventsForNetwork(gctx, n.ID, a.opts.perNetworkEvents)
			if err != nil {
				return err
			}
			batches[i] = batch
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return slices.Concat(batches...), nil
}

type datedEvent struct {
	at    time.Time
	event mesh.Event
}

// Select keeps the events starting at or after now, sorts them by start
// instant (stable), and returns the first count of them.
//
// Every event date is parsed, including those of past events; the first
// failure is returned joined with ErrInvalidEventDate.
func Select(events []mesh.Event, now time.Time, parser dates.Parser, count int) ([]mesh.Event, error) {
	kept := make([]datedEvent, 0, len(events))
	for _, e := range events {
		at, err := parser.Parse(e.Date)
		if err != nil {
			return nil, errors.Join(ErrInvalidEventDate, fmt.Errorf("event %s: %w", e.ID, err))
		}
		if at.Before(now) {
			continue
		}
		kept = append(kept, datedEvent{at: at, event: e})
	}

	slices.SortStableFunc(kept, func(x, y datedEvent) int {
		return x.at.Compare(y.at)
	})

	n := min(max(count, 0), len(kept))
	out := make([]mesh.Event, n)
	for i := range n {
		out[i] = kept[i].event
	}
	return out, nil
}

// UpcomingByNetwork is a shorthand for New(source, opts...).UpcomingByNetwork.
func UpcomingByNetwork(ctx context.Context, source Source, networkID mesh.ID, count int, opts ...Option) ([]mesh.Event, error) {
	return New(source, opts...).UpcomingByNetwork(ctx, networkID, count)
}

// UpcomingByUser is a shorthand for New(source, opts...).UpcomingByUser.
func UpcomingByUser(ctx context.Context, source Source, userID mesh.ID, count int, opts ...Option) ([]mesh.Event, error) {
	return New(source, opts...).UpcomingByUser(ctx, userID, count)
}
