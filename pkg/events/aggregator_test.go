package events_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/culturemesh/meshkit/pkg/clock"
	"github.com/culturemesh/meshkit/pkg/dates"
	"github.com/culturemesh/meshkit/pkg/events"
	"github.com/culturemesh/meshkit/pkg/mesh"
)

// MockSource is a mock implementation of the Source interface.
type MockSource struct {
	mock.Mock
}

func (m *MockSource) NetworksForUser(ctx context.Context, userID mesh.ID, limit int) ([]mesh.Network, error) {
	args := m.Called(ctx, userID, limit)
	networks, _ := args.Get(0).([]mesh.Network)
	return networks, args.Error(1)
}

func (m *MockSource) EventsForNetwork(ctx context.Context, networkID mesh.ID, limit int) ([]mesh.Event, error) {
	args := m.Called(ctx, networkID, limit)
	evs, _ := args.Get(0).([]mesh.Event)
	return evs, args.Error(1)
}

var now = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func at(d time.Duration) string {
	return now.Add(d).Format(time.RFC3339)
}

func event(id mesh.ID, d time.Duration) mesh.Event {
	return mesh.Event{ID: id, Title: fmt.Sprintf("event %d", id), Date: at(d)}
}

func ids(evs []mesh.Event) []mesh.ID {
	out := make([]mesh.ID, len(evs))
	for i, e := range evs {
		out[i] = e.ID
	}
	return out
}

func newAggregator(src events.Source, opts ...events.Option) *events.Aggregator {
	opts = append([]events.Option{events.WithClock(clock.Fixed(now))}, opts...)
	return events.New(src, opts...)
}

// --- UpcomingByNetwork ---

func TestAggregator_UpcomingByNetwork(t *testing.T) {
	t.Parallel()

	t.Run("filters past events and sorts soonest first", func(t *testing.T) {
		t.Parallel()

		src := &MockSource{}
		src.On("EventsForNetwork", mock.Anything, mesh.ID(7), events.NetworkEventLimit).Return([]mesh.Event{
			event(1, 48*time.Hour),
			event(2, -time.Hour),
			event(3, time.Hour),
			event(4, -48*time.Hour),
			event(5, 24*time.Hour),
		}, nil)

		got, err := newAggregator(src).UpcomingByNetwork(context.Background(), 7, 10)
		require.NoError(t, err)
		require.Equal(t, []mesh.ID{3, 5, 1}, ids(got))
		src.AssertExpectations(t)
	})

	t.Run("event starting exactly now is upcoming", func(t *testing.T) {
		t.Parallel()

		src := &MockSource{}
		src.On("EventsForNetwork", mock.Anything, mesh.ID(1), events.NetworkEventLimit).Return([]mesh.Event{
			event(1, 0),
			event(2, -time.Second),
		}, nil)

		got, err := newAggregator(src).UpcomingByNetwork(context.Background(), 1, 5)
		require.NoError(t, err)
		require.Equal(t, []mesh.ID{1}, ids(got))
	})

	t.Run("truncates to count", func(t *testing.T) {
		t.Parallel()

		src := &MockSource{}
		src.On("EventsForNetwork", mock.Anything, mesh.ID(1), events.NetworkEventLimit).Return([]mesh.Event{
			event(1, 4*time.Hour),
			event(2, 3*time.Hour),
			event(3, 2*time.Hour),
			event(4, 1*time.Hour),
		}, nil)

		got, err := newAggregator(src).UpcomingByNetwork(context.Background(), 1, 2)
		require.NoError(t, err)
		require.Equal(t, []mesh.ID{4, 3}, ids(got))
	})

	t.Run("equal dates keep source order", func(t *testing.T) {
		t.Parallel()

		src := &MockSource{}
		src.On("EventsForNetwork", mock.Anything, mesh.ID(1), events.NetworkEventLimit).Return([]mesh.Event{
			event(9, time.Hour),
			event(3, time.Hour),
			event(5, time.Minute),
			event(1, time.Hour),
		}, nil)

		got, err := newAggregator(src).UpcomingByNetwork(context.Background(), 1, 10)
		require.NoError(t, err)
		require.Equal(t, []mesh.ID{5, 9, 3, 1}, ids(got))
	})

	t.Run("zero count returns empty slice", func(t *testing.T) {
		t.Parallel()

		src := &MockSource{}
		src.On("EventsForNetwork", mock.Anything, mesh.ID(1), events.NetworkEventLimit).Return([]mesh.Event{
			event(1, time.Hour),
		}, nil)

		got, err := newAggregator(src).UpcomingByNetwork(context.Background(), 1, 0)
		require.NoError(t, err)
		require.NotNil(t, got)
		require.Empty(t, got)
	})

	t.Run("negative count returns empty slice", func(t *testing.T) {
		t.Parallel()

		src := &MockSource{}
		src.On("EventsForNetwork", mock.Anything, mesh.ID(1), events.NetworkEventLimit).Return([]mesh.Event{
			event(1, time.Hour),
		}, nil)

		got, err := newAggregator(src).UpcomingByNetwork(context.Background(), 1, -3)
		require.NoError(t, err)
		require.Empty(t, got)
	})

	t.Run("no events returns empty slice", func(t *testing.T) {
		t.Parallel()

		src := &MockSource{}
		src.On("EventsForNetwork", mock.Anything, mesh.ID(1), events.NetworkEventLimit).Return([]mesh.Event{}, nil)

		got, err := newAggregator(src).UpcomingByNetwork(context.Background(), 1, 5)
		require.NoError(t, err)
		require.NotNil(t, got)
		require.Empty(t, got)
	})

	t.Run("source error is returned unchanged", func(t *testing.T) {
		t.Parallel()

		srcErr := errors.New("upstream down")
		src := &MockSource{}
		src.On("EventsForNetwork", mock.Anything, mesh.ID(1), events.NetworkEventLimit).Return(nil, srcErr)

		got, err := newAggregator(src).UpcomingByNetwork(context.Background(), 1, 5)
		require.Nil(t, got)
		require.Same(t, srcErr, err)
	})

	t.Run("unparsable date fails the call", func(t *testing.T) {
		t.Parallel()

		src := &MockSource{}
		src.On("EventsForNetwork", mock.Anything, mesh.ID(1), events.NetworkEventLimit).Return([]mesh.Event{
			event(1, time.Hour),
			{ID: 2, Title: "broken", Date: "sometime soon"},
		}, nil)

		_, err := newAggregator(src).UpcomingByNetwork(context.Background(), 1, 5)
		require.ErrorIs(t, err, events.ErrInvalidEventDate)
		require.ErrorIs(t, err, dates.ErrInvalidDate)
		require.Contains(t, err.Error(), "event 2")
	})

	t.Run("missing date fails the call", func(t *testing.T) {
		t.Parallel()

		src := &MockSource{}
		src.On("EventsForNetwork", mock.Anything, mesh.ID(1), events.NetworkEventLimit).Return([]mesh.Event{
			{ID: 3, Title: "no date"},
		}, nil)

		_, err := newAggregator(src).UpcomingByNetwork(context.Background(), 1, 5)
		require.ErrorIs(t, err, events.ErrInvalidEventDate)
	})

	t.Run("canceled context skips the fetch", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		src := &MockSource{}
		_, err := newAggregator(src).UpcomingByNetwork(ctx, 1, 5)
		require.ErrorIs(t, err, context.Canceled)
		src.AssertNotCalled(t, "EventsForNetwork", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("custom limits are passed to the source", func(t *testing.T) {
		t.Parallel()

		src := &MockSource{}
		src.On("EventsForNetwork", mock.Anything, mesh.ID(1), 50).Return([]mesh.Event{}, nil)

		_, err := newAggregator(src, events.WithLimits(50, 0, 0)).UpcomingByNetwork(context.Background(), 1, 5)
		require.NoError(t, err)
		src.AssertExpectations(t)
	})
}

// --- UpcomingByUser ---

func TestAggregator_UpcomingByUser(t *testing.T) {
	t.Parallel()

	t.Run("merges events across networks", func(t *testing.T) {
		t.Parallel()

		src := &MockSource{}
		src.On("NetworksForUser", mock.Anything, mesh.ID(42), events.UserNetworkLimit).Return([]mesh.Network{
			{ID: 1}, {ID: 2}, {ID: 3},
		}, nil)
		src.On("EventsForNetwork", mock.Anything, mesh.ID(1), events.PerNetworkEventLimit).Return([]mesh.Event{
			event(10, 5*time.Hour),
			event(11, -5*time.Hour),
		}, nil)
		src.On("EventsForNetwork", mock.Anything, mesh.ID(2), events.PerNetworkEventLimit).Return([]mesh.Event{}, nil)
		src.On("EventsForNetwork", mock.Anything, mesh.ID(3), events.PerNetworkEventLimit).Return([]mesh.Event{
			event(30, time.Hour),
			event(31, 10*time.Hour),
		}, nil)

		got, err := newAggregator(src).UpcomingByUser(context.Background(), 42, 10)
		require.NoError(t, err)
		require.Equal(t, []mesh.ID{30, 10, 31}, ids(got))
		src.AssertExpectations(t)
	})

	t.Run("user without networks gets empty slice", func(t *testing.T) {
		t.Parallel()

		src := &MockSource{}
		src.On("NetworksForUser", mock.Anything, mesh.ID(42), events.UserNetworkLimit).Return([]mesh.Network{}, nil)

		got, err := newAggregator(src).UpcomingByUser(context.Background(), 42, 10)
		require.NoError(t, err)
		require.NotNil(t, got)
		require.Empty(t, got)
		src.AssertNotCalled(t, "EventsForNetwork", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("networks source error is returned unchanged", func(t *testing.T) {
		t.Parallel()

		srcErr := errors.New("boom")
		src := &MockSource{}
		src.On("NetworksForUser", mock.Anything, mesh.ID(42), events.UserNetworkLimit).Return(nil, srcErr)

		_, err := newAggregator(src).UpcomingByUser(context.Background(), 42, 10)
		require.Same(t, srcErr, err)
	})

	t.Run("events source error aborts the merge", func(t *testing.T) {
		t.Parallel()

		srcErr := errors.New("network 2 unavailable")
		src := &MockSource{}
		src.On("NetworksForUser", mock.Anything, mesh.ID(42), events.UserNetworkLimit).Return([]mesh.Network{
			{ID: 1}, {ID: 2}, {ID: 3},
		}, nil)
		src.On("EventsForNetwork", mock.Anything, mesh.ID(1), events.PerNetworkEventLimit).Return([]mesh.Event{event(1, time.Hour)}, nil)
		src.On("EventsForNetwork", mock.Anything, mesh.ID(2), events.PerNetworkEventLimit).Return(nil, srcErr)

		_, err := newAggregator(src).UpcomingByUser(context.Background(), 42, 10)
		require.Same(t, srcErr, err)
		src.AssertNotCalled(t, "EventsForNetwork", mock.Anything, mesh.ID(3), mock.Anything)
	})

	t.Run("truncates merged result", func(t *testing.T) {
		t.Parallel()

		src := &MockSource{}
		src.On("NetworksForUser", mock.Anything, mesh.ID(42), events.UserNetworkLimit).Return([]mesh.Network{{ID: 1}, {ID: 2}}, nil)
		src.On("EventsForNetwork", mock.Anything, mesh.ID(1), events.PerNetworkEventLimit).Return([]mesh.Event{
			event(1, 3*time.Hour), event(2, 1*time.Hour),
		}, nil)
		src.On("EventsForNetwork", mock.Anything, mesh.ID(2), events.PerNetworkEventLimit).Return([]mesh.Event{
			event(3, 2*time.Hour), event(4, 4*time.Hour),
		}, nil)

		got, err := newAggregator(src).UpcomingByUser(context.Background(), 42, 3)
		require.NoError(t, err)
		require.Equal(t, []mesh.ID{2, 3, 1}, ids(got))
	})

	t.Run("concurrent fan-out matches sequential result", func(t *testing.T) {
		t.Parallel()

		networks := make([]mesh.Network, 0, 20)
		src := &MockSource{}
		for n := mesh.ID(1); n <= 20; n++ {
			networks = append(networks, mesh.Network{ID: n})
			// Every network has one event at the same instant, so order
			// depends only on the merge order.
			src.On("EventsForNetwork", mock.Anything, n, events.PerNetworkEventLimit).Return([]mesh.Event{
				event(n*100, time.Hour),
				event(n*100+1, -time.Hour),
			}, nil)
		}
		src.On("NetworksForUser", mock.Anything, mesh.ID(42), events.UserNetworkLimit).Return(networks, nil)

		sequential, err := newAggregator(src).UpcomingByUser(context.Background(), 42, 50)
		require.NoError(t, err)

		concurrent, err := newAggregator(src, events.WithConcurrency(8)).UpcomingByUser(context.Background(), 42, 50)
		require.NoError(t, err)

		require.Len(t, sequential, 20)
		require.Equal(t, ids(sequential), ids(concurrent))
		require.Equal(t, mesh.ID(100), concurrent[0].ID)
		require.Equal(t, mesh.ID(2000), concurrent[19].ID)
	})

	t.Run("concurrent fan-out returns source error", func(t *testing.T) {
		t.Parallel()

		srcErr := errors.New("flaky")
		src := &MockSource{}
		src.On("NetworksForUser", mock.Anything, mesh.ID(42), events.UserNetworkLimit).Return([]mesh.Network{{ID: 1}, {ID: 2}}, nil)
		src.On("EventsForNetwork", mock.Anything, mesh.ID(1), events.PerNetworkEventLimit).Return([]mesh.Event{event(1, time.Hour)}, nil).Maybe()
		src.On("EventsForNetwork", mock.Anything, mesh.ID(2), events.PerNetworkEventLimit).Return(nil, srcErr)

		_, err := newAggregator(src, events.WithConcurrency(4)).UpcomingByUser(context.Background(), 42, 10)
		require.ErrorIs(t, err, srcErr)
	})
}

// --- Properties ---

func TestSelect_Properties(t *testing.T) {
	t.Parallel()

	offsets := []time.Duration{
		-72 * time.Hour, 5 * time.Hour, 0, -time.Second, 30 * time.Minute,
		5 * time.Hour, 240 * time.Hour, -time.Hour, time.Second, 2 * time.Hour,
	}
	evs := make([]mesh.Event, len(offsets))
	qualifying := 0
	for i, d := range offsets {
		evs[i] = event(mesh.ID(i+1), d)
		if d >= 0 {
			qualifying++
		}
	}

	parser := dates.New()

	for count := 0; count <= len(evs)+2; count++ {
		got, err := events.Select(evs, now, parser, count)
		require.NoError(t, err)

		require.LessOrEqual(t, len(got), count)
		require.LessOrEqual(t, len(got), qualifying)
		require.Equal(t, min(count, qualifying), len(got))

		var prev time.Time
		for i, e := range got {
			ts := dates.MustParse(e.Date)
			require.False(t, ts.Before(now), "event %d is in the past", e.ID)
			if i > 0 {
				require.False(t, ts.Before(prev), "result not sorted at %d", i)
			}
			prev = ts
		}
	}
}

func TestUpcomingByUser_IsUnionOfNetworkSets(t *testing.T) {
	t.Parallel()

	perNetwork := map[mesh.ID][]mesh.Event{
		1: {event(11, 3*time.Hour), event(12, -time.Hour), event(13, 30*time.Minute)},
		2: {event(21, 2*time.Hour)},
		3: {},
		4: {event(41, 3*time.Hour), event(42, 90*time.Minute)},
	}

	src := &MockSource{}
	src.On("NetworksForUser", mock.Anything, mesh.ID(5), events.UserNetworkLimit).
		Return([]mesh.Network{{ID: 1}, {ID: 2}, {ID: 3}, {ID: 4}}, nil)

	var union []mesh.Event
	for id := mesh.ID(1); id <= 4; id++ {
		src.On("EventsForNetwork", mock.Anything, id, events.PerNetworkEventLimit).Return(perNetwork[id], nil)
		union = append(union, perNetwork[id]...)
	}

	for _, count := range []int{0, 1, 3, 5, 100} {
		expected, err := events.Select(union, now, dates.New(), count)
		require.NoError(t, err)

		got, err := newAggregator(src).UpcomingByUser(context.Background(), 5, count)
		require.NoError(t, err)
		require.Equal(t, expected, got, "count %d", count)
	}
}

func TestPackageShorthands(t *testing.T) {
	t.Parallel()

	src := &MockSource{}
	src.On("EventsForNetwork", mock.Anything, mesh.ID(1), events.NetworkEventLimit).Return([]mesh.Event{event(1, time.Hour)}, nil)
	src.On("NetworksForUser", mock.Anything, mesh.ID(2), events.UserNetworkLimit).Return([]mesh.Network{{ID: 1}}, nil)
	src.On("EventsForNetwork", mock.Anything, mesh.ID(1), events.PerNetworkEventLimit).Return([]mesh.Event{event(1, time.Hour)}, nil)

	byNetwork, err := events.UpcomingByNetwork(context.Background(), src, 1, 5, events.WithClock(clock.Fixed(now)))
	require.NoError(t, err)
	require.Equal(t, []mesh.ID{1}, ids(byNetwork))

	byUser, err := events.UpcomingByUser(context.Background(), src, 2, 5, events.WithClock(clock.Fixed(now)))
	require.NoError(t, err)
	require.Equal(t, []mesh.ID{1}, ids(byUser))
}
