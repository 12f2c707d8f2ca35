package events

import (
	"context"

	"github.com/culturemesh/meshkit/pkg/mesh"
)

// Source fetches networks and events. Implementations return at most limit
// items and may return an empty slice.
type Source interface {
	NetworksForUser(ctx context.Context, userID mesh.ID, limit int) ([]mesh.Network, error)
	EventsForNetwork(ctx context.Context, networkID mesh.ID, limit int) ([]mesh.Event, error)
}
