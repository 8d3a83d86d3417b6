package events

import (
	"time"

	"github.com/google/uuid"
)

// TopicPointCreated is the Watermill topic published when a Point is created.
const TopicPointCreated = "point.created"

// PointCreatedEvent is published in the same transaction that inserts the point.
// Consumers subscribe via EventBus.Subscribe(ctx, events.TopicPointCreated).
type PointCreatedEvent struct {
	EventID    uuid.UUID `json:"event_id"` // Unique publish-time identifier for deduplication
	Version    int       `json:"version"`  // Schema version; increment on breaking changes
	PointID    int64     `json:"point_id"`
	Name       string    `json:"name"`
	City       string    `json:"city"`
	UF         string    `json:"uf"`
	ItemIDs    []int64   `json:"item_ids"`
	OccurredAt time.Time `json:"occurred_at"`
}
