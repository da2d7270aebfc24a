package v1

import (
	"encoding/json"
	"time"
)

// Envelope is the versioned event envelope shared by the outbox relay and the
// event bus. Keep it backward compatible: consumers decode old rows.
type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	OccurredAt    time.Time       `json:"occurred_at"`
	SourceService string          `json:"source_service"`
	ActorID       string          `json:"actor_id,omitempty"`
	SchemaVersion int             `json:"schema_version"`
	PartitionKey  string          `json:"partition_key"`
	Data          json.RawMessage `json:"data"`
}

// Post event types emitted by the post service.
const (
	EventPostCreated = "post.created"
	EventPostUpdated = "post.updated"
	EventPostDeleted = "post.deleted"
)
