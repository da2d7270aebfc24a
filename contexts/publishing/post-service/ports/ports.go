package ports

import (
	"context"
	"encoding/json"
	"time"

	"scribe/contexts/publishing/post-service/domain/entities"
	authzv1 "scribe/contracts/gen/authz/v1"
	eventsv1 "scribe/contracts/gen/events/v1"
)

const sourceService = "post-service"

// PostEvent is the outbound integration event persisted to the outbox with
// each mutation.
type PostEvent struct {
	EventID    string
	EventType  string
	Post       entities.Post
	ActorID    string
	OccurredAt time.Time
}

type postEventData struct {
	PostID   string   `json:"post_id"`
	AuthorID string   `json:"author_id"`
	Title    string   `json:"title,omitempty"`
	Tags     []string `json:"tags,omitempty"`
}

// Envelope renders the event in the shared envelope contract, keyed by post id.
func (e PostEvent) Envelope() (EventEnvelope, error) {
	data := postEventData{PostID: e.Post.PostID, AuthorID: e.Post.AuthorID}
	if e.EventType != eventsv1.EventPostDeleted {
		data.Title = e.Post.Title
		data.Tags = e.Post.Tags
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return EventEnvelope{}, err
	}
	return EventEnvelope{
		EventID:       e.EventID,
		EventType:     e.EventType,
		OccurredAt:    e.OccurredAt.UTC(),
		SourceService: sourceService,
		ActorID:       e.ActorID,
		SchemaVersion: 1,
		PartitionKey:  e.Post.PostID,
		Data:          raw,
	}, nil
}

// PostRepository owns post persistence and transaction boundaries. Every
// write persists its event atomically with the row change.
type PostRepository interface {
	// ListPosts returns posts newest first.
	ListPosts(ctx context.Context) ([]entities.Post, error)
	GetPost(ctx context.Context, postID string) (entities.Post, error)
	CreatePostWithOutbox(ctx context.Context, post entities.Post, event PostEvent) error
	UpdatePostWithOutbox(ctx context.Context, post entities.Post, event PostEvent) error
	DeletePostWithOutbox(ctx context.Context, postID string, event PostEvent) error
}

// Authorizer is satisfied by the authorization policy engine.
type Authorizer interface {
	Authorize(actor authzv1.Actor, operation authzv1.Operation, resource authzv1.Resource) authzv1.Decision
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// OutboxMessage is a row ready to relay from the post outbox.
type OutboxMessage struct {
	OutboxID     string
	EventType    string
	PartitionKey string
	Payload      []byte
	CreatedAt    time.Time
}

// OutboxRepository models worker-side outbox polling and acknowledgement.
type OutboxRepository interface {
	ListPendingOutbox(ctx context.Context, limit int) ([]OutboxMessage, error)
	MarkOutboxSent(ctx context.Context, outboxID string, sentAt time.Time) error
}

// EventEnvelope reuses the canonical cross-runtime envelope contract.
type EventEnvelope = eventsv1.Envelope

type EventPublisher interface {
	Publish(ctx context.Context, topic string, event EventEnvelope) error
}

type EventSubscriber interface {
	Subscribe(
		ctx context.Context,
		topic string,
		consumerGroup string,
		handler func(context.Context, EventEnvelope) error,
	) error
}
