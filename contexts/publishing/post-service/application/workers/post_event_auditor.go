package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	application "scribe/contexts/publishing/post-service/application"
	"scribe/contexts/publishing/post-service/ports"
	eventsv1 "scribe/contracts/gen/events/v1"
)

const defaultAuditConsumerGroup = "post-event-audit-cg"

// PostEventAuditor consumes relayed post events and writes one structured
// audit line per event. Unknown event types are skipped.
type PostEventAuditor struct {
	Subscriber    ports.EventSubscriber
	Topic         string
	ConsumerGroup string
	Logger        *slog.Logger
}

type postAuditPayload struct {
	PostID   string `json:"post_id"`
	AuthorID string `json:"author_id"`
}

func (a PostEventAuditor) Start(ctx context.Context) error {
	topic := a.Topic
	if topic == "" {
		topic = DefaultPostEventsTopic
	}
	group := a.ConsumerGroup
	if group == "" {
		group = defaultAuditConsumerGroup
	}
	return a.Subscriber.Subscribe(ctx, topic, group, a.Handle)
}

func (a PostEventAuditor) Handle(_ context.Context, event ports.EventEnvelope) error {
	logger := application.ResolveLogger(a.Logger)
	switch event.EventType {
	case eventsv1.EventPostCreated, eventsv1.EventPostUpdated, eventsv1.EventPostDeleted:
	default:
		logger.Debug("post audit skipped unknown event",
			"event", "post_audit_event_skipped",
			"module", "publishing/post-service",
			"layer", "worker",
			"event_type", event.EventType,
		)
		return nil
	}

	var payload postAuditPayload
	if err := json.Unmarshal(event.Data, &payload); err != nil {
		return fmt.Errorf("decode post event payload: %w", err)
	}
	if payload.PostID == "" {
		return fmt.Errorf("post event missing post_id")
	}

	logger.Info("post event audited",
		"event", "post_event_audited",
		"module", "publishing/post-service",
		"layer", "worker",
		"event_id", event.EventID,
		"event_type", event.EventType,
		"post_id", payload.PostID,
		"author_id", payload.AuthorID,
		"actor_id", event.ActorID,
	)
	return nil
}
