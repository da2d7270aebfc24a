package workers

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	application "scribe/contexts/publishing/post-service/application"
	"scribe/contexts/publishing/post-service/ports"
)

const DefaultPostEventsTopic = "blog.posts"

type OutboxRelay struct {
	Outbox    ports.OutboxRepository
	Publisher ports.EventPublisher
	Clock     ports.Clock
	Topic     string
	BatchSize int
	Logger    *slog.Logger
}

// RunOnce relays one batch of pending rows in creation order. A row is marked
// sent only after the publisher accepts it, so a failed batch is retried on
// the next tick.
func (r OutboxRelay) RunOnce(ctx context.Context) (int, error) {
	logger := application.ResolveLogger(r.Logger)
	limit := r.BatchSize
	if limit <= 0 {
		limit = 100
	}
	topic := r.Topic
	if topic == "" {
		topic = DefaultPostEventsTopic
	}

	pending, err := r.Outbox.ListPendingOutbox(ctx, limit)
	if err != nil {
		logger.Error("post outbox list failed",
			"event", "post_outbox_list_failed",
			"module", "publishing/post-service",
			"layer", "worker",
			"error", err.Error(),
		)
		return 0, err
	}

	now := time.Now().UTC()
	if r.Clock != nil {
		now = r.Clock.Now().UTC()
	}

	sent := 0
	for _, message := range pending {
		var envelope ports.EventEnvelope
		if err := json.Unmarshal(message.Payload, &envelope); err != nil {
			logger.Error("post outbox payload decode failed",
				"event", "post_outbox_decode_failed",
				"module", "publishing/post-service",
				"layer", "worker",
				"outbox_id", message.OutboxID,
				"error", err.Error(),
			)
			return sent, err
		}

		if err := r.Publisher.Publish(ctx, topic, envelope); err != nil {
			logger.Error("post outbox publish failed",
				"event", "post_outbox_publish_failed",
				"module", "publishing/post-service",
				"layer", "worker",
				"outbox_id", message.OutboxID,
				"event_id", envelope.EventID,
				"event_type", envelope.EventType,
				"error", err.Error(),
			)
			return sent, err
		}
		if err := r.Outbox.MarkOutboxSent(ctx, message.OutboxID, now); err != nil {
			logger.Error("post outbox mark sent failed",
				"event", "post_outbox_mark_sent_failed",
				"module", "publishing/post-service",
				"layer", "worker",
				"outbox_id", message.OutboxID,
				"error", err.Error(),
			)
			return sent, err
		}
		sent++
	}

	if sent > 0 {
		logger.Debug("post outbox batch relayed",
			"event", "post_outbox_batch_relayed",
			"module", "publishing/post-service",
			"layer", "worker",
			"topic", topic,
			"count", sent,
		)
	}
	return sent, nil
}

// Run polls until the context is cancelled.
func (r OutboxRelay) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if _, err := r.RunOnce(ctx); err != nil && ctx.Err() == nil {
			application.ResolveLogger(r.Logger).Warn("post outbox relay tick failed",
				"event", "post_outbox_relay_tick_failed",
				"module", "publishing/post-service",
				"layer", "worker",
				"error", err.Error(),
			)
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}
