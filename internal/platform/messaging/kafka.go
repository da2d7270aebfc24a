package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"

	eventsv1 "scribe/contracts/gen/events/v1"
)

// Kafka publishes envelopes to a broker cluster. Messages are keyed by the
// envelope partition key so events for one post stay ordered.
type Kafka struct {
	brokers []string
	writer  *kafka.Writer
	timeout time.Duration
	logger  *slog.Logger

	mu      sync.Mutex
	readers []*kafka.Reader
}

func NewKafka(brokers []string, logger *slog.Logger) (*Kafka, error) {
	if len(brokers) == 0 {
		return nil, errors.New("at least one kafka broker is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Kafka{
		brokers: brokers,
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Balancer:               &kafka.Hash{},
			BatchTimeout:           10 * time.Millisecond,
			RequiredAcks:           kafka.RequireAll,
			AllowAutoTopicCreation: true,
		},
		timeout: 10 * time.Second,
		logger:  logger,
	}, nil
}

// NewBroker returns Kafka when brokers are configured and the in-process bus
// otherwise. The bus only reaches subscribers in the same process.
func NewBroker(brokers []string, logger *slog.Logger) (Broker, error) {
	if len(brokers) == 0 {
		return NewBus(logger), nil
	}
	return NewKafka(brokers, logger)
}

func (k *Kafka) Publish(ctx context.Context, topic string, event eventsv1.Envelope) error {
	msg, err := toMessage(topic, event)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, k.timeout)
	defer cancel()

	if err := k.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka publish %s: %w", event.EventID, err)
	}
	k.logger.Info("event published",
		"event", "kafka_publish",
		"module", "internal/platform/messaging",
		"layer", "platform",
		"topic", topic,
		"event_id", event.EventID,
		"event_type", event.EventType,
	)
	return nil
}

// Subscribe starts a consumer-group reader on topic. Offsets are committed
// only after handler succeeds, so a failed event is redelivered.
func (k *Kafka) Subscribe(
	ctx context.Context,
	topic string,
	consumerGroup string,
	handler func(context.Context, eventsv1.Envelope) error,
) error {
	if consumerGroup == "" {
		return errors.New("kafka consumer group is required")
	}
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  k.brokers,
		GroupID:  consumerGroup,
		Topic:    topic,
		MinBytes: 1,
		MaxBytes: 10e6,
	})

	k.mu.Lock()
	k.readers = append(k.readers, reader)
	k.mu.Unlock()

	go k.consume(ctx, reader, topic, consumerGroup, handler)
	return nil
}

func (k *Kafka) consume(
	ctx context.Context,
	reader *kafka.Reader,
	topic string,
	consumerGroup string,
	handler func(context.Context, eventsv1.Envelope) error,
) {
	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() == nil {
				k.logger.Error("kafka fetch failed",
					"event", "kafka_fetch_failed",
					"module", "internal/platform/messaging",
					"layer", "platform",
					"topic", topic,
					"consumer_group", consumerGroup,
					"error", err.Error(),
				)
			}
			return
		}

		var event eventsv1.Envelope
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			k.logger.Error("kafka message decode failed",
				"event", "kafka_decode_failed",
				"module", "internal/platform/messaging",
				"layer", "platform",
				"topic", topic,
				"offset", msg.Offset,
				"error", err.Error(),
			)
			_ = reader.CommitMessages(ctx, msg)
			continue
		}
		if err := handler(ctx, event); err != nil {
			k.logger.Error("consumer handler failed",
				"event", "kafka_consume_failed",
				"module", "internal/platform/messaging",
				"layer", "platform",
				"topic", topic,
				"consumer_group", consumerGroup,
				"event_id", event.EventID,
				"event_type", event.EventType,
				"error", err.Error(),
			)
			continue
		}
		if err := reader.CommitMessages(ctx, msg); err != nil && ctx.Err() == nil {
			k.logger.Warn("kafka commit failed",
				"event", "kafka_commit_failed",
				"module", "internal/platform/messaging",
				"layer", "platform",
				"topic", topic,
				"offset", msg.Offset,
				"error", err.Error(),
			)
		}
	}
}

func (k *Kafka) Close() error {
	k.mu.Lock()
	readers := k.readers
	k.readers = nil
	k.mu.Unlock()

	errs := []error{k.writer.Close()}
	for _, reader := range readers {
		errs = append(errs, reader.Close())
	}
	return errors.Join(errs...)
}

func toMessage(topic string, event eventsv1.Envelope) (kafka.Message, error) {
	value, err := json.Marshal(event)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("encode envelope %s: %w", event.EventID, err)
	}
	return kafka.Message{
		Topic: topic,
		Key:   []byte(event.PartitionKey),
		Value: value,
		Time:  event.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.EventType)},
			{Key: "event_id", Value: []byte(event.EventID)},
		},
	}, nil
}
