package workers

import (
	"context"
	"encoding/json"
	"testing"

	"scribe/contexts/publishing/post-service/ports"
	eventsv1 "scribe/contracts/gen/events/v1"
)

type capturingSubscriber struct {
	topic   string
	group   string
	handler func(context.Context, ports.EventEnvelope) error
}

func (s *capturingSubscriber) Subscribe(
	_ context.Context,
	topic string,
	consumerGroup string,
	handler func(context.Context, ports.EventEnvelope) error,
) error {
	s.topic = topic
	s.group = consumerGroup
	s.handler = handler
	return nil
}

func TestPostEventAuditorSubscribesWithDefaults(t *testing.T) {
	subscriber := &capturingSubscriber{}
	if err := (PostEventAuditor{Subscriber: subscriber}).Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	if subscriber.topic != DefaultPostEventsTopic || subscriber.group != defaultAuditConsumerGroup {
		t.Fatalf("unexpected subscription %q/%q", subscriber.topic, subscriber.group)
	}
	if subscriber.handler == nil {
		t.Fatal("expected handler to be registered")
	}
}

func TestPostEventAuditorHandle(t *testing.T) {
	auditor := PostEventAuditor{}
	data, _ := json.Marshal(map[string]string{"post_id": "p1", "author_id": "u1"})

	tests := []struct {
		name    string
		event   ports.EventEnvelope
		wantErr bool
	}{
		{name: "created", event: ports.EventEnvelope{EventType: eventsv1.EventPostCreated, Data: data}},
		{name: "deleted", event: ports.EventEnvelope{EventType: eventsv1.EventPostDeleted, Data: data}},
		{name: "unknown type skipped", event: ports.EventEnvelope{EventType: "user.created", Data: []byte("{")}},
		{name: "bad payload", event: ports.EventEnvelope{EventType: eventsv1.EventPostUpdated, Data: []byte("{")}, wantErr: true},
		{name: "missing post id", event: ports.EventEnvelope{EventType: eventsv1.EventPostUpdated, Data: []byte(`{"author_id":"u1"}`)}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := auditor.Handle(context.Background(), tt.event)
			if (err != nil) != tt.wantErr {
				t.Fatalf("wantErr=%v, got %v", tt.wantErr, err)
			}
		})
	}
}
