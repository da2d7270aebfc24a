package bootstrap

import (
	"context"

	eventsv1 "scribe/contracts/gen/events/v1"
)

type countingBroker struct {
	published int
}

func (b *countingBroker) Publish(context.Context, string, eventsv1.Envelope) error {
	b.published++
	return nil
}

func (b *countingBroker) Subscribe(context.Context, string, string, func(context.Context, eventsv1.Envelope) error) error {
	return nil
}

func (b *countingBroker) Close() error { return nil }
