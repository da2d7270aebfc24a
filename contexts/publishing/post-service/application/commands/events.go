package commands

import (
	"context"
	"time"

	"scribe/contexts/publishing/post-service/domain/entities"
	"scribe/contexts/publishing/post-service/ports"
)

func newPostEvent(
	ctx context.Context,
	ids ports.IDGenerator,
	eventType string,
	post entities.Post,
	actorID string,
	now time.Time,
) (ports.PostEvent, error) {
	eventID, err := ids.NewID(ctx)
	if err != nil {
		return ports.PostEvent{}, err
	}
	return ports.PostEvent{
		EventID:    eventID,
		EventType:  eventType,
		Post:       post,
		ActorID:    actorID,
		OccurredAt: now,
	}, nil
}

func resolveNow(clock ports.Clock) time.Time {
	if clock == nil {
		return time.Now().UTC()
	}
	return clock.Now().UTC()
}
