package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	application "scribe/contexts/publishing/post-service/application"
	"scribe/contexts/publishing/post-service/domain/entities"
	domainerrors "scribe/contexts/publishing/post-service/domain/errors"
	"scribe/contexts/publishing/post-service/ports"
)

// Store is an in-memory post repository and outbox for local runtime and
// tests. Author usernames are kept as captured at creation time.
type Store struct {
	mu       sync.RWMutex
	posts    map[string]entities.Post
	inserted map[string]uint64
	outbox   []outboxRecord
	sequence uint64
	writes   uint64
	logger   *slog.Logger
}

type outboxRecord struct {
	message ports.OutboxMessage
	sentAt  *time.Time
}

func NewStore(logger *slog.Logger) *Store {
	return &Store{
		posts:    make(map[string]entities.Post),
		inserted: make(map[string]uint64),
		logger:   application.ResolveLogger(logger),
	}
}

func (s *Store) ListPosts(_ context.Context) ([]entities.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Post, 0, len(s.posts))
	for _, post := range s.posts {
		items = append(items, clonePost(post))
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return s.inserted[items[i].PostID] > s.inserted[items[j].PostID]
		}
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}

func (s *Store) GetPost(_ context.Context, postID string) (entities.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	post, ok := s.posts[postID]
	if !ok {
		return entities.Post{}, domainerrors.ErrPostNotFound
	}
	return clonePost(post), nil
}

func (s *Store) CreatePostWithOutbox(_ context.Context, post entities.Post, event ports.PostEvent) error {
	record, err := newOutboxRecord(event)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.posts[post.PostID]; exists {
		return fmt.Errorf("%w: duplicate key value violates unique constraint (post_id)", domainerrors.ErrConflict)
	}
	s.writes++
	s.posts[post.PostID] = clonePost(post)
	s.inserted[post.PostID] = s.writes
	s.outbox = append(s.outbox, record)
	return nil
}

func (s *Store) UpdatePostWithOutbox(_ context.Context, post entities.Post, event ports.PostEvent) error {
	record, err := newOutboxRecord(event)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.posts[post.PostID]
	if !ok {
		return domainerrors.ErrPostNotFound
	}
	if current.AuthorID != post.AuthorID {
		return domainerrors.ErrRepositoryInvariantBroke
	}
	s.posts[post.PostID] = clonePost(post)
	s.outbox = append(s.outbox, record)
	return nil
}

func (s *Store) DeletePostWithOutbox(_ context.Context, postID string, event ports.PostEvent) error {
	record, err := newOutboxRecord(event)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.posts[postID]; !ok {
		return domainerrors.ErrPostNotFound
	}
	delete(s.posts, postID)
	delete(s.inserted, postID)
	s.outbox = append(s.outbox, record)
	return nil
}

// DeletePostsByAuthor drops an author's posts without emitting events. It
// stands in for the storage cascade when the memory driver is used.
func (s *Store) DeletePostsByAuthor(_ context.Context, authorID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, post := range s.posts {
		if post.AuthorID == authorID {
			delete(s.posts, id)
			delete(s.inserted, id)
			removed++
		}
	}
	if removed > 0 {
		s.logger.Debug("author posts removed from memory store",
			"event", "post_memory_author_posts_deleted",
			"module", "publishing/post-service",
			"layer", "adapter",
			"author_id", authorID,
			"count", removed,
		)
	}
	return removed, nil
}

func (s *Store) ListPendingOutbox(_ context.Context, limit int) ([]ports.OutboxMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 100
	}
	items := make([]ports.OutboxMessage, 0, limit)
	for _, record := range s.outbox {
		if record.sentAt != nil {
			continue
		}
		items = append(items, record.message)
		if len(items) == limit {
			break
		}
	}
	return items, nil
}

func (s *Store) MarkOutboxSent(_ context.Context, outboxID string, sentAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.outbox {
		if s.outbox[i].message.OutboxID != outboxID {
			continue
		}
		at := sentAt.UTC()
		s.outbox[i].sentAt = &at
		return nil
	}
	return fmt.Errorf("outbox message %s not found", outboxID)
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	value := atomic.AddUint64(&s.sequence, 1)
	return fmt.Sprintf("post-%d", value), nil
}

func newOutboxRecord(event ports.PostEvent) (outboxRecord, error) {
	envelope, err := event.Envelope()
	if err != nil {
		return outboxRecord{}, err
	}
	payload, err := json.Marshal(envelope)
	if err != nil {
		return outboxRecord{}, err
	}
	return outboxRecord{
		message: ports.OutboxMessage{
			OutboxID:     envelope.EventID,
			EventType:    envelope.EventType,
			PartitionKey: envelope.PartitionKey,
			Payload:      payload,
			CreatedAt:    envelope.OccurredAt,
		},
	}, nil
}

func clonePost(post entities.Post) entities.Post {
	post.Tags = append([]string{}, post.Tags...)
	return post
}
