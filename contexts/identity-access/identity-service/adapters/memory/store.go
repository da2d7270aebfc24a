package memory

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	application "scribe/contexts/identity-access/identity-service/application"
	"scribe/contexts/identity-access/identity-service/domain/entities"
	domainerrors "scribe/contexts/identity-access/identity-service/domain/errors"
)

// Store is an in-memory user repository for local runtime and tests.
// It is not intended as production persistence.
type Store struct {
	mu         sync.RWMutex
	users      map[string]entities.User
	byUsername map[string]string
	sequence   uint64
	logger     *slog.Logger
}

func NewStore(logger *slog.Logger) *Store {
	return &Store{
		users:      make(map[string]entities.User),
		byUsername: make(map[string]string),
		logger:     application.ResolveLogger(logger),
	}
}

func (s *Store) GetUserByUsername(_ context.Context, username string) (entities.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byUsername[username]
	if !ok {
		return entities.User{}, domainerrors.ErrUserNotFound
	}
	return s.users[id], nil
}

func (s *Store) GetUser(_ context.Context, userID string) (entities.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[userID]
	if !ok {
		return entities.User{}, domainerrors.ErrUserNotFound
	}
	return user, nil
}

// CreateUser mirrors the storage uniqueness constraint on username.
func (s *Store) CreateUser(_ context.Context, user entities.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byUsername[user.Username]; exists {
		return fmt.Errorf("%w: duplicate key value violates unique constraint (username)", domainerrors.ErrConflict)
	}
	if _, exists := s.users[user.UserID]; exists {
		return fmt.Errorf("%w: duplicate key value violates unique constraint (user_id)", domainerrors.ErrConflict)
	}
	s.users[user.UserID] = user
	s.byUsername[user.Username] = user.UserID
	return nil
}

// ListUsers returns accounts oldest first.
func (s *Store) ListUsers(_ context.Context) ([]entities.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]entities.User, 0, len(s.users))
	for _, user := range s.users {
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool {
		if users[i].CreatedAt.Equal(users[j].CreatedAt) {
			return users[i].UserID < users[j].UserID
		}
		return users[i].CreatedAt.Before(users[j].CreatedAt)
	})
	return users, nil
}

func (s *Store) DeleteUser(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userID]
	if !ok {
		return domainerrors.ErrUserNotFound
	}
	delete(s.users, userID)
	delete(s.byUsername, user.Username)
	s.logger.Debug("user removed from memory store",
		"event", "identity_memory_user_deleted",
		"module", "identity-access/identity-service",
		"layer", "adapter",
		"user_id", userID,
	)
	return nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	value := atomic.AddUint64(&s.sequence, 1)
	return fmt.Sprintf("user-%d", value), nil
}
