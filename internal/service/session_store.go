package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/roadready/dsm-admin-gateway/internal/models"
	appErrors "github.com/roadready/dsm-admin-gateway/pkg/errors"
)

// SessionStore holds in-flight wizard sessions. Sessions are short-lived
// working state, never durable records: they expire after the configured
// TTL and are deleted on cancel or confirm.
type SessionStore interface {
	Save(ctx context.Context, session *models.RescheduleSession, ttl time.Duration) error
	Get(ctx context.Context, id string) (*models.RescheduleSession, error)
	// FindByEnrollment returns the live session for an enrollment, if any.
	FindByEnrollment(ctx context.Context, enrollmentID string) (*models.RescheduleSession, error)
	Delete(ctx context.Context, id string) error
}

type memoryEntry struct {
	session   models.RescheduleSession
	expiresAt time.Time
}

// MemorySessionStore is the default single-instance store.
type MemorySessionStore struct {
	mu           sync.RWMutex
	sessions     map[string]memoryEntry
	byEnrollment map[string]string
}

// NewMemorySessionStore builds an empty in-memory store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		sessions:     make(map[string]memoryEntry),
		byEnrollment: make(map[string]string),
	}
}

func (s *MemorySessionStore) Save(_ context.Context, session *models.RescheduleSession, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// One live session per enrollment; a restart replaces the old run.
	if previous, ok := s.byEnrollment[session.EnrollmentID]; ok && previous != session.ID {
		delete(s.sessions, previous)
	}
	s.sessions[session.ID] = memoryEntry{session: *session, expiresAt: time.Now().Add(ttl)}
	s.byEnrollment[session.EnrollmentID] = session.ID
	return nil
}

func (s *MemorySessionStore) Get(_ context.Context, id string) (*models.RescheduleSession, error) {
	s.mu.RLock()
	entry, ok := s.sessions[id]
	s.mu.RUnlock()

	if !ok || time.Now().After(entry.expiresAt) {
		if ok {
			_ = s.Delete(context.Background(), id)
		}
		return nil, appErrors.ErrSessionNotFound
	}
	session := entry.session
	return &session, nil
}

func (s *MemorySessionStore) FindByEnrollment(ctx context.Context, enrollmentID string) (*models.RescheduleSession, error) {
	s.mu.RLock()
	id, ok := s.byEnrollment[enrollmentID]
	s.mu.RUnlock()
	if !ok {
		return nil, appErrors.ErrSessionNotFound
	}
	return s.Get(ctx, id)
}

func (s *MemorySessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.sessions[id]
	if !ok {
		return nil
	}
	delete(s.sessions, id)
	if s.byEnrollment[entry.session.EnrollmentID] == id {
		delete(s.byEnrollment, entry.session.EnrollmentID)
	}
	return nil
}

const (
	sessionKeyPrefix    = "wizard:session:"
	enrollmentKeyPrefix = "wizard:enrollment:"
)

// RedisSessionStore keeps sessions in Redis so multiple gateway instances
// can serve the same wizard run. Expiry rides on the Redis key TTL.
type RedisSessionStore struct {
	client *redis.Client
}

// NewRedisSessionStore wraps an already connected client.
func NewRedisSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{client: client}
}

func (s *RedisSessionStore) Save(ctx context.Context, session *models.RescheduleSession, ttl time.Duration) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to encode session")
	}

	enrollmentKey := enrollmentKeyPrefix + session.EnrollmentID
	if previous, err := s.client.Get(ctx, enrollmentKey).Result(); err == nil && previous != session.ID {
		_ = s.client.Del(ctx, sessionKeyPrefix+previous).Err()
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, sessionKeyPrefix+session.ID, payload, ttl)
	pipe.Set(ctx, enrollmentKey, session.ID, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store session")
	}
	return nil
}

func (s *RedisSessionStore) Get(ctx context.Context, id string) (*models.RescheduleSession, error) {
	payload, err := s.client.Get(ctx, sessionKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, appErrors.ErrSessionNotFound
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load session")
	}

	var session models.RescheduleSession
	if err := json.Unmarshal(payload, &session); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to decode session")
	}
	return &session, nil
}

func (s *RedisSessionStore) FindByEnrollment(ctx context.Context, enrollmentID string) (*models.RescheduleSession, error) {
	id, err := s.client.Get(ctx, enrollmentKeyPrefix+enrollmentID).Result()
	if errors.Is(err, redis.Nil) {
		return nil, appErrors.ErrSessionNotFound
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load session")
	}
	return s.Get(ctx, id)
}

func (s *RedisSessionStore) Delete(ctx context.Context, id string) error {
	session, err := s.Get(ctx, id)
	if err != nil {
		if appErrors.FromError(err).Code == appErrors.ErrSessionNotFound.Code {
			return nil
		}
		return err
	}
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, sessionKeyPrefix+id)
	pipe.Del(ctx, enrollmentKeyPrefix+session.EnrollmentID)
	if _, err := pipe.Exec(ctx); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete session")
	}
	return nil
}
