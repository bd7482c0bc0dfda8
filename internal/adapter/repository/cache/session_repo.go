package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/LuqmanKt98/surfdims/internal/board/domain"
	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "session:"

// SessionRepository stores browse sessions with a sliding TTL.
type SessionRepository struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewSessionRepository(client redis.Cmdable, ttl time.Duration) *SessionRepository {
	return &SessionRepository{client: client, ttl: ttl}
}

func (r *SessionRepository) Get(ctx context.Context, id string) (*domain.BrowseSession, error) {
	data, err := r.client.Get(ctx, sessionKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: session %s", domain.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session %s from redis: %w", id, err)
	}
	var s domain.BrowseSession
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to decode session %s: %w", id, err)
	}
	return &s, nil
}

func (r *SessionRepository) Save(ctx context.Context, s *domain.BrowseSession) error {
	if s == nil || s.ID == "" {
		return errors.New("cannot save a session without an id")
	}
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode session %s: %w", s.ID, err)
	}
	if err := r.client.Set(ctx, sessionKeyPrefix+s.ID, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session %s to redis: %w", s.ID, err)
	}
	return nil
}
