package wizard

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/quotewerk/quotewerk-backend/internal/quote"
	pkgerrors "github.com/quotewerk/quotewerk-backend/pkg/errors"
	"github.com/quotewerk/quotewerk-backend/pkg/redis"
)

// SessionStore persists in-flight drafts between user actions.
type SessionStore interface {
	Save(ctx context.Context, draft *quote.Draft) error
	Load(ctx context.Context, sessionID string) (*quote.Draft, error)
	Delete(ctx context.Context, sessionID string) error
}

// RedisSessionStore keeps drafts as JSON under the session namespace with a
// sliding TTL; every save renews the expiry.
type RedisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSessionStore builds the store.
func NewRedisSessionStore(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	if ttl <= 0 {
		ttl = 72 * time.Hour
	}
	return &RedisSessionStore{client: client, ttl: ttl}
}

// Save writes the draft and renews its TTL.
func (s *RedisSessionStore) Save(ctx context.Context, draft *quote.Draft) error {
	payload, err := json.Marshal(draft)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "marshal draft")
	}
	key := s.client.SessionKey(draft.SessionID.String())
	if err := s.client.Set(ctx, key, payload, s.ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redis: save session")
	}
	return nil
}

// Load reads one draft.
func (s *RedisSessionStore) Load(ctx context.Context, sessionID string) (*quote.Draft, error) {
	raw, err := s.client.Get(ctx, s.client.SessionKey(sessionID))
	if errors.Is(err, goredis.Nil) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "session not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redis: load session")
	}
	var draft quote.Draft
	if err := json.Unmarshal([]byte(raw), &draft); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "unmarshal draft")
	}
	return &draft, nil
}

// Delete drops the session.
func (s *RedisSessionStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, s.client.SessionKey(sessionID)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redis: delete session")
	}
	return nil
}
