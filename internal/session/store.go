package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/membergate/backend/internal/domain"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var ErrSessionNotFound = errors.New("session not found")

const keyPrefix = "session:"

// Store keeps issued tokens alongside a logged-in flag. A token is
// valid only while its record exists and the flag is set; logout flips
// the flag instead of deleting, so the record keeps its history until
// the TTL reaps it.
type Store interface {
	Create(ctx context.Context, token string, identity uuid.UUID) error
	Get(ctx context.Context, token string) (*domain.Session, error)
	Revoke(ctx context.Context, token string) error
}

type redisStore struct {
	client redis.UniversalClient
	ttl    time.Duration
}

func NewStore(client redis.UniversalClient, ttl time.Duration) *redisStore {
	return &redisStore{
		client: client,
		ttl:    ttl,
	}
}

func (s *redisStore) Create(ctx context.Context, token string, identity uuid.UUID) error {
	record := domain.Session{
		Token:     token,
		Identity:  identity,
		LoggedIn:  true,
		UpdatedAt: time.Now().UTC(),
	}

	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("session marshal failed: %w", err)
	}

	if err := s.client.Set(ctx, keyPrefix+token, payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("session store set failed: %w", err)
	}

	return nil
}

func (s *redisStore) Get(ctx context.Context, token string) (*domain.Session, error) {
	payload, err := s.client.Get(ctx, keyPrefix+token).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("session store get failed: %w", err)
	}

	var record domain.Session
	if err := json.Unmarshal(payload, &record); err != nil {
		return nil, fmt.Errorf("session unmarshal failed: %w", err)
	}

	return &record, nil
}

func (s *redisStore) Revoke(ctx context.Context, token string) error {
	record, err := s.Get(ctx, token)
	if err != nil {
		return err
	}

	record.LoggedIn = false
	record.UpdatedAt = time.Now().UTC()

	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("session marshal failed: %w", err)
	}

	if err := s.client.Set(ctx, keyPrefix+token, payload, redis.KeepTTL).Err(); err != nil {
		return fmt.Errorf("session store set failed: %w", err)
	}

	return nil
}
