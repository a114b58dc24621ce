package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"opalclean-api/res/session"
	"opalclean-api/res/wizard"
)

// Abandoned wizard sessions expire after a day
const sessionTTL = 24 * time.Hour

type sessionStore struct {
	client *redis.Client
}

// New creates a Redis-backed wizard session store
func New(addr, password string, db int) session.Store {
	return &sessionStore{
		client: redis.NewClient(&redis.Options{
			Addr:         addr,
			Password:     password,
			DB:           db,
			PoolSize:     100,
			MinIdleConns: 10,
		}),
	}
}

func (s *sessionStore) Get(ctx context.Context, id string) (*wizard.State, error) {
	data, err := s.client.Get(ctx, buildSessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, session.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	var state wizard.State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	if state.Extras == nil {
		state.Extras = map[string]int{}
	}
	return &state, nil
}

func (s *sessionStore) Set(ctx context.Context, id string, state *wizard.State) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	return s.client.Set(ctx, buildSessionKey(id), data, sessionTTL).Err()
}

func (s *sessionStore) Drop(ctx context.Context, id string) error {
	return s.client.Del(ctx, buildSessionKey(id)).Err()
}

func buildSessionKey(id string) string {
	return fmt.Sprintf("wizard:%s", id)
}
