package memory

import (
	"context"
	"sync"

	"opalclean-api/res/session"
	"opalclean-api/res/wizard"
)

// sessionStore is an in-process session store for development and tests.
// Production deployments use the Redis store so sessions survive restarts.
type sessionStore struct {
	mu       sync.Mutex
	sessions map[string]wizard.State
}

func New() session.Store {
	return &sessionStore{sessions: map[string]wizard.State{}}
}

func (s *sessionStore) Get(ctx context.Context, id string) (*wizard.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.sessions[id]
	if !ok {
		return nil, session.ErrNotFound
	}
	// Copy out so callers never share the stored map
	state.Extras = copyExtras(state.Extras)
	return &state, nil
}

func (s *sessionStore) Set(ctx context.Context, id string, state *wizard.State) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *state
	stored.Extras = copyExtras(state.Extras)
	s.sessions[id] = stored
	return nil
}

func (s *sessionStore) Drop(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, id)
	return nil
}

func copyExtras(in map[string]int) map[string]int {
	out := make(map[string]int, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
