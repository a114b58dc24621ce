package session

import (
	"context"
	"errors"

	"opalclean-api/res/wizard"
)

// ErrNotFound is returned when no wizard session exists for an id,
// either because it never existed or because it expired.
var ErrNotFound = errors.New("session: not found")

// Store holds the wizard state of in-progress booking sessions, keyed by
// session id. Each session has exactly one writer; implementations only need
// last-write-wins semantics.
type Store interface {
	Get(ctx context.Context, id string) (*wizard.State, error)
	Set(ctx context.Context, id string, state *wizard.State) error
	Drop(ctx context.Context, id string) error
}
