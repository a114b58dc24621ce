package wizard

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"opalclean-api/res/catalog"
)

// ErrSubmissionFailed is surfaced when the submission collaborator rejects.
// The wizard state is left intact so the user can retry without re-entering
// data; no automatic retry happens at this layer.
var ErrSubmissionFailed = errors.New("wizard: submission failed")

// Submitter is the external submission collaborator. It receives the final
// wizard state whole and returns the new booking identifier.
type Submitter interface {
	Submit(ctx context.Context, s *State) (bookingID string, err error)
}

// Engine drives the reducer and performs its side effects. The reducer stays
// pure; the engine owns the one asynchronous operation (submission).
type Engine struct {
	cat       *catalog.Catalog
	submitter Submitter
	logger    *zap.Logger
}

func NewEngine(cat *catalog.Catalog, submitter Submitter, logger *zap.Logger) *Engine {
	return &Engine{cat: cat, submitter: submitter, logger: logger}
}

// Apply runs one action through the reducer and performs any requested
// effect. Client-supplied internal actions are rejected as no-ops.
func (e *Engine) Apply(ctx context.Context, s State, a Action) (State, error) {
	if a.Internal() {
		return s, nil
	}

	next, effect := Reduce(s, a, e.cat)
	if effect != EffectSubmit {
		return next, nil
	}

	bookingID, err := e.submitter.Submit(ctx, &next)
	if err != nil {
		e.logger.Warn("booking submission failed", zap.Error(err))
		next, _ = Reduce(next, Action{Type: actionSubmitFailed}, e.cat)
		return next, ErrSubmissionFailed
	}

	next, _ = Reduce(next, Action{Type: actionSubmitSucceeded, bookingID: bookingID}, e.cat)
	e.logger.Info("booking submitted", zap.String("booking_id", bookingID))
	return next, nil
}
