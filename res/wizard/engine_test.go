package wizard

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"opalclean-api/res/catalog"
)

type fakeSubmitter struct {
	calls     int
	bookingID string
	err       error
}

func (f *fakeSubmitter) Submit(ctx context.Context, s *State) (string, error) {
	f.calls++
	return f.bookingID, f.err
}

func submittableState(t *testing.T, cat *catalog.Catalog) State {
	t.Helper()
	return completeContact(t, startedState(t, cat), cat)
}

func TestSubmitHappyPath(t *testing.T) {
	cat := catalog.Default()
	submitter := &fakeSubmitter{bookingID: "qte_123"}
	engine := NewEngine(cat, submitter, zap.NewNop())

	s, err := engine.Apply(context.Background(), submittableState(t, cat), Action{Type: ActionBeginSubmit})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if submitter.calls != 1 {
		t.Fatalf("submitter called %d times, want 1", submitter.calls)
	}
	if !s.Completed || s.Submitting {
		t.Errorf("state flags = completed %v submitting %v, want true/false", s.Completed, s.Submitting)
	}
	if s.BookingID != "qte_123" {
		t.Errorf("booking id = %q", s.BookingID)
	}
}

func TestSubmitValidationOpensEarliestFailingSection(t *testing.T) {
	cat := catalog.Default()
	submitter := &fakeSubmitter{bookingID: "qte_123"}
	engine := NewEngine(cat, submitter, zap.NewNop())

	// Property details incomplete AND contact empty: the earliest failing
	// section wins.
	s := apply(t, NewState(), cat, Action{Type: ActionSelectService, ServiceID: catalog.ServiceResidential})
	s, err := engine.Apply(context.Background(), s, Action{Type: ActionBeginSubmit})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if submitter.calls != 0 {
		t.Fatal("submission collaborator called despite failing validation")
	}
	if s.OpenSection != SectionPropertyDetails {
		t.Errorf("open section = %d, want the earliest failing section", s.OpenSection)
	}
	if s.Submitting || s.Completed {
		t.Error("failed validation must not set submit flags")
	}
}

func TestSubmitFailurePreservesState(t *testing.T) {
	cat := catalog.Default()
	submitter := &fakeSubmitter{err: errors.New("store unavailable")}
	engine := NewEngine(cat, submitter, zap.NewNop())

	before := submittableState(t, cat)
	s, err := engine.Apply(context.Background(), before, Action{Type: ActionBeginSubmit})
	if !errors.Is(err, ErrSubmissionFailed) {
		t.Fatalf("err = %v, want ErrSubmissionFailed", err)
	}
	if s.Completed || s.Submitting {
		t.Error("failed submission must clear the submitting flag and stay incomplete")
	}
	if s.FirstName != before.FirstName || s.Bedrooms != before.Bedrooms {
		t.Error("failed submission must preserve entered data for retry")
	}

	// A manual retry goes through
	submitter.err = nil
	submitter.bookingID = "qte_retry"
	s, err = engine.Apply(context.Background(), s, Action{Type: ActionBeginSubmit})
	if err != nil || !s.Completed {
		t.Fatalf("retry failed: err=%v completed=%v", err, s.Completed)
	}
	if submitter.calls != 2 {
		t.Errorf("submitter called %d times, want 2", submitter.calls)
	}
}

func TestSubmittingFlagGuardsDoubleSubmit(t *testing.T) {
	cat := catalog.Default()
	s := submittableState(t, cat)

	inFlight, effect := Reduce(s, Action{Type: ActionBeginSubmit}, cat)
	if effect != EffectSubmit || !inFlight.Submitting {
		t.Fatalf("first submit: effect=%d submitting=%v", effect, inFlight.Submitting)
	}

	// A second click while in flight must be a pure no-op
	again, effect := Reduce(inFlight, Action{Type: ActionBeginSubmit}, cat)
	if effect != EffectNone {
		t.Error("duplicate submit produced a second submission effect")
	}
	if again.OpenSection != inFlight.OpenSection {
		t.Error("duplicate submit changed state")
	}

	// So must every other user action while in flight
	mutated, _ := Reduce(inFlight, Action{Type: ActionSetBedrooms, Number: 1}, cat)
	if mutated.Bedrooms != inFlight.Bedrooms {
		t.Error("state mutated while a submission was in flight")
	}
}

func TestCompletedWizardOnlyRestarts(t *testing.T) {
	cat := catalog.Default()
	submitter := &fakeSubmitter{bookingID: "qte_done"}
	engine := NewEngine(cat, submitter, zap.NewNop())

	s, err := engine.Apply(context.Background(), submittableState(t, cat), Action{Type: ActionBeginSubmit})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	frozen, _ := Reduce(s, Action{Type: ActionSetBedrooms, Number: 5}, cat)
	if frozen.Bedrooms != s.Bedrooms {
		t.Error("completed wizard accepted a mutation")
	}

	restarted, _ := Reduce(s, Action{Type: ActionStartOver}, cat)
	if restarted.Completed || restarted.BookingID != "" || restarted.ServiceID != "" {
		t.Error("start over after completion must yield a fresh state")
	}
}

func TestEngineRejectsClientInternalActions(t *testing.T) {
	cat := catalog.Default()
	engine := NewEngine(cat, &fakeSubmitter{}, zap.NewNop())

	s := submittableState(t, cat)
	next, err := engine.Apply(context.Background(), s, Action{Type: actionSubmitSucceeded})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if next.Completed {
		t.Error("client-supplied internal action completed the wizard")
	}
}
