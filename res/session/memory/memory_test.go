package memory

import (
	"context"
	"errors"
	"testing"

	"opalclean-api/res/session"
	"opalclean-api/res/wizard"
)

func TestRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := New()

	state := wizard.NewState()
	state.ServiceID = "residential"
	state.Extras["oven"] = 1

	if err := store.Set(ctx, "sess-1", &state); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, err := store.Get(ctx, "sess-1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.ServiceID != "residential" || got.Extras["oven"] != 1 {
		t.Errorf("got %+v", got)
	}

	// The stored copy must not alias the caller's map
	got.Extras["oven"] = 5
	again, _ := store.Get(ctx, "sess-1")
	if again.Extras["oven"] != 1 {
		t.Error("stored state aliases a returned copy")
	}
}

func TestMissingAndDroppedSessions(t *testing.T) {
	ctx := context.Background()
	store := New()

	if _, err := store.Get(ctx, "nope"); !errors.Is(err, session.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}

	state := wizard.NewState()
	if err := store.Set(ctx, "sess-1", &state); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := store.Drop(ctx, "sess-1"); err != nil {
		t.Fatalf("Drop failed: %v", err)
	}
	if _, err := store.Get(ctx, "sess-1"); !errors.Is(err, session.ErrNotFound) {
		t.Errorf("err after drop = %v, want ErrNotFound", err)
	}
}
