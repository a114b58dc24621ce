package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"opalclean-api/res/catalog"
	"opalclean-api/res/session"
	"opalclean-api/res/session/memory"
	"opalclean-api/res/store"
	"opalclean-api/res/wizard"
)

type fakeSubmitter struct {
	calls int
	err   error
}

func (f *fakeSubmitter) Submit(_ context.Context, _ *wizard.State) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return fmt.Sprintf("qte_test%d", f.calls), nil
}

type testEnv struct {
	handler   http.Handler
	sessions  session.Store
	submitter *fakeSubmitter
	catalog   *catalog.Catalog
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cat := catalog.Default()
	sessions := memory.New()
	submitter := &fakeSubmitter{}
	engine := wizard.NewEngine(cat, submitter, zap.NewNop())

	handler := New(&Config{
		Logger:      zap.NewNop(),
		Environment: "test",
		Catalog:     cat,
		Engine:      engine,
		Sessions:    sessions,
	})

	return &testEnv{
		handler:   handler,
		sessions:  sessions,
		submitter: submitter,
		catalog:   cat,
	}
}

// useStore rebuilds the handler with a backing store for the admin surface
func (e *testEnv) useStore(t *testing.T, s store.Store) {
	t.Helper()
	e.handler = New(&Config{
		Logger:      zap.NewNop(),
		Environment: "test",
		Catalog:     e.catalog,
		Engine:      wizard.NewEngine(e.catalog, e.submitter, zap.NewNop()),
		Sessions:    e.sessions,
		Store:       s,
	})
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func decodeView(t *testing.T, rec *httptest.ResponseRecorder) wizardView {
	t.Helper()
	var view wizardView
	if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
		t.Fatalf("decode view: %v", err)
	}
	return view
}

// seedSession stores a prepared state and returns its session id
func (e *testEnv) seedSession(t *testing.T, state wizard.State) string {
	t.Helper()
	const id = "11111111-2222-3333-4444-555555555555"
	if err := e.sessions.Set(context.Background(), id, &state); err != nil {
		t.Fatalf("seed session: %v", err)
	}
	return id
}

func submittableState() wizard.State {
	s := wizard.NewState()
	s.ServiceID = catalog.ServiceResidential
	s.PropertyType = "house"
	s.Bedrooms = 3
	s.Bathrooms = 2
	s.FirstName = "Dana"
	s.LastName = "Reeve"
	s.Email = "dana@example.com"
	s.Phone = "0412345678"
	s.Address = "12 Example St"
	s.Suburb = "Carlton"
	s.Postcode = "3053"
	s.PreferredDate = "2026-09-10"
	s.PreferredTime = "morning"
	s.OpenSection = wizard.SectionContactSchedule
	return s
}

func TestCreateWizard(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/wizard", nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	view := decodeView(t, rec)
	if view.SessionID == "" {
		t.Error("expected a session id")
	}
	if view.State.OpenSection != wizard.SectionService {
		t.Errorf("expected service section open, got %d", view.State.OpenSection)
	}
	if view.Breakdown.Total != 0 {
		t.Errorf("expected zero total on a fresh wizard, got %d", view.Breakdown.Total)
	}
	if len(view.Sections) != wizard.SectionCount {
		t.Errorf("expected %d sections, got %d", wizard.SectionCount, len(view.Sections))
	}
}

func TestGetWizardNotFound(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/wizard/nope", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestApplyWizardAction(t *testing.T) {
	env := newTestEnv(t)
	id := env.seedSession(t, wizard.NewState())

	rec := env.do(t, http.MethodPost, "/api/wizard/"+id+"/actions", wizard.Action{
		Type:      wizard.ActionSelectService,
		ServiceID: catalog.ServiceResidential,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	view := decodeView(t, rec)
	if view.State.ServiceID != catalog.ServiceResidential {
		t.Errorf("expected service selected, got %q", view.State.ServiceID)
	}
	if view.State.OpenSection != wizard.SectionPropertyDetails {
		t.Errorf("expected property section open, got %d", view.State.OpenSection)
	}

	// The new state must be persisted for the follow-up read
	rec = env.do(t, http.MethodGet, "/api/wizard/"+id, nil)
	if got := decodeView(t, rec).State.ServiceID; got != catalog.ServiceResidential {
		t.Errorf("expected persisted service, got %q", got)
	}
}

func TestApplyWizardActionRecomputesPrice(t *testing.T) {
	env := newTestEnv(t)

	state := wizard.NewState()
	state.ServiceID = catalog.ServiceResidential
	state.PropertyType = "house"
	id := env.seedSession(t, state)

	rec := env.do(t, http.MethodPost, "/api/wizard/"+id+"/actions", wizard.Action{
		Type:   wizard.ActionSetBedrooms,
		Number: 3,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	view := decodeView(t, rec)
	tier := env.catalog.TierFor(catalog.ServiceResidential, 3)
	if view.Breakdown.Total != tier.DiscountedPrice {
		t.Errorf("expected total %d, got %d", tier.DiscountedPrice, view.Breakdown.Total)
	}
}

func TestApplyWizardActionRejectsBeginSubmit(t *testing.T) {
	env := newTestEnv(t)
	id := env.seedSession(t, submittableState())

	rec := env.do(t, http.MethodPost, "/api/wizard/"+id+"/actions", wizard.Action{
		Type: wizard.ActionBeginSubmit,
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if env.submitter.calls != 0 {
		t.Error("submitter must not be called through the actions endpoint")
	}
}

func TestSubmitWizard(t *testing.T) {
	env := newTestEnv(t)
	id := env.seedSession(t, submittableState())

	rec := env.do(t, http.MethodPost, "/api/wizard/"+id+"/submit", submitWizardInput{})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	view := decodeView(t, rec)
	if !view.State.Completed {
		t.Error("expected completed state")
	}
	if view.State.BookingID == "" {
		t.Error("expected a booking id")
	}
	if env.submitter.calls != 1 {
		t.Errorf("expected one submission, got %d", env.submitter.calls)
	}
}

func TestSubmitWizardIncomplete(t *testing.T) {
	env := newTestEnv(t)

	state := submittableState()
	state.Email = "" // contact section incomplete
	id := env.seedSession(t, state)

	rec := env.do(t, http.MethodPost, "/api/wizard/"+id+"/submit", submitWizardInput{})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", rec.Code, rec.Body.String())
	}

	view := decodeView(t, rec)
	if view.State.OpenSection != wizard.SectionContactSchedule {
		t.Errorf("expected failing section opened, got %d", view.State.OpenSection)
	}
	if env.submitter.calls != 0 {
		t.Error("submitter must not be called for an incomplete wizard")
	}
}

func TestSubmitWizardFailurePreservesState(t *testing.T) {
	env := newTestEnv(t)
	env.submitter.err = errors.New("storage down")
	id := env.seedSession(t, submittableState())

	rec := env.do(t, http.MethodPost, "/api/wizard/"+id+"/submit", submitWizardInput{})
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d: %s", rec.Code, rec.Body.String())
	}

	// The session must survive the failure so the customer can retry
	state, err := env.sessions.Get(context.Background(), id)
	if err != nil {
		t.Fatalf("session lost after failed submit: %v", err)
	}
	if state.Completed || state.Submitting {
		t.Errorf("expected an editable state after failure, got completed=%v submitting=%v",
			state.Completed, state.Submitting)
	}
	if state.Email != "dana@example.com" {
		t.Error("expected entered data preserved after failure")
	}

	// Retry succeeds once the collaborator recovers
	env.submitter.err = nil
	rec = env.do(t, http.MethodPost, "/api/wizard/"+id+"/submit", submitWizardInput{})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on retry, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestPreviewQuote(t *testing.T) {
	env := newTestEnv(t)

	state := wizard.NewState()
	state.ServiceID = catalog.ServiceResidential
	state.Bedrooms = 3
	state.Extras[catalog.AddOnOven] = 1

	rec := env.do(t, http.MethodPost, "/api/quote/preview", state)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var out struct {
		Breakdown struct {
			Total int `json:"total"`
		} `json:"breakdown"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode preview: %v", err)
	}

	tier := env.catalog.TierFor(catalog.ServiceResidential, 3)
	oven := env.catalog.AddOn(catalog.AddOnOven)
	if want := tier.DiscountedPrice + oven.DiscountedPrice; out.Breakdown.Total != want {
		t.Errorf("expected total %d, got %d", want, out.Breakdown.Total)
	}
}

func TestGetCatalog(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/catalog?service="+catalog.ServiceEndOfLease, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var out struct {
		MostPopular []catalog.AddOnService `json:"mostPopular"`
		Recommended []catalog.AddOnService `json:"recommended"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode catalog: %v", err)
	}
	if len(out.MostPopular) == 0 {
		t.Error("expected most popular add-ons")
	}
	if len(out.Recommended) == 0 {
		t.Error("expected recommendations for the end-of-lease service")
	}
}

func TestAdminUnavailableWithoutStore(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/admin/quotes", nil)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 without storage, got %d", rec.Code)
	}
}
