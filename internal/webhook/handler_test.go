package webhook

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"callbridge/internal/audit"
	"callbridge/internal/crm"

	"github.com/gin-gonic/gin"
)

func newTestRouter(t *testing.T, f fixture) *gin.Engine {
	t.Helper()
	return newTestRouterWithDedup(t, f, nil)
}

func newTestRouterWithDedup(t *testing.T, f fixture, dedup Deduper) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := Handler{Service: f.svc, Dedup: dedup}
	r.Any("/webhooks/ringcentral/call", h.HandleCallEvent)
	return r
}

// memDeduper is an in-memory Deduper useful for tests.
type memDeduper struct {
	seen    map[string]bool
	markErr error
}

func newMemDeduper() *memDeduper { return &memDeduper{seen: map[string]bool{}} }

func (d *memDeduper) MarkProcessed(_ context.Context, eventID string, _ time.Duration) (bool, error) {
	if d.markErr != nil {
		return false, d.markErr
	}
	if d.seen[eventID] {
		return false, nil
	}
	d.seen[eventID] = true
	return true, nil
}

func (d *memDeduper) Clear(_ context.Context, eventID string) error {
	delete(d.seen, eventID)
	return nil
}

func postEvent(r *gin.Engine, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/webhooks/ringcentral/call", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestHandleCallEvent_NonPostAcknowledged(t *testing.T) {
	f := newFixture(t, nil)
	r := newTestRouter(t, f)

	for _, method := range []string{http.MethodGet, http.MethodHead, http.MethodPut, http.MethodDelete} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(method, "/webhooks/ringcentral/call", nil)
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", method, w.Code)
		}
		if method != http.MethodHead && w.Body.String() != "OK" {
			t.Fatalf("%s: expected OK body, got %q", method, w.Body.String())
		}
	}
	if len(f.repo.Communications()) != 0 {
		t.Fatalf("validation pings must have no side effects")
	}
}

func TestHandleCallEvent_LogsCall(t *testing.T) {
	f := newFixture(t, nil)
	r := newTestRouter(t, f)

	body := `{
		"uuid": "evt-1",
		"event": "/restapi/v1.0/account/~/telephony/sessions",
		"body": {
			"from": {"phoneNumber": "+1 (555) 123-4567"},
			"to": {"phoneNumber": "+15550001111"},
			"duration": 120
		}
	}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/webhooks/ringcentral/call", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", w.Code, w.Body.String())
	}
	if w.Body.String() != "Call logged successfully" {
		t.Fatalf("unexpected body: %q", w.Body.String())
	}
	stored := f.repo.Communications()
	if len(stored) != 1 {
		t.Fatalf("expected one record, got %d", len(stored))
	}
	if stored[0].CallID != "evt-1" {
		t.Fatalf("expected external call id persisted, got %q", stored[0].CallID)
	}
}

func TestHandleCallEvent_CustomerNotFound(t *testing.T) {
	f := newFixture(t, nil)
	r := newTestRouter(t, f)

	body := `{
		"uuid": "evt-2",
		"body": {
			"from": {"phoneNumber": "+44 20 7946 0000"},
			"to": {"phoneNumber": "+15550001111"},
			"duration": 60
		}
	}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/webhooks/ringcentral/call", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	if w.Body.String() != "Customer lookup failed" {
		t.Fatalf("unexpected body: %q", w.Body.String())
	}
	if len(f.repo.Communications()) != 0 {
		t.Fatalf("no record must be created")
	}
}

func TestHandleCallEvent_MalformedJSON(t *testing.T) {
	f := newFixture(t, nil)
	r := newTestRouter(t, f)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/webhooks/ringcentral/call", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if w.Body.String() != "Internal Server Error" {
		t.Fatalf("unexpected body: %q", w.Body.String())
	}
}

func TestHandleCallEvent_ProcessingFailure(t *testing.T) {
	f := newFixture(t, failingProvider{})
	r := newTestRouter(t, f)

	body := `{
		"uuid": "evt-3",
		"body": {
			"from": {"phoneNumber": "+1 (555) 123-4567"},
			"to": {"phoneNumber": "+15550001111"},
			"duration": 60
		}
	}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/webhooks/ringcentral/call", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if len(f.repo.Communications()) != 0 {
		t.Fatalf("no partial record must persist")
	}
}

const knownCallerBody = `{
	"uuid": "evt-10",
	"body": {
		"from": {"phoneNumber": "+1 (555) 123-4567"},
		"to": {"phoneNumber": "+15550001111"},
		"duration": 120
	}
}`

const unknownCallerBody = `{
	"uuid": "evt-11",
	"body": {
		"from": {"phoneNumber": "+44 20 7946 0000"},
		"to": {"phoneNumber": "+15550001111"},
		"duration": 60
	}
}`

func TestHandleCallEvent_ReplayedDeliveryIsIdempotent(t *testing.T) {
	f := newFixture(t, nil)
	r := newTestRouterWithDedup(t, f, newMemDeduper())

	w := postEvent(r, knownCallerBody)
	if w.Code != http.StatusOK {
		t.Fatalf("first delivery: expected 200, got %d (%s)", w.Code, w.Body.String())
	}

	w = postEvent(r, knownCallerBody)
	if w.Code != http.StatusOK || w.Body.String() != "Call logged successfully" {
		t.Fatalf("replay: expected 200 success body, got %d (%s)", w.Code, w.Body.String())
	}

	if n := len(f.repo.Communications()); n != 1 {
		t.Fatalf("replay must not write a second record, got %d", n)
	}

	var dup bool
	for _, e := range f.auditRepo.Events() {
		if e.Type == audit.EventTypeDuplicateEvent && e.CallID == "evt-10" {
			dup = true
		}
	}
	if !dup {
		t.Fatalf("expected duplicate_event audit entry")
	}
}

func TestHandleCallEvent_RetryAfterCustomerNotFoundIsProcessed(t *testing.T) {
	f := newFixture(t, nil)
	r := newTestRouterWithDedup(t, f, newMemDeduper())

	w := postEvent(r, unknownCallerBody)
	if w.Code != http.StatusNotFound {
		t.Fatalf("first delivery: expected 404, got %d", w.Code)
	}

	// The vendor retries non-2xx deliveries; the retry must be looked up
	// again, not skipped as a duplicate that claims success.
	w = postEvent(r, unknownCallerBody)
	if w.Code != http.StatusNotFound || w.Body.String() != "Customer lookup failed" {
		t.Fatalf("retry: expected 404 lookup failure, got %d (%s)", w.Code, w.Body.String())
	}
	if n := len(f.repo.Communications()); n != 0 {
		t.Fatalf("no record must exist yet, got %d", n)
	}

	// Once the customer exists, the next retry logs the call.
	f.repo.AddCustomer(crm.Customer{ID: "cust-uk", Name: "UK Ltd", Phone: "442079460000"})
	w = postEvent(r, unknownCallerBody)
	if w.Code != http.StatusOK {
		t.Fatalf("retry after customer added: expected 200, got %d (%s)", w.Code, w.Body.String())
	}
	stored := f.repo.Communications()
	if len(stored) != 1 || stored[0].CustomerID != "cust-uk" {
		t.Fatalf("expected one record for the added customer, got %+v", stored)
	}
}

func TestHandleCallEvent_RetryAfterFailureIsProcessed(t *testing.T) {
	f := newFixture(t, failingProvider{})
	r := newTestRouterWithDedup(t, f, newMemDeduper())

	w := postEvent(r, knownCallerBody)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("first delivery: expected 500, got %d", w.Code)
	}

	w = postEvent(r, knownCallerBody)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("retry must be processed again, got %d (%s)", w.Code, w.Body.String())
	}
}

func TestHandleCallEvent_DedupOutageDegradesToProcessing(t *testing.T) {
	f := newFixture(t, nil)
	d := newMemDeduper()
	d.markErr = context.DeadlineExceeded
	r := newTestRouterWithDedup(t, f, d)

	w := postEvent(r, knownCallerBody)
	if w.Code != http.StatusOK {
		t.Fatalf("dedup outage must not fail the request, got %d (%s)", w.Code, w.Body.String())
	}
	if n := len(f.repo.Communications()); n != 1 {
		t.Fatalf("expected record despite dedup outage, got %d", n)
	}
}

func TestPartyNumber_FallsBackToExtension(t *testing.T) {
	p := Party{ExtensionNumber: "101"}
	if p.Number() != "101" {
		t.Fatalf("expected extension fallback, got %q", p.Number())
	}
	p = Party{PhoneNumber: "+15550001111", ExtensionNumber: "101"}
	if p.Number() != "+15550001111" {
		t.Fatalf("expected phone number preferred, got %q", p.Number())
	}
}
