package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCollector_Records(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordHTTPRequest("GET", "/api/lost/:id", 200, 15*time.Millisecond)
	c.RecordHTTPRequest("GET", "/api/lost/:id", 200, 20*time.Millisecond)
	c.RecordHTTPRequest("GET", "", 404, time.Millisecond)
	c.RecordStatusChange("lost", "APPROVED")
	c.RecordAuthEvent("login_success")

	if got := testutil.ToFloat64(c.httpRequests.WithLabelValues("GET", "/api/lost/:id", "200")); got != 2 {
		t.Errorf("expected 2 requests, got %v", got)
	}
	if got := testutil.ToFloat64(c.httpRequests.WithLabelValues("GET", "unmatched", "404")); got != 1 {
		t.Errorf("expected unmatched route label, got %v", got)
	}
	if got := testutil.ToFloat64(c.statusChanges.WithLabelValues("lost", "APPROVED")); got != 1 {
		t.Errorf("expected 1 status change, got %v", got)
	}
	if got := testutil.ToFloat64(c.authEvents.WithLabelValues("login_success")); got != 1 {
		t.Errorf("expected 1 auth event, got %v", got)
	}
}

func TestHandler_Exposes(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.RecordStatusChange("found", "CLAIMED")

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), "lostfound_report_status_changes_total") {
		t.Errorf("metric missing from exposition:\n%s", body)
	}
}
