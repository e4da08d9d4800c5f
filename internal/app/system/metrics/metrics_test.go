package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestInstrument_UsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Instrument)
	r.Get("/assets/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/assets/{id}", "418"))
	for _, id := range []string{"a1", "a2"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/assets/"+id, nil))
		if rec.Code != http.StatusTeapot {
			t.Fatalf("status = %d", rec.Code)
		}
	}
	after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/assets/{id}", "418"))
	if after-before != 2 {
		t.Errorf("counter delta = %v, want 2", after-before)
	}
}

func TestObserveBackend(t *testing.T) {
	before := testutil.ToFloat64(backendRequestsTotal.WithLabelValues("GET /employees", Error))
	ObserveBackend("GET /employees", time.Now(), errors.New("boom"))
	after := testutil.ToFloat64(backendRequestsTotal.WithLabelValues("GET /employees", Error))
	if after-before != 1 {
		t.Errorf("error counter delta = %v, want 1", after-before)
	}
}

func TestObserveSubmission(t *testing.T) {
	okBefore := testutil.ToFloat64(workflowPairsTotal.WithLabelValues("assign", OK))
	errBefore := testutil.ToFloat64(workflowPairsTotal.WithLabelValues("assign", Error))
	ObserveSubmission("assign", 4, 1, errors.New("x"))
	if d := testutil.ToFloat64(workflowPairsTotal.WithLabelValues("assign", OK)) - okBefore; d != 3 {
		t.Errorf("ok pairs delta = %v, want 3", d)
	}
	if d := testutil.ToFloat64(workflowPairsTotal.WithLabelValues("assign", Error)) - errBefore; d != 1 {
		t.Errorf("error pairs delta = %v, want 1", d)
	}
}

func TestInit_Idempotent(t *testing.T) {
	Init()
	Init()
	ObserveSubmission("unassign", 1, 0, nil)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if !strings.Contains(rec.Body.String(), "assetdesk_workflow_submissions_total") {
		t.Errorf("metrics output missing workflow collector")
	}
}

func TestSetInventory(t *testing.T) {
	at := time.Unix(1_800_000_000, 0)
	SetInventory([]string{"available", "assigned"}, map[string]int{"available": 4}, 2, at)

	if got := testutil.ToFloat64(inventoryAssets.WithLabelValues("available")); got != 4 {
		t.Errorf("available = %v, want 4", got)
	}
	if got := testutil.ToFloat64(inventoryAssets.WithLabelValues("assigned")); got != 0 {
		t.Errorf("assigned = %v, want 0", got)
	}
	if got := testutil.ToFloat64(overdueAssignments); got != 2 {
		t.Errorf("overdue = %v, want 2", got)
	}
	if got := testutil.ToFloat64(inventoryRefreshed); got != 1_800_000_000 {
		t.Errorf("refreshed = %v", got)
	}
}
