package uistate

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dalemusser/assetdesk/internal/app/workflow"
	"go.uber.org/zap"
)

const testKey = "0123456789abcdef0123456789abcdef"

func newStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(Config{Key: testKey}, zap.NewNop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

// roundTrip copies Set-Cookie headers from rec onto a fresh request.
func roundTrip(rec *httptest.ResponseRecorder) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	return req
}

func TestNew_RejectsShortKey(t *testing.T) {
	if _, err := New(Config{Key: "short"}, zap.NewNop()); err == nil {
		t.Error("expected error for short key")
	}
}

func TestWorkflow_RoundTrip(t *testing.T) {
	s := newStore(t)

	c := workflow.New(workflow.ModeAssign, "cat1")
	c.Assets.Toggle("a1")
	c.Assets.Toggle("a2")
	c.State = workflow.AssetsSelected
	c.AssetSearch = "mac"

	rec := httptest.NewRecorder()
	if err := s.SaveWorkflow(rec, httptest.NewRequest(http.MethodGet, "/", nil), c); err != nil {
		t.Fatalf("SaveWorkflow: %v", err)
	}

	got := s.Workflow(roundTrip(rec), workflow.ModeAssign, "cat1")
	if got.State != workflow.AssetsSelected || strings.Join(got.Assets.IDs, ",") != "a1,a2" || got.AssetSearch != "mac" {
		t.Errorf("restored = %+v", got)
	}
}

func TestWorkflow_MismatchStartsFresh(t *testing.T) {
	s := newStore(t)

	c := workflow.New(workflow.ModeAssign, "cat1")
	c.Assets.Toggle("a1")
	rec := httptest.NewRecorder()
	_ = s.SaveWorkflow(rec, httptest.NewRequest(http.MethodGet, "/", nil), c)

	tests := []struct {
		name string
		mode workflow.Mode
		cat  string
	}{
		{"other category", workflow.ModeAssign, "cat2"},
		{"other mode", workflow.ModeUnassign, "cat1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Workflow(roundTrip(rec), tt.mode, tt.cat)
			if got.Assets.Len() != 0 || got.State != workflow.Idle || got.Mode != tt.mode || got.CategoryID != tt.cat {
				t.Errorf("expected fresh controller, got %+v", got)
			}
		})
	}
}

func TestWorkflow_TamperedCookie(t *testing.T) {
	s := newStore(t)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: DefaultSessionName, Value: "not-a-valid-cookie"})

	got := s.Workflow(req, workflow.ModeAssign, "cat1")
	if got.State != workflow.Idle {
		t.Errorf("expected idle controller, got %+v", got)
	}
}

func TestFlash_PopOnce(t *testing.T) {
	s := newStore(t)

	rec := httptest.NewRecorder()
	if err := s.Flash(rec, httptest.NewRequest(http.MethodGet, "/", nil), workflow.Notification{Type: workflow.NoticeSuccess, Message: "Saved"}); err != nil {
		t.Fatalf("Flash: %v", err)
	}

	rec2 := httptest.NewRecorder()
	n := s.PopFlash(rec2, roundTrip(rec))
	if n == nil || n.Message != "Saved" {
		t.Fatalf("PopFlash = %+v", n)
	}
	if again := s.PopFlash(httptest.NewRecorder(), roundTrip(rec2)); again != nil {
		t.Errorf("flash should be consumed, got %+v", again)
	}
}
