package employees_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/assetdesk/internal/app/features/employees"
	uierrors "github.com/dalemusser/assetdesk/internal/app/features/errors"
	"github.com/dalemusser/assetdesk/internal/domain/models"
	"github.com/dalemusser/assetdesk/internal/testutil"
	"go.uber.org/zap"
)

func newHandler(fb *testutil.FakeBackend, pageSize int) *employees.Handler {
	logger := zap.NewNop()
	return employees.NewHandler(fb, uierrors.NewErrorLogger(logger), pageSize, logger)
}

func TestServeList(t *testing.T) {
	fb := testutil.NewFakeBackend()

	tests := []struct {
		name    string
		target  string
		htmx    bool
		present []string
		absent  []string
	}{
		{"all", "/employees", false, []string{"Ada Lovelace", "Alan Turing", "Grace Hopper", `<option value="Research"`}, nil},
		{"department filter", "/employees?department=Engineering", false, []string{"Ada Lovelace", "Grace Hopper"}, []string{"Alan Turing"}},
		{"search", "/employees?q=crypto", true, []string{"Alan Turing"}, []string{"Ada Lovelace", "<html"}},
		{"paged", "/employees?sort=name&page=2", false, []string{"Grace Hopper"}, []string{"Ada Lovelace"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHandler(fb, 2)
			req := testutil.NewRequest("GET", tt.target)
			if tt.htmx {
				req = testutil.HTMX(req, "employees-table-wrap")
			}
			rec := testutil.NewRecorder()
			h.ServeList(rec, req)

			rec.AssertStatus(t, http.StatusOK)
			for _, s := range tt.present {
				rec.AssertContains(t, s)
			}
			for _, s := range tt.absent {
				rec.AssertNotContains(t, s)
			}
		})
	}
}

func TestServeDetail(t *testing.T) {
	fb := testutil.NewFakeBackend()
	due := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	returned := time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC)
	fb.Assignments = append(fb.Assignments,
		models.AssignmentRecord{ID: "h1", AssetID: "l1", EmployeeID: "e2", AssignmentType: models.AssignmentTemporary,
			AssignedDate: time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC), ExpectedReturnDate: &due, Status: models.AssignmentActive},
		models.AssignmentRecord{ID: "h2", AssetID: "a1", EmployeeID: "e2", AssignmentType: models.AssignmentPermanent,
			AssignedDate: time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC), ActualReturnDate: &returned, Status: models.AssignmentReturned},
	)
	defer employees.SetNow(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))()

	h := newHandler(fb, 0)
	req := testutil.WithChiURLParam(testutil.NewRequest("GET", "/employees/e2?department=Research"), "employeeID", "e2")
	rec := testutil.NewRecorder()
	h.ServeDetail(rec, req)

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "Alan Turing")
	// Current asset with an unassign shortcut.
	rec.AssertContains(t, "/unassign/cat-laptops?preselect=a3")
	// Returned asset resolved by name from the full list.
	rec.AssertContains(t, "MacBook Pro")
	rec.AssertContains(t, "2026-01-20")
	rec.AssertContains(t, "overdue")
	// Back link keeps the directory filter.
	rec.AssertContains(t, `href="/employees?department=Research"`)
}

func TestServeDetail_NotFound(t *testing.T) {
	h := newHandler(testutil.NewFakeBackend(), 0)
	req := testutil.WithChiURLParam(testutil.NewRequest("GET", "/employees/zz"), "employeeID", "zz")
	rec := testutil.NewRecorder()
	h.ServeDetail(rec, req)

	rec.AssertStatus(t, http.StatusNotFound)
}
