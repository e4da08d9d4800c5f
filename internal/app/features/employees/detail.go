package employees

import (
	"context"
	"net/http"
	"sort"

	"github.com/dalemusser/assetdesk/internal/app/system/navigation"
	"github.com/dalemusser/assetdesk/internal/app/system/timeouts"
	"github.com/dalemusser/assetdesk/internal/app/system/viewdata"
	"github.com/dalemusser/assetdesk/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type heldAsset struct {
	ID         string
	Name       string
	Tag        string
	Status     string
	CategoryID string
}

type historyRow struct {
	AssetID   string
	AssetName string
	Type      string
	Assigned  string
	Expected  string
	Returned  string
	Status    string
	Overdue   bool
}

type detailData struct {
	viewdata.BaseVM
	Employee models.Employee
	Name     string
	Assets   []heldAsset
	History  []historyRow
}

// ServeDetail shows an employee's current assets and assignment history.
// GET /employees/{employeeID}
func (h *Handler) ServeDetail(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "employeeID")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	d, err := h.Backend.GetEmployeeDetails(ctx, id)
	if err != nil {
		h.ErrLog.LogBackendError(w, r, "get employee details failed", err, "Employee not found.", "/employees")
		return
	}

	// History may reference returned assets that are not in d.Assets.
	names := make(map[string]string)
	for _, a := range d.Assets {
		names[a.ID] = a.Name
	}
	if all, err := h.Backend.ListAssetItems(ctx, ""); err != nil {
		h.Log.Warn("list asset items failed", zap.String("employee_id", id), zap.Error(err))
	} else {
		for _, a := range all {
			names[a.ID] = a.Name
		}
	}

	name := d.Employee.FullName()
	data := detailData{
		BaseVM:   viewdata.NewBaseVM(r, name, "/employees"),
		Employee: d.Employee,
		Name:     name,
	}
	data.BackURL = navigation.SafeBackURL(r, navigation.EmployeesBackURL)

	for _, a := range d.Assets {
		data.Assets = append(data.Assets, heldAsset{ID: a.ID, Name: a.Name, Tag: a.Tag, Status: a.Status, CategoryID: a.CategoryID})
	}

	now := timeNow()
	recs := d.Assignments
	sort.SliceStable(recs, func(i, j int) bool { return recs[i].AssignedDate.After(recs[j].AssignedDate) })
	for _, rec := range recs {
		row := historyRow{
			AssetID:   rec.AssetID,
			AssetName: names[rec.AssetID],
			Type:      rec.AssignmentType,
			Assigned:  rec.AssignedDate.Format(dateLayout),
			Status:    rec.Status,
		}
		if row.AssetName == "" {
			row.AssetName = rec.AssetID
		}
		if rec.ExpectedReturnDate != nil {
			row.Expected = rec.ExpectedReturnDate.Format(dateLayout)
			row.Overdue = rec.IsOverdue(now)
		}
		if rec.ActualReturnDate != nil {
			row.Returned = rec.ActualReturnDate.Format(dateLayout)
		}
		data.History = append(data.History, row)
	}

	templates.Render(w, r, "employee_detail", data)
}
