package assets

import (
	"context"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/dalemusser/assetdesk/internal/app/policy/assignpolicy"
	"github.com/dalemusser/assetdesk/internal/app/system/navigation"
	"github.com/dalemusser/assetdesk/internal/app/system/timeouts"
	"github.com/dalemusser/assetdesk/internal/app/system/viewdata"
	"github.com/dalemusser/assetdesk/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type specRow struct {
	Key   string
	Value string
}

type historyRow struct {
	EmployeeID   string
	EmployeeName string
	Type         string
	Assigned     string
	Expected     string
	Returned     string
	Status       string
	Notes        string
}

type maintenanceRow struct {
	Type       string
	Status     string
	Technician string
	Scheduled  string
	Completed  string
	Cost       string
	Notes      string
}

type documentRow struct {
	Name     string
	Type     string
	URL      string
	Uploaded string
}

type detailData struct {
	viewdata.BaseVM

	Asset        models.AssetItem
	CategoryID   string
	CategoryName string
	AssigneeName string
	PurchaseDate string
	PurchaseCost string
	Specs        []specRow

	CanAssign   bool
	CanUnassign bool
	AssignURL   string
	UnassignURL string

	History     []historyRow
	Maintenance []maintenanceRow
	Documents   []documentRow

	// Partial is set when a secondary section could not be loaded.
	Partial bool
}

const dateLayout = "2006-01-02"

func formatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

func formatCost(v float64) string {
	if v == 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// ServeDetail shows one asset with its category, specifications, assignment
// history, maintenance history and documents.
// GET /assets/{assetID}
func (h *Handler) ServeDetail(w http.ResponseWriter, r *http.Request) {
	assetID := chi.URLParam(r, "assetID")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	asset, err := h.Backend.GetAssetItem(ctx, assetID)
	if err != nil {
		h.ErrLog.LogBackendError(w, r, "get asset failed", err, "Asset not found.", "/inventory")
		return
	}
	cat, err := h.Backend.GetCategory(ctx, asset.CategoryID)
	if err != nil {
		h.ErrLog.LogBackendError(w, r, "get category failed", err, "Could not load the asset's category.", "/inventory")
		return
	}

	// Secondary sections degrade independently.
	var (
		employees   []models.Employee
		history     []models.AssignmentRecord
		maintenance []models.MaintenanceRecord
		documents   []models.Document
		partial     bool
	)
	soft := func(what string, err error) {
		if err != nil {
			h.Log.Warn("asset detail section failed",
				zap.String("asset_id", assetID),
				zap.String("section", what),
				zap.Error(err))
			partial = true
		}
	}
	var (
		g       errgroup.Group
		errEmp  error
		errHist error
		errMnt  error
		errDocs error
	)
	g.Go(func() error { employees, errEmp = h.Backend.ListEmployees(ctx); return nil })
	g.Go(func() error { history, errHist = h.Backend.ListAssignments(ctx, assetID); return nil })
	g.Go(func() error { maintenance, errMnt = h.Backend.ListMaintenanceHistory(ctx); return nil })
	g.Go(func() error { documents, errDocs = h.Backend.ListDocuments(ctx, assetID); return nil })
	_ = g.Wait()
	soft("employees", errEmp)
	soft("assignments", errHist)
	soft("maintenance", errMnt)
	soft("documents", errDocs)

	names := make(map[string]string, len(employees))
	for _, e := range employees {
		names[e.ID] = e.FullName()
	}
	name := func(id string) string {
		if n := names[id]; n != "" {
			return n
		}
		return id
	}

	opts := navigation.AssetBackURL
	opts.Fallback = "/inventory/" + url.PathEscape(cat.ID)
	back := navigation.SafeBackURL(r, opts)
	data := detailData{
		BaseVM:       viewdata.NewBaseVM(r, assetTitle(asset), back),
		Asset:        asset,
		CategoryID:   cat.ID,
		CategoryName: cat.Name,
		PurchaseDate: formatDate(asset.PurchaseDate),
		PurchaseCost: formatCost(asset.PurchaseCost),
		CanAssign:    assignpolicy.IsAssetAssignable(asset, cat),
		CanUnassign:  assignpolicy.IsAssetUnassignable(asset),
		Partial:      partial,
	}
	data.BackURL = back
	if asset.CurrentAssigneeID != "" {
		data.AssigneeName = name(asset.CurrentAssigneeID)
	}
	pre := "?preselect=" + url.QueryEscape(asset.ID)
	data.AssignURL = "/assign/" + url.PathEscape(cat.ID) + pre
	data.UnassignURL = "/unassign/" + url.PathEscape(cat.ID) + pre

	keys := make([]string, 0, len(asset.Specs))
	for k := range asset.Specs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		data.Specs = append(data.Specs, specRow{Key: k, Value: asset.Specs[k]})
	}

	sort.SliceStable(history, func(i, j int) bool { return history[i].AssignedDate.After(history[j].AssignedDate) })
	for _, rec := range history {
		data.History = append(data.History, historyRow{
			EmployeeID:   rec.EmployeeID,
			EmployeeName: name(rec.EmployeeID),
			Type:         rec.AssignmentType,
			Assigned:     formatDate(&rec.AssignedDate),
			Expected:     formatDate(rec.ExpectedReturnDate),
			Returned:     formatDate(rec.ActualReturnDate),
			Status:       rec.Status,
			Notes:        rec.Notes,
		})
	}

	for _, m := range maintenance {
		if m.AssetID != asset.ID {
			continue
		}
		data.Maintenance = append(data.Maintenance, maintenanceRow{
			Type:       m.Type,
			Status:     m.Status,
			Technician: m.Technician,
			Scheduled:  formatDate(m.ScheduledDate),
			Completed:  formatDate(m.CompletedDate),
			Cost:       formatCost(m.Cost),
			Notes:      m.Description,
		})
	}

	for _, d := range documents {
		data.Documents = append(data.Documents, documentRow{
			Name:     d.Name,
			Type:     d.Type,
			URL:      d.URL,
			Uploaded: formatDate(&d.UploadedAt),
		})
	}

	templates.Render(w, r, "asset_detail", data)
}

func assetTitle(a models.AssetItem) string {
	if a.Tag != "" {
		return a.Name + " (" + a.Tag + ")"
	}
	return a.Name
}
