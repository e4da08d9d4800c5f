package maintenance

import (
	"context"
	"net/http"
	"slices"
	"strconv"

	"github.com/dalemusser/assetdesk/internal/app/system/paging"
	"github.com/dalemusser/assetdesk/internal/app/system/search"
	"github.com/dalemusser/assetdesk/internal/app/system/timeouts"
	"github.com/dalemusser/assetdesk/internal/app/system/viewdata"
	"github.com/dalemusser/assetdesk/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

var (
	sortFields   = []string{"scheduled_date", "asset", "maintenance_type", "status", "technician", "cost"}
	searchFields = []string{"asset", "maintenance_type", "technician", "description", "status"}
)

// row is a maintenance record joined with its asset name. It implements
// search.Fielder so the list helpers can filter on the asset too.
type row struct {
	models.MaintenanceRecord
	AssetName string
	Scheduled string
	Completed string
	CostText  string
}

func (r row) Field(name string) any {
	if name == "asset" {
		return r.AssetName
	}
	return r.MaintenanceRecord.Field(name)
}

type listData struct {
	viewdata.BaseVM
	Params    search.Params
	Columns   []string
	Status    string
	Statuses  []string
	Rows      []row
	TotalCost string
	Pager     paging.Pager
}

// ServeList renders maintenance records across all assets, filtered by
// status and text, sorted and paginated.
// GET /maintenance
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	recs, err := h.Backend.ListMaintenanceHistory(ctx)
	if err != nil {
		h.ErrLog.LogBackendError(w, r, "list maintenance failed", err, "Could not load maintenance history.", "/")
		return
	}
	names := map[string]string{}
	if items, err := h.Backend.ListAssetItems(ctx, ""); err != nil {
		h.Log.Warn("list asset items failed", zap.Error(err))
	} else {
		for _, it := range items {
			names[it.ID] = it.Name
		}
	}

	status := query.Get(r, "status")
	rows := make([]row, 0, len(recs))
	for _, m := range recs {
		if status != "" && m.Status != status {
			continue
		}
		rw := row{MaintenanceRecord: m, AssetName: names[m.AssetID]}
		if rw.AssetName == "" {
			rw.AssetName = m.AssetID
		}
		if m.ScheduledDate != nil {
			rw.Scheduled = m.ScheduledDate.Format("2006-01-02")
		}
		if m.CompletedDate != nil {
			rw.Completed = m.CompletedDate.Format("2006-01-02")
		}
		if m.Cost != 0 {
			rw.CostText = strconv.FormatFloat(m.Cost, 'f', 2, 64)
		}
		rows = append(rows, rw)
	}

	params := search.ParseParams(r, sortFields, "scheduled_date")
	if !r.URL.Query().Has("order") && params.Sort == "scheduled_date" {
		params.Order = search.Desc
	}
	rows = search.Apply(rows, params, searchFields)

	var total float64
	for _, rw := range rows {
		total += rw.Cost
	}

	page := paging.ParsePage(r)
	data := listData{
		BaseVM:    viewdata.NewBaseVM(r, "Maintenance", "/"),
		Params:    params,
		Columns:   sortFields,
		Status:    status,
		Statuses:  slices.Clone(models.MaintenanceStatuses),
		Rows:      paging.Paginate(rows, page, h.PageSize),
		TotalCost: strconv.FormatFloat(total, 'f', 2, 64),
		Pager:     paging.NewPager(r, paging.ComputeRange(page, h.PageSize, len(rows)), "#maintenance-table-wrap"),
	}

	if r.Header.Get("HX-Request") != "" && r.Header.Get("HX-Target") == "maintenance-table-wrap" {
		templates.RenderSnippet(w, "maintenance_table", data)
		return
	}
	templates.Render(w, r, "maintenance_list", data)
}
