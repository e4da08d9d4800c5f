package inventory

import (
	"context"
	"net/http"
	"strings"

	"github.com/dalemusser/assetdesk/internal/app/policy/assignpolicy"
	"github.com/dalemusser/assetdesk/internal/app/system/paging"
	"github.com/dalemusser/assetdesk/internal/app/system/search"
	"github.com/dalemusser/assetdesk/internal/app/system/timeouts"
	"github.com/dalemusser/assetdesk/internal/app/system/viewdata"
	"github.com/dalemusser/assetdesk/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

var (
	assetSortFields   = []string{"name", "tag", "serial_number", "status", "location", "purchase_cost"}
	assetSearchFields = []string{"name", "tag", "serial_number", "status", "location"}
)

// ServeCategories lists every category with its asset counts per status.
// GET /inventory
func (h *Handler) ServeCategories(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	q := query.Search(r, "q")

	cats, err := h.Backend.ListCategories(ctx)
	if err != nil {
		h.ErrLog.LogBackendError(w, r, "list categories failed", err, "Could not load categories.", "/")
		return
	}
	items, err := h.Backend.ListAssetItems(ctx, "")
	if err != nil {
		h.ErrLog.LogBackendError(w, r, "list asset items failed", err, "Could not load assets.", "/")
		return
	}

	byCat := make(map[string]map[string]int, len(cats))
	for _, it := range items {
		if byCat[it.CategoryID] == nil {
			byCat[it.CategoryID] = map[string]int{}
		}
		byCat[it.CategoryID][it.Status]++
	}

	cats = search.SortData(search.FilterData(cats, q, []string{"name", "type", "description"}), "name", search.Asc)
	rows := make([]categoryRow, 0, len(cats))
	for _, c := range cats {
		counts := byCat[c.ID]
		row := categoryRow{
			ID:           c.ID,
			Name:         c.Name,
			Type:         c.Type,
			AssignableTo: c.Policy.AssignableTo,
			Available:    counts[models.StatusAvailable],
			Assigned:     counts[models.StatusAssigned],
		}
		for _, s := range models.AssetStatuses {
			if n := counts[s]; n > 0 {
				row.Counts = append(row.Counts, statusCount{Status: s, Count: n})
				row.Total += n
			}
		}
		rows = append(rows, row)
	}

	data := categoriesData{
		BaseVM:     h.base(w, r, "Inventory", "/"),
		Q:          q,
		Categories: rows,
	}

	if r.Header.Get("HX-Request") != "" && r.Header.Get("HX-Target") == "categories-table-wrap" {
		templates.RenderSnippet(w, "inventory_categories_table", data)
		return
	}
	templates.Render(w, r, "inventory_categories", data)
}

// ServeAssets lists one category's assets with search, status filter, sort
// and paging, flagging which rows can enter the assign or unassign workflow.
// GET /inventory/{categoryID}
func (h *Handler) ServeAssets(w http.ResponseWriter, r *http.Request) {
	categoryID := chi.URLParam(r, "categoryID")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	cat, err := h.Backend.GetCategory(ctx, categoryID)
	if err != nil {
		h.ErrLog.LogBackendError(w, r, "get category failed", err, "Could not load the category.", "/inventory")
		return
	}
	items, err := h.Backend.ListAssetItems(ctx, categoryID)
	if err != nil {
		h.ErrLog.LogBackendError(w, r, "list asset items failed", err, "Could not load assets.", "/inventory")
		return
	}
	employees, err := h.Backend.ListEmployees(ctx)
	if err != nil {
		// Names are decoration; the list still works with ids.
		h.Log.Warn("list employees failed", zap.String("category_id", categoryID), zap.Error(err))
	}
	names := make(map[string]string, len(employees))
	for _, e := range employees {
		names[e.ID] = e.FullName()
	}

	params := search.ParseParams(r, assetSortFields, "name")
	status := strings.TrimSpace(query.Get(r, "status"))
	if status != "" {
		kept := items[:0:0]
		for _, it := range items {
			if it.Status == status {
				kept = append(kept, it)
			}
		}
		items = kept
	}
	items = search.Apply(items, params, assetSearchFields)

	page := paging.ParsePage(r)
	rng := paging.ComputeRange(page, h.PageSize, len(items))
	visible := paging.Paginate(items, page, h.PageSize)

	rows := make([]assetRow, 0, len(visible))
	for _, it := range visible {
		row := assetRow{
			ID:           it.ID,
			Name:         it.Name,
			Tag:          it.Tag,
			SerialNumber: it.SerialNumber,
			Status:       it.Status,
			Location:     it.Location,
			CanAssign:    assignpolicy.IsAssetAssignable(it, cat),
			CanUnassign:  assignpolicy.IsAssetUnassignable(it),
		}
		if it.CurrentAssigneeID != "" {
			row.AssigneeName = names[it.CurrentAssigneeID]
			if row.AssigneeName == "" {
				row.AssigneeName = it.CurrentAssigneeID
			}
		}
		rows = append(rows, row)
	}

	data := assetsData{
		BaseVM:       h.base(w, r, cat.Name, "/inventory"),
		CategoryID:   cat.ID,
		CategoryName: cat.Name,
		Consumable:   cat.IsConsumable,
		Params:       params,
		Columns:      assetSearchFields,
		Status:       status,
		Statuses:     models.AssetStatuses,
		Rows:         rows,
		Pager:        paging.NewPager(r, rng, "#assets-table-wrap"),
	}

	if r.Header.Get("HX-Request") != "" && r.Header.Get("HX-Target") == "assets-table-wrap" {
		templates.RenderSnippet(w, "inventory_assets_table", data)
		return
	}
	templates.Render(w, r, "inventory_assets", data)
}

func (h *Handler) base(w http.ResponseWriter, r *http.Request, title, back string) viewdata.BaseVM {
	vm := viewdata.NewBaseVM(r, title, back)
	if h.State != nil {
		if n := h.State.PopFlash(w, r); n != nil {
			vm = vm.WithNotice(n.Type, n.Message)
		}
	}
	return vm
}
