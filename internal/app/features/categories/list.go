package categories

import (
	"context"
	"net/http"

	"github.com/dalemusser/assetdesk/internal/app/system/htmlsanitize"
	"github.com/dalemusser/assetdesk/internal/app/system/search"
	"github.com/dalemusser/assetdesk/internal/app/system/timeouts"
	"github.com/dalemusser/assetdesk/internal/app/system/viewdata"
	"github.com/dalemusser/assetdesk/internal/app/workflow"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

var (
	sortFields   = []string{"name", "type", "assignable_to", "max_assignments"}
	searchFields = []string{"name", "type", "description", "assignable_to"}
)

// ServeList renders the category table.
// GET /categories
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	cats, err := h.Backend.ListCategories(ctx)
	if err != nil {
		h.ErrLog.LogBackendError(w, r, "list categories failed", err, "Could not load categories.", "/")
		return
	}

	params := search.ParseParams(r, sortFields, "name")
	cats = search.Apply(cats, params, searchFields)

	data := listData{
		BaseVM:  viewdata.NewBaseVM(r, "Categories", "/"),
		Params:  params,
		Columns: sortFields,
	}
	if n := h.popFlash(w, r); n != nil {
		data.BaseVM = data.BaseVM.WithNotice(n.Type, n.Message)
	}
	for _, c := range cats {
		data.Rows = append(data.Rows, listRow{
			ID:             c.ID,
			Name:           c.Name,
			Type:           c.Type,
			AssignableTo:   c.Policy.AssignableTo,
			Consumable:     c.IsConsumable,
			MultipleAssign: c.AllowMultipleAssignments,
			MaxAssignments: c.Policy.MaxAssignments,
			Description:    htmlsanitize.SanitizeToHTML(c.Description),
		})
	}

	if r.Header.Get("HX-Request") != "" && r.Header.Get("HX-Target") == "categories-list-wrap" {
		templates.RenderSnippet(w, "categories_table", data)
		return
	}
	templates.Render(w, r, "categories_list", data)
}

func (h *Handler) flash(w http.ResponseWriter, r *http.Request, typ, msg string) {
	if h.State == nil {
		return
	}
	if err := h.State.Flash(w, r, workflow.Notification{Type: typ, Message: msg}); err != nil {
		h.Log.Warn("store flash failed", zap.Error(err))
	}
}

func (h *Handler) popFlash(w http.ResponseWriter, r *http.Request) *workflow.Notification {
	if h.State == nil {
		return nil
	}
	return h.State.PopFlash(w, r)
}
