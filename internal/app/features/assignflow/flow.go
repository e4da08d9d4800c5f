package assignflow

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/dalemusser/assetdesk/internal/app/system/paging"
	"github.com/dalemusser/assetdesk/internal/app/system/search"
	"github.com/dalemusser/assetdesk/internal/app/system/timeouts"
	"github.com/dalemusser/assetdesk/internal/app/system/viewdata"
	"github.com/dalemusser/assetdesk/internal/app/workflow"
	"github.com/dalemusser/assetdesk/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const panelTarget = "workflow-panel"

var (
	assetSearchFields  = []string{"name", "tag", "serial_number", "status", "location"}
	entitySearchFields = []string{"name", "email", "department", "team", "position"}
)

// loadCatalog fetches the category, its assets and all employees in parallel.
func (h *Handler) loadCatalog(ctx context.Context, categoryID string) (workflow.Catalog, error) {
	var cat workflow.Catalog
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		c, err := h.Backend.GetCategory(ctx, categoryID)
		cat.Category = c
		return err
	})
	g.Go(func() error {
		items, err := h.Backend.ListAssetItems(ctx, categoryID)
		cat.Assets = items
		return err
	})
	g.Go(func() error {
		emps, err := h.Backend.ListEmployees(ctx)
		cat.Employees = emps
		return err
	})
	return cat, g.Wait()
}

// begin loads the catalog and the caller's controller, dropping selected
// assets that vanished or became ineligible since the last request.
func (h *Handler) begin(w http.ResponseWriter, r *http.Request, mode workflow.Mode) (*workflow.Controller, workflow.Catalog, bool) {
	categoryID := chi.URLParam(r, "categoryID")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	cat, err := h.loadCatalog(ctx, categoryID)
	if err != nil {
		h.ErrLog.LogBackendError(w, r, "load workflow catalog failed", err, "Could not load the category.", "/inventory")
		return nil, cat, false
	}

	c := h.State.Workflow(r, mode, categoryID)
	if dropped := c.Prune(cat); len(dropped) > 0 {
		h.Log.Info("dropped stale asset selections",
			zap.String("mode", string(mode)),
			zap.String("category_id", categoryID),
			zap.Strings("asset_ids", dropped))
	}
	return c, cat, true
}

// serve renders the workflow screen.
// GET /{mode}/{categoryID}?preselect=&aq=&eq=
func (h *Handler) serve(mode workflow.Mode) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, cat, ok := h.begin(w, r, mode)
		if !ok {
			return
		}

		if id := query.Get(r, "preselect"); id != "" {
			c.Preselect(cat, id)
		}
		qs := r.URL.Query()
		if qs.Has("aq") {
			c.AssetSearch = query.Search(r, "aq")
		}
		if qs.Has("eq") {
			c.EntitySearch = query.Search(r, "eq")
		}

		h.respond(w, r, c, cat, confirmForm{})
	}
}

// step is one workflow transition driven by a POST.
type step func(c *workflow.Controller, cat workflow.Catalog, r *http.Request) error

func toggleAsset(c *workflow.Controller, cat workflow.Catalog, r *http.Request) error {
	return c.ToggleAsset(cat, chi.URLParam(r, "assetID"))
}

func clearSelection(c *workflow.Controller, _ workflow.Catalog, _ *http.Request) error {
	c.Clear()
	return nil
}

func openEntitySelection(c *workflow.Controller, _ workflow.Catalog, _ *http.Request) error {
	return c.OpenEntitySelection()
}

func toggleEntity(c *workflow.Controller, cat workflow.Catalog, r *http.Request) error {
	return c.ToggleEntity(cat, chi.URLParam(r, "employeeID"))
}

func openConfirmation(c *workflow.Controller, cat workflow.Catalog, _ *http.Request) error {
	return c.OpenConfirmation(cat)
}

func back(c *workflow.Controller, _ workflow.Catalog, _ *http.Request) error {
	return c.Back()
}

func cancelFlow(c *workflow.Controller, _ workflow.Catalog, _ *http.Request) error {
	return c.Cancel()
}

// action wraps a step: load, apply, save, re-render. Step errors never reach
// the user as error pages; they become a notice on the workflow screen.
func (h *Handler) action(mode workflow.Mode, name string, fn step) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, cat, ok := h.begin(w, r, mode)
		if !ok {
			return
		}
		if err := fn(c, cat, r); err != nil {
			h.stepFailed(c, name, err)
		}
		h.respond(w, r, c, cat, confirmForm{})
	}
}

func (h *Handler) stepFailed(c *workflow.Controller, name string, err error) {
	fields := []zap.Field{
		zap.String("mode", string(c.Mode)),
		zap.String("category_id", c.CategoryID),
		zap.String("step", name),
		zap.String("state", string(c.State)),
		zap.Error(err),
	}
	switch {
	case errors.Is(err, workflow.ErrUnknownAsset), errors.Is(err, workflow.ErrUnknownEntity):
		h.Log.Warn("workflow lookup miss", fields...)
		c.Notice = &workflow.Notification{Type: workflow.NoticeError, Message: "That item is no longer available. The list has been refreshed."}
	case errors.Is(err, workflow.ErrInvalidTransition):
		h.Log.Info("workflow step out of order", fields...)
		c.Notice = &workflow.Notification{Type: workflow.NoticeError, Message: "That action is not available right now."}
	default:
		h.Log.Error("workflow step failed", fields...)
		c.Notice = &workflow.Notification{Type: workflow.NoticeError, Message: "Something went wrong. Please try again."}
	}
}

// respond saves c and renders the panel for HTMX callers, the full page for
// GETs, and a redirect back to the screen for plain form posts.
func (h *Handler) respond(w http.ResponseWriter, r *http.Request, c *workflow.Controller, cat workflow.Catalog, form confirmForm) {
	notice := c.Notice
	// Notices show once.
	c.Notice = nil
	if err := h.State.SaveWorkflow(w, r, c); err != nil {
		h.Log.Error("save workflow state failed", zap.String("category_id", c.CategoryID), zap.Error(err))
	}

	htmx := r.Header.Get("HX-Request") != ""
	if r.Method != http.MethodGet && !htmx {
		if notice != nil {
			if err := h.State.Flash(w, r, *notice); err != nil {
				h.Log.Warn("store flash failed", zap.Error(err))
			}
		}
		http.Redirect(w, r, screenURL(c), http.StatusSeeOther)
		return
	}

	data := h.view(r, c, cat, form)
	if notice == nil && r.Method == http.MethodGet {
		notice = h.State.PopFlash(w, r)
	}
	if notice != nil {
		data.Flash = &viewdata.Notice{Type: notice.Type, Message: notice.Message}
	}

	if htmx && r.Header.Get("HX-Target") == panelTarget {
		templates.RenderSnippet(w, "workflow_panel", data)
		return
	}
	templates.Render(w, r, "workflow_page", data)
}

func screenURL(c *workflow.Controller) string {
	return "/" + string(c.Mode) + "/" + url.PathEscape(c.CategoryID)
}

func verb(mode workflow.Mode) string {
	if mode == workflow.ModeUnassign {
		return "Unassign"
	}
	return "Assign"
}

// view builds the screen model from the controller and catalog.
func (h *Handler) view(r *http.Request, c *workflow.Controller, cat workflow.Catalog, form confirmForm) workflowData {
	names := make(map[string]string, len(cat.Employees))
	for _, e := range cat.Employees {
		names[e.ID] = e.FullName()
	}

	data := workflowData{
		BaseVM:        viewdata.NewBaseVM(r, verb(c.Mode)+" "+cat.Category.Name, "/inventory/"+url.PathEscape(c.CategoryID)),
		Mode:          string(c.Mode),
		Verb:          verb(c.Mode),
		ActionBase:    screenURL(c),
		CategoryID:    c.CategoryID,
		CategoryName:  cat.Category.Name,
		AssignableTo:  cat.Category.Policy.AssignableTo,
		AllowMultiple: c.AllowMultiple(cat),
		MaxRecipients: cat.Category.Policy.MaxAssignments,
		State:         string(c.State),
		ShowPicker:    c.State == workflow.EntitySelectionOpen,
		ShowConfirm:   c.State == workflow.ConfirmationOpen,
		AssetSearch:   c.AssetSearch,
		EntitySearch:  c.EntitySearch,
		PairCount:     len(c.Pairs()),
		Form:          form,
		AssignmentTypes: []string{
			models.AssignmentPermanent,
			models.AssignmentTemporary,
		},
	}
	if data.Form.AssignmentType == "" {
		data.Form.AssignmentType = models.AssignmentPermanent
	}

	option := func(a models.AssetItem) assetOption {
		return assetOption{
			ID:       a.ID,
			Name:     a.Name,
			Tag:      a.Tag,
			Status:   a.Status,
			Holder:   names[a.CurrentAssigneeID],
			Selected: c.Assets.Has(a.ID),
			Eligible: c.Eligible(a, cat.Category),
		}
	}

	assets := search.SortData(search.FilterData(cat.Assets, c.AssetSearch, assetSearchFields), "name", search.Asc)
	page := paging.ParsePage(r)
	data.AssetPager = paging.NewPager(r, paging.ComputeRange(page, h.Opts.PageSize, len(assets)), "#"+panelTarget, "preselect")
	for _, a := range paging.Paginate(assets, page, h.Opts.PageSize) {
		data.Assets = append(data.Assets, option(a))
	}

	for _, id := range c.Assets.IDs {
		a, ok := cat.Asset(id)
		if !ok {
			h.Log.Warn("selected asset missing from catalog", zap.String("asset_id", id))
			continue
		}
		data.SelectedAssets = append(data.SelectedAssets, option(a))
	}

	if data.ShowPicker || data.ShowConfirm {
		candidates := search.SortData(search.FilterData(c.Candidates(cat), c.EntitySearch, entitySearchFields), "name", search.Asc)
		for _, e := range candidates {
			data.Candidates = append(data.Candidates, entityOption{
				ID:         e.ID,
				Name:       e.FullName(),
				Email:      e.Email,
				Department: e.Department,
				Team:       e.Team,
				Selected:   c.Entities.Has(e.ID),
			})
		}
		for _, id := range c.Entities.IDs {
			e, ok := cat.Employee(id)
			if !ok {
				h.Log.Warn("selected employee missing from catalog", zap.String("employee_id", id))
				continue
			}
			data.SelectedEntities = append(data.SelectedEntities, entityOption{
				ID:         e.ID,
				Name:       e.FullName(),
				Department: e.Department,
				Team:       e.Team,
				Selected:   true,
			})
		}
	}
	return data
}

// trimmed returns the trimmed form value of key.
func trimmed(r *http.Request, key string) string {
	return strings.TrimSpace(r.FormValue(key))
}
