package employees

import (
	"context"
	"net/http"
	"slices"

	"github.com/dalemusser/assetdesk/internal/app/system/paging"
	"github.com/dalemusser/assetdesk/internal/app/system/search"
	"github.com/dalemusser/assetdesk/internal/app/system/timeouts"
	"github.com/dalemusser/assetdesk/internal/app/system/viewdata"
	"github.com/dalemusser/assetdesk/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
)

var (
	sortFields   = []string{"name", "email", "department", "team", "position", "asset_count"}
	searchFields = []string{"name", "email", "department", "team", "position"}
)

type employeeRow struct {
	ID         string
	Name       string
	Email      string
	Department string
	Team       string
	Position   string
	AssetCount int
}

type listData struct {
	viewdata.BaseVM
	Params      search.Params
	Columns     []string
	Department  string
	Departments []string
	Rows        []employeeRow
	Pager       paging.Pager
}

// ServeList renders the employee directory with department filter, search,
// sort and paging.
// GET /employees
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	emps, err := h.Backend.ListEmployees(ctx)
	if err != nil {
		h.ErrLog.LogBackendError(w, r, "list employees failed", err, "Could not load employees.", "/")
		return
	}

	var departments []string
	for _, e := range emps {
		if e.Department != "" && !slices.Contains(departments, e.Department) {
			departments = append(departments, e.Department)
		}
	}
	slices.Sort(departments)

	dept := query.Get(r, "department")
	if dept != "" {
		emps = slices.DeleteFunc(emps, func(e models.Employee) bool { return e.Department != dept })
	}
	params := search.ParseParams(r, sortFields, "name")
	emps = search.Apply(emps, params, searchFields)

	page := paging.ParsePage(r)
	rng := paging.ComputeRange(page, h.PageSize, len(emps))

	data := listData{
		BaseVM:      viewdata.NewBaseVM(r, "Employees", "/"),
		Params:      params,
		Columns:     sortFields,
		Department:  dept,
		Departments: departments,
		Pager:       paging.NewPager(r, rng, "#employees-table-wrap"),
	}
	for _, e := range paging.Paginate(emps, page, h.PageSize) {
		data.Rows = append(data.Rows, employeeRow{
			ID:         e.ID,
			Name:       e.FullName(),
			Email:      e.Email,
			Department: e.Department,
			Team:       e.Team,
			Position:   e.Position,
			AssetCount: len(e.AssignedAssetIDs),
		})
	}

	if r.Header.Get("HX-Request") != "" && r.Header.Get("HX-Target") == "employees-table-wrap" {
		templates.RenderSnippet(w, "employees_table", data)
		return
	}
	templates.Render(w, r, "employees_list", data)
}
