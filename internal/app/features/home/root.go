package home

import (
	"context"
	"net/http"
	"sort"

	"github.com/dalemusser/assetdesk/internal/app/system/timeouts"
	"github.com/dalemusser/assetdesk/internal/app/system/viewdata"
	"github.com/dalemusser/assetdesk/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"golang.org/x/sync/errgroup"
)

const recentLimit = 5

type tile struct {
	Label string
	Count int
	Href  string
}

type recentRow struct {
	AssetID  string
	Asset    string
	Employee string
	Date     string
	Status   string
}

type homeData struct {
	viewdata.BaseVM
	Tiles  []tile
	Recent []recentRow
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET / – landing dashboard                                                   |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeRoot(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	var (
		cats        []models.AssetCategory
		items       []models.AssetItem
		employees   []models.Employee
		assignments []models.AssignmentRecord
		maint       []models.MaintenanceRecord
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { cats, err = h.Backend.ListCategories(gctx); return })
	g.Go(func() (err error) { items, err = h.Backend.ListAssetItems(gctx, ""); return })
	g.Go(func() (err error) { employees, err = h.Backend.ListEmployees(gctx); return })
	g.Go(func() (err error) { assignments, err = h.Backend.ListAssignments(gctx, ""); return })
	g.Go(func() (err error) { maint, err = h.Backend.ListMaintenanceHistory(gctx); return })
	if err := g.Wait(); err != nil {
		h.ErrLog.LogBackendError(w, r, "load dashboard failed", err, "Could not load the dashboard.", "/")
		return
	}

	var available, assigned, openMaint int
	names := make(map[string]string, len(items))
	for _, it := range items {
		names[it.ID] = it.Name
		switch it.Status {
		case models.StatusAvailable:
			available++
		case models.StatusAssigned:
			assigned++
		}
	}
	for _, m := range maint {
		if m.Status != models.MaintenanceCompleted && m.Status != models.MaintenanceCancelled {
			openMaint++
		}
	}
	people := make(map[string]string, len(employees))
	for _, e := range employees {
		people[e.ID] = e.FullName()
	}

	sort.SliceStable(assignments, func(i, j int) bool {
		return assignments[i].AssignedDate.After(assignments[j].AssignedDate)
	})
	if len(assignments) > recentLimit {
		assignments = assignments[:recentLimit]
	}
	recent := make([]recentRow, 0, len(assignments))
	for _, a := range assignments {
		recent = append(recent, recentRow{
			AssetID:  a.AssetID,
			Asset:    fallback(names[a.AssetID], a.AssetID),
			Employee: fallback(people[a.EmployeeID], a.EmployeeID),
			Date:     a.AssignedDate.Format("2006-01-02"),
			Status:   a.Status,
		})
	}

	templates.Render(w, r, "home", homeData{
		BaseVM: viewdata.NewBaseVM(r, "Dashboard", "/"),
		Tiles: []tile{
			{Label: "Categories", Count: len(cats), Href: "/categories"},
			{Label: "Assets", Count: len(items), Href: "/inventory"},
			{Label: "Available", Count: available, Href: "/inventory"},
			{Label: "Assigned", Count: assigned, Href: "/inventory"},
			{Label: "Employees", Count: len(employees), Href: "/employees"},
			{Label: "Open maintenance", Count: openMaint, Href: "/maintenance"},
		},
		Recent: recent,
	})
}

func fallback(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
