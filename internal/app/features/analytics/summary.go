package analytics

import (
	"context"
	"slices"
	"strings"

	"github.com/dalemusser/assetdesk/internal/domain/models"
	"golang.org/x/sync/errgroup"
)

// Bucket is one labelled count.
type Bucket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Summary is the dashboard payload.
type Summary struct {
	TotalAssets        int      `json:"total_assets"`
	AssetsByStatus     []Bucket `json:"assets_by_status"`
	AssetsByCategory   []Bucket `json:"assets_by_category"`
	MaintenanceByState []Bucket `json:"maintenance_by_status"`
	MaintenanceCost    float64  `json:"maintenance_cost"`
	ActiveAssignments  int      `json:"active_assignments"`
	AssignmentsByDept  []Bucket `json:"active_assignments_by_department"`
	InventoryValue     float64  `json:"inventory_value"`
}

type inputs struct {
	categories  []models.AssetCategory
	items       []models.AssetItem
	employees   []models.Employee
	assignments []models.AssignmentRecord
	maintenance []models.MaintenanceRecord
}

func (h *Handler) load(ctx context.Context) (inputs, error) {
	var in inputs
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { in.categories, err = h.Backend.ListCategories(ctx); return })
	g.Go(func() (err error) { in.items, err = h.Backend.ListAssetItems(ctx, ""); return })
	g.Go(func() (err error) { in.employees, err = h.Backend.ListEmployees(ctx); return })
	g.Go(func() (err error) { in.assignments, err = h.Backend.ListAssignments(ctx, ""); return })
	g.Go(func() (err error) { in.maintenance, err = h.Backend.ListMaintenanceHistory(ctx); return })
	return in, g.Wait()
}

const unassignedDept = "(none)"

func summarize(in inputs) Summary {
	var s Summary

	s.TotalAssets = len(in.items)
	byStatus := map[string]int{}
	byCat := map[string]int{}
	for _, it := range in.items {
		byStatus[it.Status]++
		byCat[it.CategoryID]++
		s.InventoryValue += it.PurchaseCost
	}
	for _, st := range models.AssetStatuses {
		s.AssetsByStatus = append(s.AssetsByStatus, Bucket{Label: st, Count: byStatus[st]})
	}
	for _, c := range in.categories {
		s.AssetsByCategory = append(s.AssetsByCategory, Bucket{Label: c.Name, Count: byCat[c.ID]})
	}
	slices.SortStableFunc(s.AssetsByCategory, func(a, b Bucket) int {
		if a.Count != b.Count {
			return b.Count - a.Count
		}
		return strings.Compare(a.Label, b.Label)
	})

	byMaint := map[string]int{}
	for _, m := range in.maintenance {
		byMaint[m.Status]++
		s.MaintenanceCost += m.Cost
	}
	for _, st := range models.MaintenanceStatuses {
		if n := byMaint[st]; n > 0 {
			s.MaintenanceByState = append(s.MaintenanceByState, Bucket{Label: st, Count: n})
		}
	}

	dept := make(map[string]string, len(in.employees))
	for _, e := range in.employees {
		dept[e.ID] = e.Department
	}
	byDept := map[string]int{}
	for _, a := range in.assignments {
		if !a.IsActive() {
			continue
		}
		s.ActiveAssignments++
		d := dept[a.EmployeeID]
		if d == "" {
			d = unassignedDept
		}
		byDept[d]++
	}
	for d, n := range byDept {
		s.AssignmentsByDept = append(s.AssignmentsByDept, Bucket{Label: d, Count: n})
	}
	slices.SortFunc(s.AssignmentsByDept, func(a, b Bucket) int { return strings.Compare(a.Label, b.Label) })
	return s
}
