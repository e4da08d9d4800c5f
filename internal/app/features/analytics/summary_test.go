package analytics

import (
	"testing"

	"github.com/dalemusser/assetdesk/internal/domain/models"
)

func TestSummarize(t *testing.T) {
	in := inputs{
		categories: []models.AssetCategory{{ID: "c1", Name: "Laptops"}, {ID: "c2", Name: "Phones"}, {ID: "c3", Name: "Empty"}},
		items: []models.AssetItem{
			{ID: "a", CategoryID: "c1", Status: models.StatusAvailable, PurchaseCost: 1000},
			{ID: "b", CategoryID: "c1", Status: models.StatusAssigned, PurchaseCost: 1200},
			{ID: "c", CategoryID: "c2", Status: models.StatusAssigned, PurchaseCost: 300},
		},
		employees: []models.Employee{{ID: "e1", Department: "Eng"}, {ID: "e2", Department: "Ops"}},
		assignments: []models.AssignmentRecord{
			{AssetID: "b", EmployeeID: "e1", Status: models.AssignmentActive},
			{AssetID: "c", EmployeeID: "e2", Status: models.AssignmentActive},
			{AssetID: "c", EmployeeID: "gone", Status: models.AssignmentActive},
			{AssetID: "a", EmployeeID: "e1", Status: models.AssignmentReturned},
		},
		maintenance: []models.MaintenanceRecord{
			{Status: models.MaintenanceCompleted, Cost: 50},
			{Status: models.MaintenanceCompleted, Cost: 25.5},
			{Status: models.MaintenanceScheduled},
		},
	}

	s := summarize(in)

	if s.TotalAssets != 3 || s.InventoryValue != 2500 {
		t.Errorf("totals = %d, %v", s.TotalAssets, s.InventoryValue)
	}
	if len(s.AssetsByStatus) != len(models.AssetStatuses) || s.AssetsByStatus[1] != (Bucket{models.StatusAssigned, 2}) {
		t.Errorf("by status = %+v", s.AssetsByStatus)
	}
	wantCat := []Bucket{{"Laptops", 2}, {"Phones", 1}, {"Empty", 0}}
	for i, b := range wantCat {
		if s.AssetsByCategory[i] != b {
			t.Errorf("by category[%d] = %+v, want %+v", i, s.AssetsByCategory[i], b)
		}
	}
	if s.MaintenanceCost != 75.5 {
		t.Errorf("maintenance cost = %v", s.MaintenanceCost)
	}
	wantMaint := []Bucket{{models.MaintenanceScheduled, 1}, {models.MaintenanceCompleted, 2}}
	if len(s.MaintenanceByState) != 2 || s.MaintenanceByState[0] != wantMaint[0] || s.MaintenanceByState[1] != wantMaint[1] {
		t.Errorf("maintenance = %+v", s.MaintenanceByState)
	}
	if s.ActiveAssignments != 3 {
		t.Errorf("active = %d, want 3", s.ActiveAssignments)
	}
	wantDept := []Bucket{{unassignedDept, 1}, {"Eng", 1}, {"Ops", 1}}
	for i, b := range wantDept {
		if s.AssignmentsByDept[i] != b {
			t.Errorf("by dept[%d] = %+v, want %+v", i, s.AssignmentsByDept[i], b)
		}
	}
}
