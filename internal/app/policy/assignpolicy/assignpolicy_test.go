package assignpolicy

import (
	"testing"

	"github.com/dalemusser/assetdesk/internal/domain/models"
)

var maintenance = []string{models.StatusUnderMaintenance, models.StatusMaintenanceRequested}

func TestIsAssetAssignable_Consumable(t *testing.T) {
	cat := models.AssetCategory{IsConsumable: true}
	for _, status := range models.AssetStatuses {
		asset := models.AssetItem{Status: status, HasActiveAssignment: true, CurrentAssigneeID: "e1"}
		want := status != models.StatusUnderMaintenance && status != models.StatusMaintenanceRequested
		if got := IsAssetAssignable(asset, cat); got != want {
			t.Errorf("consumable, status %q: got %v, want %v", status, got, want)
		}
	}
}

func TestIsAssetAssignable_SingleAssignment(t *testing.T) {
	cat := models.AssetCategory{}
	for _, status := range models.AssetStatuses {
		want := status == models.StatusAvailable
		if got := IsAssetAssignable(models.AssetItem{Status: status}, cat); got != want {
			t.Errorf("single, status %q: got %v, want %v", status, got, want)
		}
	}
}

func TestIsAssetAssignable_MultipleOverride(t *testing.T) {
	cat := models.AssetCategory{IsConsumable: false, AllowMultipleAssignments: true}
	if !IsAssetAssignable(models.AssetItem{Status: models.StatusAssigned}, cat) {
		t.Error("assigned asset in multi-assignment category should be assignable")
	}
	for _, status := range maintenance {
		if IsAssetAssignable(models.AssetItem{Status: status}, cat) {
			t.Errorf("status %q should veto the multi-assignment override", status)
		}
	}
}

func TestIsAssetUnassignable(t *testing.T) {
	tests := []struct {
		name  string
		asset models.AssetItem
		want  bool
	}{
		{"status assigned", models.AssetItem{Status: models.StatusAssigned}, true},
		{"flag with assignee", models.AssetItem{Status: models.StatusAvailable, HasActiveAssignment: true, CurrentAssigneeID: "e1"}, true},
		{"flag with assignment id", models.AssetItem{HasActiveAssignment: true, CurrentAssignmentID: "r1"}, true},
		{"flag without ids", models.AssetItem{Status: models.StatusAvailable, HasActiveAssignment: true}, false},
		{"assignee without flag", models.AssetItem{Status: models.StatusAvailable, CurrentAssigneeID: "e1"}, false},
		{"available", models.AssetItem{Status: models.StatusAvailable}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsAssetUnassignable(tt.asset); got != tt.want {
				t.Errorf("IsAssetUnassignable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAllowMultipleEmployees(t *testing.T) {
	tests := []struct {
		assignableTo string
		want         bool
	}{
		{models.AssignableToTeam, true},
		{models.AssignableToDepartment, true},
		{models.AssignableToSingleEmployee, false},
		{models.AssignableToEmployee, false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.assignableTo, func(t *testing.T) {
			cat := models.AssetCategory{Policy: models.AssignmentPolicy{AssignableTo: tt.assignableTo}}
			if got := AllowMultipleEmployees(cat); got != tt.want {
				t.Errorf("AllowMultipleEmployees(%q) = %v, want %v", tt.assignableTo, got, tt.want)
			}
		})
	}
}

func TestEligibleEntities(t *testing.T) {
	staff := []models.Employee{
		{ID: "1", Department: "Engineering", Team: "Platform"},
		{ID: "2", Department: "Finance", Team: "Payroll"},
		{ID: "3", Department: "Engineering"},
	}

	tests := []struct {
		name   string
		policy models.AssignmentPolicy
		want   []string
	}{
		{"department allow-list", models.AssignmentPolicy{AssignableTo: "department", Departments: []string{"Engineering"}}, []string{"1", "3"}},
		{"department empty allow-list", models.AssignmentPolicy{AssignableTo: "department"}, []string{"1", "2", "3"}},
		{"team allow-list", models.AssignmentPolicy{AssignableTo: "team", Teams: []string{"Payroll"}}, []string{"2"}},
		{"team empty allow-list", models.AssignmentPolicy{AssignableTo: "team"}, []string{"1", "2", "3"}},
		{"single employee", models.AssignmentPolicy{AssignableTo: "single_employee", Departments: []string{"Finance"}}, []string{"1", "2", "3"}},
		{"employee", models.AssignmentPolicy{AssignableTo: "employee"}, []string{"1", "2", "3"}},
		{"unset", models.AssignmentPolicy{}, []string{"1", "2", "3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EligibleEntities(models.AssetCategory{Policy: tt.policy}, staff)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d employees, want %d", len(got), len(tt.want))
			}
			for i, e := range got {
				if e.ID != tt.want[i] {
					t.Errorf("employee %d = %q, want %q", i, e.ID, tt.want[i])
				}
			}
		})
	}
}

func TestExceedsMaxAssignments(t *testing.T) {
	unlimited := models.AssetCategory{}
	if ExceedsMaxAssignments(unlimited, 100) {
		t.Error("zero max means unlimited")
	}
	capped := models.AssetCategory{Policy: models.AssignmentPolicy{MaxAssignments: 2}}
	if ExceedsMaxAssignments(capped, 2) {
		t.Error("2 of 2 should be allowed")
	}
	if !ExceedsMaxAssignments(capped, 3) {
		t.Error("3 of 2 should exceed")
	}
}
