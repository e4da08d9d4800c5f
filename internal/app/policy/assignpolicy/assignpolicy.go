// internal/app/policy/assignpolicy/assignpolicy.go
//
// Package assignpolicy decides which assets may be offered for assignment or
// unassignment and which employees may receive them. Categories must already
// be in canonical form (see normalize.Category); no fallback field names are
// consulted here.
package assignpolicy

import (
	"slices"

	"github.com/dalemusser/assetdesk/internal/domain/models"
)

// IsAssetAssignable reports whether asset may be offered for assignment.
//
// Precedence matters because a category can satisfy more than one tier:
//  1. consumable categories accept any asset not in maintenance
//  2. otherwise, multi-assignment categories accept any asset not in maintenance
//  3. otherwise the asset must be available
func IsAssetAssignable(asset models.AssetItem, category models.AssetCategory) bool {
	if asset.InMaintenance() {
		return false
	}
	if category.IsConsumable {
		return true
	}
	if category.AllowMultipleAssignments {
		return true
	}
	return asset.Status == models.StatusAvailable
}

// IsAssetUnassignable reports whether asset may be offered for unassignment.
// Backend records have used inconsistent status representations, so either
// signal is enough: status "assigned", or an active-assignment flag paired
// with a current assignee or assignment id.
func IsAssetUnassignable(asset models.AssetItem) bool {
	if asset.Status == models.StatusAssigned {
		return true
	}
	return asset.HasActiveAssignment && (asset.CurrentAssigneeID != "" || asset.CurrentAssignmentID != "")
}

// AllowMultipleEmployees reports whether more than one recipient may be
// selected at once: true exactly for team and department policies.
func AllowMultipleEmployees(category models.AssetCategory) bool {
	switch category.Policy.AssignableTo {
	case models.AssignableToTeam, models.AssignableToDepartment:
		return true
	}
	return false
}

// EligibleEntities returns the employees who may receive assets of category.
// Department and team policies filter by their allow-list only when it is
// non-empty; every other policy returns all employees.
func EligibleEntities(category models.AssetCategory, employees []models.Employee) []models.Employee {
	switch category.Policy.AssignableTo {
	case models.AssignableToDepartment:
		return filterBy(employees, category.Policy.Departments, func(e models.Employee) string { return e.Department })
	case models.AssignableToTeam:
		return filterBy(employees, category.Policy.Teams, func(e models.Employee) string { return e.Team })
	}
	return employees
}

func filterBy(employees []models.Employee, allow []string, key func(models.Employee) string) []models.Employee {
	if len(allow) == 0 {
		return employees
	}
	out := make([]models.Employee, 0, len(employees))
	for _, e := range employees {
		if k := key(e); k != "" && slices.Contains(allow, k) {
			out = append(out, e)
		}
	}
	return out
}

// ExceedsMaxAssignments reports whether assigning to n recipients would pass
// the category's max_assignments limit. A limit of 0 means unlimited.
func ExceedsMaxAssignments(category models.AssetCategory, n int) bool {
	limit := category.Policy.MaxAssignments
	return limit > 0 && n > limit
}
