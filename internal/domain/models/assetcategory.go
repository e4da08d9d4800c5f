// internal/domain/models/assetcategory.go
package models

import "time"

// Assignable-to values for AssignmentPolicy.AssignableTo.
const (
	AssignableToSingleEmployee = "single_employee"
	AssignableToEmployee       = "employee"
	AssignableToDepartment     = "department"
	AssignableToTeam           = "team"
)

// AssignmentPolicy describes who may receive assets of a category.
//
// Departments and Teams are allow-lists. An empty allow-list means
// "no restriction", even when AssignableTo names that dimension.
type AssignmentPolicy struct {
	AssignableTo   string   `bson:"assignable_to" json:"assignable_to"`
	Departments    []string `bson:"assignable_to_departments,omitempty" json:"assignable_to_departments,omitempty"`
	Teams          []string `bson:"assignable_to_teams,omitempty" json:"assignable_to_teams,omitempty"`
	MaxAssignments int      `bson:"max_assignments,omitempty" json:"max_assignments,omitempty"` // 0 = unlimited
}

// AssetCategory groups asset items that share assignment and maintenance policy.
//
// Categories loaded from the REST backend go through normalize.Category once,
// so Policy is always the canonical shape regardless of which historical
// field names the payload used.
type AssetCategory struct {
	ID          string `bson:"_id" json:"id"`
	Name        string `bson:"name" json:"name"`
	NameCI      string `bson:"name_ci" json:"-"` // folded for sorting/search
	Type        string `bson:"type" json:"type"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`

	IsConsumable             bool `bson:"is_consumable" json:"is_consumable"`
	AllowMultipleAssignments bool `bson:"allow_multiple_assignments" json:"allow_multiple_assignments"`
	// IsAllotted categories are tracked in aggregate rather than per asset.
	IsAllotted    bool `bson:"is_allotted" json:"is_allotted"`
	TotalQuantity int  `bson:"total_quantity,omitempty" json:"total_quantity,omitempty"`

	Policy AssignmentPolicy `bson:"assignment_policies" json:"assignment_policies"`

	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt *time.Time `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}

// Field returns the value of a named field for list filtering and sorting.
func (c AssetCategory) Field(name string) any {
	switch name {
	case "id":
		return c.ID
	case "name":
		return c.Name
	case "type":
		return c.Type
	case "description":
		return c.Description
	case "assignable_to":
		return c.Policy.AssignableTo
	case "total_quantity":
		return c.TotalQuantity
	case "max_assignments":
		return c.Policy.MaxAssignments
	}
	return nil
}
