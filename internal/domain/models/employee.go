// internal/domain/models/employee.go
package models

import "strings"

// Employee is a potential recipient of asset assignments. Employees do not own
// asset items; the relationship is recorded on AssignmentRecord.
type Employee struct {
	ID               string   `bson:"_id" json:"id"`
	FirstName        string   `bson:"first_name" json:"first_name"`
	LastName         string   `bson:"last_name" json:"last_name"`
	FullNameCI       string   `bson:"full_name_ci" json:"-"`
	Email            string   `bson:"email,omitempty" json:"email,omitempty"`
	Department       string   `bson:"department" json:"department"`
	Team             string   `bson:"team,omitempty" json:"team,omitempty"`
	Position         string   `bson:"position,omitempty" json:"position,omitempty"`
	AssignedAssetIDs []string `bson:"assigned_assets,omitempty" json:"assigned_assets,omitempty"`
}

// FullName returns "First Last", trimmed.
func (e Employee) FullName() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}

// Field returns the value of a named field for list filtering and sorting.
func (e Employee) Field(name string) any {
	switch name {
	case "id":
		return e.ID
	case "first_name":
		return e.FirstName
	case "last_name":
		return e.LastName
	case "name", "full_name":
		return e.FullName()
	case "email":
		return e.Email
	case "department":
		return e.Department
	case "team":
		return e.Team
	case "position":
		return e.Position
	case "asset_count":
		return len(e.AssignedAssetIDs)
	}
	return nil
}

// EmployeeDetails is the employee view returned by GET /employees/{id}/details.
type EmployeeDetails struct {
	Employee    Employee           `json:"employee"`
	Assets      []AssetItem        `json:"assets"`
	Assignments []AssignmentRecord `json:"assignments"`
}
