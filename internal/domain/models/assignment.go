// internal/domain/models/assignment.go
package models

import "time"

// Assignment record statuses.
const (
	AssignmentActive   = "active"
	AssignmentReturned = "returned"
)

// Assignment types.
const (
	AssignmentPermanent = "PERMANENT"
	AssignmentTemporary = "TEMPORARY"
)

// AssignmentRecord is the audit entry linking an asset to an employee over a
// time range. Records are created by the assign workflow, flipped to
// "returned" by the unassign workflow and never deleted.
type AssignmentRecord struct {
	ID             string `bson:"_id" json:"id"`
	AssetID        string `bson:"asset_id" json:"asset_id"`
	EmployeeID     string `bson:"employee_id" json:"employee_id"`
	AssignmentType string `bson:"assignment_type" json:"assignment_type"`

	AssignedDate       time.Time  `bson:"assigned_date" json:"assigned_date"`
	ExpectedReturnDate *time.Time `bson:"expected_return_date,omitempty" json:"expected_return_date,omitempty"`
	ActualReturnDate   *time.Time `bson:"actual_return_date,omitempty" json:"actual_return_date,omitempty"`

	Status    string `bson:"status" json:"status"`
	Notes     string `bson:"notes,omitempty" json:"notes,omitempty"`
	Condition string `bson:"condition,omitempty" json:"condition,omitempty"`

	ReturnNotes     string `bson:"return_notes,omitempty" json:"return_notes,omitempty"`
	ReturnCondition string `bson:"return_condition,omitempty" json:"return_condition,omitempty"`
}

// IsActive reports whether the assignment has not been returned.
func (a AssignmentRecord) IsActive() bool { return a.Status == AssignmentActive }

// IsOverdue reports whether an active assignment is past its expected
// return date.
func (a AssignmentRecord) IsOverdue(now time.Time) bool {
	return a.IsActive() && a.ExpectedReturnDate != nil && a.ExpectedReturnDate.Before(now)
}

// UnassignRequest is the payload for POST /assignment-history/unassign.
type UnassignRequest struct {
	AssetID      string    `json:"asset_id"`
	EmployeeID   string    `json:"employee_id"`
	ReturnDate   time.Time `json:"return_date"`
	Notes        string    `json:"notes,omitempty"`
	Condition    string    `json:"condition,omitempty"`
	AssignmentID string    `json:"assignment_id,omitempty"`
}
