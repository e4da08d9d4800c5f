// internal/domain/models/assetitem.go
package models

import "time"

// Asset item statuses.
const (
	StatusAvailable            = "available"
	StatusAssigned             = "assigned"
	StatusUnderMaintenance     = "under_maintenance"
	StatusMaintenanceRequested = "maintenance_requested"
	StatusRetired              = "retired"
	StatusLost                 = "lost"
)

// AssetStatuses lists every asset status in display order.
var AssetStatuses = []string{
	StatusAvailable,
	StatusAssigned,
	StatusUnderMaintenance,
	StatusMaintenanceRequested,
	StatusRetired,
	StatusLost,
}

// AssetItem is a single physical asset.
//
// CategoryID and CurrentAssigneeID are weak references resolved by lookup.
// An item with Status "assigned" has a CurrentAssigneeID unless its category
// is consumable or allows multiple assignments.
type AssetItem struct {
	ID           string `bson:"_id" json:"id"`
	Name         string `bson:"name" json:"name"`
	NameCI       string `bson:"name_ci" json:"-"`
	Tag          string `bson:"tag" json:"tag"`
	SerialNumber string `bson:"serial_number" json:"serial_number"`
	CategoryID   string `bson:"category_id" json:"category_id"`
	Status       string `bson:"status" json:"status"`

	HasActiveAssignment bool   `bson:"has_active_assignment" json:"has_active_assignment"`
	CurrentAssigneeID   string `bson:"current_assignee_id,omitempty" json:"current_assignee_id,omitempty"`
	CurrentAssignmentID string `bson:"current_assignment_id,omitempty" json:"current_assignment_id,omitempty"`

	Location     string            `bson:"location,omitempty" json:"location,omitempty"`
	Condition    string            `bson:"condition,omitempty" json:"condition,omitempty"`
	PurchaseDate *time.Time        `bson:"purchase_date,omitempty" json:"purchase_date,omitempty"`
	PurchaseCost float64           `bson:"purchase_cost,omitempty" json:"purchase_cost,omitempty"`
	Specs        map[string]string `bson:"specifications,omitempty" json:"specifications,omitempty"`

	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt *time.Time `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}

// InMaintenance reports whether the item is under or awaiting maintenance.
func (a AssetItem) InMaintenance() bool {
	return a.Status == StatusUnderMaintenance || a.Status == StatusMaintenanceRequested
}

// Field returns the value of a named field for list filtering and sorting.
func (a AssetItem) Field(name string) any {
	switch name {
	case "id":
		return a.ID
	case "name":
		return a.Name
	case "tag":
		return a.Tag
	case "serial_number":
		return a.SerialNumber
	case "category_id":
		return a.CategoryID
	case "status":
		return a.Status
	case "location":
		return a.Location
	case "condition":
		return a.Condition
	case "current_assignee_id":
		return a.CurrentAssigneeID
	case "purchase_cost":
		return a.PurchaseCost
	}
	return nil
}
