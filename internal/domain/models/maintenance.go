// internal/domain/models/maintenance.go
package models

import "time"

// Maintenance record statuses.
const (
	MaintenanceRequested  = "requested"
	MaintenanceInProgress = "in_progress"
	MaintenanceCompleted  = "completed"
	MaintenanceCancelled  = "cancelled"
	MaintenancePending    = "pending"
	MaintenanceScheduled  = "scheduled"
	MaintenanceOverdue    = "overdue"
)

// MaintenanceStatuses lists every maintenance status in display order.
var MaintenanceStatuses = []string{
	MaintenanceRequested,
	MaintenancePending,
	MaintenanceScheduled,
	MaintenanceInProgress,
	MaintenanceOverdue,
	MaintenanceCompleted,
	MaintenanceCancelled,
}

// MaintenanceRecord is a read-only maintenance history entry for an asset.
type MaintenanceRecord struct {
	ID              string     `bson:"_id" json:"id"`
	AssetID         string     `bson:"asset_id" json:"asset_id"`
	Type            string     `bson:"maintenance_type" json:"maintenance_type"`
	Technician      string     `bson:"technician,omitempty" json:"technician,omitempty"`
	Status          string     `bson:"status" json:"status"`
	Description     string     `bson:"description,omitempty" json:"description,omitempty"`
	ConditionBefore string     `bson:"condition_before,omitempty" json:"condition_before,omitempty"`
	ConditionAfter  string     `bson:"condition_after,omitempty" json:"condition_after,omitempty"`
	ScheduledDate   *time.Time `bson:"scheduled_date,omitempty" json:"scheduled_date,omitempty"`
	CompletedDate   *time.Time `bson:"completed_date,omitempty" json:"completed_date,omitempty"`
	Cost            float64    `bson:"cost,omitempty" json:"cost,omitempty"`
}

// Field returns the value of a named field for list filtering and sorting.
func (m MaintenanceRecord) Field(name string) any {
	switch name {
	case "id":
		return m.ID
	case "asset_id":
		return m.AssetID
	case "type", "maintenance_type":
		return m.Type
	case "technician":
		return m.Technician
	case "status":
		return m.Status
	case "description":
		return m.Description
	case "cost":
		return m.Cost
	case "scheduled_date":
		if m.ScheduledDate == nil {
			return nil
		}
		return m.ScheduledDate.Format(time.RFC3339)
	}
	return nil
}
