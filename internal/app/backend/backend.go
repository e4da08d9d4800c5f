// internal/app/backend/backend.go
//
// Package backend defines the collaborator interfaces through which the app
// reaches its data. The REST backend is authoritative in production
// (restclient); mongobackend serves standalone and demo deployments.
package backend

import (
	"context"

	"github.com/dalemusser/assetdesk/internal/domain/models"
)

// Assets covers the asset-item endpoints.
type Assets interface {
	// ListAssetItems returns the items of a category (all items if categoryID is empty).
	ListAssetItems(ctx context.Context, categoryID string) ([]models.AssetItem, error)
	GetAssetItem(ctx context.Context, id string) (models.AssetItem, error)
	AssignAssetItem(ctx context.Context, id, employeeID string) error
	UnassignAssetItem(ctx context.Context, id, employeeID string) error
}

// Assignments covers the assignment-history endpoints used by the workflow.
type Assignments interface {
	CreateAssignment(ctx context.Context, rec models.AssignmentRecord) (models.AssignmentRecord, error)
	UnassignAssignment(ctx context.Context, req models.UnassignRequest) error
	ListAssignments(ctx context.Context, assetID string) ([]models.AssignmentRecord, error)
}

// Employees covers the employee endpoints.
type Employees interface {
	ListEmployees(ctx context.Context) ([]models.Employee, error)
	GetEmployeeDetails(ctx context.Context, id string) (models.EmployeeDetails, error)
}

// Categories covers the asset-category endpoints.
type Categories interface {
	ListCategories(ctx context.Context) ([]models.AssetCategory, error)
	GetCategory(ctx context.Context, id string) (models.AssetCategory, error)
	CreateCategory(ctx context.Context, c models.AssetCategory) (models.AssetCategory, error)
	UpdateCategory(ctx context.Context, c models.AssetCategory) (models.AssetCategory, error)
	DeleteCategory(ctx context.Context, id string) error
}

// Records covers the read-only document and maintenance endpoints.
type Records interface {
	ListDocuments(ctx context.Context, assetID string) ([]models.Document, error)
	ListMaintenanceHistory(ctx context.Context) ([]models.MaintenanceRecord, error)
}

// Backend is everything the app needs from its data source.
type Backend interface {
	Assets
	Assignments
	Employees
	Categories
	Records

	// Ping checks that the backend is reachable.
	Ping(ctx context.Context) error
}
