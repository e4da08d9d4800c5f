package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/dalemusser/assetdesk/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateCategory inserts a category with the given policy.
func (f *Fixtures) CreateCategory(ctx context.Context, name string, policy models.AssignmentPolicy) models.AssetCategory {
	f.t.Helper()

	c := models.AssetCategory{
		ID:        uuid.NewString(),
		Name:      name,
		NameCI:    text.Fold(name),
		Type:      "hardware",
		Policy:    policy,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := f.db.Collection("asset_categories").InsertOne(ctx, c); err != nil {
		f.t.Fatalf("failed to create test category: %v", err)
	}
	return c
}

// CreateAsset inserts an asset item in the given category and status.
func (f *Fixtures) CreateAsset(ctx context.Context, name, categoryID, status string) models.AssetItem {
	f.t.Helper()

	a := models.AssetItem{
		ID:         uuid.NewString(),
		Name:       name,
		NameCI:     text.Fold(name),
		Tag:        "TAG-" + name,
		CategoryID: categoryID,
		Status:     status,
		CreatedAt:  time.Now().UTC(),
	}
	if _, err := f.db.Collection("asset_items").InsertOne(ctx, a); err != nil {
		f.t.Fatalf("failed to create test asset: %v", err)
	}
	return a
}

// CreateEmployee inserts an employee.
func (f *Fixtures) CreateEmployee(ctx context.Context, first, last, department, team string) models.Employee {
	f.t.Helper()

	e := models.Employee{
		ID:         uuid.NewString(),
		FirstName:  first,
		LastName:   last,
		Department: department,
		Team:       team,
	}
	e.FullNameCI = text.Fold(e.FullName())
	if _, err := f.db.Collection("employees").InsertOne(ctx, e); err != nil {
		f.t.Fatalf("failed to create test employee: %v", err)
	}
	return e
}

// CreateMaintenance inserts a maintenance record for an asset.
func (f *Fixtures) CreateMaintenance(ctx context.Context, assetID, status string, cost float64) models.MaintenanceRecord {
	f.t.Helper()

	when := time.Now().UTC()
	m := models.MaintenanceRecord{
		ID:            uuid.NewString(),
		AssetID:       assetID,
		Type:          "repair",
		Status:        status,
		ScheduledDate: &when,
		Cost:          cost,
	}
	if _, err := f.db.Collection("maintenance_history").InsertOne(ctx, m); err != nil {
		f.t.Fatalf("failed to create test maintenance record: %v", err)
	}
	return m
}
