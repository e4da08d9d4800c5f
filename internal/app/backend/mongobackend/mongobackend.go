// internal/app/backend/mongobackend/mongobackend.go
//
// Package mongobackend implements backend.Backend directly on MongoDB for
// standalone and demo deployments. It mirrors the REST backend's semantics:
// creating an assignment marks the asset assigned, unassigning returns the
// record and frees the asset once no active assignment remains.
package mongobackend

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/dalemusser/assetdesk/internal/app/backend"
	"github.com/dalemusser/assetdesk/internal/app/policy/assignpolicy"
	assetitemstore "github.com/dalemusser/assetdesk/internal/app/store/assetitems"
	assignmentstore "github.com/dalemusser/assetdesk/internal/app/store/assignments"
	categorystore "github.com/dalemusser/assetdesk/internal/app/store/categories"
	documentstore "github.com/dalemusser/assetdesk/internal/app/store/documents"
	employeestore "github.com/dalemusser/assetdesk/internal/app/store/employees"
	maintenancestore "github.com/dalemusser/assetdesk/internal/app/store/maintenance"
	"github.com/dalemusser/assetdesk/internal/app/system/metrics"
	"github.com/dalemusser/assetdesk/internal/app/system/txn"
	"github.com/dalemusser/assetdesk/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// Backend is the Mongo-backed implementation of backend.Backend.
type Backend struct {
	db  *mongo.Database
	log *zap.Logger

	categories  *categorystore.Store
	items       *assetitemstore.Store
	employees   *employeestore.Store
	assignments *assignmentstore.Store
	maintenance *maintenancestore.Store
	documents   *documentstore.Store
}

var _ backend.Backend = (*Backend)(nil)

// New wires the stores over db.
func New(db *mongo.Database, logger *zap.Logger) *Backend {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Backend{
		db:          db,
		log:         logger,
		categories:  categorystore.New(db),
		items:       assetitemstore.New(db),
		employees:   employeestore.New(db),
		assignments: assignmentstore.New(db),
		maintenance: maintenancestore.New(db),
		documents:   documentstore.New(db),
	}
}

// wrap converts store errors into backend errors and records metrics.
func wrap(op string, start time.Time, err error) error {
	metrics.ObserveBackend(op, start, err)
	if err == nil {
		return nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return &backend.Error{Op: op, Err: fmt.Errorf("%w: %w", backend.ErrNotFound, err)}
	}
	var be *backend.Error
	if errors.As(err, &be) {
		return err
	}
	return &backend.Error{Op: op, Err: err}
}

func (b *Backend) Ping(ctx context.Context) error {
	start := time.Now()
	return wrap("ping", start, b.db.Client().Ping(ctx, readpref.Primary()))
}

// ========================= ASSET ITEMS =========================

func (b *Backend) ListAssetItems(ctx context.Context, categoryID string) ([]models.AssetItem, error) {
	start := time.Now()
	out, err := b.items.List(ctx, categoryID)
	return out, wrap("asset_items.list", start, err)
}

func (b *Backend) GetAssetItem(ctx context.Context, id string) (models.AssetItem, error) {
	start := time.Now()
	out, err := b.items.GetByID(ctx, id)
	return out, wrap("asset_items.get", start, err)
}

func (b *Backend) AssignAssetItem(ctx context.Context, id, employeeID string) error {
	_, err := b.CreateAssignment(ctx, models.AssignmentRecord{
		AssetID:        id,
		EmployeeID:     employeeID,
		AssignmentType: models.AssignmentPermanent,
	})
	return err
}

func (b *Backend) UnassignAssetItem(ctx context.Context, id, employeeID string) error {
	return b.UnassignAssignment(ctx, models.UnassignRequest{
		AssetID:    id,
		EmployeeID: employeeID,
		ReturnDate: time.Now().UTC(),
	})
}

// ========================= ASSIGNMENTS =========================

// CreateAssignment records an active assignment and marks the asset and
// employee accordingly. Assets that the category policy would not offer for
// assignment are rejected with a 409-style error.
func (b *Backend) CreateAssignment(ctx context.Context, rec models.AssignmentRecord) (models.AssignmentRecord, error) {
	const op = "assignment_history.create"
	start := time.Now()

	var created models.AssignmentRecord
	err := txn.Run(ctx, b.db.Client(), b.log, func(ctx context.Context) error {
		asset, err := b.items.GetByID(ctx, rec.AssetID)
		if err != nil {
			return fmt.Errorf("asset %s: %w", rec.AssetID, err)
		}
		if _, err := b.employees.GetByID(ctx, rec.EmployeeID); err != nil {
			return fmt.Errorf("employee %s: %w", rec.EmployeeID, err)
		}
		cat, err := b.categories.GetByID(ctx, asset.CategoryID)
		if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
			return err
		}
		if !assignpolicy.IsAssetAssignable(asset, cat) {
			return &backend.Error{Op: op, Status: http.StatusConflict, Message: fmt.Sprintf("%s is not available for assignment (%s).", asset.Name, asset.Status)}
		}

		rec.ID = ""
		rec.Status = models.AssignmentActive
		created, err = b.assignments.Create(ctx, rec)
		if err != nil {
			return err
		}
		if err := b.items.SetOccupancy(ctx, asset.ID, assetitemstore.Occupancy{
			Status:              models.StatusAssigned,
			HasActiveAssignment: true,
			CurrentAssigneeID:   rec.EmployeeID,
			CurrentAssignmentID: created.ID,
		}); err != nil {
			return err
		}
		return b.employees.AddAsset(ctx, rec.EmployeeID, asset.ID)
	})
	if err != nil {
		return models.AssignmentRecord{}, wrap(op, start, err)
	}
	metrics.ObserveBackend(op, start, nil)
	b.log.Info("asset assigned",
		zap.String("asset_id", created.AssetID),
		zap.String("employee_id", created.EmployeeID),
		zap.String("assignment_id", created.ID))
	return created, nil
}

// UnassignAssignment returns the pair's active record (or the named one) and
// frees the asset when no other active assignment holds it.
func (b *Backend) UnassignAssignment(ctx context.Context, req models.UnassignRequest) error {
	const op = "assignment_history.unassign"
	start := time.Now()
	if req.ReturnDate.IsZero() {
		req.ReturnDate = time.Now().UTC()
	}

	err := txn.Run(ctx, b.db.Client(), b.log, func(ctx context.Context) error {
		var rec models.AssignmentRecord
		var err error
		if req.AssignmentID != "" {
			rec, err = b.assignments.GetByID(ctx, req.AssignmentID)
		} else {
			rec, err = b.assignments.FindActive(ctx, req.AssetID, req.EmployeeID)
		}
		if err != nil {
			return fmt.Errorf("active assignment of %s to %s: %w", req.AssetID, req.EmployeeID, err)
		}
		if err := b.assignments.MarkReturned(ctx, rec.ID, req.ReturnDate, req.Notes, req.Condition); err != nil {
			return err
		}
		if err := b.employees.RemoveAsset(ctx, rec.EmployeeID, rec.AssetID); err != nil {
			return err
		}

		remaining, err := b.assignments.ListActiveByAsset(ctx, rec.AssetID)
		if err != nil {
			return err
		}
		occ := assetitemstore.Occupancy{Status: models.StatusAvailable}
		if len(remaining) > 0 {
			occ = assetitemstore.Occupancy{
				Status:              models.StatusAssigned,
				HasActiveAssignment: true,
				CurrentAssigneeID:   remaining[0].EmployeeID,
				CurrentAssignmentID: remaining[0].ID,
			}
		}
		return b.items.SetOccupancy(ctx, rec.AssetID, occ)
	})
	if err != nil {
		return wrap(op, start, err)
	}
	metrics.ObserveBackend(op, start, nil)
	b.log.Info("asset unassigned",
		zap.String("asset_id", req.AssetID),
		zap.String("employee_id", req.EmployeeID))
	return nil
}

func (b *Backend) ListAssignments(ctx context.Context, assetID string) ([]models.AssignmentRecord, error) {
	start := time.Now()
	out, err := b.assignments.ListByAsset(ctx, assetID)
	return out, wrap("assignment_history.list", start, err)
}

// ========================= EMPLOYEES =========================

func (b *Backend) ListEmployees(ctx context.Context) ([]models.Employee, error) {
	start := time.Now()
	out, err := b.employees.List(ctx)
	return out, wrap("employees.list", start, err)
}

func (b *Backend) GetEmployeeDetails(ctx context.Context, id string) (models.EmployeeDetails, error) {
	const op = "employees.details"
	start := time.Now()
	emp, err := b.employees.GetByID(ctx, id)
	if err != nil {
		return models.EmployeeDetails{}, wrap(op, start, err)
	}
	history, err := b.assignments.ListByEmployee(ctx, id)
	if err != nil {
		return models.EmployeeDetails{}, wrap(op, start, err)
	}
	d := models.EmployeeDetails{Employee: emp, Assignments: history}
	for _, assetID := range emp.AssignedAssetIDs {
		a, err := b.items.GetByID(ctx, assetID)
		if errors.Is(err, mongo.ErrNoDocuments) {
			b.log.Warn("employee references missing asset",
				zap.String("employee_id", id),
				zap.String("asset_id", assetID))
			continue
		}
		if err != nil {
			return models.EmployeeDetails{}, wrap(op, start, err)
		}
		d.Assets = append(d.Assets, a)
	}
	return d, wrap(op, start, nil)
}

// ========================= CATEGORIES =========================

func (b *Backend) ListCategories(ctx context.Context) ([]models.AssetCategory, error) {
	start := time.Now()
	out, err := b.categories.List(ctx)
	return out, wrap("asset_categories.list", start, err)
}

func (b *Backend) GetCategory(ctx context.Context, id string) (models.AssetCategory, error) {
	start := time.Now()
	out, err := b.categories.GetByID(ctx, id)
	return out, wrap("asset_categories.get", start, err)
}

func (b *Backend) CreateCategory(ctx context.Context, c models.AssetCategory) (models.AssetCategory, error) {
	const op = "asset_categories.create"
	start := time.Now()
	out, err := b.categories.Create(ctx, c)
	if errors.Is(err, categorystore.ErrDuplicateName) {
		err = &backend.Error{Op: op, Status: http.StatusConflict, Message: err.Error(), Err: err}
	}
	return out, wrap(op, start, err)
}

func (b *Backend) UpdateCategory(ctx context.Context, c models.AssetCategory) (models.AssetCategory, error) {
	const op = "asset_categories.update"
	start := time.Now()
	out, err := b.categories.Update(ctx, c)
	if errors.Is(err, categorystore.ErrDuplicateName) {
		err = &backend.Error{Op: op, Status: http.StatusConflict, Message: err.Error(), Err: err}
	}
	return out, wrap(op, start, err)
}

// DeleteCategory refuses to delete a category that still has items.
func (b *Backend) DeleteCategory(ctx context.Context, id string) error {
	const op = "asset_categories.delete"
	start := time.Now()
	items, err := b.items.List(ctx, id)
	if err != nil {
		return wrap(op, start, err)
	}
	if len(items) > 0 {
		return wrap(op, start, &backend.Error{Op: op, Status: http.StatusConflict, Message: fmt.Sprintf("Category still has %d asset items.", len(items))})
	}
	n, err := b.categories.Delete(ctx, id)
	if err == nil && n == 0 {
		err = mongo.ErrNoDocuments
	}
	return wrap(op, start, err)
}

// ========================= RECORDS =========================

func (b *Backend) ListDocuments(ctx context.Context, assetID string) ([]models.Document, error) {
	start := time.Now()
	out, err := b.documents.ListByAsset(ctx, assetID)
	return out, wrap("documents.list", start, err)
}

func (b *Backend) ListMaintenanceHistory(ctx context.Context) ([]models.MaintenanceRecord, error) {
	start := time.Now()
	out, err := b.maintenance.List(ctx, "")
	return out, wrap("maintenance_history.list", start, err)
}
