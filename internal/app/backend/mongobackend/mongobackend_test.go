package mongobackend_test

import (
	"errors"
	"testing"
	"time"

	"github.com/dalemusser/assetdesk/internal/app/backend"
	"github.com/dalemusser/assetdesk/internal/app/backend/mongobackend"
	"github.com/dalemusser/assetdesk/internal/domain/models"
	"github.com/dalemusser/assetdesk/internal/testutil"
	"go.uber.org/zap"
)

func TestCreateAssignment_MarksAssetAndEmployee(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	fx := testutil.NewFixtures(t, db)
	b := mongobackend.New(db, zap.NewNop())

	cat := fx.CreateCategory(ctx, "Laptops", models.AssignmentPolicy{AssignableTo: models.AssignableToSingleEmployee})
	asset := fx.CreateAsset(ctx, "mac", cat.ID, models.StatusAvailable)
	emp := fx.CreateEmployee(ctx, "Ada", "Lovelace", "Engineering", "Core")

	rec, err := b.CreateAssignment(ctx, models.AssignmentRecord{AssetID: asset.ID, EmployeeID: emp.ID})
	if err != nil {
		t.Fatalf("CreateAssignment failed: %v", err)
	}
	if rec.ID == "" || rec.Status != models.AssignmentActive {
		t.Errorf("unexpected record %+v", rec)
	}

	got, err := b.GetAssetItem(ctx, asset.ID)
	if err != nil {
		t.Fatalf("GetAssetItem failed: %v", err)
	}
	if got.Status != models.StatusAssigned || !got.HasActiveAssignment || got.CurrentAssigneeID != emp.ID || got.CurrentAssignmentID != rec.ID {
		t.Errorf("asset not marked assigned: %+v", got)
	}

	d, err := b.GetEmployeeDetails(ctx, emp.ID)
	if err != nil {
		t.Fatalf("GetEmployeeDetails failed: %v", err)
	}
	if len(d.Assets) != 1 || d.Assets[0].ID != asset.ID || len(d.Assignments) != 1 {
		t.Errorf("details = %+v", d)
	}
}

func TestCreateAssignment_RejectsUnavailable(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	fx := testutil.NewFixtures(t, db)
	b := mongobackend.New(db, zap.NewNop())

	cat := fx.CreateCategory(ctx, "Laptops", models.AssignmentPolicy{})
	asset := fx.CreateAsset(ctx, "broken", cat.ID, models.StatusUnderMaintenance)
	emp := fx.CreateEmployee(ctx, "Ada", "Lovelace", "Engineering", "Core")

	_, err := b.CreateAssignment(ctx, models.AssignmentRecord{AssetID: asset.ID, EmployeeID: emp.ID})
	var be *backend.Error
	if !errors.As(err, &be) || be.Status != 409 {
		t.Fatalf("expected 409 backend error, got %v", err)
	}
}

func TestCreateAssignment_UnknownAsset(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	fx := testutil.NewFixtures(t, db)
	b := mongobackend.New(db, zap.NewNop())

	emp := fx.CreateEmployee(ctx, "Ada", "Lovelace", "Engineering", "Core")
	_, err := b.CreateAssignment(ctx, models.AssignmentRecord{AssetID: "missing", EmployeeID: emp.ID})
	if !errors.Is(err, backend.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestUnassignAssignment_FreesAsset(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	fx := testutil.NewFixtures(t, db)
	b := mongobackend.New(db, zap.NewNop())

	cat := fx.CreateCategory(ctx, "Laptops", models.AssignmentPolicy{})
	asset := fx.CreateAsset(ctx, "mac", cat.ID, models.StatusAvailable)
	emp := fx.CreateEmployee(ctx, "Ada", "Lovelace", "Engineering", "Core")

	if _, err := b.CreateAssignment(ctx, models.AssignmentRecord{AssetID: asset.ID, EmployeeID: emp.ID}); err != nil {
		t.Fatalf("CreateAssignment failed: %v", err)
	}
	err := b.UnassignAssignment(ctx, models.UnassignRequest{
		AssetID: asset.ID, EmployeeID: emp.ID, ReturnDate: time.Now().UTC(), Condition: "good",
	})
	if err != nil {
		t.Fatalf("UnassignAssignment failed: %v", err)
	}

	got, _ := b.GetAssetItem(ctx, asset.ID)
	if got.Status != models.StatusAvailable || got.HasActiveAssignment || got.CurrentAssigneeID != "" {
		t.Errorf("asset not freed: %+v", got)
	}
	hist, err := b.ListAssignments(ctx, asset.ID)
	if err != nil {
		t.Fatalf("ListAssignments failed: %v", err)
	}
	if len(hist) != 1 || hist[0].Status != models.AssignmentReturned || hist[0].ReturnCondition != "good" {
		t.Errorf("history = %+v", hist)
	}

	// A second unassign has nothing active to return.
	err = b.UnassignAssignment(ctx, models.UnassignRequest{AssetID: asset.ID, EmployeeID: emp.ID})
	if !errors.Is(err, backend.ErrNotFound) {
		t.Errorf("expected ErrNotFound on repeat, got %v", err)
	}
}

func TestUnassignAssignment_MultiAssignmentKeepsOthers(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	fx := testutil.NewFixtures(t, db)
	b := mongobackend.New(db, zap.NewNop())

	cat := fx.CreateCategory(ctx, "Licences", models.AssignmentPolicy{AssignableTo: models.AssignableToTeam})
	if _, err := b.UpdateCategory(ctx, func() models.AssetCategory { c := cat; c.AllowMultipleAssignments = true; return c }()); err != nil {
		t.Fatalf("UpdateCategory failed: %v", err)
	}
	asset := fx.CreateAsset(ctx, "ide", cat.ID, models.StatusAvailable)
	e1 := fx.CreateEmployee(ctx, "Ada", "Lovelace", "Engineering", "Core")
	e2 := fx.CreateEmployee(ctx, "Grace", "Hopper", "Engineering", "Core")

	for _, e := range []models.Employee{e1, e2} {
		if _, err := b.CreateAssignment(ctx, models.AssignmentRecord{AssetID: asset.ID, EmployeeID: e.ID}); err != nil {
			t.Fatalf("CreateAssignment(%s) failed: %v", e.ID, err)
		}
	}
	if err := b.UnassignAssignment(ctx, models.UnassignRequest{AssetID: asset.ID, EmployeeID: e1.ID}); err != nil {
		t.Fatalf("UnassignAssignment failed: %v", err)
	}

	got, _ := b.GetAssetItem(ctx, asset.ID)
	if got.Status != models.StatusAssigned || got.CurrentAssigneeID != e2.ID {
		t.Errorf("asset should remain assigned to e2: %+v", got)
	}
}

func TestDeleteCategory_RefusesNonEmpty(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	fx := testutil.NewFixtures(t, db)
	b := mongobackend.New(db, zap.NewNop())

	cat := fx.CreateCategory(ctx, "Laptops", models.AssignmentPolicy{})
	fx.CreateAsset(ctx, "mac", cat.ID, models.StatusAvailable)

	var be *backend.Error
	if err := b.DeleteCategory(ctx, cat.ID); !errors.As(err, &be) || be.Status != 409 {
		t.Errorf("expected 409, got %v", err)
	}
	if err := b.DeleteCategory(ctx, "missing"); !errors.Is(err, backend.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSeedDemo_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	b := mongobackend.New(db, zap.NewNop())

	if err := b.SeedDemo(ctx); err != nil {
		t.Fatalf("SeedDemo failed: %v", err)
	}
	cats, err := b.ListCategories(ctx)
	if err != nil {
		t.Fatalf("ListCategories failed: %v", err)
	}
	if err := b.SeedDemo(ctx); err != nil {
		t.Fatalf("second SeedDemo failed: %v", err)
	}
	again, _ := b.ListCategories(ctx)
	if len(cats) == 0 || len(again) != len(cats) {
		t.Errorf("categories: first=%d second=%d", len(cats), len(again))
	}

	items, _ := b.ListAssetItems(ctx, "")
	assigned := 0
	for _, it := range items {
		if it.Status == models.StatusAssigned {
			assigned++
		}
	}
	if assigned != 2 {
		t.Errorf("assigned items = %d, want 2", assigned)
	}
}
