package indexes_test

import (
	"testing"

	"github.com/dalemusser/assetdesk/internal/app/system/indexes"
	"github.com/dalemusser/assetdesk/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func indexNames(t *testing.T, db *mongo.Database, coll string) map[string]bool {
	t.Helper()
	ctx, cancel := testutil.TestContext()
	defer cancel()

	cur, err := db.Collection(coll).Indexes().List(ctx)
	if err != nil {
		t.Fatalf("List indexes failed: %v", err)
	}
	defer cur.Close(ctx)

	names := make(map[string]bool)
	for cur.Next(ctx) {
		var idx bson.M
		if err := cur.Decode(&idx); err != nil {
			t.Fatalf("Decode index failed: %v", err)
		}
		if name, ok := idx["name"].(string); ok {
			names[name] = true
		}
	}
	return names
}

func TestEnsureAll_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("First EnsureAll failed: %v", err)
	}
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("Second EnsureAll failed: %v", err)
	}
}

func TestEnsureAll_CreatesIndexes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	tests := []struct {
		coll  string
		index string
	}{
		{"asset_categories", "uniq_category_name_ci"},
		{"asset_items", "idx_item_category_name"},
		{"asset_items", "idx_item_category_status"},
		{"employees", "idx_employee_name"},
		{"assignment_history", "idx_assignment_asset_employee_status"},
		{"maintenance_history", "idx_maintenance_asset_date"},
		{"documents", "idx_document_asset_date"},
	}
	for _, tt := range tests {
		t.Run(tt.coll+"/"+tt.index, func(t *testing.T) {
			if !indexNames(t, db, tt.coll)[tt.index] {
				t.Errorf("expected index %s on %s", tt.index, tt.coll)
			}
		})
	}
}

func TestEnsureAll_UniqueCategoryName(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}
	coll := db.Collection("asset_categories")
	if _, err := coll.InsertOne(ctx, bson.M{"_id": "c1", "name_ci": "laptops"}); err != nil {
		t.Fatalf("first insert failed: %v", err)
	}
	_, err := coll.InsertOne(ctx, bson.M{"_id": "c2", "name_ci": "laptops"})
	if !mongo.IsDuplicateKeyError(err) {
		t.Errorf("expected duplicate key error, got %v", err)
	}
}
