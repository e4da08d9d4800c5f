// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

/*
EnsureAll is called at startup when the mongo backend is selected. Each
collection set is idempotent; errors are aggregated so every problem is
visible and startup can fail fast.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	sets := []struct {
		name string
		fn   func(context.Context, *mongo.Database) error
	}{
		{"asset_categories", ensureCategories},
		{"asset_items", ensureAssetItems},
		{"employees", ensureEmployees},
		{"assignment_history", ensureAssignments},
		{"maintenance_history", ensureMaintenance},
		{"documents", ensureDocuments},
	}

	var problems []string
	for _, s := range sets {
		if err := s.fn(ctx, db); err != nil {
			problems = append(problems, s.name+": "+err.Error())
		}
	}
	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

/* -------------------------------------------------------------------------- */
/* Reconcile a set of desired indexes for one collection                      */
/* -------------------------------------------------------------------------- */

type existingIndex struct {
	Name   string `bson:"name"`
	Key    bson.D `bson:"key"`
	Unique *bool  `bson:"unique,omitempty"`
}

func keySig(keys bson.D) string {
	parts := make([]string, 0, len(keys))
	for _, kv := range keys {
		parts = append(parts, fmt.Sprintf("%s:%v", kv.Key, kv.Value))
	}
	return strings.Join(parts, ", ")
}

func isUnique(b *bool) bool { return b != nil && *b }

func isDuplicateKeyErr(err error) bool {
	if err == nil {
		return false
	}
	if mongo.IsDuplicateKeyError(err) {
		return true
	}
	return strings.Contains(err.Error(), "E11000")
}

func listIndexes(ctx context.Context, coll *mongo.Collection) (map[string]existingIndex, error) {
	cur, err := coll.Indexes().List(ctx)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := map[string]existingIndex{}
	for cur.Next(ctx) {
		var idx existingIndex
		if err := cur.Decode(&idx); err != nil {
			zap.L().Warn("failed to decode existing index",
				zap.String("collection", coll.Name()),
				zap.Error(err))
			continue
		}
		out[keySig(idx.Key)] = idx
	}
	return out, cur.Err()
}

// ensureIndexSet creates each desired index, reusing an existing index with
// the same keys and options, and dropping/recreating one whose name or
// uniqueness differs.
func ensureIndexSet(ctx context.Context, coll *mongo.Collection, desired []mongo.IndexModel) error {
	existing, err := listIndexes(ctx, coll)
	if err != nil {
		// A collection that does not exist yet has no indexes.
		existing = map[string]existingIndex{}
	}

	var errs []string
	for _, m := range desired {
		var name string
		var unique *bool
		if m.Options != nil {
			if m.Options.Name != nil {
				name = *m.Options.Name
			}
			unique = m.Options.Unique
		}
		sig := keySig(m.Keys.(bson.D))
		start := time.Now()
		log := zap.L().With(
			zap.String("collection", coll.Name()),
			zap.String("name", name),
			zap.String("keys", sig),
			zap.Bool("unique", isUnique(unique)))

		if ex, ok := existing[sig]; ok {
			if isUnique(ex.Unique) == isUnique(unique) && (name == "" || ex.Name == name) {
				log.Debug("reusing existing index", zap.String("existing", ex.Name))
				continue
			}
			if _, err := coll.Indexes().DropOne(ctx, ex.Name); err != nil {
				log.Warn("drop existing index failed", zap.String("existing", ex.Name), zap.Error(err))
				errs = append(errs, fmt.Sprintf("%s(%s): drop failed: %v", coll.Name(), name, err))
				continue
			}
			log.Info("dropped index to realign name/options", zap.String("existing", ex.Name))
		}

		if _, err := coll.Indexes().CreateOne(ctx, m); err != nil {
			if isDuplicateKeyErr(err) && isUnique(unique) {
				errs = append(errs, fmt.Sprintf("%s(%s): cannot create unique index (duplicates present)", coll.Name(), name))
			} else {
				errs = append(errs, fmt.Sprintf("%s(%s): %v", coll.Name(), name, err))
			}
			log.Warn("index ensure failed", zap.Duration("took", time.Since(start)), zap.Error(err))
			continue
		}
		log.Info("index ensured", zap.Duration("took", time.Since(start)))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

/* -------------------------------------------------------------------------- */
/* Collection-specific index sets                                              */
/* -------------------------------------------------------------------------- */

func ensureCategories(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("asset_categories"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name_ci", Value: 1}},
			Options: options.Index().SetName("uniq_category_name_ci").SetUnique(true),
		},
	})
}

func ensureAssetItems(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("asset_items"), []mongo.IndexModel{
		// Category inventory list, sorted by name
		{
			Keys:    bson.D{{Key: "category_id", Value: 1}, {Key: "name_ci", Value: 1}, {Key: "_id", Value: 1}},
			Options: options.Index().SetName("idx_item_category_name"),
		},
		// Status counts per category
		{
			Keys:    bson.D{{Key: "category_id", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index().SetName("idx_item_category_status"),
		},
		{
			Keys:    bson.D{{Key: "current_assignee_id", Value: 1}},
			Options: options.Index().SetName("idx_item_assignee"),
		},
	})
}

func ensureEmployees(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("employees"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "full_name_ci", Value: 1}, {Key: "_id", Value: 1}},
			Options: options.Index().SetName("idx_employee_name"),
		},
		{
			Keys:    bson.D{{Key: "department", Value: 1}, {Key: "team", Value: 1}},
			Options: options.Index().SetName("idx_employee_department_team"),
		},
	})
}

func ensureAssignments(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("assignment_history"), []mongo.IndexModel{
		// Active lookups during unassign
		{
			Keys:    bson.D{{Key: "asset_id", Value: 1}, {Key: "employee_id", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index().SetName("idx_assignment_asset_employee_status"),
		},
		{
			Keys:    bson.D{{Key: "asset_id", Value: 1}, {Key: "assigned_date", Value: -1}},
			Options: options.Index().SetName("idx_assignment_asset_date"),
		},
		{
			Keys:    bson.D{{Key: "employee_id", Value: 1}, {Key: "assigned_date", Value: -1}},
			Options: options.Index().SetName("idx_assignment_employee_date"),
		},
	})
}

func ensureMaintenance(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("maintenance_history"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "asset_id", Value: 1}, {Key: "scheduled_date", Value: -1}},
			Options: options.Index().SetName("idx_maintenance_asset_date"),
		},
		{
			Keys:    bson.D{{Key: "status", Value: 1}},
			Options: options.Index().SetName("idx_maintenance_status"),
		},
	})
}

func ensureDocuments(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("documents"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "asset_id", Value: 1}, {Key: "uploaded_at", Value: -1}},
			Options: options.Index().SetName("idx_document_asset_date"),
		},
	})
}
