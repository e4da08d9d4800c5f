package txn

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/dalemusser/assetdesk/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func TestIsNotSupported(t *testing.T) {
	standalone := mongo.CommandError{Code: 20, Message: "Transaction numbers are only allowed on a replica set member or mongos"}

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"standalone server", standalone, true},
		{"wrapped by an assignment write", fmt.Errorf("asset a1: %w", standalone), true},
		{"no such transaction", mongo.CommandError{Code: 251, Message: "NoSuchTransaction"}, false},
		{"operation not allowed in transaction", mongo.CommandError{Code: 263, Message: "Cannot run 'count' in a multi-document transaction."}, true},
		{"duplicate key", mongo.CommandError{Code: 11000, Message: "E11000 duplicate key error"}, false},
		{"sessions unsupported", errors.New("session operations are not supported by this deployment"), true},
		{"no documents", mongo.ErrNoDocuments, false},
		{"deadline", context.DeadlineExceeded, false},
		{"asset conflict mentioning transaction", errors.New("transaction rejected: asset already assigned"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsNotSupported(tt.err); got != tt.want {
				t.Errorf("IsNotSupported(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

// On a replica set the writes commit in one transaction; on a standalone
// server the in-transaction write fails as not supported and fn runs again
// without one. Either way both records end up stored.
func TestRun_WritesEveryRecord(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	coll := db.Collection("assignment_history")
	calls := 0
	err := Run(ctx, db.Client(), zap.NewNop(), func(ctx context.Context) error {
		calls++
		if _, err := coll.InsertOne(ctx, bson.M{"_id": "h1", "asset_id": "a1", "status": "active"}); err != nil {
			return fmt.Errorf("insert h1: %w", err)
		}
		_, err := coll.UpdateOne(ctx, bson.M{"_id": "h1"}, bson.M{"$set": bson.M{"employee_id": "e1"}})
		return err
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if calls < 1 || calls > 2 {
		t.Errorf("fn called %d times, want 1 or 2", calls)
	}

	var got bson.M
	if err := coll.FindOne(ctx, bson.M{"_id": "h1"}).Decode(&got); err != nil {
		t.Fatalf("FindOne: %v", err)
	}
	if got["employee_id"] != "e1" {
		t.Errorf("stored record = %v, want employee_id e1", got)
	}
}

func TestRun_ReturnsCallbackError(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	errConflict := errors.New("asset already assigned")
	err := Run(ctx, db.Client(), zap.NewNop(), func(ctx context.Context) error {
		if _, err := db.Collection("asset_items").InsertOne(ctx, bson.M{"_id": "a1"}); err != nil {
			return err
		}
		return errConflict
	})
	if !errors.Is(err, errConflict) {
		t.Errorf("Run error = %v, want %v", err, errConflict)
	}
}
