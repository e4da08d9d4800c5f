// internal/app/store/assignments/assignmentstore.go
package assignmentstore

import (
	"context"
	"time"

	"github.com/dalemusser/assetdesk/internal/domain/models"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("assignment_history")}
}

// Create inserts an assignment record. ID defaults to a fresh uuid, Status to
// active and AssignedDate to now (UTC).
func (s *Store) Create(ctx context.Context, r models.AssignmentRecord) (models.AssignmentRecord, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.Status == "" {
		r.Status = models.AssignmentActive
	}
	if r.AssignedDate.IsZero() {
		r.AssignedDate = time.Now().UTC()
	}
	if _, err := s.c.InsertOne(ctx, r); err != nil {
		return models.AssignmentRecord{}, err
	}
	return r, nil
}

func (s *Store) GetByID(ctx context.Context, id string) (models.AssignmentRecord, error) {
	var r models.AssignmentRecord
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&r)
	return r, err
}

// FindActive returns the most recent active record for the asset/employee
// pair, or mongo.ErrNoDocuments.
func (s *Store) FindActive(ctx context.Context, assetID, employeeID string) (models.AssignmentRecord, error) {
	var r models.AssignmentRecord
	opts := options.FindOne().SetSort(bson.D{{Key: "assigned_date", Value: -1}})
	err := s.c.FindOne(ctx, bson.M{
		"asset_id":    assetID,
		"employee_id": employeeID,
		"status":      models.AssignmentActive,
	}, opts).Decode(&r)
	return r, err
}

// MarkReturned flips an active record to returned. Returns
// mongo.ErrNoDocuments when the record is missing or already returned.
func (s *Store) MarkReturned(ctx context.Context, id string, returned time.Time, notes, condition string) error {
	set := bson.M{
		"status":             models.AssignmentReturned,
		"actual_return_date": returned,
	}
	if notes != "" {
		set["return_notes"] = notes
	}
	if condition != "" {
		set["return_condition"] = condition
	}
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "status": models.AssignmentActive},
		bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// ListByAsset returns an asset's records, newest first. An empty assetID
// lists every record.
func (s *Store) ListByAsset(ctx context.Context, assetID string) ([]models.AssignmentRecord, error) {
	filter := bson.M{}
	if assetID != "" {
		filter["asset_id"] = assetID
	}
	return s.find(ctx, filter)
}

// ListByEmployee returns an employee's records, newest first.
func (s *Store) ListByEmployee(ctx context.Context, employeeID string) ([]models.AssignmentRecord, error) {
	return s.find(ctx, bson.M{"employee_id": employeeID})
}

// ListActiveByAsset returns the active records of an asset, newest first.
func (s *Store) ListActiveByAsset(ctx context.Context, assetID string) ([]models.AssignmentRecord, error) {
	return s.find(ctx, bson.M{"asset_id": assetID, "status": models.AssignmentActive})
}

func (s *Store) find(ctx context.Context, filter bson.M) ([]models.AssignmentRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "assigned_date", Value: -1}, {Key: "_id", Value: 1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []models.AssignmentRecord
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
