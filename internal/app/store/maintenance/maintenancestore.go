// internal/app/store/maintenance/maintenancestore.go
package maintenancestore

import (
	"context"

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
	return &Store{c: db.Collection("maintenance_history")}
}

func (s *Store) Create(ctx context.Context, m models.MaintenanceRecord) (models.MaintenanceRecord, error) {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if _, err := s.c.InsertOne(ctx, m); err != nil {
		return models.MaintenanceRecord{}, err
	}
	return m, nil
}

// List returns maintenance records, most recently scheduled first. An empty
// assetID lists every record.
func (s *Store) List(ctx context.Context, assetID string) ([]models.MaintenanceRecord, error) {
	filter := bson.M{}
	if assetID != "" {
		filter["asset_id"] = assetID
	}
	opts := options.Find().SetSort(bson.D{{Key: "scheduled_date", Value: -1}, {Key: "_id", Value: 1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []models.MaintenanceRecord
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{})
}
