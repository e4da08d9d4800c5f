// internal/app/store/assetitems/assetitemstore.go
package assetitemstore

import (
	"context"
	"time"

	"github.com/dalemusser/assetdesk/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("asset_items")}
}

// List returns the items of a category ordered by name; an empty categoryID
// lists every item.
func (s *Store) List(ctx context.Context, categoryID string) ([]models.AssetItem, error) {
	filter := bson.M{}
	if categoryID != "" {
		filter["category_id"] = categoryID
	}
	opts := options.Find().SetSort(bson.D{{Key: "name_ci", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []models.AssetItem
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) GetByID(ctx context.Context, id string) (models.AssetItem, error) {
	var a models.AssetItem
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&a); err != nil {
		return models.AssetItem{}, err
	}
	return a, nil
}

// Create inserts a with a fresh id unless one is provided. An empty status
// defaults to available.
func (s *Store) Create(ctx context.Context, a models.AssetItem) (models.AssetItem, error) {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.Status == "" {
		a.Status = models.StatusAvailable
	}
	a.NameCI = text.Fold(a.Name)
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	if _, err := s.c.InsertOne(ctx, a); err != nil {
		return models.AssetItem{}, err
	}
	return a, nil
}

// Occupancy is the assignment-related state of an item.
type Occupancy struct {
	Status              string
	HasActiveAssignment bool
	CurrentAssigneeID   string
	CurrentAssignmentID string
}

// SetOccupancy updates the assignment-related fields of an item. Returns
// mongo.ErrNoDocuments when the item does not exist.
func (s *Store) SetOccupancy(ctx context.Context, id string, o Occupancy) error {
	set := bson.M{
		"status":                o.Status,
		"has_active_assignment": o.HasActiveAssignment,
		"updated_at":            time.Now().UTC(),
	}
	unset := bson.M{}
	if o.CurrentAssigneeID != "" {
		set["current_assignee_id"] = o.CurrentAssigneeID
	} else {
		unset["current_assignee_id"] = ""
	}
	if o.CurrentAssignmentID != "" {
		set["current_assignment_id"] = o.CurrentAssignmentID
	} else {
		unset["current_assignment_id"] = ""
	}
	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}
	res, err := s.c.UpdateByID(ctx, id, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// CountByStatus returns item counts keyed by status for one category, or for
// all items when categoryID is empty.
func (s *Store) CountByStatus(ctx context.Context, categoryID string) (map[string]int64, error) {
	match := bson.M{}
	if categoryID != "" {
		match["category_id"] = categoryID
	}
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.M{"_id": "$status", "n": bson.M{"$sum": 1}}}},
	}
	cur, err := s.c.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var rows []struct {
		Status string `bson:"_id"`
		N      int64  `bson:"n"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(rows))
	for _, r := range rows {
		out[r.Status] = r.N
	}
	return out, nil
}

func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{})
}
