// internal/app/store/categories/categorystore.go
package categorystore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/assetdesk/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

var ErrDuplicateName = errors.New("a category with this name already exists")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("asset_categories")}
}

// List returns every category ordered by name.
func (s *Store) List(ctx context.Context) ([]models.AssetCategory, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name_ci", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []models.AssetCategory
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) GetByID(ctx context.Context, id string) (models.AssetCategory, error) {
	var c models.AssetCategory
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		return models.AssetCategory{}, err
	}
	return c, nil
}

// Create inserts c with a fresh id unless one is provided.
func (s *Store) Create(ctx context.Context, c models.AssetCategory) (models.AssetCategory, error) {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	c.NameCI = text.Fold(c.Name)
	c.CreatedAt = time.Now().UTC()
	c.UpdatedAt = nil
	if _, err := s.c.InsertOne(ctx, c); err != nil {
		if wafflemongo.IsDup(err) {
			return models.AssetCategory{}, ErrDuplicateName
		}
		return models.AssetCategory{}, err
	}
	return c, nil
}

// Update replaces the category identified by c.ID, keeping its CreatedAt.
// Returns mongo.ErrNoDocuments when no such category exists.
func (s *Store) Update(ctx context.Context, c models.AssetCategory) (models.AssetCategory, error) {
	existing, err := s.GetByID(ctx, c.ID)
	if err != nil {
		return models.AssetCategory{}, err
	}
	now := time.Now().UTC()
	c.NameCI = text.Fold(c.Name)
	c.CreatedAt = existing.CreatedAt
	c.UpdatedAt = &now
	if _, err := s.c.ReplaceOne(ctx, bson.M{"_id": c.ID}, c); err != nil {
		if wafflemongo.IsDup(err) {
			return models.AssetCategory{}, ErrDuplicateName
		}
		return models.AssetCategory{}, err
	}
	return c, nil
}

// Delete removes a category by ID. Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id string) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{})
}
