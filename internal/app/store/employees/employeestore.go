// internal/app/store/employees/employeestore.go
package employeestore

import (
	"context"

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
	return &Store{c: db.Collection("employees")}
}

// List returns every employee ordered by full name.
func (s *Store) List(ctx context.Context) ([]models.Employee, error) {
	opts := options.Find().SetSort(bson.D{{Key: "full_name_ci", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []models.Employee
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) GetByID(ctx context.Context, id string) (models.Employee, error) {
	var e models.Employee
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&e); err != nil {
		return models.Employee{}, err
	}
	return e, nil
}

func (s *Store) Create(ctx context.Context, e models.Employee) (models.Employee, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	e.FullNameCI = text.Fold(e.FullName())
	if _, err := s.c.InsertOne(ctx, e); err != nil {
		return models.Employee{}, err
	}
	return e, nil
}

// AddAsset records assetID on the employee's assigned asset list.
func (s *Store) AddAsset(ctx context.Context, id, assetID string) error {
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$addToSet": bson.M{"assigned_assets": assetID}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// RemoveAsset drops assetID from the employee's assigned asset list.
func (s *Store) RemoveAsset(ctx context.Context, id, assetID string) error {
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$pull": bson.M{"assigned_assets": assetID}})
	return err
}

func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{})
}
