// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"github.com/dalemusser/assetdesk/internal/app/backend"
	"go.mongodb.org/mongo-driver/mongo"
)

// DBDeps holds the data backend and, for the mongo backend, the client it
// was built on.
type DBDeps struct {
	Backend     backend.Backend
	BackendKind string

	// Set only when BackendKind is "mongo".
	MongoClient   *mongo.Client
	MongoDatabase *mongo.Database
}
