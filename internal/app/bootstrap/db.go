// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/dalemusser/assetdesk/internal/app/backend/mongobackend"
	"github.com/dalemusser/assetdesk/internal/app/backend/restclient"
	"github.com/dalemusser/assetdesk/internal/app/system/indexes"
	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

const mongoConnectTimeout = 10 * time.Second

// ConnectDB builds the configured backend. For mongo it connects and pings
// the server; for rest it only constructs the client, the first request
// reaches the API.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	switch appCfg.Backend {
	case BackendREST:
		return connectREST(appCfg, logger)
	default:
		return connectMongo(ctx, appCfg, logger)
	}
}

func connectMongo(ctx context.Context, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	ctx, cancel := context.WithTimeout(ctx, mongoConnectTimeout)
	defer cancel()

	opts := options.Client().ApplyURI(appCfg.MongoURI)
	if appCfg.MongoMaxPoolSize > 0 {
		opts.SetMaxPoolSize(appCfg.MongoMaxPoolSize)
	}
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return DBDeps{}, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return DBDeps{}, fmt.Errorf("ping mongo: %w", err)
	}

	db := client.Database(appCfg.MongoDatabase)
	logger.Info("connected to MongoDB",
		zap.String("database", appCfg.MongoDatabase),
		zap.Uint64("max_pool_size", appCfg.MongoMaxPoolSize))

	return DBDeps{
		Backend:       mongobackend.New(db, logger),
		BackendKind:   BackendMongo,
		MongoClient:   client,
		MongoDatabase: db,
	}, nil
}

func connectREST(appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	c, err := restclient.New(restclient.Config{
		BaseURL:      appCfg.BackendURL,
		Timeout:      appCfg.BackendTimeout,
		Retries:      appCfg.BackendRetries,
		RetryBackoff: appCfg.BackendRetryBackoff,
		RateLimit:    appCfg.BackendRateLimit,
		RateBurst:    appCfg.BackendRateBurst,
		ClientID:     appCfg.BackendClientID,
		ClientSecret: appCfg.BackendClientSecret,
		TokenURL:     appCfg.BackendTokenURL,
		Scopes:       appCfg.BackendScopes,
	}, logger)
	if err != nil {
		return DBDeps{}, err
	}
	logger.Info("using REST backend",
		zap.String("url", appCfg.BackendURL),
		zap.Int("retries", appCfg.BackendRetries),
		zap.Bool("client_credentials", appCfg.BackendClientID != ""))
	return DBDeps{Backend: c, BackendKind: BackendREST}, nil
}

// EnsureSchema creates the MongoDB indexes. The REST backend owns its own
// schema.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if deps.MongoDatabase == nil {
		return nil
	}
	if err := indexes.EnsureAll(ctx, deps.MongoDatabase); err != nil {
		logger.Error("ensure indexes failed", zap.Error(err))
		return err
	}
	return nil
}
