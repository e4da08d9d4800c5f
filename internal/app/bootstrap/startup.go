// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"time"

	"github.com/dalemusser/assetdesk/internal/app/backend/mongobackend"
	"github.com/dalemusser/assetdesk/internal/app/resources"
	"github.com/dalemusser/assetdesk/internal/app/system/metrics"
	"github.com/dalemusser/assetdesk/internal/app/system/timeouts"
	"github.com/dalemusser/assetdesk/internal/app/system/viewdata"
	"github.com/dalemusser/assetdesk/internal/app/system/workers"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// seeder is implemented by backends that can fill empty collections with
// demo data.
type seeder interface {
	SeedDemo(ctx context.Context) error
}

var _ seeder = (*mongobackend.Backend)(nil)

// inventoryWorker is started by Startup and stopped by Shutdown.
var inventoryWorker *workers.InventoryGauges

// Startup runs one-time application initialization after the backend is
// connected, but before the HTTP handler is built.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	resources.LoadSharedTemplates()
	metrics.Init()
	viewdata.Init(viewdata.DefaultSiteName)

	timeouts.Configure(timeouts.Config{Batch: batchTimeout(appCfg)})
	cur := timeouts.Current()
	logger.Info("handler timeouts",
		zap.Duration("short", cur.Short),
		zap.Duration("medium", cur.Medium),
		zap.Duration("long", cur.Long),
		zap.Duration("batch", cur.Batch))

	if appCfg.SeedDemoData {
		if err := seed(ctx, deps, logger); err != nil {
			return err
		}
	}

	if appCfg.InventoryRefresh > 0 {
		inventoryWorker = workers.NewInventoryGauges(deps.Backend, logger, appCfg.InventoryRefresh, timeouts.Long())
		inventoryWorker.Start()
	}
	return nil
}

func seed(ctx context.Context, deps DBDeps, logger *zap.Logger) error {
	s, ok := deps.Backend.(seeder)
	if !ok {
		logger.Warn("seed_demo_data ignored: backend cannot seed", zap.String("backend", deps.BackendKind))
		return nil
	}
	if err := s.SeedDemo(ctx); err != nil {
		logger.Error("seed demo data failed", zap.Error(err))
		return err
	}
	return nil
}

// batchTimeout gives a workflow submission room for two backend timeouts
// when the REST backend is slower than the default batch deadline allows.
func batchTimeout(appCfg AppConfig) time.Duration {
	if appCfg.Backend != BackendREST {
		return 0
	}
	if d := 2 * appCfg.BackendTimeout; d > timeouts.DefaultBatch {
		return d
	}
	return 0
}
