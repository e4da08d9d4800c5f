// internal/app/system/workers/inventory.go
package workers

import (
	"context"
	"sync"
	"time"

	"github.com/dalemusser/assetdesk/internal/app/system/metrics"
	"github.com/dalemusser/assetdesk/internal/domain/models"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// InventorySource is the part of the backend the refresher reads.
type InventorySource interface {
	ListAssetItems(ctx context.Context, categoryID string) ([]models.AssetItem, error)
	ListAssignments(ctx context.Context, assetID string) ([]models.AssignmentRecord, error)
}

// InventoryGauges is a background worker that refreshes the inventory
// gauges on /metrics.
type InventoryGauges struct {
	source   InventorySource
	log      *zap.Logger
	interval time.Duration
	timeout  time.Duration
	now      func() time.Time
	stopCh   chan struct{}
	wg       sync.WaitGroup
}

// NewInventoryGauges creates a new refresher.
//
// Parameters:
//   - source: the backend to read
//   - logger: zap logger for logging
//   - interval: how often to refresh (e.g., 5 minutes)
//   - timeout: deadline for one refresh
func NewInventoryGauges(source InventorySource, logger *zap.Logger, interval, timeout time.Duration) *InventoryGauges {
	return &InventoryGauges{
		source:   source,
		log:      logger,
		interval: interval,
		timeout:  timeout,
		now:      time.Now,
		stopCh:   make(chan struct{}),
	}
}

// Start refreshes once in the background and then on every tick.
func (w *InventoryGauges) Start() {
	w.wg.Add(1)
	go w.run()
	w.log.Info("inventory gauge worker started", zap.Duration("interval", w.interval))
}

// Stop signals the worker to stop and waits for it to finish.
func (w *InventoryGauges) Stop() {
	close(w.stopCh)
	w.wg.Wait()
	w.log.Info("inventory gauge worker stopped")
}

func (w *InventoryGauges) run() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.refreshLogged()
	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.refreshLogged()
		}
	}
}

func (w *InventoryGauges) refreshLogged() {
	if err := w.Refresh(context.Background()); err != nil {
		w.log.Warn("inventory gauge refresh failed", zap.Error(err))
	}
}

// Refresh reads the inventory once and updates the gauges. The gauges keep
// their previous values when the backend fails.
func (w *InventoryGauges) Refresh(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	var (
		items       []models.AssetItem
		assignments []models.AssignmentRecord
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { items, err = w.source.ListAssetItems(gctx, ""); return })
	g.Go(func() (err error) { assignments, err = w.source.ListAssignments(gctx, ""); return })
	if err := g.Wait(); err != nil {
		return err
	}

	now := w.now()
	byStatus := make(map[string]int, len(models.AssetStatuses))
	for _, it := range items {
		byStatus[it.Status]++
	}
	overdue := 0
	for _, a := range assignments {
		if a.IsOverdue(now) {
			overdue++
		}
	}
	metrics.SetInventory(models.AssetStatuses, byStatus, overdue, now)
	w.log.Debug("inventory gauges refreshed", zap.Int("assets", len(items)), zap.Int("overdue", overdue))
	return nil
}
