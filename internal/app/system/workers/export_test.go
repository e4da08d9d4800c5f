package workers

import "time"

// SetClock replaces the worker's clock.
func (w *InventoryGauges) SetClock(now func() time.Time) { w.now = now }
