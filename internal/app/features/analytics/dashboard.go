package analytics

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/dalemusser/assetdesk/internal/app/system/timeouts"
	"github.com/dalemusser/assetdesk/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

type dashboardData struct {
	viewdata.BaseVM
	Summary
	Cost  string
	Value string
}

// ServeDashboard renders the summary as tables.
// GET /analytics
func (h *Handler) ServeDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	in, err := h.load(ctx)
	if err != nil {
		h.ErrLog.LogBackendError(w, r, "load analytics failed", err, "Could not load analytics.", "/")
		return
	}
	s := summarize(in)
	templates.Render(w, r, "analytics_dashboard", dashboardData{
		BaseVM:  viewdata.NewBaseVM(r, "Analytics", "/"),
		Summary: s,
		Cost:    strconv.FormatFloat(s.MaintenanceCost, 'f', 2, 64),
		Value:   strconv.FormatFloat(s.InventoryValue, 'f', 2, 64),
	})
}

// ServeData returns the summary as JSON.
// GET /analytics/data.json
func (h *Handler) ServeData(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")

	in, err := h.load(ctx)
	if err != nil {
		h.Log.Error("load analytics failed", zap.Error(err))
		w.WriteHeader(http.StatusBadGateway)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "backend unavailable"})
		return
	}
	if err := json.NewEncoder(w).Encode(summarize(in)); err != nil {
		h.Log.Warn("encode analytics failed", zap.Error(err))
	}
}
