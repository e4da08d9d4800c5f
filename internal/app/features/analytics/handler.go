// internal/app/features/analytics/handler.go
//
// Package analytics serves the inventory dashboard: asset counts by status
// and category, maintenance spend, and active assignments per department.
// The same summary is available as JSON for chart widgets.
package analytics

import (
	"github.com/dalemusser/assetdesk/internal/app/backend"
	uierrors "github.com/dalemusser/assetdesk/internal/app/features/errors"
	"go.uber.org/zap"
)

type Handler struct {
	Backend backend.Backend
	ErrLog  *uierrors.ErrorLogger
	Log     *zap.Logger
}

func NewHandler(b backend.Backend, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{Backend: b, ErrLog: errLog, Log: logger}
}
