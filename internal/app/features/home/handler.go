// internal/app/features/home/handler.go
package home

import (
	"github.com/dalemusser/assetdesk/internal/app/backend"
	uierrors "github.com/dalemusser/assetdesk/internal/app/features/errors"
	"go.uber.org/zap"
)

// Handler holds dependencies needed to serve the landing dashboard.
type Handler struct {
	Backend backend.Backend
	ErrLog  *uierrors.ErrorLogger
	Log     *zap.Logger
}

func NewHandler(b backend.Backend, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Backend: b,
		ErrLog:  errLog,
		Log:     logger,
	}
}
