// internal/app/features/assets/handler.go
package assets

import (
	"github.com/dalemusser/assetdesk/internal/app/backend"
	uierrors "github.com/dalemusser/assetdesk/internal/app/features/errors"
	"go.uber.org/zap"
)

// Handler serves the asset detail page.
type Handler struct {
	Backend backend.Backend
	ErrLog  *uierrors.ErrorLogger
	Log     *zap.Logger
}

func NewHandler(b backend.Backend, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{Backend: b, ErrLog: errLog, Log: logger}
}
