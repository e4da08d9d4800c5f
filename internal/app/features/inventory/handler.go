// internal/app/features/inventory/handler.go
package inventory

import (
	"github.com/dalemusser/assetdesk/internal/app/backend"
	uierrors "github.com/dalemusser/assetdesk/internal/app/features/errors"
	"github.com/dalemusser/assetdesk/internal/app/system/paging"
	"github.com/dalemusser/assetdesk/internal/app/system/uistate"
	"go.uber.org/zap"
)

// Handler serves the category overview and the per-category asset list.
type Handler struct {
	Backend  backend.Backend
	State    *uistate.Store // optional; shows flash notices when set
	ErrLog   *uierrors.ErrorLogger
	Log      *zap.Logger
	PageSize int
}

// NewHandler constructs an inventory Handler.
func NewHandler(b backend.Backend, state *uistate.Store, errLog *uierrors.ErrorLogger, pageSize int, logger *zap.Logger) *Handler {
	if pageSize < 1 {
		pageSize = paging.PageSize
	}
	return &Handler{
		Backend:  b,
		State:    state,
		ErrLog:   errLog,
		Log:      logger,
		PageSize: pageSize,
	}
}
