// internal/app/features/categories/handler.go
package categories

import (
	"github.com/dalemusser/assetdesk/internal/app/backend"
	uierrors "github.com/dalemusser/assetdesk/internal/app/features/errors"
	"github.com/dalemusser/assetdesk/internal/app/system/uistate"
	"go.uber.org/zap"
)

// Handler serves category management: list, create, edit and delete.
type Handler struct {
	Backend backend.Backend
	State   *uistate.Store // optional; carries "saved" notices across redirects
	ErrLog  *uierrors.ErrorLogger
	Log     *zap.Logger
}

func NewHandler(b backend.Backend, state *uistate.Store, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{Backend: b, State: state, ErrLog: errLog, Log: logger}
}
