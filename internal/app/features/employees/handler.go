// internal/app/features/employees/handler.go
package employees

import (
	"github.com/dalemusser/assetdesk/internal/app/backend"
	uierrors "github.com/dalemusser/assetdesk/internal/app/features/errors"
	"github.com/dalemusser/assetdesk/internal/app/system/paging"
	"go.uber.org/zap"
)

// Handler serves the employee directory and employee detail pages.
type Handler struct {
	Backend  backend.Backend
	ErrLog   *uierrors.ErrorLogger
	Log      *zap.Logger
	PageSize int
}

func NewHandler(b backend.Backend, errLog *uierrors.ErrorLogger, pageSize int, logger *zap.Logger) *Handler {
	if pageSize < 1 {
		pageSize = paging.PageSize
	}
	return &Handler{Backend: b, ErrLog: errLog, Log: logger, PageSize: pageSize}
}
