// internal/app/features/assignflow/handler.go
//
// Package assignflow serves the assign and unassign screens of a category.
// Both screens share one handler; the mode comes from the mount point.
package assignflow

import (
	"time"

	"github.com/dalemusser/assetdesk/internal/app/backend"
	uierrors "github.com/dalemusser/assetdesk/internal/app/features/errors"
	"github.com/dalemusser/assetdesk/internal/app/system/paging"
	"github.com/dalemusser/assetdesk/internal/app/system/ratelimit"
	"github.com/dalemusser/assetdesk/internal/app/system/uistate"
	"github.com/dalemusser/assetdesk/internal/app/workflow"
	"go.uber.org/zap"
)

// Options tunes the workflow screens.
type Options struct {
	// RedirectDelay is how long the success screen shows before redirecting.
	RedirectDelay time.Duration
	// MaxConcurrent bounds in-flight backend calls per submission (0 = all at once).
	MaxConcurrent int
	// PageSize is the asset list page size.
	PageSize int
	// Limiter throttles submissions per client; nil disables it.
	Limiter *ratelimit.Limiter
	// Proxies decides which forwarding headers identify the client.
	Proxies ratelimit.Proxies
}

// Handler owns the assign/unassign workflow endpoints. Workflow state is kept
// in the caller's session through State; every request reloads the category,
// its assets and the employees from Backend.
type Handler struct {
	Backend backend.Backend
	State   *uistate.Store
	ErrLog  *uierrors.ErrorLogger
	Log     *zap.Logger
	Opts    Options
}

// NewHandler constructs a workflow Handler.
func NewHandler(b backend.Backend, state *uistate.Store, errLog *uierrors.ErrorLogger, opts Options, logger *zap.Logger) *Handler {
	if opts.RedirectDelay <= 0 {
		opts.RedirectDelay = workflow.DefaultRedirectDelay
	}
	if opts.PageSize < 1 {
		opts.PageSize = paging.PageSize
	}
	return &Handler{
		Backend: b,
		State:   state,
		ErrLog:  errLog,
		Log:     logger,
		Opts:    opts,
	}
}
