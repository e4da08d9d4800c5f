package errors

import (
	stderrors "errors"
	"net/http"

	"github.com/dalemusser/assetdesk/internal/app/backend"
	"go.uber.org/zap"
)

// ErrorLogger logs a failed request with its route context and renders the
// matching friendly page. Handlers hold one as ErrLog.
type ErrorLogger struct {
	Log *zap.Logger
}

// NewErrorLogger constructs an ErrorLogger.
func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ErrorLogger{Log: logger}
}

func (e *ErrorLogger) fields(r *http.Request, err error) []zap.Field {
	return []zap.Field{
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Error(err),
	}
}

// LogServerError logs msg at error level and renders a 500 page with userMsg.
func (e *ErrorLogger) LogServerError(w http.ResponseWriter, r *http.Request, msg string, err error, userMsg, backURL string) {
	e.Log.Error(msg, e.fields(r, err)...)
	RenderServerError(w, r, userMsg, backURL)
}

// LogBadRequest logs msg at warn level and renders a 400 page with userMsg.
func (e *ErrorLogger) LogBadRequest(w http.ResponseWriter, r *http.Request, msg string, err error, userMsg, backURL string) {
	e.Log.Warn(msg, e.fields(r, err)...)
	RenderBadRequest(w, r, userMsg, backURL)
}

// LogBackendError picks the page from the backend error: 404 for missing
// records, 502 for an unreachable or failing backend. userMsg is shown for
// the 502 case; the not-found page uses the backend's own message.
func (e *ErrorLogger) LogBackendError(w http.ResponseWriter, r *http.Request, msg string, err error, userMsg, backURL string) {
	if stderrors.Is(err, backend.ErrNotFound) {
		e.Log.Info(msg, e.fields(r, err)...)
		RenderNotFound(w, r, backend.Message(err), backURL)
		return
	}
	e.Log.Error(msg, e.fields(r, err)...)
	var be *backend.Error
	if stderrors.As(err, &be) {
		RenderUnavailable(w, r, userMsg, backURL)
		return
	}
	RenderServerError(w, r, userMsg, backURL)
}
