package errors

import (
	"net/http"

	"github.com/dalemusser/assetdesk/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/httpnav"
	"github.com/dalemusser/waffle/pantry/templates"
)

// pageData is the view model for error pages.
type pageData struct {
	viewdata.BaseVM
	Status  int
	Message string
}

// Handler serves the router's fallback pages. No backend needed.
type Handler struct{}

// NewHandler constructs an errors Handler.
func NewHandler() *Handler {
	return &Handler{}
}

// NotFound is installed as the router's NotFound handler.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	RenderNotFound(w, r, "The page you requested does not exist.", "/")
}

// MethodNotAllowed is installed as the router's MethodNotAllowed handler.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	render(w, r, http.StatusMethodNotAllowed, "Not allowed", "That action is not available here.", "/")
}

// CSRFFailure is installed as the CSRF middleware's error handler.
func (h *Handler) CSRFFailure(w http.ResponseWriter, r *http.Request) {
	render(w, r, http.StatusForbidden, "Form expired", "Your form has expired. Reload the page and try again.", httpnav.ResolveBackURL(r, "/"))
}

func render(w http.ResponseWriter, r *http.Request, status int, title, msg, backURL string) {
	data := pageData{
		BaseVM:  viewdata.NewBaseVM(r, title, backURL),
		Status:  status,
		Message: msg,
	}
	if backURL != "" {
		data.BackURL = backURL
	}

	// HTMX swaps only the error fragment into the page.
	if r.Header.Get("HX-Request") != "" {
		w.WriteHeader(status)
		templates.RenderSnippet(w, "error_fragment", data)
		return
	}
	w.WriteHeader(status)
	templates.Render(w, r, "error_page", data)
}
