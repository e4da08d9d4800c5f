package analytics

import "github.com/go-chi/chi/v5"

// Routes mounts under /analytics.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeDashboard)
	r.Get("/data.json", h.ServeData)
	return r
}
