package inventory

import "github.com/go-chi/chi/v5"

// Routes mounts under /inventory.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeCategories)
	r.Get("/{categoryID}", h.ServeAssets)
	return r
}
