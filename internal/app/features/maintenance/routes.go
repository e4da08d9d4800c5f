package maintenance

import "github.com/go-chi/chi/v5"

// Routes mounts under /maintenance.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeList)
	return r
}
