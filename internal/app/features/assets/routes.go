package assets

import "github.com/go-chi/chi/v5"

// Routes mounts under /assets.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/{assetID}", h.ServeDetail)
	return r
}
