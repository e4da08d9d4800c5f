package employees

import "github.com/go-chi/chi/v5"

// Routes mounts under /employees.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeList)
	r.Get("/{employeeID}", h.ServeDetail)
	return r
}
