package assignflow

import (
	"github.com/dalemusser/assetdesk/internal/app/workflow"
	"github.com/go-chi/chi/v5"
)

// Routes mounts one workflow mode, typically at /assign or /unassign.
//
//	r.Mount("/assign", assignflow.Routes(h, workflow.ModeAssign))
//	r.Mount("/unassign", assignflow.Routes(h, workflow.ModeUnassign))
func Routes(h *Handler, mode workflow.Mode) chi.Router {
	r := chi.NewRouter()

	// Screen (GET also applies ?preselect=, ?aq= and ?eq=)
	r.Get("/{categoryID}", h.serve(mode))

	// Asset selection
	r.Post("/{categoryID}/assets/{assetID}/toggle", h.action(mode, "toggle_asset", toggleAsset))
	r.Post("/{categoryID}/clear", h.action(mode, "clear", clearSelection))

	// Recipient picker
	r.Post("/{categoryID}/select", h.action(mode, "open_entity_selection", openEntitySelection))
	r.Post("/{categoryID}/employees/{employeeID}/toggle", h.action(mode, "toggle_entity", toggleEntity))

	// Confirmation
	r.Post("/{categoryID}/confirm", h.action(mode, "open_confirmation", openConfirmation))
	r.Post("/{categoryID}/back", h.action(mode, "back", back))
	r.Post("/{categoryID}/cancel", h.action(mode, "cancel", cancelFlow))
	r.Post("/{categoryID}/submit", h.submit(mode))

	return r
}
