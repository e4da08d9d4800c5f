package categories

import (
	"context"
	"net/http"

	"github.com/dalemusser/assetdesk/internal/app/backend"
	"github.com/dalemusser/assetdesk/internal/app/system/navigation"
	"github.com/dalemusser/assetdesk/internal/app/system/timeouts"
	"github.com/dalemusser/assetdesk/internal/app/workflow"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// HandleDelete removes a category. The backend refuses categories that still
// hold assets; that refusal comes back as an error notice on the list.
// POST /categories/{id}/delete
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	back := navigation.SafeBackURL(r, navigation.CategoriesBackURL)
	if err := h.Backend.DeleteCategory(ctx, id); err != nil {
		h.Log.Warn("delete category failed", zap.String("category_id", id), zap.Error(err))
		h.flash(w, r, workflow.NoticeError, "Could not delete the category: "+backend.Message(err))
		http.Redirect(w, r, back, http.StatusSeeOther)
		return
	}
	h.Log.Info("category deleted", zap.String("category_id", id))
	h.flash(w, r, workflow.NoticeSuccess, "Category deleted.")
	http.Redirect(w, r, back, http.StatusSeeOther)
}
