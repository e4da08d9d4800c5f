package categories

import (
	"context"
	"net/http"

	"github.com/dalemusser/assetdesk/internal/app/backend"
	"github.com/dalemusser/assetdesk/internal/app/system/limits"
	"github.com/dalemusser/assetdesk/internal/app/system/navigation"
	"github.com/dalemusser/assetdesk/internal/app/system/timeouts"
	"github.com/dalemusser/assetdesk/internal/app/workflow"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ServeNew renders the New Category page.
func (h *Handler) ServeNew(w http.ResponseWriter, r *http.Request) {
	var data formData
	data.fill(r, "New Category", "/categories")
	templates.Render(w, r, "category_form", data)
}

// HandleCreate processes the New Category form.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, limits.MaxCategoryFormSize)
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form submission.", "/categories")
		return
	}
	data := readForm(r)
	reRender := func(msg string) {
		data.fill(r, "New Category", "/categories")
		data.SetError(msg)
		w.WriteHeader(http.StatusUnprocessableEntity)
		templates.Render(w, r, "category_form", data)
	}

	cat, msg := data.toCategory()
	if msg != "" {
		reRender(msg)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if taken, err := h.nameTaken(ctx, cat.Name, ""); err != nil {
		h.ErrLog.LogBackendError(w, r, "check category name failed", err, "Could not save the category.", "/categories")
		return
	} else if taken {
		reRender("A category with this name already exists.")
		return
	}

	created, err := h.Backend.CreateCategory(ctx, cat)
	if err != nil {
		h.Log.Warn("create category failed", zap.String("name", cat.Name), zap.Error(err))
		reRender("Could not create the category: " + backend.Message(err))
		return
	}
	h.Log.Info("category created", zap.String("category_id", created.ID), zap.String("name", created.Name))

	h.flash(w, r, workflow.NoticeSuccess, "Category \""+created.Name+"\" created.")
	http.Redirect(w, r, navigation.SafeBackURL(r, navigation.CategoriesBackURL), http.StatusSeeOther)
}

// ServeEdit renders the Edit Category page.
func (h *Handler) ServeEdit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	cat, err := h.Backend.GetCategory(ctx, id)
	if err != nil {
		h.ErrLog.LogBackendError(w, r, "get category failed", err, "Category not found.", "/categories")
		return
	}

	data := fromCategory(cat)
	data.fill(r, "Edit Category", "/categories/"+id+"/edit")
	templates.Render(w, r, "category_form", data)
}

// HandleEdit processes the Edit Category form.
func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, limits.MaxCategoryFormSize)
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form submission.", "/categories")
		return
	}
	id := chi.URLParam(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	existing, err := h.Backend.GetCategory(ctx, id)
	if err != nil {
		h.ErrLog.LogBackendError(w, r, "get category failed", err, "Category not found.", "/categories")
		return
	}

	data := readForm(r)
	data.ID = id
	reRender := func(msg string) {
		data.fill(r, "Edit Category", "/categories/"+id+"/edit")
		data.SetError(msg)
		w.WriteHeader(http.StatusUnprocessableEntity)
		templates.Render(w, r, "category_form", data)
	}

	cat, msg := data.toCategory()
	if msg != "" {
		reRender(msg)
		return
	}
	if taken, err := h.nameTaken(ctx, cat.Name, id); err != nil {
		h.ErrLog.LogBackendError(w, r, "check category name failed", err, "Could not save the category.", "/categories")
		return
	} else if taken {
		reRender("Another category already uses that name.")
		return
	}

	cat.CreatedAt = existing.CreatedAt
	if _, err := h.Backend.UpdateCategory(ctx, cat); err != nil {
		h.Log.Warn("update category failed", zap.String("category_id", id), zap.Error(err))
		reRender("Could not update the category: " + backend.Message(err))
		return
	}
	h.Log.Info("category updated", zap.String("category_id", id))

	h.flash(w, r, workflow.NoticeSuccess, "Category \""+cat.Name+"\" saved.")
	http.Redirect(w, r, navigation.SafeBackURL(r, navigation.CategoriesBackURL), http.StatusSeeOther)
}

// nameTaken reports whether another category already uses name, compared
// case- and accent-insensitively.
func (h *Handler) nameTaken(ctx context.Context, name, exceptID string) (bool, error) {
	cats, err := h.Backend.ListCategories(ctx)
	if err != nil {
		return false, err
	}
	ci := text.Fold(name)
	for _, c := range cats {
		if c.ID != exceptID && text.Fold(c.Name) == ci {
			return true, nil
		}
	}
	return false, nil
}

