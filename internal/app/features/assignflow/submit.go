package assignflow

import (
	"context"
	"fmt"
	"net/http"
	"slices"
	"strconv"
	"time"

	"github.com/dalemusser/assetdesk/internal/app/backend"
	"github.com/dalemusser/assetdesk/internal/app/system/htmlsanitize"
	"github.com/dalemusser/assetdesk/internal/app/system/limits"
	"github.com/dalemusser/assetdesk/internal/app/system/metrics"
	"github.com/dalemusser/assetdesk/internal/app/system/timeouts"
	"github.com/dalemusser/assetdesk/internal/app/system/viewdata"
	"github.com/dalemusser/assetdesk/internal/app/workflow"
	"github.com/dalemusser/assetdesk/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

// parseConfirmForm reads the confirmation fields. The returned message is
// non-empty when the form is invalid.
func parseConfirmForm(r *http.Request, now time.Time) (confirmForm, *time.Time, string) {
	f := confirmForm{
		AssignmentType: trimmed(r, "assignment_type"),
		ExpectedReturn: trimmed(r, "expected_return"),
		Notes:          htmlsanitize.PlainText(r.FormValue("notes")),
		Condition:      htmlsanitize.PlainText(r.FormValue("condition")),
		Reassign:       r.FormValue("reassign") == "on" || r.FormValue("reassign") == "true",
	}
	if f.AssignmentType == "" {
		f.AssignmentType = models.AssignmentPermanent
	}
	if !slices.Contains([]string{models.AssignmentPermanent, models.AssignmentTemporary}, f.AssignmentType) {
		return f, nil, "Choose a valid assignment type."
	}

	if f.AssignmentType != models.AssignmentTemporary {
		return f, nil, ""
	}
	if f.ExpectedReturn == "" {
		return f, nil, "Temporary assignments need an expected return date."
	}
	d, err := time.Parse(dateLayout, f.ExpectedReturn)
	if err != nil {
		return f, nil, "Expected return date must be a valid date."
	}
	if d.Before(now.Truncate(24 * time.Hour)) {
		return f, nil, "Expected return date cannot be in the past."
	}
	return f, &d, ""
}

// submit fires the cross product of the selection at the backend.
// POST /{mode}/{categoryID}/submit
func (h *Handler) submit(mode workflow.Mode) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, limits.MaxWorkflowFormSize)
		c, cat, ok := h.begin(w, r, mode)
		if !ok {
			return
		}
		if err := r.ParseForm(); err != nil {
			h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", screenURL(c))
			return
		}

		now := time.Now().UTC()
		form, expected, msg := parseConfirmForm(r, now)
		if c.State != workflow.ConfirmationOpen {
			h.stepFailed(c, "submit", workflow.ErrInvalidTransition)
			h.respond(w, r, c, cat, form)
			return
		}
		if msg != "" {
			c.Notice = &workflow.Notification{Type: workflow.NoticeError, Message: msg}
			h.respond(w, r, c, cat, form)
			return
		}
		if ip := h.Opts.Proxies.ClientIP(r); !h.Opts.Limiter.Allow(ip) {
			h.Log.Warn("workflow submission throttled", zap.String("client_ip", ip), zap.String("mode", string(mode)))
			c.Notice = &workflow.Notification{Type: workflow.NoticeError, Message: "Too many submissions. Please wait a moment and try again."}
			h.respond(w, r, c, cat, form)
			return
		}
		if mode == workflow.ModeUnassign {
			c.Reassign = form.Reassign
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeouts.Batch())
		defer cancel()

		assets, entities := c.Assets.Len(), c.Entities.Len()
		out, err := c.Submit(ctx, h.Backend, workflow.SubmitOptions{
			Now:            now,
			AssignmentType: form.AssignmentType,
			ExpectedReturn: expected,
			Notes:          form.Notes,
			Condition:      form.Condition,
			MaxConcurrent:  h.Opts.MaxConcurrent,
			RedirectDelay:  h.Opts.RedirectDelay,
		})
		if err != nil {
			h.stepFailed(c, "submit", err)
			h.respond(w, r, c, cat, form)
			return
		}

		failed := out.Failed()
		metrics.ObserveSubmission(string(mode), len(out.Results), len(failed), out.Err)

		if out.Err != nil {
			for _, f := range failed {
				h.Log.Warn("workflow pair failed",
					zap.String("mode", string(mode)),
					zap.String("asset_id", f.AssetID),
					zap.String("employee_id", f.EmployeeID),
					zap.String("message", backend.Message(f.Err)),
					zap.Error(f.Err))
			}
			h.Log.Error("workflow submission failed",
				zap.String("mode", string(mode)),
				zap.String("category_id", c.CategoryID),
				zap.Int("pairs", len(out.Results)),
				zap.Int("failed", len(failed)),
				zap.Error(out.Err))
			h.respond(w, r, c, cat, confirmForm{})
			return
		}

		h.Log.Info("workflow submitted",
			zap.String("mode", string(mode)),
			zap.String("category_id", c.CategoryID),
			zap.Int("assets", assets),
			zap.Int("employees", entities),
			zap.Int("pairs", len(out.Results)))
		if out.RefreshErr != nil {
			h.Log.Warn("refresh after submission failed", zap.String("category_id", c.CategoryID), zap.Error(out.RefreshErr))
		}

		if err := h.State.ClearWorkflow(w, r); err != nil {
			h.Log.Error("clear workflow state failed", zap.Error(err))
		}
		// The success page shows the notice; the redirect target does not repeat it.
		h.success(w, r, c, out, assets, entities)
	}
}

// success shows the confirmation screen, which forwards to out.RedirectURL
// after out.RedirectAfter.
func (h *Handler) success(w http.ResponseWriter, r *http.Request, c *workflow.Controller, out workflow.Outcome, assets, entities int) {
	secs := out.RedirectAfter.Seconds()
	data := successData{
		BaseVM:        viewdata.NewBaseVM(r, verb(c.Mode)+" complete", out.RedirectURL),
		Mode:          string(c.Mode),
		RedirectURL:   out.RedirectURL,
		RedirectMS:    out.RedirectAfter.Milliseconds(),
		RedirectSecs:  strconv.FormatFloat(secs, 'f', -1, 64),
		AssetCount:    assets,
		EntityCount:   entities,
		RefreshFailed: out.RefreshErr != nil,
	}
	if c.Notice != nil {
		data.BaseVM = data.BaseVM.WithNotice(c.Notice.Type, c.Notice.Message)
	}

	if r.Header.Get("HX-Request") != "" {
		templates.RenderSnippet(w, "workflow_success_fragment", data)
		return
	}
	w.Header().Set("Refresh", fmt.Sprintf("%s; url=%s", data.RedirectSecs, out.RedirectURL))
	templates.Render(w, r, "workflow_success", data)
}
