// Package formutil helps re-render a form after a failed submission with the
// user's values and an error message.
//
//	type categoryFormData struct {
//		formutil.Base
//		Name string
//	}
//
//	data := categoryFormData{Name: name}
//	formutil.SetBase(&data.Base, r, "New Category", "/categories")
//	data.SetError("Name is required.")
//	templates.Render(w, r, "category_new", data)
package formutil

import (
	"html/template"
	"net/http"
	"strings"

	"github.com/dalemusser/assetdesk/internal/app/system/viewdata"
)

// Base holds the page chrome plus a form-level error.
type Base struct {
	viewdata.BaseVM
	Error template.HTML
}

// SetBase fills the page chrome for a form page.
func SetBase(b *Base, r *http.Request, title, backDefault string) {
	b.BaseVM = viewdata.NewBaseVM(r, title, backDefault)
}

// SetError sets the form-level error. msg is escaped.
func (b *Base) SetError(msg string) {
	b.Error = template.HTML(template.HTMLEscapeString(msg))
}

// HasError reports whether an error is set.
func (b *Base) HasError() bool { return b.Error != "" }

// SplitList turns a comma or newline separated field into trimmed,
// de-duplicated values, keeping first-seen order.
func SplitList(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == '\n' || r == '\r' })
	seen := make(map[string]bool, len(fields))
	var out []string
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" || seen[strings.ToLower(f)] {
			continue
		}
		seen[strings.ToLower(f)] = true
		out = append(out, f)
	}
	return out
}
