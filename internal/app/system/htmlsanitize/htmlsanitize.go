// internal/app/system/htmlsanitize/htmlsanitize.go
//
// Package htmlsanitize cleans user-entered text before it is sent to the
// backend or rendered. Category descriptions may carry light formatting;
// assignment notes and return conditions are plain text.
package htmlsanitize

import (
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	richPolicy  = newRichPolicy()
	plainPolicy = bluemonday.StrictPolicy()
)

func newRichPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowElements("u", "s", "mark")
	p.AllowAttrs("class").OnElements("table", "tr", "td", "th")
	return p
}

// Sanitize strips scripts, event handlers and unsafe URLs from a formatted
// description, keeping basic markup (paragraphs, lists, links, tables).
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	return richPolicy.Sanitize(s)
}

// SanitizeToHTML is Sanitize for direct use in templates.
func SanitizeToHTML(s string) template.HTML {
	return template.HTML(Sanitize(s))
}

// PlainText removes every tag from s and trims it. HTML entities produced by
// the policy are left escaped; templates escape again on output.
func PlainText(s string) string {
	return strings.TrimSpace(plainPolicy.Sanitize(s))
}
