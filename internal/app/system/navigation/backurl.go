// Package navigation resolves where "Back" and post-form redirects go.
package navigation

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/urlutil"
)

// BackURLOptions limits which return URLs a page accepts.
type BackURLOptions struct {
	// AllowedPrefix, when set, must prefix the return URL.
	AllowedPrefix string
	// ExcludedSubpaths reject return URLs that point at action pages.
	ExcludedSubpaths []string
	// Fallback is used when no acceptable return URL was supplied.
	Fallback string
	// PreserveQueryParam is copied from the request onto Fallback.
	PreserveQueryParam string
}

// SafeBackURL reads "return" from the query string or form, rejects open
// redirects and anything outside opts, and falls back otherwise.
func SafeBackURL(r *http.Request, opts BackURLOptions) string {
	ret := urlutil.SafeReturn(query.Get(r, "return"), "", "")
	if ret == "" {
		ret = urlutil.SafeReturn(strings.TrimSpace(r.FormValue("return")), "", "")
	}
	if ret != "" && accepts(ret, opts) {
		return ret
	}
	return withParam(r, opts.Fallback, opts.PreserveQueryParam)
}

func accepts(ret string, opts BackURLOptions) bool {
	if opts.AllowedPrefix != "" && !strings.HasPrefix(ret, opts.AllowedPrefix) {
		return false
	}
	for _, sub := range opts.ExcludedSubpaths {
		if strings.Contains(ret, sub) {
			return false
		}
	}
	return true
}

func withParam(r *http.Request, fallback, param string) string {
	if param == "" {
		return fallback
	}
	v := query.Get(r, param)
	if v == "" {
		v = strings.TrimSpace(r.FormValue(param))
	}
	if v == "" {
		return fallback
	}
	sep := "?"
	if strings.Contains(fallback, "?") {
		sep = "&"
	}
	return fallback + sep + param + "=" + url.QueryEscape(v)
}

// Back URL presets shared by the feature packages.
var (
	CategoriesBackURL = BackURLOptions{
		AllowedPrefix:    "/categories",
		ExcludedSubpaths: []string{"/edit", "/delete", "/new"},
		Fallback:         "/categories",
	}

	InventoryBackURL = BackURLOptions{
		AllowedPrefix: "/inventory",
		Fallback:      "/inventory",
	}

	// AssetBackURL sends the asset detail page back to its category's
	// inventory, or to an assign/unassign screen it was opened from.
	AssetBackURL = BackURLOptions{
		ExcludedSubpaths: []string{"/submit", "/toggle"},
		Fallback:         "/inventory",
	}

	EmployeesBackURL = BackURLOptions{
		AllowedPrefix:      "/employees",
		Fallback:           "/employees",
		PreserveQueryParam: "department",
	}
)
