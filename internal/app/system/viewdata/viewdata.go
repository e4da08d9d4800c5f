package viewdata

import (
	"net/http"
	"strings"

	"github.com/dalemusser/waffle/pantry/httpnav"
	"github.com/gorilla/csrf"
)

// DefaultSiteName is shown in the header when Init was not called.
const DefaultSiteName = "AssetDesk"

// Notice is a one-shot banner rendered above page content.
type Notice struct {
	Type    string // "success" or "error"
	Message string
}

// NavItem is one entry of the top navigation bar.
type NavItem struct {
	Label  string
	Href   string
	Active bool
}

// BaseVM contains common fields for all view models.
// Embed this struct in your feature-specific view models.
//
//	type inventoryData struct {
//	    viewdata.BaseVM
//	    Categories []categoryRow
//	}
//
//	data := inventoryData{BaseVM: viewdata.NewBaseVM(r, "Inventory", "/")}
type BaseVM struct {
	SiteName string
	Nav      []NavItem

	Title       string
	BackURL     string
	CurrentPath string

	// CSRFToken is empty when the CSRF middleware is not installed (tests).
	CSRFToken string
	CSRFField string

	Notice *Notice
}

var siteName = DefaultSiteName

// Init sets the site name shown in every page header. Call it once from
// bootstrap.
func Init(name string) {
	if strings.TrimSpace(name) != "" {
		siteName = name
	}
}

var navItems = []NavItem{
	{Label: "Dashboard", Href: "/"},
	{Label: "Inventory", Href: "/inventory"},
	{Label: "Categories", Href: "/categories"},
	{Label: "Employees", Href: "/employees"},
	{Label: "Maintenance", Href: "/maintenance"},
	{Label: "Analytics", Href: "/analytics"},
}

// NewBaseVM creates a populated BaseVM for a page.
//
//   - title: the page title
//   - backDefault: the Back link when the request carries no return URL
func NewBaseVM(r *http.Request, title, backDefault string) BaseVM {
	path := httpnav.CurrentPath(r)
	return BaseVM{
		SiteName:    siteName,
		Nav:         navFor(path),
		Title:       title,
		BackURL:     httpnav.ResolveBackURL(r, backDefault),
		CurrentPath: path,
		CSRFToken:   csrf.Token(r),
		CSRFField:   csrfFieldName,
	}
}

// csrfFieldName matches gorilla/csrf's default form field.
const csrfFieldName = "gorilla.csrf.Token"

// WithNotice returns a copy of vm showing n, if any.
func (vm BaseVM) WithNotice(typ, msg string) BaseVM {
	if msg != "" {
		vm.Notice = &Notice{Type: typ, Message: msg}
	}
	return vm
}

func navFor(path string) []NavItem {
	out := make([]NavItem, len(navItems))
	for i, it := range navItems {
		it.Active = active(path, it.Href)
		out[i] = it
	}
	return out
}

// active highlights Inventory for the workflow and asset pages reached from it.
func active(path, href string) bool {
	if href == "/" {
		return path == "/"
	}
	if href == "/inventory" {
		for _, p := range []string{"/inventory", "/assign", "/unassign", "/assets"} {
			if strings.HasPrefix(path, p) {
				return true
			}
		}
		return false
	}
	return strings.HasPrefix(path, href)
}
