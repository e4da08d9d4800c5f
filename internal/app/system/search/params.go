package search

import (
	"net/http"
	"slices"

	"github.com/dalemusser/waffle/pantry/query"
)

// Params are the list-screen query parameters: q, sort and order.
type Params struct {
	Q     string
	Sort  string
	Order string
}

// ParseParams reads q, sort and order from r. A sort field outside allowed
// falls back to def; order is Asc unless "desc" was given.
func ParseParams(r *http.Request, allowed []string, def string) Params {
	p := Params{
		Q:     query.Search(r, "q"),
		Sort:  query.Get(r, "sort"),
		Order: Asc,
	}
	if !slices.Contains(allowed, p.Sort) {
		p.Sort = def
	}
	if query.Get(r, "order") == Desc {
		p.Order = Desc
	}
	return p
}

// Apply filters list by p.Q over fields and sorts by p.Sort.
func Apply[T Fielder](list []T, p Params, fields []string) []T {
	return SortData(FilterData(list, p.Q, fields), p.Sort, p.Order)
}

// NextOrder is the order a column header link should request: clicking the
// active column flips it, any other column starts ascending.
func (p Params) NextOrder(field string) string {
	if field == p.Sort && p.Order == Asc {
		return Desc
	}
	return Asc
}
