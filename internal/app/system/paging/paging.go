// internal/app/system/paging/paging.go
package paging

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/dalemusser/waffle/pantry/query"
)

// PageSize is the default number of rows shown in paged lists.
const PageSize = 25

// ModalPageSize is a smaller page size for modal pickers where less
// vertical space is available.
const ModalPageSize = 10

// MaxPageSize caps the page size a caller may request via ?size=.
const MaxPageSize = 200

// Paginate returns the 1-based page of list: the slice
// [(page-1)*pageSize, page*pageSize). Pages past the end, pages below 1 and
// non-positive sizes yield an empty list; there is no clamping.
func Paginate[T any](list []T, page, pageSize int) []T {
	if page < 1 || pageSize < 1 {
		return []T{}
	}
	// Compare page counts first so huge page numbers cannot overflow start.
	if page-1 >= (len(list)+pageSize-1)/pageSize {
		return []T{}
	}
	start := (page - 1) * pageSize
	end := start + pageSize
	if end > len(list) {
		end = len(list)
	}
	return list[start:end]
}

// TotalPages returns the number of pages needed for total rows (at least 1).
func TotalPages(total, pageSize int) int {
	if pageSize < 1 || total <= 0 {
		return 1
	}
	return (total + pageSize - 1) / pageSize
}

// ParsePage extracts the 1-based "page" query parameter.
// Returns 1 if not present or invalid.
func ParsePage(r *http.Request) int {
	s := query.Get(r, "page")
	if s == "" {
		return 1
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// ParsePageSize extracts the "size" query parameter, falling back to def and
// capping at MaxPageSize.
func ParsePageSize(r *http.Request, def int) int {
	s := query.Get(r, "size")
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return def
	}
	if n > MaxPageSize {
		return MaxPageSize
	}
	return n
}

// Range holds computed display values for a paginated list.
type Range struct {
	Start    int // 1-based index of the first row shown (0 if none)
	End      int // 1-based index of the last row shown (0 if none)
	Total    int
	Page     int
	Pages    int
	PrevPage int // 0 when there is no previous page
	NextPage int // 0 when there is no next page
}

// ComputeRange calculates display values for page of a list of total rows.
func ComputeRange(page, pageSize, total int) Range {
	pages := TotalPages(total, pageSize)
	r := Range{Total: total, Page: page, Pages: pages}
	if page > 1 {
		r.PrevPage = page - 1
	}
	if page < pages {
		r.NextPage = page + 1
	}
	shown := len(Paginate(make([]struct{}, total), page, pageSize))
	if shown == 0 {
		return r
	}
	r.Start = (page-1)*pageSize + 1
	r.End = r.Start + shown - 1
	return r
}

// Pager is a Range plus the links the shared "pager" template renders.
type Pager struct {
	Range
	PrevQuery string
	NextQuery string
	// Target is the hx-target the links swap into.
	Target string
}

// NewPager builds the pager for rng, keeping the request's other query
// parameters (search, sort, filters) on the prev/next links. Parameters
// named in drop are one-shot and left off the links.
func NewPager(r *http.Request, rng Range, target string, drop ...string) Pager {
	p := Pager{Range: rng, Target: target}
	if rng.PrevPage > 0 {
		p.PrevQuery = withPage(r.URL.Query(), rng.PrevPage, drop)
	}
	if rng.NextPage > 0 {
		p.NextQuery = withPage(r.URL.Query(), rng.NextPage, drop)
	}
	return p
}

func withPage(q url.Values, page int, drop []string) string {
	for _, k := range drop {
		q.Del(k)
	}
	q.Set("page", strconv.Itoa(page))
	return q.Encode()
}
