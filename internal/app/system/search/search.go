// internal/app/system/search/search.go
//
// Package search holds the in-memory list filtering and sorting used by every
// list screen. Lists come from the backend whole; these helpers narrow and
// order them before paging.Paginate slices out the visible page.
package search

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Fielder is implemented by anything the list helpers can look into.
// Field returns nil when the field is missing.
type Fielder interface {
	Field(name string) any
}

// Record is a loosely-typed row, handy for raw backend payloads and tests.
type Record map[string]any

// Field implements Fielder.
func (r Record) Field(name string) any { return r[name] }

// Sort orders.
const (
	Asc  = "asc"
	Desc = "desc"
)

// FilterData keeps the items whose string form of any listed field contains
// query, case-insensitively. An empty query returns list unchanged.
//
//	rows := search.FilterData(employees, "eng", []string{"department"})
func FilterData[T Fielder](list []T, query string, fields []string) []T {
	if query == "" {
		return list
	}
	q := strings.ToLower(query)
	out := make([]T, 0, len(list))
	for _, item := range list {
		for _, f := range fields {
			if strings.Contains(strings.ToLower(stringOf(item.Field(f))), q) {
				out = append(out, item)
				break
			}
		}
	}
	return out
}

// SortData returns a stably sorted copy of list ordered by field. Strings
// compare with locale-aware collation, numbers by subtraction. A missing value
// counts as "" next to strings and 0 next to numbers, so under Asc it sorts
// first. Any order other than Desc sorts ascending. list is not modified.
func SortData[T Fielder](list []T, field, order string) []T {
	return SortDataLocale(list, field, order, language.Und)
}

// SortDataLocale is SortData with an explicit collation locale.
func SortDataLocale[T Fielder](list []T, field, order string, tag language.Tag) []T {
	out := slices.Clone(list)
	if field == "" || len(out) < 2 {
		return out
	}
	col := collate.New(tag, collate.IgnoreCase)
	sign := 1
	if strings.EqualFold(order, Desc) {
		sign = -1
	}
	slices.SortStableFunc(out, func(a, b T) int {
		return sign * compareValues(col, a.Field(field), b.Field(field))
	})
	return out
}

func compareValues(col *collate.Collator, a, b any) int {
	na, aNum := toNumber(a)
	nb, bNum := toNumber(b)
	switch {
	case aNum && bNum:
		return sign(na - nb)
	case aNum && b == nil:
		return sign(na)
	case a == nil && bNum:
		return sign(-nb)
	}
	return col.CompareString(stringOf(a), stringOf(b))
}

func sign(f float64) int {
	switch {
	case f < 0:
		return -1
	case f > 0:
		return 1
	}
	return 0
}

func toNumber(v any) (float64, bool) {
	switch x := v.(type) {
	case int:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case float32:
		return float64(x), true
	case float64:
		return x, true
	}
	return 0, false
}

func stringOf(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case fmt.Stringer:
		return x.String()
	}
	return fmt.Sprint(v)
}
