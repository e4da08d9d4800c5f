// internal/app/system/normalize/normalize.go
//
// Package normalize reconciles the inconsistent shapes of backend payloads
// (id vs _id, camelCase vs snake_case keys, historical field names, loosely
// spelled statuses) into the canonical models used by the rest of the app.
//
// Every identifier comparison against a raw payload goes through ID; every
// category goes through Category exactly once when it is loaded.
package normalize

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/dalemusser/assetdesk/internal/domain/models"
)

// ID returns the entity's identifier: "id" if present and non-empty, else
// "_id", else ("", false). Numeric ids and extended-JSON {"$oid": ...} values
// are rendered as strings.
func ID(entity map[string]any) (string, bool) {
	if entity == nil {
		return "", false
	}
	for _, k := range []string{"id", "_id"} {
		if s := idString(entity[k]); s != "" {
			return s, true
		}
	}
	return "", false
}

// SameID reports whether two raw entities carry the same normalized id.
// Entities without an id never match.
func SameID(a, b map[string]any) bool {
	ida, ok := ID(a)
	if !ok {
		return false
	}
	idb, ok := ID(b)
	return ok && ida == idb
}

func idString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(x)
	case float64:
		if x == math.Trunc(x) {
			return strconv.FormatInt(int64(x), 10)
		}
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case map[string]any:
		if oid, ok := x["$oid"].(string); ok {
			return oid
		}
		s, _ := ID(x)
		return s
	}
	return strings.TrimSpace(fmt.Sprint(v))
}

// Status canonicalizes an asset status: lowercased, trimmed, with spaces and
// hyphens folded to underscores. A few historical spellings are mapped onto
// the canonical set.
func Status(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer(" ", "_", "-", "_").Replace(s)
	switch s {
	case "in_maintenance", "maintenance":
		return models.StatusUnderMaintenance
	case "maintenance_request", "requested_maintenance":
		return models.StatusMaintenanceRequested
	case "in_use":
		return models.StatusAssigned
	}
	return s
}

// AssignableTo canonicalizes a policy target. Unset means single employee.
func AssignableTo(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer(" ", "_", "-", "_").Replace(s)
	switch s {
	case "":
		return models.AssignableToSingleEmployee
	case "departments":
		return models.AssignableToDepartment
	case "teams":
		return models.AssignableToTeam
	}
	return s
}

// QueryParam trims a search or filter value. Case is preserved.
func QueryParam(s string) string {
	return strings.TrimSpace(s)
}

// Name trims a display name. Case is preserved.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// Email trims and lowercases an email address.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// SortOrder returns "desc" for any spelling of descending and "asc" otherwise.
func SortOrder(s string) string {
	if strings.EqualFold(strings.TrimSpace(s), "desc") {
		return "desc"
	}
	return "asc"
}

// SnakeCase converts a camelCase key to snake_case. Keys that are already
// snake_case (or start with an underscore, like "_id") are returned unchanged.
func SnakeCase(key string) string {
	if key == "" || strings.HasPrefix(key, "_") || strings.ToLower(key) == key {
		return key
	}
	var b strings.Builder
	b.Grow(len(key) + 4)
	rs := []rune(key)
	for i, r := range rs {
		if unicode.IsUpper(r) {
			prevLower := i > 0 && (unicode.IsLower(rs[i-1]) || unicode.IsDigit(rs[i-1]))
			nextLower := i > 0 && i+1 < len(rs) && unicode.IsLower(rs[i+1]) && unicode.IsUpper(rs[i-1])
			if prevLower || nextLower {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// SnakeKeys returns a copy of v with every map key converted to snake_case,
// recursing through nested maps and slices. When both spellings of a key are
// present, the snake_case one wins.
func SnakeKeys(v any) any {
	switch x := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, val := range x {
			sk := SnakeCase(k)
			if _, exists := out[sk]; exists && sk != k {
				continue
			}
			out[sk] = SnakeKeys(val)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, val := range x {
			out[i] = SnakeKeys(val)
		}
		return out
	}
	return v
}
