// internal/app/backend/restclient/decode.go
package restclient

import "github.com/dalemusser/assetdesk/internal/app/system/normalize"

// envelopeKeys are the wrapper keys the backend has used around payloads.
var envelopeKeys = []string{"data", "items", "results"}

// records unwraps a list response: a bare array or an object whose data /
// items / results field holds one. Non-object elements are dropped.
func records(v any) []map[string]any {
	switch t := v.(type) {
	case []any:
		out := make([]map[string]any, 0, len(t))
		for _, e := range t {
			if m, ok := e.(map[string]any); ok {
				out = append(out, m)
			}
		}
		return out
	case map[string]any:
		for _, k := range envelopeKeys {
			if inner, ok := t[k]; ok {
				return records(inner)
			}
		}
	}
	return nil
}

// record unwraps a single-object response, optionally enveloped.
func record(v any) map[string]any {
	m, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	if inner, ok := m["data"].(map[string]any); ok {
		return inner
	}
	return m
}

func decodeList[T any](v any, fn func(map[string]any) T) []T {
	rs := records(v)
	out := make([]T, 0, len(rs))
	for _, r := range rs {
		out = append(out, fn(r))
	}
	return out
}

// snakeRecord converts a raw object's keys to snake_case, recursively.
func snakeRecord(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out, _ := normalize.SnakeKeys(m).(map[string]any)
	return out
}
