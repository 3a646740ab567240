package services

import "encoding/json"

// decodeCached converts a cache hit into T. The in-memory backend stores
// typed values; the Redis backend stores JSON bytes, so both shapes must
// be handled at every read site.
func decodeCached[T any](val interface{}) (T, bool) {
	if typed, ok := val.(T); ok {
		return typed, true
	}
	if raw, ok := val.([]byte); ok {
		var out T
		if err := json.Unmarshal(raw, &out); err == nil {
			return out, true
		}
	}
	var zero T
	return zero, false
}
