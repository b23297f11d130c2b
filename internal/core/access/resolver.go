// Package access turns a principal's raw, domain-scoped attributes into typed
// objects that authorization code can rely on.
package access

import (
	"encoding/json"
	"fmt"
)

// AttributeResolver owns one access-control domain.
//
// Resolve must never fail: missing or malformed raw values fall back to the
// most restrictive default so callers always get a consistently shaped object.
// Validate guards the write path and rejects unknown keys or badly shaped values.
type AttributeResolver interface {
	// Domain returns the namespace the resolver owns, e.g. "user".
	Domain() string

	// Resolve builds the typed attribute object from raw key/value pairs.
	Resolve(raw map[string]string) any

	// Validate checks a proposed key/value before it is stored.
	Validate(key, value string) error
}

// StringValue returns raw[key] or fallback when the key is absent.
func StringValue(raw map[string]string, key, fallback string) string {
	if v, ok := raw[key]; ok {
		return v
	}
	return fallback
}

// JSONValue decodes raw[key] into T. Missing keys, null and undecodable values yield fallback.
// Field names are matched case-insensitively.
func JSONValue[T any](raw map[string]string, key string, fallback T) T {
	v, ok := raw[key]
	if !ok {
		return fallback
	}
	var out *T
	if err := json.Unmarshal([]byte(v), &out); err != nil || out == nil {
		return fallback
	}
	return *out
}

// ValidateJSON reports whether value decodes into a non-null T.
func ValidateJSON[T any](key, value string) error {
	var out *T
	if err := json.Unmarshal([]byte(value), &out); err != nil {
		return fmt.Errorf("'%s' must be a JSON %T object: %v", key, *new(T), err)
	}
	if out == nil {
		return fmt.Errorf("'%s' must be a JSON %T object, got null", key, *new(T))
	}
	return nil
}
