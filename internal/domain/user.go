package domain

import (
	"fmt"
	"sort"
)

// UserProfile is the profile object returned by the backend. Only is_admin is
// interpreted; the remaining fields are passed through to views untouched.
type UserProfile map[string]any

// IsAdmin reports whether is_admin is the JSON boolean true. Strings, numbers
// and a missing field all count as false.
func (p UserProfile) IsAdmin() bool {
	admin, ok := p["is_admin"].(bool)
	return ok && admin
}

func (p UserProfile) Field(name string) string {
	value, ok := p[name]
	if !ok || value == nil {
		return ""
	}
	switch v := value.(type) {
	case string:
		return v
	case float64:
		if v == float64(int64(v)) {
			return fmt.Sprintf("%d", int64(v))
		}
		return fmt.Sprintf("%g", v)
	default:
		return fmt.Sprint(v)
	}
}

// DisplayName picks the most readable identity field the backend sent.
func (p UserProfile) DisplayName() string {
	for _, key := range []string{"full_name", "username", "email", "id"} {
		if value := p.Field(key); value != "" {
			return value
		}
	}
	return "unknown user"
}

func (p UserProfile) Keys() []string {
	keys := make([]string, 0, len(p))
	for key := range p {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Clone deep-copies the nested objects and arrays a JSON decode produces, so
// the copy shares no mutable state with p.
func (p UserProfile) Clone() UserProfile {
	if p == nil {
		return nil
	}
	return UserProfile(cloneObject(p))
}

func cloneObject(object map[string]any) map[string]any {
	clone := make(map[string]any, len(object))
	for key, value := range object {
		clone[key] = cloneValue(value)
	}
	return clone
}

func cloneValue(value any) any {
	switch v := value.(type) {
	case map[string]any:
		if v == nil {
			return v
		}
		return cloneObject(v)
	case UserProfile:
		return v.Clone()
	case []any:
		if v == nil {
			return v
		}
		clone := make([]any, len(v))
		for i, item := range v {
			clone[i] = cloneValue(item)
		}
		return clone
	default:
		return v
	}
}
