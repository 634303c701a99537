package expression

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-campform/pkg/model"
)

func lookup(ctx Context, key string) (any, bool) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, false
	}

	if strings.HasPrefix(strings.ToLower(key), "extras.") {
		path := strings.TrimSpace(key[len("extras."):])
		return lookupMap(ctx.Extras, path)
	}
	return lookupMap(ctx.Values, key)
}

func lookupMap(values map[string]any, path string) (any, bool) {
	if len(values) == 0 || strings.TrimSpace(path) == "" {
		return nil, false
	}
	path = strings.TrimSpace(path)

	// Prefer exact match for dotted question names.
	if v, ok := values[path]; ok {
		return v, true
	}

	parts := strings.Split(path, ".")
	var current any = values
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			return nil, false
		}
		switch typed := current.(type) {
		case map[string]any:
			next, ok := typed[part]
			if !ok {
				return nil, false
			}
			current = next
		case map[string]string:
			next, ok := typed[part]
			if !ok {
				return nil, false
			}
			current = next
		case *model.OrderedObject:
			next, ok := typed.Get(part)
			if !ok {
				return nil, false
			}
			current = next
		default:
			return nil, false
		}
	}
	return current, true
}

func truthy(value any) bool {
	if value == nil {
		return false
	}
	switch v := value.(type) {
	case bool:
		return v
	case string:
		return strings.TrimSpace(v) != ""
	case int:
		return v != 0
	case int64:
		return v != 0
	case float64:
		return v != 0
	case float32:
		return v != 0
	case []any:
		return len(v) > 0
	case map[string]any:
		return len(v) > 0
	case *model.OrderedObject:
		return v.Len() > 0
	default:
		return true
	}
}

func equal(left, right any) bool {
	if left == nil && right == nil {
		return true
	}
	if isBool(left) || isBool(right) {
		l, _ := coerceBool(left)
		r, _ := coerceBool(right)
		return l == r
	}
	if isNumber(left) || isNumber(right) {
		l, lok := coerceNumber(left)
		r, rok := coerceNumber(right)
		if !lok {
			l = 0
		}
		if !rok {
			r = 0
		}
		return l == r
	}
	return coerceString(left) == coerceString(right)
}

// order compares numerically when both sides read as numbers and lexically
// when both are strings; anything else is unordered.
func order(left, right any) (int, bool) {
	l, lok := coerceNumber(left)
	r, rok := coerceNumber(right)
	if lok && rok {
		switch {
		case l < r:
			return -1, true
		case l > r:
			return 1, true
		default:
			return 0, true
		}
	}
	ls, lstr := left.(string)
	rs, rstr := right.(string)
	if lstr && rstr {
		return strings.Compare(ls, rs), true
	}
	return 0, false
}

func isBool(value any) bool {
	_, ok := value.(bool)
	return ok
}

func isNumber(value any) bool {
	switch value.(type) {
	case float64, float32, int, int64, int32, uint, uint64:
		return true
	}
	return false
}

func coerceBool(value any) (bool, bool) {
	if value == nil {
		return false, false
	}
	switch v := value.(type) {
	case bool:
		return v, true
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(v))
		if err == nil {
			return parsed, true
		}
		return strings.TrimSpace(v) != "", true
	case int:
		return v != 0, true
	case int64:
		return v != 0, true
	case float64:
		return v != 0, true
	default:
		return truthy(value), true
	}
}

func coerceNumber(value any) (float64, bool) {
	if value == nil {
		return 0, false
	}
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case int32:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint64:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func coerceString(value any) string {
	if value == nil {
		return ""
	}
	switch v := value.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return fmt.Sprint(value)
	}
}
