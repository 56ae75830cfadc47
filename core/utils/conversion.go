package utils

import "math"

// AsID converts a decoded numeric value to an object id.
// It handles standard integer types and integral floats (JSON numbers).
func AsID(val any) (int, bool) {
	switch v := val.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case int32:
		return int(v), true
	case uint:
		return int(v), true
	case uint64:
		return int(v), true
	case uint32:
		return int(v), true
	case float64:
		if v != math.Trunc(v) {
			return 0, false
		}
		return int(v), true
	case float32:
		if float64(v) != math.Trunc(float64(v)) {
			return 0, false
		}
		return int(v), true
	default:
		return 0, false
	}
}

// AsBool converts a decoded flag. Only booleans are accepted; YAML already maps
// true/yes/on to bool.
func AsBool(val any) (bool, bool) {
	b, ok := val.(bool)
	return b, ok
}
