package entities

import (
	"math"
	"strconv"
	"strings"
)

// coerceInt reads v as an integer.
//
// Accepted: every Go integer kind, finite integral floats, and base-10 strings
// (surrounding whitespace is ignored). Anything else, including bool and nil,
// is a *CoercionError.
func coerceInt(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int8:
		return int(n), nil
	case int16:
		return int(n), nil
	case int32:
		return int(n), nil
	case int64:
		if n < math.MinInt || n > math.MaxInt {
			return 0, &CoercionError{Input: v}
		}
		return int(n), nil
	case uint:
		if uint64(n) > math.MaxInt {
			return 0, &CoercionError{Input: v}
		}
		return int(n), nil
	case uint8:
		return int(n), nil
	case uint16:
		return int(n), nil
	case uint32:
		return int(n), nil
	case uint64:
		if n > math.MaxInt {
			return 0, &CoercionError{Input: v}
		}
		return int(n), nil
	case float32:
		return floatToInt(float64(n), v)
	case float64:
		return floatToInt(n, v)
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, &CoercionError{Input: v}
		}
		return i, nil
	}
	return 0, &CoercionError{Input: v}
}

func floatToInt(f float64, orig any) (int, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, &CoercionError{Input: orig}
	}
	if f < math.MinInt || f >= math.MaxInt {
		return 0, &CoercionError{Input: orig}
	}
	return int(f), nil
}
