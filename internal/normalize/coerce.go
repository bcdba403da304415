package normalize

import (
	"encoding"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// TimeLayout is the layout every timestamp field is rendered with.
const TimeLayout = time.RFC3339Nano

// 2^63 as a float; every float64 strictly below it fits into int64.
const maxInt64Float = 9223372036854775808.0

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// asFloat accepts the number representations produced by JSON decoders and
// by previous normalization passes. NaN and infinities are rejected.
func asFloat(raw any) (float64, bool) {
	var v float64
	switch n := raw.(type) {
	case float64:
		v = n
	case float32:
		v = float64(n)
	case int:
		v = float64(n)
	case int8:
		v = float64(n)
	case int16:
		v = float64(n)
	case int32:
		v = float64(n)
	case int64:
		v = float64(n)
	case uint:
		v = float64(n)
	case uint8:
		v = float64(n)
	case uint16:
		v = float64(n)
	case uint32:
		v = float64(n)
	case uint64:
		v = float64(n)
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		v = f
	default:
		return 0, false
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// asInt accepts integral numbers only.
func asInt(raw any) (int64, bool) {
	switch n := raw.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		if uint64(n) > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		if n > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, true
		}
	}
	f, ok := asFloat(raw)
	if !ok || f != math.Trunc(f) || f >= maxInt64Float || f < -maxInt64Float {
		return 0, false
	}
	return int64(f), true
}

// asTimestamp converts strings and date-like values to a string.
func asTimestamp(raw any) (string, bool) {
	switch t := raw.(type) {
	case string:
		return t, true
	case time.Time:
		return t.UTC().Format(TimeLayout), true
	case *time.Time:
		if t == nil {
			return "", false
		}
		return t.UTC().Format(TimeLayout), true
	case encoding.TextMarshaler:
		b, err := t.MarshalText()
		if err != nil {
			return "", false
		}
		return string(b), true
	}
	return "", false
}

// asDecimal renders integers and digit strings as a decimal string.
func asDecimal(raw any) (string, bool) {
	if s, ok := raw.(string); ok {
		s = strings.TrimSpace(s)
		if s == "" {
			return "", false
		}
		if _, err := strconv.ParseUint(s, 10, 64); err != nil {
			return "", false
		}
		return s, true
	}
	i, ok := asInt(raw)
	if !ok || i < 0 {
		return "", false
	}
	return strconv.FormatInt(i, 10), true
}

func asObject(raw any) (map[string]any, bool) {
	switch m := raw.(type) {
	case map[string]any:
		return m, true
	case Record:
		return m, true
	}
	return nil, false
}

func asList(raw any) ([]any, bool) {
	switch l := raw.(type) {
	case []any:
		return l, true
	case []Record:
		out := make([]any, len(l))
		for i, r := range l {
			out[i] = r
		}
		return out, true
	case []map[string]any:
		out := make([]any, len(l))
		for i, r := range l {
			out[i] = r
		}
		return out, true
	}
	return nil, false
}

func asCounts(raw any) (map[string]int64, bool) {
	switch m := raw.(type) {
	case map[string]int64:
		out := make(map[string]int64, len(m))
		for k, v := range m {
			out[k] = v
		}
		return out, true
	}
	obj, ok := asObject(raw)
	if !ok {
		return nil, false
	}
	out := make(map[string]int64, len(obj))
	for k, v := range obj {
		if i, ok := asInt(v); ok {
			out[k] = i
		}
	}
	return out, true
}
