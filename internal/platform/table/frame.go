package table

import (
	"fmt"
	"strconv"
	"time"
)

// Frame is an in-memory table: ordered column names plus one map per row.
// Cell values are nil (null), string, int64, float64, bool or time.Time,
// depending on the file format they were read from.
type Frame struct {
	Columns []string
	Rows    []map[string]any
}

func (f *Frame) HasColumn(name string) bool {
	for _, c := range f.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// AsString renders a cell for text passthrough. Timestamps format as
// RFC 3339 in UTC; numeric cells keep their shortest decimal form.
func AsString(v any) (string, bool) {
	switch x := v.(type) {
	case nil:
		return "", false
	case string:
		return x, true
	case []byte:
		return string(x), true
	case int32:
		return strconv.FormatInt(int64(x), 10), true
	case int64:
		return strconv.FormatInt(x, 10), true
	case int:
		return strconv.Itoa(x), true
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32), true
	case time.Time:
		return x.UTC().Format(time.RFC3339), true
	default:
		return fmt.Sprintf("%v", x), true
	}
}

// AsInt64 coerces a cell to int64. Strings must parse as a base-10
// integer; floats must be integral.
func AsInt64(v any) (int64, bool) {
	switch x := v.(type) {
	case nil:
		return 0, false
	case int64:
		return x, true
	case int32:
		return int64(x), true
	case int:
		return int64(x), true
	case float64:
		if x == float64(int64(x)) {
			return int64(x), true
		}
		return 0, false
	case string:
		n, err := strconv.ParseInt(x, 10, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// AsFloat64 coerces a cell to float64. Unparseable strings report false,
// which callers treat the same as a null cell.
func AsFloat64(v any) (float64, bool) {
	switch x := v.(type) {
	case nil:
		return 0, false
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int64:
		return float64(x), true
	case int32:
		return float64(x), true
	case int:
		return float64(x), true
	case string:
		f, err := strconv.ParseFloat(x, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
