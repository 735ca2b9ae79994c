package entity

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

func metaString(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(val)
	case float64:
		if math.IsNaN(val) {
			return ""
		}
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	default:
		return strings.TrimSpace(fmt.Sprint(val))
	}
}

// MetaFloat reads a numeric metadata value. Strings are parsed; anything else
// (missing, empty, malformed) reports ok=false.
func (d *Document) MetaFloat(key string) (float64, bool) {
	switch val := d.Metadata[key].(type) {
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return 0, false
		}
		return val, true
	case int:
		return float64(val), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
