package param

import (
	"strconv"
	"strings"
)

// FloatFormatter formats plain float values the way the host's parameter
// dialog shows them.
func FloatFormatter(value float64) string {
	return strconv.FormatFloat(value, 'g', 6, 64)
}

// FloatParser parses float strings, tolerating surrounding whitespace
func FloatParser(str string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(str), 64)
}
