package param

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Choice creates a parameter builder for a menu parameter
func Choice(id uint32, name string, names, labels []string) *Builder {
	if len(labels) != len(names) {
		labels = names
	}

	formatter := func(value float64) string {
		index := int(math.Round(value))
		if index >= 0 && index < len(labels) {
			return labels[index]
		}
		return "Unknown"
	}

	parser := func(str string) (float64, error) {
		str = strings.TrimSpace(str)
		for i := range names {
			if strings.EqualFold(str, names[i]) || strings.EqualFold(str, labels[i]) {
				return float64(i), nil
			}
		}
		if index, err := strconv.Atoi(str); err == nil && index >= 0 && index < len(names) {
			return float64(index), nil
		}
		return 0, fmt.Errorf("unknown option: %s", str)
	}

	return New(id, name).
		Menu(names, labels).
		Formatter(formatter, parser)
}

// SliderParameter creates a float parameter with a bounded slider
func SliderParameter(id uint32, name string, min, max, defaultVal float64) *Builder {
	return New(id, name).
		Range(min, max).
		Default(defaultVal).
		Formatter(FloatFormatter, FloatParser)
}

// PulseParameter creates a momentary button
func PulseParameter(id uint32, name string) *Builder {
	return New(id, name).
		Pulse().
		Formatter(func(float64) string { return "" }, nil)
}
