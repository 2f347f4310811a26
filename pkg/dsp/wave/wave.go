// Package wave provides the periodic shapes used by the generator and the
// block helpers that turn them into output samples.
package wave

import (
	"fmt"
	"math"
	"strings"

	vecmath "github.com/cwbudde/algo-vecmath"
)

// Shape selects a waveform. Values match the menu order of the Shape
// parameter.
type Shape int

const (
	Sine Shape = iota
	Square
	Ramp
)

// Names are the menu entries for Shape, in order.
var Names = []string{"Sine", "Square", "Ramp"}

// String returns the menu name, or "Shape(n)" for values outside the menu.
func (s Shape) String() string {
	if s >= 0 && int(s) < len(Names) {
		return Names[s]
	}
	return fmt.Sprintf("Shape(%d)", int(s))
}

// ParseShape parses a menu name case-insensitively.
func ParseShape(name string) (Shape, error) {
	for i, n := range Names {
		if strings.EqualFold(strings.TrimSpace(name), n) {
			return Shape(i), nil
		}
	}
	return Sine, fmt.Errorf("unknown shape %q", name)
}

// Value evaluates shape at offset. Sine takes offset in radians; square and
// ramp repeat every 1.0. A shape outside the menu is silent.
func Value(shape Shape, offset float64) float64 {
	switch shape {
	case Sine:
		return math.Sin(offset)
	case Square:
		if math.Abs(math.Mod(offset, 1.0)) > 0.5 {
			return 1.0
		}
		return 0.0
	case Ramp:
		return math.Abs(math.Mod(offset, 1.0))
	default:
		return 0.0
	}
}

// Fill writes shape into dst starting at offset and advancing by step per
// sample. It returns the offset following the last sample.
func Fill(dst []float64, shape Shape, offset, step float64) float64 {
	for i := range dst {
		dst[i] = Value(shape, offset)
		offset += step
	}
	return offset
}

// Scale multiplies src by gain into dst.
func Scale(dst, src []float64, gain float64) {
	vecmath.ScaleBlock(dst, src, gain)
}

// Narrow converts src to the host's float32 samples.
func Narrow(dst []float32, src []float64) {
	n := len(dst)
	if len(src) < n {
		n = len(src)
	}
	for i := 0; i < n; i++ {
		dst[i] = float32(src[i])
	}
}
