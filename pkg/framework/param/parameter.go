package param

import (
	"fmt"
	"math"
	"strconv"
	"sync/atomic"
)

// Kind is the widget a parameter is shown with on the host.
type Kind int

const (
	// Float is a continuous value with a slider.
	Float Kind = iota
	// Menu is an enumeration; its plain value is the selected index.
	Menu
	// Pulse is a momentary button. It has no meaningful value.
	Pulse
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case Float:
		return "float"
	case Menu:
		return "menu"
	case Pulse:
		return "pulse"
	default:
		return "unknown"
	}
}

// Parameter represents a plugin parameter
type Parameter struct {
	ID           uint32
	Name         string
	Label        string
	Page         string
	Kind         Kind
	Min          float64
	Max          float64
	DefaultValue float64 // normalized
	StepCount    int32

	// Menu entries, index aligned
	MenuNames  []string
	MenuLabels []string

	// Atomic value so a UI goroutine can read while the host cooks
	value    uint64
	disabled atomic.Bool

	formatFunc func(float64) string
	parseFunc  func(string) (float64, error)
}

// GetValue returns the current normalized value (0-1)
func (p *Parameter) GetValue() float64 {
	return math.Float64frombits(atomic.LoadUint64(&p.value))
}

// SetValue sets the normalized value (0-1)
func (p *Parameter) SetValue(value float64) {
	if value < 0 {
		value = 0
	} else if value > 1 {
		value = 1
	}

	atomic.StoreUint64(&p.value, math.Float64bits(value))
}

// GetPlainValue converts normalized to plain value
func (p *Parameter) GetPlainValue() float64 {
	return p.Denormalize(p.GetValue())
}

// SetPlainValue converts plain to normalized value
func (p *Parameter) SetPlainValue(plain float64) {
	p.SetValue(p.Normalize(plain))
}

// Reset restores the default value.
func (p *Parameter) Reset() {
	p.SetValue(p.DefaultValue)
}

// MenuIndex returns the selected entry of a menu parameter.
func (p *Parameter) MenuIndex() int {
	return int(math.Round(p.GetPlainValue()))
}

// SetMenuIndex selects a menu entry by index.
func (p *Parameter) SetMenuIndex(index int) error {
	if index < 0 || index >= len(p.MenuNames) {
		return fmt.Errorf("menu %s: index %d out of range", p.Name, index)
	}
	p.SetPlainValue(float64(index))
	return nil
}

// MenuName returns the name of the selected menu entry, or "" for non-menus.
func (p *Parameter) MenuName() string {
	i := p.MenuIndex()
	if i < 0 || i >= len(p.MenuNames) {
		return ""
	}
	return p.MenuNames[i]
}

// IsEnabled reports whether the parameter is active in the host UI.
func (p *Parameter) IsEnabled() bool {
	return !p.disabled.Load()
}

// SetEnabled greys the parameter in or out.
func (p *Parameter) SetEnabled(enabled bool) {
	p.disabled.Store(!enabled)
}

// SetFormatter sets custom value formatting
func (p *Parameter) SetFormatter(format func(float64) string, parse func(string) (float64, error)) {
	p.formatFunc = format
	p.parseFunc = parse
}

// FormatValue returns formatted parameter value
func (p *Parameter) FormatValue(normalized float64) string {
	plain := p.Denormalize(normalized)

	if p.formatFunc != nil {
		return p.formatFunc(plain)
	}

	if p.StepCount > 0 {
		return fmt.Sprintf("%.0f", plain)
	}
	return fmt.Sprintf("%.2f", plain)
}

// ParseValue parses string to normalized value
func (p *Parameter) ParseValue(str string) (float64, error) {
	if p.parseFunc != nil {
		plain, err := p.parseFunc(str)
		if err != nil {
			return 0, err
		}
		return p.Normalize(plain), nil
	}

	plain, err := strconv.ParseFloat(str, 64)
	if err != nil {
		return 0, fmt.Errorf("parameter %s: %w", p.Name, err)
	}
	return p.Normalize(plain), nil
}

// Normalize converts plain value to normalized (0-1)
func (p *Parameter) Normalize(plain float64) float64 {
	if p.Max <= p.Min {
		return 0
	}
	normalized := (plain - p.Min) / (p.Max - p.Min)
	if normalized < 0 {
		return 0
	}
	if normalized > 1 {
		return 1
	}
	return normalized
}

// Denormalize converts normalized (0-1) to plain value
func (p *Parameter) Denormalize(normalized float64) float64 {
	return p.Min + normalized*(p.Max-p.Min)
}
