package param

// Builder provides a fluent API for creating parameters
type Builder struct {
	param *Parameter
}

// New creates a new parameter builder
func New(id uint32, name string) *Builder {
	return &Builder{
		param: &Parameter{
			ID:    id,
			Name:  name,
			Label: name,
			Kind:  Float,
			Min:   0,
			Max:   1,
		},
	}
}

// Label sets the text shown next to the parameter
func (b *Builder) Label(label string) *Builder {
	b.param.Label = label
	return b
}

// Page sets the parameter page
func (b *Builder) Page(page string) *Builder {
	b.param.Page = page
	return b
}

// Range sets the min and max values
func (b *Builder) Range(min, max float64) *Builder {
	b.param.Min = min
	b.param.Max = max
	return b
}

// Default sets the default value (in plain range, not normalized)
func (b *Builder) Default(value float64) *Builder {
	if b.param.Max > b.param.Min {
		b.param.DefaultValue = (value - b.param.Min) / (b.param.Max - b.param.Min)
	}
	return b
}

// Steps sets the number of discrete steps
func (b *Builder) Steps(count int32) *Builder {
	b.param.StepCount = count
	return b
}

// Menu turns the parameter into an enumeration over names.
func (b *Builder) Menu(names, labels []string) *Builder {
	b.param.Kind = Menu
	b.param.MenuNames = names
	b.param.MenuLabels = labels
	b.param.Min = 0
	b.param.Max = float64(len(names) - 1)
	if len(names) > 1 {
		b.param.StepCount = int32(len(names) - 1)
	}
	return b
}

// Pulse turns the parameter into a momentary button.
func (b *Builder) Pulse() *Builder {
	b.param.Kind = Pulse
	b.param.Min = 0
	b.param.Max = 1
	b.param.StepCount = 1
	b.param.DefaultValue = 0
	return b
}

// Formatter sets custom value formatting and parsing
func (b *Builder) Formatter(format func(float64) string, parse func(string) (float64, error)) *Builder {
	b.param.formatFunc = format
	b.param.parseFunc = parse
	return b
}

// Build returns the configured parameter
func (b *Builder) Build() *Parameter {
	b.param.SetValue(b.param.DefaultValue)
	return b.param
}
