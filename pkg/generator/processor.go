package generator

import (
	"fmt"
	"strconv"

	"github.com/justyntemme/chopgo/pkg/chop"
	"github.com/justyntemme/chopgo/pkg/dsp/wave"
	"github.com/justyntemme/chopgo/pkg/framework/plugin"
	chopplugin "github.com/justyntemme/chopgo/pkg/plugin"
)

// Parameter names as the host shows them.
const (
	ParSpeed = "Speed"
	ParScale = "Scale"
	ParShape = "Shape"
	ParReset = "Reset"
)

const (
	// SampleRate is the rate of the synthesized output.
	SampleRate = 120.0
	// ChannelName names the single synthesized channel. The host makes
	// duplicate names unique.
	ChannelName = "chan1"

	minSlider = -10.0
	maxSlider = 10.0
)

// waveformPars only apply while synthesizing.
var waveformPars = []string{ParSpeed, ParReset, ParShape}

// Info describes the generator plugin.
var Info = plugin.Info{
	ID:        "com.chopgo.examples.generator",
	Name:      "Generator",
	OpType:    "Generator",
	OpLabel:   "Generator",
	OpIcon:    "GEN",
	Version:   "1.0.0",
	Vendor:    "chopgo",
	MinInputs: 0,
	MaxInputs: 1,
}

// Plugin registers the generator with the runtime.
type Plugin struct{}

var _ chopplugin.Plugin = Plugin{}

// GetInfo returns the plugin metadata.
func (Plugin) GetInfo() plugin.Info {
	return Info
}

// CreateProcessor creates a processor with fresh state.
func (Plugin) CreateProcessor() chopplugin.Processor {
	return NewProcessor()
}

// Processor is the operator: it reads parameters, drives a Generator, and
// reports the generator's counters to the host's info operators.
type Processor struct {
	*plugin.BaseProcessor
	gen *Generator

	// Reset pressed since the last cook
	resetPending bool
}

var _ chopplugin.Processor = (*Processor)(nil)

// NewProcessor creates a processor.
func NewProcessor() *Processor {
	return &Processor{
		BaseProcessor: plugin.NewBaseProcessor(Info),
		gen:           New(),
	}
}

// Generator exposes the underlying generator.
func (p *Processor) Generator() *Generator {
	return p.gen
}

// GeneralInfo asks for a timesliced cook every frame while the output is
// in use, matching the first input's length.
func (p *Processor) GeneralInfo(info *chop.GeneralInfo, inputs chop.Inputs) {
	info.CookEveryFrameIfAsked = true
	info.Timeslice = true
	info.InputMatchIndex = 0
}

// OutputInfo defers to the input when connected. Otherwise it outputs one
// channel at SampleRate.
func (p *Processor) OutputInfo(info *chop.OutputInfo, inputs chop.Inputs) bool {
	if inputs.NumInputs() > 0 {
		return false
	}
	info.NumChannels = 1
	info.SampleRate = SampleRate
	return true
}

// ChannelName returns the same name for every channel.
func (p *Processor) ChannelName(index int32, inputs chop.Inputs) string {
	return ChannelName
}

// Execute cooks one frame. A pending Reset rewinds the waveform before
// synthesis and is discarded when this cook has an input.
func (p *Processor) Execute(output *chop.Output, inputs chop.Inputs) {
	settings := Settings{Scale: inputs.ParDouble(ParScale)}

	connected := inputs.NumInputs() > 0
	for _, name := range waveformPars {
		inputs.EnablePar(name, !connected)
	}

	if p.resetPending {
		p.resetPending = false
		if !connected {
			p.gen.Reset()
		}
	}

	if connected {
		p.gen.Execute(output, inputs.InputCHOP(0), settings)
		return
	}

	settings.Speed = inputs.ParDouble(ParSpeed)
	settings.Shape = wave.Shape(inputs.ParInt(ParShape))
	p.gen.Execute(output, nil, settings)
}

// NumInfoChannels returns 2: executeCount and offset.
func (p *Processor) NumInfoChannels() int32 {
	return 2
}

// InfoChannel returns one of the counters.
func (p *Processor) InfoChannel(index int32) chop.InfoChannel {
	switch index {
	case 0:
		return chop.InfoChannel{Name: "executeCount", Value: float32(p.gen.ExecuteCount())}
	case 1:
		return chop.InfoChannel{Name: "offset", Value: float32(p.gen.PhaseOffset())}
	}
	return chop.InfoChannel{}
}

// InfoDATSize declares a two row name/value table.
func (p *Processor) InfoDATSize(size *chop.InfoDATSize) bool {
	size.Rows = 2
	size.Cols = 2
	size.ByColumn = false
	return true
}

// InfoDATEntries fills one row of the table.
func (p *Processor) InfoDATEntries(index, nEntries int32, entries *chop.InfoDATEntries) {
	var row [2]string
	switch index {
	case 0:
		row = [2]string{"executeCount", strconv.FormatInt(p.gen.ExecuteCount(), 10)}
	case 1:
		row = [2]string{"offset", strconv.FormatFloat(p.gen.PhaseOffset(), 'g', 6, 64)}
	default:
		return
	}

	if int32(len(entries.Values)) < nEntries {
		entries.Values = make([]string, nEntries)
	}
	for i := int32(0); i < nEntries && i < int32(len(row)); i++ {
		entries.Values[i] = row[i]
	}
}

// SetupParameters declares Speed, Scale, Shape and Reset.
func (p *Processor) SetupParameters(manager chop.ParameterManager) error {
	for _, name := range []string{ParSpeed, ParScale} {
		var np chop.NumericParameter
		np.Name = name
		np.Label = name
		np.DefaultValues[0] = 1.0
		np.MinSliders[0] = minSlider
		np.MaxSliders[0] = maxSlider

		if err := manager.AppendFloat(np).Err(); err != nil {
			return fmt.Errorf("append %s: %w", name, err)
		}
	}

	sp := chop.StringParameter{Name: ParShape, Label: ParShape, DefaultValue: wave.Sine.String()}
	if err := manager.AppendMenu(sp, wave.Names, wave.Names).Err(); err != nil {
		return fmt.Errorf("append %s: %w", ParShape, err)
	}

	np := chop.NumericParameter{Name: ParReset, Label: ParReset}
	if err := manager.AppendPulse(np).Err(); err != nil {
		return fmt.Errorf("append %s: %w", ParReset, err)
	}
	return nil
}

// PulsePressed queues a Reset for the next cook. Whether the press counts
// depends on that cook's inputs, not the previous one's.
func (p *Processor) PulsePressed(name string) {
	if name == ParReset {
		p.resetPending = true
	}
}
