package plugin

import (
	"errors"
	"fmt"

	"github.com/justyntemme/chopgo/pkg/chop"
	"github.com/justyntemme/chopgo/pkg/framework/debug"
	"github.com/justyntemme/chopgo/pkg/framework/param"
	"github.com/justyntemme/chopgo/pkg/framework/plugin"
	"github.com/justyntemme/chopgo/pkg/framework/process"
	"github.com/justyntemme/chopgo/pkg/framework/state"
)

// Instance is one operator: a processor, its parameters, and the inputs
// connected for the next cook. Every hook recovers panics and reports them
// as errors.
type Instance struct {
	info      plugin.Info
	processor Processor
	ctx       *process.Context
	state     *state.Manager
	profiler  *debug.Profiler
}

// NewInstance wraps a processor and lets it declare its parameters
func NewInstance(info plugin.Info, p Processor) (inst *Instance, err error) {
	if p == nil {
		return nil, errors.New("nil processor")
	}
	defer recoverPanic("SetupParameters", &err)

	params := p.Parameters()
	if err := p.SetupParameters(params); err != nil {
		return nil, fmt.Errorf("setup parameters: %w", err)
	}

	st := state.NewManager(params)
	st.SetPluginID(info.ID)

	return &Instance{
		info:      info,
		processor: p,
		ctx:       process.NewContext(params),
		state:     st,
	}, nil
}

// Info returns the plugin metadata
func (i *Instance) Info() plugin.Info {
	return i.info
}

// Processor returns the wrapped processor
func (i *Instance) Processor() Processor {
	return i.processor
}

// Parameters returns the instance's parameter registry
func (i *Instance) Parameters() *param.Registry {
	return i.processor.Parameters()
}

// State returns the preset manager for the instance's parameters
func (i *Instance) State() *state.Manager {
	return i.state
}

// Inputs returns what the processor sees as its inputs
func (i *Instance) Inputs() chop.Inputs {
	return i.ctx
}

// SetInputs connects upstream operators for the following cooks
func (i *Instance) SetInputs(inputs ...*chop.Input) {
	i.ctx.SetInputs(inputs...)
}

// EnableProfiling starts recording hook timings
func (i *Instance) EnableProfiling() {
	if i.profiler == nil {
		i.profiler = debug.NewProfiler(1000)
	}
}

// Profiler returns the hook profiler, or nil when profiling is off
func (i *Instance) Profiler() *debug.Profiler {
	return i.profiler
}

func (i *Instance) profile(name string) func() {
	if i.profiler == nil {
		return func() {}
	}
	return i.profiler.Start(name)
}

// GeneralInfo asks the processor for its behavior flags
func (i *Instance) GeneralInfo() (info chop.GeneralInfo, err error) {
	defer recoverPanic("GeneralInfo", &err)
	defer i.profile("GeneralInfo")()

	i.processor.GeneralInfo(&info, i.ctx)
	return info, nil
}

// OutputInfo asks the processor for its output geometry. fixed is false when
// the processor defers to its inputs.
func (i *Instance) OutputInfo(defaults chop.OutputInfo) (info chop.OutputInfo, fixed bool, err error) {
	defer recoverPanic("OutputInfo", &err)
	defer i.profile("OutputInfo")()

	info = defaults
	fixed = i.processor.OutputInfo(&info, i.ctx)
	if !fixed {
		info = defaults
	}
	return info, fixed, nil
}

// ChannelName asks the processor to name an output channel
func (i *Instance) ChannelName(index int32) (name string, err error) {
	defer recoverPanic("ChannelName", &err)

	return i.processor.ChannelName(index, i.ctx), nil
}

// Execute cooks one frame into out
func (i *Instance) Execute(out *chop.Output) (err error) {
	defer recoverPanic("Execute", &err)
	defer i.profile("Execute")()

	if out == nil {
		return errors.New("nil output")
	}
	i.processor.Execute(out, i.ctx)
	return nil
}

// InfoChannels collects the Info CHOP channels
func (i *Instance) InfoChannels() (chans []chop.InfoChannel, err error) {
	defer recoverPanic("InfoChannels", &err)

	n := i.processor.NumInfoChannels()
	chans = make([]chop.InfoChannel, 0, n)
	for idx := int32(0); idx < n; idx++ {
		chans = append(chans, i.processor.InfoChannel(idx))
	}
	return chans, nil
}

// InfoTable collects the Info DAT table as rows of cells. It returns nil
// when the processor exposes no table.
func (i *Instance) InfoTable() (table [][]string, err error) {
	defer recoverPanic("InfoTable", &err)

	var size chop.InfoDATSize
	if !i.processor.InfoDATSize(&size) || size.Rows <= 0 || size.Cols <= 0 {
		return nil, nil
	}

	// Entries arrive a row at a time, or a column at a time when ByColumn
	lines, perLine := size.Rows, size.Cols
	if size.ByColumn {
		lines, perLine = size.Cols, size.Rows
	}

	table = make([][]string, size.Rows)
	for r := range table {
		table[r] = make([]string, size.Cols)
	}

	for line := int32(0); line < lines; line++ {
		entries := chop.InfoDATEntries{Values: make([]string, perLine)}
		i.processor.InfoDATEntries(line, perLine, &entries)
		for k := int32(0); k < perLine && k < int32(len(entries.Values)); k++ {
			if size.ByColumn {
				table[k][line] = entries.Values[k]
			} else {
				table[line][k] = entries.Values[k]
			}
		}
	}
	return table, nil
}

// PulsePressed presses a pulse parameter
func (i *Instance) PulsePressed(name string) (err error) {
	defer recoverPanic("PulsePressed", &err)

	p := i.Parameters().GetByName(name)
	if p == nil {
		return fmt.Errorf("unknown parameter %q", name)
	}
	if p.Kind != param.Pulse {
		return fmt.Errorf("parameter %q is a %s, not a pulse", name, p.Kind)
	}
	i.processor.PulsePressed(name)
	return nil
}

// SetParameter parses text the way the host's parameter dialog would and
// assigns it
func (i *Instance) SetParameter(name, text string) error {
	p, err := i.settable(name)
	if err != nil {
		return err
	}
	normalized, err := p.ParseValue(text)
	if err != nil {
		return fmt.Errorf("parameter %q: %w", name, err)
	}
	p.SetValue(normalized)
	return nil
}

// SetParameterValue assigns a plain value, clamped to the parameter range
func (i *Instance) SetParameterValue(name string, plain float64) error {
	p, err := i.settable(name)
	if err != nil {
		return err
	}
	p.SetPlainValue(plain)
	return nil
}

func (i *Instance) settable(name string) (*param.Parameter, error) {
	p := i.Parameters().GetByName(name)
	if p == nil {
		return nil, fmt.Errorf("unknown parameter %q", name)
	}
	if p.Kind == param.Pulse {
		return nil, fmt.Errorf("parameter %q is a pulse and has no value", name)
	}
	return p, nil
}
