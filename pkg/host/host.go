// Package host is an in-process stand-in for a CHOP host. It drives an
// instance through the same hook sequence a host runs every frame, which is
// enough to cook a plugin from tests and from the command line.
package host

import (
	"fmt"
	"math"
	"sort"

	"github.com/justyntemme/chopgo/pkg/chop"
	"github.com/justyntemme/chopgo/pkg/framework/debug"
	"github.com/justyntemme/chopgo/pkg/plugin"
)

const (
	// DefaultFPS is the frame rate hosts start at.
	DefaultFPS = 60.0
	// DefaultRate is the sample rate of an unconnected operator that does
	// not choose its own.
	DefaultRate = 60.0
)

// sample counts within this of a whole number round up, so that 0.4+0.6
// style carries do not drop a sample
const carryEpsilon = 1e-9

// Frame is the result of one cook.
type Frame struct {
	Index        int
	Output       *chop.Output
	ChannelNames []string
	InfoChannels []chop.InfoChannel
	InfoTable    [][]string
}

// Host cooks one instance frame by frame.
type Host struct {
	inst    *plugin.Instance
	fps     float64
	samples int32
	rate    float64
	log     *debug.Logger

	inputs     []*chop.Input
	pulses     map[int][]string
	frame      int
	remainder  float64
	startIndex uint32
}

// Option configures a Host.
type Option func(*Host)

// WithFPS sets the frame rate used for timesliced sample counts.
func WithFPS(fps float64) Option {
	return func(h *Host) {
		if fps > 0 {
			h.fps = fps
		}
	}
}

// WithSamples forces every frame to the given length, ignoring timeslicing.
func WithSamples(n int32) Option {
	return func(h *Host) {
		if n > 0 {
			h.samples = n
		}
	}
}

// WithDefaultRate sets the rate offered to operators that defer their
// geometry while nothing is connected.
func WithDefaultRate(rate float64) Option {
	return func(h *Host) {
		if rate > 0 {
			h.rate = rate
		}
	}
}

// WithLogger sets the logger used for per-frame debug output.
func WithLogger(l *debug.Logger) Option {
	return func(h *Host) {
		if l != nil {
			h.log = l
		}
	}
}

// New creates a host around inst.
func New(inst *plugin.Instance, opts ...Option) *Host {
	h := &Host{
		inst:   inst,
		fps:    DefaultFPS,
		rate:   DefaultRate,
		log:    debug.Default(),
		pulses: make(map[int][]string),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Instance returns the cooked instance.
func (h *Host) Instance() *plugin.Instance {
	return h.inst
}

// Frame returns the index of the next frame to cook.
func (h *Host) Frame() int {
	return h.frame
}

// Connect replaces the upstream operators. Calling it with no arguments
// disconnects everything.
func (h *Host) Connect(inputs ...*chop.Input) {
	h.inputs = h.inputs[:0]
	for _, in := range inputs {
		if in != nil {
			h.inputs = append(h.inputs, in)
		}
	}
}

// SchedulePulse presses the named pulse parameter just before frame cooks.
func (h *Host) SchedulePulse(frame int, name string) {
	h.pulses[frame] = append(h.pulses[frame], name)
}

// ScheduledPulses returns the frames with pending pulses, in order.
func (h *Host) ScheduledPulses() []int {
	frames := make([]int, 0, len(h.pulses))
	for f := range h.pulses {
		frames = append(frames, f)
	}
	sort.Ints(frames)
	return frames
}

// Cook runs one frame: inputs, pending pulses, general info, output info,
// channel names, execute, then the info hooks.
func (h *Host) Cook() (Frame, error) {
	index := h.frame
	h.frame++

	h.inst.SetInputs(h.inputs...)

	for _, name := range h.pulses[index] {
		if err := h.inst.PulsePressed(name); err != nil {
			return Frame{}, fmt.Errorf("frame %d: pulse %s: %w", index, name, err)
		}
	}
	delete(h.pulses, index)

	general, err := h.inst.GeneralInfo()
	if err != nil {
		return Frame{}, fmt.Errorf("frame %d: %w", index, err)
	}

	info, fixed, err := h.inst.OutputInfo(h.defaults(general))
	if err != nil {
		return Frame{}, fmt.Errorf("frame %d: %w", index, err)
	}
	numSamples := h.frameLength(general, info, fixed)

	names := make([]string, info.NumChannels)
	for i := range names {
		if names[i], err = h.inst.ChannelName(int32(i)); err != nil {
			return Frame{}, fmt.Errorf("frame %d: %w", index, err)
		}
	}

	out := chop.NewOutput(info.NumChannels, numSamples, info.SampleRate)
	out.StartIndex = h.startIndex
	if err := h.inst.Execute(out); err != nil {
		return Frame{}, fmt.Errorf("frame %d: %w", index, err)
	}
	h.startIndex += uint32(numSamples)

	chans, err := h.inst.InfoChannels()
	if err != nil {
		return Frame{}, fmt.Errorf("frame %d: %w", index, err)
	}
	table, err := h.inst.InfoTable()
	if err != nil {
		return Frame{}, fmt.Errorf("frame %d: %w", index, err)
	}

	h.log.Debug("frame %d: %d ch x %d samples @ %g (fixed=%v)", index, info.NumChannels, numSamples, info.SampleRate, fixed)

	return Frame{
		Index:        index,
		Output:       out,
		ChannelNames: names,
		InfoChannels: chans,
		InfoTable:    table,
	}, nil
}

// Run cooks frames frames, handing each to fn. A non-nil error from fn
// stops the run.
func (h *Host) Run(frames int, fn func(Frame) error) error {
	for i := 0; i < frames; i++ {
		f, err := h.Cook()
		if err != nil {
			return err
		}
		if fn != nil {
			if err := fn(f); err != nil {
				return err
			}
		}
	}
	return nil
}

// defaults is the geometry the host would use if the operator deferred: the
// matched input's, or one channel at the default rate.
func (h *Host) defaults(general chop.GeneralInfo) chop.OutputInfo {
	info := chop.OutputInfo{
		NumChannels: 1,
		NumSamples:  1,
		SampleRate:  h.rate,
		StartIndex:  h.startIndex,
	}

	match := int(general.InputMatchIndex)
	if match < 0 || match >= len(h.inputs) {
		match = 0
	}
	if len(h.inputs) > 0 {
		in := h.inputs[match]
		info.NumChannels = in.NumChannels
		info.NumSamples = in.NumSamples
		info.SampleRate = in.SampleRate
	}
	return info
}

// frameLength decides how many samples this frame cooks. Timesliced
// operators that set their own rate, or have nothing to match, get
// rate/fps samples with the fractional part carried to the next frame.
func (h *Host) frameLength(general chop.GeneralInfo, info chop.OutputInfo, fixed bool) int32 {
	if h.samples > 0 {
		return h.samples
	}
	if general.Timeslice && (fixed || len(h.inputs) == 0) {
		exact := info.SampleRate/h.fps + h.remainder
		n := math.Floor(exact + carryEpsilon)
		h.remainder = math.Max(0, exact-n)
		return int32(n)
	}
	if info.NumSamples < 0 {
		return 0
	}
	return info.NumSamples
}
