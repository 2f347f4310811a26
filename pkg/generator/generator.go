// Package generator implements a channel operator that either remaps an
// upstream signal or synthesizes a periodic waveform when nothing is
// connected.
package generator

import (
	"math"

	"github.com/justyntemme/chopgo/pkg/chop"
	"github.com/justyntemme/chopgo/pkg/dsp/wave"
	"github.com/justyntemme/chopgo/pkg/framework/debug"
	"github.com/justyntemme/chopgo/pkg/framework/process"
)

// StepPerSpeed converts the Speed parameter into an offset increment per
// sample.
const StepPerSpeed = 0.01

// Settings are the parameter values one cook runs with.
type Settings struct {
	Speed float64
	Scale float64
	Shape wave.Shape
}

// Generator holds the state that persists between cooks. It is not safe for
// concurrent use; the host cooks one instance at a time.
type Generator struct {
	executeCount int64
	phaseOffset  float64

	// scratch, grown to the largest frame seen
	work   []float64
	scaled []float64

	log *debug.Logger
}

// New creates a generator with zeroed counters.
func New() *Generator {
	return &Generator{log: debug.Default()}
}

// SetLogger replaces the logger used for input warnings.
func (g *Generator) SetLogger(l *debug.Logger) {
	if l != nil {
		g.log = l
	}
}

// ExecuteCount returns how many times Execute has run.
func (g *Generator) ExecuteCount() int64 {
	return g.executeCount
}

// PhaseOffset returns the offset the next synthesized frame starts at.
func (g *Generator) PhaseOffset() float64 {
	return g.phaseOffset
}

// Reset rewinds the waveform to offset 0.
func (g *Generator) Reset() {
	g.phaseOffset = 0
}

// Execute fills out for one cook. With an upstream input the input is
// remapped onto the output geometry; otherwise s.Shape is synthesized.
func (g *Generator) Execute(out *chop.Output, upstream *chop.Input, s Settings) {
	g.executeCount++

	if upstream != nil {
		g.remap(out, upstream, s.Scale)
		return
	}
	g.synthesize(out, s)
}

// remap copies upstream into out scaled by scale. A single read cursor runs
// across all channels of the frame and wraps at the upstream length, so an
// output longer than the input repeats it.
func (g *Generator) remap(out *chop.Output, upstream *chop.Input, scale float64) {
	n := int(upstream.NumSamples)
	if n <= 0 {
		g.log.WarnOnce("empty-upstream", "upstream input has no samples, writing silence")
		process.Clear(out)
		return
	}

	samples := int(out.NumSamples)
	work, scaled := g.buffers(samples)

	idx := 0
	process.ProcessChannels(out, func(ch int, output []float32) {
		src := upstream.ChannelData(int32(ch))
		if src == nil {
			g.log.WarnOnce("missing-upstream-channel", "upstream has %d channels, output asked for more; extra channels are silent", upstream.NumChannels)
		}
		for j := 0; j < samples; j++ {
			if idx < len(src) {
				work[j] = float64(src[idx])
			} else {
				work[j] = 0
			}
			idx = (idx + 1) % n
		}
		wave.Scale(scaled, work, scale)
		wave.Narrow(output, scaled)
	})
}

// synthesize writes s.Shape into every channel. Channels are spread evenly
// over one sine period and the persistent offset advances by the frame
// length.
func (g *Generator) synthesize(out *chop.Output, s Settings) {
	step := s.Speed * StepPerSpeed
	samples := int(out.NumSamples)

	if out.NumChannels > 0 {
		phase := 2.0 * math.Pi / float64(out.NumChannels)
		work, scaled := g.buffers(samples)

		process.ProcessChannels(out, func(ch int, output []float32) {
			offset := g.phaseOffset + phase*float64(ch)
			wave.Fill(work, s.Shape, offset, step)
			wave.Scale(scaled, work, s.Scale)
			wave.Narrow(output, scaled)
		})
	}

	g.phaseOffset += step * float64(samples)
}

func (g *Generator) buffers(n int) (work, scaled []float64) {
	if cap(g.work) < n {
		g.work = make([]float64, n)
		g.scaled = make([]float64, n)
	}
	return g.work[:n], g.scaled[:n]
}
