package host

import (
	"errors"
	"math"
	"testing"

	"github.com/justyntemme/chopgo/pkg/chop"
	"github.com/justyntemme/chopgo/pkg/generator"
	"github.com/justyntemme/chopgo/pkg/plugin"
)

func newGeneratorHost(t *testing.T, opts ...Option) (*Host, *generator.Processor) {
	t.Helper()
	p := generator.NewProcessor()
	inst, err := plugin.NewInstance(generator.Info, p)
	if err != nil {
		t.Fatalf("NewInstance: %v", err)
	}
	return New(inst, opts...), p
}

func infoValue(t *testing.T, f Frame, name string) float32 {
	t.Helper()
	for _, ch := range f.InfoChannels {
		if ch.Name == name {
			return ch.Value
		}
	}
	t.Fatalf("frame %d has no info channel %q", f.Index, name)
	return 0
}

func TestTimesliceLength(t *testing.T) {
	tests := []struct {
		name   string
		fps    float64
		frames int
		total  int
	}{
		{"60 fps", 60, 10, 20},
		{"50 fps", 50, 5, 12},
		{"30 fps", 30, 3, 12},
		{"240 fps", 240, 8, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := newGeneratorHost(t, WithFPS(tt.fps))

			total := 0
			err := h.Run(tt.frames, func(f Frame) error {
				total += int(f.Output.NumSamples)
				return nil
			})
			if err != nil {
				t.Fatal(err)
			}
			if total != tt.total {
				t.Errorf("cooked %d samples over %d frames, want %d", total, tt.frames, tt.total)
			}
		})
	}
}

func TestGeneratorGeometry(t *testing.T) {
	h, _ := newGeneratorHost(t)

	f, err := h.Cook()
	if err != nil {
		t.Fatal(err)
	}
	if f.Output.NumChannels != 1 || f.Output.SampleRate != generator.SampleRate {
		t.Errorf("geometry = %d ch @ %g", f.Output.NumChannels, f.Output.SampleRate)
	}
	if len(f.ChannelNames) != 1 || f.ChannelNames[0] != "chan1" {
		t.Errorf("channel names = %v", f.ChannelNames)
	}
	if f.Output.NumSamples != 2 {
		t.Errorf("samples = %d, want 2 at 60 fps", f.Output.NumSamples)
	}
}

func TestStartIndexAdvances(t *testing.T) {
	h, _ := newGeneratorHost(t, WithSamples(7))

	var starts []uint32
	if err := h.Run(3, func(f Frame) error {
		starts = append(starts, f.Output.StartIndex)
		return nil
	}); err != nil {
		t.Fatal(err)
	}

	want := []uint32{0, 7, 14}
	for i := range want {
		if starts[i] != want[i] {
			t.Errorf("frame %d start = %d, want %d", i, starts[i], want[i])
		}
	}
}

func TestExecuteCountPerFrame(t *testing.T) {
	h, _ := newGeneratorHost(t)

	err := h.Run(12, func(f Frame) error {
		if got := infoValue(t, f, "executeCount"); got != float32(f.Index+1) {
			t.Errorf("frame %d executeCount = %f", f.Index, got)
		}
		if f.InfoTable[0][1] == "" {
			t.Errorf("frame %d info table is empty", f.Index)
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if h.Frame() != 12 {
		t.Errorf("Frame = %d, want 12", h.Frame())
	}
}

func TestScheduledReset(t *testing.T) {
	h, _ := newGeneratorHost(t, WithSamples(10))
	h.SchedulePulse(3, generator.ParReset)

	if got := h.ScheduledPulses(); len(got) != 1 || got[0] != 3 {
		t.Fatalf("scheduled = %v", got)
	}

	// Default speed is 1, so each 10 sample frame moves the offset by 0.1
	var offsets []float64
	if err := h.Run(5, func(f Frame) error {
		offsets = append(offsets, float64(infoValue(t, f, "offset")))
		return nil
	}); err != nil {
		t.Fatal(err)
	}

	want := []float64{0.1, 0.2, 0.3, 0.1, 0.2}
	for i := range want {
		if math.Abs(offsets[i]-want[i]) > 1e-5 {
			t.Errorf("frame %d offset = %f, want %f", i, offsets[i], want[i])
		}
	}
	if len(h.ScheduledPulses()) != 0 {
		t.Error("pulse was not consumed")
	}
}

func TestResetOnDisconnectFrame(t *testing.T) {
	h, p := newGeneratorHost(t, WithSamples(10))
	if err := h.Run(3, nil); err != nil {
		t.Fatal(err)
	}

	h.Connect(chop.NewInput([][]float32{{1, 2, 3}}, generator.SampleRate))
	if _, err := h.Cook(); err != nil {
		t.Fatal(err)
	}

	h.Connect()
	h.SchedulePulse(4, generator.ParReset)
	f, err := h.Cook()
	if err != nil {
		t.Fatal(err)
	}
	// rewound, then one 10 sample frame
	if got := infoValue(t, f, "offset"); math.Abs(float64(got)-0.1) > 1e-5 {
		t.Errorf("offset = %f, want 0.1", got)
	}
	if math.Abs(p.Generator().PhaseOffset()-0.1) > 1e-9 {
		t.Errorf("phase offset = %f, want 0.1", p.Generator().PhaseOffset())
	}
}

func TestResetOnConnectFrameIgnored(t *testing.T) {
	h, p := newGeneratorHost(t, WithSamples(10))
	if err := h.Run(3, nil); err != nil {
		t.Fatal(err)
	}
	before := p.Generator().PhaseOffset()

	h.Connect(chop.NewInput([][]float32{{1, 2, 3}}, generator.SampleRate))
	h.SchedulePulse(3, generator.ParReset)
	f, err := h.Cook()
	if err != nil {
		t.Fatal(err)
	}
	if got := infoValue(t, f, "offset"); math.Abs(float64(got)-0.3) > 1e-5 {
		t.Errorf("offset = %f, want 0.3", got)
	}
	if p.Generator().PhaseOffset() != before {
		t.Errorf("phase offset %f -> %f on a connected frame", before, p.Generator().PhaseOffset())
	}

	// the press does not carry over to the next unconnected frame
	h.Connect()
	f, err = h.Cook()
	if err != nil {
		t.Fatal(err)
	}
	if got := infoValue(t, f, "offset"); math.Abs(float64(got)-0.4) > 1e-5 {
		t.Errorf("offset after disconnect = %f, want 0.4", got)
	}
}

func TestUnknownPulseFails(t *testing.T) {
	h, _ := newGeneratorHost(t)
	h.SchedulePulse(0, "Nope")

	if _, err := h.Cook(); err == nil {
		t.Error("pressing an unknown pulse should fail the frame")
	}
}

func TestConnectedInputDefinesGeometry(t *testing.T) {
	h, p := newGeneratorHost(t)
	if err := h.Instance().SetParameterValue(generator.ParScale, 2); err != nil {
		t.Fatal(err)
	}

	h.Connect(chop.NewInput([][]float32{
		{1, 2, 3, 4, 5},
		{-1, -2, -3, -4, -5},
	}, 30))

	f, err := h.Cook()
	if err != nil {
		t.Fatal(err)
	}
	if f.Output.NumChannels != 2 || f.Output.NumSamples != 5 || f.Output.SampleRate != 30 {
		t.Fatalf("geometry = %d ch x %d @ %g", f.Output.NumChannels, f.Output.NumSamples, f.Output.SampleRate)
	}

	// one cursor runs across both channels and wraps at 5
	want := [][]float32{
		{2, 4, 6, 8, 10},
		{-2, -4, -6, -8, -10},
	}
	for c := range want {
		for i := range want[c] {
			if math.Abs(float64(f.Output.Channels[c][i]-want[c][i])) > 1e-5 {
				t.Errorf("ch%d[%d] = %f, want %f", c, i, f.Output.Channels[c][i], want[c][i])
			}
		}
	}
	if p.Generator().PhaseOffset() != 0 {
		t.Error("remap moved the phase offset")
	}

	h.Connect()
	f, err = h.Cook()
	if err != nil {
		t.Fatal(err)
	}
	if f.Output.NumChannels != 1 || f.Output.SampleRate != generator.SampleRate {
		t.Errorf("after disconnect geometry = %d ch @ %g", f.Output.NumChannels, f.Output.SampleRate)
	}
}

func TestRunStopsOnCallbackError(t *testing.T) {
	h, _ := newGeneratorHost(t)
	stop := errors.New("stop")

	calls := 0
	err := h.Run(10, func(f Frame) error {
		calls++
		if f.Index == 2 {
			return stop
		}
		return nil
	})
	if !errors.Is(err, stop) {
		t.Errorf("err = %v, want stop", err)
	}
	if calls != 3 {
		t.Errorf("callback ran %d times, want 3", calls)
	}
}

func TestOptionsIgnoreInvalid(t *testing.T) {
	h, _ := newGeneratorHost(t, WithFPS(0), WithSamples(-1), WithDefaultRate(-5), WithLogger(nil))

	if h.fps != DefaultFPS || h.samples != 0 || h.rate != DefaultRate || h.log == nil {
		t.Errorf("invalid options changed the host: fps=%g samples=%d rate=%g", h.fps, h.samples, h.rate)
	}
}
