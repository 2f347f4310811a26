package debug

import (
	"fmt"
	"math"
	"strings"
)

// SignalStats summarises one channel of samples.
type SignalStats struct {
	Min    float32
	Max    float32
	Mean   float32
	RMS    float32
	NaN    int
	Inf    int
	Length int
}

// Analyze computes statistics over samples. NaN and Inf samples are counted
// and excluded from the other figures.
func Analyze(samples []float32) SignalStats {
	s := SignalStats{Length: len(samples)}

	var sum, sumSquares float64
	valid := 0
	for _, v := range samples {
		f := float64(v)
		switch {
		case math.IsNaN(f):
			s.NaN++
			continue
		case math.IsInf(f, 0):
			s.Inf++
			continue
		}
		if valid == 0 || v < s.Min {
			s.Min = v
		}
		if valid == 0 || v > s.Max {
			s.Max = v
		}
		sum += f
		sumSquares += f * f
		valid++
	}

	if valid > 0 {
		s.Mean = float32(sum / float64(valid))
		s.RMS = float32(math.Sqrt(sumSquares / float64(valid)))
	}
	return s
}

// String renders the stats on one line.
func (s SignalStats) String() string {
	str := fmt.Sprintf("n=%d min=%.4f max=%.4f mean=%.4f rms=%.4f", s.Length, s.Min, s.Max, s.Mean, s.RMS)
	if s.NaN > 0 || s.Inf > 0 {
		str += fmt.Sprintf(" nan=%d inf=%d", s.NaN, s.Inf)
	}
	return str
}

// Sparkline draws samples as a row of block characters scaled between lo
// and hi. At most width samples are drawn, evenly picked.
func Sparkline(samples []float32, lo, hi float32, width int) string {
	const blocks = "▁▂▃▄▅▆▇█"
	levels := []rune(blocks)

	if len(samples) == 0 || width <= 0 {
		return ""
	}
	if width > len(samples) {
		width = len(samples)
	}
	if hi <= lo {
		hi = lo + 1
	}

	var sb strings.Builder
	for i := 0; i < width; i++ {
		v := samples[i*len(samples)/width]
		pos := (v - lo) / (hi - lo)
		if pos < 0 || math.IsNaN(float64(pos)) {
			pos = 0
		} else if pos > 1 {
			pos = 1
		}
		sb.WriteRune(levels[int(pos*float32(len(levels)-1)+0.5)])
	}
	return sb.String()
}
