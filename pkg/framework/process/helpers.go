package process

import "github.com/justyntemme/chopgo/pkg/chop"

// ProcessChannels calls fn for every output channel of the frame
func ProcessChannels(out *chop.Output, fn func(ch int, output []float32)) {
	for ch := 0; ch < int(out.NumChannels) && ch < len(out.Channels); ch++ {
		fn(ch, out.Channels[ch][:out.NumSamples])
	}
}

// Clear zeros the output frame
func Clear(out *chop.Output) {
	ProcessChannels(out, func(_ int, output []float32) {
		for i := range output {
			output[i] = 0
		}
	})
}
