package chop

// GeneralInfo holds the behavior flags the host asks for before each cook.
type GeneralInfo struct {
	// CookEveryFrame forces a cook each frame even when nothing changed.
	CookEveryFrame bool
	// CookEveryFrameIfAsked cooks each frame only while something downstream
	// is requesting the output.
	CookEveryFrameIfAsked bool
	// Timeslice makes NumSamples track the frames elapsed since the last cook.
	Timeslice bool
	// InputMatchIndex selects which input the output length and rate follow.
	InputMatchIndex int32
}

// OutputInfo is the output geometry a plugin may fix. Fields the plugin
// leaves alone keep the host's defaults.
type OutputInfo struct {
	NumChannels int32
	NumSamples  int32
	SampleRate  float64
	StartIndex  uint32
}

// Output is the frame the plugin writes during a cook. Channels is owned by
// the host and sized NumChannels x NumSamples.
type Output struct {
	Channels    [][]float32
	NumChannels int32
	NumSamples  int32
	SampleRate  float64
	StartIndex  uint32
}

// NewOutput allocates a frame. Used by hosts written in Go and by tests.
func NewOutput(numChannels, numSamples int32, sampleRate float64) *Output {
	channels := make([][]float32, numChannels)
	for i := range channels {
		channels[i] = make([]float32, numSamples)
	}
	return &Output{
		Channels:    channels,
		NumChannels: numChannels,
		NumSamples:  numSamples,
		SampleRate:  sampleRate,
	}
}

// Input is one upstream operator as seen during a cook.
type Input struct {
	Channels    [][]float32
	NumChannels int32
	NumSamples  int32
	SampleRate  float64
}

// NewInput wraps channel data. All channels are expected to share one length.
func NewInput(channels [][]float32, sampleRate float64) *Input {
	in := &Input{
		Channels:    channels,
		NumChannels: int32(len(channels)),
		SampleRate:  sampleRate,
	}
	if len(channels) > 0 {
		in.NumSamples = int32(len(channels[0]))
	}
	return in
}

// ChannelData returns the samples of channel index, or nil when out of range.
func (in *Input) ChannelData(index int32) []float32 {
	if index < 0 || index >= int32(len(in.Channels)) {
		return nil
	}
	return in.Channels[index]
}

// InfoChannel is one named value exposed to an Info CHOP.
type InfoChannel struct {
	Name  string
	Value float32
}

// InfoDATSize is the shape of the table exposed to an Info DAT.
type InfoDATSize struct {
	Rows     int32
	Cols     int32
	ByColumn bool
}

// InfoDATEntries receives one row (or column) of the Info DAT table.
type InfoDATEntries struct {
	Values []string
}

// NumericParameter describes a float, int, or pulse parameter.
type NumericParameter struct {
	Name  string
	Label string
	Page  string

	DefaultValues [4]float64
	MinValues     [4]float64
	MaxValues     [4]float64
	ClampMins     [4]bool
	ClampMaxes    [4]bool
	MinSliders    [4]float64
	MaxSliders    [4]float64
}

// StringParameter describes a string or menu parameter.
type StringParameter struct {
	Name         string
	Label        string
	Page         string
	DefaultValue string
}
