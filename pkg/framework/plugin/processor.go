// Package plugin provides base processor functionality to reduce boilerplate in CHOP plugins.
package plugin

import (
	"fmt"

	"github.com/justyntemme/chopgo/pkg/chop"
	"github.com/justyntemme/chopgo/pkg/framework/param"
)

// BaseProcessor provides defaults for the optional processor hooks. Embed it
// and override what the operator needs.
type BaseProcessor struct {
	Info   Info
	params *param.Registry
}

// NewBaseProcessor creates a base processor for info with an empty registry
func NewBaseProcessor(info Info) *BaseProcessor {
	return &BaseProcessor{
		Info:   info,
		params: param.NewRegistry(),
	}
}

// Parameters returns the registry SetupParameters fills
func (b *BaseProcessor) Parameters() *param.Registry {
	return b.params
}

// GeneralInfo leaves the host defaults: cook on demand, not timesliced
func (b *BaseProcessor) GeneralInfo(info *chop.GeneralInfo, inputs chop.Inputs) {}

// OutputInfo defers geometry to the inputs
func (b *BaseProcessor) OutputInfo(info *chop.OutputInfo, inputs chop.Inputs) bool {
	return false
}

// ChannelName returns chan1, chan2, ...
func (b *BaseProcessor) ChannelName(index int32, inputs chop.Inputs) string {
	return fmt.Sprintf("chan%d", index+1)
}

// NumInfoChannels returns 0: no Info CHOP channels
func (b *BaseProcessor) NumInfoChannels() int32 {
	return 0
}

// InfoChannel is never called when NumInfoChannels is 0
func (b *BaseProcessor) InfoChannel(index int32) chop.InfoChannel {
	return chop.InfoChannel{}
}

// InfoDATSize returns false: no Info DAT table
func (b *BaseProcessor) InfoDATSize(size *chop.InfoDATSize) bool {
	return false
}

// InfoDATEntries is never called when InfoDATSize returns false
func (b *BaseProcessor) InfoDATEntries(index, nEntries int32, entries *chop.InfoDATEntries) {}

// SetupParameters declares nothing
func (b *BaseProcessor) SetupParameters(manager chop.ParameterManager) error {
	return nil
}

// PulsePressed ignores pulses
func (b *BaseProcessor) PulsePressed(name string) {}
