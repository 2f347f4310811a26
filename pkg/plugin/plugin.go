// Package plugin provides the CHOP plugin runtime: the interfaces a plugin
// implements and the instance table the host entry points dispatch through.
package plugin

import (
	"github.com/justyntemme/chopgo/pkg/chop"
	"github.com/justyntemme/chopgo/pkg/framework/param"
	"github.com/justyntemme/chopgo/pkg/framework/plugin"
)

// Plugin is the main interface that users implement
type Plugin interface {
	// GetInfo returns plugin metadata
	GetInfo() plugin.Info

	// CreateProcessor creates the processor backing one operator instance
	CreateProcessor() Processor
}

// Processor is a frame processor: the hooks the host calls around each cook,
// in the order GeneralInfo, OutputInfo, ChannelName, Execute, then the info
// hooks whenever an Info CHOP or Info DAT looks at the operator.
type Processor interface {
	// GeneralInfo sets behavior flags such as cooking every frame
	GeneralInfo(info *chop.GeneralInfo, inputs chop.Inputs)

	// OutputInfo fixes the output geometry and returns true, or returns
	// false to let the host derive it from the inputs
	OutputInfo(info *chop.OutputInfo, inputs chop.Inputs) bool

	// ChannelName names output channel index
	ChannelName(index int32, inputs chop.Inputs) string

	// Execute fills the output frame
	Execute(output *chop.Output, inputs chop.Inputs)

	NumInfoChannels() int32
	InfoChannel(index int32) chop.InfoChannel
	InfoDATSize(size *chop.InfoDATSize) bool
	InfoDATEntries(index, nEntries int32, entries *chop.InfoDATEntries)

	// SetupParameters declares the operator's parameters
	SetupParameters(manager chop.ParameterManager) error

	// PulsePressed is called when a pulse parameter is pressed
	PulsePressed(name string)

	// Parameters returns the registry the instance's parameters live in
	Parameters() *param.Registry
}
