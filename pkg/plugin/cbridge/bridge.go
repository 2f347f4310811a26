// Package cbridge exports the C entry points a CHOP host loads from a shared
// library. A thin C++ shim forwards the host's virtual calls to these flat
// functions; all state stays on the Go side behind a handle.
//
// Usage:
//
//	import _ "github.com/justyntemme/chopgo/pkg/plugin/cbridge"
//
//	func init() { plugin.Register(myPlugin{}) }
//
// and build with -buildmode=c-shared.
package cbridge

// #include <stdint.h>
//
// typedef struct {
//     int32_t cookEveryFrame;
//     int32_t cookEveryFrameIfAsked;
//     int32_t timeslice;
//     int32_t inputMatchIndex;
// } ChopGeneralInfo;
//
// typedef struct {
//     int32_t numChannels;
//     int32_t numSamples;
//     double sampleRate;
//     uint32_t startIndex;
// } ChopOutputInfo;
//
// typedef struct {
//     const float* const* channels;
//     int32_t numChannels;
//     int32_t numSamples;
//     double sampleRate;
// } ChopInput;
import "C"
import (
	"sync"
	"unsafe"

	"github.com/justyntemme/chopgo/pkg/chop"
	"github.com/justyntemme/chopgo/pkg/framework/debug"
	"github.com/justyntemme/chopgo/pkg/plugin"
)

// Return codes shared by the status-returning exports
const (
	resultOK    = 0
	resultError = -1
	// resultNoInstance is returned for handles that are not live
	resultNoInstance = -2
)

var configOnce sync.Once

func configure() {
	cfg, err := plugin.ConfigFromEnv()
	if err != nil {
		debug.Warn("ignoring environment config: %v", err)
	}
	if err := plugin.SetConfig(cfg); err != nil {
		debug.Error("apply config: %v", err)
	}
}

func lookup(h C.uintptr_t) *plugin.Instance {
	return plugin.Lookup(plugin.Handle(h))
}

func status(err error) C.int32_t {
	if err != nil {
		return resultError
	}
	return resultOK
}

//export GetCHOPAPIVersion
func GetCHOPAPIVersion() C.int32_t {
	return C.int32_t(plugin.APIVersion())
}

//export CreateCHOPInstance
func CreateCHOPInstance() C.uintptr_t {
	configOnce.Do(configure)

	h, err := plugin.CreateInstance()
	if err != nil {
		debug.Error("create instance: %v", err)
		return 0
	}
	return C.uintptr_t(h)
}

//export DestroyCHOPInstance
func DestroyCHOPInstance(h C.uintptr_t) {
	plugin.DestroyInstance(plugin.Handle(h))
}

//export ChopGetGeneralInfo
func ChopGetGeneralInfo(h C.uintptr_t, out *C.ChopGeneralInfo) C.int32_t {
	inst := lookup(h)
	if inst == nil || out == nil {
		return resultNoInstance
	}

	info, err := inst.GeneralInfo()
	if err != nil {
		return resultError
	}
	out.cookEveryFrame = C.int32_t(boolInt(info.CookEveryFrame))
	out.cookEveryFrameIfAsked = C.int32_t(boolInt(info.CookEveryFrameIfAsked))
	out.timeslice = C.int32_t(boolInt(info.Timeslice))
	out.inputMatchIndex = C.int32_t(info.InputMatchIndex)
	return resultOK
}

// ChopGetOutputInfo returns 1 when the plugin fixed the geometry in info, 0
// when the host should derive it from the inputs. The host passes its
// defaults in info.
//
//export ChopGetOutputInfo
func ChopGetOutputInfo(h C.uintptr_t, info *C.ChopOutputInfo) C.int32_t {
	inst := lookup(h)
	if inst == nil || info == nil {
		return resultNoInstance
	}

	defaults := chop.OutputInfo{
		NumChannels: int32(info.numChannels),
		NumSamples:  int32(info.numSamples),
		SampleRate:  float64(info.sampleRate),
		StartIndex:  uint32(info.startIndex),
	}
	got, fixed, err := inst.OutputInfo(defaults)
	if err != nil {
		return resultError
	}
	if !fixed {
		return 0
	}
	info.numChannels = C.int32_t(got.NumChannels)
	info.numSamples = C.int32_t(got.NumSamples)
	info.sampleRate = C.double(got.SampleRate)
	info.startIndex = C.uint32_t(got.StartIndex)
	return 1
}

// ChopGetChannelName writes a NUL terminated name into buf and returns the
// full name length.
//
//export ChopGetChannelName
func ChopGetChannelName(h C.uintptr_t, index C.int32_t, buf *C.char, size C.int32_t) C.int32_t {
	inst := lookup(h)
	if inst == nil {
		return resultNoInstance
	}
	name, err := inst.ChannelName(int32(index))
	if err != nil {
		return resultError
	}
	return C.int32_t(copyString(cBuffer(buf, size), name))
}

// ChopSetInputs connects the upstream operators for the next cook. Channel
// data is copied, so the host may release it once the call returns.
//
//export ChopSetInputs
func ChopSetInputs(h C.uintptr_t, inputs *C.ChopInput, numInputs C.int32_t) C.int32_t {
	inst := lookup(h)
	if inst == nil {
		return resultNoInstance
	}

	var goInputs []*chop.Input
	if inputs != nil && numInputs > 0 {
		for _, in := range unsafe.Slice(inputs, int(numInputs)) {
			goInputs = append(goInputs, copyInput(in))
		}
	}
	inst.SetInputs(goInputs...)
	return resultOK
}

func copyInput(in C.ChopInput) *chop.Input {
	numChannels, numSamples := nonNegative(int32(in.numChannels)), nonNegative(int32(in.numSamples))
	channels := make([][]float32, numChannels)
	if in.channels != nil && numChannels > 0 {
		ptrs := unsafe.Slice(in.channels, numChannels)
		for i, p := range ptrs {
			channels[i] = make([]float32, numSamples)
			if p != nil && numSamples > 0 {
				copy(channels[i], unsafe.Slice((*float32)(unsafe.Pointer(p)), numSamples))
			}
		}
	}
	return &chop.Input{
		Channels:    channels,
		NumChannels: int32(numChannels),
		NumSamples:  int32(numSamples),
		SampleRate:  float64(in.sampleRate),
	}
}

// ChopExecute cooks one frame directly into the host's channel arrays.
//
//export ChopExecute
func ChopExecute(h C.uintptr_t, channels **C.float, numChannels, numSamples C.int32_t, sampleRate C.double, startIndex C.uint32_t) C.int32_t {
	inst := lookup(h)
	if inst == nil {
		return resultNoInstance
	}
	if numChannels < 0 || numSamples < 0 {
		return resultError
	}
	nc, ns := nonNegative(int32(numChannels)), nonNegative(int32(numSamples))

	out := &chop.Output{
		Channels:    make([][]float32, nc),
		NumChannels: int32(nc),
		NumSamples:  int32(ns),
		SampleRate:  float64(sampleRate),
		StartIndex:  uint32(startIndex),
	}
	if channels != nil && nc > 0 {
		for i, p := range unsafe.Slice(channels, nc) {
			if p != nil && ns > 0 {
				out.Channels[i] = unsafe.Slice((*float32)(unsafe.Pointer(p)), ns)
			} else {
				out.Channels[i] = make([]float32, ns)
			}
		}
	}
	return status(inst.Execute(out))
}

//export ChopGetNumInfoChannels
func ChopGetNumInfoChannels(h C.uintptr_t) C.int32_t {
	inst := lookup(h)
	if inst == nil {
		return 0
	}
	chans, err := inst.InfoChannels()
	if err != nil {
		return 0
	}
	return C.int32_t(len(chans))
}

// ChopGetInfoChannel writes the name of info channel index into buf and its
// value into value.
//
//export ChopGetInfoChannel
func ChopGetInfoChannel(h C.uintptr_t, index C.int32_t, buf *C.char, size C.int32_t, value *C.float) C.int32_t {
	inst := lookup(h)
	if inst == nil {
		return resultNoInstance
	}
	chans, err := inst.InfoChannels()
	if err != nil || index < 0 || int(index) >= len(chans) {
		return resultError
	}

	ch := chans[index]
	if value != nil {
		*value = C.float(ch.Value)
	}
	copyString(cBuffer(buf, size), ch.Name)
	return resultOK
}

// ChopGetInfoTableSize returns 1 and the table size when the plugin has an
// info table, 0 otherwise.
//
//export ChopGetInfoTableSize
func ChopGetInfoTableSize(h C.uintptr_t, rows, cols *C.int32_t) C.int32_t {
	inst := lookup(h)
	if inst == nil {
		return resultNoInstance
	}
	table, err := inst.InfoTable()
	if err != nil {
		return resultError
	}
	if len(table) == 0 {
		return 0
	}
	if rows != nil {
		*rows = C.int32_t(len(table))
	}
	if cols != nil {
		*cols = C.int32_t(len(table[0]))
	}
	return 1
}

//export ChopGetInfoTableEntry
func ChopGetInfoTableEntry(h C.uintptr_t, row, col C.int32_t, buf *C.char, size C.int32_t) C.int32_t {
	inst := lookup(h)
	if inst == nil {
		return resultNoInstance
	}
	table, err := inst.InfoTable()
	if err != nil {
		return resultError
	}
	cell, ok := tableCell(table, int(row), int(col))
	if !ok {
		return resultError
	}
	return C.int32_t(copyString(cBuffer(buf, size), cell))
}

//export ChopGetNumParameters
func ChopGetNumParameters(h C.uintptr_t) C.int32_t {
	inst := lookup(h)
	if inst == nil {
		return 0
	}
	return C.int32_t(inst.Parameters().Count())
}

// ChopGetParameterName writes the name of parameter index into buf.
//
//export ChopGetParameterName
func ChopGetParameterName(h C.uintptr_t, index C.int32_t, buf *C.char, size C.int32_t) C.int32_t {
	inst := lookup(h)
	if inst == nil {
		return resultNoInstance
	}
	p := inst.Parameters().GetByIndex(int32(index))
	if p == nil {
		return resultError
	}
	return C.int32_t(copyString(cBuffer(buf, size), p.Name))
}

// ChopIsParameterEnabled returns 1 when the parameter is active, 0 when the
// plugin greyed it out.
//
//export ChopIsParameterEnabled
func ChopIsParameterEnabled(h C.uintptr_t, name *C.char) C.int32_t {
	inst := lookup(h)
	if inst == nil || name == nil {
		return resultNoInstance
	}
	p := inst.Parameters().GetByName(C.GoString(name))
	if p == nil {
		return resultError
	}
	return C.int32_t(boolInt(p.IsEnabled()))
}

//export ChopSetParameter
func ChopSetParameter(h C.uintptr_t, name, value *C.char) C.int32_t {
	inst := lookup(h)
	if inst == nil || name == nil || value == nil {
		return resultNoInstance
	}
	if err := inst.SetParameter(C.GoString(name), C.GoString(value)); err != nil {
		debug.Warn("set parameter: %v", err)
		return resultError
	}
	return resultOK
}

//export ChopSetParameterValue
func ChopSetParameterValue(h C.uintptr_t, name *C.char, value C.double) C.int32_t {
	inst := lookup(h)
	if inst == nil || name == nil {
		return resultNoInstance
	}
	if err := inst.SetParameterValue(C.GoString(name), float64(value)); err != nil {
		debug.Warn("set parameter: %v", err)
		return resultError
	}
	return resultOK
}

//export ChopPulsePressed
func ChopPulsePressed(h C.uintptr_t, name *C.char) C.int32_t {
	inst := lookup(h)
	if inst == nil || name == nil {
		return resultNoInstance
	}
	if err := inst.PulsePressed(C.GoString(name)); err != nil {
		debug.Warn("pulse: %v", err)
		return resultError
	}
	return resultOK
}

func cBuffer(buf *C.char, size C.int32_t) []byte {
	if buf == nil || size <= 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(buf)), int(size))
}
