// Package chop defines the host-facing contract of a channel operator plugin:
// the structures the host fills or reads around each cook and the narrow
// interfaces it exposes to the plugin while cooking.
package chop

import "fmt"

// APIVersion is reported by the version query entry point. The host refuses to
// load a plugin whose version does not match its own.
const APIVersion int32 = 8

// ParAppendResult is the outcome of registering a parameter with the host.
type ParAppendResult int32

const (
	Success ParAppendResult = iota
	InvalidName
	InvalidSize
	InvalidDefault
	DuplicateName
	Unknown
)

// String returns the name of the result code.
func (r ParAppendResult) String() string {
	switch r {
	case Success:
		return "success"
	case InvalidName:
		return "invalid name"
	case InvalidSize:
		return "invalid size"
	case InvalidDefault:
		return "invalid default"
	case DuplicateName:
		return "duplicate name"
	default:
		return "unknown"
	}
}

// Error lets a failed append be returned as an error.
func (r ParAppendResult) Error() string {
	return fmt.Sprintf("parameter append failed: %s", r.String())
}

// Err returns nil for Success and the result itself otherwise.
func (r ParAppendResult) Err() error {
	if r == Success {
		return nil
	}
	return r
}

// Inputs is the read-only view of the operator's inputs and parameters
// offered to the plugin during a cook.
type Inputs interface {
	// NumInputs returns the number of connected upstream operators.
	NumInputs() int
	// InputCHOP returns the upstream operator at index, or nil.
	InputCHOP(index int) *Input

	ParDouble(name string) float64
	ParInt(name string) int

	// EnablePar greys a parameter in or out of the host UI. It does not
	// change the parameter's value.
	EnablePar(name string, enabled bool)
}

// ParameterManager receives the plugin's parameter declarations.
type ParameterManager interface {
	AppendFloat(np NumericParameter) ParAppendResult
	AppendMenu(sp StringParameter, names, labels []string) ParAppendResult
	AppendPulse(np NumericParameter) ParAppendResult
}
