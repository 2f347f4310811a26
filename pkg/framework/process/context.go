// Package process provides the per-cook context a processor reads its inputs
// and parameters through.
package process

import (
	"github.com/justyntemme/chopgo/pkg/chop"
	"github.com/justyntemme/chopgo/pkg/framework/param"
)

// Context implements chop.Inputs on top of a parameter registry and the
// upstream operators connected for the current cook.
type Context struct {
	params *param.Registry
	inputs []*chop.Input
}

var _ chop.Inputs = (*Context)(nil)

// NewContext creates a context reading parameters from params
func NewContext(params *param.Registry) *Context {
	return &Context{params: params}
}

// SetInputs replaces the connected upstream operators. Nil entries are dropped.
func (c *Context) SetInputs(inputs ...*chop.Input) {
	c.inputs = c.inputs[:0]
	for _, in := range inputs {
		if in != nil {
			c.inputs = append(c.inputs, in)
		}
	}
}

// Parameters returns the registry backing the context
func (c *Context) Parameters() *param.Registry {
	return c.params
}

// NumInputs returns the number of connected upstream operators
func (c *Context) NumInputs() int {
	return len(c.inputs)
}

// InputCHOP returns the upstream operator at index
func (c *Context) InputCHOP(index int) *chop.Input {
	if index < 0 || index >= len(c.inputs) {
		return nil
	}
	return c.inputs[index]
}

// ParDouble returns the plain value of a parameter, 0 if it does not exist
func (c *Context) ParDouble(name string) float64 {
	if p := c.params.GetByName(name); p != nil {
		return p.GetPlainValue()
	}
	return 0
}

// ParInt returns a parameter rounded to an integer. For menus this is the
// selected index.
func (c *Context) ParInt(name string) int {
	p := c.params.GetByName(name)
	if p == nil {
		return 0
	}
	if p.Kind == param.Menu {
		return p.MenuIndex()
	}
	v := p.GetPlainValue()
	if v < 0 {
		return int(v - 0.5)
	}
	return int(v + 0.5)
}

// EnablePar greys a parameter in or out
func (c *Context) EnablePar(name string, enabled bool) {
	if p := c.params.GetByName(name); p != nil {
		p.SetEnabled(enabled)
	}
}
