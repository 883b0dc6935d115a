package nn

import (
	"fmt"

	"github.com/pdevine/tensor"
)

// Concat joins the outputs of multiple upstream layers along a configured
// axis. A negative axis indexes from the last dimension, so -1 concatenates
// along the innermost one. The layer carries no parameters; everything is
// delegated to the engine's concat primitive.
type Concat struct {
	scope *Scope
	name  string
	axis  int
}

// NewConcat creates a concat layer. An empty name gets a generated one.
func NewConcat(s *Scope, axis int, name string) *Concat {
	c := &Concat{
		scope: s,
		name:  s.name("concat", name),
		axis:  axis,
	}
	s.log.Info("Concat", "name", c.name, "axis", axis)
	return c
}

func (c *Concat) Name() string { return c.name }

// Axis returns the configured concatenation axis, unresolved (negative
// values are kept as configured).
func (c *Concat) Axis() int { return c.axis }

func (c *Concat) String() string {
	return fmt.Sprintf("Concat(axis=%d)", c.axis)
}

// Build is a no-op: no parameters, no shape-dependent setup.
func (c *Concat) Build(inputs []tensor.Tensor) error { return nil }

// Forward concatenates inputs in order along the configured axis. Shape
// incompatibilities and an out-of-range axis surface as engine errors.
func (c *Concat) Forward(inputs []tensor.Tensor) (tensor.Tensor, error) {
	if len(inputs) == 0 {
		return nil, fmt.Errorf("concat %s: requires at least one input", c.name)
	}
	if len(inputs) == 1 {
		c.scope.log.Debug("forward", "layer", c.name, "shape", inputs[0].Shape())
		return inputs[0], nil
	}

	axis := c.axis
	if axis < 0 {
		axis += inputs[0].Dims()
	}

	out, err := tensor.Concat(axis, inputs[0], inputs[1:]...)
	if err != nil {
		return nil, fmt.Errorf("concat %s: %w", c.name, err)
	}
	c.scope.log.Debug("forward", "layer", c.name, "shape", out.Shape())
	return out, nil
}

// Elementwise combines the outputs of multiple upstream layers with a binary
// element-wise function, folding strictly left to right, then applies an
// optional activation. All inputs must share a shape the combine function
// accepts. Fold order is part of the contract: it decides the result for
// non-commutative combines and the rounding for floating ones.
type Elementwise struct {
	scope   *Scope
	name    string
	combine CombineFunc
	act     ActivationFunc
}

// NewElementwise creates an elementwise merge layer. A nil act means no
// activation; an empty name gets a generated one.
func NewElementwise(s *Scope, combine CombineFunc, act ActivationFunc, name string) *Elementwise {
	e := &Elementwise{
		scope:   s,
		name:    s.name("elementwise", name),
		combine: combine,
		act:     act,
	}
	s.log.Info("Elementwise", "name", e.name, "activation", act != nil)
	return e
}

func (e *Elementwise) Name() string { return e.name }

// Combine returns the configured combining function.
func (e *Elementwise) Combine() CombineFunc { return e.combine }

// Activation returns the configured activation, nil when none.
func (e *Elementwise) Activation() ActivationFunc { return e.act }

func (e *Elementwise) String() string {
	return fmt.Sprintf("Elementwise(activation=%t)", e.act != nil)
}

// Build is a no-op, same as Concat.
func (e *Elementwise) Build(inputs []tensor.Tensor) error { return nil }

func (e *Elementwise) Forward(inputs []tensor.Tensor) (tensor.Tensor, error) {
	if len(inputs) == 0 {
		return nil, fmt.Errorf("elementwise %s: requires at least one input", e.name)
	}

	out := inputs[0]
	var err error
	for _, t := range inputs[1:] {
		out, err = e.combine(out, t)
		if err != nil {
			return nil, fmt.Errorf("elementwise %s: combine: %w", e.name, err)
		}
	}

	if e.act != nil {
		out, err = e.act(out)
		if err != nil {
			return nil, fmt.Errorf("elementwise %s: activation: %w", e.name, err)
		}
	}
	e.scope.log.Debug("forward", "layer", e.name, "shape", out.Shape())
	return out, nil
}
