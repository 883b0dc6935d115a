package nn

import (
	"fmt"
	"math"

	"github.com/chewxy/math32"
	"github.com/pdevine/tensor"
)

// ActivationFunc is a unary element-wise transform. A nil ActivationFunc on a
// layer means identity.
type ActivationFunc func(t tensor.Tensor) (tensor.Tensor, error)

// ReLU is max(0, x), computed by the engine against a zero tensor.
func ReLU(t tensor.Tensor) (tensor.Tensor, error) {
	zero := tensor.New(tensor.WithShape(t.Shape()...), tensor.Of(t.Dtype()))
	return tensor.MaxBetween(t, zero)
}

// Tanh applies the hyperbolic tangent element-wise.
func Tanh(t tensor.Tensor) (tensor.Tensor, error) {
	return tensor.Tanh(t)
}

// Sigmoid is 1 / (1 + exp(-x)), applied through the engine's Apply.
func Sigmoid(t tensor.Tensor) (tensor.Tensor, error) {
	d, ok := tensor.Materialize(t).(*tensor.Dense)
	if !ok {
		return nil, fmt.Errorf("sigmoid: unsupported tensor type %T", t)
	}
	switch d.Dtype() {
	case tensor.Float32:
		return d.Apply(func(x float32) float32 { return 1 / (1 + math32.Exp(-x)) })
	case tensor.Float64:
		return d.Apply(func(x float64) float64 { return 1 / (1 + math.Exp(-x)) })
	default:
		return nil, fmt.Errorf("sigmoid: unsupported dtype %v", d.Dtype())
	}
}
