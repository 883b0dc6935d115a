package nn

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/pdevine/tensor"
)

// Dense is a fully connected layer: output = act(input @ W + b). The weight
// shapes depend on the incoming feature count, so allocation happens in Build
// once the first batch is seen.
type Dense struct {
	scope *Scope
	name  string
	units int
	act   ActivationFunc

	weight tensor.Tensor // [features, units], allocated in Build
	bias   tensor.Tensor // [1, units], repeated across the batch in Forward
}

// NewDense creates a dense layer with the given output width. A nil act
// means no activation; an empty name gets a generated one.
func NewDense(s *Scope, units int, act ActivationFunc, name string) *Dense {
	d := &Dense{
		scope: s,
		name:  s.name("dense", name),
		units: units,
		act:   act,
	}
	s.log.Info("Dense", "name", d.name, "units", units, "activation", act != nil)
	return d
}

func (d *Dense) Name() string { return d.name }

func (d *Dense) Units() int { return d.units }

func (d *Dense) String() string {
	return fmt.Sprintf("Dense(units=%d, activation=%t)", d.units, d.act != nil)
}

// Parameters returns the layer's weight and bias, nil before Build.
func (d *Dense) Parameters() []tensor.Tensor {
	if d.weight == nil {
		return nil
	}
	return []tensor.Tensor{d.weight, d.bias}
}

// Build allocates weights sized to the first input's feature dimension.
// Inputs must be 2D [batch, features].
func (d *Dense) Build(inputs []tensor.Tensor) error {
	if d.weight != nil {
		return fmt.Errorf("dense %s: already built", d.name)
	}
	if len(inputs) == 0 {
		return fmt.Errorf("dense %s: requires an input tensor", d.name)
	}
	shape := inputs[0].Shape()
	if len(shape) != 2 {
		return fmt.Errorf("dense %s: expects 2D [batch, features] input, got shape %v", d.name, shape)
	}
	features := shape[1]

	// simple uniform [-1, 1) init
	random := rand.New(rand.NewSource(time.Now().UnixNano()))
	wData := make([]float32, features*d.units)
	for i := range wData {
		wData[i] = 2*random.Float32() - 1
	}
	bData := make([]float32, d.units)
	for i := range bData {
		bData[i] = 2*random.Float32() - 1
	}

	d.weight = tensor.New(tensor.WithShape(features, d.units), tensor.WithBacking(wData))
	d.bias = tensor.New(tensor.WithShape(1, d.units), tensor.WithBacking(bData))
	return nil
}

func (d *Dense) Forward(inputs []tensor.Tensor) (tensor.Tensor, error) {
	if d.weight == nil {
		return nil, fmt.Errorf("dense %s: forward called before build", d.name)
	}
	if len(inputs) == 0 {
		return nil, fmt.Errorf("dense %s: requires an input tensor", d.name)
	}

	out, err := tensor.Dot(inputs[0], d.weight)
	if err != nil {
		return nil, fmt.Errorf("dense %s: matmul: %w", d.name, err)
	}

	// the engine does not broadcast, repeat the bias row across the batch
	batch := out.Shape()[0]
	bias, err := tensor.Repeat(d.bias, 0, batch)
	if err != nil {
		return nil, fmt.Errorf("dense %s: bias repeat: %w", d.name, err)
	}
	out, err = tensor.Add(out, bias)
	if err != nil {
		return nil, fmt.Errorf("dense %s: bias add: %w", d.name, err)
	}

	if d.act != nil {
		out, err = d.act(out)
		if err != nil {
			return nil, fmt.Errorf("dense %s: activation: %w", d.name, err)
		}
	}
	d.scope.log.Debug("forward", "layer", d.name, "shape", out.Shape())
	return out, nil
}
