package nn

import (
	"fmt"
	"sync"

	"github.com/pdevine/tensor"
)

// Input marks a graph entry point. It passes its single input through
// unchanged; its only job is the name and a one-time shape log.
type Input struct {
	scope *Scope
	name  string

	logOnce sync.Once
}

func NewInput(s *Scope, name string) *Input {
	in := &Input{
		scope: s,
		name:  s.name("input", name),
	}
	s.log.Info("Input", "name", in.name)
	return in
}

func (in *Input) Name() string { return in.name }

func (in *Input) String() string { return "Input" }

func (in *Input) Build(inputs []tensor.Tensor) error { return nil }

func (in *Input) Forward(inputs []tensor.Tensor) (tensor.Tensor, error) {
	if len(inputs) == 0 {
		return nil, fmt.Errorf("input %s: requires an input tensor", in.name)
	}
	in.logOnce.Do(func() {
		in.scope.log.Info("Input shape", "name", in.name, "shape", inputs[0].Shape())
	})
	return inputs[0], nil
}
