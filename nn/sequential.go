package nn

import (
	"fmt"

	"github.com/pdevine/tensor"
)

// Sequential threads a tensor through an ordered list of layers. On the
// first Forward it also runs each layer's Build with the tensors that layer
// will actually see, satisfying the build-before-forward lifecycle without
// the caller doing it by hand.
//
// Every layer's output is kept under the layer's name until the next
// Forward, so downstream code can pick intermediate results by name.
type Sequential struct {
	scope  *Scope
	name   string
	layers []Layer

	// layers below this index have had Build run successfully; a failed
	// Forward must not re-build them on retry
	builtThrough int
	outputs      map[string]tensor.Tensor
}

func NewSequential(s *Scope, name string) *Sequential {
	return &Sequential{
		scope:   s,
		name:    s.name("sequential", name),
		outputs: make(map[string]tensor.Tensor),
	}
}

// Add appends a layer to the sequence.
func (m *Sequential) Add(layer Layer) {
	m.layers = append(m.layers, layer)
}

func (m *Sequential) Name() string { return m.name }

// Layers returns the layers in execution order.
func (m *Sequential) Layers() []Layer { return m.layers }

// Output returns the named layer's output from the most recent Forward,
// nil if that layer has not produced one.
func (m *Sequential) Output(name string) tensor.Tensor {
	return m.outputs[name]
}

func (m *Sequential) String() string {
	return fmt.Sprintf("Sequential(layers=%d)", len(m.layers))
}

// Build is a no-op; the sequence builds its layers lazily on first Forward,
// when each layer's actual inputs are known.
func (m *Sequential) Build(inputs []tensor.Tensor) error { return nil }

func (m *Sequential) Forward(inputs []tensor.Tensor) (tensor.Tensor, error) {
	if len(m.layers) == 0 {
		return nil, fmt.Errorf("sequential %s: no layers", m.name)
	}

	cur := inputs
	for i, layer := range m.layers {
		if i >= m.builtThrough {
			if err := layer.Build(cur); err != nil {
				return nil, fmt.Errorf("sequential %s: build %s: %w", m.name, layer.Name(), err)
			}
			m.builtThrough = i + 1
		}
		out, err := layer.Forward(cur)
		if err != nil {
			return nil, fmt.Errorf("sequential %s: %w", m.name, err)
		}
		m.outputs[layer.Name()] = out
		cur = []tensor.Tensor{out}
	}
	return cur[0], nil
}
