package nn

import "github.com/pdevine/tensor"

// Layer is the contract every layer in a graph must satisfy.
//
// Build runs exactly once, before the first Forward, with a representative
// batch of inputs; layers that need shape-dependent setup (e.g. Dense weight
// allocation) do it there, everything else leaves it a no-op. Forward takes
// the ordered outputs of the upstream layers and produces one tensor. Layers
// hold no state across Forward calls beyond their construction-time config.
type Layer interface {
	Build(inputs []tensor.Tensor) error
	Forward(inputs []tensor.Tensor) (tensor.Tensor, error)
	Name() string
}
