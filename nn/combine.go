package nn

import "github.com/pdevine/tensor"

// CombineFunc is a binary element-wise operation over two shape-compatible
// tensors. The stock values below delegate straight to the tensor engine;
// anything with the same signature works.
type CombineFunc func(a, b tensor.Tensor) (tensor.Tensor, error)

func Add(a, b tensor.Tensor) (tensor.Tensor, error) {
	return tensor.Add(a, b)
}

func Subtract(a, b tensor.Tensor) (tensor.Tensor, error) {
	return tensor.Sub(a, b)
}

func Multiply(a, b tensor.Tensor) (tensor.Tensor, error) {
	return tensor.Mul(a, b)
}

// Minimum keeps the smaller of each element pair. The logical AND of the
// original merge-layer vocabulary.
func Minimum(a, b tensor.Tensor) (tensor.Tensor, error) {
	return tensor.MinBetween(a, b)
}

// Maximum keeps the larger of each element pair.
func Maximum(a, b tensor.Tensor) (tensor.Tensor, error) {
	return tensor.MaxBetween(a, b)
}
