package nn

import (
	"fmt"
	"testing"

	"github.com/pdevine/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scaleLayer multiplies its input by a constant; deterministic stand-in for
// a real branch layer.
type scaleLayer struct {
	name   string
	factor float32
	builds int
}

func (l *scaleLayer) Name() string { return l.name }

func (l *scaleLayer) Build(inputs []tensor.Tensor) error {
	l.builds++
	return nil
}

func (l *scaleLayer) Forward(inputs []tensor.Tensor) (tensor.Tensor, error) {
	if len(inputs) == 0 {
		return nil, fmt.Errorf("%s: no input", l.name)
	}
	return tensor.Mul(inputs[0], l.factor)
}

// flakyLayer fails its first Forward calls, then behaves like scaleLayer.
type flakyLayer struct {
	scaleLayer
	failures int
}

func (l *flakyLayer) Forward(inputs []tensor.Tensor) (tensor.Tensor, error) {
	if l.failures > 0 {
		l.failures--
		return nil, fmt.Errorf("%s: transient failure", l.name)
	}
	return l.scaleLayer.Forward(inputs)
}

func TestParallelPreservesBranchOrder(t *testing.T) {
	s := testScope()

	// subtraction is order sensitive: x - 2x - 4x = -5x
	p := NewParallel(s, NewElementwise(s, Subtract, nil, ""), "")
	p.Add(&scaleLayer{name: "x1", factor: 1})
	p.Add(&scaleLayer{name: "x2", factor: 2})
	p.Add(&scaleLayer{name: "x4", factor: 4})

	x := fill([]int{2, 2}, 1)
	out, err := p.Forward([]tensor.Tensor{x})
	require.NoError(t, err)
	assert.Equal(t, []float32{-5, -5, -5, -5}, toF32(t, out))
}

func TestParallelConcatBranches(t *testing.T) {
	s := testScope()

	p := NewParallel(s, NewConcat(s, 1, ""), "")
	p.Add(&scaleLayer{name: "a", factor: 1})
	p.Add(&scaleLayer{name: "b", factor: 10})

	x := newTensor(t, []int{2, 2}, []float32{1, 2, 3, 4})
	out, err := p.Forward([]tensor.Tensor{x})
	require.NoError(t, err)
	assert.Equal(t, []int{2, 4}, []int(out.Shape()))
	assert.Equal(t, []float32{1, 2, 10, 20, 3, 4, 30, 40}, toF32(t, out))
}

func TestParallelNamedOutputs(t *testing.T) {
	s := testScope()

	merge := NewElementwise(s, Add, nil, "sum")
	p := NewParallel(s, merge, "")
	p.Add(&scaleLayer{name: "a", factor: 1})
	p.Add(&scaleLayer{name: "b", factor: 2})

	x := fill([]int{1, 3}, 1)
	_, err := p.Forward([]tensor.Tensor{x})
	require.NoError(t, err)

	assert.Equal(t, []float32{1, 1, 1}, toF32(t, p.Output("a")))
	assert.Equal(t, []float32{2, 2, 2}, toF32(t, p.Output("b")))
	assert.Equal(t, []float32{3, 3, 3}, toF32(t, p.Output("sum")))
	assert.Nil(t, p.Output("missing"))
}

func TestParallelBuildsOnce(t *testing.T) {
	s := testScope()

	a := &scaleLayer{name: "a", factor: 1}
	b := &scaleLayer{name: "b", factor: 2}
	p := NewParallel(s, NewElementwise(s, Add, nil, ""), "")
	p.Add(a)
	p.Add(b)

	x := fill([]int{1, 2}, 1)
	for i := 0; i < 3; i++ {
		_, err := p.Forward([]tensor.Tensor{x})
		require.NoError(t, err)
	}
	assert.Equal(t, 1, a.builds)
	assert.Equal(t, 1, b.builds)
}

func TestParallelRetryAfterForwardError(t *testing.T) {
	s := testScope()

	// first forward fails in a branch after the dense branch was built;
	// the retry must not build the dense layer a second time
	flaky := &flakyLayer{scaleLayer: scaleLayer{name: "flaky", factor: 1}, failures: 1}
	p := NewParallel(s, NewElementwise(s, Add, nil, ""), "")
	p.Add(NewDense(s, 4, nil, ""))
	p.Add(flaky)

	x := fill([]int{2, 4}, 1)
	_, err := p.Forward([]tensor.Tensor{x})
	require.Error(t, err)

	out, err := p.Forward([]tensor.Tensor{x})
	require.NoError(t, err)
	assert.Equal(t, []int{2, 4}, []int(out.Shape()))
	assert.Equal(t, 1, flaky.builds)
}

func TestParallelNoBranches(t *testing.T) {
	s := testScope()
	p := NewParallel(s, NewConcat(s, 1, ""), "")

	_, err := p.Forward([]tensor.Tensor{fill([]int{1, 2}, 0)})
	assert.Error(t, err)
}
