package nn

import (
	"fmt"

	"github.com/pdevine/tensor"
	"golang.org/x/sync/errgroup"
)

// Parallel fans the same inputs out to N branch layers and feeds their
// outputs, in branch order, into a merge layer. Branches run concurrently;
// results are collected by branch index, never by completion order, so the
// merge sees the branches exactly as they were added. That ordering is load
// bearing for non-commutative merges.
type Parallel struct {
	scope    *Scope
	name     string
	branches []Layer
	merge    Layer

	// builds already run stay run: a failed Forward must not re-build
	// on retry
	builtBranches int
	mergeBuilt    bool
	outputs       map[string]tensor.Tensor
}

// NewParallel creates a fan-out/merge container around the given merge layer.
func NewParallel(s *Scope, merge Layer, name string) *Parallel {
	return &Parallel{
		scope:   s,
		name:    s.name("parallel", name),
		merge:   merge,
		outputs: make(map[string]tensor.Tensor),
	}
}

// Add appends a branch. Branch order is merge input order.
func (p *Parallel) Add(branch Layer) {
	p.branches = append(p.branches, branch)
}

func (p *Parallel) Name() string { return p.name }

// Branches returns the branch layers in merge input order.
func (p *Parallel) Branches() []Layer { return p.branches }

// Merge returns the configured merge layer.
func (p *Parallel) Merge() Layer { return p.merge }

// Output returns the named branch or merge output from the most recent
// Forward, nil if absent.
func (p *Parallel) Output(name string) tensor.Tensor {
	return p.outputs[name]
}

func (p *Parallel) String() string {
	return fmt.Sprintf("Parallel(branches=%d, merge=%s)", len(p.branches), p.merge.Name())
}

// Build is a no-op; branches and the merge layer build lazily on first
// Forward, when their actual inputs exist.
func (p *Parallel) Build(inputs []tensor.Tensor) error { return nil }

func (p *Parallel) Forward(inputs []tensor.Tensor) (tensor.Tensor, error) {
	if len(p.branches) == 0 {
		return nil, fmt.Errorf("parallel %s: no branches", p.name)
	}

	for i := p.builtBranches; i < len(p.branches); i++ {
		b := p.branches[i]
		if err := b.Build(inputs); err != nil {
			return nil, fmt.Errorf("parallel %s: build %s: %w", p.name, b.Name(), err)
		}
		p.builtBranches = i + 1
	}

	outs := make([]tensor.Tensor, len(p.branches))
	var g errgroup.Group
	for i, b := range p.branches {
		i, b := i, b
		g.Go(func() error {
			out, err := b.Forward(inputs)
			if err != nil {
				return fmt.Errorf("parallel %s: %w", p.name, err)
			}
			outs[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	for i, b := range p.branches {
		p.outputs[b.Name()] = outs[i]
	}

	if !p.mergeBuilt {
		if err := p.merge.Build(outs); err != nil {
			return nil, fmt.Errorf("parallel %s: build %s: %w", p.name, p.merge.Name(), err)
		}
		p.mergeBuilt = true
	}

	merged, err := p.merge.Forward(outs)
	if err != nil {
		return nil, fmt.Errorf("parallel %s: %w", p.name, err)
	}
	p.outputs[p.merge.Name()] = merged
	return merged, nil
}
