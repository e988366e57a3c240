// Package tree grows a binary tree of melodic variants from a trunk sequence and collects
// the realized root-to-leaf paths.
package tree

import (
	"errors"
	"fmt"

	"github.com/leandrodaf/seqtree/internal/transform"
	"github.com/leandrodaf/seqtree/sdk/contracts"
)

// Error definitions for invalid generator input.
var (
	ErrNegativeHeight = errors.New("negative tree height")
	ErrEmptyTrunk     = errors.New("empty trunk sequence")
)

// Generator holds one fully built tree. It is built once by New and never reused.
type Generator struct {
	height int
	env    *transform.Env
	root   *contracts.TreeNode
	paths  [][]contracts.Step
}

// New builds a tree of the given height from the trunk. Trunk IDs are renumbered to their
// positions. Any operator failure aborts the build; no partial tree is returned.
//
// A leaf contributes its accumulated path only when it was reached through a left call,
// so a tree of height h yields exactly 2^h paths.
func New(height int, trunk []contracts.Step, state contracts.SequenceState, env *transform.Env) (*Generator, error) {
	if height < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeHeight, height)
	}
	if len(trunk) == 0 {
		return nil, ErrEmptyTrunk
	}
	if err := state.Validate(); err != nil {
		return nil, err
	}

	steps := make([]contracts.Step, len(trunk))
	for i, s := range trunk {
		s.ID = i
		steps[i] = s
	}

	g := &Generator{
		height: height,
		env:    env,
		paths:  make([][]contracts.Step, 0, 1<<min(height, 16)),
	}
	if err := g.build(transform.New(steps, state, env)); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Generator) build(trunk transform.SequenceTransformation) error {
	root := &contracts.TreeNode{Value: trunk.Sequence()}

	left, err := g.generateLevels(g.height, trunk, trunk.Realize(), true)
	if err != nil {
		return err
	}
	right, err := g.generateLevels(g.height, trunk, trunk.Realize(), false)
	if err != nil {
		return err
	}

	root.Left, root.Right = left, right
	g.root = root
	return nil
}

func (g *Generator) generateLevels(remaining int, parent, path transform.SequenceTransformation, isLeft bool) (*contracts.TreeNode, error) {
	if remaining <= 0 {
		if isLeft {
			g.paths = append(g.paths, path.Steps())
		}
		return nil, nil
	}

	child, err := parent.Transform(transform.KindRandom)
	if err != nil {
		return nil, fmt.Errorf("level %d: %w", g.height-remaining+1, err)
	}
	node := &contracts.TreeNode{Value: child.Sequence()}
	merged := path.Merge(child.Realize())

	if node.Left, err = g.generateLevels(remaining-1, child, merged, true); err != nil {
		return nil, err
	}
	if node.Right, err = g.generateLevels(remaining-1, child, merged, false); err != nil {
		return nil, err
	}
	return node, nil
}

// Height returns the requested height.
func (g *Generator) Height() int {
	return g.height
}

// Root returns the root node; its value is the trunk.
func (g *Generator) Root() *contracts.TreeNode {
	return g.root
}

// Paths returns the collected paths in collection order.
func (g *Generator) Paths() [][]contracts.Step {
	return g.paths
}
