package transform

import (
	"slices"

	"github.com/leandrodaf/seqtree/sdk/contracts"
)

// Realize renders the sequence for its state: keep the first Length steps, reorder them
// by Order, stamp Transpose and Slew on each, then repeat the result Repeat times.
func (t SequenceTransformation) Realize() SequenceTransformation {
	n := min(max(t.state.Length, 0), len(t.steps))
	base := cloneSteps(t.steps[:n])

	switch t.state.Order {
	case contracts.OrderBackward:
		slices.Reverse(base)
	case contracts.OrderPendulum:
		if n > 2 {
			back := slices.Clone(base[1 : n-1])
			slices.Reverse(back)
			base = append(base, back...)
		}
	case contracts.OrderRandom:
		t.env.Random.Shuffle(len(base), func(i, j int) { base[i], base[j] = base[j], base[i] })
	}

	for i := range base {
		base[i].Transpose = t.state.Transpose
		base[i].Slew = t.state.Slew
	}

	repeat := max(t.state.Repeat, 1)
	out := make([]contracts.Step, 0, len(base)*repeat)
	for range repeat {
		out = append(out, base...)
	}
	return t.with(out)
}
