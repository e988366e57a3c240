package transform

import (
	"fmt"
	"slices"

	"github.com/leandrodaf/seqtree/sdk/contracts"
)

// Invert mirrors the melody around its pitch center. Rests take no part and are put
// back at their IDs afterwards.
func (t SequenceTransformation) Invert() (SequenceTransformation, error) {
	scratch := cloneSteps(t.steps)

	var rests []contracts.Step
	pitched := make([]*contracts.Step, 0, len(scratch))
	for i := range scratch {
		if scratch[i].IsRest() {
			rests = append(rests, scratch[i])
			continue
		}
		pitched = append(pitched, &scratch[i])
	}
	if len(pitched) == 0 {
		return SequenceTransformation{}, ErrEmptyPitchedSequence
	}

	inv := inverter{notes: t.env.Notes}
	slices.SortStableFunc(pitched, inv.compareByNote)
	if inv.err != nil {
		return SequenceTransformation{}, fmt.Errorf("invert: %w", inv.err)
	}

	inverted, err := inv.invert(pitched)
	if err != nil {
		return SequenceTransformation{}, fmt.Errorf("invert: %w", err)
	}
	slices.SortStableFunc(inverted, compareByID)

	out := make([]contracts.Step, 0, len(t.steps))
	for _, s := range inverted {
		out = append(out, *s)
	}
	for _, r := range rests {
		at := min(max(r.ID, 0), len(out))
		out = slices.Insert(out, at, r)
	}
	return t.with(out), nil
}

type inverter struct {
	notes contracts.NoteProvider
	err   error
}

// compareByNote orders pitched steps by height. The first provider error is kept in
// inv.err since sort comparators cannot fail.
func (inv *inverter) compareByNote(a, b *contracts.Step) int {
	if inv.err != nil {
		return 0
	}
	c, err := inv.notes.Compare(a.Note, b.Note)
	if err != nil {
		inv.err = err
		return 0
	}
	return c
}

func (inv *inverter) higher(a, b contracts.NoteName) (bool, error) {
	c, err := inv.notes.Compare(a, b)
	return c > 0, err
}

// invert works on steps sorted by pitch. It returns the same step objects with notes
// and IDs exchanged, in no particular order.
func (inv *inverter) invert(xs []*contracts.Step) ([]*contracts.Step, error) {
	n := len(xs)
	switch n {
	case 1:
		return xs, nil
	case 2:
		if err := swapOctaves(inv.notes, xs[0], xs[1]); err != nil {
			return nil, err
		}
		swapIDs(xs[0], xs[1])
		return xs, nil
	}

	middle, err := inv.invert(slices.Clone(xs[1 : n-1]))
	if err != nil {
		return nil, err
	}

	first, last := xs[0], xs[n-1]
	if err := swapOctaves(inv.notes, first, last); err != nil {
		return nil, err
	}
	swapIDs(first, last)

	innerFirst := middle[0]
	above, err := inv.higher(first.Note, innerFirst.Note)
	if err != nil {
		return nil, err
	}
	if above {
		if first.Note, err = inv.lowerTo(first.Note, innerFirst.Note); err != nil {
			return nil, err
		}
		middle = append([]*contracts.Step{first}, middle...)
	} else {
		middle[0] = first
		middle = append([]*contracts.Step{innerFirst}, middle...)
	}

	innerLast := middle[len(middle)-1]
	above, err = inv.higher(last.Note, innerLast.Note)
	if err != nil {
		return nil, err
	}
	if !above {
		if last.Note, err = inv.raiseAbove(last.Note, innerLast.Note); err != nil {
			return nil, err
		}
		middle = append(middle, last)
	} else {
		middle[len(middle)-1] = last
		middle = append(middle, innerLast)
	}
	return middle, nil
}

// lowerTo drops note by octaves until it is no higher than ref.
func (inv *inverter) lowerTo(note, ref contracts.NoteName) (contracts.NoteName, error) {
	for {
		above, err := inv.higher(note, ref)
		if err != nil || !above {
			return note, err
		}
		if note, err = inv.notes.Transpose(note, -12); err != nil {
			return "", err
		}
	}
}

// raiseAbove lifts note by octaves until it is strictly higher than ref.
func (inv *inverter) raiseAbove(note, ref contracts.NoteName) (contracts.NoteName, error) {
	for {
		above, err := inv.higher(note, ref)
		if err != nil || above {
			return note, err
		}
		if note, err = inv.notes.Transpose(note, 12); err != nil {
			return "", err
		}
	}
}
