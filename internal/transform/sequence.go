// Package transform implements the melodic operators applied at every level of a
// sequence tree, and the state-dependent realization of a sequence into playable steps.
//
// A SequenceTransformation is a value: every operator returns a new one with its own
// steps, and the receiver is never modified. All values derived from the same trunk
// share one SequenceState.
package transform

import (
	"fmt"

	"github.com/leandrodaf/seqtree/sdk/contracts"
)

// Env bundles the collaborators the operators draw on.
type Env struct {
	Notes  contracts.NoteProvider
	Random contracts.Random
}

// SequenceTransformation is an ordered list of steps plus the state it renders with.
type SequenceTransformation struct {
	steps []contracts.Step
	state contracts.SequenceState
	env   *Env
}

// New wraps a copy of steps.
func New(steps []contracts.Step, state contracts.SequenceState, env *Env) SequenceTransformation {
	return SequenceTransformation{steps: cloneSteps(steps), state: state, env: env}
}

func (t SequenceTransformation) with(steps []contracts.Step) SequenceTransformation {
	return SequenceTransformation{steps: steps, state: t.state, env: t.env}
}

// Steps returns a copy of the steps.
func (t SequenceTransformation) Steps() []contracts.Step {
	return cloneSteps(t.steps)
}

// Len returns the number of steps.
func (t SequenceTransformation) Len() int {
	return len(t.steps)
}

// State returns the rendering state.
func (t SequenceTransformation) State() contracts.SequenceState {
	return t.state
}

// Sequence returns the plain data form used in responses.
func (t SequenceTransformation) Sequence() contracts.Sequence {
	return contracts.Sequence{Steps: t.Steps(), State: t.state}
}

// Transform applies the operator named by kind. KindRandom picks one of Kinds uniformly.
func (t SequenceTransformation) Transform(kind Kind) (SequenceTransformation, error) {
	if kind == KindRandom {
		kind = Kinds[t.env.Random.IntN(len(Kinds))]
	}

	switch kind {
	case KindTransposition:
		return t.Transpose(t.randomOctave())
	case KindInversion:
		return t.Invert()
	case KindReversal:
		return t.Reverse(), nil
	case KindMutation:
		return t.Mutate()
	}
	return SequenceTransformation{}, fmt.Errorf("%w: %v", ErrUnknownKind, kind)
}

// Merge appends other's steps after t's. IDs are kept as they are; the state is t's.
func (t SequenceTransformation) Merge(other SequenceTransformation) SequenceTransformation {
	merged := make([]contracts.Step, 0, len(t.steps)+len(other.steps))
	merged = append(merged, t.steps...)
	merged = append(merged, other.steps...)
	return t.with(merged)
}

// Transpose shifts every pitched step by semitones. Rests stay rests.
func (t SequenceTransformation) Transpose(semitones int) (SequenceTransformation, error) {
	out := cloneSteps(t.steps)
	for i := range out {
		note, err := t.env.Notes.Transpose(out[i].Note, semitones)
		if err != nil {
			return SequenceTransformation{}, fmt.Errorf("transpose step %d: %w", out[i].ID, err)
		}
		out[i].Note = note
	}
	return t.with(out), nil
}

// Reverse reverses the step order and renumbers IDs to the new positions.
func (t SequenceTransformation) Reverse() SequenceTransformation {
	n := len(t.steps)
	out := make([]contracts.Step, n)
	for i, s := range t.steps {
		s.ID = n - 1 - i
		out[n-1-i] = s
	}
	return t.with(out)
}

// Mutate picks a uniformly sized random subset of steps and, for each, replaces the note
// at the step's ID with its own note moved an octave up or down.
func (t SequenceTransformation) Mutate() (SequenceTransformation, error) {
	out := cloneSteps(t.steps)
	n := len(out)

	size := t.env.Random.IntN(n + 1)
	picks := make([]int, n)
	for i := range picks {
		picks[i] = i
	}
	t.env.Random.Shuffle(n, func(i, j int) { picks[i], picks[j] = picks[j], picks[i] })

	for _, i := range picks[:size] {
		step := out[i]
		if step.ID < 0 || step.ID >= n {
			return SequenceTransformation{}, fmt.Errorf("%w: %d not in [0, %d)", ErrStepIDOutOfRange, step.ID, n)
		}
		note, err := t.env.Notes.Transpose(step.Note, t.randomOctave())
		if err != nil {
			return SequenceTransformation{}, fmt.Errorf("mutate step %d: %w", step.ID, err)
		}
		out[step.ID].Note = note
	}
	return t.with(out), nil
}

func (t SequenceTransformation) randomOctave() int {
	if t.env.Random.IntN(2) == 0 {
		return -12
	}
	return 12
}
