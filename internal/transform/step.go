package transform

import (
	"github.com/leandrodaf/seqtree/sdk/contracts"
)

// The helpers below work on the inversion's private scratch buffer. They mutate the
// steps they are given and must never see a step that escapes Invert.

func compareByID(a, b *contracts.Step) int {
	return a.ID - b.ID
}

func swapIDs(a, b *contracts.Step) {
	a.ID, b.ID = b.ID, a.ID
}

// swapOctaves exchanges the octaves of two pitched notes. When both already sit in the
// same octave, a moves up one octave instead.
func swapOctaves(notes contracts.NoteProvider, a, b *contracts.Step) error {
	octA, err := notes.Octave(a.Note)
	if err != nil {
		return err
	}
	octB, err := notes.Octave(b.Note)
	if err != nil {
		return err
	}

	if octA == octB {
		a.Note, err = notes.WithOctave(a.Note, octA+1)
		return err
	}

	newA, err := notes.WithOctave(a.Note, octB)
	if err != nil {
		return err
	}
	newB, err := notes.WithOctave(b.Note, octA)
	if err != nil {
		return err
	}
	a.Note, b.Note = newA, newB
	return nil
}

func cloneSteps(steps []contracts.Step) []contracts.Step {
	if steps == nil {
		return []contracts.Step{}
	}
	out := make([]contracts.Step, len(steps))
	copy(out, steps)
	return out
}
