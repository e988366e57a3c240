package transform

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leandrodaf/seqtree/internal/testutil"
	"github.com/leandrodaf/seqtree/internal/theory"
	"github.com/leandrodaf/seqtree/sdk/contracts"
)

func TestInvert(t *testing.T) {
	tests := []struct {
		name  string
		notes []contracts.NoteName
		want  []contracts.NoteName
	}{
		{"single note is a fixed point", []contracts.NoteName{"A3"}, []contracts.NoteName{"A3"}},
		{"two notes in one octave", []contracts.NoteName{"C3", "E3"}, []contracts.NoteName{"E3", "C4"}},
		{"two notes in different octaves", []contracts.NoteName{"C3", "E5"}, []contracts.NoteName{"E3", "C5"}},
		{"triad", []contracts.NoteName{"C4", "E4", "G4"}, []contracts.NoteName{"G4", "E4", "C4"}},
		{"four steps", []contracts.NoteName{"C4", "D4", "E4", "F4"}, []contracts.NoteName{"F4", "E4", "D5", "C5"}},
		{"rest kept in place", []contracts.NoteName{"C4", "", "E4"}, []contracts.NoteName{"E4", "", "C5"}},
		{"unsorted input", []contracts.NoteName{"G4", "C4", "E4"}, []contracts.NoteName{"C4", "G4", "E4"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seq := newSeq(testutil.NewScriptedRandom(), forward(len(tt.notes)), tt.notes...)

			got, err := seq.Invert()
			require.NoError(t, err)
			assert.Equal(t, tt.want, notesOf(got.Steps()))
			assert.Equal(t, idsOf(seq.Steps()), idsOf(got.Steps()))
			assert.Equal(t, tt.notes, notesOf(seq.Steps()), "receiver must not change")
		})
	}
}

func TestInvertEmptyPitchedSequence(t *testing.T) {
	seq := newSeq(testutil.NewScriptedRandom(), forward(2), "", "")
	_, err := seq.Invert()
	assert.ErrorIs(t, err, ErrEmptyPitchedSequence)

	_, err = newSeq(testutil.NewScriptedRandom(), forward(1)).Invert()
	assert.ErrorIs(t, err, ErrEmptyPitchedSequence)
}

func TestInvertUnknownNote(t *testing.T) {
	seq := newSeq(testutil.NewScriptedRandom(), forward(2), "C4", "nope")
	_, err := seq.Invert()
	assert.ErrorIs(t, err, theory.ErrUnknownNote)
}

func TestInvertKeepsIDsDenseAndRegisterBounded(t *testing.T) {
	p := theory.New()
	rnd := rand.New(rand.NewPCG(21, 42))

	for range 100 {
		melody, err := p.RandomMelody("major", 8, rnd)
		require.NoError(t, err)
		seq := newSeq(rnd, forward(8), melody...)

		got, err := seq.Invert()
		require.NoError(t, err)

		ids := idsOf(got.Steps())
		slices.Sort(ids)
		assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7}, ids)

		for _, s := range got.Steps() {
			key, err := theory.MIDI(s.Note)
			require.NoError(t, err)
			// each level moves a note by at most an octave
			assert.GreaterOrEqual(t, key, 60-48, "note %s", s.Note)
			assert.LessOrEqual(t, key, 71+48, "note %s", s.Note)
		}
	}
}

func TestSwapOctaves(t *testing.T) {
	p := theory.New()

	a := &contracts.Step{Note: "C3"}
	b := &contracts.Step{Note: "E5"}
	require.NoError(t, swapOctaves(p, a, b))
	assert.Equal(t, contracts.NoteName("C5"), a.Note)
	assert.Equal(t, contracts.NoteName("E3"), b.Note)

	a = &contracts.Step{Note: "C3"}
	b = &contracts.Step{Note: "E3"}
	require.NoError(t, swapOctaves(p, a, b))
	assert.Equal(t, contracts.NoteName("C4"), a.Note)
	assert.Equal(t, contracts.NoteName("E3"), b.Note)
}

func TestSwapIDs(t *testing.T) {
	a := &contracts.Step{ID: 1}
	b := &contracts.Step{ID: 4}
	swapIDs(a, b)
	assert.Equal(t, 4, a.ID)
	assert.Equal(t, 1, b.ID)
	assert.Negative(t, compareByID(b, a))
}
