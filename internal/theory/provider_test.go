package theory

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leandrodaf/seqtree/sdk/contracts"
)

func TestTranspose(t *testing.T) {
	p := New()

	tests := []struct {
		note      contracts.NoteName
		semitones int
		want      contracts.NoteName
	}{
		{"C4", 12, "C5"},
		{"Eb3", -12, "Eb2"},
		{"F#5", 24, "F#7"},
		{"C4", 1, "C#4"},
		{"Eb4", 2, "F4"},
		{"Bb3", 1, "B3"},
		{"B3", 1, "C4"},
		{"C0", -1, "B-1"},
		{"", 12, ""},
	}
	for _, tt := range tests {
		got, err := p.Transpose(tt.note, tt.semitones)
		require.NoError(t, err, "%s%+d", tt.note, tt.semitones)
		assert.Equal(t, tt.want, got, "%s%+d", tt.note, tt.semitones)
	}
}

func TestTransposeUnknownNote(t *testing.T) {
	_, err := New().Transpose("H2", 12)
	assert.ErrorIs(t, err, ErrUnknownNote)

	_, err = New().Transpose("C", 12)
	assert.ErrorIs(t, err, ErrUnknownNote)
}

func TestCompare(t *testing.T) {
	p := New()

	tests := []struct {
		a, b contracts.NoteName
		want int
	}{
		{"C3", "E3", -1},
		{"E3", "C3", 1},
		{"C#4", "Db4", 0},
		{"B#3", "C4", 0},
		{"C5", "B4", 1},
	}
	for _, tt := range tests {
		got, err := p.Compare(tt.a, tt.b)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "%s vs %s", tt.a, tt.b)
	}

	_, err := p.Compare("C4", "")
	assert.ErrorIs(t, err, ErrUnknownNote)
}

func TestOctaveAndWithOctave(t *testing.T) {
	p := New()

	oct, err := p.Octave("Ab-1")
	require.NoError(t, err)
	assert.Equal(t, -1, oct)

	moved, err := p.WithOctave("Ab-1", 5)
	require.NoError(t, err)
	assert.Equal(t, contracts.NoteName("Ab5"), moved)
}

func TestMIDIRoundTrip(t *testing.T) {
	key, err := MIDI("C4")
	require.NoError(t, err)
	assert.Equal(t, 60, key)

	assert.Equal(t, contracts.NoteName("A4"), FromMIDI(69, false))
	assert.Equal(t, contracts.NoteName("Bb4"), FromMIDI(70, true))
	assert.Equal(t, contracts.NoteName("A#4"), FromMIDI(70, false))
}

func TestScaleNotes(t *testing.T) {
	p := New()

	major, err := p.ScaleNotes("major")
	require.NoError(t, err)
	assert.Equal(t, []contracts.NoteName{"C4", "D4", "E4", "F4", "G4", "A4", "B4"}, major)

	minor, err := p.ScaleNotes("minor")
	require.NoError(t, err)
	assert.Equal(t, []contracts.NoteName{"C4", "D4", "Eb4", "F4", "G4", "Ab4", "Bb4"}, minor)

	dPenta, err := p.ScaleNotes("D3 major pentatonic")
	require.NoError(t, err)
	assert.Equal(t, []contracts.NoteName{"D3", "E3", "F#3", "A3", "B3"}, dPenta)

	_, err = p.ScaleNotes("lydian dominant")
	assert.ErrorIs(t, err, ErrUnknownScale)
}

func TestRandomMelodyStaysInScale(t *testing.T) {
	p := New()
	rnd := rand.New(rand.NewPCG(7, 11))

	scale, err := p.ScaleNotes("harmonic minor")
	require.NoError(t, err)

	melody, err := p.RandomMelody("harmonic minor", 32, rnd)
	require.NoError(t, err)
	require.Len(t, melody, 32)
	for _, n := range melody {
		assert.Contains(t, scale, n)
	}
}

func TestRandomMelodyRandomScale(t *testing.T) {
	melody, err := New().RandomMelody(RandomScale, 8, rand.New(rand.NewPCG(1, 2)))
	require.NoError(t, err)
	assert.Len(t, melody, 8)
}

func TestLetterOffsets(t *testing.T) {
	for i, letter := range []byte("CDEFGAB") {
		want := []int{0, 2, 4, 5, 7, 9, 11}[i]
		assert.Equal(t, want, letterOffset(letter), string(letter))
		assert.Equal(t, want, letterOffset(letter|0x20), string(letter|0x20))
	}
	assert.Equal(t, -1, letterOffset('H'))
}

func TestMIDILowerCaseLetters(t *testing.T) {
	tests := []struct {
		name contracts.NoteName
		want int
	}{
		{"c4", 60},
		{"eb4", 63},
		{"b3", 59},
		{"bb3", 58},
		{"f#-1", 6},
	}
	for _, tt := range tests {
		got, err := MIDI(tt.name)
		require.NoError(t, err, tt.name)
		assert.Equal(t, tt.want, got, tt.name)
	}

	moved, err := New().WithOctave("eb4", 2)
	require.NoError(t, err)
	assert.Equal(t, contracts.NoteName("Eb2"), moved)
}

func TestOctaveKeepsWrittenSpelling(t *testing.T) {
	p := New()

	key, err := MIDI("B#3")
	require.NoError(t, err)
	assert.Equal(t, 60, key)

	oct, err := p.Octave("B#3")
	require.NoError(t, err)
	assert.Equal(t, 3, oct)

	moved, err := p.WithOctave("B#3", 5)
	require.NoError(t, err)
	assert.Equal(t, contracts.NoteName("B#5"), moved)
}
