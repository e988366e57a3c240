package contracts

// Random is the single source of randomness used by the generator. *rand.Rand from
// math/rand/v2 satisfies it.
type Random interface {
	IntN(n int) int
	Shuffle(n int, swap func(i, j int))
}

// NoteProvider answers the note-theory questions the generator needs.
type NoteProvider interface {
	// Transpose moves note by n semitones. A rest stays a rest.
	Transpose(note NoteName, semitones int) (NoteName, error)
	// Compare orders two pitched notes by height: -1, 0 or 1.
	Compare(a, b NoteName) (int, error)
	// Octave returns the octave number of a pitched note.
	Octave(note NoteName) (int, error)
	// WithOctave returns note's pitch class placed in the given octave.
	WithOctave(note NoteName, octave int) (NoteName, error)
	// ScaleNotes returns the ordered notes of a named scale.
	ScaleNotes(scale string) ([]NoteName, error)
	// RandomMelody draws length notes uniformly from a scale.
	RandomMelody(scale string, length int, rnd Random) ([]NoteName, error)
}
