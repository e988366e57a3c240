package theory

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/leandrodaf/seqtree/sdk/contracts"
)

// ErrUnknownScale is returned for a scale name with no interval table.
var ErrUnknownScale = errors.New("unknown scale")

// RandomScale picks one of the named scales when drawing a melody.
const RandomScale = "random"

var scaleIntervals = map[string][]int{
	"chromatic":        {0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11},
	"major":            {0, 2, 4, 5, 7, 9, 11},
	"minor":            {0, 2, 3, 5, 7, 8, 10},
	"major pentatonic": {0, 2, 4, 7, 9},
	"minor pentatonic": {0, 3, 5, 7, 10},
	"harmonic minor":   {0, 2, 3, 5, 7, 8, 11},
	"whole tone":       {0, 2, 4, 6, 8, 10},
}

var flatScales = map[string]bool{"minor": true, "minor pentatonic": true, "harmonic minor": true}

const defaultTonic = "C4"

// Provider is the default contracts.NoteProvider.
type Provider struct{}

// New returns a note provider.
func New() *Provider {
	return &Provider{}
}

var _ contracts.NoteProvider = (*Provider)(nil)

// Scales returns the names accepted by ScaleNotes, sorted.
func Scales() []string {
	names := make([]string, 0, len(scaleIntervals))
	for name := range scaleIntervals {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Transpose moves a note by semitones. Whole-octave moves keep the spelling; other
// intervals respell from the MIDI key, keeping flats for flat notes.
func (p *Provider) Transpose(note contracts.NoteName, semitones int) (contracts.NoteName, error) {
	if note.IsRest() {
		return note, nil
	}
	n, err := parse(note)
	if err != nil {
		return "", err
	}
	if semitones%12 == 0 {
		n.octave += semitones / 12
		return n.name(), nil
	}
	return FromMIDI(n.midi()+semitones, n.alt < 0), nil
}

// Compare orders two notes by height.
func (p *Provider) Compare(a, b contracts.NoteName) (int, error) {
	x, err := parse(a)
	if err != nil {
		return 0, err
	}
	y, err := parse(b)
	if err != nil {
		return 0, err
	}
	switch {
	case x.midi() < y.midi():
		return -1, nil
	case x.midi() > y.midi():
		return 1, nil
	}
	return 0, nil
}

// Octave returns the written octave of a note.
func (p *Provider) Octave(note contracts.NoteName) (int, error) {
	n, err := parse(note)
	if err != nil {
		return 0, err
	}
	return n.octave, nil
}

// WithOctave keeps the pitch class of note and replaces its octave.
func (p *Provider) WithOctave(note contracts.NoteName, octave int) (contracts.NoteName, error) {
	n, err := parse(note)
	if err != nil {
		return "", err
	}
	n.octave = octave
	return n.name(), nil
}

// ScaleNotes returns one octave of a scale. The name is either a bare scale type
// ("major"), which starts on C4, or a tonic followed by the type ("Eb3 minor").
func (p *Provider) ScaleNotes(scale string) ([]contracts.NoteName, error) {
	tonic, kind := splitScale(scale)
	intervals, ok := scaleIntervals[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScale, scale)
	}
	root, err := parse(contracts.NoteName(tonic))
	if err != nil {
		return nil, fmt.Errorf("%w: tonic of %q: %v", ErrUnknownScale, scale, err)
	}

	flats := root.alt < 0 || (root.alt == 0 && flatScales[kind])
	notes := make([]contracts.NoteName, len(intervals))
	for i, iv := range intervals {
		notes[i] = FromMIDI(root.midi()+iv, flats)
	}
	return notes, nil
}

// RandomMelody draws length notes uniformly from a scale. The scale "random" first picks
// one of Scales uniformly.
func (p *Provider) RandomMelody(scale string, length int, rnd contracts.Random) ([]contracts.NoteName, error) {
	if strings.TrimSpace(strings.ToLower(scale)) == RandomScale {
		names := Scales()
		scale = names[rnd.IntN(len(names))]
	}
	notes, err := p.ScaleNotes(scale)
	if err != nil {
		return nil, err
	}
	melody := make([]contracts.NoteName, length)
	for i := range melody {
		melody[i] = notes[rnd.IntN(len(notes))]
	}
	return melody, nil
}

func splitScale(scale string) (tonic, kind string) {
	s := strings.TrimSpace(scale)
	if first, rest, ok := strings.Cut(s, " "); ok {
		if _, err := parse(contracts.NoteName(first)); err == nil {
			return first, strings.ToLower(strings.TrimSpace(rest))
		}
	}
	return defaultTonic, strings.ToLower(s)
}
