// Package theory implements contracts.NoteProvider for notes written in scientific pitch
// notation ("C4", "Eb3", "F#5").
package theory

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/leandrodaf/seqtree/sdk/contracts"
)

// ErrUnknownNote is returned for a name that is not a pitched note with an octave.
var ErrUnknownNote = errors.New("unknown note")

var (
	sharpNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}
	flatNames  = [12]string{"C", "Db", "D", "Eb", "E", "F", "Gb", "G", "Ab", "A", "Bb", "B"}
)

// pitch is a parsed note: letter and accidental make the pitch class, octave the register.
type pitch struct {
	letter byte
	alt    int
	octave int
}

func parse(name contracts.NoteName) (pitch, error) {
	s := strings.TrimSpace(string(name))
	if s == "" {
		return pitch{}, fmt.Errorf("%w: rest has no pitch", ErrUnknownNote)
	}

	letter := byte(unicode.ToUpper(rune(s[0])))
	if letterOffset(letter) < 0 {
		return pitch{}, fmt.Errorf("%w: %q", ErrUnknownNote, name)
	}

	p := pitch{letter: letter}
	i := 1
accidentals:
	for ; i < len(s); i++ {
		switch s[i] {
		case '#':
			p.alt++
		case 'b':
			p.alt--
		case 'x':
			p.alt += 2
		default:
			break accidentals
		}
	}

	if i == len(s) {
		return pitch{}, fmt.Errorf("%w: %q has no octave", ErrUnknownNote, name)
	}
	oct, err := strconv.Atoi(s[i:])
	if err != nil {
		return pitch{}, fmt.Errorf("%w: %q", ErrUnknownNote, name)
	}
	p.octave = oct
	return p, nil
}

// letterOffset maps a note letter to its semitone offset from C, or -1.
func letterOffset(b byte) int {
	switch unicode.ToUpper(rune(b)) {
	case 'C':
		return 0
	case 'D':
		return 2
	case 'E':
		return 4
	case 'F':
		return 5
	case 'G':
		return 7
	case 'A':
		return 9
	case 'B':
		return 11
	}
	return -1
}

// midi anchors C4 at 60.
func (p pitch) midi() int {
	return 60 + letterOffset(p.letter) + p.alt + (p.octave-4)*12
}

func (p pitch) name() contracts.NoteName {
	acc := ""
	switch {
	case p.alt > 0:
		acc = strings.Repeat("#", p.alt)
	case p.alt < 0:
		acc = strings.Repeat("b", -p.alt)
	}
	return contracts.NoteName(string(p.letter) + acc + strconv.Itoa(p.octave))
}

// FromMIDI spells a MIDI key, with flats when preferFlats is set and sharps otherwise.
func FromMIDI(key int, preferFlats bool) contracts.NoteName {
	pc := ((key % 12) + 12) % 12
	oct := floorDiv(key, 12) - 1
	names := sharpNames
	if preferFlats {
		names = flatNames
	}
	return contracts.NoteName(names[pc] + strconv.Itoa(oct))
}

// MIDI returns the MIDI key of a pitched note.
func MIDI(name contracts.NoteName) (int, error) {
	p, err := parse(name)
	if err != nil {
		return 0, err
	}
	return p.midi(), nil
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
