package contracts

import (
	"errors"
	"fmt"
)

// NoteName is a note in scientific pitch notation, e.g. "C4", "Eb3" or "F#5".
// The empty name marks a rest.
type NoteName string

// IsRest reports whether the name carries no pitch.
func (n NoteName) IsRest() bool {
	return n == ""
}

// Step is the atomic element of a sequence.
//
// ID is the step's position in the sequence it was produced for. Operators use it as an
// address, so it must stay dense in [0, len) for sequences fed back into a transformation.
type Step struct {
	Note      NoteName `json:"note,omitempty" yaml:"note,omitempty"`
	Duration  float64  `json:"duration" yaml:"duration"`
	ID        int      `json:"id" yaml:"id"`
	Transpose int      `json:"transpose" yaml:"transpose"`
	Slew      float64  `json:"slew" yaml:"slew"`
}

// IsRest reports whether the step has no note.
func (s Step) IsRest() bool {
	return s.Note.IsRest()
}

// Order is the playback order applied when a sequence is realized.
type Order string

const (
	OrderForward  Order = "forward"
	OrderBackward Order = "backward"
	OrderPendulum Order = "pendulum"
	OrderRandom   Order = "random"
)

// Orders lists every supported order.
var Orders = []Order{OrderForward, OrderBackward, OrderPendulum, OrderRandom}

// Valid reports whether o is one of Orders.
func (o Order) Valid() bool {
	for _, known := range Orders {
		if o == known {
			return true
		}
	}
	return false
}

// ErrInvalidState is returned when a SequenceState fails validation.
var ErrInvalidState = errors.New("invalid sequence state")

// SequenceState holds the rendering parameters of one generation run. It is never mutated
// once a run starts; every node of a tree reads the same value.
type SequenceState struct {
	Length    int     `json:"length" yaml:"length"`
	Order     Order   `json:"order" yaml:"order"`
	Transpose int     `json:"transpose" yaml:"transpose"`
	Slew      float64 `json:"slew" yaml:"slew"`
	Repeat    int     `json:"repeat" yaml:"repeat"`
}

// Validate checks the structural constraints of the state.
func (s SequenceState) Validate() error {
	if s.Length < 1 {
		return fmt.Errorf("%w: length %d must be at least 1", ErrInvalidState, s.Length)
	}
	if s.Repeat < 1 {
		return fmt.Errorf("%w: repeat %d must be at least 1", ErrInvalidState, s.Repeat)
	}
	if !s.Order.Valid() {
		return fmt.Errorf("%w: unknown order %q", ErrInvalidState, s.Order)
	}
	return nil
}
