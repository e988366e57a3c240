package transform

import (
	"errors"
	"fmt"
)

// Error definitions for transformation failures.
var (
	ErrEmptyPitchedSequence = errors.New("empty pitched sequence")
	ErrUnknownKind          = errors.New("unknown transformation kind")
	ErrStepIDOutOfRange     = errors.New("step id out of range")
)

// Kind selects one of the transformation operators.
type Kind int

const (
	// KindRandom draws one of Kinds uniformly.
	KindRandom Kind = iota
	KindTransposition
	KindInversion
	KindReversal
	KindMutation
)

// Kinds lists the concrete operators in draw order.
var Kinds = []Kind{KindTransposition, KindInversion, KindReversal, KindMutation}

func (k Kind) String() string {
	switch k {
	case KindRandom:
		return "random"
	case KindTransposition:
		return "transposition"
	case KindInversion:
		return "inversion"
	case KindReversal:
		return "reversal"
	case KindMutation:
		return "mutation"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind maps an operator name back to its Kind.
func ParseKind(name string) (Kind, error) {
	for _, k := range append([]Kind{KindRandom}, Kinds...) {
		if k.String() == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}
