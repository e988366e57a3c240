// Package config holds the parameter ranges a generation request is checked against and
// loads requests from YAML files.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/leandrodaf/seqtree/sdk/contracts"
)

// ErrOutOfRange is returned when a request parameter falls outside its range.
var ErrOutOfRange = errors.New("parameter out of range")

// Range is an inclusive integer parameter range with its initial value.
type Range struct {
	Label string
	Min   int
	Max   int
	Init  int
}

// Contains reports whether v lies in [Min, Max].
func (r Range) Contains(v int) bool {
	return v >= r.Min && v <= r.Max
}

func (r Range) check(v int) error {
	if r.Contains(v) {
		return nil
	}
	return fmt.Errorf("%w: %s %d not in [%d, %d]", ErrOutOfRange, r.Label, v, r.Min, r.Max)
}

const (
	// StepNumber is the length of a generated default trunk.
	StepNumber = 8
	// DefaultStepDuration is the duration, in beats, of every default trunk step.
	DefaultStepDuration = 1.0
	// DefaultScale is the scale default trunks are drawn from.
	DefaultScale = "major"

	// SlewStep is the resolution of the slew parameter, which runs from 0 to 1.
	SlewStep = 0.1
)

var (
	Branches  = Range{Label: "branches", Min: 0, Max: 7, Init: 0}
	Length    = Range{Label: "length", Min: 1, Max: StepNumber, Init: StepNumber}
	Transpose = Range{Label: "transpose", Min: -24, Max: 24, Init: 0}
	Repeat    = Range{Label: "repeat", Min: 1, Max: 8, Init: 1}
	Tempo     = Range{Label: "tempo", Min: 30, Max: 220, Init: 120}

	// Mutation and TimeDivision are index ranges of the player controls; MutationAmount and
	// Division give the value at an index. Requests carry neither: the mutation operator
	// replaces one whole step, and division only scales playback time.
	Mutation     = Range{Label: "mutation", Min: 0, Max: 10, Init: 0}
	TimeDivision = Range{Label: "div/mult", Min: 0, Max: 8, Init: 4}
)

// Values returns every integer in [Min, Max].
func (r Range) Values() []int {
	values := make([]int, 0, r.Max-r.Min+1)
	for v := r.Min; v <= r.Max; v++ {
		values = append(values, v)
	}
	return values
}

// MutationAmount returns the mutation amount at index i: 0 to 1 in tenths.
func MutationAmount(i int) float64 {
	return float64(i) / 10
}

// Division returns the time division at index i, 2 to the power i.
func Division(i int) int {
	return 1 << i
}

// DefaultState returns the state every control starts at.
func DefaultState() contracts.SequenceState {
	return contracts.SequenceState{
		Length:    Length.Init,
		Order:     contracts.OrderForward,
		Transpose: Transpose.Init,
		Repeat:    Repeat.Init,
	}
}

// DefaultTrunk draws a StepNumber-step melody from scale, one beat per step.
func DefaultTrunk(notes contracts.NoteProvider, rnd contracts.Random, scale string) ([]contracts.Step, error) {
	if scale == "" {
		scale = DefaultScale
	}
	melody, err := notes.RandomMelody(scale, StepNumber, rnd)
	if err != nil {
		return nil, err
	}
	steps := make([]contracts.Step, len(melody))
	for i, note := range melody {
		steps[i] = contracts.Step{Note: note, Duration: DefaultStepDuration, ID: i}
	}
	return steps, nil
}

// Validate checks req against the parameter ranges and reports every violation.
// A trunk longer than StepNumber raises the length limit to the trunk's length.
func Validate(req contracts.GenerationRequest) error {
	var errs error

	errs = multierr.Append(errs, Branches.check(req.Height))

	length := Length
	length.Max = max(length.Max, len(req.Trunk))
	errs = multierr.Append(errs, length.check(req.State.Length))
	errs = multierr.Append(errs, Transpose.check(req.State.Transpose))
	errs = multierr.Append(errs, Repeat.check(req.State.Repeat))
	errs = multierr.Append(errs, checkSlew(req.State.Slew))

	if !req.State.Order.Valid() {
		errs = multierr.Append(errs, fmt.Errorf("%w: unknown order %q", contracts.ErrInvalidState, req.State.Order))
	}
	if len(req.Trunk) == 0 {
		errs = multierr.Append(errs, fmt.Errorf("%w: trunk is empty", ErrOutOfRange))
	}
	for i, step := range req.Trunk {
		if step.Duration <= 0 {
			errs = multierr.Append(errs, fmt.Errorf("%w: step %d duration %g must be positive", ErrOutOfRange, i, step.Duration))
		}
	}
	return errs
}

func checkSlew(slew float64) error {
	if slew < 0 || slew > 1 {
		return fmt.Errorf("%w: slew %g not in [0, 1]", ErrOutOfRange, slew)
	}
	if q := slew / SlewStep; math.Abs(q-math.Round(q)) > 1e-9 {
		return fmt.Errorf("%w: slew %g is not a multiple of %g", ErrOutOfRange, slew, SlewStep)
	}
	return nil
}

// RequestFile is the YAML form of a generation request. A file without a trunk gets a
// default one drawn from Scale.
type RequestFile struct {
	ID     string                  `yaml:"id,omitempty"`
	Height int                     `yaml:"height"`
	Scale  string                  `yaml:"scale,omitempty"`
	Seed   *uint64                 `yaml:"seed,omitempty"`
	Trunk  []contracts.Step        `yaml:"trunk,omitempty"`
	State  contracts.SequenceState `yaml:"state"`
}

// NewRequestFile returns a request with every control at its initial value and no trunk.
func NewRequestFile() *RequestFile {
	return &RequestFile{
		Height: Branches.Init,
		Scale:  DefaultScale,
		State:  DefaultState(),
	}
}

// LoadRequest reads a request file. Keys left out keep their initial values and unknown
// keys are rejected.
func LoadRequest(path string) (*RequestFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read request file: %w", err)
	}

	file := NewRequestFile()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return file, nil
}

// Request builds and validates the generation request described by f. Trunk IDs are
// assigned by position.
func (f *RequestFile) Request(notes contracts.NoteProvider, rnd contracts.Random) (contracts.GenerationRequest, error) {
	trunk := make([]contracts.Step, len(f.Trunk))
	copy(trunk, f.Trunk)
	if len(trunk) == 0 {
		var err error
		if trunk, err = DefaultTrunk(notes, rnd, f.Scale); err != nil {
			return contracts.GenerationRequest{}, err
		}
	}
	for i := range trunk {
		trunk[i].ID = i
	}

	req := contracts.GenerationRequest{
		ID:     f.ID,
		Height: f.Height,
		Trunk:  trunk,
		State:  f.State,
	}
	if err := Validate(req); err != nil {
		return contracts.GenerationRequest{}, err
	}
	return req, nil
}
