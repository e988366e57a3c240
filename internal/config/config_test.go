package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"github.com/leandrodaf/seqtree/internal/testutil"
	"github.com/leandrodaf/seqtree/internal/theory"
	"github.com/leandrodaf/seqtree/sdk/contracts"
)

func TestLoadRequest(t *testing.T) {
	file, err := LoadRequest(filepath.Join("testdata", "request.yaml"))
	require.NoError(t, err)

	req, err := file.Request(theory.New(), testutil.NewScriptedRandom())
	require.NoError(t, err)

	assert.Equal(t, "arpeggio", req.ID)
	assert.Equal(t, 2, req.Height)
	assert.Equal(t, []contracts.Step{
		{Note: "C4", Duration: 1, ID: 0},
		{Duration: 0.5, ID: 1},
		{Note: "E4", Duration: 1, ID: 2},
		{Note: "G4", Duration: 1.5, ID: 3},
	}, req.Trunk)
	assert.Equal(t, contracts.SequenceState{
		Length:    4,
		Order:     contracts.OrderPendulum,
		Transpose: -12,
		Slew:      0.3,
		Repeat:    2,
	}, req.State)
}

func TestLoadRequestDefaults(t *testing.T) {
	file, err := LoadRequest(filepath.Join("testdata", "defaults.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultState(), file.State)
	assert.Nil(t, file.Seed)

	rnd := testutil.NewScriptedRandom(0, 1, 2, 3, 4, 0, 1, 2)
	req, err := file.Request(theory.New(), rnd)
	require.NoError(t, err)

	scale, err := theory.New().ScaleNotes("minor pentatonic")
	require.NoError(t, err)
	require.Len(t, req.Trunk, StepNumber)
	for i, step := range req.Trunk {
		assert.Equal(t, i, step.ID)
		assert.Equal(t, DefaultStepDuration, step.Duration)
		assert.Contains(t, scale, step.Note)
	}
	assert.Equal(t, scale[0], req.Trunk[0].Note)
	assert.Equal(t, scale[4], req.Trunk[4].Note)
}

func TestLoadRequestRejectsUnknownKeys(t *testing.T) {
	_, err := LoadRequest(filepath.Join("testdata", "typo.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lenght")
}

func TestLoadRequestMissingFile(t *testing.T) {
	_, err := LoadRequest(filepath.Join("testdata", "absent.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	trunk := []contracts.Step{{Note: "C4", Duration: 1}, {Note: "D4", Duration: 1}}

	tests := []struct {
		name   string
		mutate func(*contracts.GenerationRequest)
		errs   int
	}{
		{name: "initial values", mutate: func(*contracts.GenerationRequest) {}},
		{name: "height above range", mutate: func(r *contracts.GenerationRequest) { r.Height = 8 }, errs: 1},
		{name: "negative height", mutate: func(r *contracts.GenerationRequest) { r.Height = -1 }, errs: 1},
		{name: "zero length", mutate: func(r *contracts.GenerationRequest) { r.State.Length = 0 }, errs: 1},
		{name: "transpose too far", mutate: func(r *contracts.GenerationRequest) { r.State.Transpose = 25 }, errs: 1},
		{name: "repeat too high", mutate: func(r *contracts.GenerationRequest) { r.State.Repeat = 9 }, errs: 1},
		{name: "slew off grid", mutate: func(r *contracts.GenerationRequest) { r.State.Slew = 0.25 }, errs: 1},
		{name: "slew above one", mutate: func(r *contracts.GenerationRequest) { r.State.Slew = 1.1 }, errs: 1},
		{name: "unknown order", mutate: func(r *contracts.GenerationRequest) { r.State.Order = "sideways" }, errs: 1},
		{name: "empty trunk", mutate: func(r *contracts.GenerationRequest) { r.Trunk = nil }, errs: 1},
		{name: "zero duration", mutate: func(r *contracts.GenerationRequest) { r.Trunk = []contracts.Step{{Note: "C4"}} }, errs: 1},
		{
			name: "several at once",
			mutate: func(r *contracts.GenerationRequest) {
				r.Height = 9
				r.State.Repeat = 0
				r.State.Slew = -0.1
			},
			errs: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := contracts.GenerationRequest{Trunk: trunk, State: DefaultState()}
			tt.mutate(&req)

			err := Validate(req)
			if tt.errs == 0 {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Len(t, multierr.Errors(err), tt.errs)
		})
	}
}

func TestValidateLongTrunkRaisesLengthLimit(t *testing.T) {
	trunk := make([]contracts.Step, 12)
	for i := range trunk {
		trunk[i] = contracts.Step{Note: "C4", Duration: 1, ID: i}
	}
	state := DefaultState()
	state.Length = 12

	assert.NoError(t, Validate(contracts.GenerationRequest{Trunk: trunk, State: state}))

	state.Length = 13
	assert.ErrorIs(t, Validate(contracts.GenerationRequest{Trunk: trunk, State: state}), ErrOutOfRange)
}

func TestRangeContains(t *testing.T) {
	assert.True(t, Tempo.Contains(Tempo.Init))
	assert.True(t, Tempo.Contains(30))
	assert.False(t, Tempo.Contains(221))
}

func TestPlayerControlRanges(t *testing.T) {
	amounts := make([]float64, 0, len(Mutation.Values()))
	for _, i := range Mutation.Values() {
		amounts = append(amounts, MutationAmount(i))
	}
	require.Len(t, amounts, 11)
	assert.Equal(t, 0.0, amounts[0])
	assert.InDelta(t, 0.3, amounts[3], 1e-9)
	assert.Equal(t, 1.0, amounts[10])
	assert.Equal(t, 0.0, MutationAmount(Mutation.Init))

	divisions := make([]int, 0, len(TimeDivision.Values()))
	for _, i := range TimeDivision.Values() {
		divisions = append(divisions, Division(i))
	}
	assert.Equal(t, []int{1, 2, 4, 8, 16, 32, 64, 128, 256}, divisions)
	assert.Equal(t, 16, Division(TimeDivision.Init))
}

func TestRangeValues(t *testing.T) {
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8}, Repeat.Values())
	assert.Len(t, Transpose.Values(), 49)
}
