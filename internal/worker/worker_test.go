package worker

import (
	"fmt"
	"math/rand/v2"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"github.com/leandrodaf/seqtree/internal/logger"
	"github.com/leandrodaf/seqtree/internal/testutil"
	"github.com/leandrodaf/seqtree/internal/theory"
	"github.com/leandrodaf/seqtree/sdk/contracts"
)

func newTestWorker(t *testing.T, rnd contracts.Random, notes contracts.NoteProvider) *Worker {
	t.Helper()
	if notes == nil {
		notes = theory.New()
	}
	w := New(&contracts.ClientOptions{
		Logger:    logger.NewNopLogger(),
		Random:    rnd,
		Notes:     notes,
		QueueSize: 4,
	})
	t.Cleanup(func() { _ = w.Stop() })
	return w
}

func request(height int, notes ...contracts.NoteName) contracts.GenerationRequest {
	trunk := make([]contracts.Step, len(notes))
	for i, n := range notes {
		trunk[i] = contracts.Step{Note: n, Duration: 1, ID: i}
	}
	return contracts.GenerationRequest{
		Height: height,
		Trunk:  trunk,
		State:  contracts.SequenceState{Length: len(notes), Order: contracts.OrderForward, Repeat: 1},
	}
}

func TestGenerate(t *testing.T) {
	w := newTestWorker(t, rand.New(rand.NewPCG(1, 2)), nil)

	resp := w.Generate(request(3, "C4", "E4", "G4", "B4"))
	require.NoError(t, resp.Err)
	assert.NotEmpty(t, resp.RequestID)
	assert.Equal(t, 15, resp.Root.Count())
	assert.Len(t, resp.Paths, 8)

	path, err := resp.Path(8)
	require.NoError(t, err)
	assert.Len(t, path, 4*4)

	_, err = resp.Path(9)
	assert.ErrorIs(t, err, contracts.ErrPathOutOfRange)
}

func TestGenerateKeepsRequestID(t *testing.T) {
	w := newTestWorker(t, rand.New(rand.NewPCG(1, 2)), nil)

	req := request(1, "C4")
	req.ID = "trunk-42"
	resp := w.Generate(req)
	require.NoError(t, resp.Err)
	assert.Equal(t, "trunk-42", resp.RequestID)
}

func TestGenerateFailures(t *testing.T) {
	tests := []struct {
		name string
		rnd  contracts.Random
		req  contracts.GenerationRequest
		code ErrorCode
	}{
		{"negative height", testutil.NewScriptedRandom(), request(-1, "C4"), CodeInvalidRequest},
		{"empty trunk", testutil.NewScriptedRandom(), request(1), CodeInvalidRequest},
		{"unknown note", testutil.NewScriptedRandom(0, 0), request(1, "X9"), CodeUnknownNote},
		{"only rests", testutil.NewScriptedRandom(1), request(1, "", ""), CodeEmptyPitchedSequence},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newTestWorker(t, tt.rnd, nil)

			resp := w.Generate(tt.req)
			require.Error(t, resp.Err)
			assert.Equal(t, tt.code, CodeOf(resp.Err))
			assert.Nil(t, resp.Root)
			assert.Nil(t, resp.Paths)

			var ge *GenerationError
			require.ErrorAs(t, resp.Err, &ge)
			assert.Equal(t, resp.RequestID, ge.RequestID)
		})
	}
}

type panickingNotes struct{ contracts.NoteProvider }

func (panickingNotes) Transpose(contracts.NoteName, int) (contracts.NoteName, error) {
	panic("provider exploded")
}

func TestPanicIsReportedAndWorkerSurvives(t *testing.T) {
	rnd := testutil.NewScriptedRandom(0, 0) // transposition
	w := newTestWorker(t, rnd, panickingNotes{theory.New()})

	resp := w.Generate(request(1, "C4"))
	assert.Equal(t, CodeInternal, CodeOf(resp.Err))
	assert.Contains(t, resp.Err.Error(), "provider exploded")

	resp = w.Generate(request(0, "C4"))
	require.NoError(t, resp.Err)
	assert.Len(t, resp.Paths, 1)
}

func TestStopReportsRecoveredPanics(t *testing.T) {
	rnd := testutil.NewScriptedRandom(0, 0, 0, 0) // two transpositions
	w := newTestWorker(t, rnd, panickingNotes{theory.New()})

	first := w.Generate(request(1, "C4"))
	second := w.Generate(request(1, "D4"))
	require.Error(t, first.Err)
	require.Error(t, second.Err)

	err := w.Stop()
	require.Error(t, err)
	faults := multierr.Errors(err)
	require.Len(t, faults, 2)
	assert.Equal(t, first.RequestID, faults[0].(*GenerationError).RequestID)
	assert.Equal(t, CodeInternal, CodeOf(faults[1]))

	assert.Equal(t, err, w.Stop())
}

func TestStop(t *testing.T) {
	w := newTestWorker(t, rand.New(rand.NewPCG(3, 4)), nil)

	require.NoError(t, w.Stop())
	require.NoError(t, w.Stop())

	resp := w.Generate(request(1, "C4"))
	assert.Equal(t, CodeStopped, CodeOf(resp.Err))
	assert.ErrorIs(t, resp.Err, ErrWorkerStopped)
}

func TestStopDrainsQueuedRequests(t *testing.T) {
	w := newTestWorker(t, rand.New(rand.NewPCG(3, 4)), nil)

	replies := make([]<-chan contracts.GenerationResponse, 3)
	for i := range replies {
		replies[i] = w.Submit(request(2, "C4", "D4"))
	}
	require.NoError(t, w.Stop())

	for _, r := range replies {
		resp := <-r
		require.NoError(t, resp.Err)
		assert.Len(t, resp.Paths, 4)
	}
}

func TestAbandonedResponseDoesNotBlock(t *testing.T) {
	w := newTestWorker(t, rand.New(rand.NewPCG(5, 6)), nil)

	_ = w.Submit(request(4, "C4", "D4", "E4"))
	resp := w.Generate(request(1, "C4"))
	require.NoError(t, resp.Err)
}

func TestConcurrentSubmitters(t *testing.T) {
	w := newTestWorker(t, rand.New(rand.NewPCG(7, 8)), nil)

	const n = 20
	var wg sync.WaitGroup
	results := make([]contracts.GenerationResponse, n)
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			req := request(i%4, "C4", "E4", "G4")
			req.ID = fmt.Sprintf("req-%d", i)
			results[i] = w.Generate(req)
		}()
	}
	wg.Wait()

	for i, resp := range results {
		require.NoError(t, resp.Err)
		assert.Equal(t, fmt.Sprintf("req-%d", i), resp.RequestID)
		assert.Len(t, resp.Paths, 1<<(i%4))
	}
}
