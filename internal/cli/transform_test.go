package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leandrodaf/seqtree/sdk/contracts"
)

func TestTransformReversalText(t *testing.T) {
	out, err := execute(t, "transform", "--kind", "reversal", "--steps", "C4,E4/0.5,-")
	require.NoError(t, err)
	assert.Equal(t, "reversal\n  in:  C4/1 E4/0.5 -/1\n  out: -/1 E4/0.5 C4/1\n", out)
}

func TestTransformInversionJSON(t *testing.T) {
	out, err := execute(t, "--format", "json", "transform", "--kind", "inversion", "--steps", "C4,E4,G4")
	require.NoError(t, err)

	var resp struct {
		Status string          `json:"status"`
		Data   TransformResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)

	notes := make([]contracts.NoteName, len(resp.Data.Steps))
	for i, s := range resp.Data.Steps {
		notes[i] = s.Note
	}
	assert.Equal(t, []contracts.NoteName{"G4", "E4", "C4"}, notes)
}

func TestTransformRealize(t *testing.T) {
	out, err := execute(t, "transform", "--kind", "transposition", "--seed", "1",
		"--steps", "C4,D4", "--repeat", "2", "--realize")
	require.NoError(t, err)
	assert.Contains(t, out, "transposition\n")

	var resp struct {
		Data TransformResult `json:"data"`
	}
	out, err = execute(t, "--format", "json", "transform", "--kind", "transposition", "--seed", "1",
		"--steps", "C4,D4", "--repeat", "2", "--transpose", "3", "--realize")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Len(t, resp.Data.Steps, 4)
	for _, s := range resp.Data.Steps {
		assert.Equal(t, 3, s.Transpose)
	}
}

func TestTransformErrors(t *testing.T) {
	_, err := execute(t, "transform", "--kind", "retrograde", "--steps", "C4")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	_, err = execute(t, "transform", "--kind", "inversion", "--steps", "-,-")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	_, err = execute(t, "transform")
	assert.Error(t, err, "--steps is required")
}
