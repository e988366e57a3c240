package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScriptedRandom_ReplaysInOrder(t *testing.T) {
	r := NewScriptedRandom(3, 1, 5)

	assert.Equal(t, 3, r.IntN(4))
	assert.Equal(t, 1, r.IntN(4))
	assert.Equal(t, 1, r.IntN(4)) // 5 mod 4
	assert.Equal(t, 0, r.IntN(4)) // exhausted
	assert.Equal(t, 4, r.Calls())
	assert.Equal(t, 0, r.Remaining())
}

func TestScriptedRandom_Shuffle(t *testing.T) {
	xs := []int{1, 2, 3, 4}
	swap := func(i, j int) { xs[i], xs[j] = xs[j], xs[i] }

	r := NewScriptedRandom()
	r.Shuffle(len(xs), swap)
	assert.Equal(t, []int{1, 2, 3, 4}, xs)

	r.Reverse = true
	r.Shuffle(len(xs), swap)
	assert.Equal(t, []int{4, 3, 2, 1}, xs)
}
