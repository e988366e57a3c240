package testutil

import "sync"

// ScriptedRandom replays a fixed list of draws, for tests that need to pin every random
// choice a generation makes.
//
// IntN returns the next scripted value reduced modulo n, or 0 once the script runs out.
// Shuffle leaves the order untouched unless Reverse is set, in which case it reverses it.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type ScriptedRandom struct {
	mu      sync.Mutex
	ints    []int
	calls   int
	Reverse bool
}

// NewScriptedRandom creates a source that returns ints in order.
func NewScriptedRandom(ints ...int) *ScriptedRandom {
	return &ScriptedRandom{ints: ints}
}

// IntN returns the next scripted draw in [0, n).
func (r *ScriptedRandom) IntN(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if len(r.ints) == 0 || n <= 0 {
		return 0
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	return ((v % n) + n) % n
}

// Shuffle applies the scripted permutation: identity, or reversal when Reverse is set.
func (r *ScriptedRandom) Shuffle(n int, swap func(i, j int)) {
	r.mu.Lock()
	reverse := r.Reverse
	r.mu.Unlock()
	if !reverse {
		return
	}
	for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
		swap(i, j)
	}
}

// Calls returns how many IntN draws were made.
func (r *ScriptedRandom) Calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

// Remaining returns how many scripted draws are left.
func (r *ScriptedRandom) Remaining() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.ints)
}
