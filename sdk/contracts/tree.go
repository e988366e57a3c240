package contracts

import (
	"errors"
	"fmt"
)

// ErrPathOutOfRange is returned by GenerationResponse.Path for an unknown path number.
var ErrPathOutOfRange = errors.New("path out of range")

// Sequence is an ordered list of steps together with the state it is rendered with.
type Sequence struct {
	Steps []Step        `json:"steps"`
	State SequenceState `json:"state"`
}

// TreeNode is one variant in a generated tree. Children are nil at the leaves.
type TreeNode struct {
	Value Sequence  `json:"value"`
	Left  *TreeNode `json:"left"`
	Right *TreeNode `json:"right"`
}

// Count returns the number of nodes in the subtree rooted at n.
func (n *TreeNode) Count() int {
	if n == nil {
		return 0
	}
	return 1 + n.Left.Count() + n.Right.Count()
}

// Depth returns the number of edges on the longest downward path from n.
func (n *TreeNode) Depth() int {
	if n == nil || (n.Left == nil && n.Right == nil) {
		return 0
	}
	return 1 + max(n.Left.Depth(), n.Right.Depth())
}

// GenerationRequest asks for a tree of the given height grown from a trunk sequence.
type GenerationRequest struct {
	ID     string        `json:"id,omitempty" yaml:"id,omitempty"`
	Height int           `json:"height" yaml:"height"`
	Trunk  []Step        `json:"trunk" yaml:"trunk"`
	State  SequenceState `json:"state" yaml:"state"`
}

// GenerationResponse carries the result of exactly one GenerationRequest.
// On failure Err is set and Root and Paths are empty.
type GenerationResponse struct {
	RequestID string    `json:"request_id"`
	Root      *TreeNode `json:"root,omitempty"`
	Paths     [][]Step  `json:"paths,omitempty"`
	Err       error     `json:"-"`
}

// Path returns the 1-based path n.
func (r GenerationResponse) Path(n int) ([]Step, error) {
	if n < 1 || n > len(r.Paths) {
		return nil, fmt.Errorf("%w: %d not in [1, %d]", ErrPathOutOfRange, n, len(r.Paths))
	}
	return r.Paths[n-1], nil
}

// TreeGenerator runs generations off the caller's goroutine.
type TreeGenerator interface {
	// Submit queues a request. The returned channel receives exactly one response.
	Submit(req GenerationRequest) <-chan GenerationResponse
	// Generate submits a request and waits for its response.
	Generate(req GenerationRequest) GenerationResponse
	// Stop drains the queue and stops the worker. It reports faults the worker recovered from.
	Stop() error
}
