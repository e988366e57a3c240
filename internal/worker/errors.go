package worker

import (
	"errors"
	"fmt"

	"github.com/leandrodaf/seqtree/internal/theory"
	"github.com/leandrodaf/seqtree/internal/transform"
	"github.com/leandrodaf/seqtree/internal/tree"
	"github.com/leandrodaf/seqtree/sdk/contracts"
)

// ErrWorkerStopped is reported for requests submitted after Stop.
var ErrWorkerStopped = errors.New("generation worker stopped")

// ErrorCode categorizes generation failures.
type ErrorCode string

const (
	// CodeInvalidRequest: negative height, empty trunk or invalid state.
	CodeInvalidRequest ErrorCode = "INVALID_REQUEST"
	// CodeUnknownNote: the note provider rejected a note name.
	CodeUnknownNote ErrorCode = "UNKNOWN_NOTE"
	// CodeEmptyPitchedSequence: inversion met a sequence made only of rests.
	CodeEmptyPitchedSequence ErrorCode = "EMPTY_PITCHED_SEQUENCE"
	// CodeStopped: the worker no longer accepts requests.
	CodeStopped ErrorCode = "STOPPED"
	// CodeInternal: the generation panicked.
	CodeInternal ErrorCode = "INTERNAL"
	// CodeFailed: any other collaborator failure.
	CodeFailed ErrorCode = "GENERATION_FAILED"
)

// GenerationError is the failure reported in a GenerationResponse. The whole request
// fails; no partial tree or paths accompany it.
type GenerationError struct {
	Code      ErrorCode
	RequestID string
	Err       error
}

// Error implements the error interface.
func (e *GenerationError) Error() string {
	if e.RequestID != "" {
		return fmt.Sprintf("%s: %v (request=%s)", e.Code, e.Err, e.RequestID)
	}
	return fmt.Sprintf("%s: %v", e.Code, e.Err)
}

// Unwrap returns the underlying cause.
func (e *GenerationError) Unwrap() error {
	return e.Err
}

// CodeOf returns the code of a GenerationError anywhere in err's chain, or "".
func CodeOf(err error) ErrorCode {
	var ge *GenerationError
	if errors.As(err, &ge) {
		return ge.Code
	}
	return ""
}

// IsInvalidRequest reports whether err was caused by a malformed request.
func IsInvalidRequest(err error) bool {
	return CodeOf(err) == CodeInvalidRequest
}

func newGenerationError(requestID string, err error) *GenerationError {
	return &GenerationError{Code: classify(err), RequestID: requestID, Err: err}
}

func classify(err error) ErrorCode {
	switch {
	case errors.Is(err, tree.ErrNegativeHeight),
		errors.Is(err, tree.ErrEmptyTrunk),
		errors.Is(err, contracts.ErrInvalidState):
		return CodeInvalidRequest
	case errors.Is(err, theory.ErrUnknownNote):
		return CodeUnknownNote
	case errors.Is(err, transform.ErrEmptyPitchedSequence):
		return CodeEmptyPitchedSequence
	case errors.Is(err, ErrWorkerStopped):
		return CodeStopped
	}
	return CodeFailed
}
