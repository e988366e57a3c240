// Package options applies defaults shared by every client the SDK hands out.
package options

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/leandrodaf/seqtree/internal/logger"
	"github.com/leandrodaf/seqtree/internal/theory"
	"github.com/leandrodaf/seqtree/sdk/contracts"
)

// DefaultQueueSize is the number of requests that may wait for the worker.
const DefaultQueueSize = 16

// DefaultClientName names the CoreMIDI client.
const DefaultClientName = "seqtree"

// ErrInvalidOption is returned when an option value cannot be used.
var ErrInvalidOption = errors.New("invalid option")

// globalRandom draws from math/rand/v2's package-level source, which is safe for
// concurrent use.
type globalRandom struct{}

func (globalRandom) IntN(n int) int                     { return rand.IntN(n) }
func (globalRandom) Shuffle(n int, swap func(i, j int)) { rand.Shuffle(n, swap) }

// Apply runs opts over an empty ClientOptions and fills in everything left unset.
func Apply(opts ...contracts.Option) (contracts.ClientOptions, error) {
	options := &contracts.ClientOptions{}
	for _, opt := range opts {
		opt(options)
	}

	if options.QueueSize < 0 {
		return contracts.ClientOptions{}, fmt.Errorf("%w: queue size %d", ErrInvalidOption, options.QueueSize)
	}
	if options.QueueSize == 0 {
		options.QueueSize = DefaultQueueSize
	}

	if options.Logger == nil {
		options.Logger = logger.NewZapLogger()
	}
	if options.LogFilePath != "" {
		options.Logger.SetDestination(contracts.FileLog, options.LogFilePath)
	}
	options.Logger.SetLevel(options.LogLevel) // zero value is InfoLevel

	if options.Random == nil {
		options.Random = globalRandom{}
	}
	if options.Notes == nil {
		options.Notes = theory.New()
	}
	if options.CoreMIDIConfig == nil {
		options.CoreMIDIConfig = &contracts.CoreMIDIConfig{ClientName: DefaultClientName}
	}
	return *options, nil
}
