package midi

import (
	"github.com/leandrodaf/seqtree/sdk/contracts"
)

// NewMIDIClient creates a capture client for recording trunk sequences from a MIDI input.
// It applies default options and picks the implementation for the running OS.
//
// opts ...contracts.Option: A variadic list of option functions to customize the client configuration.
//
// Returns:
//   - contracts.ClientMIDI: An instance of the MIDI client.
//   - error: An error, if any occurred during the creation of the client.
func NewMIDIClient(opts ...contracts.Option) (contracts.ClientMIDI, error) {
	options, err := applyDefaultOptions(opts...)
	if err != nil {
		return nil, err
	}

	return NewClient(&options)
}
