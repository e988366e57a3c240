package midi

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/leandrodaf/seqtree/internal/midi/mididarwin"
	"github.com/leandrodaf/seqtree/internal/midi/midiwindows"
	"github.com/leandrodaf/seqtree/sdk/contracts"
)

// ErrUnsupportedOS is returned when the operating system has no capture backend.
var ErrUnsupportedOS = errors.New("unsupported operating system")

// clientInitializers maps OS names to capture client constructors.
var clientInitializers = map[string]func(*contracts.ClientOptions) (contracts.ClientMIDI, error){
	"darwin":  mididarwin.NewMIDIClient,  // CoreMIDI.
	"windows": midiwindows.NewMIDIClient, // winmm.
}

// NewClient initializes a capture client for the current operating system.
// It returns ErrUnsupportedOS on anything but macOS and Windows.
func NewClient(opts *contracts.ClientOptions) (contracts.ClientMIDI, error) {
	if initializer, exists := clientInitializers[runtime.GOOS]; exists {
		return initializer(opts)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedOS, runtime.GOOS)
}
