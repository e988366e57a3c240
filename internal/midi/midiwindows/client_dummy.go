//go:build !windows
// +build !windows

package midiwindows

import (
	"errors"

	"github.com/leandrodaf/seqtree/sdk/contracts"
)

// ErrCaptureUnavailable is returned by every call on a non-Windows system.
var ErrCaptureUnavailable = errors.New("winmm capture is not available on this platform")

type dummyMIDIClient struct {
	logger contracts.Logger
}

// NewMIDIClient returns a client whose device calls fail with ErrCaptureUnavailable.
func NewMIDIClient(options *contracts.ClientOptions) (contracts.ClientMIDI, error) {
	options.Logger.Debug("Using dummy winmm client")
	return &dummyMIDIClient{logger: options.Logger}, nil
}

// ListDevices always fails with ErrCaptureUnavailable.
func (m *dummyMIDIClient) ListDevices() ([]contracts.DeviceInfo, error) {
	return nil, ErrCaptureUnavailable
}

// SelectDevice always fails with ErrCaptureUnavailable.
func (m *dummyMIDIClient) SelectDevice(int) error {
	return ErrCaptureUnavailable
}

// StartCapture only logs; nothing is ever delivered.
func (m *dummyMIDIClient) StartCapture(chan contracts.MIDI) {
	m.logger.Warn("StartCapture called on dummy winmm client")
}

// Stop is a no-op.
func (m *dummyMIDIClient) Stop() error {
	return nil
}
