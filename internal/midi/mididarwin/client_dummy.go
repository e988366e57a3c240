//go:build !darwin
// +build !darwin

package mididarwin

import (
	"errors"

	"github.com/leandrodaf/seqtree/sdk/contracts"
)

// ErrCaptureUnavailable is returned by every call on a non-macOS system.
var ErrCaptureUnavailable = errors.New("CoreMIDI capture is not available on this platform")

type DummyMIDIClient struct {
	logger contracts.Logger
}

func NewMIDIClient(options *contracts.ClientOptions) (contracts.ClientMIDI, error) {
	options.Logger.Debug("Using dummy CoreMIDI client")
	return &DummyMIDIClient{logger: options.Logger}, nil
}

func (m *DummyMIDIClient) ListDevices() ([]contracts.DeviceInfo, error) {
	return nil, ErrCaptureUnavailable
}

func (m *DummyMIDIClient) SelectDevice(int) error {
	return ErrCaptureUnavailable
}

func (m *DummyMIDIClient) StartCapture(chan contracts.MIDI) {
	m.logger.Warn("StartCapture called on dummy CoreMIDI client")
}

func (m *DummyMIDIClient) Stop() error {
	return nil
}
