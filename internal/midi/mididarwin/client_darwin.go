//go:build darwin
// +build darwin

package mididarwin

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/leandrodaf/seqtree/sdk/contracts"
	"github.com/youpy/go-coremidi"
)

// Error definitions for MIDI connection and handling issues.
var (
	ErrNoMIDIDevices        = errors.New("no MIDI devices found")
	ErrInvalidMIDIDevice    = errors.New("invalid MIDI device")
	ErrMIDIConnectionError  = errors.New("error connecting to MIDI device")
	ErrCreateInputPort      = errors.New("error creating input port")
	ErrIncompleteMIDIPacket = errors.New("incomplete MIDI packet")
)

// internalPortConnection is an interface for handling disconnection from a MIDI port.
type internalPortConnection interface {
	Disconnect()
}

// ClientMid records note messages from a CoreMIDI source on macOS.
type ClientMid struct {
	logger       contracts.Logger
	eventChannel atomic.Value               // chan contracts.MIDI, swapped on start and stop.
	client       coremidi.Client            // CoreMIDI client instance.
	inputPort    coremidi.InputPort         // Input port receiving packets.
	portConn     internalPortConnection     // Connection to the selected source.
	filter       *contracts.MIDIEventFilter // Commands kept while capturing.
	mu           sync.Mutex                 // Guards portConn, inputPort and capturing.
	capturing    bool
	wg           sync.WaitGroup // In-flight packet handlers.
	stopOnce     sync.Once
}

// NewMIDIClient creates the CoreMIDI client named by options.CoreMIDIConfig.
func NewMIDIClient(options *contracts.ClientOptions) (contracts.ClientMIDI, error) {
	client, err := coremidi.NewClient(options.CoreMIDIConfig.ClientName)
	if err != nil {
		return nil, err
	}
	options.Logger.Info("MIDI client created",
		options.Logger.Field().String("client", options.CoreMIDIConfig.ClientName))

	return &ClientMid{
		logger: options.Logger,
		client: client,
		filter: options.MIDIEventFilter,
	}, nil
}

// ListDevices returns every CoreMIDI source.
func (m *ClientMid) ListDevices() ([]contracts.DeviceInfo, error) {
	sources, err := coremidi.AllSources()
	if err != nil {
		return nil, fmt.Errorf("error listing MIDI sources: %w", err)
	}
	if len(sources) == 0 {
		m.logger.Warn(ErrNoMIDIDevices.Error())
		return nil, ErrNoMIDIDevices
	}

	devices := make([]contracts.DeviceInfo, len(sources))
	for i, source := range sources {
		entity := source.Entity()
		devices[i] = contracts.DeviceInfo{
			ID:           i,
			Name:         source.Name(),
			EntityName:   entity.Name(),
			Manufacturer: entity.Manufacturer(),
		}
	}
	return devices, nil
}

// SelectDevice connects to the source at deviceID, dropping any previous connection.
func (m *ClientMid) SelectDevice(deviceID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	sources, err := coremidi.AllSources()
	if err != nil {
		return fmt.Errorf("error retrieving MIDI sources: %w", err)
	}
	if deviceID < 0 || deviceID >= len(sources) {
		m.logger.Error(ErrInvalidMIDIDevice.Error(), m.logger.Field().Int("deviceID", deviceID))
		return fmt.Errorf("%w: %d", ErrInvalidMIDIDevice, deviceID)
	}

	if m.portConn != nil {
		m.portConn.Disconnect()
		m.portConn = nil
	}

	source := sources[deviceID]
	m.logger.Info("MIDI device selected",
		m.logger.Field().Int("deviceID", deviceID),
		m.logger.Field().String("deviceName", source.Name()))

	m.inputPort, err = coremidi.NewInputPort(m.client, "Trunk Input", m.handlePacket)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCreateInputPort, err)
	}

	m.portConn, err = m.inputPort.Connect(source)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMIDIConnectionError, err)
	}
	return nil
}

// handlePacket splits a CoreMIDI packet into three-byte channel messages and forwards the
// ones the filter keeps. Running status is not expanded.
func (m *ClientMid) handlePacket(_ coremidi.Source, packet coremidi.Packet) {
	m.wg.Add(1)
	defer m.wg.Done()

	eventChannel, _ := m.eventChannel.Load().(chan contracts.MIDI)
	if eventChannel == nil {
		return
	}
	if len(packet.Data) < 3 {
		m.logger.Warn(ErrIncompleteMIDIPacket.Error(), m.logger.Field().Int("bytes", len(packet.Data)))
		return
	}

	now := uint64(time.Now().UTC().UnixNano())
	for i := 0; i+2 < len(packet.Data); i += 3 {
		event := contracts.MIDI{
			Timestamp: now,
			Status:    packet.Data[i],
			Key:       packet.Data[i+1],
			Velocity:  packet.Data[i+2],
		}
		if !m.filter.Allows(event.Command()) {
			continue
		}
		select {
		case eventChannel <- event:
		default:
			m.logger.Warn("Event buffer full; dropping MIDI event")
		}
	}
}

// StartCapture starts forwarding messages to eventChannel.
func (m *ClientMid) StartCapture(eventChannel chan contracts.MIDI) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if eventChannel == nil {
		m.logger.Error("StartCapture called with nil eventChannel")
		return
	}
	if m.capturing {
		m.logger.Warn("Capture already started; switching channel")
	}

	m.logger.Info("Starting MIDI event capture")
	m.eventChannel.Store(eventChannel)
	m.capturing = true
}

// Stop disconnects the source and waits for in-flight packets. Only the first call
// has an effect.
func (m *ClientMid) Stop() error {
	m.stopOnce.Do(func() {
		m.mu.Lock()
		defer m.mu.Unlock()

		if m.portConn != nil {
			m.portConn.Disconnect()
			m.portConn = nil
		}
		if m.capturing {
			m.capturing = false
			// A nil channel of the stored type makes late handlers return early.
			m.eventChannel.Store((chan contracts.MIDI)(nil))
		}
		m.wg.Wait()
		m.logger.Info("MIDI capture stopped")
	})
	return nil
}
