//go:build windows
// +build windows

package midiwindows

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
	"unsafe"

	"github.com/leandrodaf/seqtree/sdk/contracts"
	"golang.org/x/sys/windows"
)

// Error definitions for winmm failures.
var (
	ErrNoMIDIDevices     = errors.New("no MIDI devices found")
	ErrNoDeviceSelected  = errors.New("no MIDI device selected")
	ErrInvalidMIDIHandle = errors.New("invalid MIDI device handle")
)

// HMIDIIN is a winmm MIDI input handle.
type HMIDIIN windows.Handle

// Callback flags for midiInOpen.
const (
	CALLBACK_FUNCTION = 0x00030000
	MIDI_IO_STATUS    = 0x00000020
)

// Messages delivered to the input callback.
const (
	MIM_OPEN      = 0x3C1
	MIM_CLOSE     = 0x3C2
	MIM_DATA      = 0x3C3
	MIM_ERROR     = 0x3C5
	MIM_LONGERROR = 0x3C6
	MIM_MOREDATA  = 0x3CC
)

// midiInCaps mirrors MIDIINCAPSW.
type midiInCaps struct {
	wMid           uint16
	wPid           uint16
	vDriverVersion uint32
	szPname        [32]uint16
	dwSupport      uint32
}

// ClientMid records note messages from a winmm input device.
type ClientMid struct {
	logger       contracts.Logger
	eventChannel atomic.Value // chan contracts.MIDI
	handle       HMIDIIN
	connected    bool
	mu           sync.Mutex
	callback     uintptr
	filter       *contracts.MIDIEventFilter
}

var (
	winmm                = windows.NewLazySystemDLL("winmm.dll")
	procMidiInGetNumDevs = winmm.NewProc("midiInGetNumDevs")
	procMidiInGetDevCaps = winmm.NewProc("midiInGetDevCapsW")
	procMidiInOpen       = winmm.NewProc("midiInOpen")
	procMidiInStart      = winmm.NewProc("midiInStart")
	procMidiInStop       = winmm.NewProc("midiInStop")
	procMidiInClose      = winmm.NewProc("midiInClose")
)

// NewMIDIClient creates a winmm capture client.
func NewMIDIClient(options *contracts.ClientOptions) (contracts.ClientMIDI, error) {
	options.Logger.Info("MIDI client created for Windows")

	return &ClientMid{
		logger: options.Logger,
		filter: options.MIDIEventFilter,
	}, nil
}

// ListDevices lists the winmm input devices.
func (m *ClientMid) ListDevices() ([]contracts.DeviceInfo, error) {
	r0, _, _ := procMidiInGetNumDevs.Call()
	numDevices := uint32(r0)
	if numDevices == 0 {
		m.logger.Warn(ErrNoMIDIDevices.Error())
		return nil, ErrNoMIDIDevices
	}

	devices := make([]contracts.DeviceInfo, 0, numDevices)
	for i := uint32(0); i < numDevices; i++ {
		var caps midiInCaps
		r1, _, _ := procMidiInGetDevCaps.Call(
			uintptr(i),
			uintptr(unsafe.Pointer(&caps)),
			unsafe.Sizeof(caps),
		)
		if r1 != 0 {
			m.logger.Warn("Failed to read MIDI device capabilities", m.logger.Field().Int("deviceID", int(i)))
			continue
		}
		name := windows.UTF16ToString(caps.szPname[:])
		devices = append(devices, contracts.DeviceInfo{
			ID:           int(i),
			Name:         name,
			EntityName:   name,
			Manufacturer: fmt.Sprintf("MID: %d PID: %d", caps.wMid, caps.wPid),
		})
	}
	return devices, nil
}

// SelectDevice opens the input device at deviceID, closing any previous one.
func (m *ClientMid) SelectDevice(deviceID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.connected {
		if err := m.close(); err != nil {
			return fmt.Errorf("failed to close previous MIDI device: %w", err)
		}
	}

	m.callback = windows.NewCallback(midiInCallback)
	r1, _, err := procMidiInOpen.Call(
		uintptr(unsafe.Pointer(&m.handle)),
		uintptr(deviceID),
		m.callback,
		uintptr(unsafe.Pointer(m)),
		uintptr(CALLBACK_FUNCTION|MIDI_IO_STATUS),
	)
	if r1 != 0 {
		return fmt.Errorf("failed to open MIDI device %d: %v", deviceID, err)
	}

	m.connected = true
	m.logger.Info("MIDI device connected", m.logger.Field().Int("deviceID", deviceID))
	return nil
}

// StartCapture starts the device and forwards messages to eventChannel.
func (m *ClientMid) StartCapture(eventChannel chan contracts.MIDI) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.connected || m.handle == 0 {
		m.logger.Error("Cannot start capture", m.logger.Field().Error("error", ErrNoDeviceSelected))
		return
	}
	if ch, _ := m.eventChannel.Load().(chan contracts.MIDI); ch != nil {
		m.logger.Warn("Capture already started")
		return
	}

	m.eventChannel.Store(eventChannel)
	r1, _, err := procMidiInStart.Call(uintptr(m.handle))
	if r1 != 0 {
		m.logger.Error("Failed to start MIDI capture", m.logger.Field().Error("error", err))
		return
	}
	m.logger.Info("MIDI capture started")
}

// midiInCallback runs on a winmm thread for every input message.
func midiInCallback(hMidiIn uintptr, wMsg uint32, dwInstance uintptr, dwParam1 uintptr, dwParam2 uintptr) uintptr {
	m := (*ClientMid)(unsafe.Pointer(dwInstance))

	switch wMsg {
	case MIM_DATA:
		event := contracts.MIDI{
			Timestamp: uint64(time.Now().UTC().UnixNano()),
			Status:    byte(dwParam1 & 0xFF),
			Key:       byte((dwParam1 >> 8) & 0xFF),
			Velocity:  byte((dwParam1 >> 16) & 0xFF),
		}
		if !m.filter.Allows(event.Command()) {
			return 0
		}
		if ch, _ := m.eventChannel.Load().(chan contracts.MIDI); ch != nil {
			select {
			case ch <- event:
			default:
				m.logger.Warn("MIDI event channel is full; event discarded")
			}
		}
	case MIM_ERROR, MIM_LONGERROR:
		m.logger.Error("MIDI input error", m.logger.Field().Uint64("msg", uint64(wMsg)))
	case MIM_OPEN, MIM_CLOSE, MIM_MOREDATA:
	default:
		m.logger.Debug("Unknown MIDI message", m.logger.Field().Uint64("msg", uint64(wMsg)))
	}
	return 0
}

// Stop stops capture and closes the device.
func (m *ClientMid) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.connected {
		return nil
	}
	if err := m.close(); err != nil {
		return fmt.Errorf("failed to stop MIDI capture: %w", err)
	}
	m.logger.Info("MIDI capture stopped and device closed")
	return nil
}

func (m *ClientMid) close() error {
	if m.handle == 0 {
		return ErrInvalidMIDIHandle
	}

	if r1, _, err := procMidiInStop.Call(uintptr(m.handle)); r1 != 0 {
		return fmt.Errorf("midiInStop: %w", err)
	}
	if r1, _, err := procMidiInClose.Call(uintptr(m.handle)); r1 != 0 {
		return fmt.Errorf("midiInClose: %w", err)
	}

	m.connected = false
	m.handle = 0
	m.eventChannel.Store((chan contracts.MIDI)(nil))
	return nil
}
