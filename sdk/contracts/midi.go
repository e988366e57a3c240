package contracts

// MIDI is a raw three-byte channel message captured from an input device.
type MIDI struct {
	Timestamp uint64 // Capture time in nanoseconds since the Unix epoch.
	Status    byte   // Status byte, command in the high nibble and channel in the low nibble.
	Key       byte   // First data byte, the MIDI key for note messages.
	Velocity  byte   // Second data byte, the velocity for note messages.
}

// Command returns the status byte without its channel.
func (m MIDI) Command() MIDICommand {
	return MIDICommand(m.Status & 0xF0)
}

// Channel returns the zero-based channel of the message.
func (m MIDI) Channel() uint8 {
	return m.Status & 0x0F
}

// Raw returns the message as wire bytes.
func (m MIDI) Raw() []byte {
	return []byte{m.Status, m.Key, m.Velocity}
}

// ClientMIDI captures messages from a MIDI input device. It is the source a trunk
// sequence is recorded from.
type ClientMIDI interface {
	Stop() error                         // Stops the client and releases the device.
	ListDevices() ([]DeviceInfo, error)  // Lists all available input devices.
	SelectDevice(deviceID int) error     // Connects to an input device by index.
	StartCapture(eventChannel chan MIDI) // Starts delivering captured messages to eventChannel.
}
