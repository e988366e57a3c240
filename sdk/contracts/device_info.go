package contracts

// DeviceInfo describes a MIDI input a trunk can be recorded from.
type DeviceInfo struct {
	ID           int    `json:"id"`           // Index accepted by ClientMIDI.SelectDevice.
	Name         string `json:"name"`         // Device name.
	Manufacturer string `json:"manufacturer"` // Device manufacturer.
	EntityName   string `json:"entity"`       // Name of the entity to which the device belongs.
}
