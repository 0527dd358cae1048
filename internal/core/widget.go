// Package core defines the capability interfaces the session controller
// drives. The conferencing widget is an external collaborator; adapters
// own the real thing, tests inject a double.
package core

import "context"

// Participant is a read-only roster entry reported by the widget.
type Participant struct {
	ParticipantID        string `json:"participantId"`
	DisplayName          string `json:"displayName"`
	FormattedDisplayName string `json:"formattedDisplayName"`
	Avatar               string `json:"avatar"`
}

// Device describes one media device known to the widget.
type Device struct {
	DeviceID string `json:"deviceId"`
	GroupID  string `json:"groupId"`
	Kind     string `json:"kind"`
	Label    string `json:"label"`
}

// DeviceMap groups devices by direction, as the widget enumerates them.
type DeviceMap struct {
	AudioInput  []Device `json:"audioInput"`
	AudioOutput []Device `json:"audioOutput"`
	VideoInput  []Device `json:"videoInput"`
}

// ConfigOverwrite carries widget config flags set at construction.
type ConfigOverwrite struct {
	DisableDeepLinking bool
	DynamicBrandingURL string
	// BrandingDataURL duplicates DynamicBrandingURL for older widget
	// builds that still read the legacy key.
	BrandingDataURL string
}

// InterfaceOverwrite carries widget UI flags set at construction.
type InterfaceOverwrite struct {
	MobileAppPromo     bool
	FilmStripMaxHeight int
	TileViewMaxColumns int
	VerticalFilmstrip  bool
}

// Setup is everything a widget needs to join a room.
type Setup struct {
	RoomName           string
	JWT                string
	Width              string
	Height             string
	ParentID           string
	ConfigOverwrite    ConfigOverwrite
	InterfaceOverwrite InterfaceOverwrite
}

// Widget is the embedded conference, reduced to the commands and queries
// the controller forwards. The handle is exclusively owned by one
// controller and must not be used after Dispose.
type Widget interface {
	ExecuteCommand(name string, args ...any) error
	AddEventListener(event string, handler func())
	Dispose()

	ParticipantsInfo() []Participant
	AvailableDevices(ctx context.Context) (DeviceMap, error)
	CurrentDevices(ctx context.Context) (DeviceMap, error)

	SetAudioInputDevice(id string) error
	SetAudioOutputDevice(id string) error
	SetLargeVideoParticipant(id string) error
	PinParticipant(id string) error
}

// WidgetFactory constructs a widget for a connection domain. It replaces
// dynamic script injection: the real adapter loads the remote widget,
// the test double returns a fake.
type WidgetFactory interface {
	Create(ctx context.Context, domain string, setup Setup) (Widget, error)
}
