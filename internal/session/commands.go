package session

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/nanomeet/nanomeet-go/internal/core"
	"github.com/nanomeet/nanomeet-go/internal/domain"
)

// Lobby mode requires a room password; this one is set when the caller
// enables the lobby without choosing one.
const lobbyDefaultPassword = "changeme"

// Playback holds the viewer-facing URLs of a running broadcast.
type Playback struct {
	Live string `json:"live"`
	VOD  string `json:"vod,omitempty"`
}

// Broadcast describes where a broadcast ingests and plays back.
type Broadcast struct {
	NanoStream string   `json:"nanoStream"`
	Playback   Playback `json:"playback"`
}

// RoomAccess reports the lobby/password state after a change.
type RoomAccess struct {
	Lobby    bool   `json:"lobby"`
	Password string `json:"password"`
}

// AudioSelection reports the device applied by SetAudioDevice.
type AudioSelection struct {
	Type     domain.AudioDirection `json:"type"`
	DeviceID string                `json:"deviceId"`
}

func (c *Controller) requireActive() error {
	if c.state != domain.StateActive || c.widget == nil {
		return domain.NewError(domain.KindInvalidState,
			fmt.Sprintf("the command requires an active session, state is %s", c.state))
	}
	return nil
}

func (c *Controller) requireModerator(what string) error {
	if !c.desc.Moderator {
		return domain.NewError(domain.KindNotAuthorized, "you do not have access to "+what)
	}
	return nil
}

// StartBroadcast sends the conference to the ingest endpoint. With
// record set the stream goes to the recording path and the result also
// carries a VOD playback URL.
func (c *Controller) StartBroadcast(record bool) (Broadcast, error) {
	if err := c.requireActive(); err != nil {
		return Broadcast{}, err
	}

	mode := "live"
	if record {
		mode = "rec"
	}
	ingest := fmt.Sprintf("%s/%s/%s", c.cfg.IngestURL, mode, c.desc.Streamname)

	if err := c.widget.ExecuteCommand("startRecording", map[string]any{
		"mode":          "stream",
		"rtmpStreamKey": ingest,
	}); err != nil {
		return Broadcast{}, err
	}

	result := Broadcast{
		NanoStream: ingest,
		Playback: Playback{
			Live: fmt.Sprintf("%s?bintu.streamname=%s", c.cfg.PlayerURL, c.desc.Streamname),
		},
	}
	if record {
		result.Playback.VOD = fmt.Sprintf("%s/%s.mp4", c.cfg.VodURL, c.desc.Streamname)
	}
	log.Info().Str("module", "session").Str("ingest", ingest).Bool("record", record).Msg("broadcast started")
	return result, nil
}

// StopBroadcast ends a running broadcast.
func (c *Controller) StopBroadcast() error {
	if err := c.requireActive(); err != nil {
		return err
	}
	return c.widget.ExecuteCommand("stopRecording", "stream")
}

// SetSubject sets the room subject shown to participants.
func (c *Controller) SetSubject(subject string) error {
	if err := c.requireActive(); err != nil {
		return err
	}
	if subject == "" {
		return domain.NewError(domain.KindInput, "please provide a valid subject")
	}
	return c.widget.ExecuteCommand("subject", subject)
}

// SetAudioDevice switches the session to the named device after
// checking it is actually present in the widget's enumeration.
func (c *Controller) SetAudioDevice(ctx context.Context, dir domain.AudioDirection, id string) (AudioSelection, error) {
	if err := c.requireActive(); err != nil {
		return AudioSelection{}, err
	}
	if id == "" {
		return AudioSelection{}, domain.NewError(domain.KindInput, "please provide the id of the audio device you want to set up")
	}

	devices, err := c.widget.AvailableDevices(ctx)
	if err != nil {
		return AudioSelection{}, domain.NewError(domain.KindRemote, "the devices could not be fetched")
	}

	var pool []core.Device
	var apply func(string) error
	switch dir {
	case domain.AudioInput:
		pool, apply = devices.AudioInput, c.widget.SetAudioInputDevice
	case domain.AudioOutput:
		pool, apply = devices.AudioOutput, c.widget.SetAudioOutputDevice
	default:
		return AudioSelection{}, domain.NewError(domain.KindInput, "please provide a valid type of the audio you want to change")
	}

	if !deviceKnown(pool, id) {
		return AudioSelection{}, domain.NewError(domain.KindDeviceNotFound,
			fmt.Sprintf("no %s device with id %q", dir, id))
	}
	if err := apply(id); err != nil {
		return AudioSelection{}, err
	}
	return AudioSelection{Type: dir, DeviceID: id}, nil
}

func deviceKnown(pool []core.Device, id string) bool {
	for _, d := range pool {
		if d.DeviceID == id {
			return true
		}
	}
	return false
}

// SetMainParticipant pins the participant onto the large video after
// checking the id against the current roster.
func (c *Controller) SetMainParticipant(id string) error {
	if err := c.requireActive(); err != nil {
		return err
	}
	if id == "" {
		return domain.NewError(domain.KindInput, "please provide a participant id")
	}
	for _, p := range c.widget.ParticipantsInfo() {
		if p.ParticipantID == id {
			return c.widget.SetLargeVideoParticipant(id)
		}
	}
	return domain.NewError(domain.KindParticipantNotFound,
		fmt.Sprintf("no participant with id %q", id))
}

// PinParticipant pins the participant so their video is always
// received. An empty id falls back to dominant-speaker selection.
func (c *Controller) PinParticipant(id string) error {
	if err := c.requireActive(); err != nil {
		return err
	}
	return c.widget.PinParticipant(id)
}

// Participants lists the current roster.
func (c *Controller) Participants() ([]core.Participant, error) {
	if err := c.requireActive(); err != nil {
		return nil, err
	}
	return c.widget.ParticipantsInfo(), nil
}

// AvailableDevices lists the devices the widget can use.
func (c *Controller) AvailableDevices(ctx context.Context) (core.DeviceMap, error) {
	if err := c.requireActive(); err != nil {
		return core.DeviceMap{}, err
	}
	devices, err := c.widget.AvailableDevices(ctx)
	if err != nil {
		return core.DeviceMap{}, domain.NewError(domain.KindRemote, "could not get available devices")
	}
	return devices, nil
}

// CurrentDevices lists the devices currently selected.
func (c *Controller) CurrentDevices(ctx context.Context) (core.DeviceMap, error) {
	if err := c.requireActive(); err != nil {
		return core.DeviceMap{}, err
	}
	devices, err := c.widget.CurrentDevices(ctx)
	if err != nil {
		return core.DeviceMap{}, domain.NewError(domain.KindRemote, "could not get current devices")
	}
	return devices, nil
}

// SetLobby turns the lobby on or off. Moderators only. Turning it on
// also sets the default room password, turning it off clears it.
func (c *Controller) SetLobby(on bool) (RoomAccess, error) {
	if err := c.requireActive(); err != nil {
		return RoomAccess{}, err
	}
	if err := c.requireModerator("turn the lobby on or off"); err != nil {
		return RoomAccess{}, err
	}

	password := ""
	if on {
		password = lobbyDefaultPassword
	}
	if err := c.widget.ExecuteCommand("password", password); err != nil {
		return RoomAccess{}, err
	}
	if err := c.widget.ExecuteCommand("toggleLobby", on); err != nil {
		return RoomAccess{}, err
	}
	return RoomAccess{Lobby: on, Password: password}, nil
}

// SetPassword sets the room password. Moderators only. A non-empty
// password also enables the lobby, an empty one disables it.
func (c *Controller) SetPassword(password string) (RoomAccess, error) {
	if err := c.requireActive(); err != nil {
		return RoomAccess{}, err
	}
	if err := c.requireModerator("change or set the password"); err != nil {
		return RoomAccess{}, err
	}

	if err := c.widget.ExecuteCommand("password", password); err != nil {
		return RoomAccess{}, err
	}
	lobby := password != ""
	if err := c.widget.ExecuteCommand("toggleLobby", lobby); err != nil {
		return RoomAccess{}, err
	}
	return RoomAccess{Lobby: lobby, Password: password}, nil
}

// MuteEveryone mutes every participant in the room.
func (c *Controller) MuteEveryone() error {
	if err := c.requireActive(); err != nil {
		return err
	}
	return c.widget.ExecuteCommand("muteEveryone")
}
