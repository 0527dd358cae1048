package domain

// AudioDirection selects which audio device of a session is addressed.
type AudioDirection string

const (
	AudioInput  AudioDirection = "input"
	AudioOutput AudioDirection = "output"
)

// ParseAudioDirection maps the wire value to an AudioDirection.
func ParseAudioDirection(s string) (AudioDirection, error) {
	switch AudioDirection(s) {
	case AudioInput:
		return AudioInput, nil
	case AudioOutput:
		return AudioOutput, nil
	default:
		return "", NewError(KindInput, "please provide a valid type of the audio you want to change")
	}
}
