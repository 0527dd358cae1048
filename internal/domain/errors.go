package domain

import "errors"

// Kind classifies an Error so callers can react to the failure class
// without string-matching messages.
type Kind string

const (
	KindConfig              Kind = "Config Error"
	KindToken               Kind = "Token Error"
	KindTarget              Kind = "Missing Div Error"
	KindDecode              Kind = "Token Decode Error"
	KindMissingRoom         Kind = "Missing Room Error"
	KindMissingStream       Kind = "Missing Streamname Error"
	KindMissingTenant       Kind = "Missing Group Error"
	KindTokenNotYetValid    Kind = "Token Not Yet Valid Error"
	KindTokenExpired        Kind = "Token Expired Error"
	KindInvalidState        Kind = "Invalid State Error"
	KindNoActiveSession     Kind = "No Active Session Error"
	KindNotAuthorized       Kind = "Not Authorized Error"
	KindDeviceNotFound      Kind = "Device Not Found Error"
	KindParticipantNotFound Kind = "Participant Not Found Error"
	KindProfiles            Kind = "Transcoding Profiles Error"
	KindInput               Kind = "Input Error"
	KindRemote              Kind = "Remote Call Error"
)

// Error is the failure shape every operation surfaces: a kind plus a
// human-readable message. It marshals to {"error": ..., "message": ...}.
type Error struct {
	Kind    Kind   `json:"error"`
	Message string `json:"message"`
}

func NewError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func (e *Error) Error() string {
	return string(e.Kind) + ": " + e.Message
}

// KindOf extracts the Kind from err, or "" if err is not a domain Error.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}
