package domain

// SessionState is the lifecycle position of a session controller.
type SessionState int

const (
	StateUninitialized SessionState = iota
	StateRejected
	StateConnecting
	StateActive
	StateClosed
)

func (s SessionState) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateRejected:
		return "rejected"
	case StateConnecting:
		return "connecting"
	case StateActive:
		return "active"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}
