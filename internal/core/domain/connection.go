package domain

// ConnectionState classifies backend availability. Transitions are
// driven solely by health-probe outcomes; fetch failures never change it.
type ConnectionState int

const (
	ConnectionUnknown ConnectionState = iota
	Connected
	Disconnected
)

func (s ConnectionState) String() string {
	switch s {
	case Connected:
		return "connected"
	case Disconnected:
		return "disconnected"
	default:
		return "unknown"
	}
}
