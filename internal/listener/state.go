package listener

// State is the lifecycle phase of the insert listener
type State int32

const (
	StateConnecting State = iota
	StateListening
	StateProcessing
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateListening:
		return "listening"
	case StateProcessing:
		return "processing"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}
