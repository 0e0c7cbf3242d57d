package bus

type EventId uint8

const (
	TickEvent EventId = iota
	StateChangeEvent
	DiagnosticEvent
)

func (id EventId) String() string {
	switch id {
	case TickEvent:
		return "tick"
	case StateChangeEvent:
		return "state_change"
	case DiagnosticEvent:
		return "diagnostic"
	default:
		return "unknown"
	}
}
