package keyer

// Event is an input signal consumed by the controller.
type Event uint8

// Input events.
const (
	PressStart Event = iota + 1
	PressEnd
	ResetTranscript
	DeleteLast
)

func (e Event) String() string {
	switch e {
	case PressStart:
		return "press-start"
	case PressEnd:
		return "press-end"
	case ResetTranscript:
		return "reset-transcript"
	case DeleteLast:
		return "delete-last"
	default:
		return "unknown"
	}
}

// State describes where the controller is in composing a character.
type State uint8

// Controller states.
const (
	// Idle means the key is up and no character is pending.
	Idle State = iota
	// Composing means the key is held.
	Composing
	// Armed means a symbol was keyed and the idle timer is running.
	Armed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Composing:
		return "composing"
	case Armed:
		return "armed"
	default:
		return "unknown"
	}
}

// ToneSink receives advisory tone signals while the key is held.
type ToneSink interface {
	ToneStart()
	ToneStop()
}
