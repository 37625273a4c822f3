package menu

// State is the lifecycle state of an item. Opening and Closing are the
// in-flight variants of Open and Closed while the child container's effect
// runs.
type State int

const (
	Closed State = iota
	Open
	Opening
	Closing
)

func (s State) String() string {
	switch s {
	case Closed:
		return "closed"
	case Open:
		return "open"
	case Opening:
		return "opening"
	case Closing:
		return "closing"
	default:
		return "unknown"
	}
}

// Opened reports whether the item counts as open.
func (s State) Opened() bool {
	return s == Open || s == Opening
}

// Animating reports whether an effect for the item is in flight.
func (s State) Animating() bool {
	return s == Opening || s == Closing
}

// Event drives the state machine.
type Event int

const (
	EventOpen Event = iota
	EventClose
	EventEffectStart
	EventEffectEnd
)

func (e Event) String() string {
	switch e {
	case EventOpen:
		return "open"
	case EventClose:
		return "close"
	case EventEffectStart:
		return "effect-start"
	case EventEffectEnd:
		return "effect-end"
	default:
		return "unknown"
	}
}

// transitions is the complete transition table. A missing entry is a
// rejected transition: it has no observable effect.
var transitions = map[State]map[Event]State{
	Closed: {
		EventOpen:        Open,
		EventEffectStart: Closing,
	},
	Open: {
		EventClose:       Closed,
		EventEffectStart: Opening,
	},
	Opening: {
		EventEffectEnd: Open,
	},
	Closing: {
		EventEffectEnd: Closed,
	},
}

// Next returns the state reached from s on e, and false if the table has
// no such transition.
func (s State) Next(e Event) (State, bool) {
	next, ok := transitions[s][e]
	return next, ok
}
