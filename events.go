package popover

import "fmt"

// EventKind identifies a point in a transition's lifecycle.
type EventKind uint8

const (
	EventStarted     EventKind = iota // a new transition group was created
	EventInterrupted                  // a pan paused the group for scrubbing
	EventReleased                     // the pan ended; the group continues to its target
	EventReversed                     // the pan was cancelled; the group returns to its start
	EventCompleted                    // every member finished; the group was cleared
)

func (k EventKind) String() string {
	switch k {
	case EventStarted:
		return "started"
	case EventInterrupted:
		return "interrupted"
	case EventReleased:
		return "released"
	case EventReversed:
		return "reversed"
	case EventCompleted:
		return "completed"
	default:
		return fmt.Sprintf("EventKind(%d)", uint8(k))
	}
}

// TransitionEvent describes one lifecycle step of a transition.
type TransitionEvent struct {
	Kind EventKind
	// From is the state the card was in when the transition began; To is the
	// transition's target. For EventCompleted at PositionStart, the card
	// remains in From.
	From, To CardState
	Fraction float64
	Position Position // valid for EventCompleted
}

// EventSink receives transition events. Implementations run on the
// controller's goroutine and must not call back into the controller.
type EventSink interface {
	Emit(event TransitionEvent)
}

// EventSinkFunc adapts a plain function to EventSink.
type EventSinkFunc func(TransitionEvent)

// Emit calls f(event).
func (f EventSinkFunc) Emit(event TransitionEvent) { f(event) }
