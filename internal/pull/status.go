package pull

// Status is the refresh state of an Attacher.
type Status int32

const (
	// StatusIdle means no gesture is being tracked and no refresh is running.
	StatusIdle Status = iota

	// StatusDragging means a pull gesture is in progress and the header
	// follows the pointer.
	StatusDragging

	// StatusRefreshing means a refresh has started and is waiting for the
	// caller to signal completion.
	StatusRefreshing
)

// String returns the string representation of the status.
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusDragging:
		return "dragging"
	case StatusRefreshing:
		return "refreshing"
	default:
		return "unknown"
	}
}

// HeaderState is the visual state of the header reported to a HeaderObserver.
type HeaderState int

const (
	HeaderVisible HeaderState = iota
	HeaderMinimized
	HeaderHidden
)

func (s HeaderState) String() string {
	switch s {
	case HeaderVisible:
		return "visible"
	case HeaderMinimized:
		return "minimized"
	case HeaderHidden:
		return "hidden"
	default:
		return "unknown"
	}
}

// Action identifies the kind of a pointer sample.
type Action int

const (
	ActionDown Action = iota
	ActionMove
	ActionUp
	ActionCancel
)

func (a Action) String() string {
	switch a {
	case ActionDown:
		return "down"
	case ActionMove:
		return "move"
	case ActionUp:
		return "up"
	case ActionCancel:
		return "cancel"
	default:
		return "unknown"
	}
}

// PointerEvent is a single normalized pointer sample in surface coordinates.
type PointerEvent struct {
	Action Action
	X, Y   float64
}
