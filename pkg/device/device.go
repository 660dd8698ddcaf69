// Package device describes the input-device contract the editor consumes:
// typed device events, targets that accept listeners and an in-memory
// target hosts and tests can fire events on.
package device

// Type names a device event.
type Type string

// Device event types the editor listens to.
const (
	KeyDown Type = "keydown"
	KeyUp   Type = "keyup"
	Click   Type = "click"
	Input   Type = "input"
)

// Key identifiers the editor recognizes.
const (
	KeyEnter      = "Enter"
	KeyArrowLeft  = "ArrowLeft"
	KeyArrowRight = "ArrowRight"
	KeyArrowUp    = "ArrowUp"
	KeyArrowDown  = "ArrowDown"
)

// IsArrow reports whether key is one of the four arrow keys.
func IsArrow(key string) bool {
	switch key {
	case KeyArrowLeft, KeyArrowRight, KeyArrowUp, KeyArrowDown:
		return true
	default:
		return false
	}
}

// Event is a single device event. Key is empty for click and input events.
type Event struct {
	Type Type
	Key  string

	defaultPrevented bool
}

// NewEvent creates an event of the given type.
func NewEvent(typ Type, key string) *Event {
	return &Event{Type: typ, Key: key}
}

// PreventDefault suppresses the target's default handling.
func (e *Event) PreventDefault() {
	e.defaultPrevented = true
}

// DefaultPrevented reports whether a listener called PreventDefault.
func (e *Event) DefaultPrevented() bool {
	return e.defaultPrevented
}

// Listener handles a device event.
type Listener func(ev *Event)

// ListenerID identifies an installed listener on a target.
type ListenerID uint64

// Target accepts device listeners.
type Target interface {
	AddListener(typ Type, l Listener) ListenerID
	RemoveListener(typ Type, id ListenerID)
}
