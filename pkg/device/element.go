package device

// Element is an in-memory Target. Listeners for one type run in the order
// they were added.
type Element struct {
	next      ListenerID
	listeners map[Type][]entry
}

type entry struct {
	id ListenerID
	fn Listener
}

var _ Target = (*Element)(nil)

// NewElement creates a target with no listeners.
func NewElement() *Element {
	return &Element{listeners: make(map[Type][]entry)}
}

// AddListener installs l for typ and returns its handle.
func (e *Element) AddListener(typ Type, l Listener) ListenerID {
	e.next++
	e.listeners[typ] = append(e.listeners[typ], entry{id: e.next, fn: l})
	return e.next
}

// RemoveListener uninstalls the listener with the given handle.
func (e *Element) RemoveListener(typ Type, id ListenerID) {
	list := e.listeners[typ]
	for i, en := range list {
		if en.id == id {
			e.listeners[typ] = append(list[:i:i], list[i+1:]...)
			break
		}
	}
	if len(e.listeners[typ]) == 0 {
		delete(e.listeners, typ)
	}
}

// ListenerCount returns the number of listeners installed for typ.
func (e *Element) ListenerCount(typ Type) int {
	return len(e.listeners[typ])
}

// Fire delivers ev to every listener of its type and reports whether the
// default action should run.
func (e *Element) Fire(ev *Event) bool {
	list := append([]entry(nil), e.listeners[ev.Type]...)
	for _, en := range list {
		en.fn(ev)
	}
	return !ev.DefaultPrevented()
}
