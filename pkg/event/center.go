package event

import (
	"fmt"
	"slices"

	"github.com/yaklabco/mdlive/pkg/device"
)

// Handler handles a dispatched event.
type Handler func(ev Event) error

// Center is a synchronous publish/subscribe bus. Handlers run in
// subscription order on the dispatching goroutine. A handler must not
// subscribe or reset other handlers while a dispatch is running.
//
// Center is not safe for concurrent use.
type Center struct {
	handlers  map[Name][]Handler
	listeners []attachment
}

// attachment records one device listener installed through the center.
type attachment struct {
	target device.Target
	typ    device.Type
	id     device.ListenerID
}

// NewCenter creates an empty center.
func NewCenter() *Center {
	return &Center{handlers: make(map[Name][]Handler)}
}

// Subscribe appends h to the handlers of name.
func (c *Center) Subscribe(name Name, h Handler) {
	c.handlers[name] = append(c.handlers[name], h)
}

// On subscribes fn to events of type T.
func On[T Event](c *Center, fn func(T) error) {
	var zero T
	c.Subscribe(zero.Name(), func(ev Event) error {
		typed, ok := ev.(T)
		if !ok {
			return nil
		}
		return fn(typed)
	})
}

// Dispatch calls every handler subscribed to the event's name. The first
// handler error stops the dispatch and is returned.
func (c *Center) Dispatch(ev Event) error {
	for _, h := range slices.Clone(c.handlers[ev.Name()]) {
		if err := h(ev); err != nil {
			return fmt.Errorf("dispatch %s: %w", ev.Name(), err)
		}
	}
	return nil
}

// HandlerCount returns the number of handlers subscribed to name.
func (c *Center) HandlerCount(name Name) int {
	return len(c.handlers[name])
}

// AttachDeviceEvent installs l on target and records it for DetachAll.
func (c *Center) AttachDeviceEvent(target device.Target, typ device.Type, l device.Listener) {
	id := target.AddListener(typ, l)
	c.listeners = append(c.listeners, attachment{target: target, typ: typ, id: id})
}

// ListenerCount returns the number of recorded device listeners.
func (c *Center) ListenerCount() int {
	return len(c.listeners)
}

// DetachAll removes every device listener installed through the center.
func (c *Center) DetachAll() {
	for _, a := range c.listeners {
		a.target.RemoveListener(a.typ, a.id)
	}
	c.listeners = nil
}

// Reset drops every subscription.
func (c *Center) Reset() {
	clear(c.handlers)
}
