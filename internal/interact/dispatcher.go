// Package interact provides document-level input listeners for the TUI:
// outside-click detection and single-key press detection.
package interact

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// Kind is the input event family a listener subscribes to
type Kind int

const (
	KindClick Kind = iota
	KindKeyDown
)

// kindOf classifies a message; ok is false for messages listeners never see
func kindOf(msg tea.Msg) (Kind, bool) {
	switch m := msg.(type) {
	case tea.KeyMsg:
		return KindKeyDown, true
	case tea.MouseMsg:
		if m.Action == tea.MouseActionPress && !tea.MouseEvent(m).IsWheel() {
			return KindClick, true
		}
	}
	return 0, false
}

// Event wraps a message travelling through the dispatcher
type Event struct {
	Msg     tea.Msg
	stopped bool
}

// StopPropagation keeps the event from reaching later phases
func (e *Event) StopPropagation() {
	e.stopped = true
}

// Stopped reports whether a listener stopped the event
func (e *Event) Stopped() bool {
	return e.stopped
}

// Listener handles an event
type Listener func(*Event)

type registration struct {
	id      int
	kind    Kind
	capture bool
	fn      Listener
}

// Dispatcher routes input through capture listeners, then the target
// handler, then bubble listeners. Any stage may stop propagation.
type Dispatcher struct {
	mu        sync.Mutex
	nextID    int
	listeners []registration
}

// NewDispatcher creates an empty dispatcher
func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

// Add registers fn for kind in the capture or bubble phase and returns a
// function that removes it. Removing twice is harmless.
func (d *Dispatcher) Add(kind Kind, capture bool, fn Listener) func() {
	d.mu.Lock()
	id := d.nextID
	d.nextID++
	d.listeners = append(d.listeners, registration{id: id, kind: kind, capture: capture, fn: fn})
	d.mu.Unlock()

	return func() { d.remove(id) }
}

func (d *Dispatcher) remove(id int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, r := range d.listeners {
		if r.id == id {
			d.listeners = append(d.listeners[:i], d.listeners[i+1:]...)
			return
		}
	}
}

// Len returns the number of registered listeners
func (d *Dispatcher) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.listeners)
}

func (d *Dispatcher) snapshot(kind Kind, capture bool) []Listener {
	d.mu.Lock()
	defer d.mu.Unlock()
	var fns []Listener
	for _, r := range d.listeners {
		if r.kind == kind && r.capture == capture {
			fns = append(fns, r.fn)
		}
	}
	return fns
}

// Dispatch delivers msg and reports whether propagation was stopped.
// target may be nil. Messages that are neither key presses nor clicks go
// straight to target.
func (d *Dispatcher) Dispatch(msg tea.Msg, target Listener) bool {
	ev := &Event{Msg: msg}

	kind, ok := kindOf(msg)
	if !ok {
		if target != nil {
			target(ev)
		}
		return ev.stopped
	}

	for _, fn := range d.snapshot(kind, true) {
		fn(ev)
		if ev.stopped {
			return true
		}
	}

	if target != nil {
		target(ev)
		if ev.stopped {
			return true
		}
	}

	for _, fn := range d.snapshot(kind, false) {
		fn(ev)
		if ev.stopped {
			return true
		}
	}
	return false
}
