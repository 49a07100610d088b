package interact

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// Rect is a screen region in terminal cells
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether the cell (x, y) lies inside the region
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// OutsideClick invokes an action for clicks landing outside a bound region.
// The listener is attached to the dispatcher only while enabled.
type OutsideClick struct {
	d      *Dispatcher
	action func()

	mu      sync.Mutex
	capture bool
	enabled bool
	region  *Rect
	remove  func()
}

// ClickOption configures an OutsideClick
type ClickOption func(*OutsideClick)

// WithCapture listens in the capture phase (default) or the bubble phase
func WithCapture(capture bool) ClickOption {
	return func(o *OutsideClick) { o.capture = capture }
}

// WithEnabled sets the initial enabled state (default true)
func WithEnabled(enabled bool) ClickOption {
	return func(o *OutsideClick) { o.enabled = enabled }
}

// NewOutsideClick creates the detector. Until Bind is called no click counts
// as outside.
func NewOutsideClick(d *Dispatcher, action func(), opts ...ClickOption) *OutsideClick {
	o := &OutsideClick{
		d:       d,
		action:  action,
		capture: true,
		enabled: true,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.enabled {
		o.attach()
	}
	return o
}

func (o *OutsideClick) attach() {
	if o.remove == nil {
		o.remove = o.d.Add(KindClick, o.capture, o.handle)
	}
}

func (o *OutsideClick) detach() {
	if o.remove != nil {
		o.remove()
		o.remove = nil
	}
}

func (o *OutsideClick) handle(ev *Event) {
	m, ok := ev.Msg.(tea.MouseMsg)
	if !ok {
		return
	}

	o.mu.Lock()
	region := o.region
	o.mu.Unlock()

	if region == nil || region.Contains(m.X, m.Y) {
		return
	}
	ev.StopPropagation()
	o.action()
}

// Bind sets the region clicks are measured against
func (o *OutsideClick) Bind(r Rect) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.region = &r
}

// Unbind clears the region; no click counts as outside until the next Bind
func (o *OutsideClick) Unbind() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.region = nil
}

// SetEnabled attaches or detaches the listener
func (o *OutsideClick) SetEnabled(enabled bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.enabled = enabled
	if enabled {
		o.attach()
	} else {
		o.detach()
	}
}

// Enabled reports whether the listener is attached
func (o *OutsideClick) Enabled() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.remove != nil
}

// SetCapture moves the listener between the capture and bubble phases
func (o *OutsideClick) SetCapture(capture bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.capture == capture {
		return
	}
	o.capture = capture
	if o.remove != nil {
		o.detach()
		o.attach()
	}
}

// Close detaches the listener for good
func (o *OutsideClick) Close() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.enabled = false
	o.detach()
}
