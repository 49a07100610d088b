package interact

import (
	"sync"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// KeyPress invokes an action whenever one exact key is pressed while enabled
type KeyPress struct {
	d       *Dispatcher
	binding key.Binding
	action  func(tea.KeyMsg)
	capture bool

	mu     sync.Mutex
	remove func()
}

// KeyOption configures a KeyPress
type KeyOption func(*keyPressConfig)

type keyPressConfig struct {
	enabled bool
	capture bool
}

// KeyEnabled sets the initial enabled state (default true)
func KeyEnabled(enabled bool) KeyOption {
	return func(c *keyPressConfig) { c.enabled = enabled }
}

// KeyCapture runs the action before the focused component sees the key
func KeyCapture(capture bool) KeyOption {
	return func(c *keyPressConfig) { c.capture = capture }
}

// NewKeyPress listens for keyName, spelled as tea.KeyMsg.String() spells it
// ("esc", "enter", "ctrl+c", "t").
func NewKeyPress(d *Dispatcher, keyName string, action func(tea.KeyMsg), opts ...KeyOption) *KeyPress {
	cfg := keyPressConfig{enabled: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	k := &KeyPress{
		d:       d,
		binding: key.NewBinding(key.WithKeys(keyName)),
		action:  action,
		capture: cfg.capture,
	}
	if cfg.enabled {
		k.remove = d.Add(KindKeyDown, k.capture, k.handle)
	}
	return k
}

func (k *KeyPress) handle(ev *Event) {
	msg, ok := ev.Msg.(tea.KeyMsg)
	if !ok || !key.Matches(msg, k.binding) {
		return
	}
	k.action(msg)
}

// SetEnabled attaches or detaches the listener
func (k *KeyPress) SetEnabled(enabled bool) {
	k.mu.Lock()
	defer k.mu.Unlock()
	switch {
	case enabled && k.remove == nil:
		k.remove = k.d.Add(KindKeyDown, k.capture, k.handle)
	case !enabled && k.remove != nil:
		k.remove()
		k.remove = nil
	}
}

// Enabled reports whether the listener is attached
func (k *KeyPress) Enabled() bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.remove != nil
}

// Close detaches the listener for good
func (k *KeyPress) Close() {
	k.SetEnabled(false)
}
