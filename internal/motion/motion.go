// Package motion produces declarative animation descriptors. It owns no
// timers; renderers sample descriptors with Progress.
package motion

import "sync"

// MiniScreenWidth is the widest viewport, in logical pixels, treated as a
// small screen. Small screens get no fade or stagger animations.
const MiniScreenWidth = 768

// Easing curves
const (
	EaseInOut = "easeInOut"
	EaseOut   = "easeOut"
	Linear    = "linear"
)

// Transition types
const (
	Tween  = "tween"
	Spring = "spring"
)

// Offset is a translation, either absolute cells (Value) or a percentage of
// the element size (Percent, when IsPercent).
type Offset struct {
	Value     float64
	Percent   float64
	IsPercent bool
}

// Px returns an absolute offset
func Px(v float64) Offset { return Offset{Value: v} }

// Pct returns an offset relative to the element size
func Pct(p float64) Offset { return Offset{Percent: p, IsPercent: true} }

// Resolve converts the offset to an absolute value for an element of size
func (o Offset) Resolve(size float64) float64 {
	if o.IsPercent {
		return size * o.Percent / 100
	}
	return o.Value
}

// Transition describes how a state is reached
type Transition struct {
	Duration        float64 // seconds
	Delay           float64 // seconds
	Ease            string
	Type            string
	StaggerChildren float64 // seconds between child reveals
	DelayChildren   float64 // seconds before the first child
	// OpacityDuration overrides Duration for opacity when > 0
	OpacityDuration float64
}

// State is one end of an animation
type State struct {
	X, Y       Offset
	Opacity    *float64
	Scale      *float64
	Transition Transition
}

// Variants pairs the hidden and shown states of an element
type Variants struct {
	Hidden State
	Show   State
}

func f(v float64) *float64 { return &v }

// Motion hands out animation descriptors for the current viewport. Results
// are recomputed only when the viewport crosses the small-screen boundary.
type Motion struct {
	mu       sync.Mutex
	mini     bool
	sized    bool
	fadeDown *Variants
	fadeUp   *Variants
	epoch    int
}

// New creates a Motion for a viewport width in logical pixels
func New(widthPx int) *Motion {
	m := &Motion{}
	m.Resize(widthPx)
	return m
}

// Resize updates the viewport width and reports whether the
// classification changed
func (m *Motion) Resize(widthPx int) bool {
	mini := widthPx <= MiniScreenWidth

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sized && m.mini == mini {
		return false
	}
	m.sized = true
	m.mini = mini
	m.epoch++
	m.fadeDown, m.fadeUp = nil, nil
	if !mini {
		m.fadeDown = fadeDown()
		m.fadeUp = fadeUp()
	}
	return true
}

// IsMiniScreen reports whether the viewport is a small screen
func (m *Motion) IsMiniScreen() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mini
}

// Epoch increments every time descriptors are recomputed
func (m *Motion) Epoch() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.epoch
}

func fadeDown() *Variants {
	return &Variants{
		Hidden: State{Y: Px(-25), Opacity: f(0)},
		Show: State{
			Y:       Px(0),
			Opacity: f(1),
			Transition: Transition{
				Duration:        0.5,
				Ease:            EaseOut,
				Type:            Tween,
				OpacityDuration: 0.625,
			},
		},
	}
}

func fadeUp() *Variants {
	return &Variants{
		Hidden: State{X: Px(50), Y: Px(50), Opacity: f(0)},
		Show: State{
			X:       Px(0),
			Y:       Px(0),
			Opacity: f(1),
			Transition: Transition{
				Duration: 0.4,
				Ease:     EaseOut,
				Type:     Tween,
			},
		},
	}
}

// FadeDown returns the fade-down descriptor, nil on small screens. The same
// pointer is returned until the classification changes.
func (m *Motion) FadeDown() *Variants {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fadeDown
}

// FadeUp returns the fade-up descriptor, nil on small screens
func (m *Motion) FadeUp() *Variants {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fadeUp
}

// StaggerContainer returns a container that reveals children one after
// another, nil on small screens
func (m *Motion) StaggerContainer(staggerChildren, delayChildren float64) *Variants {
	if m.IsMiniScreen() {
		return nil
	}
	return &Variants{
		Hidden: State{Opacity: f(0)},
		Show: State{
			Opacity: f(1),
			Transition: Transition{
				StaggerChildren: staggerChildren,
				DelayChildren:   delayChildren,
			},
		},
	}
}

// ZoomIn scales an element from scale to 1 while fading in
func (m *Motion) ZoomIn(scale, duration float64) *Variants {
	t := Transition{Duration: duration, Ease: EaseInOut}
	return &Variants{
		Hidden: State{Opacity: f(0), Scale: f(scale), Transition: t},
		Show:   State{Opacity: f(1), Scale: f(1), Transition: t},
	}
}

// SlideIn moves an element in from one side: "left", "right", "up" or
// "down". Up and down both start one element height below.
func (m *Motion) SlideIn(direction, typ string, delay, duration float64) *Variants {
	var x, y Offset
	switch direction {
	case "left":
		x = Pct(-100)
	case "right":
		x = Pct(100)
	case "up", "down":
		y = Pct(100)
	}

	return &Variants{
		Hidden: State{
			X:          x,
			Y:          y,
			Transition: Transition{Duration: duration, Ease: EaseInOut},
		},
		Show: State{
			X: Px(0),
			Y: Px(0),
			Transition: Transition{
				Type:     typ,
				Delay:    delay,
				Duration: duration,
				Ease:     EaseInOut,
			},
		},
	}
}
