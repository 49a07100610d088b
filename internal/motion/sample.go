package motion

import "math"

// Frame is a variant evaluated at one point in time, with offsets resolved
// to absolute cells.
type Frame struct {
	X, Y    float64
	Opacity float64
	Scale   float64
	Done    bool
}

// Rest is the frame every element settles on
var Rest = Frame{Opacity: 1, Scale: 1, Done: true}

// Progress evaluates v at elapsed seconds for an element of w by h cells. A
// nil descriptor means no animation and yields Rest.
func Progress(v *Variants, elapsed, w, h float64) Frame {
	if v == nil {
		return Rest
	}

	tr := v.Show.Transition
	p := ease(tr.Ease, fraction(elapsed-tr.Delay, tr.Duration))
	op := p
	if tr.OpacityDuration > 0 {
		op = ease(tr.Ease, fraction(elapsed-tr.Delay, tr.OpacityDuration))
	}

	done := elapsed-tr.Delay >= math.Max(tr.Duration, tr.OpacityDuration)
	return Frame{
		X:       lerp(v.Hidden.X.Resolve(w), v.Show.X.Resolve(w), p),
		Y:       lerp(v.Hidden.Y.Resolve(h), v.Show.Y.Resolve(h), p),
		Opacity: lerp(value(v.Hidden.Opacity), value(v.Show.Opacity), op),
		Scale:   lerp(value(v.Hidden.Scale), value(v.Show.Scale), p),
		Done:    done,
	}
}

// ChildDelay returns when the child at index starts revealing inside a
// stagger container. Nil containers reveal everything at once.
func ChildDelay(container *Variants, index int) float64 {
	if container == nil {
		return 0
	}
	tr := container.Show.Transition
	return tr.DelayChildren + float64(index)*tr.StaggerChildren
}

func fraction(elapsed, duration float64) float64 {
	if duration <= 0 {
		if elapsed < 0 {
			return 0
		}
		return 1
	}
	return math.Min(math.Max(elapsed/duration, 0), 1)
}

func ease(name string, t float64) float64 {
	switch name {
	case EaseOut:
		return 1 - (1-t)*(1-t)
	case EaseInOut:
		if t < 0.5 {
			return 2 * t * t
		}
		return 1 - math.Pow(-2*t+2, 2)/2
	default:
		return t
	}
}

func lerp(a, b, t float64) float64 { return a + (b-a)*t }

// value treats an unset opacity or scale as 1
func value(p *float64) float64 {
	if p == nil {
		return 1
	}
	return *p
}
