package state

import "sync"

// changes counts state transitions and fans them out to listeners.
// The version is the re-render signal: it only moves on a real transition.
type changes struct {
	mu        sync.Mutex
	version   uint64
	nextID    int
	listeners map[int]func()
}

func (c *changes) bump() {
	c.mu.Lock()
	c.version++
	fns := make([]func(), 0, len(c.listeners))
	for _, fn := range c.listeners {
		fns = append(fns, fn)
	}
	c.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// Version returns the number of transitions so far
func (c *changes) Version() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.version
}

// OnChange registers fn to run after every transition and returns a
// function that unregisters it.
func (c *changes) OnChange(fn func()) func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.listeners == nil {
		c.listeners = make(map[int]func())
	}
	id := c.nextID
	c.nextID++
	c.listeners[id] = fn
	return func() {
		c.mu.Lock()
		delete(c.listeners, id)
		c.mu.Unlock()
	}
}
