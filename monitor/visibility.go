package monitor

import "sync"

// VisibilitySignal fans "the application surface became visible again"
// events out to subscribers. The presentation layer calls Notify when its
// window or tab regains visibility; the session monitor re-checks the
// session on every such event.
type VisibilitySignal struct {
	lock      sync.Mutex
	nextID    int
	listeners map[int]func()
}

// NewVisibilitySignal creates an empty signal.
func NewVisibilitySignal() *VisibilitySignal {
	return &VisibilitySignal{listeners: make(map[int]func())}
}

// Subscribe registers callback for visibility events and returns a cleanup
// function that removes exactly this registration. Every call yields its
// own independent listener and cleanup pair.
func (vs *VisibilitySignal) Subscribe(callback func()) func() {
	vs.lock.Lock()
	defer vs.lock.Unlock()
	id := vs.nextID
	vs.nextID++
	vs.listeners[id] = callback

	return func() {
		vs.lock.Lock()
		defer vs.lock.Unlock()
		delete(vs.listeners, id)
	}
}

// Notify invokes every registered callback. Callbacks run outside the
// signal's lock so they may subscribe or unsubscribe while handling the
// event.
func (vs *VisibilitySignal) Notify() {
	vs.lock.Lock()
	callbacks := make([]func(), 0, len(vs.listeners))
	for _, cb := range vs.listeners {
		callbacks = append(callbacks, cb)
	}
	vs.lock.Unlock()

	for _, cb := range callbacks {
		cb()
	}
}
