// Package signal provides the single-threaded multicast pub/sub primitive
// used throughout scenegraph for destroy notifications, damage-relevant
// state changes, and buffer lifecycle events.
//
// It is grounded in the listener-list idiom used across the pack (see
// cogentcore.org/core/events.Listeners: Add(type, func)/Call(event)) but
// trimmed to a single-event-type generic signal, safe for emission-time
// mutation, and with no locking — scenegraph is documented single-threaded
// cooperative (spec §5), so a mutex here would be pure overhead.
package signal

// Signal is a multicast handler list for a single event carrying a value
// of type T. The zero value is ready to use.
//
// Handlers may unregister themselves or other handlers, and new handlers
// may be added, during Emit without corrupting the in-progress dispatch:
// Emit iterates over a stable snapshot taken at the start of the call.
type Signal[T any] struct {
	handlers []*handler[T]
	nextID   uint64
}

type handler[T any] struct {
	id      uint64
	fn      func(T)
	removed bool
}

// Token identifies a registered handler for later removal via Remove.
type Token uint64

// Add registers fn to be called on every future Emit and returns a Token
// that can be passed to Remove to unregister it.
func (s *Signal[T]) Add(fn func(T)) Token {
	s.nextID++
	h := &handler[T]{id: s.nextID, fn: fn}
	s.handlers = append(s.handlers, h)
	return Token(h.id)
}

// Remove unregisters the handler identified by tok. It is a no-op if the
// token is unknown or already removed. It is safe to call during an
// in-progress Emit: the handler is marked removed, so that dispatch skips
// it, and it is dropped from the handler list immediately.
func (s *Signal[T]) Remove(tok Token) {
	for i, h := range s.handlers {
		if h.id == uint64(tok) {
			h.removed = true
			s.handlers = append(s.handlers[:i], s.handlers[i+1:]...)
			return
		}
	}
}

// Emit calls every currently-registered handler with val, in registration
// order, using a snapshot of the handler list so that Add/Remove calls
// made by a handler do not affect the handlers visited during this Emit.
func (s *Signal[T]) Emit(val T) {
	snapshot := make([]*handler[T], len(s.handlers))
	copy(snapshot, s.handlers)
	for _, h := range snapshot {
		if h.removed {
			continue
		}
		h.fn(val)
	}
}

// Len reports the number of currently registered handlers.
func (s *Signal[T]) Len() int {
	return len(s.handlers)
}
