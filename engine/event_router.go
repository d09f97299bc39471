package engine

// Listener receives notifications from an Emitter
type Listener func(Event)

// ListenerID identifies a registration for removal
type ListenerID uint64

type listenerEntry struct {
	id ListenerID
	fn Listener
}

// Emitter dispatches notifications to registered listeners
//
// Architecture:
//   - Single-threaded dispatch, listeners run on the scheduling goroutine
//   - Multiple listeners can register for the same event type
//   - Listeners are invoked in registration order
//   - Listener panics are not recovered
type Emitter struct {
	listeners map[EventType][]listenerEntry
	nextID    ListenerID
}

// NewEmitter creates an emitter with no listeners
func NewEmitter() *Emitter {
	return &Emitter{
		listeners: make(map[EventType][]listenerEntry),
	}
}

// On registers fn for events of type t
func (e *Emitter) On(t EventType, fn Listener) ListenerID {
	e.nextID++
	e.listeners[t] = append(e.listeners[t], listenerEntry{id: e.nextID, fn: fn})
	return e.nextID
}

// Once registers fn for a single delivery of type t
func (e *Emitter) Once(t EventType, fn Listener) ListenerID {
	var id ListenerID
	id = e.On(t, func(ev Event) {
		e.Off(t, id)
		fn(ev)
	})
	return id
}

// Off removes a listener, returns false when id was not registered for t
func (e *Emitter) Off(t EventType, id ListenerID) bool {
	entries := e.listeners[t]
	for i, entry := range entries {
		if entry.id == id {
			// Copy so an in-flight Emit keeps iterating its own snapshot
			next := make([]listenerEntry, 0, len(entries)-1)
			next = append(next, entries[:i]...)
			next = append(next, entries[i+1:]...)
			e.listeners[t] = next
			return true
		}
	}
	return false
}

// Emit delivers an event to every listener registered for its type
func (e *Emitter) Emit(t EventType, payload any) {
	entries := e.listeners[t]
	if len(entries) == 0 {
		return
	}
	ev := Event{Type: t, Payload: payload}
	for _, entry := range entries {
		entry.fn(ev)
	}
}

// ListenerCount returns the number of listeners registered for t
func (e *Emitter) ListenerCount(t EventType) int {
	return len(e.listeners[t])
}
