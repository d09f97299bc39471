package engine

import "fmt"

// EventType identifies a runtime or scene notification
type EventType int

const (
	// EventBoot is emitted once by StartWithScene before the first frame is requested
	EventBoot EventType = iota
	// EventBooted follows EventBoot after the renderer has been initialized
	EventBooted
	// EventPaused fires on the transition from no active pause reason to at least one
	// Payload: string reason that caused the transition
	EventPaused
	// EventResumed fires when the last pause reason clears or on forced resume
	// Payload: string reason, empty when forced
	EventResumed
	// EventResize fires after the runtime applied a new view size
	// Payload: viewport.Result
	EventResize
	// EventSceneChanged fires on the runtime emitter after a pending swap was applied
	// Payload: string name of the new scene
	EventSceneChanged
	// EventSpiral fires when the scheduler discards accumulated time in a recovery frame
	// Payload: time.Duration of discarded simulation time
	EventSpiral

	// Scene emitter events

	// EventAwake fires after subsystems and scene logic ran their awake callbacks
	EventAwake
	// EventFreeze fires before subsystems and scene logic run their freeze callbacks
	EventFreeze
	// EventPreUpdate completes the pre-update phase, payload time.Duration step
	EventPreUpdate
	// EventUpdate completes the update phase, payload time.Duration step
	EventUpdate
	// EventPostUpdate completes the post-update phase, payload time.Duration step
	EventPostUpdate
)

var eventTypeNames = map[EventType]string{
	EventBoot:         "boot",
	EventBooted:       "booted",
	EventPaused:       "pause",
	EventResumed:      "resume",
	EventResize:       "resize",
	EventSceneChanged: "sceneChanged",
	EventSpiral:       "spiral",
	EventAwake:        "awake",
	EventFreeze:       "freeze",
	EventPreUpdate:    "preUpdate",
	EventUpdate:       "update",
	EventPostUpdate:   "postUpdate",
}

// String returns the notification name
func (t EventType) String() string {
	if name, ok := eventTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("EventType(%d)", int(t))
}

// Event is a single notification delivered synchronously to listeners
type Event struct {
	Type    EventType
	Payload any
}
