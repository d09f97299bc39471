package engine

import "sort"

// DefaultPauseReason is used when Pause or Resume receive an empty reason
const DefaultPauseReason = "untitled"

// PauseController tracks independent pause reasons
// The runtime is paused while at least one reason is active
// Notifications are edge-triggered: EventPaused on the first reason, EventResumed when the last clears
type PauseController struct {
	reasons map[string]struct{}
	events  *Emitter
}

// NewPauseController creates an unpaused controller emitting on events (may be nil)
func NewPauseController(events *Emitter) *PauseController {
	return &PauseController{
		reasons: make(map[string]struct{}),
		events:  events,
	}
}

// Pause activates reason
func (pc *PauseController) Pause(reason string) {
	if reason == "" {
		reason = DefaultPauseReason
	}

	wasPaused := len(pc.reasons) > 0
	pc.reasons[reason] = struct{}{}

	if !wasPaused {
		pc.emit(EventPaused, reason)
	}
}

// Resume clears reason, or every reason when force is set
// Forced resume always notifies, even when nothing was paused
func (pc *PauseController) Resume(reason string, force bool) {
	if force {
		clear(pc.reasons)
		pc.emit(EventResumed, "")
		return
	}

	if reason == "" {
		reason = DefaultPauseReason
	}
	if _, ok := pc.reasons[reason]; !ok {
		return
	}

	delete(pc.reasons, reason)
	if len(pc.reasons) == 0 {
		pc.emit(EventResumed, reason)
	}
}

// Paused reports whether any reason is active
func (pc *PauseController) Paused() bool {
	return len(pc.reasons) > 0
}

// IsPausedBy reports whether reason is currently active
func (pc *PauseController) IsPausedBy(reason string) bool {
	_, ok := pc.reasons[reason]
	return ok
}

// Reasons returns the active reasons in sorted order
func (pc *PauseController) Reasons() []string {
	out := make([]string, 0, len(pc.reasons))
	for r := range pc.reasons {
		out = append(out, r)
	}
	sort.Strings(out)
	return out
}

func (pc *PauseController) emit(t EventType, reason string) {
	if pc.events != nil {
		pc.events.Emit(t, reason)
	}
}
