package engine

import (
	"slices"
	"time"
)

// DefaultTag is the tag actors receive when added without one
const DefaultTag = "0"

// Actor is a live game object owned by exactly one tag list of a scene
// Implement by embedding ActorBase
type Actor interface {
	actorBase() *ActorBase
}

// Ticker marks an actor that wants a per-step Update call
type Ticker interface {
	Update(dt time.Duration)
}

// Behavior is a reusable unit of per-step logic queued on an actor
// Behaviors run before the actor's own Update
type Behavior interface {
	UpdateBehavior(a Actor, dt time.Duration)
}

// BehaviorFunc adapts a function to Behavior
type BehaviorFunc func(a Actor, dt time.Duration)

// UpdateBehavior calls f
func (f BehaviorFunc) UpdateBehavior(a Actor, dt time.Duration) { f(a, dt) }

// ActorBase carries the registry bookkeeping for an actor
type ActorBase struct {
	tag       string
	name      string
	removed   bool
	list      *tagList // owning list, nil when detached
	behaviors []Behavior
}

func (b *ActorBase) actorBase() *ActorBase { return b }

// Tag returns the tag of the list owning the actor
func (b *ActorBase) Tag() string { return b.tag }

// Name returns the registration name, empty when unnamed
func (b *ActorBase) Name() string { return b.name }

// Removed reports whether the actor is flagged for removal or detached
func (b *ActorBase) Removed() bool { return b.removed || b.list == nil }

// AddBehavior queues a behavior, run in insertion order each step
func (b *ActorBase) AddBehavior(bh Behavior) {
	b.behaviors = append(b.behaviors, bh)
}

// RemoveBehavior drops the first queued occurrence of bh
func (b *ActorBase) RemoveBehavior(bh Behavior) bool {
	for i, q := range b.behaviors {
		if q == bh {
			b.behaviors = append(b.behaviors[:i], b.behaviors[i+1:]...)
			return true
		}
	}
	return false
}

// Behaviors returns the number of queued behaviors
func (b *ActorBase) Behaviors() int { return len(b.behaviors) }

// tagList is the ordered actor list of one tag
type tagList struct {
	tag    string
	actors []Actor
}

// evicted reports whether a must be dropped from tl on the next pass
func (tl *tagList) evicted(b *ActorBase) bool {
	return b.removed || b.list != tl
}

// SpawnOptions configures ActorRegistry.Spawn
type SpawnOptions struct {
	Name string
	Tag  string
}

// ActorRegistry is the per-scene tag-partitioned actor collection
//
// Invariants:
//   - every attached actor belongs to exactly one tag list
//   - a tag with a list is either active or inactive, never both
//   - removal only flags the actor; the list is compacted on the next pass over its tag
type ActorRegistry struct {
	lists    map[string]*tagList
	tagOrder []string // creation order, drives update order
	active   map[string]struct{}
	inactive map[string]struct{}
	named    map[string]Actor
}

// NewActorRegistry creates a registry with the default tag active
func NewActorRegistry() *ActorRegistry {
	r := &ActorRegistry{
		lists:    make(map[string]*tagList),
		active:   make(map[string]struct{}),
		inactive: make(map[string]struct{}),
		named:    make(map[string]Actor),
	}
	r.ensureList(DefaultTag)
	return r
}

func (r *ActorRegistry) ensureList(tag string) *tagList {
	if tl, ok := r.lists[tag]; ok {
		return tl
	}
	tl := &tagList{tag: tag}
	r.lists[tag] = tl
	r.tagOrder = append(r.tagOrder, tag)
	r.active[tag] = struct{}{}
	return tl
}

// Add attaches a to the list for tag, creating and activating the tag on first use
// Adding an actor still physically in that list is a no-op, a pending removal stays pending
func (r *ActorRegistry) Add(a Actor, tag string) {
	if tag == "" {
		tag = DefaultTag
	}
	b := a.actorBase()
	if b.list != nil && b.list.tag != tag && !b.removed {
		// Attached elsewhere: only Retag moves actors between lists
		return
	}
	tl := r.ensureList(tag)
	if slices.Contains(tl.actors, a) {
		return
	}
	r.attach(tl, a)
}

// attach makes tl the owner of a
// Retag may hand back a list the actor never left physically, it is not appended twice
func (r *ActorRegistry) attach(tl *tagList, a Actor) {
	b := a.actorBase()
	b.tag = tl.tag
	b.removed = false
	b.list = tl
	if slices.Contains(tl.actors, a) {
		return
	}
	tl.actors = append(tl.actors, a)
}

// Spawn adds a and registers its name when one is given
func (r *ActorRegistry) Spawn(a Actor, opts SpawnOptions) Actor {
	r.Add(a, opts.Tag)
	if opts.Name != "" && !a.actorBase().Removed() {
		a.actorBase().name = opts.Name
		r.named[opts.Name] = a
	}
	return a
}

// Remove flags a for removal, it is excised on the next pass over its tag
func (r *ActorRegistry) Remove(a Actor) {
	if a == nil {
		return
	}
	b := a.actorBase()
	b.removed = true
	if b.name != "" && r.named[b.name] == a {
		delete(r.named, b.name)
	}
}

// Retag moves an attached actor to the list for tag
// The old list drops it lazily on its next pass
func (r *ActorRegistry) Retag(a Actor, tag string) {
	if tag == "" {
		tag = DefaultTag
	}
	if a.actorBase().Removed() {
		return
	}
	r.attach(r.ensureList(tag), a)
}

// Named returns the live actor registered under name
func (r *ActorRegistry) Named(name string) (Actor, bool) {
	a, ok := r.named[name]
	return a, ok
}

// PauseTagged stops updates for every actor of tag without discarding them
func (r *ActorRegistry) PauseTagged(tag string) {
	if _, ok := r.lists[tag]; !ok {
		return
	}
	delete(r.active, tag)
	r.inactive[tag] = struct{}{}
}

// ResumeTagged reactivates updates for tag
func (r *ActorRegistry) ResumeTagged(tag string) {
	if _, ok := r.lists[tag]; !ok {
		return
	}
	delete(r.inactive, tag)
	r.active[tag] = struct{}{}
}

// IsActive reports whether tag is currently updated
func (r *ActorRegistry) IsActive(tag string) bool {
	_, ok := r.active[tag]
	return ok
}

// Tags returns all known tags in creation order
func (r *ActorRegistry) Tags() []string {
	return append([]string(nil), r.tagOrder...)
}

// Len returns the physical list length for tag, including actors pending removal
func (r *ActorRegistry) Len(tag string) int {
	if tl, ok := r.lists[tag]; ok {
		return len(tl.actors)
	}
	return 0
}

// Each calls fn for every live actor of tag in list order
func (r *ActorRegistry) Each(tag string, fn func(Actor)) {
	tl, ok := r.lists[tag]
	if !ok {
		return
	}
	for i := 0; i < len(tl.actors); i++ {
		a := tl.actors[i]
		if !tl.evicted(a.actorBase()) {
			fn(a)
		}
	}
}

// Update runs one pass over every active tag
func (r *ActorRegistry) Update(dt time.Duration) {
	for i := 0; i < len(r.tagOrder); i++ {
		tag := r.tagOrder[i]
		if _, ok := r.active[tag]; !ok {
			continue
		}
		r.updateList(r.lists[tag], dt)
	}
}

// updateList runs live actors and excises evicted ones in place
// Excision shifts the tail back one slot and revisits the index, so no sibling is skipped or run twice
// The length is re-read each iteration so actors added mid-pass are visited in the same pass
func (r *ActorRegistry) updateList(tl *tagList, dt time.Duration) {
	for i := 0; i < len(tl.actors); i++ {
		a := tl.actors[i]
		b := a.actorBase()

		if !tl.evicted(b) {
			for _, bh := range b.behaviors {
				bh.UpdateBehavior(a, dt)
			}
			if t, ok := a.(Ticker); ok {
				t.Update(dt)
			}
		}

		if tl.evicted(b) {
			if b.list == tl {
				b.list = nil
			}
			last := len(tl.actors) - 1
			copy(tl.actors[i:], tl.actors[i+1:])
			tl.actors[last] = nil
			tl.actors = tl.actors[:last]
			i--
		}
	}
}

// actorSystemHooks is the built-in Actor subsystem
func actorSystemHooks() Hooks {
	return Hooks{
		Init: func(s *Scene) {
			AddResource(s.Resources, NewActorRegistry())
		},
		Update: func(s *Scene, dt time.Duration) {
			s.Actors().Update(dt)
		},
	}
}
