package engine

import (
	"reflect"
	"testing"
	"time"
)

// testActor records its updates into a shared log and runs an optional hook
type testActor struct {
	ActorBase
	id      string
	log     *[]string
	updates int
	onTick  func(a *testActor)
}

func (a *testActor) Update(dt time.Duration) {
	a.updates++
	*a.log = append(*a.log, a.id)
	if a.onTick != nil {
		a.onTick(a)
	}
}

func newActors(log *[]string, ids ...string) []*testActor {
	out := make([]*testActor, len(ids))
	for i, id := range ids {
		out[i] = &testActor{id: id, log: log}
	}
	return out
}

func liveIDs(r *ActorRegistry, tag string) []string {
	var ids []string
	r.Each(tag, func(a Actor) { ids = append(ids, a.(*testActor).id) })
	return ids
}

func TestActorSelfRemovalDuringPass(t *testing.T) {
	var log []string
	r := NewActorRegistry()
	actors := newActors(&log, "A", "B", "C")
	for _, a := range actors {
		r.Add(a, "")
	}
	actors[1].onTick = func(a *testActor) { r.Remove(a) }

	r.Update(time.Millisecond)

	if want := []string{"A", "B", "C"}; !reflect.DeepEqual(log, want) {
		t.Errorf("first pass = %v, want %v", log, want)
	}
	if got := r.Len(DefaultTag); got != 2 {
		t.Errorf("list length after pass = %d, want 2", got)
	}

	log = nil
	r.Update(time.Millisecond)
	if want := []string{"A", "C"}; !reflect.DeepEqual(log, want) {
		t.Errorf("second pass = %v, want %v", log, want)
	}
}

func TestActorRemovesLaterSibling(t *testing.T) {
	var log []string
	r := NewActorRegistry()
	actors := newActors(&log, "A", "B", "C", "D")
	for _, a := range actors {
		r.Add(a, "")
	}
	// B removes C before C is reached
	actors[1].onTick = func(*testActor) { r.Remove(actors[2]) }

	r.Update(time.Millisecond)

	if want := []string{"A", "B", "D"}; !reflect.DeepEqual(log, want) {
		t.Errorf("pass = %v, want %v", log, want)
	}
	if actors[2].updates != 0 {
		t.Errorf("removed sibling updated %d times", actors[2].updates)
	}
	if !actors[2].Removed() {
		t.Error("Expected removed sibling to report Removed")
	}
}

func TestActorRemovesEarlierSibling(t *testing.T) {
	var log []string
	r := NewActorRegistry()
	actors := newActors(&log, "A", "B", "C")
	for _, a := range actors {
		r.Add(a, "")
	}
	actors[2].onTick = func(*testActor) { r.Remove(actors[0]) }

	r.Update(time.Millisecond)
	if want := []string{"A", "B", "C"}; !reflect.DeepEqual(log, want) {
		t.Errorf("first pass = %v, want %v", log, want)
	}

	log = nil
	r.Update(time.Millisecond)
	if want := []string{"B", "C"}; !reflect.DeepEqual(log, want) {
		t.Errorf("second pass = %v, want %v", log, want)
	}
	if r.Len(DefaultTag) != 2 {
		t.Errorf("list length = %d, want 2", r.Len(DefaultTag))
	}
}

func TestActorMultipleRemovalsInOnePass(t *testing.T) {
	var log []string
	r := NewActorRegistry()
	actors := newActors(&log, "A", "B", "C", "D", "E")
	for _, a := range actors {
		r.Add(a, "")
	}
	r.Remove(actors[0])
	r.Remove(actors[1])
	actors[2].onTick = func(a *testActor) {
		r.Remove(a)
		r.Remove(actors[4])
	}

	r.Update(time.Millisecond)

	if want := []string{"C", "D"}; !reflect.DeepEqual(log, want) {
		t.Errorf("pass = %v, want %v", log, want)
	}
	if want := []string{"D"}; !reflect.DeepEqual(liveIDs(r, DefaultTag), want) {
		t.Errorf("live = %v, want %v", liveIDs(r, DefaultTag), want)
	}
	if r.Len(DefaultTag) != 1 {
		t.Errorf("list length = %d, want 1", r.Len(DefaultTag))
	}
}

func TestActorAddedDuringPassRunsSamePass(t *testing.T) {
	var log []string
	r := NewActorRegistry()
	actors := newActors(&log, "A", "B")
	spawned := &testActor{id: "S", log: &log}
	for _, a := range actors {
		r.Add(a, "")
	}
	actors[0].onTick = func(a *testActor) {
		a.onTick = nil
		r.Add(spawned, "")
	}

	r.Update(time.Millisecond)

	if want := []string{"A", "B", "S"}; !reflect.DeepEqual(log, want) {
		t.Errorf("pass = %v, want %v", log, want)
	}
}

func TestActorEachSkipsPendingRemovals(t *testing.T) {
	var log []string
	r := NewActorRegistry()
	actors := newActors(&log, "A", "B", "C")
	for _, a := range actors {
		r.Add(a, "")
	}
	var seen []string
	actors[0].onTick = func(*testActor) {
		r.Remove(actors[1])
		seen = liveIDs(r, DefaultTag)
	}

	r.Update(time.Millisecond)

	if want := []string{"A", "C"}; !reflect.DeepEqual(seen, want) {
		t.Errorf("Each mid-pass = %v, want %v", seen, want)
	}
}

func TestActorPauseTaggedPreservesState(t *testing.T) {
	var log []string
	r := NewActorRegistry()
	meteors := newActors(&log, "m1", "m2")
	ship := &testActor{id: "ship", log: &log}
	r.Add(ship, "")
	for _, m := range meteors {
		r.Add(m, "meteors")
	}

	r.Update(time.Millisecond)
	r.PauseTagged("meteors")
	if r.IsActive("meteors") {
		t.Fatal("Expected meteors inactive")
	}

	log = nil
	r.Update(time.Millisecond)
	if want := []string{"ship"}; !reflect.DeepEqual(log, want) {
		t.Errorf("paused pass = %v, want %v", log, want)
	}

	r.ResumeTagged("meteors")
	log = nil
	r.Update(time.Millisecond)
	if want := []string{"ship", "m1", "m2"}; !reflect.DeepEqual(log, want) {
		t.Errorf("resumed pass = %v, want %v", log, want)
	}
	for _, m := range meteors {
		if m.updates != 2 {
			t.Errorf("%s updates = %d, want 2", m.id, m.updates)
		}
	}
}

func TestActorPauseUnknownTag(t *testing.T) {
	r := NewActorRegistry()
	r.PauseTagged("ghost")
	r.ResumeTagged("ghost")

	if want := []string{DefaultTag}; !reflect.DeepEqual(r.Tags(), want) {
		t.Errorf("Tags() = %v, want %v", r.Tags(), want)
	}
}

func TestActorTagsCreationOrder(t *testing.T) {
	var log []string
	r := NewActorRegistry()
	r.Add(&testActor{id: "z", log: &log}, "zeta")
	r.Add(&testActor{id: "a", log: &log}, "alpha")
	r.Add(&testActor{id: "d", log: &log}, "")

	if want := []string{DefaultTag, "zeta", "alpha"}; !reflect.DeepEqual(r.Tags(), want) {
		t.Errorf("Tags() = %v, want %v", r.Tags(), want)
	}

	r.Update(time.Millisecond)
	if want := []string{"d", "z", "a"}; !reflect.DeepEqual(log, want) {
		t.Errorf("update order = %v, want %v", log, want)
	}
}

func TestActorDuplicateAdd(t *testing.T) {
	var log []string
	r := NewActorRegistry()
	a := &testActor{id: "A", log: &log}

	r.Add(a, "")
	r.Add(a, "")
	if r.Len(DefaultTag) != 1 {
		t.Errorf("list length = %d, want 1", r.Len(DefaultTag))
	}

	// Add to another tag while attached is ignored
	r.Add(a, "other")
	if a.Tag() != DefaultTag {
		t.Errorf("Tag() = %q, want %q", a.Tag(), DefaultTag)
	}
	if r.Len("other") != 0 {
		t.Errorf("other length = %d, want 0", r.Len("other"))
	}

	// Re-add before excision leaves the removal pending
	r.Remove(a)
	r.Add(a, "")
	r.Update(time.Millisecond)
	if a.updates != 0 || r.Len(DefaultTag) != 0 {
		t.Errorf("updates=%d len=%d, want 0 and 0", a.updates, r.Len(DefaultTag))
	}
	if !a.Removed() {
		t.Error("Removed() = false after excision, want true")
	}
}

func TestActorRespawnBeforeExcisionKeepsRemoval(t *testing.T) {
	var log []string
	r := NewActorRegistry()
	a := &testActor{id: "A", log: &log}

	r.Spawn(a, SpawnOptions{Name: "hero"})
	r.Remove(a)
	r.Spawn(a, SpawnOptions{Name: "hero"})
	r.Update(time.Millisecond)

	if a.updates != 0 || r.Len(DefaultTag) != 0 {
		t.Errorf("updates=%d len=%d, want 0 and 0", a.updates, r.Len(DefaultTag))
	}
	if _, ok := r.Named("hero"); ok {
		t.Error("Named(hero) found a removed actor")
	}
}

func TestActorReAddAfterExcision(t *testing.T) {
	var log []string
	r := NewActorRegistry()
	a := &testActor{id: "A", log: &log}

	r.Add(a, "")
	r.Remove(a)
	r.Update(time.Millisecond)
	if r.Len(DefaultTag) != 0 {
		t.Fatalf("list length = %d, want 0", r.Len(DefaultTag))
	}

	r.Add(a, "late")
	r.Update(time.Millisecond)
	if a.updates != 1 || a.Tag() != "late" || a.Removed() {
		t.Errorf("updates=%d tag=%q removed=%v", a.updates, a.Tag(), a.Removed())
	}
}

func TestActorNamed(t *testing.T) {
	var log []string
	r := NewActorRegistry()
	ship := &testActor{id: "ship", log: &log}
	r.Spawn(ship, SpawnOptions{Name: "player", Tag: "ships"})

	got, ok := r.Named("player")
	if !ok || got != Actor(ship) {
		t.Fatalf("Named(player) = %v, %v", got, ok)
	}
	if ship.Name() != "player" || ship.Tag() != "ships" {
		t.Errorf("name=%q tag=%q", ship.Name(), ship.Tag())
	}

	r.Remove(ship)
	if _, ok := r.Named("player"); ok {
		t.Error("Expected name released on removal")
	}
}

func TestActorBehaviorsRunBeforeUpdate(t *testing.T) {
	var log []string
	r := NewActorRegistry()
	a := &testActor{id: "A", log: &log}

	first := BehaviorFunc(func(Actor, time.Duration) { log = append(log, "b1") })
	a.AddBehavior(first)
	a.AddBehavior(BehaviorFunc(func(_ Actor, dt time.Duration) {
		log = append(log, "b2:"+dt.String())
	}))
	r.Add(a, "")

	r.Update(5 * time.Millisecond)
	if want := []string{"b1", "b2:5ms", "A"}; !reflect.DeepEqual(log, want) {
		t.Errorf("order = %v, want %v", log, want)
	}
	if a.Behaviors() != 2 {
		t.Errorf("Behaviors() = %d, want 2", a.Behaviors())
	}
}

func TestActorBehaviorRemovesOwner(t *testing.T) {
	var log []string
	r := NewActorRegistry()
	a := &testActor{id: "A", log: &log}
	a.AddBehavior(BehaviorFunc(func(self Actor, _ time.Duration) { r.Remove(self) }))
	r.Add(a, "")

	r.Update(time.Millisecond)

	// Update still runs for the step the removal was requested in
	if a.updates != 1 {
		t.Errorf("updates = %d, want 1", a.updates)
	}
	if r.Len(DefaultTag) != 0 {
		t.Errorf("list length = %d, want 0", r.Len(DefaultTag))
	}
}

func TestActorRetag(t *testing.T) {
	var log []string
	r := NewActorRegistry()
	actors := newActors(&log, "A", "B")
	for _, a := range actors {
		r.Add(a, "")
	}
	actors[0].onTick = func(a *testActor) {
		a.onTick = nil
		r.Retag(a, "moved")
	}

	r.Update(time.Millisecond)
	if want := []string{"A", "B", "A"}; !reflect.DeepEqual(log, want) {
		t.Errorf("pass = %v, want %v", log, want)
	}
	if r.Len(DefaultTag) != 1 || r.Len("moved") != 1 {
		t.Errorf("lengths default=%d moved=%d, want 1 and 1", r.Len(DefaultTag), r.Len("moved"))
	}

	// Retag of a removed actor is ignored
	r.Remove(actors[1])
	r.Retag(actors[1], "moved")
	if actors[1].Tag() != DefaultTag {
		t.Errorf("Tag() = %q, want %q", actors[1].Tag(), DefaultTag)
	}
}
