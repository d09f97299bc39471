package engine

import "time"

// DefaultDesiredFPS is the fixed update rate of a scene when configuration does not set one
const DefaultDesiredFPS = 30

// Logic is the game-defined part of a scene, returned by its Constructor
// It may implement any of Awaker, Freezer, PreUpdater, Updater, PostUpdater
type Logic any

// Constructor builds the logic of a scene on its first activation
// Subsystem Init hooks have already run when it is called
type Constructor func(s *Scene) Logic

// Awaker is called each time the scene becomes active
type Awaker interface{ Awake() }

// Freezer is called each time the scene is deactivated
type Freezer interface{ Freeze() }

// PreUpdater runs after all subsystem pre-update hooks
type PreUpdater interface{ PreUpdate(dt time.Duration) }

// Updater runs after all subsystem update hooks
type Updater interface{ Update(dt time.Duration) }

// PostUpdater runs after all subsystem post-update hooks
type PostUpdater interface{ PostUpdate(dt time.Duration) }

// Scene is a top-level game mode with its own subsystem state and actors
// A scene is constructed once on first activation and retained for the process lifetime
type Scene struct {
	// DesiredFPS sets the fixed step of the scheduler while this scene is active
	DesiredFPS int

	// Resources holds per-scene subsystem state
	Resources *ResourceStore

	name    string
	runtime *Runtime
	events  *Emitter
	systems pipeline

	logic      Logic
	awaker     Awaker
	freezer    Freezer
	preUpdater PreUpdater
	updater    Updater
	postUpdate PostUpdater
}

// newScene resolves the subsystem order, runs Init hooks, then builds the logic
func newScene(name string, rt *Runtime, ctor Constructor) *Scene {
	s := &Scene{
		DesiredFPS: rt.cfg.DesiredFPS,
		Resources:  NewResourceStore(),
		name:       name,
		runtime:    rt,
		events:     NewEmitter(),
		systems:    rt.systems.resolve(),
	}
	if s.DesiredFPS <= 0 {
		s.DesiredFPS = DefaultDesiredFPS
	}

	for _, fn := range s.systems.init {
		fn(s)
	}

	if ctor != nil {
		s.setLogic(ctor(s))
	}
	return s
}

func (s *Scene) setLogic(l Logic) {
	s.logic = l
	s.awaker, _ = l.(Awaker)
	s.freezer, _ = l.(Freezer)
	s.preUpdater, _ = l.(PreUpdater)
	s.updater, _ = l.(Updater)
	s.postUpdate, _ = l.(PostUpdater)
}

// Name returns the name the scene was registered under
func (s *Scene) Name() string { return s.name }

// Logic returns the value produced by the scene constructor
func (s *Scene) Logic() Logic { return s.logic }

// Runtime returns the owning runtime
func (s *Scene) Runtime() *Runtime { return s.runtime }

// Events returns the scene-level notification emitter
func (s *Scene) Events() *Emitter { return s.events }

// Systems returns the names of the subsystems this scene runs, in order
func (s *Scene) Systems() []string {
	return append([]string(nil), s.systems.names...)
}

// stepSize returns the fixed step for the scene's desired rate
func (s *Scene) stepSize() time.Duration {
	fps := s.DesiredFPS
	if fps <= 0 {
		fps = DefaultDesiredFPS
	}
	return time.Second / time.Duration(fps)
}

// awake runs the activation sequence: subsystems, scene logic, then notification
func (s *Scene) awake() {
	for _, fn := range s.systems.awake {
		fn(s)
	}
	if s.awaker != nil {
		s.awaker.Awake()
	}
	s.events.Emit(EventAwake, nil)
}

// freeze runs the teardown sequence: notification, subsystems, then scene logic
func (s *Scene) freeze() {
	s.events.Emit(EventFreeze, nil)
	for _, fn := range s.systems.freeze {
		fn(s)
	}
	if s.freezer != nil {
		s.freezer.Freeze()
	}
}

// update runs one fixed step
// Each phase runs all subsystems, then the scene callback, then its completion notification
func (s *Scene) update(dt time.Duration) {
	for _, fn := range s.systems.preUpdate {
		fn(s, dt)
	}
	if s.preUpdater != nil {
		s.preUpdater.PreUpdate(dt)
	}
	s.events.Emit(EventPreUpdate, dt)

	for _, fn := range s.systems.update {
		fn(s, dt)
	}
	if s.updater != nil {
		s.updater.Update(dt)
	}
	s.events.Emit(EventUpdate, dt)

	for _, fn := range s.systems.postUpdate {
		fn(s, dt)
	}
	if s.postUpdate != nil {
		s.postUpdate.PostUpdate(dt)
	}
	s.events.Emit(EventPostUpdate, dt)
}

// ===== Actor API =====

// Actors returns the scene's actor registry
// Panics when the Actor subsystem is not part of the scene
func (s *Scene) Actors() *ActorRegistry {
	return MustGetResource[*ActorRegistry](s.Resources)
}

// SpawnActor attaches a with an optional name and tag
func (s *Scene) SpawnActor(a Actor, opts SpawnOptions) Actor {
	return s.Actors().Spawn(a, opts)
}

// AddActor attaches a under tag, DefaultTag when empty
func (s *Scene) AddActor(a Actor, tag string) {
	s.Actors().Add(a, tag)
}

// RemoveActor flags a for removal on the next pass over its tag
func (s *Scene) RemoveActor(a Actor) {
	s.Actors().Remove(a)
}

// PauseActorsTagged stops updating actors of tag, keeping their state
func (s *Scene) PauseActorsTagged(tag string) *Scene {
	s.Actors().PauseTagged(tag)
	return s
}

// ResumeActorsTagged resumes updating actors of tag
func (s *Scene) ResumeActorsTagged(tag string) *Scene {
	s.Actors().ResumeTagged(tag)
	return s
}

// ActorNamed returns the live actor spawned under name
func (s *Scene) ActorNamed(name string) (Actor, bool) {
	return s.Actors().Named(name)
}
