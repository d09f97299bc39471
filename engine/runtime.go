package engine

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/lixenwraith/stagecore/config"
	"github.com/lixenwraith/stagecore/status"
	"github.com/lixenwraith/stagecore/timer"
	"github.com/lixenwraith/stagecore/viewport"
)

// DefaultStartScene is the scene Start boots into
const DefaultStartScene = "Loading"

const tracerName = "github.com/lixenwraith/stagecore/engine"

// Options wires the runtime to its collaborators, nil fields get defaults
type Options struct {
	Config   config.Config
	Logger   *log.Logger
	Host     FrameHost
	Renderer Renderer
	Timer    Timer
	Status   *status.Registry
	Tracer   trace.Tracer
}

// Runtime is the process-wide engine context
// It owns the pause reasons, subsystem registry, scene director and scheduler
// Every method must be called from the host's scheduling goroutine
type Runtime struct {
	// ===== Immutable After Init =====
	cfg      config.Config
	logger   *log.Logger
	tracer   trace.Tracer
	session  string
	status   *status.Registry
	renderer Renderer
	timer    Timer

	// ===== Components =====
	events    *Emitter
	pause     *PauseController
	systems   *SystemRegistry
	director  *SceneDirector
	scheduler *FrameScheduler

	// ===== Mutable State =====
	speed         float64
	booted        bool
	window        viewport.Size
	fit           viewport.Result
	statSceneName *status.Text
	statSpeed     *status.Float
}

// NewRuntime creates a runtime with the built-in Actor subsystem registered
// A nil Host is allowed for runtimes driven by Tick directly
func NewRuntime(opts Options) *Runtime {
	cfg := opts.Config.WithDefaults()

	rt := &Runtime{
		cfg:      cfg,
		logger:   opts.Logger,
		tracer:   opts.Tracer,
		session:  uuid.NewString(),
		status:   opts.Status,
		renderer: opts.Renderer,
		timer:    opts.Timer,
		events:   NewEmitter(),
		speed:    1,
		window:   viewport.Size{W: cfg.Width, H: cfg.Height},
	}
	if rt.logger == nil {
		rt.logger = log.Default()
	}
	if rt.tracer == nil {
		rt.tracer = otel.Tracer(tracerName)
	}
	if rt.status == nil {
		rt.status = status.NewRegistry()
	}
	if rt.renderer == nil {
		rt.renderer = nopRenderer{}
	}
	if rt.timer == nil {
		rt.timer = timer.New()
	}
	rt.SetSpeed(cfg.Speed)

	rt.pause = NewPauseController(rt.events)
	rt.systems = NewSystemRegistry(rt.logger)
	rt.systems.Register(SystemActor, actorSystemHooks())
	rt.director = newSceneDirector(rt)

	host := opts.Host
	if host == nil {
		host = nopHost{}
	}
	rt.scheduler = newFrameScheduler(rt, host)

	rt.statSceneName = rt.status.Strings.Get("scene.current")
	rt.statSpeed = rt.status.Floats.Get("clock.speed")
	rt.statSpeed.Store(rt.speed)
	rt.fit = viewport.Fit(cfg.Mode(), rt.window, rt.contentSize())

	rt.events.On(EventSceneChanged, func(ev Event) {
		rt.statSceneName.Store(ev.Payload.(string))
	})
	return rt
}

// ===== Accessors =====

// Config returns the configuration the runtime was built with
func (rt *Runtime) Config() config.Config { return rt.cfg }

// Logger returns the runtime logger
func (rt *Runtime) Logger() *log.Logger { return rt.logger }

// Session returns the unique id of this runtime instance
func (rt *Runtime) Session() string { return rt.session }

// Events returns the runtime-level notification emitter
func (rt *Runtime) Events() *Emitter { return rt.events }

// Status returns the metrics registry
func (rt *Runtime) Status() *status.Registry { return rt.status }

// Timer returns the timer facility advanced by fixed updates
func (rt *Runtime) Timer() Timer { return rt.timer }

// Systems returns the subsystem registry
func (rt *Runtime) Systems() *SystemRegistry { return rt.systems }

// Director returns the scene director
func (rt *Runtime) Director() *SceneDirector { return rt.director }

// Scheduler returns the frame scheduler
func (rt *Runtime) Scheduler() *FrameScheduler { return rt.scheduler }

// PauseController returns the pause reason tracker
func (rt *Runtime) PauseController() *PauseController { return rt.pause }

// Scene returns the active scene, nil during bootstrap
func (rt *Runtime) Scene() *Scene { return rt.director.Current() }

// Viewport returns the last computed view fit
func (rt *Runtime) Viewport() viewport.Result { return rt.fit }

// ===== Scenes =====

// AddScene registers a scene constructor under name
func (rt *Runtime) AddScene(name string, ctor Constructor) {
	rt.director.AddScene(name, ctor)
}

// SetScene requests a switch to name at the next tick boundary
func (rt *Runtime) SetScene(name string) {
	rt.director.SetScene(name)
}

// StartWithScene sets the first scene, initializes the renderer and starts the frame chain
func (rt *Runtime) StartWithScene(name string) error {
	rt.director.SetScene(name)

	if !rt.booted {
		if err := rt.renderer.Init(rt.fit.View.W, rt.fit.View.H, rt.cfg.Renderer); err != nil {
			return fmt.Errorf("init renderer: %w", err)
		}
		rt.booted = true
		rt.logger.Printf("[Runtime] boot session=%s size=%dx%d fps=%d", rt.session, rt.cfg.Width, rt.cfg.Height, rt.cfg.DesiredFPS)
		rt.scheduler.Start()
		rt.refit()
		rt.events.Emit(EventBoot, nil)
		rt.events.Emit(EventBooted, nil)
		return nil
	}

	rt.scheduler.Start()
	return nil
}

// Start boots into DefaultStartScene
func (rt *Runtime) Start() error {
	return rt.StartWithScene(DefaultStartScene)
}

// Stop cancels the next scheduled frame
func (rt *Runtime) Stop() {
	rt.scheduler.Stop()
}

// ===== Pause =====

// Pause activates reason, empty means DefaultPauseReason
func (rt *Runtime) Pause(reason string) { rt.pause.Pause(reason) }

// Resume clears reason, or all reasons when force is set
func (rt *Runtime) Resume(reason string, force bool) { rt.pause.Resume(reason, force) }

// Paused reports whether any pause reason is active
func (rt *Runtime) Paused() bool { return rt.pause.Paused() }

// ===== Time =====

// Speed returns the global time multiplier
func (rt *Runtime) Speed() float64 { return rt.speed }

// SetSpeed sets the global time multiplier, clamped to [0,1]
func (rt *Runtime) SetSpeed(v float64) {
	rt.speed = min(max(v, 0), 1)
	if rt.statSpeed != nil {
		rt.statSpeed.Store(rt.speed)
	}
}

// Delta returns the scaled time advanced by the last fixed update
func (rt *Runtime) Delta() time.Duration { return rt.scheduler.Delta() }

// ===== Systems =====

// RegisterSystem adds or overwrites a subsystem
func (rt *Runtime) RegisterSystem(name string, hooks Hooks) {
	rt.systems.Register(name, hooks)
}

// SetSystemOrder replaces the subsystem order used by scenes constructed afterwards
func (rt *Runtime) SetSystemOrder(order []string) {
	rt.systems.SetOrder(order)
}

// ===== Viewport =====

// Resize records a new host window size and refits the view
func (rt *Runtime) Resize(width, height int) {
	rt.window = viewport.Size{W: width, H: height}
	rt.refit()
}

func (rt *Runtime) contentSize() viewport.Size {
	return viewport.Size{W: rt.cfg.Width, H: rt.cfg.Height}
}

// refit recomputes the view for the current window and notifies listeners
func (rt *Runtime) refit() {
	prev := rt.fit
	rt.fit = viewport.Fit(rt.cfg.Mode(), rt.window, rt.contentSize())
	if rt.booted && rt.fit.View != prev.View {
		rt.renderer.Resize(rt.fit.View.W, rt.fit.View.H)
	}
	rt.events.Emit(EventResize, rt.fit)
}

// nopHost never delivers frames, used by runtimes ticked manually
type nopHost struct{}

func (nopHost) RequestFrame(func(time.Duration)) uint64 { return 0 }
func (nopHost) CancelFrame(uint64)                      {}
