package engine

import (
	"context"
	"log"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// sceneSlot binds a registered constructor to its lazily created singleton
type sceneSlot struct {
	ctor Constructor
	inst *Scene
}

// SceneDirector owns scene registration and the active scene
// Swaps are requested through a single pending slot and applied only at a tick boundary
type SceneDirector struct {
	rt     *Runtime
	logger *log.Logger
	tracer trace.Tracer

	slots   map[string]*sceneSlot
	current *Scene

	pending    string
	hasPending bool
	swaps      int
}

func newSceneDirector(rt *Runtime) *SceneDirector {
	return &SceneDirector{
		rt:     rt,
		logger: rt.logger,
		tracer: rt.tracer,
		slots:  make(map[string]*sceneSlot),
	}
}

// AddScene registers ctor under name, duplicates are logged and ignored
func (d *SceneDirector) AddScene(name string, ctor Constructor) {
	if _, exists := d.slots[name]; exists {
		d.logger.Printf("[Director] scene [%s] is already defined", name)
		return
	}
	d.slots[name] = &sceneSlot{ctor: ctor}
}

// SetScene requests a swap to name at the next tick boundary
// Unknown names are logged and ignored; a later request replaces an unapplied one
func (d *SceneDirector) SetScene(name string) {
	if _, ok := d.slots[name]; !ok {
		d.logger.Printf("[Director] scene [%s] is not defined", name)
		return
	}
	d.pending = name
	d.hasPending = true
}

// Pending returns the requested but unapplied scene name
func (d *SceneDirector) Pending() (string, bool) {
	return d.pending, d.hasPending
}

// Current returns the active scene, nil before the first swap
func (d *SceneDirector) Current() *Scene {
	return d.current
}

// Scene returns the retained instance for name, nil when never activated
func (d *SceneDirector) Scene(name string) *Scene {
	if slot, ok := d.slots[name]; ok {
		return slot.inst
	}
	return nil
}

// Registered reports whether name has a constructor
func (d *SceneDirector) Registered(name string) bool {
	_, ok := d.slots[name]
	return ok
}

// Swaps returns the number of applied swaps
func (d *SceneDirector) Swaps() int {
	return d.swaps
}

// applyPending consumes the pending request, returns true when a swap happened
func (d *SceneDirector) applyPending(ctx context.Context) bool {
	if !d.hasPending {
		return false
	}
	name := d.pending
	d.pending, d.hasPending = "", false
	slot := d.slots[name]

	from := ""
	if d.current != nil {
		from = d.current.name
	}
	_, span := d.tracer.Start(ctx, "scene.swap", trace.WithAttributes(
		attribute.String("scene.from", from),
		attribute.String("scene.to", name),
		attribute.String("runtime.session", d.rt.session),
	))
	defer span.End()

	if d.current != nil {
		d.current.freeze()
	}
	d.current = nil

	if slot.inst == nil {
		slot.inst = newScene(name, d.rt, slot.ctor)
		span.SetAttributes(attribute.Bool("scene.constructed", true))
	}

	d.current = slot.inst
	d.current.awake()
	d.swaps++

	d.rt.refit()
	d.rt.events.Emit(EventSceneChanged, name)
	return true
}
