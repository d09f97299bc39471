package engine

import (
	"log"
	"time"
)

// Built-in subsystem names, in default update order
const (
	SystemActor     = "Actor"
	SystemAnimation = "Animation"
	SystemPhysics   = "Physics"
	SystemRenderer  = "Renderer"
)

// DefaultSystemOrder is the update order installed by NewRuntime
var DefaultSystemOrder = []string{SystemActor, SystemAnimation, SystemPhysics, SystemRenderer}

// Hooks is the fixed shape of a subsystem, nil hooks are absent
// Init runs once per scene instance at construction and may install per-scene state in Scene.Resources
type Hooks struct {
	Init   func(s *Scene)
	Awake  func(s *Scene)
	Freeze func(s *Scene)

	PreUpdate  func(s *Scene, dt time.Duration)
	Update     func(s *Scene, dt time.Duration)
	PostUpdate func(s *Scene, dt time.Duration)
}

// SystemRegistry maps subsystem names to hooks and holds the participation order
// Registration is append/overwrite only
type SystemRegistry struct {
	systems map[string]Hooks
	order   []string
	logger  *log.Logger
}

// NewSystemRegistry creates an empty registry using DefaultSystemOrder
func NewSystemRegistry(logger *log.Logger) *SystemRegistry {
	if logger == nil {
		logger = log.Default()
	}
	return &SystemRegistry{
		systems: make(map[string]Hooks),
		order:   append([]string(nil), DefaultSystemOrder...),
		logger:  logger,
	}
}

// Register stores hooks under name, the last registration wins
func (r *SystemRegistry) Register(name string, hooks Hooks) {
	if _, exists := r.systems[name]; exists {
		r.logger.Printf("[Systems] warning: override [%s] system", name)
	}
	r.systems[name] = hooks
}

// Lookup returns the hooks registered under name
func (r *SystemRegistry) Lookup(name string) (Hooks, bool) {
	h, ok := r.systems[name]
	return h, ok
}

// SetOrder replaces the participation order
// Already constructed scenes keep the order they resolved
func (r *SystemRegistry) SetOrder(order []string) {
	r.order = append(r.order[:0:0], order...)
}

// Order returns a copy of the participation order
func (r *SystemRegistry) Order() []string {
	return append([]string(nil), r.order...)
}

// resolve flattens the order into per-phase call lists, skipping unregistered names
func (r *SystemRegistry) resolve() pipeline {
	var p pipeline
	for _, name := range r.order {
		h, ok := r.systems[name]
		if !ok {
			continue
		}
		p.names = append(p.names, name)
		if h.Init != nil {
			p.init = append(p.init, h.Init)
		}
		if h.Awake != nil {
			p.awake = append(p.awake, h.Awake)
		}
		if h.Freeze != nil {
			p.freeze = append(p.freeze, h.Freeze)
		}
		if h.PreUpdate != nil {
			p.preUpdate = append(p.preUpdate, h.PreUpdate)
		}
		if h.Update != nil {
			p.update = append(p.update, h.Update)
		}
		if h.PostUpdate != nil {
			p.postUpdate = append(p.postUpdate, h.PostUpdate)
		}
	}
	return p
}

// pipeline is a scene's resolved subsystem call lists, in declared order
type pipeline struct {
	names []string

	init   []func(*Scene)
	awake  []func(*Scene)
	freeze []func(*Scene)

	preUpdate  []func(*Scene, time.Duration)
	update     []func(*Scene, time.Duration)
	postUpdate []func(*Scene, time.Duration)
}
