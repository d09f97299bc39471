package game

import (
	"math"
	"time"

	"github.com/lixenwraith/stagecore/engine"
)

// Ship tuning, content units per second
const (
	shipRadius     = 12.0
	shipImpulse    = 120.0
	shipMaxSpeed   = 220.0
	shipDamping    = 0.85 // velocity retained per 1/30s
	shipHealth     = 3
	shipCooldown   = 180 * time.Millisecond
	shipInvincible = 2 * time.Second

	bulletSpeed  = 320.0
	bulletRadius = 2.0

	meteorMinSpeed = 40.0
	meteorMaxSpeed = 120.0
	meteorMaxLevel = 3
)

// vec is a content-space position or velocity
type vec struct{ X, Y float64 }

func (v vec) add(o vec) vec { return vec{v.X + o.X, v.Y + o.Y} }

func (v vec) scale(k float64) vec { return vec{v.X * k, v.Y * k} }

func (v vec) length() float64 { return math.Hypot(v.X, v.Y) }

func (v vec) dist(o vec) float64 { return math.Hypot(v.X-o.X, v.Y-o.Y) }

func fromAngle(rad, length float64) vec {
	return vec{math.Cos(rad) * length, math.Sin(rad) * length}
}

// bounds is the content rectangle actors live in
type bounds struct{ W, H float64 }

// outside reports whether p left the rectangle by more than margin
func (b bounds) outside(p vec, margin float64) bool {
	return p.X < -margin || p.Y < -margin || p.X > b.W+margin || p.Y > b.H+margin
}

// Ship is the player actor
type Ship struct {
	engine.ActorBase
	Pos        vec
	Vel        vec
	Facing     vec
	Health     int
	cooldown   time.Duration
	invincible time.Duration
	area       bounds
}

func newShip(area bounds) *Ship {
	s := &Ship{
		Pos:    vec{area.W / 2, area.H / 2},
		Facing: vec{0, -1},
		Health: shipHealth,
		area:   area,
	}
	// Blink timer after a hit
	s.AddBehavior(engine.BehaviorFunc(func(a engine.Actor, dt time.Duration) {
		ship := a.(*Ship)
		ship.invincible = max(ship.invincible-dt, 0)
		ship.cooldown = max(ship.cooldown-dt, 0)
	}))
	return s
}

// Thrust adds an impulse in direction d and turns the ship to face it
func (s *Ship) Thrust(d vec) {
	s.Facing = d
	s.Vel = s.Vel.add(d.scale(shipImpulse))
	if l := s.Vel.length(); l > shipMaxSpeed {
		s.Vel = s.Vel.scale(shipMaxSpeed / l)
	}
}

// Invincible reports whether the ship ignores collisions
func (s *Ship) Invincible() bool { return s.invincible > 0 }

func (s *Ship) Update(dt time.Duration) {
	sec := dt.Seconds()
	s.Pos = s.Pos.add(s.Vel.scale(sec))
	s.Vel = s.Vel.scale(math.Pow(shipDamping, sec*30))
	s.Pos.X = math.Max(shipRadius, math.Min(s.area.W-shipRadius, s.Pos.X))
	s.Pos.Y = math.Max(shipRadius, math.Min(s.area.H-shipRadius, s.Pos.Y))
}

// Bullet flies straight until it leaves the area or hits a meteor
type Bullet struct {
	engine.ActorBase
	Pos   vec
	Vel   vec
	scene *engine.Scene
	area  bounds
}

func (b *Bullet) Update(dt time.Duration) {
	b.Pos = b.Pos.add(b.Vel.scale(dt.Seconds()))
	if b.area.outside(b.Pos, 0) {
		b.scene.RemoveActor(b)
	}
}

// Meteor drifts across the area, higher levels are larger and split when destroyed
type Meteor struct {
	engine.ActorBase
	Pos   vec
	Vel   vec
	Level int
	scene *engine.Scene
	area  bounds
}

// Radius grows with level
func (m *Meteor) Radius() float64 { return 6 + float64(m.Level)*6 }

func (m *Meteor) Update(dt time.Duration) {
	m.Pos = m.Pos.add(m.Vel.scale(dt.Seconds()))
	if m.area.outside(m.Pos, 2*m.Radius()) {
		m.scene.RemoveActor(m)
	}
}
