package game

import (
	"math"
	"time"

	"github.com/lixenwraith/stagecore/audio"
	"github.com/lixenwraith/stagecore/engine"
	"github.com/lixenwraith/stagecore/timer"
)

// Meteor spawning
const (
	spawnInterval = 1200 * time.Millisecond
	initialWave   = 3
)

// spaceLogic is the playable scene
type spaceLogic struct {
	game  *Game
	scene *engine.Scene
	area  bounds

	ship    *Ship
	score   int
	spawned int
	spawnID timer.ID
	frozen  bool
}

func newSpace(g *Game, s *engine.Scene) *spaceLogic {
	cfg := g.rt.Config()
	return &spaceLogic{
		game:  g,
		scene: s,
		area:  bounds{W: float64(cfg.Width), H: float64(cfg.Height)},
	}
}

// Awake starts a new round each time the scene becomes active
func (l *spaceLogic) Awake() {
	reg := l.scene.Actors()
	for _, tag := range reg.Tags() {
		reg.Each(tag, func(a engine.Actor) { reg.Remove(a) })
	}
	if l.frozen {
		l.scene.ResumeActorsTagged(TagMeteors)
		l.frozen = false
	}

	l.score = 0
	l.ship = newShip(l.area)
	l.scene.SpawnActor(l.ship, engine.SpawnOptions{Name: "ship"})
	for range initialWave {
		l.spawnMeteor()
	}
	l.spawnID = l.game.timer.Every(spawnInterval, l.spawnMeteor)
}

// Freeze stops spawning while the scene is inactive
func (l *spaceLogic) Freeze() {
	l.game.timer.Cancel(l.spawnID)
}

// Score returns the score of the current round
func (l *spaceLogic) Score() int { return l.score }

// Ship returns the player actor
func (l *spaceLogic) Ship() *Ship { return l.ship }

// Frozen reports whether meteors are held by the freeze key
func (l *spaceLogic) Frozen() bool { return l.frozen }

func (l *spaceLogic) HandleKey(k Key) {
	switch k {
	case KeyUp:
		l.ship.Thrust(vec{0, -1})
	case KeyDown:
		l.ship.Thrust(vec{0, 1})
	case KeyLeft:
		l.ship.Thrust(vec{-1, 0})
	case KeyRight:
		l.ship.Thrust(vec{1, 0})
	case KeyFire:
		l.fire()
	case KeyFreeze:
		l.toggleFreeze()
	}
}

func (l *spaceLogic) toggleFreeze() {
	if l.frozen {
		l.scene.ResumeActorsTagged(TagMeteors)
	} else {
		l.scene.PauseActorsTagged(TagMeteors)
	}
	l.frozen = !l.frozen
}

func (l *spaceLogic) fire() {
	if l.ship.cooldown > 0 {
		return
	}
	l.ship.cooldown = shipCooldown
	b := &Bullet{
		Pos:   l.ship.Pos.add(l.ship.Facing.scale(shipRadius)),
		Vel:   l.ship.Facing.scale(bulletSpeed),
		scene: l.scene,
		area:  l.area,
	}
	l.scene.SpawnActor(b, engine.SpawnOptions{Tag: TagBullets})
	l.game.play(audio.SoundShoot)
}

// spawnMeteor places a meteor on a random edge
// Heading drifts along a noise curve so consecutive meteors arrive in swells
func (l *spaceLogic) spawnMeteor() {
	rng := l.game.rng
	l.spawned++

	var pos vec
	switch rng.IntN(4) {
	case 0:
		pos = vec{rng.Float64() * l.area.W, 0}
	case 1:
		pos = vec{l.area.W, rng.Float64() * l.area.H}
	case 2:
		pos = vec{rng.Float64() * l.area.W, l.area.H}
	default:
		pos = vec{0, rng.Float64() * l.area.H}
	}

	// Aim at the center, bent by noise up to a quarter turn either way
	toCenter := math.Atan2(l.area.H/2-pos.Y, l.area.W/2-pos.X)
	n := l.game.noise.Noise2D(l.game.timer.Now().Seconds()/10, float64(l.spawned)/7)
	heading := toCenter + n*math.Pi/2
	speed := meteorMinSpeed + rng.Float64()*(meteorMaxSpeed-meteorMinSpeed)

	l.addMeteor(pos, fromAngle(heading, speed), meteorMaxLevel)
}

func (l *spaceLogic) addMeteor(pos, vel vec, level int) *Meteor {
	m := &Meteor{Pos: pos, Vel: vel, Level: level, scene: l.scene, area: l.area}
	l.scene.SpawnActor(m, engine.SpawnOptions{Tag: TagMeteors})
	return m
}

// PostUpdate resolves collisions after every actor moved
func (l *spaceLogic) PostUpdate(time.Duration) {
	reg := l.scene.Actors()

	reg.Each(TagBullets, func(a engine.Actor) {
		b := a.(*Bullet)
		reg.Each(TagMeteors, func(a engine.Actor) {
			m := a.(*Meteor)
			if b.Removed() || m.Removed() || b.Pos.dist(m.Pos) > m.Radius()+bulletRadius {
				return
			}
			reg.Remove(b)
			l.destroy(m)
		})
	})

	if l.ship.Invincible() {
		return
	}
	reg.Each(TagMeteors, func(a engine.Actor) {
		m := a.(*Meteor)
		if l.ship.Invincible() || m.Removed() || l.ship.Pos.dist(m.Pos) > m.Radius()+shipRadius {
			return
		}
		l.hit(m)
	})
}

// destroy removes m, scores it and splits it into two smaller meteors
func (l *spaceLogic) destroy(m *Meteor) {
	l.scene.RemoveActor(m)
	l.score += m.Level
	l.game.play(audio.SoundExplode)
	if m.Level <= 1 {
		return
	}
	for _, turn := range []float64{-math.Pi / 4, math.Pi / 4} {
		heading := math.Atan2(m.Vel.Y, m.Vel.X) + turn
		speed := m.Vel.length() * 1.25
		l.addMeteor(m.Pos, fromAngle(heading, speed), m.Level-1)
	}
}

// hit damages the ship and ends the round when it runs out of health
func (l *spaceLogic) hit(m *Meteor) {
	l.destroy(m)
	l.ship.Health--
	l.ship.invincible = shipInvincible
	l.game.play(audio.SoundHit)
	if l.ship.Health <= 0 {
		l.game.lastScore = l.score
		l.game.rt.SetScene(SceneGameOver)
	}
}
