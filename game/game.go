// Package game is the sample game: a menu and an asteroid field scene driven by the engine
package game

import (
	"math/rand/v2"
	"time"

	"github.com/aquilax/go-perlin"

	"github.com/lixenwraith/stagecore/audio"
	"github.com/lixenwraith/stagecore/engine"
	"github.com/lixenwraith/stagecore/timer"
)

// Scene names
const (
	SceneLoading  = engine.DefaultStartScene
	SceneMenu     = "Menu"
	SceneSpace    = "Space"
	SceneGameOver = "GameOver"
)

// Actor tags
const (
	TagMeteors = "meteors"
	TagBullets = "bullets"
)

// loadingDelay is how long the loading scene stays up
const loadingDelay = time.Second

// Deps are the collaborators the game needs beyond the runtime
type Deps struct {
	// Timer must be the facility passed to the runtime so it advances with fixed updates
	Timer *timer.Facility
	// Audio may be nil
	Audio *audio.Bus
	Seed  uint64
}

// Game registers the sample scenes and routes input to them
type Game struct {
	rt     *engine.Runtime
	timer  *timer.Facility
	audio  *audio.Bus
	rng    *rand.Rand
	noise  *perlin.Perlin
	redraw func(*engine.Scene)

	lastScore int
}

// New registers every scene on rt
func New(rt *engine.Runtime, deps Deps) *Game {
	g := &Game{
		rt:    rt,
		timer: deps.Timer,
		audio: deps.Audio,
		rng:   rand.New(rand.NewPCG(deps.Seed, deps.Seed^0x9e3779b97f4a7c15)),
		noise: perlin.NewPerlin(2, 2, 3, int64(deps.Seed)),
	}
	if g.timer == nil {
		g.timer = timer.New()
	}

	rt.AddScene(SceneLoading, func(s *engine.Scene) engine.Logic { return &loadingLogic{game: g} })
	rt.AddScene(SceneMenu, func(s *engine.Scene) engine.Logic { return &menuLogic{game: g} })
	rt.AddScene(SceneSpace, func(s *engine.Scene) engine.Logic { return newSpace(g, s) })
	rt.AddScene(SceneGameOver, func(s *engine.Scene) engine.Logic { return &gameOverLogic{game: g} })
	return g
}

// LastScore returns the score of the last finished round
func (g *Game) LastScore() int { return g.lastScore }

// play starts a named sound effect when audio is available
func (g *Game) play(name string) {
	if g.audio == nil {
		return
	}
	if s := audio.Effect(name, g.audio.SampleRate()); s != nil {
		g.audio.Play(s)
	}
}

// loadingLogic waits loadingDelay of simulation time, then opens the menu
type loadingLogic struct {
	game  *Game
	armed bool
}

func (l *loadingLogic) Awake() {
	if l.armed {
		return
	}
	l.armed = true
	l.game.timer.After(loadingDelay, func() { l.game.rt.SetScene(SceneMenu) })
}

// menuLogic waits for confirmation
type menuLogic struct {
	game *Game
}

func (m *menuLogic) HandleKey(k Key) {
	if k == KeyConfirm || k == KeyFire {
		m.game.play(audio.SoundSelect)
		m.game.rt.SetScene(SceneSpace)
	}
}

// gameOverLogic shows the final score and returns to the menu
type gameOverLogic struct {
	game *Game
}

func (g *gameOverLogic) HandleKey(k Key) {
	if k == KeyConfirm {
		g.game.rt.SetScene(SceneMenu)
	}
}
