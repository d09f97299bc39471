package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/stagecore/audio"
	"github.com/lixenwraith/stagecore/config"
	"github.com/lixenwraith/stagecore/core"
	"github.com/lixenwraith/stagecore/engine"
	"github.com/lixenwraith/stagecore/game"
	"github.com/lixenwraith/stagecore/host"
	"github.com/lixenwraith/stagecore/host/ebitenhost"
	"github.com/lixenwraith/stagecore/render"
	"github.com/lixenwraith/stagecore/telemetry"
	"github.com/lixenwraith/stagecore/timer"
)

var (
	configFlag = flag.String("config", "", "Path to a YAML configuration file")
	debugFlag  = flag.Bool("debug", false, "Write logs to "+logDir+"/"+logFileName)
	windowFlag = flag.Bool("ebiten", false, "Open a window instead of drawing in the terminal")
	scaleFlag  = flag.Int("scale", 1, "Window scale factor for -ebiten")
	seedFlag   = flag.Uint64("seed", 0, "Random seed, 0 picks one from the session id")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if *debugFlag {
		cfg.Debug = true
	}

	if logFile := setupLogging(cfg.Debug); logFile != nil {
		defer logFile.Close()
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if *windowFlag {
		err = runWindow(ctx, cfg)
	} else {
		err = runTerminal(ctx, cfg)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "stagecore: %v\n", err)
		os.Exit(1)
	}
}

// app holds what both hosts share
type app struct {
	rt       *engine.Runtime
	game     *game.Game
	bus      *audio.Bus
	shutdown telemetry.Shutdown
}

// newApp builds the runtime on frameHost and renderer and wires audio, tracing and the game
func newApp(ctx context.Context, cfg config.Config, frameHost engine.FrameHost, renderer engine.Renderer) *app {
	logger := log.Default()
	tm := timer.New()
	rt := engine.NewRuntime(engine.Options{
		Config:   cfg,
		Logger:   logger,
		Host:     frameHost,
		Renderer: renderer,
		Timer:    tm,
	})

	shutdown, err := telemetry.Setup(ctx, cfg.Telemetry, rt.Session())
	if err != nil {
		log.Printf("[Telemetry] setup failed: %v (continuing without tracing)", err)
	}

	bus := audio.NewBus(cfg.Audio, logger)
	if err := bus.Start(); err != nil {
		log.Printf("[Audio] start failed: %v (continuing without audio)", err)
	}
	bus.Attach(rt.Events())

	seed := *seedFlag
	if seed == 0 {
		for _, b := range []byte(rt.Session()) {
			seed = seed*31 + uint64(b)
		}
	}

	return &app{
		rt:       rt,
		game:     game.New(rt, game.Deps{Timer: tm, Audio: bus, Seed: seed}),
		bus:      bus,
		shutdown: shutdown,
	}
}

func (a *app) close() {
	a.rt.Stop()
	a.bus.Close()
	if a.shutdown != nil {
		if err := a.shutdown(context.Background()); err != nil {
			log.Printf("[Telemetry] shutdown: %v", err)
		}
	}
	log.Printf("[Main] %s", render.StatusText(a.rt, a.rt.Scene()))
}

// runTerminal draws with tcell and schedules frames on a ticker
// Input is read on its own goroutine and applied on the frame goroutine through Post
func runTerminal(ctx context.Context, cfg config.Config) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	term := render.NewTerminal(screen)
	ticker := host.NewTicker(0)

	core.SetCrashHandler(func(r any) {
		term.Fini()
		fmt.Fprintf(os.Stderr, "\r\n\x1b[31mSTAGECORE CRASHED: %v\x1b[0m\r\n", r)
		fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
		os.Exit(1)
	})
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	a := newApp(ctx, cfg, ticker, term)
	defer a.close()

	if err := a.rt.Start(); err != nil {
		return err
	}
	defer term.Fini()
	screen.EnableFocus()
	a.rt.Resize(screen.Size())

	// Paused runtimes request no frames, keep the screen current for pause toggles
	a.game.SetRedraw(term.Render)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	core.Go(func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			ticker.Post(func() { handleTerminalEvent(a, term, ev, cancel) })
		}
	})

	if err := ticker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func handleTerminalEvent(a *app, term *render.Terminal, ev tcell.Event, quit func()) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if !a.game.HandleKey(terminalKey(ev)) {
			quit()
		}
	case *tcell.EventResize:
		a.rt.Resize(ev.Size())
		if a.rt.Paused() {
			if s := a.rt.Scene(); s != nil {
				term.Render(s)
			}
		}
	case *tcell.EventFocus:
		a.game.Focus(ev.Focused)
	}
}

// runWindow opens an ebiten window that owns the frame loop
func runWindow(ctx context.Context, cfg config.Config) error {
	win := ebitenhost.New(*scaleFlag)
	a := newApp(ctx, cfg, win, win)
	defer a.close()

	win.OnResize(a.rt.Resize)
	poll := ebitenInput(a.game)
	win.OnInput(func() error {
		if ctx.Err() != nil {
			return ebitenhost.ErrQuit
		}
		return poll()
	})

	if err := a.rt.Start(); err != nil {
		return err
	}
	return win.Run()
}
