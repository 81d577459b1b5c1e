// ember-demo boots the engine with the built-in systems and either hosts a
// hot-reloadable game module (-module) or runs a small built-in scene that
// exercises physics, the character mover and sprite rendering.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/pkg/profile"
	"go.uber.org/zap"

	"github.com/emberforge/ember/audio"
	"github.com/emberforge/ember/component"
	"github.com/emberforge/ember/core"
	"github.com/emberforge/ember/display"
	"github.com/emberforge/ember/engine"
	"github.com/emberforge/ember/hotload"
	"github.com/emberforge/ember/logging"
	"github.com/emberforge/ember/service"
	"github.com/emberforge/ember/system"
)

var (
	configFlag  = flag.String("config", "", "Path to YAML engine config (defaults built in)")
	moduleFlag  = flag.String("module", "", "Path to a hot-reloadable game module (.so)")
	logFlag     = flag.String("log-level", "info", "Log level: debug, info, warn, error")
	muteFlag    = flag.Bool("mute", false, "Start with audio muted")
	debugFlag   = flag.Bool("debug", false, "Show the debug overlay with per-system timings")
	profileFlag = flag.Bool("profile", false, "Write a CPU profile to the working directory")
)

func main() {
	// The terminal backend owns the screen; reset it before printing a
	// crash so the trace is readable.
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "\nember-demo crashed: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	flag.Parse()

	if *profileFlag {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	}

	log, err := logging.New(logging.Options{Level: *logFlag})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logging: %v\n", err)
		os.Exit(1)
	}

	cfg := engine.DefaultConfig()
	if *configFlag != "" {
		cfg, err = engine.LoadConfig(*configFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
			os.Exit(1)
		}
	}

	eng, err := engine.New(cfg, display.NewTerminal(), log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize engine: %v\n", err)
		os.Exit(1)
	}
	defer eng.Shutdown()

	runner := service.NewRunner()
	sound := audio.NewService()
	if err := runner.Register(sound); err != nil {
		log.Error("service registration failed", zap.Error(err))
	}
	if err := runner.StartAll(map[string][]any{"audio": {*muteFlag}}); err != nil {
		log.Warn("service startup incomplete", zap.Error(err))
	}
	defer runner.StopAll()

	registerBuiltins(eng, *debugFlag)

	var host *hotload.Host
	if *moduleFlag != "" {
		host = hotload.NewHost(*moduleFlag, eng, hotload.HostOptions{Log: log})
		if err := host.Load(); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load game module: %v\n", err)
			os.Exit(1)
		}
		defer host.Destroy()

		eng.Scheduler.AddSystem("module", engine.PhaseUpdate, func(_ *engine.World, dt float64) {
			host.CallUpdate(dt)
		}, 100)
		eng.Scheduler.AddRenderSystem("module", func(*engine.World) {
			host.CallRender()
		}, 100)
	} else {
		spawnDemoScene(eng, sound)
	}

	for eng.Step() {
		if host != nil {
			gen := host.Generation()
			host.Poll(eng.Time.UnscaledDelta)
			if !host.Loaded() {
				log.Error("game module lost, exiting")
				break
			}
			if host.Generation() != gen {
				sound.Play(audio.CueReload)
			}
		}
		if eng.Display.Input().KeyPressed(display.KeyRune('m')) {
			sound.ToggleMute()
		}
	}
}

// registerBuiltins wires the stock systems in their canonical phases.
func registerBuiltins(eng *engine.Engine, overlay bool) {
	cfg := eng.Config

	eng.Scheduler.AddSystem("animator", engine.PhaseUpdate, system.NewAnimator().Update, 0)
	eng.Scheduler.AddSystem("physics", engine.PhaseFixedUpdate, system.NewPhysics(cfg.PhysicsSubsteps).Update, 0)
	eng.Scheduler.AddSystem("mover", engine.PhaseFixedUpdate, system.NewMover(cfg.Gravity).Update, 10)
	eng.Scheduler.AddRenderSystem("sprites", system.NewSpriteRender(eng.Display).Render, 0)

	if overlay {
		eng.Scheduler.EnableProfiling(true)
		dbg := system.NewDebug(eng)
		dbg.ShowSystems = true
		eng.Scheduler.AddRenderSystem("debug", dbg.Render, 1000)
	}
}

// spawnDemoScene builds a floor, a pile of falling crates and a player
// capsule steered with the arrow keys.
func spawnDemoScene(eng *engine.Engine, sound *audio.AudioService) {
	w := eng.World
	width := float64(eng.Config.DesignWidth)
	floorY := float64(eng.Config.DesignHeight) - 2

	// Static floor: collider + transform, no rigidbody, so the world gives
	// it an implicit static body.
	floor := w.NewEntity()
	engine.With(floor, w.Components.Transforms, component.NewTransform(width/2, floorY))
	engine.With(floor, w.Components.Colliders, component.NewBoxCollider(width, 1))
	engine.With(floor, w.Components.Sprites, component.SpriteComponent{Rune: '=', FG: core.RGBGray, Visible: true})
	floor.Build()

	for i := 0; i < 5; i++ {
		crate := w.NewEntity()
		engine.With(crate, w.Components.Transforms, component.NewTransform(width/2-10+float64(i)*5, 4+float64(i)*2))
		engine.With(crate, w.Components.Rigidbodies, component.NewRigidbody(component.BodyDynamic))
		engine.With(crate, w.Components.Colliders, component.NewBoxCollider(2, 1))
		engine.With(crate, w.Components.Sprites, component.SpriteComponent{Rune: '#', FG: core.RGBYellow, Layer: 1, Visible: true})
		crate.Build()
	}

	player := w.NewEntity()
	engine.With(player, w.Components.Transforms, component.NewTransform(width/2, floorY-2))
	engine.With(player, w.Components.Characters, component.NewCharacterBody(1, 2))
	engine.With(player, w.Components.Sprites, component.SpriteComponent{Rune: '@', FG: core.RGBGreen, Layer: 2, Visible: true})
	playerID := player.Build()

	const (
		moveSpeed = 20.0
		jumpSpeed = 28.0
	)
	eng.Scheduler.AddSystem("player", engine.PhaseUpdate, func(w *engine.World, dt float64) {
		in := eng.Display.Input()
		w.Components.Characters.Update(playerID, func(c *component.CharacterBodyComponent) {
			c.Velocity.X = 0
			if in.KeyDown(display.KeyLeft) {
				c.Velocity.X = -moveSpeed
			}
			if in.KeyDown(display.KeyRight) {
				c.Velocity.X = moveSpeed
			}
			if in.KeyPressed(display.KeyUp) && c.OnFloor {
				c.Velocity.Y = -jumpSpeed
				sound.Play(audio.CueJump)
			}
		})
	}, 0)
}
