package engine

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/emberforge/ember/display"
	"github.com/emberforge/ember/physics"
)

// Engine is the composition root: it owns the world, scheduler, time state
// and display backend, and drives the per-frame control flow.
//
// Frame order is fixed: poll input → advance time → PreUpdate → Update →
// FixedUpdate×N (accumulator drain) → PostUpdate → clear → Render → present.
// Everything runs on the calling goroutine; systems execute to completion
// in phase/priority order, so no locking is needed around the world.
type Engine struct {
	Config    Config
	World     *World
	Scheduler *Scheduler
	Time      *TimeState
	Display   display.Backend
	Log       *zap.Logger
}

// New creates an engine over the built-in physics space.
func New(cfg Config, disp display.Backend, log *zap.Logger) (*Engine, error) {
	return NewWithPhysics(cfg, disp, physics.NewSpace(physics.ToSim(cfg.Gravity)), log)
}

// NewWithPhysics creates an engine over a caller-supplied physics backend.
func NewWithPhysics(cfg Config, disp display.Backend, backend physics.Backend, log *zap.Logger) (*Engine, error) {
	if log == nil {
		log = zap.NewNop()
	}
	cfg.fillDefaults()

	opts := display.Options{
		DesignWidth:  cfg.DesignWidth,
		DesignHeight: cfg.DesignHeight,
		Mode:         cfg.DisplayMode,
	}
	if err := disp.Init(cfg.WindowWidth, cfg.WindowHeight, cfg.WindowTitle, opts); err != nil {
		return nil, fmt.Errorf("failed to initialize display: %w", err)
	}

	e := &Engine{
		Config:    cfg,
		World:     NewWorld(backend, log),
		Scheduler: NewScheduler(),
		Time:      NewTimeState(cfg.FixedTimestep),
		Display:   disp,
		Log:       log,
	}

	log.Info("engine initialized",
		zap.Float64("fixed_timestep", cfg.FixedTimestep),
		zap.Int("substeps", cfg.PhysicsSubsteps))
	return e, nil
}

// Step runs one frame. Returns false when the display requests close.
func (e *Engine) Step() bool {
	if !e.Display.Update() {
		return false
	}

	e.Time.Advance(e.Display.FrameTime())
	dt := e.Time.Delta

	e.Scheduler.RunPhase(e.World, dt, PhasePreUpdate)
	e.Scheduler.RunPhase(e.World, dt, PhaseUpdate)

	for e.Time.ShouldFixedUpdate() {
		e.Scheduler.RunPhase(e.World, e.Time.FixedTimestep, PhaseFixedUpdate)
		e.Time.ConsumeFixedStep()
	}

	e.Scheduler.RunPhase(e.World, dt, PhasePostUpdate)

	e.Display.Clear(e.Config.ClearColor)
	e.Scheduler.RunRender(e.World)
	e.Display.Present()
	return true
}

// Run steps frames until the display requests close.
func (e *Engine) Run() {
	for e.Step() {
	}
}

// Shutdown tears down the display and flushes the logger.
func (e *Engine) Shutdown() {
	e.Display.Shutdown()
	_ = e.Log.Sync()
}
