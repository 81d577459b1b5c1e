package engine

import (
	"testing"

	"github.com/emberforge/ember/display"
	"github.com/emberforge/ember/physics"
)

func newTestEngine(t *testing.T, disp *display.Null) *Engine {
	t.Helper()
	e, err := NewWithPhysics(DefaultConfig(), disp, physics.NewMock(), nil)
	if err != nil {
		t.Fatalf("NewWithPhysics: %v", err)
	}
	return e
}

func TestEngineStepPhaseOrder(t *testing.T) {
	disp := display.NewNull()
	e := newTestEngine(t, disp)

	var ran []string
	mark := func(name string, phase Phase) {
		e.Scheduler.AddSystem(name, phase, func(*World, float64) {
			ran = append(ran, name)
		}, 0)
	}
	mark("pre", PhasePreUpdate)
	mark("update", PhaseUpdate)
	mark("fixed", PhaseFixedUpdate)
	mark("post", PhasePostUpdate)
	e.Scheduler.AddRenderSystem("render", func(*World) { ran = append(ran, "render") }, 0)

	if !e.Step() {
		t.Fatal("Step returned false on an open display")
	}

	want := []string{"pre", "update", "fixed", "post", "render"}
	if len(ran) != len(want) {
		t.Fatalf("ran %v, want %v", ran, want)
	}
	for i := range want {
		if ran[i] != want[i] {
			t.Fatalf("ran %v, want %v", ran, want)
		}
	}

	if disp.Clears != 1 || disp.Presents != 1 {
		t.Errorf("clears=%d presents=%d, want 1/1", disp.Clears, disp.Presents)
	}
}

func TestEngineFixedStepDrain(t *testing.T) {
	disp := display.NewNull()
	disp.FrameDelta = 3.5 / 60 // banks 3 whole fixed steps per frame
	e := newTestEngine(t, disp)

	fixed := 0
	e.Scheduler.AddSystem("fixed", PhaseFixedUpdate, func(_ *World, dt float64) {
		fixed++
		if dt != e.Time.FixedTimestep {
			t.Errorf("fixed dt = %v, want %v", dt, e.Time.FixedTimestep)
		}
	}, 0)

	e.Step()
	if fixed != 3 {
		t.Errorf("fixed phase ran %d times, want 3", fixed)
	}
}

func TestEngineRunStopsOnClose(t *testing.T) {
	disp := display.NewNull()
	disp.MaxFrames = 5
	e := newTestEngine(t, disp)

	frames := 0
	e.Scheduler.AddSystem("count", PhaseUpdate, func(*World, float64) { frames++ }, 0)

	e.Run()
	if frames != 5 {
		t.Errorf("ran %d frames before close, want 5", frames)
	}
}

func TestEngineStepsMockBackend(t *testing.T) {
	disp := display.NewNull()
	mock := physics.NewMock()
	e, err := NewWithPhysics(DefaultConfig(), disp, mock, nil)
	if err != nil {
		t.Fatal(err)
	}
	e.Scheduler.AddSystem("step", PhaseFixedUpdate, func(w *World, dt float64) {
		w.Physics.Step(dt, e.Config.PhysicsSubsteps)
	}, 0)

	e.Step()
	if mock.StepCalls != 1 {
		t.Errorf("StepCalls = %d, want 1", mock.StepCalls)
	}
}

func TestConfigDefaults(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.FixedTimestep <= 0 {
		t.Error("default fixed timestep not positive")
	}
	if cfg.PhysicsSubsteps <= 0 {
		t.Error("default substeps not positive")
	}

	var zero Config
	zero.fillDefaults()
	if zero.FixedTimestep != cfg.FixedTimestep {
		t.Errorf("fillDefaults timestep = %v, want %v", zero.FixedTimestep, cfg.FixedTimestep)
	}
	if zero.WindowWidth == 0 || zero.WindowHeight == 0 {
		t.Error("fillDefaults left window size zero")
	}
}
