package system

import (
	"fmt"

	"github.com/emberforge/ember/core"
	"github.com/emberforge/ember/display"
	"github.com/emberforge/ember/engine"
)

// Debug draws the FPS counter and, when scheduler profiling is enabled,
// per-system timing lines in the top-left corner. Register it with a high
// priority so it lands on top of the scene.
type Debug struct {
	Display   display.Backend
	Scheduler *engine.Scheduler
	Time      *engine.TimeState

	// ShowSystems adds one timing line per registered system.
	ShowSystems bool
}

// NewDebug creates the overlay over the engine's own parts.
func NewDebug(e *engine.Engine) *Debug {
	return &Debug{
		Display:   e.Display,
		Scheduler: e.Scheduler,
		Time:      e.Time,
	}
}

// Render implements the overlay pass.
func (d *Debug) Render(w *engine.World) {
	line := fmt.Sprintf("fps %5.1f  entities %d  frame %d",
		d.Time.FPS(), w.EntityCount(), d.Time.FrameCount)
	d.Display.DrawText(0, 0, line, core.RGBYellow)

	if !d.ShowSystems {
		return
	}
	y := 1.0
	for _, name := range d.Scheduler.Names() {
		stats, ok := d.Scheduler.Stats(name)
		if !ok || stats.Calls == 0 {
			continue
		}
		d.Display.DrawText(0, y, fmt.Sprintf("%-16s avg %8s max %8s", name, stats.Avg, stats.Max), core.RGBGray)
		y++
	}
}
