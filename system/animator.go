package system

import (
	"github.com/emberforge/ember/asset"
	"github.com/emberforge/ember/component"
	"github.com/emberforge/ember/engine"
)

// Animator steps clip playback for every playing animator in the update
// phase. Per-frame durations come from the clip (per-frame override or FPS),
// so a long frame can swallow several ticks and a short one can advance
// multiple frames in a single tick.
type Animator struct{}

// NewAnimator creates the animation playback system.
func NewAnimator() *Animator {
	return &Animator{}
}

// Update implements clip playback.
func (s *Animator) Update(w *engine.World, dt float64) {
	for _, e := range w.Components.Animators.Entities() {
		w.Components.Animators.Update(e, func(a *component.AnimatorComponent) {
			step(a, dt)
		})
	}
}

func step(a *component.AnimatorComponent, dt float64) {
	if !a.Playing || a.Set == nil {
		return
	}
	clip, ok := a.Set.Clip(a.Clip)
	if !ok || len(clip.Frames) == 0 {
		return
	}
	if a.Frame < 0 || a.Frame >= len(clip.Frames) {
		a.Frame = 0
	}

	a.Elapsed += dt
	for a.Elapsed >= clip.FrameDuration(a.Frame) {
		a.Elapsed -= clip.FrameDuration(a.Frame)
		if !advance(a, len(clip.Frames), clip.Loop) {
			a.Elapsed = 0
			return
		}
	}
}

// advance moves one frame in the playback direction and applies the loop
// mode at the ends. Returns false when playback stopped.
func advance(a *component.AnimatorComponent, frames int, loop asset.LoopMode) bool {
	next := a.Frame + 1
	if a.Reverse {
		next = a.Frame - 1
	}
	if next >= 0 && next < frames {
		a.Frame = next
		return true
	}

	switch loop {
	case asset.LoopOnce:
		a.Frame = frames - 1
		a.Playing = false
		a.Done = true
		return false
	case asset.LoopPingPong:
		if frames == 1 {
			a.Frame = 0
			return true
		}
		a.Reverse = !a.Reverse
		if a.Reverse {
			a.Frame = frames - 2
		} else {
			a.Frame = 1
		}
		return true
	default: // loop
		a.Frame = 0
		return true
	}
}
