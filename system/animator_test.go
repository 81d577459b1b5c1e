package system

import (
	"testing"

	"github.com/emberforge/ember/asset"
	"github.com/emberforge/ember/component"
	"github.com/emberforge/ember/engine"
	"github.com/emberforge/ember/physics"
)

func testSet(loop asset.LoopMode, frames int) *asset.AnimationSet {
	clip := asset.Clip{FPS: 10, Loop: loop}
	for i := 0; i < frames; i++ {
		clip.Frames = append(clip.Frames, asset.Frame{X: i * 16, W: 16, H: 16})
	}
	return &asset.AnimationSet{
		Name:       "test",
		Animations: map[string]asset.Clip{"clip": clip},
	}
}

func TestAnimatorLoops(t *testing.T) {
	a := component.NewAnimator(testSet(asset.LoopForever, 3), "clip")

	// 10 fps: each 0.1s tick advances one frame, wrapping at the end.
	want := []int{1, 2, 0, 1}
	for i, w := range want {
		step(&a, 0.1)
		if a.Frame != w {
			t.Fatalf("tick %d: frame = %d, want %d", i, a.Frame, w)
		}
	}
	if !a.Playing || a.Done {
		t.Errorf("looping clip stopped: playing=%v done=%v", a.Playing, a.Done)
	}
}

func TestAnimatorOnceStopsOnLastFrame(t *testing.T) {
	a := component.NewAnimator(testSet(asset.LoopOnce, 3), "clip")

	for i := 0; i < 10; i++ {
		step(&a, 0.1)
	}
	if a.Frame != 2 {
		t.Errorf("frame = %d, want clamped at 2", a.Frame)
	}
	if a.Playing || !a.Done {
		t.Errorf("once clip state: playing=%v done=%v", a.Playing, a.Done)
	}

	// Play rewinds and restarts.
	a.Play("clip")
	if a.Frame != 0 || !a.Playing || a.Done {
		t.Errorf("Play did not reset: %+v", a)
	}
}

func TestAnimatorPingPongBounces(t *testing.T) {
	a := component.NewAnimator(testSet(asset.LoopPingPong, 3), "clip")

	want := []int{1, 2, 1, 0, 1, 2}
	for i, w := range want {
		step(&a, 0.1)
		if a.Frame != w {
			t.Fatalf("tick %d: frame = %d, want %d (reverse=%v)", i, a.Frame, w, a.Reverse)
		}
	}
}

func TestAnimatorLargeDeltaAdvancesMultipleFrames(t *testing.T) {
	a := component.NewAnimator(testSet(asset.LoopForever, 4), "clip")

	step(&a, 0.35) // 3 whole frames at 10 fps
	if a.Frame != 3 {
		t.Errorf("frame = %d, want 3", a.Frame)
	}
}

func TestAnimatorPerFrameDuration(t *testing.T) {
	set := testSet(asset.LoopForever, 3)
	clip := set.Animations["clip"]
	clip.Frames[0].DurationMS = 300
	set.Animations["clip"] = clip

	a := component.NewAnimator(set, "clip")
	step(&a, 0.1)
	if a.Frame != 0 {
		t.Errorf("long frame skipped early: frame = %d", a.Frame)
	}
	step(&a, 0.25)
	if a.Frame != 1 {
		t.Errorf("frame = %d after 0.35s, want 1", a.Frame)
	}
}

func TestAnimatorIgnoresStoppedAndUnknownClips(t *testing.T) {
	a := component.NewAnimator(testSet(asset.LoopForever, 3), "clip")
	a.Playing = false
	step(&a, 1)
	if a.Frame != 0 {
		t.Error("stopped animator advanced")
	}

	b := component.NewAnimator(testSet(asset.LoopForever, 3), "nope")
	step(&b, 1)
	if b.Frame != 0 {
		t.Error("unknown clip advanced")
	}
}

func TestAnimatorSystemUpdatesStore(t *testing.T) {
	w := engine.NewWorld(physics.NewMock(), nil)
	e := w.CreateEntity()
	w.Components.Animators.Set(e, component.NewAnimator(testSet(asset.LoopForever, 2), "clip"))

	NewAnimator().Update(w, 0.1)

	a, _ := w.Components.Animators.Get(e)
	if a.Frame != 1 {
		t.Errorf("store frame = %d, want 1", a.Frame)
	}
}
