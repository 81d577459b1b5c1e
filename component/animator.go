package component

import "github.com/emberforge/ember/asset"

// AnimatorComponent plays clips from a loaded animation set. Frame stepping
// is done by the animator system in the update phase; game code switches
// clips through Play.
type AnimatorComponent struct {
	Set  *asset.AnimationSet
	Clip string

	Frame   int
	Elapsed float64 // seconds into the current frame
	Reverse bool    // ping-pong direction
	Playing bool
	Done    bool // set when a "once" clip finishes
}

// NewAnimator creates an animator starting on the given clip.
func NewAnimator(set *asset.AnimationSet, clip string) AnimatorComponent {
	return AnimatorComponent{Set: set, Clip: clip, Playing: true}
}

// Play restarts playback on a clip. Switching to the current clip rewinds it.
func (a *AnimatorComponent) Play(clip string) {
	a.Clip = clip
	a.Frame = 0
	a.Elapsed = 0
	a.Reverse = false
	a.Playing = true
	a.Done = false
}
