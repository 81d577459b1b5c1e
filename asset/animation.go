// Package asset loads persisted animation documents. The on-disk format is
// a JSON file describing either a sprite-sheet (frames reference x/y/w/h
// regions of one texture) or an image sequence (frames reference separate
// files).
package asset

import (
	"encoding/json"
	"fmt"
	"os"
)

// LoopMode controls what happens when a clip reaches its last frame.
type LoopMode string

const (
	LoopOnce     LoopMode = "once"
	LoopForever  LoopMode = "loop"
	LoopPingPong LoopMode = "ping_pong"
)

// Document types.
const (
	TypeSheet    = "sheet"
	TypeSequence = "image_sequence"
)

// Frame is one animation frame. Sheet mode uses X/Y/W/H; sequence mode uses
// Path. DurationMS overrides the clip FPS for this frame when non-zero.
type Frame struct {
	X          int    `json:"x,omitempty"`
	Y          int    `json:"y,omitempty"`
	W          int    `json:"w,omitempty"`
	H          int    `json:"h,omitempty"`
	Path       string `json:"path,omitempty"`
	DurationMS int    `json:"duration_ms,omitempty"`
}

// Clip is one named animation.
type Clip struct {
	FPS    float64  `json:"fps"`
	Loop   LoopMode `json:"loop"`
	Frames []Frame  `json:"frames"`
}

// FrameDuration returns the display time of frame i in seconds.
func (c Clip) FrameDuration(i int) float64 {
	if i >= 0 && i < len(c.Frames) && c.Frames[i].DurationMS > 0 {
		return float64(c.Frames[i].DurationMS) / 1000
	}
	if c.FPS > 0 {
		return 1 / c.FPS
	}
	return 1.0 / 10
}

// AnimationSet is a parsed animation document.
type AnimationSet struct {
	Name        string          `json:"name"`
	TexturePath string          `json:"texture_path,omitempty"`
	Type        string          `json:"type,omitempty"`
	Animations  map[string]Clip `json:"animations"`
}

// Clip returns a named clip.
func (s *AnimationSet) Clip(name string) (Clip, bool) {
	c, ok := s.Animations[name]
	return c, ok
}

// Parse decodes and validates an animation document.
func Parse(data []byte) (*AnimationSet, error) {
	var set AnimationSet
	if err := json.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("failed to parse animation document: %w", err)
	}
	if set.Name == "" {
		return nil, fmt.Errorf("animation document missing name")
	}
	if set.Type == "" {
		set.Type = TypeSheet
	}
	for name, clip := range set.Animations {
		if len(clip.Frames) == 0 {
			return nil, fmt.Errorf("animation %q has no frames", name)
		}
		switch clip.Loop {
		case LoopOnce, LoopForever, LoopPingPong:
		case "":
			clip.Loop = LoopForever
			set.Animations[name] = clip
		default:
			return nil, fmt.Errorf("animation %q has unknown loop mode %q", name, clip.Loop)
		}
	}
	return &set, nil
}

// Load reads and parses an animation document from disk.
func Load(path string) (*AnimationSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read animation document: %w", err)
	}
	return Parse(data)
}
