// Package audio synthesizes short game cues through the beep speaker.
// Everything is generated, no sample files: a terminal game ships as one
// binary.
package audio

import (
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(48000)

// Cue identifies one of the built-in synthesized sounds.
type Cue int

const (
	CueJump Cue = iota
	CueLand
	CueHit
	CuePickup
	CueReload // module hot-swap chirp
)

// Player is the minimal audio interface game systems depend on.
// Implementations must degrade to no-ops when no backend is available.
type Player interface {
	Play(Cue) bool
	ToggleMute() bool
	IsMuted() bool
}

// AudioService owns the speaker and synthesizes cues on demand.
// Handles graceful degradation when no audio backend is available.
type AudioService struct {
	disabled atomic.Bool
	muted    atomic.Bool
	running  atomic.Bool
}

// NewService creates a new audio service.
func NewService() *AudioService {
	return &AudioService{}
}

// Name implements Service
func (s *AudioService) Name() string {
	return "audio"
}

// Dependencies implements Service
func (s *AudioService) Dependencies() []string {
	return nil
}

// Init implements Service
// args[0]: bool - initial mute state (default = muted)
func (s *AudioService) Init(args ...any) error {
	s.muted.Store(true)
	if len(args) > 0 {
		if muted, ok := args[0].(bool); ok {
			s.muted.Store(muted)
		}
	}
	return nil
}

// Start implements Service
// Opens the speaker; sets disabled on failure (no error returned)
func (s *AudioService) Start() error {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100)); err != nil {
		s.disabled.Store(true)
		return nil
	}
	s.running.Store(true)
	return nil
}

// Stop implements Service
func (s *AudioService) Stop() error {
	if s.running.CompareAndSwap(true, false) {
		speaker.Close()
	}
	return nil
}

// Play implements Player. Returns false when the cue was dropped
// (disabled backend or muted).
func (s *AudioService) Play(c Cue) bool {
	if s.disabled.Load() || s.muted.Load() || !s.running.Load() {
		return false
	}

	var streamer beep.Streamer
	switch c {
	case CueJump:
		streamer = NewSweep(300, 700, 120*time.Millisecond, sampleRate)
	case CueLand:
		streamer = NewSweep(220, 110, 80*time.Millisecond, sampleRate)
	case CueHit:
		streamer = NewTone(120, 150*time.Millisecond, WaveSquare, sampleRate)
	case CuePickup:
		streamer = NewTone(880, 90*time.Millisecond, WaveSine, sampleRate)
	case CueReload:
		streamer = NewSweep(440, 880, 200*time.Millisecond, sampleRate)
	default:
		return false
	}

	speaker.Play(streamer)
	return true
}

// ToggleMute flips the mute state and returns the new state.
func (s *AudioService) ToggleMute() bool {
	for {
		old := s.muted.Load()
		if s.muted.CompareAndSwap(old, !old) {
			return !old
		}
	}
}

// IsMuted reports the current mute state.
func (s *AudioService) IsMuted() bool {
	return s.muted.Load()
}

// IsDisabled returns true if no audio backend is available.
func (s *AudioService) IsDisabled() bool {
	return s.disabled.Load()
}
