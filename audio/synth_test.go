package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"
)

func drain(t *testing.T, s beep.Streamer) [][2]float64 {
	t.Helper()
	var out [][2]float64
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		out = append(out, buf[:n]...)
		if !ok {
			return out
		}
	}
}

func TestToneLengthAndBounds(t *testing.T) {
	rate := beep.SampleRate(48000)
	tone := NewTone(440, 100*time.Millisecond, WaveSine, rate)

	samples := drain(t, tone)
	if want := rate.N(100 * time.Millisecond); len(samples) != want {
		t.Errorf("streamed %d samples, want %d", len(samples), want)
	}
	for i, s := range samples {
		if math.Abs(s[0]) > 1 || math.Abs(s[1]) > 1 {
			t.Fatalf("sample %d out of range: %v", i, s)
		}
		if s[0] != s[1] {
			t.Fatalf("sample %d not mono-duplicated: %v", i, s)
		}
	}
}

func TestToneEnvelopeRampsFromSilence(t *testing.T) {
	rate := beep.SampleRate(48000)
	tone := NewTone(440, 100*time.Millisecond, WaveSquare, rate)
	samples := drain(t, tone)

	// A square wave without an envelope would open at full amplitude.
	if math.Abs(samples[0][0]) > 0.01 {
		t.Errorf("first sample = %v, want near silence", samples[0][0])
	}
	last := samples[len(samples)-1]
	if math.Abs(last[0]) > 0.01 {
		t.Errorf("last sample = %v, want near silence", last[0])
	}
}

func TestSweepFinishes(t *testing.T) {
	rate := beep.SampleRate(48000)
	sw := NewSweep(300, 700, 50*time.Millisecond, rate)

	samples := drain(t, sw)
	if want := rate.N(50 * time.Millisecond); len(samples) != want {
		t.Errorf("streamed %d samples, want %d", len(samples), want)
	}

	// Exhausted streamers stay exhausted.
	n, ok := sw.Stream(make([][2]float64, 16))
	if n != 0 || ok {
		t.Errorf("drained streamer returned n=%d ok=%v", n, ok)
	}
}

func TestServiceMuteDropsCues(t *testing.T) {
	s := NewService()
	if err := s.Init(true); err != nil {
		t.Fatal(err)
	}

	// Never started: Play must refuse rather than touch the speaker.
	if s.Play(CueJump) {
		t.Error("Play succeeded on a stopped service")
	}
	if !s.IsMuted() {
		t.Error("Init(true) did not mute")
	}
	if s.ToggleMute() {
		t.Error("ToggleMute returned muted after unmuting")
	}
	if s.IsMuted() {
		t.Error("still muted after toggle")
	}
}
