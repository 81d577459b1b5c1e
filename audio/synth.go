package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates raw audio waves with a linear attack/release
// envelope so short cues do not click.
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	attack   int
	release  int
	gain     float64
	wave     WaveType
	rate     beep.SampleRate
}

// NewTone creates a finite streamer playing one enveloped waveform.
func NewTone(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	samples := rate.N(duration)
	env := rate.N(5 * time.Millisecond)
	if env*2 > samples {
		env = samples / 2
	}
	return &oscillator{
		freq:     freq,
		duration: samples,
		attack:   env,
		release:  env,
		gain:     0.4,
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, false
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = rand.Float64()*2 - 1
		}

		vol := o.gain
		if o.attack > 0 && o.position < o.attack {
			vol *= float64(o.position) / float64(o.attack)
		} else if o.release > 0 && o.position >= o.duration-o.release {
			vol *= float64(o.duration-o.position) / float64(o.release)
		}
		val *= vol

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase = o.phase - math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// sweep is a finite streamer whose frequency glides linearly from start to
// end over its duration. Used for jump/land style cues.
type sweep struct {
	start, end float64
	phase      float64
	duration   int
	position   int
	gain       float64
	rate       beep.SampleRate
}

// NewSweep creates a sine sweep from startFreq to endFreq.
func NewSweep(startFreq, endFreq float64, duration time.Duration, rate beep.SampleRate) beep.Streamer {
	return &sweep{
		start:    startFreq,
		end:      endFreq,
		duration: rate.N(duration),
		gain:     0.4,
		rate:     rate,
	}
}

func (s *sweep) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if s.position >= s.duration {
			return i, false
		}
		t := float64(s.position) / float64(s.duration)
		freq := s.start + (s.end-s.start)*t

		val := math.Sin(2*math.Pi*s.phase) * s.gain * (1 - t)
		samples[i][0] = val
		samples[i][1] = val

		s.phase += freq / float64(s.rate)
		s.phase = s.phase - math.Floor(s.phase)
		s.position++
	}
	return len(samples), true
}

func (s *sweep) Err() error { return nil }
