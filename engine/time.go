package engine

// maxFrameDelta caps the raw per-frame delta. A stalled frame otherwise
// banks an ever-growing backlog of fixed steps that itself stalls the next
// frame (the fixed-timestep spiral of death); the cap bounds the catch-up
// cost to a quarter second of simulation.
const maxFrameDelta = 0.25

const (
	fpsWindow  = 60
	fpsRefresh = 0.5
)

// TimeState converts raw wall-clock frame deltas into a clamped, scaled
// delta for variable-rate systems and a fixed-timestep accumulator for
// deterministic physics stepping. Advanced once per frame by the engine.
type TimeState struct {
	// Delta is the clamped, time-scaled delta of the current frame.
	Delta float64
	// UnscaledDelta is the clamped delta before TimeScale.
	UnscaledDelta float64
	// TimeScale scales Delta. Zero pauses scaled time while unscaled
	// bookkeeping keeps running, so wall-clock systems and UI continue.
	TimeScale float64

	// FixedTimestep is the simulation tick size in seconds.
	FixedTimestep float64
	// Accumulator banks leftover frame time; drained in whole
	// FixedTimestep increments by the fixed-update loop.
	Accumulator float64

	// Elapsed is total scaled time, RealElapsed total unscaled time.
	Elapsed     float64
	RealElapsed float64
	FrameCount  uint64

	fpsSamples [fpsWindow]float64
	fpsIndex   int
	fpsFilled  int
	fpsTimer   float64
	fps        float64
}

// NewTimeState creates a time state with the given fixed timestep.
func NewTimeState(fixedTimestep float64) *TimeState {
	return &TimeState{
		TimeScale:     1,
		FixedTimestep: fixedTimestep,
	}
}

// Advance feeds one raw wall-clock frame delta (seconds) into the state.
func (t *TimeState) Advance(raw float64) {
	if raw < 0 {
		raw = 0
	}
	if raw > maxFrameDelta {
		raw = maxFrameDelta
	}

	t.UnscaledDelta = raw
	t.Delta = raw * t.TimeScale
	t.Accumulator += t.Delta
	t.Elapsed += t.Delta
	t.RealElapsed += raw
	t.FrameCount++

	t.fpsSamples[t.fpsIndex] = raw
	t.fpsIndex = (t.fpsIndex + 1) % fpsWindow
	if t.fpsFilled < fpsWindow {
		t.fpsFilled++
	}
	t.fpsTimer += raw
	if t.fpsTimer >= fpsRefresh {
		t.fpsTimer = 0
		t.fps = t.averageFPS()
	}
}

// ShouldFixedUpdate reports whether at least one whole fixed step is banked.
// The engine loops: run the fixed phase, ConsumeFixedStep, repeat while true.
func (t *TimeState) ShouldFixedUpdate() bool {
	return t.Accumulator >= t.FixedTimestep
}

// ConsumeFixedStep drains one fixed step from the accumulator.
func (t *TimeState) ConsumeFixedStep() {
	t.Accumulator -= t.FixedTimestep
}

// Alpha returns the interpolation fraction of the pending partial step,
// for smoothing rendered positions between physics states.
func (t *TimeState) Alpha() float64 {
	if t.FixedTimestep <= 0 {
		return 0
	}
	return t.Accumulator / t.FixedTimestep
}

// FPS returns the rolling average frame rate. The value only refreshes
// every half second of unscaled time so a displayed counter does not jitter.
func (t *TimeState) FPS() float64 {
	return t.fps
}

func (t *TimeState) averageFPS() float64 {
	if t.fpsFilled == 0 {
		return 0
	}
	sum := 0.0
	for i := 0; i < t.fpsFilled; i++ {
		sum += t.fpsSamples[i]
	}
	if sum <= 0 {
		return 0
	}
	return float64(t.fpsFilled) / sum
}
