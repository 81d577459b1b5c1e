package engine

import "time"

// Phase identifies one of the five fixed scheduler buckets. The engine runs
// them in declaration order each frame; PhaseFixedUpdate may run zero or
// many times per frame depending on the time accumulator.
type Phase uint8

const (
	PhasePreUpdate Phase = iota
	PhaseUpdate
	PhaseFixedUpdate
	PhasePostUpdate
	PhaseRender

	phaseCount
)

// UpdateFunc is an update-style system callback.
type UpdateFunc func(w *World, dt float64)

// RenderFunc is a render-style system callback.
type RenderFunc func(w *World)

// SystemStats holds rolling profiling data for one system.
// Avg is an exponential moving average so a single frame spike does not
// distort reporting.
type SystemStats struct {
	Last  time.Duration
	Avg   time.Duration
	Max   time.Duration
	Calls uint64
}

const profileAlpha = 0.1

type systemEntry struct {
	name     string
	phase    Phase
	update   UpdateFunc
	render   RenderFunc
	enabled  bool
	priority int
	stats    SystemStats
}

// Scheduler is an ordered, phase-bucketed registry of system callbacks.
// Within a phase, systems run in ascending priority; ties keep registration
// order. Entries are never removed, only disabled.
type Scheduler struct {
	entries   []systemEntry
	order     [phaseCount][]int
	dirty     bool
	profiling bool
}

// NewScheduler creates an empty scheduler. Profiling is off by default to
// avoid timer overhead.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// AddSystem registers an update-style callback in a phase.
// Lower priority runs first.
func (s *Scheduler) AddSystem(name string, phase Phase, fn UpdateFunc, priority int) {
	s.entries = append(s.entries, systemEntry{
		name:     name,
		phase:    phase,
		update:   fn,
		enabled:  true,
		priority: priority,
	})
	s.dirty = true
}

// AddRenderSystem registers a render-style callback in the render phase.
func (s *Scheduler) AddRenderSystem(name string, fn RenderFunc, priority int) {
	s.entries = append(s.entries, systemEntry{
		name:     name,
		phase:    PhaseRender,
		render:   fn,
		enabled:  true,
		priority: priority,
	})
	s.dirty = true
}

// SetEnabled toggles a system by name. Unknown names are ignored and
// reported as false rather than treated as fatal.
func (s *Scheduler) SetEnabled(name string, enabled bool) bool {
	for i := range s.entries {
		if s.entries[i].name == name {
			s.entries[i].enabled = enabled
			return true
		}
	}
	return false
}

// EnableProfiling switches per-system call timing on or off.
func (s *Scheduler) EnableProfiling(on bool) {
	s.profiling = on
}

// Stats returns the profiling statistics for a named system.
func (s *Scheduler) Stats(name string) (SystemStats, bool) {
	for i := range s.entries {
		if s.entries[i].name == name {
			return s.entries[i].stats, true
		}
	}
	return SystemStats{}, false
}

// Names returns all registered system names in registration order.
func (s *Scheduler) Names() []string {
	names := make([]string, len(s.entries))
	for i := range s.entries {
		names[i] = s.entries[i].name
	}
	return names
}

// ensureSorted rebuilds the per-phase execution order. Insertion sort keeps
// equal priorities in registration order; that stability is part of the
// scheduler's contract.
func (s *Scheduler) ensureSorted() {
	if !s.dirty {
		return
	}
	for p := range s.order {
		s.order[p] = s.order[p][:0]
	}
	for i := range s.entries {
		p := s.entries[i].phase
		s.order[p] = append(s.order[p], i)
	}
	for p := range s.order {
		order := s.order[p]
		for i := 1; i < len(order); i++ {
			j := i
			for j > 0 && s.entries[order[j-1]].priority > s.entries[order[j]].priority {
				order[j-1], order[j] = order[j], order[j-1]
				j--
			}
		}
	}
	s.dirty = false
}

// RunPhase executes the update-style systems of one phase in order.
// The scheduler is phase-agnostic about repetition: the engine may call it
// for PhaseFixedUpdate any number of times per frame.
func (s *Scheduler) RunPhase(w *World, dt float64, phase Phase) {
	if phase >= phaseCount {
		return
	}
	s.ensureSorted()
	for _, idx := range s.order[phase] {
		e := &s.entries[idx]
		if !e.enabled || e.update == nil {
			continue
		}
		if s.profiling {
			start := time.Now()
			e.update(w, dt)
			s.record(e, time.Since(start))
		} else {
			e.update(w, dt)
		}
	}
}

// RunRender executes the render-style systems in order.
func (s *Scheduler) RunRender(w *World) {
	s.ensureSorted()
	for _, idx := range s.order[PhaseRender] {
		e := &s.entries[idx]
		if !e.enabled || e.render == nil {
			continue
		}
		if s.profiling {
			start := time.Now()
			e.render(w)
			s.record(e, time.Since(start))
		} else {
			e.render(w)
		}
	}
}

func (s *Scheduler) record(e *systemEntry, d time.Duration) {
	e.stats.Last = d
	if e.stats.Calls == 0 {
		e.stats.Avg = d
	} else {
		e.stats.Avg = time.Duration(profileAlpha*float64(d) + (1-profileAlpha)*float64(e.stats.Avg))
	}
	if d > e.stats.Max {
		e.stats.Max = d
	}
	e.stats.Calls++
}
