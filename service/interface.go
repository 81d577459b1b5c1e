// Package service defines the lifecycle contract for infrastructure
// subsystems that live beside the engine core: audio backends, hot-reload
// hosts, anything owning long-lived resources or goroutines.
package service

import "fmt"

// Service is the lifecycle interface for an infrastructure subsystem.
//
// Lifecycle:
//  1. Construction (via factory)
//  2. Init(args...) - configuration from parsed flags/env
//  3. Start() - launch background goroutines
//  4. [runtime operation]
//  5. Stop() - halt goroutines, release resources
type Service interface {
	// Name returns the unique identifier for this service
	Name() string

	// Dependencies returns names of services that must Init before this one
	Dependencies() []string

	// Init configures the service from optional args
	// Args are service-specific (mute state, file paths)
	Init(args ...any) error

	// Start begins service operation (launches goroutines if any)
	// Called after all services have initialized
	Start() error

	// Stop halts service operation and releases resources
	// Must be idempotent - safe to call multiple times
	Stop() error
}

// Runner owns a set of services and drives their lifecycle in dependency
// order. Registration order breaks ties between independent services.
type Runner struct {
	services []Service
	started  []Service
}

// NewRunner creates an empty runner.
func NewRunner() *Runner {
	return &Runner{}
}

// Register adds a service. Duplicate names are rejected.
func (r *Runner) Register(s Service) error {
	for _, existing := range r.services {
		if existing.Name() == s.Name() {
			return fmt.Errorf("service %q already registered", s.Name())
		}
	}
	r.services = append(r.services, s)
	return nil
}

// Get returns a registered service by name.
func (r *Runner) Get(name string) (Service, bool) {
	for _, s := range r.services {
		if s.Name() == name {
			return s, true
		}
	}
	return nil, false
}

// StartAll inits then starts every service in dependency order.
// The first failure aborts and stops whatever already started.
func (r *Runner) StartAll(args map[string][]any) error {
	ordered, err := r.resolve()
	if err != nil {
		return err
	}
	for _, s := range ordered {
		if err := s.Init(args[s.Name()]...); err != nil {
			r.StopAll()
			return fmt.Errorf("failed to init service %q: %w", s.Name(), err)
		}
	}
	for _, s := range ordered {
		if err := s.Start(); err != nil {
			r.StopAll()
			return fmt.Errorf("failed to start service %q: %w", s.Name(), err)
		}
		r.started = append(r.started, s)
	}
	return nil
}

// StopAll stops started services in reverse start order.
func (r *Runner) StopAll() {
	for i := len(r.started) - 1; i >= 0; i-- {
		_ = r.started[i].Stop()
	}
	r.started = nil
}

// resolve orders services so dependencies come first. Cycles and unknown
// dependency names are errors.
func (r *Runner) resolve() ([]Service, error) {
	byName := make(map[string]Service, len(r.services))
	for _, s := range r.services {
		byName[s.Name()] = s
	}

	const (
		unvisited = iota
		visiting
		done
	)
	state := make(map[string]int, len(r.services))
	ordered := make([]Service, 0, len(r.services))

	var visit func(s Service) error
	visit = func(s Service) error {
		switch state[s.Name()] {
		case done:
			return nil
		case visiting:
			return fmt.Errorf("service dependency cycle through %q", s.Name())
		}
		state[s.Name()] = visiting
		for _, dep := range s.Dependencies() {
			ds, ok := byName[dep]
			if !ok {
				return fmt.Errorf("service %q depends on unknown service %q", s.Name(), dep)
			}
			if err := visit(ds); err != nil {
				return err
			}
		}
		state[s.Name()] = done
		ordered = append(ordered, s)
		return nil
	}

	for _, s := range r.services {
		if err := visit(s); err != nil {
			return nil, err
		}
	}
	return ordered, nil
}
