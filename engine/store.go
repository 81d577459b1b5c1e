package engine

import (
	"sync"

	"github.com/emberforge/ember/core"
)

// Store is a generic container for a specific component type T.
// Keeps a dense entity slice alongside the map for allocation-free
// iteration; entities stay in insertion order until the first removal
// (Remove swap-removes).
//
// Composition changes can carry side effects (the world wires physics
// lifecycle into collider/rigidbody stores): Set fires the add hook only on
// first insertion, Remove fires the remove hook with the last value, and
// Update mutates in place without firing anything. Hooks run after the
// store lock is released so they may call back into the same store.
type Store[T any] struct {
	mu         sync.RWMutex
	components map[core.Entity]T
	entities   []core.Entity

	onAdd    func(core.Entity)
	onRemove func(core.Entity, T)
}

// NewStore creates a new component store for type T.
func NewStore[T any]() *Store[T] {
	return &Store[T]{
		components: make(map[core.Entity]T),
		entities:   make([]core.Entity, 0, 64),
	}
}

// OnAdd registers the hook fired after a component is first added to an entity.
func (s *Store[T]) OnAdd(fn func(core.Entity)) {
	s.onAdd = fn
}

// OnRemove registers the hook fired after a component is removed, receiving
// the removed value.
func (s *Store[T]) OnRemove(fn func(core.Entity, T)) {
	s.onRemove = fn
}

// Set inserts or replaces the component for an entity.
func (s *Store[T]) Set(e core.Entity, val T) {
	s.mu.Lock()
	_, existed := s.components[e]
	if !existed {
		s.entities = append(s.entities, e)
	}
	s.components[e] = val
	s.mu.Unlock()

	if !existed && s.onAdd != nil {
		s.onAdd(e)
	}
}

// Get retrieves the component for an entity.
func (s *Store[T]) Get(e core.Entity) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.components[e]
	return val, ok
}

// Update mutates the component in place without firing hooks.
// Returns false if the entity has no component of this type.
func (s *Store[T]) Update(e core.Entity, fn func(*T)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	val, ok := s.components[e]
	if !ok {
		return false
	}
	fn(&val)
	s.components[e] = val
	return true
}

// Remove deletes the component from an entity.
func (s *Store[T]) Remove(e core.Entity) {
	s.mu.Lock()
	val, ok := s.components[e]
	if ok {
		delete(s.components, e)
		for i, entity := range s.entities {
			if entity == e {
				s.entities[i] = s.entities[len(s.entities)-1]
				s.entities = s.entities[:len(s.entities)-1]
				break
			}
		}
	}
	s.mu.Unlock()

	if ok && s.onRemove != nil {
		s.onRemove(e, val)
	}
}

// Has checks if an entity has this component.
func (s *Store[T]) Has(e core.Entity) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.components[e]
	return ok
}

// Entities returns a copy of all entities with this component type.
func (s *Store[T]) Entities() []core.Entity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]core.Entity, len(s.entities))
	copy(result, s.entities)
	return result
}

// Count returns the number of entities with this component.
func (s *Store[T]) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entities)
}

// Clear removes all components without firing hooks.
func (s *Store[T]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.components = make(map[core.Entity]T)
	s.entities = s.entities[:0]
}
