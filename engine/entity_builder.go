package engine

import "github.com/emberforge/ember/core"

// EntityBuilder provides a fluent, type-safe interface for constructing
// entities with components. Components land in their stores as each With
// call runs, so the physics auto-init rule fires naturally partway through
// the chain and completes on whichever add satisfies its preconditions.
//
// Example:
//
//	entity := With(world.NewEntity(), w.Components.Transforms, component.NewTransform(10, 5)).
//		Build()
type EntityBuilder struct {
	world  *World
	entity core.Entity
	built  bool
}

// NewEntity creates a new EntityBuilder with a reserved entity ID.
func (w *World) NewEntity() *EntityBuilder {
	return &EntityBuilder{
		world:  w,
		entity: w.CreateEntity(),
	}
}

// With adds a component of type T to the entity being built.
// Panics if called after Build().
func With[T any](eb *EntityBuilder, store *Store[T], component T) *EntityBuilder {
	if eb.built {
		panic("entity already built - cannot add components after Build()")
	}
	store.Set(eb.entity, component)
	return eb
}

// Build finalizes entity construction and returns the entity ID.
func (eb *EntityBuilder) Build() core.Entity {
	eb.built = true
	return eb.entity
}
