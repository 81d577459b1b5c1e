package engine

import "github.com/emberforge/ember/component"

// ComponentStore provides cached pointers to the typed component stores.
// Initialized once per world; the pointers stay valid for its lifetime.
type ComponentStore struct {
	Transforms  *Store[component.TransformComponent]
	Rigidbodies *Store[component.RigidbodyComponent]
	Colliders   *Store[component.ColliderComponent]
	Characters  *Store[component.CharacterBodyComponent]

	Sprites   *Store[component.SpriteComponent]
	Animators *Store[component.AnimatorComponent]
}

func newComponentStore() ComponentStore {
	return ComponentStore{
		Transforms:  NewStore[component.TransformComponent](),
		Rigidbodies: NewStore[component.RigidbodyComponent](),
		Colliders:   NewStore[component.ColliderComponent](),
		Characters:  NewStore[component.CharacterBodyComponent](),
		Sprites:     NewStore[component.SpriteComponent](),
		Animators:   NewStore[component.AnimatorComponent](),
	}
}
