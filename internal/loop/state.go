package loop

import (
	"slices"

	"github.com/tomz197/wrangler/internal/object"
)

// ReservedEntities is the number of registry slots held by the Background,
// Goal and Avatar. Collision scanning starts after them.
const ReservedEntities = 3

// Registry holds every live entity in spawn order.
// It is owned by the engine goroutine and is not safe for concurrent use.
type Registry struct {
	entities []object.Entity
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		entities: []object.Entity{},
	}
}

// Spawn appends an entity. Implements object.Spawner.
func (r *Registry) Spawn(e object.Entity) {
	r.entities = append(r.entities, e)
}

// Compact removes every destroyed entity, keeping survivors in order.
// Returns how many entities were removed.
func (r *Registry) Compact() int {
	removed := 0
	for i := len(r.entities) - 1; i >= 0; i-- {
		if r.entities[i].IsDestroyed() {
			r.entities = slices.Delete(r.entities, i, i+1)
			removed++
		}
	}
	return removed
}

// Len returns the number of entities, destroyed or not.
func (r *Registry) Len() int {
	return len(r.entities)
}

// At returns the entity at index i.
func (r *Registry) At(i int) object.Entity {
	return r.entities[i]
}

// Entities returns the registry's backing slice. Callers must not modify it.
func (r *Registry) Entities() []object.Entity {
	return r.entities
}
