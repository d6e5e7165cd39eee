package sim

import (
	"iter"
	"slices"

	"github.com/san-kum/bounce/internal/physics"
)

// Counters are the session statistics. They only ever grow.
type Counters struct {
	Spawned    uint64 `json:"spawned"`
	WallHits   uint64 `json:"wall_hits"`
	SphereHits uint64 `json:"sphere_hits"`
}

// Registry is the authoritative set of live spheres. Iteration follows
// registration order, which is also the collision pairing order.
//
// A Registry is not safe for concurrent use; the simulator goroutine owns it.
type Registry struct {
	byHandle map[Handle]*Sphere
	order    []*Sphere
	counters Counters
}

func NewRegistry() *Registry {
	return &Registry{byHandle: make(map[Handle]*Sphere)}
}

// Add appends s and counts it as spawned. It reports false if the handle is
// already registered.
func (r *Registry) Add(s *Sphere) bool {
	if _, ok := r.byHandle[s.handle]; ok {
		return false
	}
	r.byHandle[s.handle] = s
	r.order = append(r.order, s)
	r.counters.Spawned++
	return true
}

// Remove drops the sphere with handle h. Unknown handles are ignored.
func (r *Registry) Remove(h Handle) bool {
	s, ok := r.byHandle[h]
	if !ok {
		return false
	}
	delete(r.byHandle, h)
	if i := slices.Index(r.order, s); i >= 0 {
		r.order = slices.Delete(r.order, i, i+1)
	}
	return true
}

// Clear removes every sphere and returns the handles that were live, in
// registration order. Counters are kept.
func (r *Registry) Clear() []Handle {
	handles := make([]Handle, len(r.order))
	for i, s := range r.order {
		handles[i] = s.handle
	}
	clear(r.byHandle)
	clear(r.order)
	r.order = r.order[:0]
	return handles
}

func (r *Registry) Get(h Handle) (*Sphere, bool) {
	s, ok := r.byHandle[h]
	return s, ok
}

func (r *Registry) Has(h Handle) bool {
	_, ok := r.byHandle[h]
	return ok
}

func (r *Registry) Len() int { return len(r.order) }

// All yields the live spheres in registration order.
func (r *Registry) All() iter.Seq[*Sphere] {
	return func(yield func(*Sphere) bool) {
		for _, s := range r.order {
			if !yield(s) {
				return
			}
		}
	}
}

// Bodies yields the kinematic state of every live sphere in registration
// order, for the collision pass.
func (r *Registry) Bodies() iter.Seq[*physics.Body] {
	return func(yield func(*physics.Body) bool) {
		for _, s := range r.order {
			if !yield(&s.body) {
				return
			}
		}
	}
}

func (r *Registry) Counters() Counters { return r.counters }

func (r *Registry) addWallHits(n int) {
	r.counters.WallHits += uint64(n)
}

func (r *Registry) addSphereHits(n int) {
	r.counters.SphereHits += uint64(n)
}
