package sim

import "github.com/san-kum/bounce/internal/physics"

// EntityView is a read-only copy of one sphere.
type EntityView struct {
	Handle Handle  `json:"handle"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Radius float64 `json:"radius"`
	VX     float64 `json:"vx"`
	VY     float64 `json:"vy"`
	Color  Color   `json:"color"`
}

// Snapshot is an immutable copy of the simulation published after each tick.
// It shares no memory with the live registry and is safe to read from any
// goroutine.
type Snapshot struct {
	Frame    uint64         `json:"frame"`
	Bounds   physics.Bounds `json:"bounds"`
	Entities []EntityView   `json:"entities"`
	Counters Counters       `json:"counters"`
	Pending  int            `json:"pending"`
}

// Running is the number of live spheres.
func (s *Snapshot) Running() int { return len(s.Entities) }

// Find returns the view of h, if it was live when the snapshot was taken.
func (s *Snapshot) Find(h Handle) (EntityView, bool) {
	for _, e := range s.Entities {
		if e.Handle == h {
			return e, true
		}
	}
	return EntityView{}, false
}

// At returns the topmost sphere containing the point, the most recently
// spawned one winning.
func (s *Snapshot) At(x, y float64) (EntityView, bool) {
	for i := len(s.Entities) - 1; i >= 0; i-- {
		e := s.Entities[i]
		dx, dy := x-e.X, y-e.Y
		if dx*dx+dy*dy <= e.Radius*e.Radius {
			return e, true
		}
	}
	return EntityView{}, false
}
