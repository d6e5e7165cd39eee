// Package physics implements the per-entity kernel of the sphere sandbox.
//
// A frame update for one [Body] is made of two correction passes followed by
// integration:
//
//   - [Clamp]: forces the centre back inside the viewport [Bounds] and
//     reflects the velocity component of every axis in edge contact
//   - [Resolve]: separates the body from every overlapping neighbour and
//     reverses its own velocity once per contact
//   - [Body.Advance]: adds the velocity to the position
//
// # Collision Model
//
// Momentum and mass are not modelled. A contact inverts both velocity
// components of the body being updated and leaves the neighbour's velocity
// alone; the neighbour applies the same inversion when its own update runs.
// Each physical contact is therefore seen once from each side per frame.
//
//	b := &physics.Body{X: 100, Y: 100, Radius: 25, VX: 5, VY: 5}
//	contact := physics.Clamp(b, physics.NewBounds(1920, 1080))
//	hits := physics.Resolve(b, neighbours, nil)
//	b.Advance()
package physics
