// Package geom holds the circle arithmetic shared by the boundary and
// collision passes. Every function is pure; callers guarantee finite inputs.
package geom

import "math"

// Circle is a centre point and a radius in viewport coordinates.
type Circle struct {
	X, Y float64
	R    float64
}

// Distance returns the Euclidean distance between the centres of a and b.
func Distance(a, b Circle) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Overlap returns half the gap between the two boundaries. A negative value is
// the share of penetration each circle has to give up to separate.
func Overlap(a, b Circle) float64 {
	return (Distance(a, b) - a.R - b.R) * 0.5
}

// Collides reports whether the circles touch or interpenetrate.
func Collides(a, b Circle) bool {
	return Distance(a, b) <= a.R+b.R
}
