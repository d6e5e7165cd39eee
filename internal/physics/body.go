package physics

import (
	"math"

	"github.com/san-kum/bounce/internal/geom"
)

// Body is the mutable kinematic state of one sphere. Velocity is expressed in
// viewport units per frame.
type Body struct {
	X, Y   float64
	Radius float64
	VX, VY float64
}

func (b *Body) Circle() geom.Circle {
	return geom.Circle{X: b.X, Y: b.Y, R: b.Radius}
}

// Advance integrates the position by one frame.
func (b *Body) Advance() {
	b.X += b.VX
	b.Y += b.VY
}

func (b *Body) IsValid() bool {
	for _, v := range [...]float64{b.X, b.Y, b.Radius, b.VX, b.VY} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return b.Radius > 0
}

// Bounds is the viewport rectangle the bodies live in.
type Bounds struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// NewBounds returns a rectangle anchored at the origin.
func NewBounds(width, height float64) Bounds {
	return Bounds{MaxX: width, MaxY: height}
}

func (b Bounds) Width() float64  { return b.MaxX - b.MinX }
func (b Bounds) Height() float64 { return b.MaxY - b.MinY }

// Valid reports whether the rectangle is finite and not inverted.
func (b Bounds) Valid() bool {
	for _, v := range [...]float64{b.MinX, b.MinY, b.MaxX, b.MaxY} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return b.MaxX >= b.MinX && b.MaxY >= b.MinY
}

// Legal returns the interval a centre of the given radius may occupy on each
// axis. When the viewport is narrower than the diameter lo exceeds hi.
func (b Bounds) Legal(radius float64) (loX, hiX, loY, hiY float64) {
	return b.MinX + radius, b.MaxX - radius, b.MinY + radius, b.MaxY - radius
}
