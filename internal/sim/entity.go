package sim

import "github.com/san-kum/bounce/internal/physics"

// Handle identifies a sphere for the lifetime of the process. The zero Handle
// never refers to a sphere.
type Handle uint64

// Sphere is one simulated body. Radius and colour never change after spawn;
// position and velocity are rewritten every frame.
type Sphere struct {
	handle Handle
	color  Color
	body   physics.Body
}

func newSphere(h Handle, body physics.Body, color Color) *Sphere {
	return &Sphere{handle: h, color: color, body: body}
}

func (s *Sphere) Handle() Handle { return s.handle }
func (s *Sphere) Color() Color   { return s.color }
func (s *Sphere) Radius() float64 {
	return s.body.Radius
}

// Body exposes the kinematic state for the correction passes.
func (s *Sphere) Body() *physics.Body { return &s.body }

func (s *Sphere) view() EntityView {
	return EntityView{
		Handle: s.handle,
		X:      s.body.X,
		Y:      s.body.Y,
		Radius: s.body.Radius,
		VX:     s.body.VX,
		VY:     s.body.VY,
		Color:  s.color,
	}
}
