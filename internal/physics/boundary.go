package physics

// WallContact records which axes touched an edge during a [Clamp].
type WallContact struct {
	X bool
	Y bool
}

// Hits is the number of wall collisions the contact accounts for: one per
// axis, so a corner contact counts twice.
func (c WallContact) Hits() int {
	n := 0
	if c.X {
		n++
	}
	if c.Y {
		n++
	}
	return n
}

func (c WallContact) Any() bool { return c.X || c.Y }

// Clamp keeps the centre of b within [min+radius, max-radius] on both axes and
// reflects the velocity of every axis in contact with an edge.
//
// The position is clamped before the edges are tested so a body pushed out of
// bounds by a collision is brought back and reflected once, not once per unit
// of penetration.
func Clamp(b *Body, bounds Bounds) WallContact {
	loX, hiX, loY, hiY := bounds.Legal(b.Radius)

	b.X = clampAxis(b.X, loX, hiX)
	b.Y = clampAxis(b.Y, loY, hiY)

	var c WallContact
	if b.X <= loX || b.X >= hiX {
		b.VX = -b.VX
		c.X = true
	}
	if b.Y <= loY || b.Y >= hiY {
		b.VY = -b.VY
		c.Y = true
	}
	return c
}

func clampAxis(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
