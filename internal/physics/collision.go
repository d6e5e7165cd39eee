package physics

import (
	"iter"

	"github.com/san-kum/bounce/internal/geom"
)

// ResolvePair handles a single contact seen from a. When the circles
// interpenetrate both centres are pushed apart along the a→b axis so they end
// up touching; a's velocity is then reversed. b's velocity is left alone.
//
// Concentric bodies have no separation axis: the positional correction is
// skipped for that frame but the bounce still happens.
func ResolvePair(a, b *Body) bool {
	ca, cb := a.Circle(), b.Circle()
	if !geom.Collides(ca, cb) {
		return false
	}

	if overlap := geom.Overlap(ca, cb); overlap < 0 {
		if d := geom.Distance(ca, cb); d > 0 {
			sx := overlap * (a.X - b.X) / d
			sy := overlap * (a.Y - b.Y) / d
			a.X -= sx
			a.Y -= sy
			b.X += sx
			b.Y += sy
		}
	}

	a.VX = -a.VX
	a.VY = -a.VY
	return true
}

// Resolve tests a against every other body yielded by others, in order, and
// returns the number of contacts. hit, if not nil, is called after each
// resolved contact with the neighbour involved.
func Resolve(a *Body, others iter.Seq[*Body], hit func(b *Body)) int {
	n := 0
	for b := range others {
		if b == a {
			continue
		}
		if ResolvePair(a, b) {
			n++
			if hit != nil {
				hit(b)
			}
		}
	}
	return n
}
