package sim

import (
	"math/rand/v2"

	"github.com/san-kum/bounce/internal/physics"
)

const (
	MinRadius     = 10.0
	MaxRadius     = 100.0
	DefaultRadius = 25.0
	MaxSpeed      = 10

	DefaultInboxSize = 256
)

// Axis is one velocity component of a spawn request: either an explicit
// signed speed or a random one.
type Axis struct {
	Value  int
	Random bool
}

func Fixed(v int) Axis        { return Axis{Value: v} }
func RandomAxis() Axis        { return Axis{Random: true} }
func (a Axis) IsRandom() bool { return a.Random }

// resolve draws a random axis uniformly from [1, MaxSpeed]. The sign is never
// randomised, so random spawns always head right and down.
func (a Axis) resolve(rng *rand.Rand) float64 {
	if a.Random {
		return float64(rng.IntN(MaxSpeed) + 1)
	}
	return float64(a.Value)
}

// SpawnConfig describes a sphere to create. A nil X or Y is replaced by a
// uniformly random coordinate inside the viewport.
type SpawnConfig struct {
	X, Y   *float64
	Radius float64
	Color  Color
	VX, VY Axis
}

// DefaultSpawnConfig is the form state after a reset: random position and
// vector, radius 25, white.
func DefaultSpawnConfig() SpawnConfig {
	return SpawnConfig{
		Radius: DefaultRadius,
		Color:  White,
		VX:     RandomAxis(),
		VY:     RandomAxis(),
	}
}

// At returns a copy of c with an explicit position.
func (c SpawnConfig) At(x, y float64) SpawnConfig {
	c.X = &x
	c.Y = &y
	return c
}

// WithVector returns a copy of c with explicit velocity components.
func (c SpawnConfig) WithVector(vx, vy int) SpawnConfig {
	c.VX = Fixed(vx)
	c.VY = Fixed(vy)
	return c
}

// Normalize clamps out-of-range values instead of rejecting them: the radius
// into [MinRadius, MaxRadius] (zero or negative means DefaultRadius) and
// explicit speeds into [-MaxSpeed, MaxSpeed]. Position pointers are copied so
// the caller may reuse its variables.
func (c SpawnConfig) Normalize() SpawnConfig {
	switch {
	case !(c.Radius > 0):
		c.Radius = DefaultRadius
	case c.Radius < MinRadius:
		c.Radius = MinRadius
	case c.Radius > MaxRadius:
		c.Radius = MaxRadius
	}
	c.VX = c.VX.normalize()
	c.VY = c.VY.normalize()
	if c.X != nil {
		x := *c.X
		c.X = &x
	}
	if c.Y != nil {
		y := *c.Y
		c.Y = &y
	}
	return c
}

func (a Axis) normalize() Axis {
	if a.Random {
		return Axis{Random: true}
	}
	a.Value = min(max(a.Value, -MaxSpeed), MaxSpeed)
	return a
}

// resolve turns a normalised config into the initial body for the given
// viewport. Explicit positions are clamped into the legal range.
func (c SpawnConfig) resolve(rng *rand.Rand, bounds physics.Bounds) physics.Body {
	loX, hiX, loY, hiY := bounds.Legal(c.Radius)
	return physics.Body{
		X:      coordinate(c.X, loX, hiX, rng),
		Y:      coordinate(c.Y, loY, hiY, rng),
		Radius: c.Radius,
		VX:     c.VX.resolve(rng),
		VY:     c.VY.resolve(rng),
	}
}

func coordinate(v *float64, lo, hi float64, rng *rand.Rand) float64 {
	if hi < lo {
		return (lo + hi) / 2
	}
	if v == nil {
		return lo + rng.Float64()*(hi-lo)
	}
	return min(max(*v, lo), hi)
}
