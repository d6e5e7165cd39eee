package sim

// CollisionKind distinguishes the two contact types the audio layer reacts to.
type CollisionKind uint8

const (
	WallCollision CollisionKind = iota + 1
	SphereCollision
)

func (k CollisionKind) String() string {
	switch k {
	case WallCollision:
		return "wall"
	case SphereCollision:
		return "sphere"
	default:
		return "unknown"
	}
}

// CollisionEvent is delivered to the collision hook on the simulator
// goroutine. X and Y are the centre of the sphere being updated at the moment
// of contact.
type CollisionEvent struct {
	Kind   CollisionKind
	Handle Handle
	X, Y   float64
	Frame  uint64
}

// CollisionHook receives collision notifications while sound is enabled. It
// runs inside the frame and must not block.
type CollisionHook func(CollisionEvent)
