package sim

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/san-kum/bounce/internal/physics"
)

// Simulator drives the sphere registry one frame at a time.
type Simulator struct {
	registry  *Registry
	scheduler *Scheduler
	inbox     *Inbox
	rng       *rand.Rand
	logger    *log.Logger

	bounds physics.Bounds
	frame  uint64
	queue  []command

	nextHandle atomic.Uint64
	sound      atomic.Bool
	hook       atomic.Pointer[CollisionHook]
	snapshot   atomic.Pointer[Snapshot]
}

type Option func(*Simulator)

// WithSeed makes every random spawn reproducible.
func WithSeed(seed int64) Option {
	return func(s *Simulator) {
		s.rng = rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15))
	}
}

func WithLogger(l *log.Logger) Option {
	return func(s *Simulator) {
		if l != nil {
			s.logger = l.WithPrefix("sim")
		}
	}
}

// WithInboxSize bounds the number of spawn requests waiting for a tick.
func WithInboxSize(n int) Option {
	return func(s *Simulator) { s.inbox = NewInbox(n) }
}

// WithBounds sets the viewport used before the first tick.
func WithBounds(b physics.Bounds) Option {
	return func(s *Simulator) { s.bounds = b }
}

func New(opts ...Option) *Simulator {
	s := &Simulator{
		registry: NewRegistry(),
		inbox:    NewInbox(DefaultInboxSize),
		logger:   log.New(io.Discard),
	}
	s.scheduler = NewScheduler(s.registry.Has)
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		WithSeed(time.Now().UnixNano())(s)
	}
	s.publish()
	return s
}

// Spawn queues a new sphere and returns its handle immediately. The sphere is
// registered at the start of the next tick; until then it is absent from
// snapshots. Out-of-range values are clamped, never rejected.
func (s *Simulator) Spawn(cfg SpawnConfig) (Handle, error) {
	h := Handle(s.nextHandle.Add(1))
	if err := s.inbox.PushSpawn(h, cfg.Normalize()); err != nil {
		s.logger.Warn("spawn rejected", "handle", h, "err", err)
		return 0, fmt.Errorf("spawn %d: %w", h, err)
	}
	s.logger.Debug("spawn queued", "handle", h)
	return h, nil
}

// Delete removes the sphere with handle h. It is idempotent and may be called
// from any goroutine, including from the collision hook while a frame runs:
// the sphere finishes its current update and is skipped from then on.
func (s *Simulator) Delete(h Handle) {
	if h == 0 {
		return
	}
	if s.inbox.PushDelete(h) {
		s.logger.Debug("pending spawn cancelled", "handle", h)
	}
}

// ClearAll removes every sphere, including spawns that have not been
// registered yet.
func (s *Simulator) ClearAll() {
	if n := s.inbox.PushClear(); n > 0 {
		s.logger.Debug("pending spawns cancelled", "count", n)
	}
}

// SetSoundEnabled toggles collision notifications.
func (s *Simulator) SetSoundEnabled(on bool) { s.sound.Store(on) }

func (s *Simulator) SoundEnabled() bool { return s.sound.Load() }

// OnCollision installs the collision hook, replacing any previous one. A nil
// hook disables notifications.
func (s *Simulator) OnCollision(fn CollisionHook) {
	if fn == nil {
		s.hook.Store(nil)
		return
	}
	s.hook.Store(&fn)
}

// Snapshot returns the state published by the last tick.
func (s *Simulator) Snapshot() *Snapshot {
	return s.snapshot.Load()
}

// Tick advances exactly one frame within the given viewport: queued requests
// are applied, then every live sphere is updated in registration order.
//
// Tick must only be called from the goroutine that owns the simulator.
func (s *Simulator) Tick(bounds physics.Bounds) error {
	if s.scheduler.Running() {
		return ErrReentrantTick
	}
	if !bounds.Valid() {
		s.logger.Warn("tick skipped", "bounds", bounds)
		return fmt.Errorf("%w: %+v", ErrInvalidBounds, bounds)
	}
	s.bounds = bounds

	s.queue = s.inbox.Drain(s.queue[:0])
	s.apply(s.queue)

	s.scheduler.Run(s.update, s.settle)

	s.frame++
	s.publish()
	return nil
}

// Run ticks frames times with a fixed viewport, calling observe with each
// published snapshot. observe returning false stops the run early.
func (s *Simulator) Run(ctx context.Context, bounds physics.Bounds, frames int, observe func(*Snapshot) bool) error {
	for i := 0; i < frames; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := s.Tick(bounds); err != nil {
			return err
		}
		if observe != nil && !observe(s.Snapshot()) {
			return nil
		}
	}
	return nil
}

func (s *Simulator) update(h Handle) {
	sp, ok := s.registry.Get(h)
	if !ok {
		return
	}
	b := sp.Body()

	if c := physics.Clamp(b, s.bounds); c.Any() {
		s.registry.addWallHits(c.Hits())
		s.notify(WallCollision, sp)
	}

	n := physics.Resolve(b, s.registry.Bodies(), func(*physics.Body) {
		s.notify(SphereCollision, sp)
	})
	s.registry.addSphereHits(n)

	b.Advance()
}

// settle applies deletes and clears that arrived while the frame was running.
func (s *Simulator) settle() {
	s.queue = s.inbox.DrainControl(s.queue[:0])
	s.apply(s.queue)
}

func (s *Simulator) apply(cmds []command) {
	for _, c := range cmds {
		switch c.kind {
		case cmdSpawn:
			s.admit(c.handle, c.spawn)
		case cmdDelete:
			s.evict(c.handle)
		case cmdClear:
			s.evictAll()
		}
	}
}

func (s *Simulator) admit(h Handle, cfg SpawnConfig) {
	sp := newSphere(h, cfg.resolve(s.rng, s.bounds), cfg.Color)
	if !s.registry.Add(sp) {
		return
	}
	s.scheduler.Attach(h)
	s.logger.Debug("sphere registered", "handle", h, "x", sp.body.X, "y", sp.body.Y, "radius", sp.body.Radius)
}

func (s *Simulator) evict(h Handle) {
	if !s.registry.Remove(h) {
		return
	}
	s.scheduler.Detach(h)
	s.logger.Debug("sphere deleted", "handle", h)
}

func (s *Simulator) evictAll() {
	removed := s.registry.Clear()
	s.scheduler.DetachAll()
	s.logger.Info("spheres cleared", "count", len(removed))
}

func (s *Simulator) notify(kind CollisionKind, sp *Sphere) {
	if !s.sound.Load() {
		return
	}
	hook := s.hook.Load()
	if hook == nil {
		return
	}
	(*hook)(CollisionEvent{
		Kind:   kind,
		Handle: sp.handle,
		X:      sp.body.X,
		Y:      sp.body.Y,
		Frame:  s.frame,
	})
}

func (s *Simulator) publish() {
	snap := &Snapshot{
		Frame:    s.frame,
		Bounds:   s.bounds,
		Entities: make([]EntityView, 0, s.registry.Len()),
		Counters: s.registry.Counters(),
		Pending:  s.inbox.Spawns(),
	}
	for sp := range s.registry.All() {
		snap.Entities = append(snap.Entities, sp.view())
	}
	s.snapshot.Store(snap)
}
