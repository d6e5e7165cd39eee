package sim

import (
	"context"
	"math"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/bounce/internal/physics"
)

var screen = physics.NewBounds(1920, 1080)

func distance(a, b EntityView) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

func mustSpawn(s *Simulator, cfg SpawnConfig) Handle {
	h, err := s.Spawn(cfg)
	Expect(err).NotTo(HaveOccurred())
	Expect(h).NotTo(BeZero())
	return h
}

func sphereAt(x, y, r float64, vx, vy int) SpawnConfig {
	return SpawnConfig{Radius: r, Color: Red}.At(x, y).WithVector(vx, vy)
}

var _ = Describe("Simulator", func() {
	var s *Simulator

	BeforeEach(func() {
		s = New(WithSeed(7))
	})

	Describe("spawning", func() {
		It("registers on the next tick and integrates once", func() {
			h := mustSpawn(s, sphereAt(100, 100, 25, 5, 5))
			Expect(s.Snapshot().Running()).To(Equal(0))
			Expect(s.Snapshot().Pending).To(Equal(1))

			Expect(s.Tick(screen)).To(Succeed())

			snap := s.Snapshot()
			e, ok := snap.Find(h)
			Expect(ok).To(BeTrue())
			Expect(e.X).To(Equal(105.0))
			Expect(e.Y).To(Equal(105.0))
			Expect(e.Color).To(Equal(Red))
			Expect(snap.Counters).To(Equal(Counters{Spawned: 1}))
			Expect(snap.Pending).To(BeZero())
		})

		It("hands out distinct handles", func() {
			seen := map[Handle]bool{}
			for i := 0; i < 50; i++ {
				h := mustSpawn(s, DefaultSpawnConfig())
				Expect(seen).NotTo(HaveKey(h))
				seen[h] = true
			}
		})

		It("rejects spawns beyond the inbox size", func() {
			s = New(WithInboxSize(2))
			mustSpawn(s, DefaultSpawnConfig())
			mustSpawn(s, DefaultSpawnConfig())

			_, err := s.Spawn(DefaultSpawnConfig())
			Expect(err).To(MatchError(ErrInboxFull))

			Expect(s.Tick(screen)).To(Succeed())
			mustSpawn(s, DefaultSpawnConfig())
		})
	})

	Describe("a lone sphere", func() {
		It("only moves by its velocity", func() {
			h := mustSpawn(s, SpawnConfig{Radius: 30, Color: Blue}.At(500, 500).WithVector(-3, 7))
			Expect(s.Tick(screen)).To(Succeed())
			before, _ := s.Snapshot().Find(h)

			Expect(s.Tick(screen)).To(Succeed())
			after, ok := s.Snapshot().Find(h)

			Expect(ok).To(BeTrue())
			Expect(after.X - before.X).To(Equal(-3.0))
			Expect(after.Y - before.Y).To(Equal(7.0))
			Expect(after.Radius).To(Equal(before.Radius))
			Expect(after.Color).To(Equal(before.Color))
			Expect(s.Snapshot().Counters.WallHits).To(BeZero())
		})

		It("is pulled back and reflected when spawned past an edge", func() {
			h := mustSpawn(s, SpawnConfig{Radius: 25}.At(5000, 500).WithVector(4, 0))
			Expect(s.Tick(physics.NewBounds(1000, 1000))).To(Succeed())

			e, _ := s.Snapshot().Find(h)
			Expect(e.VX).To(Equal(-4.0))
			Expect(e.X).To(Equal(971.0))
			Expect(s.Snapshot().Counters.WallHits).To(Equal(uint64(1)))
		})

		It("counts a corner as two wall hits", func() {
			mustSpawn(s, SpawnConfig{Radius: 10}.At(10, 10).WithVector(-2, -2))
			Expect(s.Tick(screen)).To(Succeed())
			Expect(s.Snapshot().Counters.WallHits).To(Equal(uint64(2)))
		})
	})

	Describe("contacts", func() {
		It("separates overlapping spheres and reports the hit", func() {
			a := mustSpawn(s, sphereAt(100, 100, 20, 0, 5))
			b := mustSpawn(s, sphereAt(100, 130, 20, 0, 5))
			Expect(s.Tick(screen)).To(Succeed())

			snap := s.Snapshot()
			ea, _ := snap.Find(a)
			eb, _ := snap.Find(b)
			Expect(snap.Counters.SphereHits).To(BeNumerically(">=", 1))
			Expect(distance(ea, eb)).To(BeNumerically(">=", 30))
		})

		It("bounces both participants on their own updates", func() {
			a := mustSpawn(s, sphereAt(100, 300, 20, -1, 0))
			b := mustSpawn(s, sphereAt(110, 300, 20, 1, 0))
			Expect(s.Tick(screen)).To(Succeed())

			snap := s.Snapshot()
			ea, _ := snap.Find(a)
			eb, _ := snap.Find(b)
			Expect(ea.VX).To(Equal(1.0))
			Expect(eb.VX).To(Equal(-1.0))
			Expect(snap.Counters.SphereHits).To(Equal(uint64(2)))
			Expect(math.Abs(distance(ea, eb) - 40)).To(BeNumerically("<", 30))
		})

		It("survives concentric spawns", func() {
			mustSpawn(s, sphereAt(400, 400, 20, 3, 3))
			mustSpawn(s, sphereAt(400, 400, 20, 3, 3))
			Expect(s.Tick(screen)).To(Succeed())

			for _, e := range s.Snapshot().Entities {
				Expect(math.IsNaN(e.X) || math.IsNaN(e.Y)).To(BeFalse())
			}
			Expect(s.Snapshot().Counters.SphereHits).To(Equal(uint64(2)))
		})
	})

	Describe("deletion", func() {
		It("is idempotent", func() {
			h := mustSpawn(s, DefaultSpawnConfig())
			Expect(s.Tick(screen)).To(Succeed())

			s.Delete(h)
			s.Delete(h)
			s.Delete(0)
			s.Delete(Handle(9999))
			Expect(s.Tick(screen)).To(Succeed())
			Expect(s.Snapshot().Running()).To(BeZero())

			s.Delete(h)
			Expect(s.Tick(screen)).To(Succeed())
			Expect(s.Snapshot().Counters.Spawned).To(Equal(uint64(1)))
		})

		It("keeps a single queued delete for repeated requests", func() {
			h := mustSpawn(s, DefaultSpawnConfig())
			Expect(s.Tick(screen)).To(Succeed())

			for range 5000 {
				s.Delete(h)
			}
			Expect(s.inbox.Len()).To(Equal(1))
			Expect(s.Tick(screen)).To(Succeed())
			Expect(s.Snapshot().Running()).To(BeZero())
			Expect(s.inbox.Len()).To(BeZero())
		})

		It("cancels a spawn that has not been registered", func() {
			h := mustSpawn(s, DefaultSpawnConfig())
			s.Delete(h)
			Expect(s.Tick(screen)).To(Succeed())

			Expect(s.Snapshot().Running()).To(BeZero())
			Expect(s.Snapshot().Counters.Spawned).To(BeZero())
		})

		It("lets a sphere delete itself from its own collision hook", func() {
			h := mustSpawn(s, sphereAt(20, 500, 20, -3, 0))
			other := mustSpawn(s, sphereAt(900, 500, 20, 2, 0))

			var events []CollisionEvent
			s.SetSoundEnabled(true)
			s.OnCollision(func(ev CollisionEvent) {
				events = append(events, ev)
				if ev.Handle == h {
					s.Delete(h)
				}
			})

			Expect(s.Tick(screen)).To(Succeed())
			_, ok := s.Snapshot().Find(h)
			Expect(ok).To(BeFalse())
			_, ok = s.Snapshot().Find(other)
			Expect(ok).To(BeTrue())

			events = events[:0]
			for i := 0; i < 20; i++ {
				Expect(s.Tick(screen)).To(Succeed())
			}
			for _, ev := range events {
				Expect(ev.Handle).NotTo(Equal(h))
			}
			Expect(s.registry.Has(h)).To(BeFalse())
			Expect(s.scheduler.Handles()).NotTo(ContainElement(h))
		})

		It("skips a sphere deleted earlier in the same frame", func() {
			first := mustSpawn(s, sphereAt(20, 100, 20, 0, 0))
			second := mustSpawn(s, sphereAt(20, 500, 20, 0, 0))

			s.SetSoundEnabled(true)
			var seen []Handle
			s.OnCollision(func(ev CollisionEvent) {
				seen = append(seen, ev.Handle)
				if ev.Handle == first {
					s.Delete(second)
				}
			})

			Expect(s.Tick(screen)).To(Succeed())
			Expect(seen).To(Equal([]Handle{first}))
			Expect(s.Snapshot().Counters.WallHits).To(Equal(uint64(1)))
			Expect(s.Snapshot().Running()).To(Equal(1))
		})
	})

	Describe("clearing", func() {
		It("removes live and pending spheres", func() {
			for i := 0; i < 5; i++ {
				mustSpawn(s, DefaultSpawnConfig())
			}
			Expect(s.Tick(screen)).To(Succeed())
			late := mustSpawn(s, DefaultSpawnConfig())

			s.ClearAll()
			Expect(s.Tick(screen)).To(Succeed())

			snap := s.Snapshot()
			Expect(snap.Running()).To(BeZero())
			Expect(snap.Pending).To(BeZero())
			Expect(snap.Counters.Spawned).To(Equal(uint64(5)))
			_, ok := snap.Find(late)
			Expect(ok).To(BeFalse())
			Expect(s.scheduler.Len()).To(BeZero())
		})

		It("keeps spawns requested after the clear", func() {
			s.ClearAll()
			h := mustSpawn(s, DefaultSpawnConfig())
			Expect(s.Tick(screen)).To(Succeed())

			_, ok := s.Snapshot().Find(h)
			Expect(ok).To(BeTrue())
		})

		It("stops the rest of the frame when issued from a hook", func() {
			mustSpawn(s, sphereAt(20, 100, 20, 0, 0))
			mustSpawn(s, sphereAt(20, 500, 20, 0, 0))
			mustSpawn(s, sphereAt(20, 900, 20, 0, 0))

			s.SetSoundEnabled(true)
			s.OnCollision(func(CollisionEvent) { s.ClearAll() })

			Expect(s.Tick(screen)).To(Succeed())
			Expect(s.Snapshot().Running()).To(BeZero())
			Expect(s.Snapshot().Counters.WallHits).To(Equal(uint64(1)))
		})
	})

	Describe("ticking", func() {
		It("refuses invalid bounds without advancing", func() {
			mustSpawn(s, DefaultSpawnConfig())
			err := s.Tick(physics.Bounds{MinX: 10, MaxX: 0, MaxY: 10})
			Expect(err).To(MatchError(ErrInvalidBounds))
			Expect(s.Snapshot().Frame).To(BeZero())
			Expect(s.Snapshot().Pending).To(Equal(1))
		})

		It("refuses to re-enter from a hook", func() {
			mustSpawn(s, sphereAt(20, 100, 20, 0, 0))
			var inner error
			s.SetSoundEnabled(true)
			s.OnCollision(func(CollisionEvent) { inner = s.Tick(screen) })

			Expect(s.Tick(screen)).To(Succeed())
			Expect(inner).To(MatchError(ErrReentrantTick))
		})

		It("tolerates a shrinking viewport", func() {
			for i := 0; i < 20; i++ {
				mustSpawn(s, DefaultSpawnConfig())
			}
			Expect(s.Tick(screen)).To(Succeed())
			Expect(s.Tick(physics.NewBounds(300, 200))).To(Succeed())
			Expect(s.Tick(physics.NewBounds(30, 20))).To(Succeed())

			for _, e := range s.Snapshot().Entities {
				Expect(math.IsNaN(e.X) || math.IsInf(e.X, 0)).To(BeFalse())
			}
		})

		It("stays silent while sound is off", func() {
			mustSpawn(s, sphereAt(20, 100, 20, 0, 0))
			calls := 0
			s.OnCollision(func(CollisionEvent) { calls++ })

			Expect(s.Tick(screen)).To(Succeed())
			Expect(calls).To(BeZero())
			Expect(s.Snapshot().Counters.WallHits).To(Equal(uint64(1)))
		})

		It("stops when the context is cancelled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			Expect(s.Run(ctx, screen, 10, nil)).To(MatchError(context.Canceled))
		})
	})

	It("reproduces a session from its seed", func() {
		run := func() *Snapshot {
			sim := New(WithSeed(1234))
			for i := 0; i < 30; i++ {
				cfg := DefaultSpawnConfig()
				cfg.Radius = 10 + float64(i%5)*10
				_, err := sim.Spawn(cfg)
				Expect(err).NotTo(HaveOccurred())
			}
			Expect(sim.Run(context.Background(), screen, 300, nil)).To(Succeed())
			return sim.Snapshot()
		}

		Expect(run()).To(Equal(run()))
	})

	It("keeps the schedule and the registry in step", func() {
		var handles []Handle
		for i := 0; i < 40; i++ {
			handles = append(handles, mustSpawn(s, DefaultSpawnConfig()))
			if i%3 == 0 {
				Expect(s.Tick(screen)).To(Succeed())
			}
			if i%7 == 0 {
				s.Delete(handles[i/2])
			}
			if i == 25 {
				s.ClearAll()
			}
		}
		Expect(s.Tick(screen)).To(Succeed())

		var order []Handle
		for sp := range s.registry.All() {
			order = append(order, sp.Handle())
		}
		Expect(s.scheduler.Handles()).To(Equal(order))
	})

	It("accepts requests from other goroutines while ticking", func() {
		var wg sync.WaitGroup
		for w := 0; w < 8; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := 0; i < 25; i++ {
					h, err := s.Spawn(DefaultSpawnConfig())
					if err == nil && i%5 == 0 {
						s.Delete(h)
					}
					_ = s.Snapshot().Running()
				}
			}()
		}

		done := make(chan struct{})
		go func() {
			wg.Wait()
			close(done)
		}()

	loop:
		for {
			select {
			case <-done:
				break loop
			default:
				Expect(s.Tick(screen)).To(Succeed())
			}
		}
		Expect(s.Tick(screen)).To(Succeed())

		snap := s.Snapshot()
		Expect(snap.Pending).To(BeZero())
		Expect(snap.Running()).To(Equal(160))
		Expect(snap.Counters.Spawned).To(BeNumerically(">=", 160))
		Expect(snap.Counters.Spawned).To(BeNumerically("<=", 200))
	})
})
