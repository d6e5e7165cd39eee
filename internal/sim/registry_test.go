package sim

import (
	"testing"

	. "github.com/onsi/gomega"

	"github.com/san-kum/bounce/internal/physics"
)

func sphere(h Handle, x, y float64) *Sphere {
	return newSphere(h, physics.Body{X: x, Y: y, Radius: 10}, White)
}

func TestRegistryOrder(t *testing.T) {
	g := NewWithT(t)
	r := NewRegistry()

	for _, h := range []Handle{3, 1, 2} {
		g.Expect(r.Add(sphere(h, 0, 0))).To(BeTrue())
	}
	g.Expect(r.Add(sphere(1, 0, 0))).To(BeFalse())
	g.Expect(r.Remove(1)).To(BeTrue())
	g.Expect(r.Remove(1)).To(BeFalse())

	var order []Handle
	for s := range r.All() {
		order = append(order, s.Handle())
	}
	g.Expect(order).To(Equal([]Handle{3, 2}))
	g.Expect(r.Counters().Spawned).To(Equal(uint64(3)))
}

func TestRegistryClearKeepsCounters(t *testing.T) {
	g := NewWithT(t)
	r := NewRegistry()
	r.Add(sphere(1, 0, 0))
	r.Add(sphere(2, 0, 0))
	r.addWallHits(2)
	r.addSphereHits(4)

	g.Expect(r.Clear()).To(Equal([]Handle{1, 2}))
	g.Expect(r.Len()).To(BeZero())
	g.Expect(r.Has(1)).To(BeFalse())
	g.Expect(r.Counters()).To(Equal(Counters{Spawned: 2, WallHits: 2, SphereHits: 4}))
}

func TestRegistryBodiesAlias(t *testing.T) {
	g := NewWithT(t)
	r := NewRegistry()
	r.Add(sphere(1, 5, 5))

	for b := range r.Bodies() {
		b.X = 50
	}
	s, _ := r.Get(1)
	g.Expect(s.Body().X).To(Equal(50.0))
}

func TestSchedulerSkipsDeadHandles(t *testing.T) {
	g := NewWithT(t)
	live := map[Handle]bool{1: true, 2: true, 3: true}
	s := NewScheduler(func(h Handle) bool { return live[h] })
	for _, h := range []Handle{1, 2, 3} {
		g.Expect(s.Attach(h)).To(BeTrue())
	}
	g.Expect(s.Attach(2)).To(BeFalse())

	var ran []Handle
	s.Run(func(h Handle) {
		g.Expect(s.Running()).To(BeTrue())
		ran = append(ran, h)
		if h == 1 {
			delete(live, 2)
			s.Detach(2)
		}
	}, nil)

	g.Expect(ran).To(Equal([]Handle{1, 3}))
	g.Expect(s.Running()).To(BeFalse())
	g.Expect(s.Handles()).To(Equal([]Handle{1, 3}))
}

func TestSchedulerAttachDuringRun(t *testing.T) {
	g := NewWithT(t)
	s := NewScheduler(func(Handle) bool { return true })
	s.Attach(1)

	var ran []Handle
	s.Run(func(h Handle) {
		ran = append(ran, h)
		s.Attach(2)
	}, nil)
	g.Expect(ran).To(Equal([]Handle{1}))

	ran = ran[:0]
	s.Run(func(h Handle) { ran = append(ran, h) }, nil)
	g.Expect(ran).To(Equal([]Handle{1, 2}))
}

func TestSchedulerSettleAfterEachTask(t *testing.T) {
	g := NewWithT(t)
	s := NewScheduler(func(Handle) bool { return true })
	s.Attach(1)
	s.Attach(2)

	var trace []string
	s.Run(
		func(h Handle) { trace = append(trace, "task") },
		func() { trace = append(trace, "settle") },
	)
	g.Expect(trace).To(Equal([]string{"task", "settle", "task", "settle"}))
}

func TestInboxDeleteCancelsSpawn(t *testing.T) {
	g := NewWithT(t)
	q := NewInbox(4)
	g.Expect(q.PushSpawn(1, DefaultSpawnConfig())).To(Succeed())
	g.Expect(q.PushSpawn(2, DefaultSpawnConfig())).To(Succeed())

	g.Expect(q.PushDelete(1)).To(BeTrue())
	g.Expect(q.PushDelete(7)).To(BeFalse())
	g.Expect(q.Spawns()).To(Equal(1))

	cmds := q.Drain(nil)
	g.Expect(cmds).To(HaveLen(2))
	g.Expect(cmds[0].kind).To(Equal(cmdSpawn))
	g.Expect(cmds[0].handle).To(Equal(Handle(2)))
	g.Expect(cmds[1].kind).To(Equal(cmdDelete))
	g.Expect(q.Len()).To(BeZero())
}

func TestInboxLimit(t *testing.T) {
	g := NewWithT(t)
	q := NewInbox(1)
	g.Expect(q.PushSpawn(1, DefaultSpawnConfig())).To(Succeed())
	g.Expect(q.PushSpawn(2, DefaultSpawnConfig())).To(MatchError(ErrInboxFull))

	q.PushDelete(9)
	g.Expect(q.Len()).To(Equal(2))
}

func TestInboxClear(t *testing.T) {
	g := NewWithT(t)
	q := NewInbox(0)
	q.PushSpawn(1, DefaultSpawnConfig())
	q.PushDelete(5)
	q.PushSpawn(2, DefaultSpawnConfig())

	g.Expect(q.PushClear()).To(Equal(2))
	q.PushSpawn(3, DefaultSpawnConfig())

	cmds := q.Drain(nil)
	kinds := make([]commandKind, len(cmds))
	for i, c := range cmds {
		kinds[i] = c.kind
	}
	g.Expect(kinds).To(Equal([]commandKind{cmdClear, cmdSpawn}))
}

func TestInboxDuplicateDeletes(t *testing.T) {
	g := NewWithT(t)
	q := NewInbox(0)
	for range 10000 {
		g.Expect(q.PushDelete(1)).To(BeFalse())
	}
	g.Expect(q.Len()).To(Equal(1))

	q.DrainControl(nil)
	q.PushDelete(1)
	g.Expect(q.Len()).To(Equal(1))
}

func TestInboxRepeatedClears(t *testing.T) {
	g := NewWithT(t)
	q := NewInbox(0)
	for i := range 100 {
		q.PushDelete(Handle(i + 1))
		q.PushClear()
	}
	cmds := q.Drain(nil)
	g.Expect(cmds).To(HaveLen(1))
	g.Expect(cmds[0].kind).To(Equal(cmdClear))
}

func TestInboxDrainControlKeepsSpawns(t *testing.T) {
	g := NewWithT(t)
	q := NewInbox(0)
	q.PushSpawn(1, DefaultSpawnConfig())
	q.PushDelete(4)
	q.PushSpawn(2, DefaultSpawnConfig())

	cmds := q.DrainControl(nil)
	g.Expect(cmds).To(HaveLen(1))
	g.Expect(cmds[0].handle).To(Equal(Handle(4)))
	g.Expect(q.Spawns()).To(Equal(2))
	g.Expect(q.DrainControl(nil)).To(BeEmpty())
}
