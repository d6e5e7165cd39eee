// Package sim is the simulation core of the sphere sandbox.
//
// A [Simulator] owns every piece of mutable physics state:
//
//   - [Registry]: live spheres in registration order plus session [Counters]
//   - [Scheduler]: the per-frame update order, one entry per live handle
//   - [Inbox]: spawn, delete and clear requests queued from any goroutine
//
// # Threading
//
// Only the goroutine that calls [Simulator.Tick] touches the registry.
// [Simulator.Spawn], [Simulator.Delete] and [Simulator.ClearAll] may be called
// from anywhere; they enqueue a request that the next tick applies. Readers on
// other goroutines use [Simulator.Snapshot], which returns an immutable copy
// published at the end of each tick.
//
// # Example
//
//	s := sim.New(sim.WithSeed(42))
//	cfg := sim.DefaultSpawnConfig().At(100, 100)
//	h, _ := s.Spawn(cfg)
//	_ = s.Tick(physics.NewBounds(1920, 1080))
//	snap := s.Snapshot()
//
// # Counters
//
// Sphere contacts are resolved by each participant independently, so one
// physical contact increments SphereHits once per participant per frame.
package sim
