package sim

import "slices"

// Task is the per-frame update of one entity.
type Task func(h Handle)

// Scheduler runs one task per attached handle each frame, in attach order.
//
// Entries hold handles, never entity pointers. Before a task runs the handle
// is checked against the live predicate, so an entity removed earlier in the
// same frame is skipped instead of updated.
type Scheduler struct {
	live    func(Handle) bool
	entries []Handle
	frame   []Handle
	running bool
}

func NewScheduler(live func(Handle) bool) *Scheduler {
	return &Scheduler{live: live}
}

func (s *Scheduler) Attach(h Handle) bool {
	if slices.Contains(s.entries, h) {
		return false
	}
	s.entries = append(s.entries, h)
	return true
}

func (s *Scheduler) Detach(h Handle) bool {
	i := slices.Index(s.entries, h)
	if i < 0 {
		return false
	}
	s.entries = slices.Delete(s.entries, i, i+1)
	return true
}

// DetachAll empties the schedule. A frame in progress skips the remaining
// entries.
func (s *Scheduler) DetachAll() {
	s.entries = s.entries[:0]
}

func (s *Scheduler) Len() int { return len(s.entries) }

func (s *Scheduler) Running() bool { return s.running }

// Handles returns a copy of the current schedule.
func (s *Scheduler) Handles() []Handle {
	return slices.Clone(s.entries)
}

// Run executes one frame. settle, if not nil, runs after every task and may
// attach or detach entries; those changes apply to the rest of the frame
// through the live predicate, never to the frame's iteration order.
func (s *Scheduler) Run(task Task, settle func()) {
	s.frame = append(s.frame[:0], s.entries...)
	s.running = true
	defer func() { s.running = false }()

	for _, h := range s.frame {
		if !s.live(h) {
			continue
		}
		task(h)
		if settle != nil {
			settle()
		}
	}
}
