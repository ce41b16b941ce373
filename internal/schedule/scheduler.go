// Package schedule runs deferred completions for screen transitions on the
// frame loop. At most one task is pending per key; scheduling again for the
// same key cancels the earlier task.
//
// The scheduler is not safe for concurrent use. It is driven from the same
// goroutine that performs navigation.
package schedule

import (
	"sort"
	"time"

	"github.com/atomicstack/uinav/internal/logging/events"
)

type task struct {
	key  string
	due  time.Time
	seq  uint64
	pass uint64
	fn   func()
}

// Scheduler holds pending deferred tasks keyed by screen identifier.
type Scheduler struct {
	clock Clock
	tasks map[string]*task
	seq   uint64
	pass  uint64
}

// New returns a scheduler reading time from clock. A nil clock uses the wall
// clock.
func New(clock Clock) *Scheduler {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Scheduler{clock: clock, tasks: make(map[string]*task)}
}

// After queues fn to run once delay has elapsed, cancelling any task still
// pending under key. fn never runs synchronously inside After, even for a
// zero delay.
func (s *Scheduler) After(key string, delay time.Duration, fn func()) {
	if delay < 0 {
		delay = 0
	}
	_, superseded := s.tasks[key]
	s.seq++
	s.tasks[key] = &task{
		key:  key,
		due:  s.clock.Now().Add(delay),
		seq:  s.seq,
		pass: s.pass,
		fn:   fn,
	}
	events.Schedule.Queue(key, delay, superseded)
}

// Cancel drops the pending task for key. It reports whether one existed.
func (s *Scheduler) Cancel(key string) bool {
	if _, ok := s.tasks[key]; !ok {
		return false
	}
	delete(s.tasks, key)
	events.Schedule.Cancel(key)
	return true
}

// Pending reports whether a task is queued for key.
func (s *Scheduler) Pending(key string) bool {
	_, ok := s.tasks[key]
	return ok
}

// Len returns the number of pending tasks.
func (s *Scheduler) Len() int {
	return len(s.tasks)
}

// Advance runs every task due at now, earliest deadline first. Tasks queued
// while Advance is running wait for a later call. It returns the number of
// tasks run.
func (s *Scheduler) Advance(now time.Time) int {
	s.pass++
	current := s.pass

	due := make([]*task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if t.pass < current && !t.due.After(now) {
			due = append(due, t)
		}
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].due.Equal(due[j].due) {
			return due[i].seq < due[j].seq
		}
		return due[i].due.Before(due[j].due)
	})

	ran := 0
	for _, t := range due {
		// an earlier task in this pass may have cancelled or replaced it
		if s.tasks[t.key] != t {
			continue
		}
		delete(s.tasks, t.key)
		events.Schedule.Fire(t.key, now.Sub(t.due))
		if t.fn != nil {
			t.fn()
		}
		ran++
	}
	return ran
}

// Tick advances to the scheduler clock's current time.
func (s *Scheduler) Tick() int {
	return s.Advance(s.clock.Now())
}

// Flush runs every pending task regardless of its deadline, including tasks
// queued by the tasks it runs.
func (s *Scheduler) Flush() int {
	ran := 0
	for len(s.tasks) > 0 {
		n := s.Advance(time.Unix(1<<62, 0))
		if n == 0 {
			break
		}
		ran += n
	}
	return ran
}
