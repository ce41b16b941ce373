package schedule

import (
	"reflect"
	"testing"
	"time"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestAfterRunsOnlyOnceDue(t *testing.T) {
	clock := NewManualClock(epoch)
	s := New(clock)
	fired := 0
	s.After("shop", 100*time.Millisecond, func() { fired++ })

	if n := s.Advance(clock.Advance(50 * time.Millisecond)); n != 0 || fired != 0 {
		t.Fatalf("expected nothing to fire early, ran=%d fired=%d", n, fired)
	}
	if !s.Pending("shop") {
		t.Fatalf("expected shop to be pending")
	}
	if n := s.Advance(clock.Advance(50 * time.Millisecond)); n != 1 || fired != 1 {
		t.Fatalf("expected task to fire at deadline, ran=%d fired=%d", n, fired)
	}
	if s.Pending("shop") || s.Len() != 0 {
		t.Fatalf("expected no pending tasks after firing")
	}
}

func TestZeroDelayIsDeferred(t *testing.T) {
	clock := NewManualClock(epoch)
	s := New(clock)
	fired := false
	s.After("x", 0, func() { fired = true })
	if fired {
		t.Fatalf("expected zero-delay task not to run synchronously")
	}
	s.Tick()
	if !fired {
		t.Fatalf("expected zero-delay task to run on next tick")
	}
}

func TestSameKeySupersedesPendingTask(t *testing.T) {
	clock := NewManualClock(epoch)
	s := New(clock)
	var got []string
	s.After("lobby", 10*time.Millisecond, func() { got = append(got, "hide") })
	s.After("lobby", 10*time.Millisecond, func() { got = append(got, "show") })
	if s.Len() != 1 {
		t.Fatalf("expected one pending task per key, got %d", s.Len())
	}
	s.Advance(clock.Advance(time.Second))
	if !reflect.DeepEqual(got, []string{"show"}) {
		t.Fatalf("expected only the newer task to run, got %v", got)
	}
}

func TestCancel(t *testing.T) {
	s := New(NewManualClock(epoch))
	s.After("a", 0, func() { t.Fatalf("cancelled task ran") })
	if !s.Cancel("a") {
		t.Fatalf("expected cancel to report a pending task")
	}
	if s.Cancel("a") {
		t.Fatalf("expected second cancel to report nothing pending")
	}
	s.Flush()
}

func TestAdvanceOrdersByDeadlineThenInsertion(t *testing.T) {
	clock := NewManualClock(epoch)
	s := New(clock)
	var got []string
	s.After("late", 30*time.Millisecond, func() { got = append(got, "late") })
	s.After("first", 10*time.Millisecond, func() { got = append(got, "first") })
	s.After("second", 10*time.Millisecond, func() { got = append(got, "second") })
	s.Advance(clock.Advance(time.Second))
	want := []string{"first", "second", "late"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestTasksQueuedDuringAdvanceWaitForNextPass(t *testing.T) {
	clock := NewManualClock(epoch)
	s := New(clock)
	var got []string
	s.After("a", 0, func() {
		got = append(got, "a")
		s.After("b", 0, func() { got = append(got, "b") })
	})
	s.Tick()
	if !reflect.DeepEqual(got, []string{"a"}) {
		t.Fatalf("expected only a on first pass, got %v", got)
	}
	s.Tick()
	if !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("expected b on second pass, got %v", got)
	}
}

func TestTaskCancelledByEarlierTaskInSamePass(t *testing.T) {
	clock := NewManualClock(epoch)
	s := New(clock)
	s.After("a", 0, func() { s.Cancel("b") })
	s.After("b", 0, func() { t.Fatalf("b should have been cancelled by a") })
	if n := s.Tick(); n != 1 {
		t.Fatalf("expected 1 task to run, got %d", n)
	}
}

func TestFlushRunsChains(t *testing.T) {
	s := New(NewManualClock(epoch))
	count := 0
	s.After("a", time.Hour, func() {
		count++
		s.After("a", time.Hour, func() { count++ })
	})
	if n := s.Flush(); n != 2 || count != 2 {
		t.Fatalf("expected flush to run 2 tasks, ran=%d count=%d", n, count)
	}
}
