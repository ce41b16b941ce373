package ui

import (
	"testing"
	"time"

	"github.com/atomicstack/uinav/internal/layer"
	"github.com/atomicstack/uinav/internal/registry"
	"github.com/atomicstack/uinav/internal/schedule"
	"github.com/atomicstack/uinav/internal/screen"
)

func newTestPanel(t *testing.T) (*Panel, *schedule.Scheduler, *schedule.ManualClock) {
	t.Helper()
	clock := schedule.NewManualClock(time.Unix(0, 0))
	sched := schedule.New(clock)
	f := NewPanelFactory(sched, testTransition)
	d := registry.Descriptor{ID: "shop", Tier: registry.SecondLevel}
	inst, err := f.Instantiate(d, layer.NewSet().For(d.Tier))
	if err != nil {
		t.Fatalf("Instantiate returned error: %v", err)
	}
	return inst.(*Panel), sched, clock
}

func TestPanelShowTransition(t *testing.T) {
	p, sched, clock := newTestPanel(t)
	p.Show(screen.Args{"tab": 2})
	if p.Phase() != PhaseShowing || !p.Visible() {
		t.Fatalf("expected visible showing panel, got %s", p.Phase())
	}
	clock.Advance(testTransition / 2)
	sched.Tick()
	if p.Phase() != PhaseShowing {
		t.Fatalf("expected still showing halfway, got %s", p.Phase())
	}
	clock.Advance(testTransition / 2)
	sched.Tick()
	if p.Phase() != PhaseShown {
		t.Fatalf("expected shown, got %s", p.Phase())
	}
	if p.Args()["tab"] != 2 {
		t.Fatalf("expected args kept, got %v", p.Args())
	}
}

func TestPanelHideCallsCompletionAfterTransition(t *testing.T) {
	p, sched, clock := newTestPanel(t)
	p.Show(nil)
	done := 0
	p.Hide(func() { done++ })
	if p.Phase() != PhaseHiding || done != 0 {
		t.Fatalf("expected pending hide, got %s done=%d", p.Phase(), done)
	}
	clock.Advance(testTransition)
	sched.Tick()
	if done != 1 || p.Active() || p.Phase() != PhaseHidden {
		t.Fatalf("expected completed hide, got %s active=%v done=%d", p.Phase(), p.Active(), done)
	}
}

func TestPanelSetActiveSkipsTransition(t *testing.T) {
	p, sched, _ := newTestPanel(t)
	p.Show(nil)
	p.SetActive(false)
	if sched.Len() != 0 {
		t.Fatalf("expected pending show cancelled, got %d tasks", sched.Len())
	}
	if p.Phase() != PhaseHidden || p.Active() {
		t.Fatalf("expected hidden inactive panel, got %s", p.Phase())
	}
	p.SetActive(true)
	if p.Phase() != PhaseShown {
		t.Fatalf("expected shown, got %s", p.Phase())
	}
}

func TestPanelDestroyed(t *testing.T) {
	p, sched, _ := newTestPanel(t)
	p.Show(nil)
	p.Destroy()
	if sched.Len() != 0 || p.Visible() {
		t.Fatalf("expected destroy to cancel and hide")
	}
	p.Show(nil)
	if p.Active() {
		t.Fatalf("expected destroyed panel to ignore Show")
	}
	called := false
	p.Hide(func() { called = true })
	if !called {
		t.Fatalf("expected Hide on destroyed panel to complete immediately")
	}
}

func TestReplacementPanelCompletesPredecessorHide(t *testing.T) {
	sched := schedule.New(schedule.NewManualClock(time.Unix(0, 0)))
	f := NewPanelFactory(sched, testTransition)
	d := registry.Descriptor{ID: "shop", Tier: registry.SecondLevel}
	a, _ := f.Instantiate(d, nil)
	b, _ := f.Instantiate(d, nil)
	old, repl := a.(*Panel), b.(*Panel)
	old.Show(nil)
	done := false
	old.Hide(func() {
		done = true
		old.Destroy()
	})
	if sched.Len() != 1 {
		t.Fatalf("expected one pending transition, got %d", sched.Len())
	}

	repl.Show(nil)
	if !done {
		t.Fatalf("expected old hide completed before the replacement scheduled")
	}
	if old.Phase() != PhaseHidden || !old.Destroyed() {
		t.Fatalf("expected old panel hidden and destroyed, got %s", old.Phase())
	}
	if sched.Len() != 1 {
		t.Fatalf("expected only the replacement pending, got %d", sched.Len())
	}
	if n := sched.Flush(); n != 1 {
		t.Fatalf("expected one task flushed, got %d", n)
	}
	if repl.Phase() != PhaseShown {
		t.Fatalf("expected replacement shown, got %s", repl.Phase())
	}
}

func TestStalePanelDestroyKeepsReplacementPending(t *testing.T) {
	sched := schedule.New(schedule.NewManualClock(time.Unix(0, 0)))
	f := NewPanelFactory(sched, testTransition)
	d := registry.Descriptor{ID: "shop", Tier: registry.SecondLevel}
	a, _ := f.Instantiate(d, nil)
	b, _ := f.Instantiate(d, nil)
	old, repl := a.(*Panel), b.(*Panel)
	old.Show(nil)
	repl.Show(nil)
	if old.Phase() != PhaseShown {
		t.Fatalf("expected superseded show to complete, got %s", old.Phase())
	}
	old.Destroy()
	if sched.Len() != 1 {
		t.Fatalf("expected replacement show still pending, got %d", sched.Len())
	}
}

func TestPanelFactoryRequiresScheduler(t *testing.T) {
	f := NewPanelFactory(nil, 0)
	if _, err := f.Instantiate(registry.Descriptor{ID: "x", Tier: registry.Float}, nil); err == nil {
		t.Fatalf("expected error without scheduler")
	}
}
