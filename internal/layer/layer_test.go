package layer

import (
	"testing"

	"github.com/atomicstack/uinav/internal/registry"
)

func TestForReturnsLayerPerTier(t *testing.T) {
	s := NewSet()
	for _, tier := range registry.Tiers {
		l := s.For(tier)
		if l == nil {
			t.Fatalf("expected layer for %v", tier)
		}
		if l.Tier != tier {
			t.Fatalf("expected layer tier %v, got %v", tier, l.Tier)
		}
	}
	if s.For(registry.Tier(0)) != nil {
		t.Fatalf("expected nil layer for invalid tier")
	}
	if got := s.For(registry.Float).Name; got != "TopLayer" {
		t.Fatalf("expected TopLayer, got %q", got)
	}
}

func TestAttachReplacesAndStaleDetachIsNoop(t *testing.T) {
	s := NewSet()
	l := s.For(registry.SecondLevel)
	old := l.Attach("shop", "first")
	fresh := l.Attach("shop", "second")
	if l.Len() != 1 {
		t.Fatalf("expected a single member after re-attach, got %d", l.Len())
	}
	if l.Detach("shop", old) {
		t.Fatalf("expected stale token detach to be ignored")
	}
	if !l.Has("shop") {
		t.Fatalf("expected replacement to stay attached")
	}
	if !l.Detach("shop", fresh) {
		t.Fatalf("expected current token to detach")
	}
	if l.Len() != 0 {
		t.Fatalf("expected empty layer, got %d", l.Len())
	}
}

func TestRaiseOnlyCountsOnThirdLayer(t *testing.T) {
	s := NewSet()
	third := s.For(registry.ThirdLevel)
	third.Attach("a", nil)
	third.Attach("b", nil)
	if z := third.Raise("a"); z != 1 {
		t.Fatalf("expected z 1, got %d", z)
	}
	if z := third.Raise("b"); z != 2 {
		t.Fatalf("expected z 2, got %d", z)
	}
	members := third.Members()
	if members[0].Z != 1 || members[1].Z != 2 {
		t.Fatalf("unexpected member z-orders %+v", members)
	}
	if z := s.For(registry.FullScreen).Raise("x"); z != 0 {
		t.Fatalf("expected full-screen layer not to stack, got %d", z)
	}
}

func TestResetClearsMembersAndCounter(t *testing.T) {
	s := NewSet()
	third := s.For(registry.ThirdLevel)
	third.Attach("a", nil)
	third.Raise("a")
	s.For(registry.FullScreen).Attach("lobby", nil)
	s.Reset()
	for _, l := range s.All() {
		if l.Len() != 0 {
			t.Fatalf("expected %s to be empty after reset", l.Name)
		}
	}
	if third.ZOrder() != 0 {
		t.Fatalf("expected z-order counter reset, got %d", third.ZOrder())
	}
}
