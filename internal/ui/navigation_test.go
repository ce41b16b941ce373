package ui

import (
	"strings"
	"testing"

	"github.com/atomicstack/uinav/internal/registry"
	tea "github.com/charmbracelet/bubbletea"
)

func TestCursorMovementWraps(t *testing.T) {
	h := newTestHarness(t, Options{Root: "home"})
	m := h.Model()
	// palette order: confirm, game, home, hud, shop
	if m.palette.Cursor != 2 {
		t.Fatalf("expected cursor on home, got %d", m.palette.Cursor)
	}
	h.Key("down")
	if m.palette.Cursor != 3 {
		t.Fatalf("expected cursor 3, got %d", m.palette.Cursor)
	}
	h.Key("home")
	h.Key("up")
	if m.palette.Cursor != 4 {
		t.Fatalf("expected wrap to last item, got %d", m.palette.Cursor)
	}
	h.Key("end")
	h.Key("down")
	if m.palette.Cursor != 0 {
		t.Fatalf("expected wrap to first item, got %d", m.palette.Cursor)
	}
}

func TestFilterThenEnterOpensMatch(t *testing.T) {
	h := newTestHarness(t, Options{Root: "home"})
	h.Type("sho")
	m := h.Model()
	if len(m.palette.Items) != 1 || m.palette.Items[0].ID != "shop" {
		t.Fatalf("expected only shop to match, got %#v", m.palette.Items)
	}
	h.Key("enter")
	expectCurrent(t, h, "shop")
	if m.palette.Filter != "" {
		t.Fatalf("expected filter cleared after open, got %q", m.palette.Filter)
	}
	if item, ok := m.palette.Selected(); !ok || item.ID != "shop" {
		t.Fatalf("expected shop to stay selected, got %#v", item)
	}
}

func TestEscapeClearsFilterBeforeClosing(t *testing.T) {
	h := newTestHarness(t, Options{Root: "home"})
	h.Type("ga")
	h.Key("esc")
	if h.Model().palette.Filter != "" {
		t.Fatalf("expected filter cleared, got %q", h.Model().palette.Filter)
	}
	expectCurrent(t, h, "home")
}

func TestEscapeWithNothingOpenQuits(t *testing.T) {
	h := newTestHarness(t, Options{Root: "home"})
	h.Key("esc")
	if _, ok := h.Model().Manager().CurrentID(); ok {
		t.Fatalf("expected root closed")
	}
	_, cmd := h.Model().Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
}

func TestCloseSelectedRejectsUnopenedScreen(t *testing.T) {
	h := newTestHarness(t, Options{Root: "home"})
	h.Model().palette.Select("shop")
	h.Key("ctrl+x")
	if !strings.Contains(h.Model().errMsg, "close rejected") {
		t.Fatalf("expected rejection error, got %q", h.Model().errMsg)
	}
	expectCurrent(t, h, "home")
}

func TestCloseSelectedNonCurrentSecondLevel(t *testing.T) {
	h := newTestHarness(t, Options{Root: "home"})
	m := h.Model()
	m.palette.Select("shop")
	h.Key("enter")
	m.palette.Select("confirm")
	h.Key("enter")
	m.palette.Select("shop")
	h.Key("ctrl+x")
	if m.errMsg != "" {
		t.Fatalf("expected close to succeed, got %q", m.errMsg)
	}
	ids := m.Manager().History().IDs()
	for _, id := range ids {
		if id == "shop" {
			t.Fatalf("expected shop unlinked from chain, got %v", ids)
		}
	}
	expectCurrent(t, h, "confirm")
}

func TestRunSelectedReplacesEverything(t *testing.T) {
	h := newTestHarness(t, Options{Root: "home"})
	m := h.Model()
	m.palette.Select("shop")
	h.Key("enter")
	m.palette.Select("game")
	h.Key("ctrl+r")
	if m.Manager().RunRoot() != "game" {
		t.Fatalf("expected run root game, got %q", m.Manager().RunRoot())
	}
	if open := m.Manager().Open(); len(open) != 1 || open[0] != registry.ID("game") {
		t.Fatalf("expected only game open, got %v", open)
	}
	if got := m.currentInfo(); got != "ran Game" {
		t.Fatalf("expected run info, got %q", got)
	}
}

func TestFilterEditingKeys(t *testing.T) {
	h := newTestHarness(t, Options{Root: "home"})
	m := h.Model()
	h.Type("item detail")
	h.Key("ctrl+w")
	if m.palette.Filter != "item " {
		t.Fatalf("expected word deleted, got %q", m.palette.Filter)
	}
	h.Key("backspace")
	if m.palette.Filter != "item" {
		t.Fatalf("expected rune deleted, got %q", m.palette.Filter)
	}
	h.Key("ctrl+a")
	if m.palette.FilterCursorPos() != 0 {
		t.Fatalf("expected caret at start, got %d", m.palette.FilterCursorPos())
	}
	h.Type("x")
	if m.palette.Filter != "xitem" {
		t.Fatalf("expected insert at caret, got %q", m.palette.Filter)
	}
	h.Key("ctrl+u")
	if m.palette.Filter != "" {
		t.Fatalf("expected filter cleared, got %q", m.palette.Filter)
	}
}

func TestHelpToggle(t *testing.T) {
	h := newTestHarness(t, Options{Root: "home", ShowFooter: true})
	h.Key("f1")
	if !h.Model().help.ShowAll {
		t.Fatalf("expected full help after f1")
	}
	h.Key("f1")
	if h.Model().help.ShowAll {
		t.Fatalf("expected short help after second f1")
	}
}
