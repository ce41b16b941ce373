package ui

import (
	"time"

	"github.com/atomicstack/uinav/internal/schedule"
	tea "github.com/charmbracelet/bubbletea"
)

// Harness drives the UI model programmatically for integration tests.
type Harness struct {
	model *Model
	clock *schedule.ManualClock
}

// NewHarness creates a harness for the provided model. clock may be nil when
// the model's scheduler runs on the system clock.
func NewHarness(model *Model, clock *schedule.ManualClock) *Harness {
	return &Harness{model: model, clock: clock}
}

// Send routes a message through the model and executes any returned commands.
func (h *Harness) Send(msg tea.Msg) {
	if h.model == nil {
		return
	}
	h.deliver(msg)
}

// Key sends a named key such as "enter", "esc" or "ctrl+x".
func (h *Harness) Key(name string) {
	if kt, ok := keyTypes[name]; ok {
		h.Send(tea.KeyMsg{Type: kt})
		return
	}
	h.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(name)})
}

// Type sends text one rune at a time.
func (h *Harness) Type(text string) {
	for _, r := range text {
		if r == ' ' {
			h.Send(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{r}})
			continue
		}
		h.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

// Advance moves the manual clock forward by d and delivers one frame.
func (h *Harness) Advance(d time.Duration) {
	if h.clock != nil {
		h.clock.Advance(d)
	}
	h.Send(frameMsg(time.Now()))
}

func (h *Harness) deliver(msg tea.Msg) {
	mdl, cmd := h.model.Update(msg)
	if updated, ok := mdl.(*Model); ok {
		h.model = updated
	}
	h.processCmd(cmd)
}

// processCmd runs cmd and feeds its messages back into the model. Batches are
// expanded; quit and timer messages end the chain.
func (h *Harness) processCmd(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	msg := cmd()
	switch msg := msg.(type) {
	case nil, tea.QuitMsg, frameMsg:
		return
	case tea.BatchMsg:
		for _, c := range msg {
			h.processCmd(c)
		}
	default:
		h.deliver(msg)
	}
}

// View returns the current view string.
func (h *Harness) View() string {
	if h.model == nil {
		return ""
	}
	return h.model.View()
}

// Model exposes the underlying model.
func (h *Harness) Model() *Model {
	return h.model
}

var keyTypes = map[string]tea.KeyType{
	"enter":     tea.KeyEnter,
	"esc":       tea.KeyEsc,
	"up":        tea.KeyUp,
	"down":      tea.KeyDown,
	"home":      tea.KeyHome,
	"end":       tea.KeyEnd,
	"pgup":      tea.KeyPgUp,
	"pgdown":    tea.KeyPgDown,
	"left":      tea.KeyLeft,
	"right":     tea.KeyRight,
	"backspace": tea.KeyBackspace,
	"f1":        tea.KeyF1,
	"ctrl+a":    tea.KeyCtrlA,
	"ctrl+c":    tea.KeyCtrlC,
	"ctrl+e":    tea.KeyCtrlE,
	"ctrl+r":    tea.KeyCtrlR,
	"ctrl+u":    tea.KeyCtrlU,
	"ctrl+w":    tea.KeyCtrlW,
	"ctrl+x":    tea.KeyCtrlX,
}
