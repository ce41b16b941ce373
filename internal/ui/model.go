package ui

import (
	"fmt"
	"reflect"
	"time"

	"github.com/atomicstack/uinav/internal/backend"
	"github.com/atomicstack/uinav/internal/nav"
	"github.com/atomicstack/uinav/internal/registry"
	"github.com/atomicstack/uinav/internal/schedule"
	"github.com/atomicstack/uinav/internal/theme"
	"github.com/atomicstack/uinav/internal/ui/command"
	uistate "github.com/atomicstack/uinav/internal/ui/state"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
)

const defaultFPS = 30

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// frameMsg drives one scheduler pass and one navigation tick.
type frameMsg time.Time

// Options configures a Model.
type Options struct {
	Manager    *nav.Manager
	Scheduler  *schedule.Scheduler
	Watcher    *backend.Watcher
	Root       registry.ID
	Width      int
	Height     int
	ShowFooter bool
	FPS        int
}

// Model implements the Bubble Tea model for the screen navigator.
type Model struct {
	mgr     *nav.Manager
	sched   *schedule.Scheduler
	bus     *command.Bus
	backend *backend.Watcher
	palette *uistate.Palette
	keys    keyMap
	help    help.Model

	filterCursor      cursor.Model
	filterCursorDirty bool

	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	showFooter  bool
	fps         int
	running     bool
	frames      int

	errMsg     string
	infoMsg    string
	infoExpire time.Time
	restored   string

	handlers map[reflect.Type]msgHandler
}

// NewModel builds the host around an existing manager. When Root is set it is
// run straight away; a failure is shown as an error rather than returned.
func NewModel(opts Options) *Model {
	m := &Model{
		mgr:        opts.Manager,
		sched:      opts.Scheduler,
		bus:        command.New(opts.Manager),
		backend:    opts.Watcher,
		keys:       defaultKeyMap(),
		help:       help.New(),
		showFooter: opts.ShowFooter,
		fps:        opts.FPS,
	}
	if m.fps <= 0 {
		m.fps = defaultFPS
	}
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	m.palette = uistate.NewPalette(paletteItems(m.mgr.Registry()))
	c := cursor.New()
	if styles.Cursor != nil {
		c.Style = styles.Cursor.Copy()
	}
	if styles.Filter != nil {
		c.TextStyle = styles.Filter.Copy()
	}
	c.SetChar(" ")
	m.filterCursor = c
	m.subscribe()
	m.registerHandlers()
	if opts.Root != "" {
		if _, err := m.mgr.Run(opts.Root, nil); err != nil {
			m.errMsg = err.Error()
		}
		m.palette.Select(string(opts.Root))
	}
	return m
}

// Init is part of the tea.Model interface. It starts the frame loop.
func (m *Model) Init() tea.Cmd {
	m.running = true
	cmds := []tea.Cmd{m.frameCmd()}
	if m.backend != nil {
		cmds = append(cmds, waitForBackendEvent(m.backend))
	}
	if cmd := m.filterCursor.Focus(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 4)
	if cmd := m.updateFilterCursorModel(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, m.finishUpdate(cmds)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(frameMsg{}):          m.handleFrameMsg,
		reflect.TypeOf(command.Result{}):    m.handleCommandResultMsg,
		reflect.TypeOf(backendEventMsg{}):   m.handleBackendEventMsg,
		reflect.TypeOf(backendDoneMsg{}):    m.handleBackendDoneMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	if m.filterCursorDirty {
		m.filterCursorDirty = false
		m.filterCursor.Blink = false
		if m.running {
			if cmd := m.filterCursor.BlinkCmd(); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// subscribe notes restores so the close report can name them.
func (m *Model) subscribe() {
	m.mgr.Register(nav.EventRestored, func(args ...interface{}) interface{} {
		if len(args) == 0 {
			return nil
		}
		if ev, ok := args[0].(nav.Event); ok {
			m.restored = m.title(ev.ID)
		}
		return nil
	})
}

func (m *Model) frameCmd() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func (m *Model) handleFrameMsg(tea.Msg) tea.Cmd {
	if m.sched != nil {
		m.sched.Tick()
	}
	m.mgr.Tick()
	m.frames++
	if !m.running {
		return nil
	}
	return m.frameCmd()
}

func (m *Model) handleCommandResultMsg(msg tea.Msg) tea.Cmd {
	res, ok := msg.(command.Result)
	if !ok {
		return nil
	}
	restored := m.restored
	m.restored = ""
	if res.Err != nil {
		m.errMsg = res.Err.Error()
		m.forceClearInfo()
		return nil
	}
	m.errMsg = ""
	switch res.Op {
	case command.OpAdd:
		m.setInfo(fmt.Sprintf("opened %s", m.title(res.ID)))
	case command.OpRun:
		m.setInfo(fmt.Sprintf("ran %s", m.title(res.ID)))
	case command.OpBack, command.OpBackCurrent:
		info := "closed"
		if res.ID != "" {
			info += " " + m.title(res.ID)
		}
		if restored != "" {
			info += ", back to " + restored
		}
		m.setInfo(info)
	}
	return nil
}

func (m *Model) title(id registry.ID) string {
	if d, err := m.mgr.Registry().Lookup(id); err == nil {
		return d.Title
	}
	return string(id)
}

func paletteItems(reg *registry.Registry) []uistate.Item {
	ids := reg.IDs()
	items := make([]uistate.Item, 0, len(ids))
	for _, id := range ids {
		d, err := reg.Lookup(id)
		if err != nil {
			continue
		}
		items = append(items, uistate.Item{
			ID:     string(d.ID),
			Label:  d.Title,
			Detail: describe(d),
		})
	}
	return items
}

func describe(d registry.Descriptor) string {
	detail := d.Tier.String()
	if d.Footprint {
		detail += " · footprint"
	}
	if d.Destroy == registry.DestroyOnSelfClose {
		detail += " · self-close"
	}
	return detail
}

// Manager exposes the navigation manager driven by the model.
func (m *Model) Manager() *nav.Manager {
	return m.mgr
}

// Frames returns the number of frames processed.
func (m *Model) Frames() int {
	return m.frames
}
