// Package command turns palette actions into navigation calls and reports
// their outcome back to the Bubble Tea loop as a Result message.
package command

import (
	"errors"
	"fmt"

	"github.com/atomicstack/uinav/internal/logging/events"
	"github.com/atomicstack/uinav/internal/registry"
	"github.com/atomicstack/uinav/internal/screen"
	tea "github.com/charmbracelet/bubbletea"
)

// Op names a navigation action.
type Op string

const (
	OpAdd         Op = "add"
	OpBack        Op = "back"
	OpBackCurrent Op = "back-current"
	OpRun         Op = "run"
)

// ErrRejected is reported when a close request changed nothing.
var ErrRejected = errors.New("close rejected")

// Navigator is the subset of the navigation manager the bus drives.
type Navigator interface {
	Add(id registry.ID, args screen.Args) (screen.Instance, error)
	Back(id registry.ID, args screen.Args) bool
	BackCurrent(args screen.Args) bool
	Run(id registry.ID, args screen.Args) (screen.Instance, error)
}

// Request encapsulates an action invocation.
type Request struct {
	Op   Op
	ID   registry.ID
	Args screen.Args
}

// Result is delivered to the model once a request has been applied.
type Result struct {
	Op  Op
	ID  registry.ID
	Err error
}

// Bus applies requests to a Navigator.
type Bus struct {
	nav Navigator
}

// New initialises a command bus over nav.
func New(nav Navigator) *Bus {
	return &Bus{nav: nav}
}

// Execute applies req immediately, on the caller's goroutine, and returns a
// command that reports the Result. The navigator is not safe for concurrent
// use, so only the report is deferred.
func (b *Bus) Execute(req Request) tea.Cmd {
	events.Command.Queue(string(req.Op), string(req.ID))
	res := b.apply(req)
	events.Command.Result(string(req.Op), string(res.ID), res.Err == nil, res.Err)
	return func() tea.Msg {
		return res
	}
}

func (b *Bus) apply(req Request) Result {
	res := Result{Op: req.Op, ID: req.ID}
	if b.nav == nil {
		res.Err = fmt.Errorf("%s %q: no navigator", req.Op, req.ID)
		return res
	}
	switch req.Op {
	case OpAdd:
		_, res.Err = b.nav.Add(req.ID, req.Args)
	case OpRun:
		_, res.Err = b.nav.Run(req.ID, req.Args)
	case OpBack:
		if !b.nav.Back(req.ID, req.Args) {
			res.Err = fmt.Errorf("%w: %q", ErrRejected, req.ID)
		}
	case OpBackCurrent:
		if !b.nav.BackCurrent(req.Args) {
			res.Err = fmt.Errorf("%w: nothing open", ErrRejected)
		}
	default:
		res.Err = fmt.Errorf("unknown op %q", req.Op)
	}
	return res
}
