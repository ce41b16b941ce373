// Package app composes the registry, scheduler, navigation manager and host
// model into a runnable Bubble Tea program.
package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/atomicstack/uinav/internal/backend"
	"github.com/atomicstack/uinav/internal/dispatcher"
	"github.com/atomicstack/uinav/internal/logging/events"
	"github.com/atomicstack/uinav/internal/nav"
	"github.com/atomicstack/uinav/internal/registry"
	"github.com/atomicstack/uinav/internal/schedule"
	"github.com/atomicstack/uinav/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
)

// defaultRoot is run at start when neither a root nor a screens file is given.
const defaultRoot = "main-menu"

// Config describes user-provided application options.
type Config struct {
	ScreensPath string
	Root        string
	FPS         int
	Transition  time.Duration
	Width       int
	Height      int
	ShowFooter  bool
	// Watch is the poll interval for reloading ScreensPath; zero disables it.
	Watch time.Duration
}

// Build wires every component for cfg and returns the host model. The clock
// drives panel transitions; nil means the wall clock. watcher may be nil.
func Build(cfg Config, clock schedule.Clock, watcher *backend.Watcher) (*ui.Model, error) {
	reg, err := loadRegistry(cfg.ScreensPath)
	if err != nil {
		return nil, err
	}
	root := registry.ID(cfg.Root)
	if root == "" && cfg.ScreensPath == "" {
		root = defaultRoot
	}
	if root != "" && !reg.Has(root) {
		return nil, fmt.Errorf("root %q: %w", root, registry.ErrNotFound)
	}
	if clock == nil {
		clock = schedule.SystemClock{}
	}
	sched := schedule.New(clock)
	mgr := nav.New(reg, ui.NewPanelFactory(sched, cfg.Transition), nav.WithDispatcher(dispatcher.New()))
	return ui.NewModel(ui.Options{
		Manager:    mgr,
		Scheduler:  sched,
		Watcher:    watcher,
		Root:       root,
		Width:      cfg.Width,
		Height:     cfg.Height,
		ShowFooter: cfg.ShowFooter,
		FPS:        cfg.FPS,
	}), nil
}

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) error {
	var watcher *backend.Watcher
	if cfg.ScreensPath != "" && cfg.Watch > 0 {
		watcher = backend.NewWatcher(cfg.ScreensPath, cfg.Watch)
		defer watcher.Stop()
	}
	model, err := Build(cfg, nil, watcher)
	if err != nil {
		return err
	}
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err = program.Run()
	switch {
	case errors.Is(err, tea.ErrProgramKilled):
		events.App.Stop("killed")
		return nil
	case err != nil:
		events.App.Stop(err.Error())
		return err
	}
	events.App.Stop("quit")
	return nil
}

func loadRegistry(path string) (*registry.Registry, error) {
	if path == "" {
		return registry.Default(), nil
	}
	reg, err := registry.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load screens: %w", err)
	}
	return reg, nil
}
