package app

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/atomicstack/uinav/internal/registry"
	"github.com/atomicstack/uinav/internal/schedule"
)

func TestBuildUsesDefaultScreens(t *testing.T) {
	model, err := Build(Config{Root: "main-menu"}, schedule.NewManualClock(time.Unix(0, 0)), nil)
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	mgr := model.Manager()
	if id, ok := mgr.CurrentID(); !ok || id != "main-menu" {
		t.Fatalf("expected main-menu current, got %q", id)
	}
	if mgr.Registry().Len() != registry.Default().Len() {
		t.Fatalf("expected default registry, got %d screens", mgr.Registry().Len())
	}
}

func TestBuildDefaultsRootForBuiltInScreens(t *testing.T) {
	model, err := Build(Config{}, nil, nil)
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	if got := model.Manager().RunRoot(); got != defaultRoot {
		t.Fatalf("expected run root %q, got %q", defaultRoot, got)
	}
}

func TestBuildLoadsScreensFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "screens.toml")
	data := []byte("[[screen]]\nid = \"lobby\"\ntitle = \"Lobby\"\ntier = \"full\"\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write screens: %v", err)
	}
	model, err := Build(Config{ScreensPath: path, Root: "lobby"}, nil, nil)
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	if got := model.Manager().RunRoot(); got != "lobby" {
		t.Fatalf("expected run root lobby, got %q", got)
	}
}

func TestBuildRejectsUnknownRoot(t *testing.T) {
	_, err := Build(Config{Root: "nowhere"}, nil, nil)
	if !errors.Is(err, registry.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestBuildReportsMissingScreensFile(t *testing.T) {
	_, err := Build(Config{ScreensPath: filepath.Join(t.TempDir(), "missing.toml")}, nil, nil)
	if err == nil {
		t.Fatalf("expected error for missing screens file")
	}
}
