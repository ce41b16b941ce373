package main

import (
	"testing"
	"time"

	"github.com/atomicstack/uinav/internal/app"
	"github.com/atomicstack/uinav/internal/config"
)

func TestProbeTTYIncludesStandardDescriptors(t *testing.T) {
	info := probeTTY()
	if len(info.Probes) != 3 {
		t.Fatalf("expected 3 probe entries, got %d", len(info.Probes))
	}
	expected := []string{"stdin", "stdout", "stderr"}
	for i, name := range expected {
		if info.Probes[i].Name != name {
			t.Fatalf("expected probe %d name %q, got %q", i, name, info.Probes[i].Name)
		}
	}
}

func TestStartupTracePayloadIncludesFlags(t *testing.T) {
	cfg := config.Config{
		App: app.Config{
			ScreensPath: "screens.toml",
			Root:        "main-menu",
			FPS:         30,
			Transition:  150 * time.Millisecond,
			Width:       80,
			Height:      24,
			ShowFooter:  true,
		},
		Logging: config.Logging{
			FilePath: "trace.log",
			Trace:    true,
		},
		Flags: map[string]string{
			"screens":    "screens.toml",
			"root":       "main-menu",
			"fps":        "30",
			"transition": "150ms",
			"footer":     "true",
		},
		Args: []string{"-screens", "screens.toml"},
	}

	payload := startupTracePayload(cfg, ttyReport{Source: "stdout", Width: 80, Height: 24})

	flagsValue, ok := payload["flags"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected flags map in payload")
	}
	for key, want := range map[string]interface{}{
		"screens":    "screens.toml",
		"root":       "main-menu",
		"fps":        "30",
		"transition": "150ms",
		"footer":     "true",
		"trace":      true,
		"logFile":    "trace.log",
	} {
		if flagsValue[key] != want {
			t.Fatalf("expected %s flag %v, got %v", key, want, flagsValue[key])
		}
	}

	if tty, ok := payload["tty"].(ttyReport); !ok || tty.Source != "stdout" {
		t.Fatalf("expected tty report in payload, got %#v", payload["tty"])
	}
	if cfgValue, ok := payload["config"].(config.Config); !ok {
		t.Fatalf("expected config in payload")
	} else if cfgValue.App != cfg.App {
		t.Fatalf("expected app config %#v, got %#v", cfg.App, cfgValue.App)
	}
}
