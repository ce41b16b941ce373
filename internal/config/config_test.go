package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadArgsDefaults(t *testing.T) {
	cfg, err := LoadArgs(nil, nil)
	if err != nil {
		t.Fatalf("LoadArgs returned error: %v", err)
	}
	if cfg.App.Root != "" {
		t.Fatalf("expected empty root, got %q", cfg.App.Root)
	}
	if cfg.App.Watch != defaultWatch {
		t.Fatalf("expected watch %s, got %s", defaultWatch, cfg.App.Watch)
	}
	if cfg.App.FPS != defaultFPS {
		t.Fatalf("expected fps %d, got %d", defaultFPS, cfg.App.FPS)
	}
	if cfg.App.Transition != defaultTransition {
		t.Fatalf("expected transition %s, got %s", defaultTransition, cfg.App.Transition)
	}
	if cfg.App.ScreensPath != "" || cfg.App.ShowFooter || cfg.Logging.Trace {
		t.Fatalf("expected zero optional settings, got %#v", cfg)
	}
}

func TestLoadArgsFlagsOverrideEnvironment(t *testing.T) {
	env := []string{
		"UINAV_ROOT=game",
		"UINAV_FPS=60",
		"UINAV_TRANSITION=1s",
		"UINAV_FOOTER=true",
	}
	cfg, err := LoadArgs([]string{"-root", "shop", "-transition", "250ms"}, env)
	if err != nil {
		t.Fatalf("LoadArgs returned error: %v", err)
	}
	if cfg.App.Root != "shop" {
		t.Fatalf("expected flag root shop, got %q", cfg.App.Root)
	}
	if cfg.App.Transition != 250*time.Millisecond {
		t.Fatalf("expected flag transition 250ms, got %s", cfg.App.Transition)
	}
	if cfg.App.FPS != 60 {
		t.Fatalf("expected env fps 60, got %d", cfg.App.FPS)
	}
	if !cfg.App.ShowFooter {
		t.Fatalf("expected env footer true")
	}
	if cfg.Flags["transition"] != "250ms" {
		t.Fatalf("expected transition flag 250ms, got %q", cfg.Flags["transition"])
	}
}

func TestLoadArgsIgnoresMalformedEnvironment(t *testing.T) {
	cfg, err := LoadArgs(nil, []string{"UINAV_FPS=fast", "UINAV_TRANSITION=soon", "garbage"})
	if err != nil {
		t.Fatalf("LoadArgs returned error: %v", err)
	}
	if cfg.App.FPS != defaultFPS || cfg.App.Transition != defaultTransition {
		t.Fatalf("expected defaults, got fps %d transition %s", cfg.App.FPS, cfg.App.Transition)
	}
}

func TestLoadArgsValidation(t *testing.T) {
	cases := []struct {
		args []string
		want string
	}{
		{[]string{"-width", "-1"}, "width"},
		{[]string{"-height", "-2"}, "height"},
		{[]string{"-fps", "0"}, "fps"},
		{[]string{"-transition", "-1s"}, "transition"},
		{[]string{"-watch", "-1s"}, "watch"},
	}
	for _, tc := range cases {
		_, err := LoadArgs(tc.args, nil)
		if err == nil || !strings.Contains(err.Error(), tc.want) {
			t.Fatalf("expected %s error for %v, got %v", tc.want, tc.args, err)
		}
	}
}

func TestLoadArgsUnknownFlag(t *testing.T) {
	if _, err := LoadArgs([]string{"-socket", "x"}, nil); err == nil {
		t.Fatalf("expected error for unknown flag")
	}
}
