package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/atomicstack/uinav/internal/app"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envScreens    = "UINAV_SCREENS"
	envRoot       = "UINAV_ROOT"
	envFPS        = "UINAV_FPS"
	envTransition = "UINAV_TRANSITION"
	envWidth      = "UINAV_WIDTH"
	envHeight     = "UINAV_HEIGHT"
	envShowFooter = "UINAV_FOOTER"
	envTrace      = "UINAV_TRACE"
	envLogFile    = "UINAV_LOG_FILE"
	envWatch      = "UINAV_WATCH"
)

const (
	defaultFPS        = 30
	defaultTransition = 150 * time.Millisecond
	defaultWatch      = time.Second
)

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	fs := flag.NewFlagSet("uinav", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	screens := fs.String("screens", envOrDefault(env, envScreens, ""), "path to a TOML screen definition file (built-in set when empty)")
	root := fs.String("root", envOrDefault(env, envRoot, ""), "screen to run at start (defaults to main-menu with the built-in screens)")
	fps := fs.Int("fps", envOrInt(env, envFPS, defaultFPS), "frames per second for the tick loop")
	transition := fs.Duration("transition", envOrDuration(env, envTransition, defaultTransition), "duration of show and hide effects")
	width := fs.Int("width", envOrInt(env, envWidth, 0), "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, 0), "desired viewport height in rows (0 uses terminal height)")
	footer := fs.Bool("footer", envOrBool(env, envShowFooter, false), "enable footer key help (disabled by default)")
	trace := fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	watch := fs.Duration("watch", envOrDuration(env, envWatch, defaultWatch), "poll interval for reloading the -screens file (0 disables)")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg := Config{
		App: app.Config{
			ScreensPath: *screens,
			Root:        *root,
			FPS:         *fps,
			Transition:  *transition,
			Width:       *width,
			Height:      *height,
			ShowFooter:  *footer,
			Watch:       *watch,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Flags: map[string]string{
			"screens":    *screens,
			"root":       *root,
			"fps":        strconv.Itoa(*fps),
			"transition": transition.String(),
			"width":      strconv.Itoa(*width),
			"height":     strconv.Itoa(*height),
			"footer":     strconv.FormatBool(*footer),
			"trace":      strconv.FormatBool(*trace),
			"watch":      watch.String(),
			"logFile":    *logFile,
		},
		Args: append([]string(nil), args...),
	}

	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrDuration(env map[string]string, key string, fallback time.Duration) time.Duration {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate rejects sizes and timings the host cannot honour.
func Validate(cfg Config) error {
	a := cfg.App
	switch {
	case a.Width < 0:
		return fmt.Errorf("width must be >= 0 (got %d)", a.Width)
	case a.Height < 0:
		return fmt.Errorf("height must be >= 0 (got %d)", a.Height)
	case a.FPS <= 0:
		return fmt.Errorf("fps must be > 0 (got %d)", a.FPS)
	case a.Transition < 0:
		return fmt.Errorf("transition must be >= 0 (got %s)", a.Transition)
	case a.Watch < 0:
		return fmt.Errorf("watch must be >= 0 (got %s)", a.Watch)
	}
	return nil
}
