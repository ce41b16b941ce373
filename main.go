// Command uinav browses a set of screen definitions in the terminal and drives
// them through the navigation manager.
package main

import (
	"fmt"
	"os"

	"github.com/atomicstack/uinav/internal/app"
	"github.com/atomicstack/uinav/internal/config"
	"github.com/atomicstack/uinav/internal/logging"
	"github.com/atomicstack/uinav/internal/logging/events"
	"golang.org/x/term"
)

func main() {
	runtimeCfg := config.MustLoad()
	logging.Configure(runtimeCfg.Logging.FilePath)
	logging.SetTraceEnabled(runtimeCfg.Logging.Trace)

	tty := probeTTY()
	events.App.Start(startupTracePayload(runtimeCfg, tty))
	if tty.Source == "" {
		fmt.Fprintln(os.Stderr, "Error: uinav needs an interactive terminal")
		os.Exit(1)
	}

	if err := app.Run(runtimeCfg.App); err != nil {
		logging.Error(err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// startupTracePayload bundles runtime context for trace logging.
func startupTracePayload(cfg config.Config, tty ttyReport) map[string]interface{} {
	flags := make(map[string]interface{}, len(cfg.Flags)+2)
	for k, v := range cfg.Flags {
		flags[k] = v
	}
	flags["trace"] = cfg.Logging.Trace
	flags["logFile"] = cfg.Logging.FilePath
	payload := map[string]interface{}{
		"argv":   cfg.Args,
		"flags":  flags,
		"config": cfg,
		"tty":    tty,
	}
	if exe, err := os.Executable(); err == nil {
		payload["executable"] = exe
	}
	if cwd, err := os.Getwd(); err == nil {
		payload["cwd"] = cwd
	}
	return payload
}

// ttyReport records which standard descriptors are terminals. Source names the
// first one whose size could be read; it is empty when none could.
type ttyReport struct {
	Source string     `json:"source,omitempty"`
	Width  int        `json:"width,omitempty"`
	Height int        `json:"height,omitempty"`
	Probes []ttyProbe `json:"probes"`
}

type ttyProbe struct {
	Name     string `json:"name"`
	Terminal bool   `json:"terminal"`
	Error    string `json:"error,omitempty"`
}

func probeTTY() ttyReport {
	descriptors := []struct {
		name string
		file *os.File
	}{
		{"stdin", os.Stdin},
		{"stdout", os.Stdout},
		{"stderr", os.Stderr},
	}
	var report ttyReport
	for _, d := range descriptors {
		probe := ttyProbe{Name: d.name}
		fd := int(d.file.Fd())
		probe.Terminal = term.IsTerminal(fd)
		if probe.Terminal {
			width, height, err := term.GetSize(fd)
			switch {
			case err != nil:
				probe.Error = err.Error()
			case report.Source == "":
				report.Source, report.Width, report.Height = d.name, width, height
			}
		}
		report.Probes = append(report.Probes, probe)
	}
	return report
}
