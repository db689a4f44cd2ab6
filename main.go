package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/atomicstack/pkgsorter/internal/actions"
	"github.com/atomicstack/pkgsorter/internal/app"
	"github.com/atomicstack/pkgsorter/internal/config"
	"github.com/atomicstack/pkgsorter/internal/logging"
	"github.com/atomicstack/pkgsorter/internal/logging/events"
	"github.com/atomicstack/pkgsorter/internal/tags"
	"golang.org/x/term"
)

func main() {
	runtimeCfg := config.MustLoad()
	if err := config.Validate(runtimeCfg); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	logging.Configure(runtimeCfg.Logging.FilePath)
	logging.SetTraceEnabled(runtimeCfg.Logging.Trace)

	tty := traceStartup(runtimeCfg)
	if err := requireTerminal(tty); err != nil {
		logging.Error(err)
		logging.Close()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	err := app.Run(context.Background(), runtimeCfg.App)
	if err != nil {
		logging.Error(err)
	}
	logging.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func traceStartup(cfg config.Config) ttyDetails {
	payload := startupTracePayload(cfg)
	events.App.Start(payload)
	tty, _ := payload["tty"].(ttyDetails)
	return tty
}

// requireTerminal fails unless both stdin and stdout are terminals; the
// dashboard and the suspended commands share them.
func requireTerminal(tty ttyDetails) error {
	for _, d := range tty.Descriptors {
		if (d.Name == "stdin" || d.Name == "stdout") && !d.IsTerminal {
			return fmt.Errorf("%s is not a terminal", d.Name)
		}
	}
	return nil
}

// startupTracePayload bundles runtime context for trace logging.
func startupTracePayload(cfg config.Config) map[string]interface{} {
	flags := make(map[string]interface{}, len(cfg.Flags))
	for k, v := range cfg.Flags {
		flags[k] = v
	}
	flags["trace"] = cfg.Logging.Trace
	flags["logFile"] = cfg.Logging.FilePath
	payload := map[string]interface{}{
		"argv":    cfg.Args,
		"flags":   flags,
		"config":  cfg,
		"logPath": logging.Path(),
	}
	if exe, err := os.Executable(); err == nil {
		payload["executable"] = exe
	} else {
		payload["executableError"] = err.Error()
	}
	if cwd, err := os.Getwd(); err == nil {
		payload["cwd"] = cwd
	} else {
		payload["cwdError"] = err.Error()
	}
	payload["paths"] = resolvedPaths(cfg.App)
	payload["tools"] = toolAvailability(cfg.App.NoAUR)
	payload["tty"] = collectTTYDetails()
	return payload
}

// resolvedPaths reports where the action config and tag store will live,
// filling in the defaults the app would pick for empty settings.
func resolvedPaths(cfg app.Config) map[string]string {
	out := map[string]string{"tagStore": cfg.TagStore}
	if out["tagStore"] == "" {
		out["tagStore"] = tags.KindJSON
	}
	out["actions"] = cfg.ConfigPath
	if out["actions"] == "" {
		if p, err := actions.DefaultConfigPath(); err == nil {
			out["actions"] = p
		} else {
			out["actionsError"] = err.Error()
		}
	}
	out["tags"] = cfg.TagsPath
	if out["tags"] == "" {
		if p, err := tags.DefaultPath(out["tagStore"]); err == nil {
			out["tags"] = p
		} else {
			out["tagsError"] = err.Error()
		}
	}
	return out
}

// toolAvailability maps the external commands the default actions rely on
// to their resolved location, or "" when missing from PATH.
func toolAvailability(noAUR bool) map[string]string {
	names := []string{"pacman", "sudo"}
	if !noAUR {
		names = append(names, "yay")
	}
	out := make(map[string]string, len(names))
	for _, name := range names {
		path, _ := exec.LookPath(name)
		out[name] = path
	}
	return out
}

type ttyDetails struct {
	Detected    *ttyDetected    `json:"detected,omitempty"`
	Descriptors []ttyDescriptor `json:"descriptors"`
}

type ttyDetected struct {
	Source string `json:"source"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type ttyDescriptor struct {
	Name       string `json:"name"`
	IsTerminal bool   `json:"is_terminal"`
	Width      int    `json:"width,omitempty"`
	Height     int    `json:"height,omitempty"`
	Error      string `json:"error,omitempty"`
}

// collectTTYDetails inspects standard descriptors for terminal support and dimensions.
func collectTTYDetails() ttyDetails {
	std := []struct {
		name string
		fd   uintptr
	}{
		{"stdin", os.Stdin.Fd()},
		{"stdout", os.Stdout.Fd()},
		{"stderr", os.Stderr.Fd()},
	}
	results := make([]ttyDescriptor, 0, len(std))
	var detected *ttyDetected
	for _, s := range std {
		entry := ttyDescriptor{Name: s.name}
		fd := int(s.fd)
		if fd >= 0 && term.IsTerminal(fd) {
			entry.IsTerminal = true
			if width, height, err := term.GetSize(fd); err == nil {
				entry.Width = width
				entry.Height = height
				if detected == nil {
					detected = &ttyDetected{Source: s.name, Width: width, Height: height}
				}
			} else {
				entry.Error = err.Error()
			}
		}
		results = append(results, entry)
	}
	return ttyDetails{Detected: detected, Descriptors: results}
}
