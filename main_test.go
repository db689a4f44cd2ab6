package main

import (
	"testing"

	"github.com/atomicstack/pkgsorter/internal/app"
	"github.com/atomicstack/pkgsorter/internal/config"
)

func TestCollectTTYDetailsIncludesStandardDescriptors(t *testing.T) {
	info := collectTTYDetails()
	if len(info.Descriptors) != 3 {
		t.Fatalf("expected 3 descriptor entries, got %d", len(info.Descriptors))
	}
	expected := []string{"stdin", "stdout", "stderr"}
	for i, name := range expected {
		if info.Descriptors[i].Name != name {
			t.Fatalf("expected descriptor %d name %q, got %q", i, name, info.Descriptors[i].Name)
		}
	}
}

func TestStartupTracePayloadIncludesFlags(t *testing.T) {
	cfg := config.Config{
		App: app.Config{
			ConfigPath: "actions.toml",
			TagStore:   "sqlite",
			TagsPath:   "tags.db",
			NoAUR:      true,
			ShowFooter: true,
		},
		Logging: config.Logging{
			FilePath: "trace.log",
			Trace:    true,
		},
		Flags: map[string]string{
			"config":   "actions.toml",
			"tagStore": "sqlite",
			"noAUR":    "true",
			"footer":   "true",
		},
		Args: []string{"--tag-store", "sqlite"},
	}

	payload := startupTracePayload(cfg)

	flagsValue, ok := payload["flags"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected flags map in payload")
	}
	if flagsValue["config"] != "actions.toml" {
		t.Fatalf("expected config flag %q, got %v", "actions.toml", flagsValue["config"])
	}
	if flagsValue["tagStore"] != "sqlite" {
		t.Fatalf("expected tag store sqlite, got %v", flagsValue["tagStore"])
	}
	if flagsValue["noAUR"] != "true" {
		t.Fatalf("expected noAUR true, got %v", flagsValue["noAUR"])
	}
	if flagsValue["trace"] != true {
		t.Fatalf("expected trace flag true, got %v", flagsValue["trace"])
	}
	if flagsValue["logFile"] != "trace.log" {
		t.Fatalf("expected log file trace.log, got %v", flagsValue["logFile"])
	}

	if _, ok := payload["tty"].(ttyDetails); !ok {
		t.Fatalf("expected tty details in payload")
	}
	if cfgValue, ok := payload["config"].(config.Config); !ok {
		t.Fatalf("expected config in payload")
	} else if cfgValue.App != cfg.App {
		t.Fatalf("expected app config %#v, got %#v", cfg.App, cfgValue.App)
	}
}

func TestStartupTracePayloadIncludesPathsAndTools(t *testing.T) {
	cfg := config.Config{App: app.Config{
		ConfigPath: "actions.toml",
		TagStore:   "sqlite",
		TagsPath:   "tags.db",
		NoAUR:      true,
	}}

	payload := startupTracePayload(cfg)

	paths, ok := payload["paths"].(map[string]string)
	if !ok {
		t.Fatalf("expected paths map in payload")
	}
	if paths["actions"] != "actions.toml" || paths["tags"] != "tags.db" || paths["tagStore"] != "sqlite" {
		t.Fatalf("unexpected paths %v", paths)
	}
	tools, ok := payload["tools"].(map[string]string)
	if !ok {
		t.Fatalf("expected tools map in payload")
	}
	if _, ok := tools["pacman"]; !ok {
		t.Fatalf("expected pacman entry, got %v", tools)
	}
	if _, ok := tools["yay"]; ok {
		t.Fatalf("expected no AUR helper entry with AUR disabled, got %v", tools)
	}
}

func TestResolvedPathsFillsDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	paths := resolvedPaths(app.Config{})
	if paths["tagStore"] != "json" {
		t.Fatalf("expected json tag store, got %q", paths["tagStore"])
	}
	if paths["actions"] == "" || paths["tags"] == "" {
		t.Fatalf("expected default paths, got %v", paths)
	}
}

func TestRequireTerminal(t *testing.T) {
	ok := ttyDetails{Descriptors: []ttyDescriptor{
		{Name: "stdin", IsTerminal: true},
		{Name: "stdout", IsTerminal: true},
		{Name: "stderr", IsTerminal: false},
	}}
	if err := requireTerminal(ok); err != nil {
		t.Fatalf("expected terminal check to pass, got %v", err)
	}
	piped := ttyDetails{Descriptors: []ttyDescriptor{
		{Name: "stdin", IsTerminal: true},
		{Name: "stdout", IsTerminal: false},
	}}
	err := requireTerminal(piped)
	if err == nil || err.Error() != "stdout is not a terminal" {
		t.Fatalf("expected stdout error, got %v", err)
	}
}
