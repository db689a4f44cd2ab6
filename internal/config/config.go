package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/atomicstack/pkgsorter/internal/app"
	"github.com/atomicstack/pkgsorter/internal/tags"
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
	envConfigPath = "PKGSORTER_CONFIG"
	envTagStore   = "PKGSORTER_TAG_STORE"
	envTagsPath   = "PKGSORTER_TAGS_PATH"
	envNoAUR      = "PKGSORTER_NO_AUR"
	envShowFooter = "PKGSORTER_FOOTER"
	envTrace      = "PKGSORTER_TRACE"
	envLogFile    = "PKGSORTER_LOG_FILE"
)

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	fs := flag.NewFlagSet("pkgsorter", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	configPath := fs.String("config", envOrDefault(env, envConfigPath, ""), "path to the action file (default $XDG_CONFIG_HOME/pkgsorter/config.toml)")
	tagStore := fs.String("tag-store", envOrDefault(env, envTagStore, tags.KindJSON), "tag store backend: json or sqlite")
	tagsPath := fs.String("tags-path", envOrDefault(env, envTagsPath, ""), "path to the tag store file")
	noAUR := fs.Bool("no-aur", envOrBool(env, envNoAUR, false), "skip AUR popularity lookups")
	footer := fs.Bool("footer", envOrBool(env, envShowFooter, false), "enable footer hint row (disabled by default)")
	trace := fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if fs.NArg() > 0 {
		return Config{}, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	cfg := Config{
		App: app.Config{
			ConfigPath: *configPath,
			TagStore:   strings.ToLower(strings.TrimSpace(*tagStore)),
			TagsPath:   *tagsPath,
			NoAUR:      *noAUR,
			ShowFooter: *footer,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Flags: map[string]string{
			"config":   *configPath,
			"tagStore": *tagStore,
			"tagsPath": *tagsPath,
			"noAUR":    strconv.FormatBool(*noAUR),
			"footer":   strconv.FormatBool(*footer),
			"trace":    strconv.FormatBool(*trace),
			"logFile":  *logFile,
		},
		Args: append([]string(nil), args...),
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

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate ensures required minimum configuration is present.
func Validate(cfg Config) error {
	switch cfg.App.TagStore {
	case "", tags.KindJSON, tags.KindSQLite:
	default:
		return fmt.Errorf("tag-store must be %s or %s (got %q)", tags.KindJSON, tags.KindSQLite, cfg.App.TagStore)
	}
	return nil
}
