package actions

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/BurntSushi/toml"
	"github.com/agnivade/levenshtein"
	"github.com/atomicstack/pkgsorter/internal/catalog"
	"github.com/spf13/viper"
)

const (
	typeCommand = "Command"
	typeLocal   = "Local"
)

type fileKey struct {
	Key   string `mapstructure:"key" toml:"key"`
	Shift bool   `mapstructure:"shift" toml:"shift"`
}

type fileAction struct {
	Name              string   `mapstructure:"name" toml:"name"`
	Type              string   `mapstructure:"type" toml:"type"`
	Command           []string `mapstructure:"command" toml:"command"`
	RequiresPackage   bool     `mapstructure:"requires_package" toml:"requires_package"`
	ShowModeWhitelist []string `mapstructure:"show_mode_whitelist" toml:"show_mode_whitelist"`
	ShowModeBlacklist []string `mapstructure:"show_mode_blacklist" toml:"show_mode_blacklist"`
	Key               fileKey  `mapstructure:"key" toml:"key"`
}

type fileConfig struct {
	Actions []fileAction `mapstructure:"actions" toml:"actions"`
}

// Defaults returns the stock command actions.
func Defaults() []Action {
	return []Action{
		{
			Name:    "System Upgrade (pacman)",
			Key:     Hotkey{Key: 'S', Shift: true},
			Command: []string{"sudo", "pacman", "-Syu"},
		},
		{
			Name:    "System Upgrade (yay)",
			Key:     Hotkey{Key: 'Y', Shift: true},
			Command: []string{"yay", "-Syu"},
		},
		{
			Name:            "Install Package",
			Key:             Hotkey{Key: 'i'},
			Command:         []string{"sudo", "pacman", "-S", Placeholder},
			RequiresPackage: true,
			Whitelist:       []string{catalog.ShowAllAvailable.String()},
		},
		{
			Name:            "Uninstall Package",
			Key:             Hotkey{Key: 'u'},
			Command:         []string{"sudo", "pacman", "-Rns", Placeholder},
			RequiresPackage: true,
			Blacklist:       []string{catalog.ShowAllAvailable.String()},
		},
		{
			Name:    "Remove Orphan Packages",
			Key:     Hotkey{Key: 'o'},
			Command: []string{"sudo", "sh", "-c", "pacman -Rns $(pacman -Qdtq)"},
		},
	}
}

// DefaultConfigPath returns $XDG_CONFIG_HOME/pkgsorter/config.toml.
func DefaultConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(dir, "pkgsorter", "config.toml"), nil
}

// LoadFile reads command actions from path (TOML, YAML or JSON, chosen by
// extension). A missing file is created with the defaults. Any problem
// yields the defaults plus a warning; per-action problems drop that action
// and add a warning.
func LoadFile(path string) ([]Action, []string) {
	var warnings []string
	if path == "" {
		p, err := DefaultConfigPath()
		if err != nil {
			return Defaults(), []string{fmt.Sprintf("Failed to locate config: %v. Using default actions.", err)}
		}
		path = p
	}

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if werr := WriteDefault(path); werr != nil {
			warnings = append(warnings, fmt.Sprintf("Failed to write default config to %s: %v", path, werr))
		}
		return Defaults(), warnings
	}

	v := viper.New()
	v.SetConfigFile(path)
	if filepath.Ext(path) == "" {
		v.SetConfigType("toml")
	}
	if err := v.ReadInConfig(); err != nil {
		return Defaults(), []string{fmt.Sprintf("Failed to read config file %s: %v. Using default actions.", path, err)}
	}
	if !v.IsSet("actions") {
		return Defaults(), nil
	}
	var cfg fileConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return Defaults(), []string{fmt.Sprintf("Failed to parse config file %s: %v. Using default actions.", path, err)}
	}

	out := make([]Action, 0, len(cfg.Actions))
	for i, fa := range cfg.Actions {
		a, warns, ok := fa.toAction(i)
		warnings = append(warnings, warns...)
		if ok {
			out = append(out, a)
		}
	}
	if len(out) == 0 && len(cfg.Actions) > 0 {
		warnings = append(warnings, fmt.Sprintf("No usable actions in %s. Using default actions.", path))
		return Defaults(), warnings
	}
	return out, warnings
}

func (fa fileAction) toAction(index int) (Action, []string, bool) {
	label := strings.TrimSpace(fa.Name)
	if label == "" {
		return Action{}, []string{fmt.Sprintf("Action #%d has no name; skipped", index+1)}, false
	}
	kind := fa.Type
	if kind == "" {
		kind = typeCommand
	}
	if strings.EqualFold(kind, typeLocal) {
		return Action{}, []string{fmt.Sprintf("Action '%s': local actions are built in; skipped", label)}, false
	}
	if !strings.EqualFold(kind, typeCommand) {
		return Action{}, []string{fmt.Sprintf("Action '%s': unknown type %q; skipped", label, fa.Type)}, false
	}
	if len(fa.Command) == 0 {
		return Action{}, []string{fmt.Sprintf("Action '%s' has an empty command; skipped", label)}, false
	}
	var key Hotkey
	if fa.Key.Key != "" {
		if utf8.RuneCountInString(fa.Key.Key) != 1 {
			return Action{}, []string{fmt.Sprintf("Action '%s': key %q must be a single character; skipped", label, fa.Key.Key)}, false
		}
		r, _ := utf8.DecodeRuneInString(fa.Key.Key)
		key = Hotkey{Key: r, Shift: fa.Key.Shift}
	}
	var warnings []string
	warnings = append(warnings, checkModes(label, "whitelist", fa.ShowModeWhitelist)...)
	warnings = append(warnings, checkModes(label, "blacklist", fa.ShowModeBlacklist)...)
	return Action{
		Name:            label,
		Key:             key,
		Kind:            KindCommand,
		Command:         append([]string(nil), fa.Command...),
		RequiresPackage: fa.RequiresPackage,
		Whitelist:       append([]string(nil), fa.ShowModeWhitelist...),
		Blacklist:       append([]string(nil), fa.ShowModeBlacklist...),
	}, warnings, true
}

func checkModes(action, list string, names []string) []string {
	var warnings []string
	for _, name := range names {
		if _, ok := catalog.ParseShowMode(name); ok {
			continue
		}
		msg := fmt.Sprintf("Action '%s': unknown show mode %q in %s", action, name, list)
		if suggestion := closestShowMode(name); suggestion != "" {
			msg += fmt.Sprintf(" (did you mean %q?)", suggestion)
		}
		warnings = append(warnings, msg)
	}
	return warnings
}

// closestShowMode suggests the show mode name nearest to name, or "" when
// nothing is reasonably close.
func closestShowMode(name string) string {
	folded := strings.ToLower(strings.ReplaceAll(name, " ", ""))
	best, bestDist := "", -1
	for _, mode := range catalog.ShowModes() {
		candidate := strings.ToLower(strings.ReplaceAll(mode.String(), " ", ""))
		d := levenshtein.ComputeDistance(folded, candidate)
		if bestDist < 0 || d < bestDist {
			best, bestDist = mode.String(), d
		}
	}
	if bestDist < 0 || bestDist > len(folded)/2+1 {
		return ""
	}
	return best
}

// WriteDefault writes the default actions to path as TOML.
func WriteDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create config: %w", err)
	}
	enc := toml.NewEncoder(f)
	if err := enc.Encode(toFile(Defaults())); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode config: %w", err)
	}
	return f.Close()
}

func toFile(actions []Action) fileConfig {
	cfg := fileConfig{Actions: make([]fileAction, 0, len(actions))}
	for _, a := range actions {
		cfg.Actions = append(cfg.Actions, fileAction{
			Name:              a.Name,
			Type:              typeCommand,
			Command:           a.Command,
			RequiresPackage:   a.RequiresPackage,
			ShowModeWhitelist: nonNil(a.Whitelist),
			ShowModeBlacklist: nonNil(a.Blacklist),
			Key:               fileKey{Key: string(a.Key.Key), Shift: a.Key.Shift},
		})
	}
	return cfg
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
