// Package tags persists user-assigned package tags.
package tags

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotTagged is returned when removing a tag the package does not carry.
var ErrNotTagged = errors.New("package does not carry tag")

// ErrEmptyTag is returned when adding or removing a blank tag.
var ErrEmptyTag = errors.New("tag is empty")

// Store is the persistence boundary for tags. Add and Remove return a
// human-readable confirmation on success.
type Store interface {
	Load() (map[string][]string, error)
	All() ([]string, error)
	Add(pkg, tag string) (string, error)
	Remove(pkg, tag string) (string, error)
}

const (
	KindJSON   = "json"
	KindSQLite = "sqlite"
	appDir     = "pkgsorter"
)

// Open returns a store of the given kind. An empty path resolves to the
// default location under the user config directory.
func Open(kind, path string) (Store, error) {
	kind = strings.ToLower(strings.TrimSpace(kind))
	if kind == "" {
		kind = KindJSON
	}
	if path == "" {
		var err error
		path, err = DefaultPath(kind)
		if err != nil {
			return nil, err
		}
	}
	switch kind {
	case KindJSON:
		return NewFileStore(path), nil
	case KindSQLite:
		return OpenSQLStore(path)
	default:
		return nil, fmt.Errorf("unknown tag store %q (want %s or %s)", kind, KindJSON, KindSQLite)
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/pkgsorter/tags.{json,db}.
func DefaultPath(kind string) (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	name := "tags.json"
	if kind == KindSQLite {
		name = "tags.db"
	}
	return filepath.Join(dir, appDir, name), nil
}

func addedMessage(pkg, tag string) string {
	return fmt.Sprintf("Added tag '%s' to '%s'", tag, pkg)
}

func removedMessage(pkg, tag string) string {
	return fmt.Sprintf("Removed tag '%s' from '%s'", tag, pkg)
}

func notTagged(pkg, tag string) error {
	return fmt.Errorf("remove tag '%s' from '%s': %w", tag, pkg, ErrNotTagged)
}

func ensureDir(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create tag store directory: %w", err)
	}
	return nil
}
