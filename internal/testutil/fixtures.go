// Package testutil holds fixtures shared by package tests.
package testutil

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/atomicstack/pkgsorter/internal/catalog"
	"github.com/atomicstack/pkgsorter/internal/tags"
)

// ErrStoreDown is returned by FailingTagStore.
var ErrStoreDown = errors.New("tag store unavailable")

var baseTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func pop(v float64) *float64 { return &v }

func votes(v int) *int { return &v }

// Installed returns a small installed catalog covering every repository
// kind, explicit and dependency packages, tags and popularity.
func Installed() []catalog.Package {
	return []catalog.Package{
		{Name: "glibc", Version: "2.40-1", Description: "GNU C Library", Repository: catalog.RepoCore, InstallDate: baseTime.Add(-72 * time.Hour), BuildDate: baseTime.Add(-96 * time.Hour), Size: 48.2},
		{Name: "acl", Version: "2.3.2-1", Description: "Access control list utilities", Repository: catalog.RepoCore, InstallDate: baseTime.Add(-48 * time.Hour), Size: 0.3},
		{Name: "vim", Version: "9.1.0-1", Description: "Vi Improved", Repository: catalog.RepoExtra, InstallDate: baseTime.Add(-24 * time.Hour), Size: 4.1, Explicit: true, Tags: []string{"cli", "editor"}},
		{Name: "neovim", Version: "0.10.0-1", Description: "Fork of Vim", Repository: catalog.RepoExtra, InstallDate: baseTime.Add(-12 * time.Hour), Size: 28.7, Explicit: true, Tags: []string{"editor"}},
		{Name: "lib32-glibc", Version: "2.40-1", Description: "GNU C Library (32-bit)", Repository: catalog.RepoMultilib, InstallDate: baseTime.Add(-70 * time.Hour), Size: 20},
		{Name: "yay", Version: "12.3.5-1", Description: "AUR helper", Repository: catalog.RepoAUR, InstallDate: baseTime.Add(-6 * time.Hour), Size: 8.5, Explicit: true, Tags: []string{"aur"}, Popularity: pop(12.5), Votes: votes(2100)},
		{Name: "python-six", Version: "1.16.0-1", Description: "Python 2 and 3 compatibility", Repository: catalog.RepoExtra, InstallDate: baseTime.Add(-200 * time.Hour), Size: 0.1},
	}
}

// Available returns the sync-database view of the catalog.
func Available() []catalog.Package {
	return []catalog.Package{
		{Name: "glibc", Version: "2.40-1", Repository: catalog.RepoCore},
		{Name: "acl", Version: "2.3.2-1", Repository: catalog.RepoCore},
		{Name: "vim", Version: "9.1.0-1", Repository: catalog.RepoExtra},
		{Name: "emacs", Version: "29.4-1", Repository: catalog.RepoExtra},
		{Name: "steam", Version: "1.0.0.81-1", Repository: catalog.RepoMultilib},
	}
}

// Orphans names the installed packages nothing depends on.
func Orphans() []string {
	return []string{"python-six"}
}

// Bundle assembles the fixtures as a completed load.
func Bundle() catalog.Bundle {
	return catalog.Bundle{
		Installed: Installed(),
		Available: Available(),
		Orphans:   Orphans(),
		Tags:      []string{"aur", "cli", "editor", "unused"},
		Repos:     []string{"AUR", "Core", "Extra", "Multilib"},
	}
}

// StaticLoader returns a loader that always yields b.
func StaticLoader(b catalog.Bundle) catalog.Loader {
	return catalog.LoaderFunc(func(context.Context) catalog.Bundle {
		return b
	})
}

// TagStore opens a JSON tag store in a temporary directory seeded with the
// fixture tags.
func TagStore(t *testing.T) tags.Store {
	t.Helper()
	store, err := tags.Open(tags.KindJSON, filepath.Join(t.TempDir(), "tags.json"))
	if err != nil {
		t.Fatalf("open tag store: %v", err)
	}
	for _, p := range Installed() {
		for _, tag := range p.Tags {
			if _, err := store.Add(p.Name, tag); err != nil {
				t.Fatalf("seed tag store: %v", err)
			}
		}
	}
	return store
}

// FailingTagStore rejects every call.
type FailingTagStore struct{}

func (FailingTagStore) Load() (map[string][]string, error) { return nil, ErrStoreDown }
func (FailingTagStore) All() ([]string, error)             { return nil, ErrStoreDown }
func (FailingTagStore) Add(string, string) (string, error) { return "", ErrStoreDown }
func (FailingTagStore) Remove(string, string) (string, error) {
	return "", ErrStoreDown
}
