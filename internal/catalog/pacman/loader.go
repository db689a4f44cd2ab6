// Package pacman loads the package catalog from the local pacman database,
// merging user tags and AUR popularity data.
package pacman

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/atomicstack/pkgsorter/internal/catalog"
	"github.com/atomicstack/pkgsorter/internal/catalog/aur"
	"github.com/atomicstack/pkgsorter/internal/logging/events"
	"github.com/atomicstack/pkgsorter/internal/pipeline"
	"golang.org/x/sync/errgroup"
)

// ExitError reports a pacman invocation that exited non-zero.
type ExitError struct {
	Args   []string
	Code   int
	Stderr string
}

func (e *ExitError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("%s: exit status %d: %s", describe(e.Args), e.Code, e.Stderr)
	}
	return fmt.Sprintf("%s: exit status %d", describe(e.Args), e.Code)
}

// Runner executes pacman with the given arguments and returns its stdout.
// A non-zero exit is reported as *ExitError alongside whatever was printed.
type Runner func(ctx context.Context, args ...string) ([]byte, error)

// ExecRunner runs the real pacman binary with a C locale.
func ExecRunner(ctx context.Context, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "pacman", args...)
	cmd.Env = append(os.Environ(), "LC_ALL=C")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return out, &ExitError{Args: args, Code: exitErr.ExitCode(), Stderr: string(bytes.TrimSpace(stderr.Bytes()))}
		}
		return out, fmt.Errorf("%s: %w", describe(args), err)
	}
	return out, nil
}

// TagSource supplies persisted tags at load time.
type TagSource interface {
	Load() (map[string][]string, error)
	All() ([]string, error)
}

// Popularity looks up AUR metadata for package names.
type Popularity interface {
	Info(ctx context.Context, names []string) (map[string]aur.Info, error)
}

// Loader implements catalog.Loader on top of pacman.
type Loader struct {
	run  Runner
	tags TagSource
	aur  Popularity
	now  func() time.Time
}

// Option customises a Loader.
type Option func(*Loader)

// WithRunner replaces the pacman runner.
func WithRunner(r Runner) Option {
	return func(l *Loader) { l.run = r }
}

// WithTags merges tags from src into loaded packages.
func WithTags(src TagSource) Option {
	return func(l *Loader) { l.tags = src }
}

// WithPopularity enables AUR popularity lookups. A nil source disables them.
func WithPopularity(src Popularity) Option {
	return func(l *Loader) { l.aur = src }
}

// WithClock overrides the time used when a date cannot be parsed.
func WithClock(now func() time.Time) Option {
	return func(l *Loader) { l.now = now }
}

// New constructs a Loader that shells out to pacman.
func New(opts ...Option) *Loader {
	l := &Loader{run: ExecRunner, now: time.Now}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load queries pacman concurrently and assembles a bundle. Individual
// failures are collected in Bundle.Errs; the remaining fields stay usable.
func (l *Loader) Load(ctx context.Context) catalog.Bundle {
	var (
		info, syncList, orphans []byte
		infoErr, syncErr        error
		orphanErr, tagErr       error
		allTagsErr              error
		tagMap                  map[string][]string
		allTags                 []string
	)

	var g errgroup.Group
	g.Go(func() error {
		info, infoErr = l.run(ctx, "-Qi")
		return nil
	})
	g.Go(func() error {
		syncList, syncErr = l.run(ctx, "-Sl")
		return nil
	})
	g.Go(func() error {
		orphans, orphanErr = l.run(ctx, "-Qdt")
		var exitErr *ExitError
		if errors.As(orphanErr, &exitErr) && exitErr.Code == 1 && len(bytes.TrimSpace(orphans)) == 0 {
			orphanErr = nil
		}
		return nil
	})
	if l.tags != nil {
		g.Go(func() error {
			tagMap, tagErr = l.tags.Load()
			allTags, allTagsErr = l.tags.All()
			return nil
		})
	}
	_ = g.Wait()

	var bundle catalog.Bundle
	fail := func(what string, err error) {
		wrapped := fmt.Errorf("%s: %w", what, err)
		bundle.Errs = append(bundle.Errs, wrapped)
		events.Load.Error(wrapped)
	}

	var repoMap map[string]string
	if syncErr != nil {
		fail("list available packages", syncErr)
	} else {
		bundle.Available, repoMap, _ = ParseSyncList(string(syncList))
	}
	if infoErr != nil {
		fail("list installed packages", infoErr)
	} else {
		bundle.Installed = ParseInfo(string(info), repoMap, l.now())
	}
	if orphanErr != nil {
		fail("list orphan packages", orphanErr)
	} else {
		bundle.Orphans = ParseOrphans(string(orphans))
	}

	switch {
	case tagErr != nil:
		fail("load tags", tagErr)
	case tagMap != nil:
		for i := range bundle.Installed {
			if tags, ok := tagMap[bundle.Installed[i].Name]; ok {
				bundle.Installed[i].SetTags(tags)
			}
		}
	}
	if allTagsErr != nil {
		fail("list tags", allTagsErr)
	} else {
		bundle.Tags = allTags
	}

	if l.aur != nil {
		if err := l.mergePopularity(ctx, bundle.Installed); err != nil {
			fail("fetch AUR metadata", err)
		}
	}

	bundle.Repos = pipeline.DistinctRepos(append(append([]catalog.Package(nil), bundle.Installed...), bundle.Available...))
	events.Load.Done(len(bundle.Installed), len(bundle.Available), len(bundle.Orphans), len(bundle.Errs))
	return bundle
}

func (l *Loader) mergePopularity(ctx context.Context, pkgs []catalog.Package) error {
	var names []string
	for _, p := range pkgs {
		if p.Repository == catalog.RepoAUR {
			names = append(names, p.Name)
		}
	}
	if len(names) == 0 {
		return nil
	}
	info, err := l.aur.Info(ctx, names)
	for i := range pkgs {
		if pkgs[i].Repository != catalog.RepoAUR {
			continue
		}
		if meta, ok := info[pkgs[i].Name]; ok {
			pop, votes := meta.Popularity, meta.NumVotes
			pkgs[i].Popularity = &pop
			pkgs[i].Votes = &votes
		}
	}
	return err
}
