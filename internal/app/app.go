// Package app runs the suspend-resume loop around the dashboard.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atomicstack/pkgsorter/internal/actions"
	"github.com/atomicstack/pkgsorter/internal/backend"
	"github.com/atomicstack/pkgsorter/internal/catalog"
	"github.com/atomicstack/pkgsorter/internal/catalog/aur"
	"github.com/atomicstack/pkgsorter/internal/catalog/pacman"
	"github.com/atomicstack/pkgsorter/internal/logging"
	"github.com/atomicstack/pkgsorter/internal/logging/events"
	"github.com/atomicstack/pkgsorter/internal/tags"
	"github.com/atomicstack/pkgsorter/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
)

// Config describes user-provided application options.
type Config struct {
	ConfigPath string
	TagStore   string
	TagsPath   string
	NoAUR      bool
	ShowFooter bool
}

// Program runs one interactive cycle until the model quits.
type Program func(ctx context.Context, m *ui.Model) error

// Executor runs argv in the foreground and returns its exit code. A non-nil
// error means the command could not be started.
type Executor func(argv []string) (int, error)

// loop restarts the dashboard after every external command. The session
// survives across cycles; the catalog is reloaded each time.
type loop struct {
	session    *ui.Session
	actions    []actions.Action
	tags       tags.Store
	loader     catalog.Loader
	showFooter bool

	program Program
	exec    Executor
	ack     func()
	out     io.Writer
}

// Run bootstraps collaborators and executes cycles until the user quits.
func Run(ctx context.Context, cfg Config) error {
	session := ui.NewSession()
	store := openTagStore(cfg, session)
	if c, ok := store.(io.Closer); ok {
		defer c.Close()
	}
	configured, warnings := actions.LoadFile(cfg.ConfigPath)
	for _, w := range warnings {
		logging.Warn("actions: %s", w)
		session.Log.Warn(w)
	}

	l := &loop{
		session:    session,
		actions:    actions.WithLocal(configured),
		tags:       store,
		loader:     newLoader(cfg, store),
		showFooter: cfg.ShowFooter,
		program:    runProgram,
		exec:       Foreground,
		ack:        func() { waitForKey(os.Stdin) },
		out:        os.Stdout,
	}
	return l.run(ctx)
}

func openTagStore(cfg Config, session *ui.Session) tags.Store {
	store, err := tags.Open(cfg.TagStore, cfg.TagsPath)
	if err == nil {
		return store
	}
	logging.Error(err)
	if cfg.TagStore == tags.KindJSON || cfg.TagStore == "" {
		session.Log.Error(fmt.Sprintf("Tag store unavailable: %v", err))
		return nil
	}
	logging.Warn("tag store %s unavailable, falling back to json", cfg.TagStore)
	session.Log.Warn(fmt.Sprintf("Failed to open %s tag store: %v. Falling back to JSON.", cfg.TagStore, err))
	store, err = tags.Open(tags.KindJSON, "")
	if err != nil {
		logging.Error(err)
		session.Log.Error(fmt.Sprintf("Tag store unavailable: %v", err))
		return nil
	}
	return store
}

func newLoader(cfg Config, store tags.Store) catalog.Loader {
	var opts []pacman.Option
	if store != nil {
		opts = append(opts, pacman.WithTags(store))
	}
	if !cfg.NoAUR {
		opts = append(opts, pacman.WithPopularity(aur.NewClient()))
	}
	return pacman.New(opts...)
}

func runProgram(ctx context.Context, m *ui.Model) error {
	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

func (l *loop) run(ctx context.Context) error {
	for cycle := 1; ; cycle++ {
		events.App.Cycle(cycle)
		model := ui.NewModel(ui.Options{
			ShowFooter: l.showFooter,
			Session:    l.session,
			Actions:    l.actions,
			Tags:       l.tags,
			Load:       backend.StartLoad(ctx, l.loader),
		})
		if err := l.program(ctx, model); err != nil {
			if errors.Is(err, tea.ErrProgramKilled) {
				events.App.Quit()
				return nil
			}
			return fmt.Errorf("run dashboard: %w", err)
		}
		argv, ok := model.PendingCommand()
		if !ok {
			events.App.Quit()
			return nil
		}
		l.runCommand(argv)
	}
}

// runCommand hands the terminal to argv and records the outcome in the
// session log for the next cycle.
func (l *loop) runCommand(argv []string) {
	line := strings.Join(argv, " ")
	events.App.Suspend(argv)
	fmt.Fprintf(l.out, ":: %s\n", line)
	code, err := l.exec(argv)
	events.App.CommandExit(argv, code, err)
	switch {
	case err != nil:
		logging.Error(err)
		l.session.Log.Warn(fmt.Sprintf("Failed to run '%s': %v", line, err))
		fmt.Fprintf(l.out, "\n:: failed to run: %v\n", err)
	case code != 0:
		logging.Warn("command %q exited with status %d", line, code)
		l.session.Log.Warn(fmt.Sprintf("'%s' exited with status %d", line, code))
		fmt.Fprintf(l.out, "\n:: exited with status %d\n", code)
	default:
		l.session.Log.Info(fmt.Sprintf("'%s' finished", line))
		fmt.Fprintf(l.out, "\n:: finished\n")
	}
	fmt.Fprint(l.out, ":: press any key to return to pkgsorter")
	if l.ack != nil {
		l.ack()
	}
	fmt.Fprintln(l.out)
}
