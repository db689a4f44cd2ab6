package app

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/atomicstack/pkgsorter/internal/actions"
	"github.com/atomicstack/pkgsorter/internal/catalog"
	"github.com/atomicstack/pkgsorter/internal/testutil"
	"github.com/atomicstack/pkgsorter/internal/ui"
	uistate "github.com/atomicstack/pkgsorter/internal/ui/state"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
)

type countingLoader struct {
	calls atomic.Int32
}

func (c *countingLoader) Load(context.Context) catalog.Bundle {
	c.calls.Add(1)
	return testutil.Bundle()
}

// scripted returns a Program that plays one script per cycle against a
// harness after the load has been applied.
func scripted(t *testing.T, scripts ...func(h *ui.Harness)) Program {
	t.Helper()
	cycle := 0
	return func(_ context.Context, m *ui.Model) error {
		if cycle >= len(scripts) {
			t.Fatalf("unexpected cycle %d", cycle+1)
		}
		h := ui.NewHarness(m)
		h.Send(m.Init()())
		if h.Model().Loading() {
			t.Fatalf("cycle %d: load not applied", cycle+1)
		}
		scripts[cycle](h)
		cycle++
		return nil
	}
}

func newTestLoop(t *testing.T, program Program, exec Executor) (*loop, *countingLoader, *bytes.Buffer) {
	t.Helper()
	loader := &countingLoader{}
	out := &bytes.Buffer{}
	return &loop{
		session: ui.NewSession(),
		actions: actions.WithLocal(actions.Defaults()),
		tags:    testutil.TagStore(t),
		loader:  loader,
		program: program,
		exec:    exec,
		out:     out,
	}, loader, out
}

func warnings(s *ui.Session) []string {
	var out []string
	for _, msg := range s.Log.Messages() {
		if msg.Severity == uistate.Warning {
			out = append(out, msg.Text)
		}
	}
	return out
}

func TestLoopRunsCommandAndReloads(t *testing.T) {
	var ran [][]string
	var l *loop
	program := scripted(t,
		func(h *ui.Harness) {
			h.Type("u")
			require.True(t, h.Quit())
		},
		func(h *ui.Harness) {
			require.Contains(t, warnings(l.session), "'sudo pacman -Rns acl' exited with status 3")
			h.Type("q")
			require.True(t, h.Quit())
		},
	)
	exec := func(argv []string) (int, error) {
		ran = append(ran, argv)
		return 3, nil
	}
	l, loader, out := newTestLoop(t, program, exec)
	acks := 0
	l.ack = func() { acks++ }

	require.NoError(t, l.run(context.Background()))
	require.Equal(t, [][]string{{"sudo", "pacman", "-Rns", "acl"}}, ran)
	require.EqualValues(t, 2, loader.calls.Load())
	require.Equal(t, 1, acks)
	require.Contains(t, out.String(), ":: sudo pacman -Rns acl")
	require.Contains(t, out.String(), "exited with status 3")
}

func TestLoopQuitWithoutCommand(t *testing.T) {
	program := scripted(t, func(h *ui.Harness) { h.Type("q") })
	l, loader, out := newTestLoop(t, program, func([]string) (int, error) {
		t.Fatalf("no command expected")
		return 0, nil
	})
	require.NoError(t, l.run(context.Background()))
	require.EqualValues(t, 1, loader.calls.Load())
	require.Empty(t, out.String())
}

func TestLoopReportsStartFailure(t *testing.T) {
	program := scripted(t,
		func(h *ui.Harness) { h.Type("o") },
		func(h *ui.Harness) { h.Type("q") },
	)
	l, _, _ := newTestLoop(t, program, func([]string) (int, error) {
		return -1, errors.New("no such file")
	})
	require.NoError(t, l.run(context.Background()))
	got := warnings(l.session)
	require.Len(t, got, 1)
	require.True(t, strings.HasPrefix(got[0], "Failed to run '"), got[0])
}

func TestLoopSuccessfulCommandLogsInfo(t *testing.T) {
	program := scripted(t,
		func(h *ui.Harness) { h.Type("u") },
		func(h *ui.Harness) { h.Type("q") },
	)
	l, _, out := newTestLoop(t, program, func([]string) (int, error) { return 0, nil })
	require.NoError(t, l.run(context.Background()))
	require.Empty(t, warnings(l.session))
	var infos []string
	for _, msg := range l.session.Log.Messages() {
		if msg.Severity == uistate.Info {
			infos = append(infos, msg.Text)
		}
	}
	require.Contains(t, infos, "'sudo pacman -Rns acl' finished")
	require.Contains(t, out.String(), ":: finished")
}

func TestLoopProgramErrors(t *testing.T) {
	l, _, _ := newTestLoop(t, func(context.Context, *ui.Model) error {
		return errors.New("no tty")
	}, nil)
	err := l.run(context.Background())
	require.ErrorContains(t, err, "run dashboard: no tty")

	l.program = func(context.Context, *ui.Model) error { return tea.ErrProgramKilled }
	require.NoError(t, l.run(context.Background()))
}

func TestOpenTagStoreFallsBackToJSON(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	session := ui.NewSession()
	store := openTagStore(Config{TagStore: "redis"}, session)
	require.NotNil(t, store)
	got := warnings(session)
	require.Len(t, got, 1)
	require.Contains(t, got[0], "Falling back to JSON")
}
