package app

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"golang.org/x/term"
)

// Foreground runs argv attached to the process's own terminal.
func Foreground(argv []string) (int, error) {
	return runAttached(argv, os.Stdin, os.Stdout, os.Stderr)
}

// runAttached waits for argv to finish. A non-zero exit is reported through
// the code, not the error.
func runAttached(argv []string, stdin io.Reader, stdout, stderr io.Writer) (int, error) {
	if len(argv) == 0 {
		return -1, errors.New("empty command")
	}
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	err := cmd.Run()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	if err != nil {
		return -1, fmt.Errorf("start %s: %w", argv[0], err)
	}
	return 0, nil
}

// waitForKey blocks until a single key on a terminal, or a line otherwise.
func waitForKey(in *os.File) {
	fd := int(in.Fd())
	if term.IsTerminal(fd) {
		if old, err := term.MakeRaw(fd); err == nil {
			defer term.Restore(fd, old)
			var buf [1]byte
			_, _ = in.Read(buf[:])
			return
		}
	}
	_, _ = bufio.NewReader(in).ReadString('\n')
}
