package app

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunAttachedReportsExitCode(t *testing.T) {
	var stdout bytes.Buffer
	code, err := runAttached([]string{"sh", "-c", "echo hello; exit 3"}, strings.NewReader(""), &stdout, &bytes.Buffer{})
	require.NoError(t, err)
	require.Equal(t, 3, code)
	require.Equal(t, "hello\n", stdout.String())
}

func TestRunAttachedSuccess(t *testing.T) {
	code, err := runAttached([]string{"sh", "-c", "true"}, nil, &bytes.Buffer{}, &bytes.Buffer{})
	require.NoError(t, err)
	require.Equal(t, 0, code)
}

func TestRunAttachedStartFailure(t *testing.T) {
	_, err := runAttached([]string{"pkgsorter-definitely-missing-binary"}, nil, &bytes.Buffer{}, &bytes.Buffer{})
	require.ErrorContains(t, err, "start pkgsorter-definitely-missing-binary")

	_, err = runAttached(nil, nil, nil, nil)
	require.Error(t, err)
}
