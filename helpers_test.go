package pyext

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasGoSource(t *testing.T) {
	testCases := []struct {
		name     string
		sources  []string
		expected bool
	}{
		{"single go file", []string{"pylib/main.go"}, true},
		{"mixed sources", []string{"ext.c", "mod/main.go"}, true},
		{"native only", []string{"ext.c", "shim.py"}, false},
		{"no sources", nil, false},
		{"go elsewhere in name", []string{"golang.c"}, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, HasGoSource(tc.sources))
		})
	}
}

func TestMatchesExtension(t *testing.T) {
	testCases := []struct {
		filename   string
		extensions []string
		expected   bool
	}{
		{"file.go", []string{".go"}, true},
		{"file.GO", []string{".go"}, true},
		{"file.c", []string{".go", ".c"}, true},
		{"file.py", []string{".go"}, false},
		{"noext", []string{".go"}, false},
	}

	for _, tc := range testCases {
		t.Run(tc.filename, func(t *testing.T) {
			assert.Equal(t, tc.expected, MatchesExtension(tc.filename, tc.extensions...))
		})
	}
}

func TestRunLoggedEchoesShellLine(t *testing.T) {
	var log bytes.Buffer
	env := map[string]string{
		"B_FLAG": "x y",
		"A_FLAG": "1",
	}
	require.NoError(t, runLogged(context.Background(), &log, t.TempDir(), env, "true"))

	lines := strings.SplitN(log.String(), "\n", 2)
	// Env overrides come first, sorted, with values shell-escaped.
	assert.Equal(t, "$ A_FLAG=1 B_FLAG='x y' true", lines[0])
}

func TestRunLoggedStreamsOutput(t *testing.T) {
	var log bytes.Buffer
	require.NoError(t, runLogged(context.Background(), &log, t.TempDir(), nil, "sh", "-c", "echo hello"))
	assert.Contains(t, log.String(), "hello")
}

func TestRunLoggedPreservesExitStatus(t *testing.T) {
	var log bytes.Buffer
	err := runLogged(context.Background(), &log, t.TempDir(), nil, "sh", "-c", "exit 3")
	require.Error(t, err)

	var exitErr *exec.ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, 3, exitErr.ExitCode())
}
