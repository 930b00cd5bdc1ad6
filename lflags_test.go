package pyext

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeScript creates an executable shell script for use as a fake tool.
func writeScript(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755))
	return path
}

// installFakeGoEnvCC shadows the go binary with a stub whose `go env CC`
// prints the given compiler path.
func installFakeGoEnvCC(t *testing.T, cc string) {
	t.Helper()
	dir := t.TempDir()
	writeScript(t, dir, "go", `if [ "$1" = "env" ] && [ "$2" = "CC" ]; then
    echo "$PYEXT_TEST_CC"
fi
exit 0
`)
	t.Setenv("PYEXT_TEST_CC", cc)
	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))
}

func TestLinkFlags(t *testing.T) {
	testCases := []struct {
		name     string
		cc       string
		expected string
	}{
		{
			name:     "compiler accepts the clang-style flag",
			cc:       "exit 0\n",
			expected: LinkFlagClang,
		},
		{
			name: "compiler rejects clang-style, accepts GNU-style",
			cc: `for arg in "$@"; do
    case "$arg" in
        *dynamic_lookup*) exit 1 ;;
    esac
done
exit 0
`,
			expected: LinkFlagGNU,
		},
		{
			name:     "compiler rejects every candidate",
			cc:       "exit 1\n",
			expected: LinkFlagGNU,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cc := writeScript(t, t.TempDir(), "cc", tc.cc)
			installFakeGoEnvCC(t, cc)

			var log bytes.Buffer
			flag := LinkFlags(context.Background(), &BuildConfig{Log: &log})
			assert.Equal(t, tc.expected, flag)
		})
	}
}

func TestLinkFlagsLogsFallback(t *testing.T) {
	cc := writeScript(t, t.TempDir(), "cc", "exit 1\n")
	installFakeGoEnvCC(t, cc)

	var log bytes.Buffer
	flag := LinkFlags(context.Background(), &BuildConfig{Log: &log})
	assert.Equal(t, LinkFlagGNU, flag)
	assert.Contains(t, log.String(), "falling back to "+LinkFlagGNU)
}

func TestLinkFlagsWindowsLinksImportLibrary(t *testing.T) {
	config := &BuildConfig{
		Interpreter: &Interpreter{
			Prefix:       filepath.FromSlash("/opt/python"),
			VersionMajor: 3,
			VersionMinor: 8,
		},
		goos: "windows",
	}
	flag := LinkFlags(context.Background(), config)
	assert.Equal(t, "-L"+filepath.Join("/opt/python", "libs")+" -lpython38", flag)
}

func TestResolveCCFallsBackWithoutGo(t *testing.T) {
	// An empty PATH makes `go env CC` unrunnable.
	t.Setenv("PATH", t.TempDir())
	assert.Equal(t, "cc", resolveCC(context.Background()))
}
