package pyext

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sort"
	"strings"

	"github.com/kballard/go-shellquote"
)

// HasGoSource reports whether any source file in the list is a Go file.
// This is the routing predicate: targets without a Go source belong to the
// host's native build path.
func HasGoSource(sources []string) bool {
	for _, source := range sources {
		if MatchesExtension(source, ".go") {
			return true
		}
	}
	return false
}

// MatchesExtension checks, case-insensitively, whether a filename has any
// of the given extensions. Extensions may be given with or without the
// leading dot.
func MatchesExtension(filename string, extensions ...string) bool {
	for _, ext := range extensions {
		if strings.HasSuffix(strings.ToLower(filename), strings.ToLower(ext)) {
			return true
		}
	}
	return false
}

// runLogged echoes cmd to log as a reproducible shell line (sorted env
// overrides first, everything shell-quoted) and then executes it.
//
// The child inherits the ambient process environment with env applied on
// top; the ambient environment itself is never mutated. Child output goes
// to log, and a non-zero exit propagates as the returned error with the
// exit status intact.
func runLogged(ctx context.Context, log io.Writer, dir string, env map[string]string, cmd ...string) error {
	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys)+1)
	for _, k := range keys {
		parts = append(parts, k+"="+shellquote.Join(env[k]))
	}
	parts = append(parts, shellquote.Join(cmd...))
	fmt.Fprintf(log, "$ %s\n", strings.Join(parts, " "))

	child := exec.CommandContext(ctx, cmd[0], cmd[1:]...)
	child.Dir = dir
	child.Stdout = log
	child.Stderr = log
	child.Env = os.Environ()
	for _, k := range keys {
		child.Env = append(child.Env, k+"="+env[k])
	}
	return child.Run()
}
