package pyext

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Linker flags that permit unresolved symbols in a shared library, leaving
// resolution to load time. Clang- and GNU-style drivers spell it differently.
const (
	LinkFlagClang = "-Wl,-undefined,dynamic_lookup"
	LinkFlagGNU   = "-Wl,--unresolved-symbols=ignore-all"
)

var linkFlagCandidates = [...]string{LinkFlagClang, LinkFlagGNU}

// Two symbols, one unresolved: links only when the linker tolerates it.
const probeProgram = "int f(int); int main(void) { return f(0); }\n"

// LinkFlags determines the CGO_LDFLAGS value for a c-shared build.
//
// On Windows (where gcc cannot link a shared library with unresolved
// symbols) it synthesizes -L/-l flags pointing at the host interpreter's
// import library and performs no probing. Everywhere else it resolves the
// C compiler via `go env CC` and trial-compiles a minimal program against
// each candidate flag in priority order, returning the first that links.
//
// LinkFlags never fails: if no candidate links, the GNU-style flag is
// returned anyway after a diagnostic on the config log, so the real build
// surfaces the compiler's own error message instead of an opaque probe
// failure.
func LinkFlags(ctx context.Context, config *BuildConfig) string {
	if config != nil && config.Interpreter != nil && config.platform() == "windows" {
		return interpreterLinkFlags(config.Interpreter)
	}

	cc := resolveCC(ctx)
	flag := LinkFlagGNU

	err := withTempDir(func(dir string) error {
		testFile := filepath.Join(dir, "test.c")
		if err := os.WriteFile(testFile, []byte(probeProgram), 0o644); err != nil {
			return err
		}
		for _, candidate := range linkFlagCandidates {
			cmd := exec.CommandContext(ctx, cc, testFile, candidate)
			cmd.Dir = dir
			if cmd.Run() == nil {
				flag = candidate
				return nil
			}
		}
		fmt.Fprintf(config.log(), "pyext: %s accepted no unresolved-symbol flag, falling back to %s\n", cc, LinkFlagGNU)
		return nil
	})
	if err != nil {
		fmt.Fprintf(config.log(), "pyext: link flag probe skipped (%v), falling back to %s\n", err, LinkFlagGNU)
	}
	return flag
}

// resolveCC asks the Go toolchain which C compiler it would hand CGO.
func resolveCC(ctx context.Context) string {
	out, err := exec.CommandContext(ctx, "go", "env", "CC").Output()
	if err != nil {
		return "cc"
	}
	cc := strings.TrimSpace(string(out))
	if cc == "" {
		return "cc"
	}
	return cc
}

func interpreterLinkFlags(interp *Interpreter) string {
	libs := filepath.Join(interp.Prefix, "libs")
	return fmt.Sprintf("-L%s -lpython%d%d", libs, interp.VersionMajor, interp.VersionMinor)
}
