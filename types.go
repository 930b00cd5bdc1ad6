package pyext

import (
	"io"
	"os"
	"runtime"
)

// Macro is a single preprocessor definition passed through to CGO.
//
// A nil Value renders as a bare define (-DNAME); a non-nil Value renders
// as -DNAME=VALUE. Macros are carried in slices, not maps, so declaration
// order survives all the way into the synthesized flag string.
type Macro struct {
	Name  string
	Value *string
}

// Define creates a macro with no value (-DNAME).
func Define(name string) Macro {
	return Macro{Name: name}
}

// DefineValue creates a macro with a value (-DNAME=VALUE).
func DefineValue(name, value string) Macro {
	return Macro{Name: name, Value: &value}
}

// Extension describes one buildable extension target, as supplied by the
// host packaging framework.
//
// For a Go-sourced extension, Sources must contain exactly one file: the
// entry point of a self-contained main package. Its containing directory
// is the unit that gets built.
type Extension struct {
	Name     string   // Logical module name, used in error messages
	Sources  []string // Source files, relative to the project root
	Macros   []Macro  // Preprocessor definitions for this target
	Artifact string   // Path where the shared library must be written
}

// Toolchain mirrors the host's native compiler configuration. It is owned
// by the host framework and read-only from this package's perspective.
type Toolchain struct {
	IncludeDirs []string // Header search paths (-I)
	Macros      []Macro  // Ambient preprocessor definitions
}

// Clone returns a deep copy of the toolchain configuration.
//
// The router hands clones to delegated native build steps so that any
// mutation they perform never leaks back into the host's shared compiler
// state.
func (t *Toolchain) Clone() *Toolchain {
	if t == nil {
		return nil
	}
	clone := &Toolchain{
		IncludeDirs: append([]string(nil), t.IncludeDirs...),
		Macros:      make([]Macro, len(t.Macros)),
	}
	for i, m := range t.Macros {
		clone.Macros[i] = m
		if m.Value != nil {
			v := *m.Value
			clone.Macros[i].Value = &v
		}
	}
	return clone
}

// Interpreter identifies the host Python installation. Only consulted on
// Windows, where extensions must link the interpreter's import library
// instead of deferring symbol resolution to load time.
type Interpreter struct {
	Prefix       string // Installation prefix containing the libs directory
	VersionMajor int
	VersionMinor int
}

// BuildConfig carries the per-project settings for Go extension builds.
//
// Root is the project's import path root: the project tree is copied to
// src/<Root> inside the build workspace so Go module resolution finds it
// at its canonical location. It is the value of the declarative
// {"root": ...} setup option on the Python side.
type BuildConfig struct {
	// Root is the Go import path of the project (e.g. "github.com/user/proj").
	Root string

	// ProjectDir is the project root to copy into the workspace.
	// Defaults to the current directory.
	ProjectDir string

	// Env holds extra environment overrides applied to every build
	// subprocess, on top of the ambient process environment.
	Env map[string]string

	// Interpreter describes the host Python. Required on Windows.
	Interpreter *Interpreter

	// Log receives echoed command lines and subprocess output.
	// Defaults to os.Stderr.
	Log io.Writer

	// goos overrides runtime.GOOS in tests.
	goos string
}

func (c *BuildConfig) projectDir() string {
	if c != nil && c.ProjectDir != "" {
		return c.ProjectDir
	}
	return "."
}

func (c *BuildConfig) log() io.Writer {
	if c != nil && c.Log != nil {
		return c.Log
	}
	return os.Stderr
}

func (c *BuildConfig) platform() string {
	if c != nil && c.goos != "" {
		return c.goos
	}
	return runtime.GOOS
}
