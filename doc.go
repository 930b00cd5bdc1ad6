// Package pyext builds Python extension modules from Go source.
//
// This package is the Go equivalent of setuptools-golang: it plugs into a
// Python packaging pipeline and compiles a single-file Go main package into
// a dynamically loadable shared library with `go build -buildmode=c-shared`,
// leaving manifest handling, archives and installation to the host pipeline.
//
// # Basic Usage
//
// Install the router into the host's build-step registry and let it route
// each extension target:
//
//	registry := pyext.NewRegistry()
//
//	config := &pyext.BuildConfig{
//	    Root: "github.com/asottile/dockerfile",
//	}
//	pyext.Install(registry, config)
//
//	ext := &pyext.Extension{
//	    Name:     "dockerfile",
//	    Sources:  []string{"pylib/main.go"},
//	    Artifact: "/path/to/build/lib/dockerfile.so",
//	}
//	err := registry.Step(pyext.BuildExtStep).BuildExtension(ctx, toolchain, ext)
//
// # Architecture
//
// The package composes a small decorator chain around the host's native
// build step:
//
//	Registry["build_ext"]
//	└── Router
//	    ├── (no .go sources) previously registered step, unchanged
//	    └── (.go source)     GoBuildStep
//	        ├── Workspace  - ephemeral GOPATH copy of the project
//	        ├── CFlags     - include dirs + macros for CGO_CFLAGS
//	        └── LinkFlags  - probed linker flag for CGO_LDFLAGS
//
// GoBuildStep copies the project into a throwaway GOPATH, runs `go get -d`
// there, then `go build -buildmode=c-shared -o <artifact>`. Both commands
// are echoed to the configured log writer as shell lines before running.
//
// # Link Flag Probing
//
// Python extension modules reference interpreter symbols that are only
// resolvable once the module is loaded into a running interpreter, so the
// shared library must be linked with unresolved symbols permitted. The
// correct flag differs between clang- and GNU-style linker drivers;
// LinkFlags performs trial compiles to pick one, the way autotools does
// feature detection. On Windows, where deferred resolution is unavailable,
// the interpreter's import library is linked directly instead.
//
// # Requirements
//
// Requires Go 1.25 or later, a Go toolchain on PATH and a working C
// compiler for CGO.
//
// # Platform Support
//
// Full support on Linux and macOS. Windows builds link against the
// interpreter import library and need BuildConfig.Interpreter set.
package pyext
