package pyext

import "context"

// BuildStep builds one extension target. It is the capability boundary
// between this package and the host packaging framework: the host's native
// build step, the Go driver and the router all implement it.
//
// # Composition
//
// Build steps form a decorator chain. An implementation that cannot handle
// a target forwards it to the step it wraps rather than failing, so
// adapters can be stacked without knowing what was registered before them.
// See Router and Install.
//
// # Contract
//
// A successful call leaves the finished shared library at ext.Artifact.
// On failure the error names the target and the proximate cause; there is
// no partial-success state.
//
// The toolchain pointer is owned by the host and may be shared across
// targets. Implementations that mutate it must do so on a Clone.
type BuildStep interface {
	// BuildExtension builds ext using the host's toolchain configuration.
	BuildExtension(ctx context.Context, toolchain *Toolchain, ext *Extension) error
}
