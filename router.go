package pyext

import (
	"context"
	"fmt"
)

// BuildExtStep is the registry key for the per-extension build step,
// matching the host framework's command name for it.
const BuildExtStep = "build_ext"

// Registry is a named table of build steps, modelling the host framework's
// command registry. Adapters replace entries by wrapping whatever is
// currently registered, never by discarding it.
//
// Registry is not safe for concurrent mutation. Register all steps before
// building.
type Registry struct {
	steps map[string]BuildStep
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{steps: make(map[string]BuildStep)}
}

// Step returns the registered step for name, or nil if none is registered.
func (r *Registry) Step(name string) BuildStep {
	return r.steps[name]
}

// SetStep registers step under name, replacing any previous entry.
func (r *Registry) SetStep(name string, step BuildStep) {
	if r.steps == nil {
		r.steps = make(map[string]BuildStep)
	}
	r.steps[name] = step
}

// Router dispatches one extension target to either the Go build driver or
// the previously registered native build step.
//
// Targets without a .go source are forwarded to Next with a cloned
// toolchain, so mutations the native step performs on its compiler
// configuration cannot corrupt shared state across targets. Targets with a
// .go source go to Go and Next is never invoked for them.
type Router struct {
	Next BuildStep // Step that was registered before this router
	Go   BuildStep // Driver for Go-sourced targets
}

// BuildExtension implements BuildStep.
func (r *Router) BuildExtension(ctx context.Context, toolchain *Toolchain, ext *Extension) error {
	if !HasGoSource(ext.Sources) {
		if r.Next == nil {
			return fmt.Errorf("building extension %q: no native build step registered", ext.Name)
		}
		return r.Next.BuildExtension(ctx, toolchain.Clone(), ext)
	}
	return r.Go.BuildExtension(ctx, toolchain, ext)
}

// Install wraps the registry's current build_ext step with a Router backed
// by a GoBuildStep for config. Installing over an earlier adapter chains
// it rather than replacing it.
func Install(registry *Registry, config *BuildConfig) {
	base := registry.Step(BuildExtStep)
	registry.SetStep(BuildExtStep, &Router{
		Next: base,
		Go:   &GoBuildStep{Config: config},
	})
}
