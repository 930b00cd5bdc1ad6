package pyext

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// GoBuildStep compiles a Go-sourced extension target into a dynamically
// loadable shared library.
//
// The build runs in an isolated workspace so the ambient project tree is
// never written to:
//
//  1. Validate the target (exactly one source, present, inside the project).
//  2. Copy the project into a throwaway GOPATH at src/<Config.Root>.
//  3. `go get -d` in the source file's directory inside the workspace.
//  4. `go build -buildmode=c-shared -o <artifact>` with CGO_CFLAGS from the
//     host toolchain configuration and CGO_LDFLAGS from the link flag probe.
//
// Subprocess failures are fatal and surfaced verbatim; the Go toolchain's
// diagnostics are the actionable output, so nothing is summarized away.
type GoBuildStep struct {
	Config *BuildConfig
}

// Name returns the builder name.
func (s *GoBuildStep) Name() string {
	return "Go"
}

// RequiredTools returns the tools needed for c-shared Go builds.
func (s *GoBuildStep) RequiredTools() []ToolRequirement {
	return []ToolRequirement{
		{
			Name:    "go",
			Purpose: "Go compiler and toolchain",
		},
		{
			Name:         "gcc",
			Alternatives: []string{"clang", "cc"},
			Purpose:      "C compiler (required for CGO)",
		},
	}
}

// CheckTools verifies that the Go toolchain and a C compiler are available.
func (s *GoBuildStep) CheckTools() error {
	return CheckRequiredTools(s.RequiredTools())
}

// BuildExtension implements BuildStep.
func (s *GoBuildStep) BuildExtension(ctx context.Context, toolchain *Toolchain, ext *Extension) (err error) {
	config := s.Config
	if config == nil {
		config = &BuildConfig{}
	}

	mainDir, err := validateTarget(config, ext)
	if err != nil {
		return err
	}

	artifact, err := filepath.Abs(ext.Artifact)
	if err != nil {
		return fmt.Errorf("building extension %q: resolving artifact path: %w", ext.Name, err)
	}

	ws, err := newWorkspace(config.projectDir(), config.Root)
	if err != nil {
		return fmt.Errorf("building extension %q: %w", ext.Name, err)
	}
	defer func() {
		if rmErr := ws.Close(); rmErr != nil && err == nil {
			err = fmt.Errorf("cleaning up workspace for %q: %w", ext.Name, rmErr)
		}
	}()

	pkgDir := filepath.Join(ws.Root, mainDir)

	env := make(map[string]string, len(config.Env)+3)
	for k, v := range config.Env {
		env[k] = v
	}
	env["GOPATH"] = ws.Dir

	if err := runLogged(ctx, config.log(), pkgDir, env, "go", "get", "-d"); err != nil {
		return fmt.Errorf("fetching dependencies for %q: %w", ext.Name, err)
	}

	env["CGO_CFLAGS"] = CFlags(toolchain.IncludeDirs, ext.Macros)
	env["CGO_LDFLAGS"] = LinkFlags(ctx, config)

	cmd := []string{"go", "build", "-buildmode=c-shared", "-o", artifact}
	if err := runLogged(ctx, config.log(), pkgDir, env, cmd...); err != nil {
		return fmt.Errorf("building extension %q: %w", ext.Name, err)
	}
	return nil
}

// validateTarget enforces the single-source invariant before any workspace
// or subprocess exists, and returns the source's directory relative to the
// project root.
func validateTarget(config *BuildConfig, ext *Extension) (string, error) {
	if len(ext.Sources) != 1 {
		return "", fmt.Errorf(
			"building extension %q: sources must be a single file in the main package, received %q",
			ext.Name, ext.Sources,
		)
	}

	mainFile := ext.Sources[0]
	projectDir := config.projectDir()

	srcPath := mainFile
	if !filepath.IsAbs(srcPath) {
		srcPath = filepath.Join(projectDir, mainFile)
	}
	if _, err := os.Stat(srcPath); err != nil {
		return "", fmt.Errorf("building extension %q: %s does not exist", ext.Name, mainFile)
	}

	absProject, err := filepath.Abs(projectDir)
	if err != nil {
		return "", err
	}
	absSrc, err := filepath.Abs(srcPath)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(absProject, absSrc)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf(
			"building extension %q: %s is outside the project root %s",
			ext.Name, mainFile, projectDir,
		)
	}
	return filepath.Dir(rel), nil
}
