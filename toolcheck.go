package pyext

import (
	"fmt"
	"os/exec"
	"strings"
)

// ToolChecker is an optional interface for build steps that depend on
// external tools. Implementations declare what they need so callers can
// fail fast with a readable message instead of a mid-build exec error.
//
// Check tools before building:
//
//	if checker, ok := step.(ToolChecker); ok {
//	    if err := checker.CheckTools(); err != nil {
//	        return fmt.Errorf("build tools missing: %w", err)
//	    }
//	}
type ToolChecker interface {
	// RequiredTools returns the tools this step needs.
	RequiredTools() []ToolRequirement

	// CheckTools verifies that all required tools are available,
	// returning an error naming every missing one.
	CheckTools() error
}

// ToolRequirement describes one build tool dependency. Any tool in
// Alternatives satisfies the requirement in place of Name; Optional tools
// never cause an error.
type ToolRequirement struct {
	Name         string   // Primary binary name (e.g. "go", "docker")
	Alternatives []string // Alternate binaries that also satisfy it
	Optional     bool     // Missing optional tools are not an error
	Purpose      string   // Human-readable reason the tool is needed
}

func (r ToolRequirement) satisfied() bool {
	if CheckToolAvailable(r.Name) == nil {
		return true
	}
	for _, alt := range r.Alternatives {
		if CheckToolAvailable(alt) == nil {
			return true
		}
	}
	return false
}

// CheckToolAvailable reports whether a tool is on PATH, with a consistent
// error message when it is not.
func CheckToolAvailable(tool string) error {
	if _, err := exec.LookPath(tool); err != nil {
		return fmt.Errorf("%s not found in PATH", tool)
	}
	return nil
}

// CheckRequiredTools verifies a list of requirements and returns a single
// error naming all missing required tools, or nil when everything needed
// is available.
func CheckRequiredTools(requirements []ToolRequirement) error {
	var missing []string
	for _, req := range requirements {
		if req.satisfied() || req.Optional {
			continue
		}
		if req.Purpose != "" {
			missing = append(missing, fmt.Sprintf("%s (%s)", req.Name, req.Purpose))
		} else {
			missing = append(missing, req.Name)
		}
	}

	switch len(missing) {
	case 0:
		return nil
	case 1:
		return fmt.Errorf("%s not found in PATH", missing[0])
	default:
		return fmt.Errorf("missing required tools: %s", strings.Join(missing, ", "))
	}
}
