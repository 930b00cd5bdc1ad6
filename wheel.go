package pyext

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Defaults for the manylinux wheel build. The Go release archive is
// fetched inside the container, so the host toolchain version does not
// matter there.
const (
	DefaultGoVersion = "1.13.8"

	manylinuxImage = "quay.io/pypa/manylinux1_x86_64:latest"
	golangURL      = "https://storage.googleapis.com/golang/go%s.linux-amd64.tar.gz"
)

// DefaultPythons lists the CPython tags wheels are built for when the
// caller does not choose.
var DefaultPythons = []string{"cp36-cp36m", "cp37-cp37m", "cp38-cp38"}

const wheelScript = `cd /tmp
curl %s --silent --location | tar -xz
export PATH="/tmp/go/bin:$PATH" HOME=/tmp
for py in %s; do
    "/opt/python/$py/bin/pip" wheel --no-deps --wheel-dir /tmp /dist/*.tar.gz
done
ls *.whl | xargs -n1 --verbose auditwheel repair --wheel-dir /dist
ls -al /dist
`

// WheelConfig parameterizes a manylinux wheel build.
type WheelConfig struct {
	// GoVersion selects the Go release fetched inside the container.
	// Defaults to DefaultGoVersion.
	GoVersion string

	// Pythons lists the CPython tags to build wheels for.
	// Defaults to DefaultPythons.
	Pythons []string

	// Log receives echoed command lines and subprocess output.
	// Defaults to os.Stderr.
	Log io.Writer
}

func (c *WheelConfig) goVersion() string {
	if c != nil && c.GoVersion != "" {
		return c.GoVersion
	}
	return DefaultGoVersion
}

func (c *WheelConfig) pythons() []string {
	if c != nil && len(c.Pythons) > 0 {
		return c.Pythons
	}
	return DefaultPythons
}

func (c *WheelConfig) log() io.Writer {
	if c != nil && c.Log != nil {
		return c.Log
	}
	return os.Stderr
}

// RequiredWheelTools lists the tools a manylinux wheel build needs on the
// host. The Go toolchain is not among them.
func RequiredWheelTools() []ToolRequirement {
	return []ToolRequirement{
		{
			Name:         "python",
			Alternatives: []string{"python3"},
			Purpose:      "building the source distribution",
		},
		{
			Name:    "docker",
			Purpose: "running the manylinux build container",
		},
	}
}

// BuildManylinuxWheels builds portable Linux wheels for the project in the
// current directory.
//
// It builds a source distribution into a fresh dist/ directory, then runs
// the manylinux container with dist/ mounted, executing a script that
// fetches the pinned Go release, builds a wheel per requested CPython tag
// and repairs each with auditwheel back into dist/. Both host subprocesses
// are echoed to the config log before running, and their failures propagate
// verbatim.
func BuildManylinuxWheels(ctx context.Context, config *WheelConfig) error {
	if _, err := os.Stat("setup.py"); err != nil {
		return fmt.Errorf("setup.py not found: wheel builds must run from the project root")
	}

	if err := os.RemoveAll("dist"); err != nil {
		return fmt.Errorf("clearing dist directory: %w", err)
	}
	if err := os.MkdirAll("dist", 0o755); err != nil {
		return fmt.Errorf("creating dist directory: %w", err)
	}

	log := config.log()
	if err := runLogged(ctx, log, ".", nil, "python", "setup.py", "sdist"); err != nil {
		return fmt.Errorf("building source distribution: %w", err)
	}

	dist, err := filepath.Abs("dist")
	if err != nil {
		return err
	}
	script := fmt.Sprintf(
		wheelScript,
		fmt.Sprintf(golangURL, config.goVersion()),
		strings.Join(config.pythons(), " "),
	)
	cmd := []string{
		"docker", "run", "--rm",
		"--volume", dist + ":/dist:rw",
		"--user", fmt.Sprintf("%d:%d", os.Getuid(), os.Getgid()),
		manylinuxImage,
		"bash", "-o", "pipefail", "-euxc", script,
	}
	if err := runLogged(ctx, log, ".", nil, cmd...); err != nil {
		return fmt.Errorf("building manylinux wheels: %w", err)
	}
	return nil
}
