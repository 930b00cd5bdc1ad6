package pyext

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// Workspace is an ephemeral, GOPATH-shaped copy of the project tree.
//
// The project is copied (symlinks preserved) to src/<import path> under a
// unique temporary directory, so the foreign module resolution convention
// finds it at its canonical location. A workspace belongs to exactly one
// build invocation and must be closed when that invocation ends.
type Workspace struct {
	Dir  string // Temporary directory doubling as the isolated GOPATH
	Root string // Dir/src/<import path>, the copied project root
}

// newWorkspace copies projectDir into a fresh temporary tree rooted at
// src/<root>. Every path component except the last is pre-created; the
// recursive copy creates the final one itself.
func newWorkspace(projectDir, root string) (*Workspace, error) {
	dir, err := os.MkdirTemp("", "pyext-")
	if err != nil {
		return nil, err
	}

	rootPath := filepath.Join(dir, "src", filepath.FromSlash(root))
	if err := os.MkdirAll(filepath.Dir(rootPath), 0o755); err != nil {
		_ = forceRemoveAll(dir)
		return nil, err
	}
	if err := copyTree(projectDir, rootPath); err != nil {
		_ = forceRemoveAll(dir)
		return nil, fmt.Errorf("copying %s into workspace: %w", projectDir, err)
	}

	return &Workspace{Dir: dir, Root: rootPath}, nil
}

// Close removes the entire workspace tree, forcing read-only entries
// writable first so build caches left behind by the Go toolchain never
// break cleanup.
func (w *Workspace) Close() error {
	return forceRemoveAll(w.Dir)
}

// withTempDir runs fn with a fresh temporary directory and removes the
// directory on every exit path. A removal failure is only reported when fn
// itself succeeded, so it never masks the build error.
func withTempDir(fn func(dir string) error) (err error) {
	dir, err := os.MkdirTemp("", "pyext-")
	if err != nil {
		return err
	}
	defer func() {
		if rmErr := forceRemoveAll(dir); rmErr != nil && err == nil {
			err = fmt.Errorf("cleaning up %s: %w", dir, rmErr)
		}
	}()
	return fn(dir)
}

// forceRemoveAll is os.RemoveAll with a second pass that chmods everything
// writable. The Go build cache marks its entries read-only, which makes a
// plain RemoveAll fail on some platforms.
func forceRemoveAll(dir string) error {
	if err := os.RemoveAll(dir); err == nil {
		return nil
	}
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return nil
		}
		if d.IsDir() {
			_ = os.Chmod(path, 0o700)
		} else {
			_ = os.Chmod(path, 0o600)
		}
		return nil
	})
	return os.RemoveAll(dir)
}

// copyTree recursively copies src to dest. Symbolic links are recreated as
// links, never followed, so the copy cannot escape the source tree.
func copyTree(src, dest string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dest, rel)

		switch {
		case d.Type()&fs.ModeSymlink != 0:
			link, err := os.Readlink(path)
			if err != nil {
				return err
			}
			return os.Symlink(link, target)
		case d.IsDir():
			info, err := d.Info()
			if err != nil {
				return err
			}
			return os.MkdirAll(target, info.Mode().Perm()|0o700)
		default:
			return copyFile(path, target)
		}
	})
}

// copyFile copies a regular file, preserving its mode bits.
func copyFile(srcPath, destPath string) error {
	info, err := os.Stat(srcPath)
	if err != nil {
		return err
	}

	in, err := os.Open(srcPath)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(destPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
