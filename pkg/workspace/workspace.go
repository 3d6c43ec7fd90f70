// Package workspace owns the output directory tree of a run.
package workspace

import (
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

const (
	// ManifestFile holds the raw listing as fetched.
	ManifestFile = "manifest.xml"
	// VersionsDir holds one JSON record per version.
	VersionsDir = "versions"

	dirMode  os.FileMode = 0o755
	fileMode os.FileMode = 0o644
)

// IOError reports a failed filesystem operation.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// Workspace is a directory tree that is wiped and recreated on every run.
type Workspace struct {
	fs   afero.Fs
	root string
}

// New returns a workspace rooted at root on fs. Nothing is created until Prepare.
func New(fs afero.Fs, root string) *Workspace {
	return &Workspace{fs: fs, root: root}
}

func (w *Workspace) Root() string {
	return w.root
}

func (w *Workspace) ManifestPath() string {
	return filepath.Join(w.root, ManifestFile)
}

func (w *Workspace) VersionsPath() string {
	return filepath.Join(w.root, VersionsDir)
}

// Prepare removes the workspace root with everything below it, then creates
// the root and its versions directory. Files placed there by hand are lost.
func (w *Workspace) Prepare() error {
	exists, err := afero.Exists(w.fs, w.root)
	if err != nil {
		return &IOError{Op: "stat", Path: w.root, Err: err}
	}

	if exists {
		log.WithField("dir", w.root).Debug("Removing previous workspace")
		if err := w.fs.RemoveAll(w.root); err != nil {
			return &IOError{Op: "remove", Path: w.root, Err: err}
		}
	}

	for _, dir := range []string{w.root, w.VersionsPath()} {
		if err := w.fs.Mkdir(dir, dirMode); err != nil {
			return &IOError{Op: "mkdir", Path: dir, Err: err}
		}
	}

	return nil
}

func (w *Workspace) WriteFile(path string, data []byte) error {
	if err := afero.WriteFile(w.fs, path, data, fileMode); err != nil {
		return &IOError{Op: "write", Path: path, Err: err}
	}
	return nil
}

// WriteManifest stores the raw listing document.
func (w *Workspace) WriteManifest(raw string) error {
	return w.WriteFile(w.ManifestPath(), []byte(raw))
}
