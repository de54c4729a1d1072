// Package workspace manages the request-scoped filesystem area holding an
// uploaded project: saving the upload, extracting the ZIP archive, and
// cleaning everything up when the analysis ends.
//
// Ownership of a workspace directory is scoped to a single analysis
// request; nothing here is shared across requests.
package workspace

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/seekr-dev/seekr/internal/logging"
)

// ErrBadArchive is returned when the uploaded file is not a readable ZIP
// archive or contains entries escaping the extraction root.
var ErrBadArchive = errors.New("invalid zip archive")

// Workspace is a temporary directory tree for one analysis request.
type Workspace struct {
	// Dir is the workspace root.
	Dir string

	logger *slog.Logger
}

// Create makes a fresh temporary workspace directory. A nil logger
// discards log output.
func Create(logger *slog.Logger) (*Workspace, error) {
	if logger == nil {
		logger = logging.Discard()
	}
	dir, err := os.MkdirTemp("", "seekr_analysis_")
	if err != nil {
		return nil, fmt.Errorf("creating workspace: %w", err)
	}
	logger.Debug("workspace created", "dir", dir)
	return &Workspace{Dir: dir, logger: logger}, nil
}

// Cleanup removes the workspace directory tree. Failures are logged, not
// returned: cleanup runs on request teardown where nothing can act on the
// error anyway.
func (w *Workspace) Cleanup() {
	if err := os.RemoveAll(w.Dir); err != nil {
		w.logger.Error("workspace cleanup failed", "dir", w.Dir, "error", err)
		return
	}
	w.logger.Debug("workspace removed", "dir", w.Dir)
}

// SaveUpload streams an uploaded file into the workspace under name and
// returns its path.
func (w *Workspace) SaveUpload(r io.Reader, name string) (string, error) {
	path := filepath.Join(w.Dir, filepath.Base(name))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("saving upload: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("saving upload: %w", err)
	}
	return path, nil
}

// ExtractZip extracts the archive at zipPath into a fresh "extracted"
// subdirectory of the workspace and returns that directory.
//
// Entries whose cleaned path would escape the extraction root are
// rejected with ErrBadArchive, as are archives the zip reader cannot
// open.
func (w *Workspace) ExtractZip(zipPath string) (string, error) {
	dest := filepath.Join(w.Dir, "extracted")
	if err := os.MkdirAll(dest, 0755); err != nil {
		return "", fmt.Errorf("creating extraction dir: %w", err)
	}

	reader, err := zip.OpenReader(zipPath)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrBadArchive, err)
	}
	defer reader.Close()

	w.logger.Info("extracting archive", "entries", len(reader.File), "dest", dest)

	for _, entry := range reader.File {
		if err := extractEntry(entry, dest); err != nil {
			return "", err
		}
	}
	return dest, nil
}

func extractEntry(entry *zip.File, dest string) error {
	target, err := safeJoin(dest, entry.Name)
	if err != nil {
		return err
	}

	if entry.FileInfo().IsDir() {
		if err := os.MkdirAll(target, 0755); err != nil {
			return fmt.Errorf("extracting %s: %w", entry.Name, err)
		}
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return fmt.Errorf("extracting %s: %w", entry.Name, err)
	}

	src, err := entry.Open()
	if err != nil {
		return fmt.Errorf("%w: opening %s: %v", ErrBadArchive, entry.Name, err)
	}
	defer src.Close()

	dst, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("extracting %s: %w", entry.Name, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("extracting %s: %w", entry.Name, err)
	}
	return nil
}

// safeJoin joins name under dest, rejecting entries that escape it.
func safeJoin(dest, name string) (string, error) {
	target := filepath.Join(dest, filepath.FromSlash(name))
	if target != dest && !strings.HasPrefix(target, dest+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: entry %q escapes extraction root", ErrBadArchive, name)
	}
	return target, nil
}

// ValidExtension reports whether filename has one of the allowed
// extensions (given without the leading dot), case-insensitively.
func ValidExtension(filename string, allowed []string) bool {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	for _, a := range allowed {
		if ext == strings.ToLower(a) {
			return true
		}
	}
	return false
}

// markerFiles identify a project root when searching upward from an
// extraction directory.
var markerFiles = []string{
	"package.json",
	"setup.py",
	"requirements.txt",
	"pom.xml",
	"csproj",
}

// ProjectRoot returns the marker-bearing directory for a tree extracted
// into this workspace. The search never escapes the workspace: a marker
// found above it is ignored and dir is returned unchanged.
func (w *Workspace) ProjectRoot(dir string) string {
	root := FindProjectRoot(dir)
	if root == dir || strings.HasPrefix(root, w.Dir+string(filepath.Separator)) {
		return root
	}
	return dir
}

// FindProjectRoot walks up from dir looking for a marker file and returns
// the first directory containing one. If none is found, dir is returned
// unchanged.
func FindProjectRoot(dir string) string {
	current := dir
	for {
		for _, marker := range markerFiles {
			if _, err := os.Stat(filepath.Join(current, marker)); err == nil {
				return current
			}
		}
		parent := filepath.Dir(current)
		if parent == current {
			return dir
		}
		current = parent
	}
}
