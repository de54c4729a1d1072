// Package scanner walks a source tree and loads recognized source files
// into memory as ordered line sequences.
//
// The scanner is the first stage of the analysis pipeline. It never fails
// the whole scan because of a single file: unreadable files are logged
// and skipped, and files with invalid encodings are read lossily with the
// offending bytes dropped.
package scanner

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/seekr-dev/seekr/internal/lang"
)

// SourceFile is a single scanned file: its slash-separated path relative
// to the scan root, its extension, and its content as an ordered sequence
// of lines. A SourceFile is immutable once read.
type SourceFile struct {
	// RelPath is the slash-separated path relative to the scan root.
	RelPath string
	// Ext is the file extension including the leading dot.
	Ext string
	// Lines is the file content split into lines, without terminators.
	Lines []string
}

// defaultSkipDirs are directory names never descended into. These are
// dependency caches and generated output, not project source.
var defaultSkipDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	"vendor":       true,
	"dist":         true,
	"build":        true,
	"__pycache__":  true,
}

// Scanner reads source trees. The zero value is not usable; construct
// with New.
type Scanner struct {
	logger   *slog.Logger
	skipDirs map[string]bool
}

// New creates a scanner. extraSkipDirs extends the built-in list of
// directory names to skip. logger must not be nil.
func New(logger *slog.Logger, extraSkipDirs []string) *Scanner {
	skip := make(map[string]bool, len(defaultSkipDirs)+len(extraSkipDirs))
	for d := range defaultSkipDirs {
		skip[d] = true
	}
	for _, d := range extraSkipDirs {
		if d != "" {
			skip[d] = true
		}
	}
	return &Scanner{logger: logger, skipDirs: skip}
}

// Scan walks root and returns every readable file whose extension is on
// the allow-list, in walk order. Individual read failures are logged and
// the file omitted. The walk checks ctx between files and returns
// ctx.Err() on cancellation.
func (s *Scanner) Scan(ctx context.Context, root string) ([]SourceFile, error) {
	var files []SourceFile

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable directory entry: skip it, keep walking.
			s.logger.Warn("skipping unreadable path", "path", path, "error", err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if err := ctx.Err(); err != nil {
			return err
		}

		if d.IsDir() {
			if path != root && s.skipDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}

		ext := strings.ToLower(filepath.Ext(d.Name()))
		if !lang.IsSupportedExtension(ext) {
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			s.logger.Warn("skipping file outside root", "path", path, "error", relErr)
			return nil
		}

		data, readErr := os.ReadFile(path)
		if readErr != nil {
			s.logger.Error("reading file failed", "path", rel, "error", readErr)
			return nil
		}

		files = append(files, SourceFile{
			RelPath: filepath.ToSlash(rel),
			Ext:     ext,
			Lines:   splitLines(data),
		})
		s.logger.Debug("read file", "path", rel, "lines", len(files[len(files)-1].Lines))
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("scan complete", "root", root, "files", len(files))
	return files, nil
}

// splitLines converts raw file bytes into lines. Invalid UTF-8 bytes are
// dropped rather than failing the read. A trailing newline does not
// produce an extra empty line, so len(lines) matches the conventional
// line count used in reported ranges.
func splitLines(data []byte) []string {
	text := strings.ToValidUTF8(string(data), "")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
