package workspace

import (
	"archive/zip"
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func buildZip(t *testing.T, entries map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range entries {
		f, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := f.Write([]byte(content)); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestWorkspaceLifecycle(t *testing.T) {
	ws, err := Create(nil)
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	if _, err := os.Stat(ws.Dir); err != nil {
		t.Fatalf("workspace dir missing: %v", err)
	}

	ws.Cleanup()
	if _, err := os.Stat(ws.Dir); !os.IsNotExist(err) {
		t.Errorf("expected workspace dir removed, stat err = %v", err)
	}
}

func TestSaveUploadAndExtractZip(t *testing.T) {
	ws, err := Create(nil)
	if err != nil {
		t.Fatal(err)
	}
	defer ws.Cleanup()

	data := buildZip(t, map[string]string{
		"app/main.py":    "def main():\n    pass\n",
		"app/web/ui.js":  "function render() {}\n",
		"requirements.txt": "flask\n",
	})

	zipPath, err := ws.SaveUpload(bytes.NewReader(data), "upload.zip")
	if err != nil {
		t.Fatalf("SaveUpload() error: %v", err)
	}

	dest, err := ws.ExtractZip(zipPath)
	if err != nil {
		t.Fatalf("ExtractZip() error: %v", err)
	}

	content, err := os.ReadFile(filepath.Join(dest, "app", "main.py"))
	if err != nil {
		t.Fatalf("extracted file missing: %v", err)
	}
	if !strings.Contains(string(content), "def main()") {
		t.Errorf("extracted content = %q", content)
	}
}

func TestSaveUploadStripsDirectories(t *testing.T) {
	ws, err := Create(nil)
	if err != nil {
		t.Fatal(err)
	}
	defer ws.Cleanup()

	path, err := ws.SaveUpload(strings.NewReader("x"), "../../evil.zip")
	if err != nil {
		t.Fatalf("SaveUpload() error: %v", err)
	}
	if filepath.Dir(path) != ws.Dir {
		t.Errorf("upload escaped workspace: %s", path)
	}
}

func TestExtractZipRejectsGarbage(t *testing.T) {
	ws, err := Create(nil)
	if err != nil {
		t.Fatal(err)
	}
	defer ws.Cleanup()

	zipPath, err := ws.SaveUpload(strings.NewReader("not a zip archive"), "bad.zip")
	if err != nil {
		t.Fatal(err)
	}

	if _, err := ws.ExtractZip(zipPath); !errors.Is(err, ErrBadArchive) {
		t.Errorf("expected ErrBadArchive, got %v", err)
	}
}

func TestExtractZipRejectsEscapingEntry(t *testing.T) {
	ws, err := Create(nil)
	if err != nil {
		t.Fatal(err)
	}
	defer ws.Cleanup()

	data := buildZip(t, map[string]string{
		"../outside.txt": "escape",
	})
	zipPath, err := ws.SaveUpload(bytes.NewReader(data), "slip.zip")
	if err != nil {
		t.Fatal(err)
	}

	if _, err := ws.ExtractZip(zipPath); !errors.Is(err, ErrBadArchive) {
		t.Errorf("expected ErrBadArchive for zip-slip entry, got %v", err)
	}
}

func TestValidExtension(t *testing.T) {
	tests := []struct {
		filename string
		allowed  []string
		want     bool
	}{
		{"project.zip", []string{"zip"}, true},
		{"PROJECT.ZIP", []string{"zip"}, true},
		{"project.tar.gz", []string{"zip"}, false},
		{"project", []string{"zip"}, false},
		{"a.rar", []string{"zip", "rar"}, true},
	}

	for _, tt := range tests {
		if got := ValidExtension(tt.filename, tt.allowed); got != tt.want {
			t.Errorf("ValidExtension(%q, %v) = %v, want %v",
				tt.filename, tt.allowed, got, tt.want)
		}
	}
}

func TestFindProjectRoot(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "package.json"), []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}
	nested := filepath.Join(root, "src", "components")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}

	if got := FindProjectRoot(nested); got != root {
		t.Errorf("FindProjectRoot() = %s, want %s", got, root)
	}

	// No marker anywhere: the directory itself comes back.
	bare := t.TempDir()
	if got := FindProjectRoot(bare); got != bare {
		t.Errorf("FindProjectRoot() = %s, want %s", got, bare)
	}
}

func TestProjectRootStaysInsideWorkspace(t *testing.T) {
	ws, err := Create(nil)
	if err != nil {
		t.Fatal(err)
	}
	defer ws.Cleanup()

	data := buildZip(t, map[string]string{
		"src/main.py":      "def main():\n    pass\n",
		"requirements.txt": "flask\n",
	})
	zipPath, err := ws.SaveUpload(bytes.NewReader(data), "p.zip")
	if err != nil {
		t.Fatal(err)
	}
	dest, err := ws.ExtractZip(zipPath)
	if err != nil {
		t.Fatal(err)
	}

	// The extraction root itself carries the marker.
	if got := ws.ProjectRoot(dest); got != dest {
		t.Errorf("ProjectRoot() = %s, want %s", got, dest)
	}

	// A directory outside the workspace is returned unchanged even if an
	// ancestor has a marker.
	outside := t.TempDir()
	if got := ws.ProjectRoot(outside); got != outside {
		t.Errorf("ProjectRoot() = %s, want %s", got, outside)
	}
}
