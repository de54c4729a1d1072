package scanner

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/seekr-dev/seekr/internal/logging"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestScan(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "app.py", "def main():\n    pass\n")
	writeFile(t, root, "web/index.js", "function render() {}\n")
	writeFile(t, root, "README.md", "# readme\n")
	writeFile(t, root, "node_modules/dep/index.js", "function hidden() {}\n")
	writeFile(t, root, "__pycache__/app.py", "cached\n")

	files, err := New(logging.Discard(), nil).Scan(context.Background(), root)
	if err != nil {
		t.Fatalf("Scan() error: %v", err)
	}

	got := make(map[string][]string)
	for _, f := range files {
		got[f.RelPath] = f.Lines
	}

	if len(got) != 2 {
		t.Fatalf("expected 2 files, got %d: %v", len(got), got)
	}
	if lines, ok := got["app.py"]; !ok || len(lines) != 2 {
		t.Errorf("app.py lines = %v", lines)
	}
	if _, ok := got["web/index.js"]; !ok {
		t.Error("expected web/index.js to be scanned")
	}
}

func TestScanExtraSkipDirs(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "generated/out.py", "def gen():\n    pass\n")
	writeFile(t, root, "src/main.py", "def main():\n    pass\n")

	files, err := New(logging.Discard(), []string{"generated"}).Scan(context.Background(), root)
	if err != nil {
		t.Fatalf("Scan() error: %v", err)
	}

	if len(files) != 1 || files[0].RelPath != "src/main.py" {
		t.Errorf("expected only src/main.py, got %v", files)
	}
}

func TestScanInvalidUTF8(t *testing.T) {
	root := t.TempDir()
	content := append([]byte("def ok():\n    x = '"), 0xff, 0xfe)
	content = append(content, []byte("'\n")...)
	if err := os.WriteFile(filepath.Join(root, "bad.py"), content, 0644); err != nil {
		t.Fatal(err)
	}

	files, err := New(logging.Discard(), nil).Scan(context.Background(), root)
	if err != nil {
		t.Fatalf("Scan() error: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("expected lossy read to keep the file, got %d files", len(files))
	}
	if files[0].Lines[0] != "def ok():" {
		t.Errorf("first line = %q", files[0].Lines[0])
	}
}

func TestScanCancelledContext(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "app.py", "def main():\n    pass\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(logging.Discard(), nil).Scan(ctx, root)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestScanMissingRoot(t *testing.T) {
	_, err := New(logging.Discard(), nil).Scan(context.Background(), filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Errorf("missing root should be skipped, not fail: %v", err)
	}
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name string
		data string
		want int
	}{
		{"trailing newline", "a\nb\n", 2},
		{"no trailing newline", "a\nb", 2},
		{"crlf", "a\r\nb\r\n", 2},
		{"empty", "", 0},
		{"single newline", "\n", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := splitLines([]byte(tt.data)); len(got) != tt.want {
				t.Errorf("splitLines(%q) = %v, want %d lines", tt.data, got, tt.want)
			}
		})
	}
}
