package cmd

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/seekr-dev/seekr/internal/logging"
)

func TestResolveRequirement(t *testing.T) {
	t.Run("plain value passes through", func(t *testing.T) {
		got, err := resolveRequirement("实现用户登录功能")
		if err != nil {
			t.Fatal(err)
		}
		if got != "实现用户登录功能" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("at prefix reads file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "req.txt")
		if err := os.WriteFile(path, []byte("添加密码加密模块"), 0o644); err != nil {
			t.Fatal(err)
		}
		got, err := resolveRequirement("@" + path)
		if err != nil {
			t.Fatal(err)
		}
		if got != "添加密码加密模块" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("missing file errors", func(t *testing.T) {
		if _, err := resolveRequirement("@/no/such/file.txt"); err == nil {
			t.Error("expected error")
		}
	})
}

func TestResolveTargetDirectory(t *testing.T) {
	dir := t.TempDir()

	got, cleanup, err := resolveTarget(dir, logging.Discard())
	if err != nil {
		t.Fatal(err)
	}
	defer cleanup()

	if got != dir {
		t.Errorf("got %q, want %q", got, dir)
	}
}

func TestResolveTargetZip(t *testing.T) {
	zipPath := filepath.Join(t.TempDir(), "project.zip")

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	f, err := zw.Create("app/main.py")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.Write([]byte("def main():\n    pass\n")); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(zipPath, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}

	got, cleanup, err := resolveTarget(zipPath, logging.Discard())
	if err != nil {
		t.Fatal(err)
	}
	defer cleanup()

	if _, err := os.Stat(filepath.Join(got, "app", "main.py")); err != nil {
		t.Errorf("extracted project missing app/main.py under %s: %v", got, err)
	}
}

func TestResolveTargetRejectsOtherFiles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "project.tar.gz")
	if err := os.WriteFile(path, []byte("data"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, _, err := resolveTarget(path, logging.Discard())
	if err == nil || !strings.Contains(err.Error(), "neither a directory nor a ZIP archive") {
		t.Errorf("err = %v", err)
	}
}

func TestResolveTargetMissing(t *testing.T) {
	if _, _, err := resolveTarget(filepath.Join(t.TempDir(), "gone"), logging.Discard()); err == nil {
		t.Error("expected error for missing target")
	}
}

func TestNormalizeToolName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plan", "seekr_plan"},
		{"seekr_plan", "seekr_plan"},
		{" analyze ", "seekr_analyze"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := normalizeToolName(tt.in); got != tt.want {
			t.Errorf("normalizeToolName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseToolList(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"analyze,plan", []string{"seekr_analyze", "seekr_plan"}},
		{"seekr_verify", []string{"seekr_verify"}},
		{" testgen , ", []string{"seekr_testgen"}},
		{"", nil},
	}
	for _, tt := range tests {
		if got := parseToolList(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("parseToolList(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseTimeout(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{"0", 0, false},
		{"", 0, false},
		{"5m", 5 * time.Minute, false},
		{"90s", 90 * time.Second, false},
		{"banana", 0, true},
	}
	for _, tt := range tests {
		got, err := parseTimeout(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseTimeout(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("parseTimeout(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestBuildCommandInfo(t *testing.T) {
	info := buildCommandInfo(analyzeCmd)

	if info.Name != "analyze" {
		t.Errorf("name = %q", info.Name)
	}
	var hasRequirement bool
	for _, f := range info.Flags {
		if f.Name == "requirement" {
			hasRequirement = true
		}
	}
	if !hasRequirement {
		t.Error("analyze command info should list the requirement flag")
	}
}
