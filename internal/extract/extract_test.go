package extract

import (
	"strings"
	"testing"

	"github.com/seekr-dev/seekr/internal/lang"
)

func TestFunctionsPython(t *testing.T) {
	src := `import os

def login(username, password):
    check(username)
    return token(password)

def logout(session):
    session.close()
`
	funcs := Functions(strings.Split(strings.TrimRight(src, "\n"), "\n"), ".py")

	if len(funcs) != 2 {
		t.Fatalf("expected 2 functions, got %d: %v", len(funcs), funcs)
	}

	login, ok := funcs["login"]
	if !ok {
		t.Fatal("expected login to be detected")
	}
	if login.StartLine != 3 {
		t.Errorf("login start = %d, want 3", login.StartLine)
	}
	if login.Params != "username, password" {
		t.Errorf("login params = %q", login.Params)
	}
	// The blank line 6 is skipped; def logout at indent 0 on line 7 is
	// the boundary, so login ends on line 6.
	if login.EndLine != 6 {
		t.Errorf("login end = %d, want 6", login.EndLine)
	}

	logout, ok := funcs["logout"]
	if !ok {
		t.Fatal("expected logout to be detected")
	}
	if logout.StartLine != 7 {
		t.Errorf("logout start = %d, want 7", logout.StartLine)
	}
	// No further boundary: runs to end of file.
	if logout.EndLine != 8 {
		t.Errorf("logout end = %d, want 8", logout.EndLine)
	}
}

func TestFunctionsLastWriteWins(t *testing.T) {
	lines := []string{
		"def setup():",
		"    pass",
		"def setup():",
		"    return 2",
	}
	funcs := Functions(lines, ".py")

	if len(funcs) != 1 {
		t.Fatalf("expected 1 function, got %d", len(funcs))
	}
	if funcs["setup"].StartLine != 3 {
		t.Errorf("expected later declaration to win, got start %d", funcs["setup"].StartLine)
	}
}

func TestFunctionsUnsupportedExtension(t *testing.T) {
	funcs := Functions([]string{"def x():"}, ".txt")
	if len(funcs) != 0 {
		t.Errorf("expected no functions for unsupported extension, got %v", funcs)
	}
}

func TestFunctionsJavaScript(t *testing.T) {
	lines := []string{
		"export async function loginUser(name, pass) {",
		"  return auth(name, pass);",
		"}",
		"const handleSubmit = (event) => {",
		"  event.preventDefault();",
		"};",
	}
	funcs := Functions(lines, ".js")

	if _, ok := funcs["loginUser"]; !ok {
		t.Error("expected loginUser to be detected")
	}
	if _, ok := funcs["handleSubmit"]; !ok {
		t.Error("expected handleSubmit to be detected")
	}
}

func TestEstimateEnd(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		start int
		want  int
	}{
		{
			name: "zero indent boundary",
			lines: []string{
				"def a():",
				"    x = 1",
				"print('done')",
			},
			start: 1,
			want:  2,
		},
		{
			name: "dedent to sibling method",
			lines: []string{
				"class C:",
				"    def a(self):",
				"        x = 1",
				"    def b(self):",
				"        y = 2",
			},
			start: 2,
			want:  3,
		},
		{
			name: "comment lines skipped",
			lines: []string{
				"    def a(self):",
				"        x = 1",
				"    # note between methods",
				"    def b(self):",
			},
			start: 1,
			want:  3,
		},
		{
			name: "blank lines skipped",
			lines: []string{
				"def a():",
				"    x = 1",
				"",
				"    y = 2",
			},
			start: 1,
			want:  4,
		},
		{
			name: "runs to end of file",
			lines: []string{
				"def a():",
				"    x = 1",
				"    y = 2",
			},
			start: 1,
			want:  3,
		},
		{
			name:  "start out of range",
			lines: []string{"def a():"},
			start: 5,
			want:  5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EstimateEnd(tt.lines, tt.start, lang.Python)
			if got != tt.want {
				t.Errorf("EstimateEnd() = %d, want %d", got, tt.want)
			}
		})
	}
}
