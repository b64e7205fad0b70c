package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/idef0/pkg/errors"
)

const restaurant = `Operate Restaurant is composed of Take Order
Operate Restaurant receives Hungry Customer
Operate Restaurant requires Chef
Operate Restaurant produces Meal
Take Order receives Hungry Customer
Take Order produces Order
Cook Food receives Order
Cook Food requires Chef
Cook Food produces Meal
`

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty defaults to svg", "", []string{"svg"}},
		{"single format", "png", []string{"png"}},
		{"multiple formats", "svg,pdf,png", []string{"svg", "pdf", "png"}},
		{"spaces and blanks", " svg, ,json ", []string{"svg", "json"}},
		{"repeats dropped", "png,svg,png", []string{"png", "svg"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, parseFormats(tt.input)); diff != "" {
				t.Errorf("parseFormats(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		name   string
		output string
		input  string
		want   string
	}{
		{"from input", "", "models/restaurant.txt", "models/restaurant"},
		{"stdin without output", "", "-", ""},
		{"output without extension", "out/diagram", "-", "out/diagram"},
		{"output with format extension", "out/diagram.svg", "x.txt", "out/diagram"},
		{"output with other extension", "out/diagram.v2", "x.txt", "out/diagram.v2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := basePath(tt.output, tt.input); got != tt.want {
				t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
			}
		})
	}
}

func TestOutputTargets(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		source  string
		formats []string
		want    map[string]string
		wantErr bool
	}{
		{"lone svg to stdout", "", "m.txt", []string{"svg"}, map[string]string{"svg": "-"}, false},
		{"explicit stdout", "-", "m.txt", []string{"pdf"}, map[string]string{"pdf": "-"}, false},
		{"stdout takes one format", "-", "m.txt", []string{"svg", "png"}, nil, true},
		{"exact path", "d.pdf", "m.txt", []string{"pdf"}, map[string]string{"pdf": "d.pdf"}, false},
		{"beside input", "", "dir/m.txt", []string{"png", "json"}, map[string]string{"png": "dir/m.png", "json": "dir/m.json"}, false},
		{"base path", "out/x", "-", []string{"svg", "dot"}, map[string]string{"svg": "out/x.svg", "dot": "out/x.dot"}, false},
		{"graphviz drawing", "", "dir/m.txt", []string{"svg", "nodelink"}, map[string]string{"svg": "dir/m.svg", "nodelink": "dir/m.nodelink.svg"}, false},
		{"stdin needs output", "", "-", []string{"png"}, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := outputTargets(tt.output, tt.source, tt.formats)
			if (err != nil) != tt.wantErr {
				t.Fatalf("outputTargets() error = %v, wantErr %v", err, tt.wantErr)
			}
			if diff := cmp.Diff(tt.want, got); !tt.wantErr && diff != "" {
				t.Errorf("outputTargets() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// run executes the root command with isolated config and cache directories.
func run(t *testing.T, stdin string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	var out, errOut bytes.Buffer
	c := New(&errOut, LogInfo)
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&out)
	root.SetErr(&errOut)
	err = root.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func TestRenderToStdout(t *testing.T) {
	out, _, err := run(t, restaurant, "render")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.HasPrefix(out, "<?xml") || !strings.Contains(out, "Cook Food") {
		t.Errorf("stdout is not the SVG document:\n%.200s", out)
	}
}

func TestRenderWritesFiles(t *testing.T) {
	dir := t.TempDir()
	model := filepath.Join(dir, "restaurant.txt")
	if err := os.WriteFile(model, []byte(restaurant), 0o644); err != nil {
		t.Fatal(err)
	}

	out, stderr, err := run(t, "", "render", model, "-f", "svg,json,dot")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "" {
		t.Errorf("stdout should be empty, got %q", out)
	}
	for _, ext := range []string{"svg", "json", "dot"} {
		path := filepath.Join(dir, "restaurant."+ext)
		if _, err := os.Stat(path); err != nil {
			t.Errorf("missing %s: %v", path, err)
		}
		if !strings.Contains(stderr, path) {
			t.Errorf("stderr does not list %s:\n%s", path, stderr)
		}
	}
}

func TestRenderNodelink(t *testing.T) {
	dir := t.TempDir()
	model := filepath.Join(dir, "restaurant.txt")
	if err := os.WriteFile(model, []byte(restaurant), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, _, err := run(t, "", "render", model, "-f", "nodelink", "--no-cache"); err != nil {
		t.Fatalf("render: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "restaurant.nodelink.svg"))
	if err != nil {
		t.Fatalf("read nodelink output: %v", err)
	}
	if !strings.Contains(string(data), "<svg") || !strings.Contains(string(data), "Take Order") {
		t.Errorf("nodelink output is not a Graphviz drawing:\n%.200s", data)
	}
}

func TestRenderIgnoresUnknownLinesQuietly(t *testing.T) {
	out, stderr, err := run(t, restaurant+"Cook Food tastes Salty\n", "render")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.HasPrefix(out, "<?xml") {
		t.Errorf("stdout is not the SVG document:\n%.200s", out)
	}
	if strings.Contains(stderr, "Ignored") || strings.Contains(stderr, "ignored") {
		t.Errorf("unknown lines should only be logged at debug level, stderr:\n%s", stderr)
	}
}

func TestRenderErrors(t *testing.T) {
	tests := []struct {
		name  string
		stdin string
		args  []string
		code  errors.Code
	}{
		{"missing file", "", []string{"render", filepath.Join(t.TempDir(), "nope.txt")}, errors.ErrCodeFileNotFound},
		{"unknown format", restaurant, []string{"render", "-f", "gif"}, errors.ErrCodeInvalidFormat},
		{"stdin needs output", restaurant, []string{"render", "-f", "png"}, errors.ErrCodeInvalidInput},
		{"two roots", "A is composed of X\nB is composed of Y\n", []string{"render"}, errors.ErrCodeAmbiguousRoot},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := run(t, tt.stdin, tt.args...)
			if err == nil {
				t.Fatal("expected an error")
			}
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("GetCode() = %q, want %q (err: %v)", got, tt.code, err)
			}
		})
	}
}

func TestLinesCommand(t *testing.T) {
	out, _, err := run(t, restaurant, "lines")
	if err != nil {
		t.Fatalf("lines: %v", err)
	}
	for _, want := range []string{"Kind", "Take Order", "Cook Food", "Order", "Chef"} {
		if !strings.Contains(out, want) {
			t.Errorf("lines output missing %q:\n%s", want, out)
		}
	}
}

func TestDotCommand(t *testing.T) {
	out, _, err := run(t, restaurant, "dot", "--detailed")
	if err != nil {
		t.Fatalf("dot: %v", err)
	}
	if !strings.HasPrefix(out, "digraph G {") || !strings.Contains(out, `\nA1`) {
		t.Errorf("unexpected DOT output:\n%s", out)
	}
}
