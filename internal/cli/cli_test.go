package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/qrsvg/pkg/errors"
	"github.com/matzehuels/qrsvg/pkg/pipeline"
	"github.com/matzehuels/qrsvg/pkg/render/qr/geom"
	"github.com/matzehuels/qrsvg/pkg/render/qr/styles"
)

// newTestCLI returns a CLI whose cache and config live in temp dirs.
func newTestCLI(t *testing.T) (*CLI, *bytes.Buffer) {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	var out bytes.Buffer
	c := New(io.Discard, LogInfo)
	c.Out = &out
	c.Err = io.Discard
	return c, &out
}

func execute(t *testing.T, c *CLI, args ...string) error {
	t.Helper()
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	return root.ExecuteContext(context.Background())
}

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, path, `
[render]
style = "circle"
border = 0
formats = ["svg", "png"]

[cache]
prefix = "team"

[serve]
addr = ":9000"
timeout = "5s"
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Render.Style != "circle" {
		t.Errorf("Render.Style = %q, want %q", cfg.Render.Style, "circle")
	}
	if cfg.Render.Border == nil || *cfg.Render.Border != 0 {
		t.Errorf("Render.Border = %v, want 0", cfg.Render.Border)
	}
	if len(cfg.Render.Formats) != 2 {
		t.Errorf("Render.Formats = %v, want 2 entries", cfg.Render.Formats)
	}
	if cfg.Cache.Prefix != "team" {
		t.Errorf("Cache.Prefix = %q, want %q", cfg.Cache.Prefix, "team")
	}
	if cfg.Serve.Addr != ":9000" || cfg.Serve.Timeout.Duration != 5*time.Second {
		t.Errorf("Serve = %+v, want :9000 and 5s", cfg.Serve)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	dir := t.TempDir()
	unknown := filepath.Join(dir, "unknown.toml")
	writeFile(t, unknown, "[render]\nshape = \"circle\"\n")
	broken := filepath.Join(dir, "broken.toml")
	writeFile(t, broken, "[render\n")
	badDuration := filepath.Join(dir, "duration.toml")
	writeFile(t, badDuration, "[serve]\ntimeout = \"soon\"\n")

	tests := []struct {
		name string
		path string
		code errors.Code
	}{
		{"missing explicit file", filepath.Join(dir, "nope.toml"), errors.ErrCodeFileNotFound},
		{"unknown key", unknown, errors.ErrCodeInvalidInput},
		{"syntax error", broken, errors.ErrCodeInvalidInput},
		{"bad duration", badDuration, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(tt.path)
			if !errors.Is(err, tt.code) {
				t.Errorf("LoadConfig() error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestLoadConfigDefaultMissing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig(\"\") error = %v", err)
	}
	if cfg.Render.Style != "" {
		t.Errorf("Render.Style = %q, want empty", cfg.Render.Style)
	}
}

func TestLoadConfigDefaultLocation(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)
	if err := os.MkdirAll(filepath.Join(home, appName), 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(home, appName, "config.toml"), "[render]\nstyle = \"diamond\"\n")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig(\"\") error = %v", err)
	}
	if cfg.Render.Style != "diamond" {
		t.Errorf("Render.Style = %q, want %q", cfg.Render.Style, "diamond")
	}
}

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg")
	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error = %v", err)
	}
	if want := filepath.Join("/tmp/xdg", appName); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestOutputPaths(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		formats []string
		want    map[string]string
	}{
		{"default", "", []string{"svg"}, map[string]string{"svg": "qr.svg"}},
		{"explicit file", "out/code.svg", []string{"svg"}, map[string]string{"svg": "out/code.svg"}},
		{"explicit file other ext", "code.image", []string{"png"}, map[string]string{"png": "code.image"}},
		{"base path", "out/code", []string{"svg", "png"}, map[string]string{"svg": "out/code.svg", "png": "out/code.png"}},
		{"format ext stripped", "code.svg", []string{"svg", "pdf"}, map[string]string{"svg": "code.svg", "pdf": "code.pdf"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := outputPaths(tt.output, defaultBase, tt.formats)
			for f, want := range tt.want {
				if got[f] != want {
					t.Errorf("outputPaths()[%s] = %q, want %q", f, got[f], want)
				}
			}
		})
	}
}

func TestSourceBase(t *testing.T) {
	if got := sourceBase(pipeline.Options{Text: "hi"}); got != defaultBase {
		t.Errorf("sourceBase(text) = %q, want %q", got, defaultBase)
	}
	if got := sourceBase(pipeline.Options{MatrixPath: "in/grid.txt"}); got != "in/grid" {
		t.Errorf("sourceBase(matrix) = %q, want %q", got, "in/grid")
	}
}

func TestReadText(t *testing.T) {
	got, err := readText(strings.NewReader("from stdin\n"), "-")
	if err != nil || got != "from stdin" {
		t.Errorf("readText(-) = %q, %v, want %q", got, err, "from stdin")
	}
	got, err = readText(strings.NewReader("ignored"), "literal")
	if err != nil || got != "literal" {
		t.Errorf("readText(literal) = %q, %v, want %q", got, err, "literal")
	}
}

func TestRenderCommand(t *testing.T) {
	c, out := newTestCLI(t)
	path := filepath.Join(t.TempDir(), "code.svg")

	if err := execute(t, c, "render", "https://example.com", "--style", "circle", "-o", path); err != nil {
		t.Fatalf("render error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("<svg ")) {
		t.Errorf("output does not start with <svg: %.40q", data)
	}
	if !bytes.Contains(data, []byte("<circle ")) {
		t.Error("circle style output has no <circle> elements")
	}
	if !strings.Contains(out.String(), path) {
		t.Errorf("status output does not mention %s:\n%s", path, out)
	}
}

func TestRenderCommandMatrix(t *testing.T) {
	c, _ := newTestCLI(t)
	dir := t.TempDir()
	grid := filepath.Join(dir, "grid.txt")
	writeFile(t, grid, "###\n#.#\n###\n")
	export := filepath.Join(dir, "grid.json")

	err := execute(t, c, "render", "--matrix", grid, "--border", "0", "-f", "svg,json", "--export-matrix", export, "--no-cache")
	if err != nil {
		t.Fatalf("render error = %v", err)
	}

	svg, err := os.ReadFile(filepath.Join(dir, "grid.svg"))
	if err != nil {
		t.Fatalf("read svg: %v", err)
	}
	if n := bytes.Count(svg, []byte("<rect ")); n != 8 {
		t.Errorf("svg has %d rects, want 8", n)
	}
	if _, err := os.Stat(filepath.Join(dir, "grid.json")); err != nil {
		t.Errorf("json artifact missing: %v", err)
	}
}

func TestRenderCommandStdout(t *testing.T) {
	c, out := newTestCLI(t)

	if err := execute(t, c, "render", "hello", "-f", "json", "-o", "-", "--no-cache"); err != nil {
		t.Fatalf("render error = %v", err)
	}

	var doc struct {
		Size     int               `json:"size"`
		Style    string            `json:"style"`
		Elements []json.RawMessage `json:"elements"`
	}
	if err := json.Unmarshal(out.Bytes(), &doc); err != nil {
		t.Fatalf("stdout is not JSON: %v\n%s", err, out)
	}
	if doc.Style != pipeline.DefaultStyle || doc.Size == 0 || len(doc.Elements) == 0 {
		t.Errorf("doc = size %d, style %q, %d elements", doc.Size, doc.Style, len(doc.Elements))
	}
}

func TestRenderExamplesUseRealStyles(t *testing.T) {
	c, _ := newTestCLI(t)
	g, err := geom.NewGeometry(10, geom.DefaultRatio)
	if err != nil {
		t.Fatalf("NewGeometry() error = %v", err)
	}

	for _, line := range strings.Split(c.renderCommand().Example, "\n") {
		fields := strings.Fields(line)
		for i, f := range fields {
			if f != "--style" || i+1 >= len(fields) {
				continue
			}
			fam, err := styles.Lookup(fields[i+1])
			if err != nil {
				t.Errorf("example %q: %v", line, err)
				continue
			}
			if strings.Contains(line, "--path") {
				if _, ok := fam.New(g).(styles.FragmentDrawer); !ok {
					t.Errorf("example %q: %s has no path mode", line, fam.Name)
				}
			}
		}
	}
}

func TestRenderCommandStreamsSVG(t *testing.T) {
	c, out := newTestCLI(t)
	if err := execute(t, c, "render", "stream me", "--path", "--px", "--border", "0", "-o", "-"); err != nil {
		t.Fatalf("render error = %v", err)
	}

	svg := out.String()
	if !strings.HasPrefix(svg, "<svg") || !strings.HasSuffix(svg, "</svg>\n") {
		t.Fatalf("stdout is not an SVG document:\n%.200s", svg)
	}
	if got := strings.Count(svg, "<path"); got != 1 {
		t.Errorf("paths = %d, want 1 merged path", got)
	}
	if strings.Contains(svg, "mm\"") {
		t.Errorf("--px left millimeter units: %.200s", svg)
	}
}

func TestRenderCommandConfig(t *testing.T) {
	c, out := newTestCLI(t)
	dir := t.TempDir()
	cfg := filepath.Join(dir, "qrsvg.toml")
	writeFile(t, cfg, "[render]\nstyle = \"circle\"\n")

	if err := execute(t, c, "--config", cfg, "render", "hi", "-o", "-", "--no-cache"); err != nil {
		t.Fatalf("render error = %v", err)
	}
	if !strings.Contains(out.String(), "<circle ") {
		t.Error("config style not applied")
	}

	out.Reset()
	if err := execute(t, c, "--config", cfg, "render", "hi", "--style", "square", "-o", "-", "--no-cache"); err != nil {
		t.Fatalf("render error = %v", err)
	}
	if strings.Contains(out.String(), "<circle ") {
		t.Error("--style flag did not override the config")
	}
}

func TestRenderCommandErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"no input", []string{"render"}, errors.ErrCodeInvalidInput},
		{"unknown style", []string{"render", "hi", "--style", "wavy"}, errors.ErrCodeInvalidStyle},
		{"bad ratio", []string{"render", "hi", "--ratio", "1.5"}, errors.ErrCodeInvalidSizeRatio},
		{"bad color", []string{"render", "hi", "--front", "#12"}, errors.ErrCodeInvalidColor},
		{"bad format", []string{"render", "hi", "-f", "gif"}, errors.ErrCodeInvalidFormat},
		{"stdout with two formats", []string{"render", "hi", "-f", "svg,png", "-o", "-"}, errors.ErrCodeInvalidInput},
		{"canvas too large", []string{"render", "hi", "--box", "100", "--scale", "16", "-f", "png"}, errors.ErrCodeInvalidInput},
		{"missing matrix", []string{"render", "--matrix", "/nonexistent/grid.txt"}, errors.ErrCodeFileNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestCLI(t)
			err := execute(t, c, append(tt.args, "--no-cache")...)
			if !errors.Is(err, tt.code) {
				t.Errorf("render error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestStylesCommand(t *testing.T) {
	c, out := newTestCLI(t)
	if err := execute(t, c, "styles"); err != nil {
		t.Fatalf("styles error = %v", err)
	}
	for _, want := range []string{"square", "sharp-2-diamond", "some-heart", "22 styles"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("styles output missing %q", want)
		}
	}
}

func TestStylesVariants(t *testing.T) {
	c, out := newTestCLI(t)
	if err := execute(t, c, "styles", "--variants", "rounded"); err != nil {
		t.Fatalf("styles --variants error = %v", err)
	}
	for _, want := range []string{"NSEW", "....", "rounded", "top-left-corner", "alone", "base"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("variants output missing %q", want)
		}
	}

	c, _ = newTestCLI(t)
	if err := execute(t, c, "styles", "--variants", "wavy"); !errors.Is(err, errors.ErrCodeInvalidStyle) {
		t.Errorf("styles --variants wavy error = %v, want %s", err, errors.ErrCodeInvalidStyle)
	}
}

func TestCacheCommands(t *testing.T) {
	c, out := newTestCLI(t)
	path := filepath.Join(t.TempDir(), "code.svg")
	if err := execute(t, c, "render", "cache me", "-o", path); err != nil {
		t.Fatalf("render error = %v", err)
	}

	out.Reset()
	if err := execute(t, c, "cache", "path"); err != nil {
		t.Fatalf("cache path error = %v", err)
	}
	dir := strings.TrimSpace(out.String())
	if filepath.Base(dir) != appName {
		t.Errorf("cache path = %q, want a %s directory", dir, appName)
	}

	out.Reset()
	if err := execute(t, c, "cache", "clear"); err != nil {
		t.Fatalf("cache clear error = %v", err)
	}
	if !strings.Contains(out.String(), "Cleared") {
		t.Errorf("cache clear output = %q", out)
	}
}
