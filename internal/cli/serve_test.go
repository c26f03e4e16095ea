package cli

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/qrsvg/pkg/pipeline"
	"github.com/matzehuels/qrsvg/pkg/render/qr/styles"
)

func newTestServer(t *testing.T, defaults RenderConfig) *httptest.Server {
	t.Helper()
	s := &server{
		runner:   pipeline.NewRunner(nil, nil, log.New(io.Discard)),
		logger:   log.New(io.Discard),
		timeout:  10 * time.Second,
		defaults: defaults,
	}
	ts := httptest.NewServer(s.routes())
	t.Cleanup(ts.Close)
	return ts
}

func get(t *testing.T, url string) (*http.Response, string) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp, string(body)
}

func TestServeHealthz(t *testing.T) {
	ts := newTestServer(t, RenderConfig{})
	resp, body := get(t, ts.URL+"/healthz")
	if resp.StatusCode != http.StatusOK || body != "ok\n" {
		t.Errorf("GET /healthz = %d %q, want 200 ok", resp.StatusCode, body)
	}
}

func TestServeStyles(t *testing.T) {
	ts := newTestServer(t, RenderConfig{})
	resp, body := get(t, ts.URL+"/styles")

	var got []styleInfo
	if err := json.Unmarshal([]byte(body), &got); err != nil {
		t.Fatalf("decode /styles: %v", err)
	}
	if len(got) != len(styles.All) {
		t.Errorf("GET /styles returned %d styles, want %d", len(got), len(styles.All))
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}
}

func TestServeRender(t *testing.T) {
	ts := newTestServer(t, RenderConfig{})

	tests := []struct {
		name        string
		query       string
		contentType string
		contains    string
	}{
		{"svg", "/qr.svg?text=hello", "image/svg+xml", "<svg "},
		{"svg circle", "/qr.svg?text=hello&style=circle&ratio=0.8", "image/svg+xml", "<circle "},
		{"svg path mode", "/qr.svg?text=hello&path=true&fill=%23112233", "image/svg+xml", `fill="#112233"`},
		{"json", "/qr.json?text=hello&style=diamond", "application/json", `"style": "diamond"`},
		{"png", "/qr.png?text=hello&scale=2", "image/png", "\x89PNG"},
		{"seeded random", "/qr.svg?text=hello&style=random-square&seed=3", "image/svg+xml", "<polygon "},
		{"pixel units", "/qr.svg?text=hello&px=1&border=0", "image/svg+xml", `width="210" height="210"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := get(t, ts.URL+tt.query)
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("status = %d, want 200: %s", resp.StatusCode, body)
			}
			if ct := resp.Header.Get("Content-Type"); ct != tt.contentType {
				t.Errorf("Content-Type = %q, want %q", ct, tt.contentType)
			}
			if !strings.Contains(body, tt.contains) {
				t.Errorf("body does not contain %q", tt.contains)
			}
			if resp.Header.Get("X-Request-ID") == "" {
				t.Error("X-Request-ID header missing")
			}
			if resp.Header.Get("X-Grid-Hash") == "" {
				t.Error("X-Grid-Hash header missing")
			}
		})
	}
}

func TestServeErrors(t *testing.T) {
	ts := newTestServer(t, RenderConfig{})

	tests := []struct {
		query string
		code  string
	}{
		{"/qr.svg", "INVALID_INPUT"},
		{"/qr.gif?text=hi", "INVALID_FORMAT"},
		{"/qr.svg?text=hi&style=wavy", "INVALID_STYLE"},
		{"/qr.svg?text=hi&ratio=2", "INVALID_SIZE_RATIO"},
		{"/qr.svg?text=hi&level=Z", "INVALID_LEVEL"},
		{"/qr.svg?text=hi&border=wide", "INVALID_INPUT"},
		{"/qr.svg?text=hi&seed=-1", "INVALID_INPUT"},
		{"/qr.svg?text=hi&front=%22%3E", "INVALID_COLOR"},
		{"/qr.svg?text=hi&px=maybe", "INVALID_INPUT"},
		{"/qr.png?text=a&box=100&scale=16", "INVALID_INPUT"},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			resp, body := get(t, ts.URL+tt.query)
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", resp.StatusCode)
			}
			var e errorBody
			if err := json.Unmarshal([]byte(body), &e); err != nil {
				t.Fatalf("decode error body: %v (%s)", err, body)
			}
			if e.Code != tt.code {
				t.Errorf("code = %q, want %q", e.Code, tt.code)
			}
		})
	}
}

func TestServeRequestIDEcho(t *testing.T) {
	ts := newTestServer(t, RenderConfig{})
	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/healthz", nil)
	req.Header.Set("X-Request-ID", "abc-123")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if got := resp.Header.Get("X-Request-ID"); got != "abc-123" {
		t.Errorf("X-Request-ID = %q, want %q", got, "abc-123")
	}
}

func TestServePost(t *testing.T) {
	border := 0
	ts := newTestServer(t, RenderConfig{Style: "circle", Border: &border})

	body := `{"text": "hello", "formats": ["json"]}`
	resp, err := http.Post(ts.URL+"/qr", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var doc struct {
		Style string `json:"style"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		t.Fatal(err)
	}
	if doc.Style != "circle" {
		t.Errorf("style = %q, want configured default %q", doc.Style, "circle")
	}
	if border != 0 {
		t.Errorf("request mutated the configured border to %d", border)
	}
}

func TestServePostErrors(t *testing.T) {
	ts := newTestServer(t, RenderConfig{})

	tests := []struct {
		name string
		body string
	}{
		{"malformed", `{"text": `},
		{"unknown field", `{"text": "hi", "colour": "red"}`},
		{"two formats", `{"text": "hi", "formats": ["svg", "png"]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Post(ts.URL+"/qr", "application/json", strings.NewReader(tt.body))
			if err != nil {
				t.Fatal(err)
			}
			resp.Body.Close()
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", resp.StatusCode)
			}
		})
	}
}
