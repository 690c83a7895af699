package server

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/kievzenit/l25/internal/config"
)

func newTestServer(t *testing.T, mutate func(*config.Config)) (*httptest.Server, *bytes.Buffer) {
	t.Helper()
	cfg := config.Default()
	if mutate != nil {
		mutate(cfg)
	}

	var logs bytes.Buffer
	s, err := New(cfg, log.New(&logs, "l25: ", 0))
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts, &logs
}

func postJSON(t *testing.T, url string, body any, out any) int {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp.StatusCode
}

func TestCompile(t *testing.T) {
	ts, logs := newTestServer(t, nil)

	tests := []struct {
		name   string
		req    compileRequest
		output string
		errMsg string
	}{
		{
			name:   "Output And Input",
			req:    compileRequest{Code: `program p { main { let n; input(n); output(n + 1); } }`, Input: "41\n"},
			output: "42\n",
		},
		{
			name:   "Caught Division",
			req:    compileRequest{Code: `program p { main { try { output(1 / 0); } catch { output(99); }; } }`},
			output: "Error: Division by zero detected. Jumping to catch block.\n99\n",
		},
		{
			name:   "Syntax Error",
			req:    compileRequest{Code: `program p { main { output(1) } }`},
			errMsg: "SyntaxError",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var resp compileResponse
			if status := postJSON(t, ts.URL+"/compile", tt.req, &resp); status != http.StatusOK {
				t.Fatalf("want 200, got %d", status)
			}
			if resp.Output != tt.output {
				t.Fatalf("want output %q, got %q", tt.output, resp.Output)
			}
			if tt.errMsg == "" && resp.Error != "" {
				t.Fatalf("unexpected error %q", resp.Error)
			}
			if !strings.Contains(resp.Error, tt.errMsg) {
				t.Fatalf("want error containing %q, got %q", tt.errMsg, resp.Error)
			}
		})
	}

	// Close waits for in-flight handlers, so every request line is logged.
	ts.Close()
	if !strings.Contains(logs.String(), "l25: POST /compile 200") {
		t.Fatalf("request was not logged:\n%s", logs.String())
	}
}

func TestCompileTimeout(t *testing.T) {
	ts, _ := newTestServer(t, func(cfg *config.Config) {
		cfg.Server.RunTimeout = 20 * time.Millisecond
	})

	var resp compileResponse
	postJSON(t, ts.URL+"/compile", compileRequest{
		Code: `program p { main { let i = 0; while (0 == 0) { i = i + 1; }; } }`,
	}, &resp)

	if resp.Error != "execution timed out" {
		t.Fatalf("want timeout error, got %q", resp.Error)
	}
}

func TestBadRequests(t *testing.T) {
	ts, _ := newTestServer(t, func(cfg *config.Config) {
		cfg.Server.MaxBodyBytes = 64
	})

	resp, err := http.Post(ts.URL+"/compile", "application/json", strings.NewReader("{not json"))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("want 400 for malformed JSON, got %d", resp.StatusCode)
	}

	big, _ := json.Marshal(compileRequest{Code: strings.Repeat("x", 200)})
	resp, err = http.Post(ts.URL+"/compile", "application/json", bytes.NewReader(big))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusRequestEntityTooLarge {
		t.Fatalf("want 413 for an oversized body, got %d", resp.StatusCode)
	}

	resp, err = http.Get(ts.URL + "/compile")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Fatalf("want 405 for GET /compile, got %d", resp.StatusCode)
	}
}

func TestVisualizeAndCheck(t *testing.T) {
	ts, _ := newTestServer(t, nil)
	code := `program p { main { output(missing); } }`

	var vis visualizeResponse
	postJSON(t, ts.URL+"/visualize", compileRequest{Code: code}, &vis)
	if vis.Error != "" || !strings.HasPrefix(vis.Diagram, "graph TD") {
		t.Fatalf("unexpected visualize response: %+v", vis)
	}

	var check checkResponse
	postJSON(t, ts.URL+"/check", compileRequest{Code: code}, &check)
	if check.Error != "" || len(check.Issues) != 1 || !strings.Contains(check.Issues[0], "variable missing not defined") {
		t.Fatalf("unexpected check response: %+v", check)
	}

	postJSON(t, ts.URL+"/visualize", compileRequest{Code: "program"}, &vis)
	if !strings.Contains(vis.Error, "SyntaxError") {
		t.Fatalf("want syntax error, got %+v", vis)
	}
}

func TestExamplesRunCleanly(t *testing.T) {
	ts, _ := newTestServer(t, nil)

	resp, err := http.Get(ts.URL + "/examples")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	var examples map[string]string
	if err := json.Unmarshal(body, &examples); err != nil {
		t.Fatalf("decode examples: %v", err)
	}

	for _, name := range []string{"basic", "factorial", "full", "try_catch"} {
		source, ok := examples[name]
		if !ok {
			t.Fatalf("missing example %s", name)
		}

		var out compileResponse
		postJSON(t, ts.URL+"/compile", compileRequest{Code: source, Input: "5"}, &out)
		if out.Error != "" {
			t.Fatalf("example %s failed: %s", name, out.Error)
		}
	}
}

func TestHealthz(t *testing.T) {
	ts, _ := newTestServer(t, nil)

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("want 200, got %d", resp.StatusCode)
	}
}
