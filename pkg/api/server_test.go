package api

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/interlinear/pkg/errors"
	"github.com/matzehuels/interlinear/pkg/pipeline"
)

const document = `{
  "name": "session",
  "tiers": [
    {"name": "words", "annotations": [{"begin": 0, "end": 40, "value": "a<b"}]},
    {"name": "gloss", "annotations": [{"begin": 0, "end": 40, "value": "x"}]}
  ]
}`

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{})
	ts := httptest.NewServer(New(pipeline.NewRunner(nil, nil, logger), logger).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func post(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "ok" || body["version"] == "" {
		t.Errorf("body = %v", body)
	}
	if resp.Header.Get(RequestIDHeader) == "" {
		t.Error("missing request id header")
	}
}

func TestRender(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		format      string
		contentType string
		contains    string
	}{
		{"html", "text/html; charset=utf-8", "a&lt;b"},
		{"text", "text/plain; charset=utf-8", "words       |a<b"},
		{"json", "application/json", `"tier": "gloss"`},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			req := `{"document": ` + document + `, "options": {"time_unit": 10, "block_width": 20}}`
			resp := post(t, ts.URL+"/render?format="+tt.format, req)
			data, _ := io.ReadAll(resp.Body)

			if resp.StatusCode != http.StatusOK {
				t.Fatalf("status = %d: %s", resp.StatusCode, data)
			}
			if got := resp.Header.Get("Content-Type"); got != tt.contentType {
				t.Errorf("Content-Type = %q, want %q", got, tt.contentType)
			}
			if resp.Header.Get("X-Run-ID") == "" || resp.Header.Get("X-Cache") != "miss" {
				t.Errorf("run headers = %q, %q", resp.Header.Get("X-Run-ID"), resp.Header.Get("X-Cache"))
			}
			if !strings.Contains(string(data), tt.contains) {
				t.Errorf("body missing %q:\n%s", tt.contains, data)
			}
		})
	}
}

func TestRenderErrors(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name   string
		query  string
		body   string
		status int
		code   errors.Code
	}{
		{"malformed body", "", `{"document":`, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"unknown field", "", `{"doc": {}}`, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"missing document", "", `{"options": {}}`, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"bad format", "?format=pdf", `{"document": ` + document + `}`, http.StatusBadRequest, errors.ErrCodeInvalidFormat},
		{"invalid document", "", `{"document": {"tiers": [{"name": "a"}, {"name": "a"}]}}`, http.StatusUnprocessableEntity, errors.ErrCodeInvalidDocument},
		{"missing tier", "", `{"document": ` + document + `, "options": {"tiers": [{"name": "phones"}]}}`, http.StatusUnprocessableEntity, errors.ErrCodeTierNotFound},
		{"bad config", "", `{"document": ` + document + `, "options": {"left_margin": -1}}`, http.StatusBadRequest, errors.ErrCodeInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, ts.URL+"/render"+tt.query, tt.body)
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			var body errorBody
			if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
				t.Fatal(err)
			}
			if body.Error.Code != tt.code {
				t.Errorf("code = %s, want %s (%s)", body.Error.Code, tt.code, body.Error.Message)
			}
			if body.RequestID == "" || body.RequestID != resp.Header.Get(RequestIDHeader) {
				t.Errorf("request id %q does not match header %q", body.RequestID, resp.Header.Get(RequestIDHeader))
			}
		})
	}
}

func TestBlocks(t *testing.T) {
	ts := newTestServer(t)
	resp := post(t, ts.URL+"/blocks", `{"document": `+document+`, "options": {"time_unit": 10, "block_width": 2}}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var body struct {
		Document string `json:"document"`
		Blocks   []struct {
			Begin int64 `json:"begin"`
			End   int64 `json:"end"`
		} `json:"blocks"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Document != "session" || len(body.Blocks) != 2 || body.Blocks[1].Begin != 20 || body.Blocks[1].End != 40 {
		t.Errorf("body = %+v", body)
	}
}

func TestRequestIDKept(t *testing.T) {
	ts := newTestServer(t)
	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/healthz", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if got := resp.Header.Get(RequestIDHeader); got != "abc-123" {
		t.Errorf("request id = %q, want abc-123", got)
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{errors.New(errors.ErrCodeInvalidConfig, "x"), http.StatusBadRequest},
		{errors.New(errors.ErrCodeTierNotFound, "x"), http.StatusUnprocessableEntity},
		{errors.New(errors.ErrCodeNotFound, "x"), http.StatusNotFound},
		{errors.New(errors.ErrCodeUnsupported, "x"), http.StatusNotImplemented},
		{context.Canceled, http.StatusServiceUnavailable},
		{stderrors.New("plain"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := StatusFor(tt.err); got != tt.want {
			t.Errorf("StatusFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
