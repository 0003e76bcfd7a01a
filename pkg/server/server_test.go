package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/canvaslayout/pkg/cache"
	clerrors "github.com/matzehuels/canvaslayout/pkg/errors"
	"github.com/matzehuels/canvaslayout/pkg/pipeline"
	"github.com/matzehuels/canvaslayout/pkg/scene"
)

const sceneJSON = `{
  "name": "demo",
  "design_width": 100,
  "design_height": 100,
  "children": [
    {"id": "badge", "x": 30, "y": 30, "width": 50, "height": 50, "depth": 15},
    {"id": "base", "width": 50, "height": 50}
  ]
}`

func newTestServer(t *testing.T, c cache.Cache) http.Handler {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{})
	return New(pipeline.NewRunner(c, nil, logger), logger).Handler()
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	rec := do(t, newTestServer(t, nil), http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body HealthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Status != "ok" || body.Build.Version == "" {
		t.Errorf("health = %+v", body)
	}
	if _, err := uuid.Parse(rec.Header().Get(RequestIDHeader)); err != nil {
		t.Errorf("X-Request-ID = %q, want a uuid", rec.Header().Get(RequestIDHeader))
	}
}

func TestRequestIDIsEchoed(t *testing.T) {
	h := newTestServer(t, nil)
	id := uuid.NewString()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, id)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if got := rec.Header().Get(RequestIDHeader); got != id {
		t.Errorf("X-Request-ID = %q, want %q", got, id)
	}

	req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, "not a uuid\n")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if got := rec.Header().Get(RequestIDHeader); got == "not a uuid\n" || got == "" {
		t.Errorf("malformed request id should be replaced, got %q", got)
	}
}

func TestLayout(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	h := newTestServer(t, fc)
	body := `{"scene": ` + sceneJSON + `, "width": "exact:200", "height": "exact:100"}`

	rec := do(t, h, http.MethodPost, "/v1/layout", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	if rec.Header().Get("X-Cache") != "miss" {
		t.Errorf("X-Cache = %q, want miss", rec.Header().Get("X-Cache"))
	}

	res, err := scene.UnmarshalResult(rec.Body.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	if res.Size != (scene.Size{Width: 200, Height: 100}) {
		t.Errorf("Size = %+v", res.Size)
	}
	if len(res.Placements) != 2 || res.Placements[1].ID != "badge" || res.Placements[1].Left != 80 {
		t.Errorf("placements = %+v", res.Placements)
	}

	rec = do(t, h, http.MethodPost, "/v1/layout", body)
	if rec.Header().Get("X-Cache") != "hit" {
		t.Errorf("second X-Cache = %q, want hit", rec.Header().Get("X-Cache"))
	}
}

func TestBatch(t *testing.T) {
	h := newTestServer(t, nil)
	body := `{"scene": ` + sceneJSON + `, "sizes": [
		{"width": "200", "height": "100"},
		{"width": "auto", "height": "auto"}
	]}`

	rec := do(t, h, http.MethodPost, "/v1/layout/batch", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	var results []scene.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &results); err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("len(results) = %d, want 2", len(results))
	}
	if got := rec.Header().Get("X-Cache-Hits"); got != "0" {
		t.Errorf("X-Cache-Hits = %q, want 0", got)
	}
	if results[0].Size.Width != 200 || results[1].Size.Width != 100 {
		t.Errorf("sizes = %+v, %+v", results[0].Size, results[1].Size)
	}
}

func TestErrors(t *testing.T) {
	h := newTestServer(t, nil)
	tooMany := `{"scene": {}, "sizes": [` + strings.Repeat(`{},`, maxBatchSizes) + `{}]}`

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
		wantCode   clerrors.Code
	}{
		{"malformed json", http.MethodPost, "/v1/layout", `{`, http.StatusBadRequest, clerrors.ErrCodeInvalidFormat},
		{"unknown field", http.MethodPost, "/v1/layout", `{"scene": {}, "colour": 1}`, http.StatusBadRequest, clerrors.ErrCodeInvalidFormat},
		{"missing scene", http.MethodPost, "/v1/layout", `{"width": "10"}`, http.StatusBadRequest, clerrors.ErrCodeInvalidInput},
		{"bad constraint", http.MethodPost, "/v1/layout", `{"scene": {}, "width": "wide"}`, http.StatusBadRequest, clerrors.ErrCodeInvalidConstraint},
		{"negative design", http.MethodPost, "/v1/layout", `{"scene": {"design_width": -1}}`, http.StatusBadRequest, clerrors.ErrCodeInvalidConfiguration},
		{"duplicate child", http.MethodPost, "/v1/layout", `{"scene": {"children": [{"id": "a"}, {"id": "a"}]}}`, http.StatusBadRequest, clerrors.ErrCodeDuplicateChild},
		{"empty batch", http.MethodPost, "/v1/layout/batch", `{"scene": {}, "sizes": []}`, http.StatusBadRequest, clerrors.ErrCodeInvalidInput},
		{"batch too large", http.MethodPost, "/v1/layout/batch", tooMany, http.StatusBadRequest, clerrors.ErrCodeInvalidInput},
		{"unknown route", http.MethodGet, "/v2/nothing", "", http.StatusNotFound, clerrors.ErrCodeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, tt.method, tt.path, tt.body)
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body)
			}
			var er ErrorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &er); err != nil {
				t.Fatalf("decode error body: %v", err)
			}
			if er.Code != tt.wantCode {
				t.Errorf("code = %s, want %s", er.Code, tt.wantCode)
			}
			if er.Message == "" {
				t.Error("message should not be empty")
			}
		})
	}
}

func TestBodyLimit(t *testing.T) {
	h := newTestServer(t, nil)
	big := `{"scene": {"name": "` + strings.Repeat("x", maxBodyBytes) + `"}}`

	req := httptest.NewRequest(http.MethodPost, "/v1/layout", bytes.NewReader([]byte(big)))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, want 413", rec.Code)
	}
}

func TestListenAndServeStopsOnCancel(t *testing.T) {
	logger := log.NewWithOptions(io.Discard, log.Options{})
	srv := New(pipeline.NewRunner(nil, nil, logger), logger)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.ListenAndServe(ctx, "127.0.0.1:0") }()
	cancel()

	if err := <-done; err != nil {
		t.Errorf("ListenAndServe() error = %v, want nil after cancel", err)
	}
}
