package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/matzehuels/canvaslayout/pkg/buildinfo"
	clerrors "github.com/matzehuels/canvaslayout/pkg/errors"
	"github.com/matzehuels/canvaslayout/pkg/pipeline"
	"github.com/matzehuels/canvaslayout/pkg/scene"
)

// LayoutRequest is the body of POST /v1/layout.
type LayoutRequest struct {
	Scene   *scene.Scene `json:"scene"`
	Width   string       `json:"width,omitempty"`
	Height  string       `json:"height,omitempty"`
	Refresh bool         `json:"refresh,omitempty"`
}

// BatchRequest is the body of POST /v1/layout/batch.
type BatchRequest struct {
	Scene *scene.Scene `json:"scene"`
	Sizes []Size       `json:"sizes"`
}

// Size is one pair of constraint strings in a batch.
type Size struct {
	Width  string `json:"width,omitempty"`
	Height string `json:"height,omitempty"`
}

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Code    clerrors.Code `json:"code"`
	Message string        `json:"message"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Build: buildinfo.Get()})
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	var req LayoutRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Scene == nil {
		writeError(w, clerrors.New(clerrors.ErrCodeInvalidInput, "scene is required"))
		return
	}

	res, hit, err := s.runner.Run(r.Context(), req.Scene, pipeline.Options{
		Width:   req.Width,
		Height:  req.Height,
		Refresh: req.Refresh,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	if hit {
		w.Header().Set("X-Cache", "hit")
	} else {
		w.Header().Set("X-Cache", "miss")
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleBatch(w http.ResponseWriter, r *http.Request) {
	var req BatchRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	switch {
	case req.Scene == nil:
		writeError(w, clerrors.New(clerrors.ErrCodeInvalidInput, "scene is required"))
		return
	case len(req.Sizes) == 0:
		writeError(w, clerrors.New(clerrors.ErrCodeInvalidInput, "sizes must not be empty"))
		return
	case len(req.Sizes) > maxBatchSizes:
		writeError(w, clerrors.New(clerrors.ErrCodeInvalidInput, "at most %d sizes per batch, got %d", maxBatchSizes, len(req.Sizes)))
		return
	}

	opts := make([]pipeline.Options, len(req.Sizes))
	for i, sz := range req.Sizes {
		opts[i] = pipeline.Options{Width: sz.Width, Height: sz.Height}
	}
	results, hits, err := s.runner.RunMany(r.Context(), req.Scene, opts)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("X-Cache-Hits", strconv.Itoa(countHits(hits)))
	writeJSON(w, http.StatusOK, results)
}

func countHits(hits []bool) int {
	n := 0
	for _, h := range hits {
		if h {
			n++
		}
	}
	return n
}

func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return errTooLarge(tooLarge.Limit)
		}
		return clerrors.Wrap(clerrors.ErrCodeInvalidFormat, err, "decode request body")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
