package server

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/matzehuels/repograph/pkg/build"
	"github.com/matzehuels/repograph/pkg/buildinfo"
	"github.com/matzehuels/repograph/pkg/errors"
	"github.com/matzehuels/repograph/pkg/graph"
	"github.com/matzehuels/repograph/pkg/layout"
	"github.com/matzehuels/repograph/pkg/pipeline"
)

type codeRequest struct {
	Files   []graph.SourceRecord `json:"files"`
	Options json.RawMessage      `json:"options,omitempty"`
	Layout  bool                 `json:"layout"`
	Config  json.RawMessage      `json:"config,omitempty"`
}

type contributorsRequest struct {
	// PullRequests is a PR array or a GraphQL response envelope.
	PullRequests json.RawMessage `json:"pullRequests"`
	Layout       bool            `json:"layout"`
	Config       json.RawMessage `json:"config,omitempty"`
}

type layoutRequest struct {
	Graph  *graph.Graph    `json:"graph"`
	Config json.RawMessage `json:"config,omitempty"`
}

type renderRequest struct {
	Layout   *layout.Result `json:"layout"`
	Format   string         `json:"format"`
	Detailed bool           `json:"detailed"`
	Scale    float64        `json:"scale,omitempty"`
}

type graphResponse struct {
	Graph  graph.Graph    `json:"graph"`
	Layout *layout.Result `json:"layout,omitempty"`
	Cached bool           `json:"cached"`
}

type layoutResponse struct {
	Layout layout.Result `json:"layout"`
	Cached bool          `json:"cached"`
}

var contentTypes = map[string]string{
	pipeline.FormatJSON: "application/json",
	pipeline.FormatDOT:  "text/vnd.graphviz; charset=utf-8",
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := map[string]string{
		"status":  "ok",
		"version": buildinfo.Short(),
		"cache":   s.runner.Cache.Name(),
	}
	status := http.StatusOK
	if p, ok := s.runner.Cache.(Pinger); ok {
		if err := p.Ping(r.Context()); err != nil {
			s.opts.Logger.Warn("cache ping failed", "err", err)
			resp["status"] = "degraded"
			status = http.StatusServiceUnavailable
		}
	}
	writeJSON(w, status, resp)
}

func (s *Server) handleCode(w http.ResponseWriter, r *http.Request) {
	var req codeRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	for _, f := range req.Files {
		if f.Path == "" {
			continue
		}
		if err := errors.ValidateSourcePath(f.Path); err != nil {
			s.writeError(w, r, err)
			return
		}
	}

	opts, err := s.codeOptions(req.Options)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	cfg, err := s.layoutConfig(req.Config)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	g, hit, err := s.runner.BuildCode(r.Context(), req.Files, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.respondGraph(w, r, g, hit, req.Layout, cfg)
}

func (s *Server) handleContributors(w http.ResponseWriter, r *http.Request) {
	var req contributorsRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if len(req.PullRequests) == 0 {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "pullRequests is required"))
		return
	}
	prs, err := build.DecodePullRequests(bytes.NewReader(req.PullRequests))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	cfg, err := s.layoutConfig(req.Config)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	g, hit, err := s.runner.BuildContributors(r.Context(), prs)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.respondGraph(w, r, g, hit, req.Layout, cfg)
}

func (s *Server) respondGraph(w http.ResponseWriter, r *http.Request, g graph.Graph, hit, withLayout bool, cfg layout.Config) {
	resp := graphResponse{Graph: g, Cached: hit}
	if withLayout {
		res, layoutHit, err := s.runner.Layout(r.Context(), g, cfg)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		resp.Layout = &res
		resp.Cached = hit && layoutHit
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	var req layoutRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.Graph == nil {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "graph is required"))
		return
	}
	cfg, err := s.layoutConfig(req.Config)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	res, hit, err := s.runner.Layout(r.Context(), *req.Graph, cfg)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, layoutResponse{Layout: res, Cached: hit})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var req renderRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.Layout == nil {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "layout is required"))
		return
	}
	if req.Format == "" {
		req.Format = pipeline.FormatSVG
	}

	data, hit, err := s.runner.Render(r.Context(), *req.Layout, pipeline.RenderOptions{
		Format:   req.Format,
		Detailed: req.Detailed,
		Scale:    req.Scale,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", contentTypes[req.Format])
	if hit {
		w.Header().Set("X-Cache", "HIT")
	} else {
		w.Header().Set("X-Cache", "MISS")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// codeOptions overlays a request's options on the server defaults. Workers
// stays at the server's setting.
func (s *Server) codeOptions(raw json.RawMessage) (build.CodeOptions, error) {
	opts := s.opts.Code
	if err := overlay(raw, &opts, "options"); err != nil {
		return build.CodeOptions{}, err
	}
	opts.Workers = s.opts.Code.Workers
	return opts, nil
}

// layoutConfig overlays a request's partial config on the server defaults.
func (s *Server) layoutConfig(raw json.RawMessage) (layout.Config, error) {
	cfg := s.opts.Layout
	if err := overlay(raw, &cfg, "config"); err != nil {
		return layout.Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return layout.Config{}, err
	}
	return cfg, nil
}

// overlay decodes raw onto dst, keeping fields raw does not set.
func overlay(raw json.RawMessage, dst any, field string) error {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		if errors.GetCode(err) != "" {
			return err
		}
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode %s", field)
	}
	return nil
}
