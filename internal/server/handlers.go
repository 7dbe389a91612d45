package server

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/laneflow/laneflow/pkg/buildinfo"
	errs "github.com/laneflow/laneflow/pkg/errors"
	"github.com/laneflow/laneflow/pkg/process"
	"github.com/laneflow/laneflow/pkg/store"
)

// validation mirrors process.Validate results with an explicit flag so
// clients don't have to test array lengths.
type validation struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func newValidation(r process.Result) validation {
	v := validation{Valid: r.Valid(), Errors: r.Errors, Warnings: r.Warnings}
	if v.Errors == nil {
		v.Errors = []string{}
	}
	if v.Warnings == nil {
		v.Warnings = []string{}
	}
	return v
}

type processResponse struct {
	*store.ProcessRecord
	Validation validation `json:"validation"`
}

type extractRequest struct {
	Markdown    string  `json:"markdown"`
	Model       string  `json:"model,omitempty"`
	MaxTokens   int     `json:"max_tokens,omitempty"`
	Temperature float64 `json:"temperature,omitempty"`
	Refresh     bool    `json:"refresh,omitempty"`
}

type extractResponse struct {
	*store.ProcessRecord
	Validation validation `json:"validation"`
	CacheHit   bool       `json:"cache_hit"`
}

type layoutRequest struct {
	SpacingX   float64 `json:"spacing_x,omitempty"`
	SpacingY   float64 `json:"spacing_y,omitempty"`
	LaneHeight float64 `json:"lane_height,omitempty"`
}

type layoutResponse struct {
	*store.DiagramRecord
	CacheHit bool `json:"cache_hit"`
}

type publishRequest struct {
	BoardName string `json:"board_name,omitempty"`
}

type publishResponse struct {
	BoardID           string `json:"board_id"`
	BoardURL          string `json:"board_url"`
	ConnectorsCreated int    `json:"connectors_created"`
	ConnectorsFailed  int    `json:"connectors_failed"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":      true,
		"service": "laneflow",
		"version": buildinfo.Version,
	})
}

// handleExtract turns a markdown document into a stored process.
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	var req extractRequest
	if err := decodeJSON(r, w, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if strings.TrimSpace(req.Markdown) == "" {
		s.writeError(w, r, errs.New(errs.ErrCodeInvalidInput, "markdown is required"))
		return
	}

	opts := s.baseOptions()
	opts.Markdown = req.Markdown
	opts.Refresh = req.Refresh
	if req.Model != "" {
		opts.Model = req.Model
	}
	if req.MaxTokens > 0 {
		opts.MaxTokens = req.MaxTokens
	}
	if req.Temperature > 0 {
		opts.Temperature = req.Temperature
	}

	res, hit, err := s.runner.ExtractWithCacheInfo(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, coded(err, errs.ErrCodeExtraction, "extract process"))
		return
	}

	rec := store.NewProcessRecord(res.Process)
	if err := s.store.SaveProcess(r.Context(), rec); err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, extractResponse{
		ProcessRecord: rec,
		Validation:    newValidation(process.Validate(res.Process)),
		CacheHit:      hit,
	})
}

// handleCreateProcess stores a structured process document as-is. The
// response carries validation findings, but findings don't block the
// save: layout tolerates imperfect graphs and authors fix them
// iteratively.
func (s *Server) handleCreateProcess(w http.ResponseWriter, r *http.Request) {
	p, err := process.ReadJSON(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.writeError(w, r, errs.Wrap(errs.ErrCodeInvalidProcess, err, "parse process document"))
		return
	}

	rec := store.NewProcessRecord(p)
	if err := s.store.SaveProcess(r.Context(), rec); err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, processResponse{
		ProcessRecord: rec,
		Validation:    newValidation(process.Validate(p)),
	})
}

func (s *Server) handleListProcesses(w http.ResponseWriter, r *http.Request) {
	recs, err := s.store.ListProcesses(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if recs == nil {
		recs = []*store.ProcessRecord{}
	}
	writeJSON(w, http.StatusOK, recs)
}

func (s *Server) handleGetProcess(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.GetProcess(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleValidateProcess(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.GetProcess(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newValidation(process.Validate(rec.Process)))
}

// handleLayoutProcess lays out a stored process and stores the
// positioned diagram under its own id.
func (s *Server) handleLayoutProcess(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.GetProcess(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var req layoutRequest
	if err := decodeJSON(r, w, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	opts := s.baseOptions()
	if req.SpacingX > 0 {
		opts.SpacingX = req.SpacingX
	}
	if req.SpacingY > 0 {
		opts.SpacingY = req.SpacingY
	}
	if req.LaneHeight > 0 {
		opts.LaneHeight = req.LaneHeight
	}

	d, hit, err := s.runner.ComputeLayoutWithCacheInfo(r.Context(), rec.Process, opts)
	if err != nil {
		s.writeError(w, r, coded(err, errs.ErrCodeLayout, "compute layout"))
		return
	}

	drec := store.NewDiagramRecord(rec.ID, &d)
	if err := s.store.SaveDiagram(r.Context(), drec); err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, layoutResponse{
		DiagramRecord: drec,
		CacheHit:      hit,
	})
}

func (s *Server) handleGetDiagram(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.GetDiagram(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// handlePublishDiagram redraws a stored diagram on a new Miro board.
func (s *Server) handlePublishDiagram(w http.ResponseWriter, r *http.Request) {
	if s.publisher == nil {
		s.writeError(w, r, errs.New(errs.ErrCodeInvalidConfig, "miro is not configured: set MIRO_TOKEN"))
		return
	}

	rec, err := s.store.GetDiagram(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var req publishRequest
	if err := decodeJSON(r, w, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	up, err := s.publisher.Upload(r.Context(), rec.Diagram, req.BoardName)
	if err != nil {
		s.writeError(w, r, coded(err, errs.ErrCodePublish, "publish diagram"))
		return
	}

	writeJSON(w, http.StatusOK, publishResponse{
		BoardID:           up.BoardID,
		BoardURL:          up.BoardURL,
		ConnectorsCreated: up.ConnectorsCreated,
		ConnectorsFailed:  up.ConnectorsFailed,
	})
}
