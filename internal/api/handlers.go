package api

import (
	"encoding/json"
	"net/http"

	"github.com/stitchline/stitchline/pkg/errors"
	"github.com/stitchline/stitchline/pkg/floorplan"
	"github.com/stitchline/stitchline/pkg/pipeline"
	"github.com/stitchline/stitchline/pkg/plan"
)

// planRequest is the request body for POST /api/v1/plans and /api/v1/flow.
// Bulletin content is inline; the API never reads server-side paths.
type planRequest struct {
	Bulletin       string  `json:"bulletin"`
	BulletinFormat string  `json:"bulletin_format,omitempty"`
	Style          string  `json:"style,omitempty"`
	TargetPerDay   int     `json:"target_per_day,omitempty"`
	WorkingMinutes float64 `json:"working_minutes,omitempty"`
	Format         string  `json:"format,omitempty"` // flow only: dot, svg, png
	Detailed       bool    `json:"detailed,omitempty"`
	Refresh        bool    `json:"refresh,omitempty"`
}

// planResponse is the response body for POST /api/v1/plans.
type planResponse struct {
	Plan     floorplan.Plan    `json:"plan"`
	PlanHash string            `json:"plan_hash"`
	Summary  floorplan.Summary `json:"summary"`
	Stats    statsResponse     `json:"stats"`
}

type statsResponse struct {
	Operations  int    `json:"operations"`
	Machines    int    `json:"machines"`
	Fixtures    int    `json:"fixtures"`
	BalanceTime string `json:"balance_time"`
	PlaceTime   string `json:"place_time"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (req *planRequest) options() pipeline.Options {
	format := req.BulletinFormat
	if format == "" {
		format = plan.FormatJSON
	}
	return pipeline.Options{
		Bulletin:       req.Bulletin,
		BulletinFormat: format,
		Style:          req.Style,
		TargetPerDay:   req.TargetPerDay,
		WorkingMinutes: req.WorkingMinutes,
		Detailed:       req.Detailed,
		Refresh:        req.Refresh,
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handlePlans runs balance + place and returns the floor plan.
func (s *Server) handlePlans(w http.ResponseWriter, r *http.Request) {
	var req planRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body"))
		return
	}
	if req.Bulletin == "" {
		s.writeError(w, errors.New(errors.ErrCodeInvalidInput, "bulletin is required"))
		return
	}

	opts := req.options()
	opts.Formats = []string{pipeline.FormatJSON}
	opts.Logger = s.logger

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, planResponse{
		Plan:     result.Plan,
		PlanHash: result.PlanHash,
		Summary:  result.Plan.Summarize(),
		Stats: statsResponse{
			Operations:  result.Stats.OperationCount,
			Machines:    result.Stats.MachineCount,
			Fixtures:    result.Stats.FixtureCount,
			BalanceTime: result.Stats.BalanceTime.String(),
			PlaceTime:   result.Stats.PlaceTime.String(),
		},
	})
}

// handleFlow renders the line-flow diagram in the requested format.
func (s *Server) handleFlow(w http.ResponseWriter, r *http.Request) {
	var req planRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body"))
		return
	}
	if req.Bulletin == "" {
		s.writeError(w, errors.New(errors.ErrCodeInvalidInput, "bulletin is required"))
		return
	}
	format := req.Format
	if format == "" {
		format = pipeline.FormatSVG
	}
	if format == pipeline.FormatJSON || pipeline.ValidateFormat(format) != nil {
		s.writeError(w, errors.New(errors.ErrCodeInvalidInput, "invalid flow format %q (must be one of: dot, svg, png)", format))
		return
	}

	opts := req.options()
	opts.Formats = []string{format}
	opts.Logger = s.logger

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", contentType(format))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[format])
}

func contentType(format string) string {
	switch format {
	case pipeline.FormatSVG:
		return "image/svg+xml"
	case pipeline.FormatPNG:
		return "image/png"
	default:
		return "text/vnd.graphviz"
	}
}

// writeError maps structured error codes to HTTP status codes.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	code := errors.GetCode(err)
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidDemand, errors.ErrCodeMalformedOp,
		errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidGeometry, errors.ErrCodeInvalidPath,
		errors.ErrCodeInvalidPlan:
		status = http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		status = http.StatusNotFound
	case errors.ErrCodeUnsupported:
		status = http.StatusUnprocessableEntity
	case "":
		code = errors.ErrCodeInternal
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "code", code, "err", err)
	}

	writeJSON(w, status, errorResponse{Error: errorBody{
		Code:    string(code),
		Message: errors.UserMessage(err),
	}})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
