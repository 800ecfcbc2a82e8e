package server

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/jonathan/permit-engine/internal/types"
)

// maxRequestBody bounds JSON request bodies at 1 MiB
const maxRequestBody = 1 << 20

// analyzeLocationRequest is the request body for POST /v1/location/analyze
type analyzeLocationRequest struct {
	Street string `json:"street"`
	City   string `json:"city"`
	State  string `json:"state"`
	Zip    string `json:"zip"`
}

// calculateLoadRequest is the request body for POST /v1/loads/calculate
type calculateLoadRequest struct {
	Building types.BuildingInput     `json:"building"`
	Variant  types.CalculatorVariant `json:"variant,omitempty"`
}

// determineRequest is the request body for POST /v1/determinations
type determineRequest struct {
	Job      types.PermitJobRequest `json:"job"`
	Building *types.BuildingInput   `json:"building,omitempty"`
}

// decodeJSON decodes the request body into dst, rejecting unknown fields
// and oversized bodies.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}
	return true
}

// handleAnalyzeLocation handles POST /v1/location/analyze
func (s *Server) handleAnalyzeLocation(w http.ResponseWriter, r *http.Request) {
	var req analyzeLocationRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if req.Street == "" {
		s.errorResponse(w, http.StatusBadRequest, "street is required")
		return
	}

	analysis := s.engine.AnalyzeLocation(r.Context(), req.Street, req.City, req.State, req.Zip)
	s.jsonResponse(w, http.StatusOK, analysis)
}

// handleClassifyPermit handles POST /v1/permits/classify
func (s *Server) handleClassifyPermit(w http.ResponseWriter, r *http.Request) {
	var req types.PermitJobRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := s.engine.ClassifyPermit(r.Context(), &req)
	if err != nil {
		s.logger.Error("classification failed", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "classification failed")
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}

// handleCalculateLoad handles POST /v1/loads/calculate
func (s *Server) handleCalculateLoad(w http.ResponseWriter, r *http.Request) {
	var req calculateLoadRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if req.Variant == "" {
		req.Variant = types.CalculatorSimplified
	}
	if req.Variant != types.CalculatorSimplified && req.Variant != types.CalculatorManualJ {
		s.errorResponse(w, http.StatusBadRequest, "unknown calculator variant: "+string(req.Variant))
		return
	}
	if err := req.Building.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := s.engine.CalculateLoad(&req.Building, req.Variant)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}

// handleDetermine handles POST /v1/determinations
func (s *Server) handleDetermine(w http.ResponseWriter, r *http.Request) {
	var req determineRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if err := req.Job.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Building != nil {
		if err := req.Building.Validate(); err != nil {
			s.errorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	decision, err := s.engine.Determine(r.Context(), &req.Job, req.Building)
	if err != nil {
		s.logger.Error("determination failed", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "determination failed")
		return
	}
	s.jsonResponse(w, http.StatusCreated, decision)
}
