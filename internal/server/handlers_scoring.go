package server

import (
	"encoding/json"
	"net/http"

	"github.com/jonathan/resume-shortlist/internal/evaluation"
	"github.com/jonathan/resume-shortlist/internal/ranking"
	"github.com/jonathan/resume-shortlist/internal/schemas"
	"github.com/jonathan/resume-shortlist/internal/types"
)

// ScoreResponse is the breakdown computed for one candidate/job pair
type ScoreResponse struct {
	Breakdown types.RankingBreakdown `json:"ranking_breakdown"`
	Notes     string                 `json:"notes"`
}

// RankResponse is an ordered list of entries
type RankResponse struct {
	Entries   []types.RankedEntry `json:"entries"`
	SortBy    types.SortField     `json:"sort_by"`
	SortOrder types.SortOrder     `json:"sort_order"`
}

// handleScore computes a ranking breakdown without touching storage
func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}

	var raw struct {
		Profile json.RawMessage `json:"profile"`
	}
	var req types.ScoreRequest
	if err := json.Unmarshal(body, &raw); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(raw.Profile) == 0 {
		s.errorResponse(w, http.StatusBadRequest, "profile is required")
		return
	}
	if err := schemas.Validate(schemas.CandidateProfile, raw.Profile); err != nil {
		s.serviceError(w, r, err)
		return
	}
	if err := json.Unmarshal(body, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "baseline_score must be between 0 and 100")
		return
	}

	breakdown := ranking.ComputeBreakdown(&req.Profile, req.Job, req.ResumeText, req.BaselineScore)
	s.jsonResponse(w, http.StatusOK, ScoreResponse{Breakdown: breakdown, Notes: ranking.Notes(breakdown)})
}

// handleRank orders already-scored entries
func (s *Server) handleRank(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}

	var raw struct {
		Entries json.RawMessage `json:"entries"`
	}
	var req types.RankRequest
	if err := json.Unmarshal(body, &raw); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(raw.Entries) == 0 {
		s.errorResponse(w, http.StatusBadRequest, "entries is required")
		return
	}
	if err := schemas.Validate(schemas.RankedEntries, raw.Entries); err != nil {
		s.serviceError(w, r, err)
		return
	}
	if err := json.Unmarshal(body, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.serviceError(w, r, &evaluation.ValidationError{Field: "sort", Message: err.Error()})
		return
	}

	if req.SortBy == "" {
		req.SortBy = types.SortByMatchScore
	}
	if req.SortOrder == "" {
		req.SortOrder = types.SortDesc
	}
	entries := ranking.SortEntries(req.Entries, req.SortBy, req.SortOrder)
	s.jsonResponse(w, http.StatusOK, RankResponse{Entries: entries, SortBy: req.SortBy, SortOrder: req.SortOrder})
}
