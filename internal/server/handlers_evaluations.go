package server

import (
	"net/http"
)

// handleEvaluateResume evaluates one resume, returning the stored evaluation if
// one already exists
func (s *Server) handleEvaluateResume(w http.ResponseWriter, r *http.Request) {
	resumeID, err := parsePathUUID(r, "resume_id")
	if err != nil {
		s.serviceError(w, r, err)
		return
	}

	eval, err := s.svc.Evaluate(r.Context(), resumeID)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, eval)
}

// handleReEvaluateResume discards the evaluation of a resume and evaluates it again
func (s *Server) handleReEvaluateResume(w http.ResponseWriter, r *http.Request) {
	resumeID, err := parsePathUUID(r, "resume_id")
	if err != nil {
		s.serviceError(w, r, err)
		return
	}

	eval, err := s.svc.ReEvaluate(r.Context(), resumeID)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, eval)
}

// handleEvaluateAll evaluates every resume of a job
func (s *Server) handleEvaluateAll(w http.ResponseWriter, r *http.Request) {
	batch, err := s.svc.EvaluateAll(r.Context(), r.PathValue("job_id"))
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, batch)
}

// handleListEvaluations lists the evaluations of a job with filters and sorting
func (s *Server) handleListEvaluations(w http.ResponseWriter, r *http.Request) {
	filter, err := parseEvaluationFilter(r)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}

	list, err := s.svc.List(r.Context(), r.PathValue("job_id"), filter)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, list)
}

// handleSummary returns evaluation counts and averages for a job
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.svc.Summary(r.Context(), r.PathValue("job_id"))
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, summary)
}

// handleDeleteEvaluations deletes every evaluation of a job
func (s *Server) handleDeleteEvaluations(w http.ResponseWriter, r *http.Request) {
	jobID := r.PathValue("job_id")
	count, err := s.svc.DeleteByJob(r.Context(), jobID)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"job_id": jobID, "deleted": count})
}

// handleGetEvaluation retrieves an evaluation by ID
func (s *Server) handleGetEvaluation(w http.ResponseWriter, r *http.Request) {
	id, err := parsePathUUID(r, "id")
	if err != nil {
		s.serviceError(w, r, err)
		return
	}

	eval, err := s.svc.Get(r.Context(), id)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, eval)
}
