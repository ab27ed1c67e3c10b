package server

import (
	"net/http"

	"github.com/jonathan/resume-shortlist/internal/types"
)

// handleCreateJob creates a job with a generated JOBID
func (s *Server) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	var req types.CreateJobRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.serviceError(w, r, err)
		return
	}

	job, err := s.svc.CreateJob(r.Context(), req)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, job)
}

// handleListJobs lists jobs with search and pagination
func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	req := types.ListJobsRequest{
		Query:    r.URL.Query().Get("query"),
		Page:     parseQueryInt(r, "page", 1),
		PageSize: parseQueryInt(r, "page_size", 10),
	}

	list, err := s.svc.ListJobs(r.Context(), req)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, list)
}

// handleGetJob retrieves a job by JOBID
func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	job, err := s.svc.GetJob(r.Context(), r.PathValue("job_id"))
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, job)
}

// handleUpdateJob updates the title or description of a job
func (s *Server) handleUpdateJob(w http.ResponseWriter, r *http.Request) {
	var req types.UpdateJobRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.serviceError(w, r, err)
		return
	}

	job, err := s.svc.UpdateJob(r.Context(), r.PathValue("job_id"), req)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, job)
}

// handleDeleteJob deletes a job and everything attached to it
func (s *Server) handleDeleteJob(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.DeleteJob(r.Context(), r.PathValue("job_id")); err != nil {
		s.serviceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleSubmitResume attaches resume text to a job
func (s *Server) handleSubmitResume(w http.ResponseWriter, r *http.Request) {
	var req types.SubmitResumeRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.serviceError(w, r, err)
		return
	}

	resume, err := s.svc.SubmitResume(r.Context(), r.PathValue("job_id"), req)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, resume)
}

// ListResumesResponse represents the response for listing the resumes of a job
type ListResumesResponse struct {
	JobID   string         `json:"job_id"`
	Resumes []types.Resume `json:"resumes"`
	Count   int            `json:"count"`
}

// handleListResumes lists the resumes submitted for a job
func (s *Server) handleListResumes(w http.ResponseWriter, r *http.Request) {
	jobID := r.PathValue("job_id")
	resumes, err := s.svc.ListResumes(r.Context(), jobID)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, ListResumesResponse{JobID: jobID, Resumes: resumes, Count: len(resumes)})
}

// handleGetResume retrieves a resume by ID
func (s *Server) handleGetResume(w http.ResponseWriter, r *http.Request) {
	id, err := parsePathUUID(r, "id")
	if err != nil {
		s.serviceError(w, r, err)
		return
	}

	resume, err := s.svc.GetResume(r.Context(), id)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, resume)
}

// handleDeleteResume deletes a resume and its evaluation
func (s *Server) handleDeleteResume(w http.ResponseWriter, r *http.Request) {
	id, err := parsePathUUID(r, "id")
	if err != nil {
		s.serviceError(w, r, err)
		return
	}

	if err := s.svc.DeleteResume(r.Context(), id); err != nil {
		s.serviceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
