package evaluation

import (
	"context"

	"github.com/google/uuid"
	"github.com/jonathan/resume-shortlist/internal/db"
	"github.com/jonathan/resume-shortlist/internal/ingestion"
	"github.com/jonathan/resume-shortlist/internal/types"
	"go.uber.org/zap"
)

// CreateJob validates and stores a new job under a generated JOBID.
func (s *Service) CreateJob(ctx context.Context, req types.CreateJobRequest) (*types.Job, error) {
	if err := req.Validate(); err != nil {
		return nil, invalid(err)
	}

	job, err := s.store.CreateJob(ctx, req.Title, req.Description)
	if err != nil {
		return nil, err
	}

	s.audit(ctx, db.EntityJob, job.JobID, db.ActionCreated, map[string]any{"title": job.Title})
	s.log.Info("created job", zap.String("job_id", job.JobID))
	return job, nil
}

// GetJob returns a job by JOBID.
func (s *Service) GetJob(ctx context.Context, jobID string) (*types.Job, error) {
	return s.requireJob(ctx, jobID)
}

// ListJobs returns one page of jobs matching req.Query.
func (s *Service) ListJobs(ctx context.Context, req types.ListJobsRequest) (*types.JobList, error) {
	if req.Page == 0 {
		req.Page = 1
	}
	if req.PageSize == 0 {
		req.PageSize = 10
	}
	if err := req.Validate(); err != nil {
		return nil, invalid(err)
	}

	jobs, total, err := s.store.ListJobs(ctx, req.Query, req.Page, req.PageSize)
	if err != nil {
		return nil, err
	}
	return &types.JobList{Jobs: jobs, Total: total, Page: req.Page, PageSize: req.PageSize}, nil
}

// UpdateJob changes the title or description of a job.
func (s *Service) UpdateJob(ctx context.Context, jobID string, req types.UpdateJobRequest) (*types.Job, error) {
	if req.IsEmpty() {
		return nil, &ValidationError{Message: "nothing to update"}
	}
	if err := req.Validate(); err != nil {
		return nil, invalid(err)
	}

	job, err := s.store.UpdateJob(ctx, jobID, req.Title, req.Description)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, notFound("job", jobID)
	}

	s.audit(ctx, db.EntityJob, job.JobID, db.ActionUpdated, nil)
	return job, nil
}

// DeleteJob removes a job together with its resumes and evaluations.
func (s *Service) DeleteJob(ctx context.Context, jobID string) error {
	deleted, err := s.store.DeleteJob(ctx, jobID)
	if err != nil {
		return err
	}
	if !deleted {
		return notFound("job", jobID)
	}

	s.audit(ctx, db.EntityJob, jobID, db.ActionDeleted, nil)
	s.log.Info("deleted job", zap.String("job_id", jobID))
	return nil
}

// SubmitResume attaches resume text to a job. The candidate name is taken from
// the request or derived from the text.
func (s *Service) SubmitResume(ctx context.Context, jobID string, req types.SubmitResumeRequest) (*types.Resume, error) {
	if err := req.Validate(); err != nil {
		return nil, invalid(err)
	}
	content := ingestion.CleanText(req.Content)
	if content == "" {
		return nil, &ValidationError{Field: "content", Message: "resume text is empty"}
	}

	job, err := s.requireJob(ctx, jobID)
	if err != nil {
		return nil, err
	}

	name := req.CandidateName
	if name == "" {
		name = ingestion.ExtractCandidateName(content, req.FileName)
	}
	resume := &types.Resume{
		JobID:         job.JobID,
		FileName:      req.FileName,
		CandidateName: &name,
		Content:       content,
	}
	if err := s.store.CreateResume(ctx, resume); err != nil {
		return nil, err
	}

	s.audit(ctx, db.EntityResume, resume.ID.String(), db.ActionCreated, map[string]any{
		"job_id":    job.JobID,
		"file_name": resume.FileName,
	})
	return resume, nil
}

// ListResumes returns the resumes submitted for a job.
func (s *Service) ListResumes(ctx context.Context, jobID string) ([]types.Resume, error) {
	job, err := s.requireJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	return s.store.ListResumes(ctx, job.JobID)
}

// GetResume returns one resume.
func (s *Service) GetResume(ctx context.Context, id uuid.UUID) (*types.Resume, error) {
	resume, err := s.store.GetResume(ctx, id)
	if err != nil {
		return nil, err
	}
	if resume == nil {
		return nil, notFound("resume", id.String())
	}
	return resume, nil
}

// DeleteResume removes a resume and its evaluation.
func (s *Service) DeleteResume(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.store.DeleteResume(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return notFound("resume", id.String())
	}
	s.audit(ctx, db.EntityResume, id.String(), db.ActionDeleted, nil)
	return nil
}
