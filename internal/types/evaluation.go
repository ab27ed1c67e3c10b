package types

import (
	"time"

	"github.com/google/uuid"
)

// EvaluationStatus is the shortlisting label attached to an evaluation.
type EvaluationStatus string

// Evaluation status labels
const (
	StatusOKToProceed EvaluationStatus = "OK to Proceed"
	StatusNotOK       EvaluationStatus = "Not OK"
	StatusPending     EvaluationStatus = "Pending"
)

// Job is a job opening identified by a short JOBID such as "A1234".
type Job struct {
	ID          int64     `json:"id"`
	JobID       string    `json:"job_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Posting returns the job as a JobPosting for scoring.
func (j *Job) Posting() JobPosting {
	return JobPosting{Title: j.Title, Description: j.Description}
}

// Resume is an already-extracted resume text submitted for a job.
type Resume struct {
	ID            uuid.UUID `json:"id"`
	JobID         string    `json:"job_id"`
	FileName      string    `json:"file_name"`
	CandidateName *string   `json:"candidate_name,omitempty"`
	Content       string    `json:"content,omitempty"`
	UploadedAt    time.Time `json:"upload_timestamp"`
}

// SkillMatch is one skill judged by the semantic evaluator.
type SkillMatch struct {
	Skill          string  `json:"skill"`
	Matched        bool    `json:"matched"`
	RelevanceScore float64 `json:"relevance_score"`
}

// Evaluation is the persisted result of scoring one resume against its job.
type Evaluation struct {
	ID              uuid.UUID         `json:"id"`
	ResumeID        uuid.UUID         `json:"resume_id"`
	JobID           string            `json:"job_id"`
	CandidateName   *string           `json:"candidate_name,omitempty"`
	FileName        string            `json:"file_name"`
	MatchScore      float64           `json:"match_score"`
	Status          EvaluationStatus  `json:"status"`
	Justification   string            `json:"justification"`
	SkillsExtracted []string          `json:"skills_extracted"`
	SkillsMatched   []SkillMatch      `json:"skills_matched"`
	ExperienceYears *float64          `json:"experience_years,omitempty"`
	Education       *string           `json:"education,omitempty"`
	PreviousRoles   []string          `json:"previous_roles"`
	Breakdown       *RankingBreakdown `json:"ranking_breakdown,omitempty"`
	EvaluatedAt     time.Time         `json:"evaluated_at"`
}

// Entry projects the evaluation onto the fields used for ranking.
func (e *Evaluation) Entry() RankedEntry {
	return RankedEntry{
		ID:              e.ID.String(),
		CandidateName:   e.CandidateName,
		FileName:        e.FileName,
		MatchScore:      e.MatchScore,
		Breakdown:       e.Breakdown,
		ExperienceYears: e.ExperienceYears,
		Education:       e.Education,
		EvaluatedAt:     e.EvaluatedAt,
	}
}

// EvaluationList is the response of a filtered, sorted listing for one job.
type EvaluationList struct {
	Evaluations []Evaluation `json:"evaluations"`
	Total       int          `json:"total"`
	JobID       string       `json:"job_id"`
	JobTitle    string       `json:"job_title"`
}

// EvaluationSummary aggregates evaluation counts and averages for one job.
type EvaluationSummary struct {
	JobID            string  `json:"job_id"`
	JobTitle         string  `json:"job_title"`
	TotalResumes     int     `json:"total_resumes"`
	Evaluated        int     `json:"evaluated"`
	OKToProceed      int     `json:"ok_to_proceed"`
	NotOK            int     `json:"not_ok"`
	Pending          int     `json:"pending"`
	AverageScore     float64 `json:"average_score"`
	AverageComposite float64 `json:"average_composite_score"`
}

// BatchResult reports the outcome of evaluating every resume of a job.
type BatchResult struct {
	JobID       string       `json:"job_id"`
	Evaluations []Evaluation `json:"evaluations"`
	Failed      []BatchError `json:"failed,omitempty"`
}

// BatchError describes a resume that could not be evaluated in a batch.
type BatchError struct {
	ResumeID uuid.UUID `json:"resume_id"`
	Error    string    `json:"error"`
}

// MatchResult is the baseline judgement produced by a semantic evaluator.
type MatchResult struct {
	MatchScore    float64          `json:"match_score"`
	Status        EvaluationStatus `json:"status"`
	Justification string           `json:"justification"`
	MatchedSkills []SkillMatch     `json:"matched_skills"`
	Strengths     []string         `json:"strengths,omitempty"`
	Gaps          []string         `json:"gaps,omitempty"`
}

// ValidStatus reports whether s is a final shortlisting label.
func ValidStatus(s EvaluationStatus) bool {
	return s == StatusOKToProceed || s == StatusNotOK
}

// JobList is one page of jobs.
type JobList struct {
	Jobs     []Job `json:"jobs"`
	Total    int   `json:"total"`
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
}
