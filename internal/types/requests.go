package types

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// CreateJobRequest is the payload for creating a job.
type CreateJobRequest struct {
	Title       string `json:"title" validate:"required,min=1,max=200"`
	Description string `json:"description" validate:"required,min=1"`
}

// Validate validates the CreateJobRequest using the validator.
func (r *CreateJobRequest) Validate() error {
	return validate.Struct(r)
}

// UpdateJobRequest is the payload for updating a job. JOBID is immutable.
type UpdateJobRequest struct {
	Title       *string `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description,omitempty" validate:"omitempty,min=1"`
}

// Validate validates the UpdateJobRequest using the validator.
func (r *UpdateJobRequest) Validate() error {
	return validate.Struct(r)
}

// IsEmpty reports whether the update changes nothing.
func (r *UpdateJobRequest) IsEmpty() bool {
	return r.Title == nil && r.Description == nil
}

// SubmitResumeRequest is the payload for attaching resume text to a job.
type SubmitResumeRequest struct {
	FileName      string `json:"file_name" validate:"required,max=255"`
	Content       string `json:"content" validate:"required"`
	CandidateName string `json:"candidate_name,omitempty" validate:"omitempty,max=200"`
}

// Validate validates the SubmitResumeRequest using the validator.
func (r *SubmitResumeRequest) Validate() error {
	return validate.Struct(r)
}

// ListJobsRequest holds search and pagination for job listings.
type ListJobsRequest struct {
	Query    string `json:"query,omitempty"`
	Page     int    `json:"page" validate:"gte=1"`
	PageSize int    `json:"page_size" validate:"gte=1,lte=100"`
}

// Validate validates the ListJobsRequest using the validator.
func (r *ListJobsRequest) Validate() error {
	return validate.Struct(r)
}

// EvaluationFilter holds the criteria and the single sort key for listing evaluations.
type EvaluationFilter struct {
	Status           *EvaluationStatus `json:"status,omitempty" validate:"omitempty,oneof='OK to Proceed' 'Not OK' 'Pending'"`
	MinScore         *float64          `json:"min_score,omitempty" validate:"omitempty,gte=0,lte=100"`
	MaxScore         *float64          `json:"max_score,omitempty" validate:"omitempty,gte=0,lte=100"`
	MinExperience    *float64          `json:"min_experience,omitempty" validate:"omitempty,gte=0"`
	MaxExperience    *float64          `json:"max_experience,omitempty" validate:"omitempty,gte=0"`
	SkillsKeyword    string            `json:"skills_keyword,omitempty"`
	EducationKeyword string            `json:"education_keyword,omitempty"`
	SortBy           SortField         `json:"sort_by" validate:"omitempty,oneof=match_score composite_score evaluated_at candidate_name experience_years"`
	SortOrder        SortOrder         `json:"sort_order" validate:"omitempty,oneof=asc desc"`
}

// DefaultEvaluationFilter sorts by match score, highest first.
func DefaultEvaluationFilter() EvaluationFilter {
	return EvaluationFilter{SortBy: SortByMatchScore, SortOrder: SortDesc}
}

// Validate validates the EvaluationFilter using the validator.
func (f *EvaluationFilter) Validate() error {
	return validate.Struct(f)
}

// ScoreRequest asks for a breakdown without touching storage.
type ScoreRequest struct {
	Profile       CandidateProfile `json:"profile"`
	Job           JobPosting       `json:"job"`
	ResumeText    string           `json:"resume_text"`
	BaselineScore float64          `json:"baseline_score" validate:"gte=0,lte=100"`
}

// Validate validates the ScoreRequest using the validator.
func (r *ScoreRequest) Validate() error {
	return validate.Struct(r)
}

// RankRequest asks for an ordering of already-scored entries.
type RankRequest struct {
	Entries   []RankedEntry `json:"entries"`
	SortBy    SortField     `json:"sort_by" validate:"omitempty,oneof=match_score composite_score evaluated_at candidate_name experience_years"`
	SortOrder SortOrder     `json:"sort_order" validate:"omitempty,oneof=asc desc"`
}

// Validate validates the RankRequest using the validator.
func (r *RankRequest) Validate() error {
	return validate.Struct(r)
}
