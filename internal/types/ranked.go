package types

import "time"

// SortField names the primary key used when ordering evaluated candidates.
type SortField string

// Supported sort fields
const (
	SortByMatchScore      SortField = "match_score"
	SortByCompositeScore  SortField = "composite_score"
	SortByEvaluatedAt     SortField = "evaluated_at"
	SortByCandidateName   SortField = "candidate_name"
	SortByExperienceYears SortField = "experience_years"
)

// SortOrder is the global direction applied to every sort key.
type SortOrder string

// Supported sort orders
const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// RankedEntry associates a candidate with its baseline score, its breakdown and the
// display fields that act as sort keys.
type RankedEntry struct {
	ID              string            `json:"id"`
	CandidateName   *string           `json:"candidate_name,omitempty"`
	FileName        string            `json:"file_name,omitempty"`
	MatchScore      float64           `json:"match_score"`
	Breakdown       *RankingBreakdown `json:"ranking_breakdown,omitempty"`
	ExperienceYears *float64          `json:"experience_years,omitempty"`
	Education       *string           `json:"education,omitempty"`
	EvaluatedAt     time.Time         `json:"evaluated_at"`
}

// CompositeOrZero returns the composite score, or 0 when no breakdown is attached.
func (e *RankedEntry) CompositeOrZero() float64 {
	if e.Breakdown == nil {
		return 0
	}
	return e.Breakdown.CompositeScore
}

// EducationScoreOrZero returns the education sub-score, or 0 when no breakdown is attached.
func (e *RankedEntry) EducationScoreOrZero() float64 {
	if e.Breakdown == nil {
		return 0
	}
	return e.Breakdown.EducationScore
}

// ExperienceOrZero returns the candidate's years of experience, or 0 when unknown.
func (e *RankedEntry) ExperienceOrZero() float64 {
	if e.ExperienceYears == nil {
		return 0
	}
	return *e.ExperienceYears
}

// NameOrEmpty returns the candidate name, or "" when unknown.
func (e *RankedEntry) NameOrEmpty() string {
	if e.CandidateName == nil {
		return ""
	}
	return *e.CandidateName
}
