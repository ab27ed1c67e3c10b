// Package types provides type definitions for structured data used throughout the resume-shortlist system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "strings"

// CandidateProfile is the structured view of a resume produced by an extractor.
// Every field may be absent; scorers degrade to zero instead of failing.
type CandidateProfile struct {
	Skills          []string `json:"skills"`
	ExperienceYears *float64 `json:"experience_years,omitempty"`
	Education       *string  `json:"education,omitempty"`
	PreviousRoles   []string `json:"previous_roles"`
	// Keywords are industry keywords reported by the extractor (informational only)
	Keywords []string `json:"keywords,omitempty"`
}

// HasExperience reports whether the profile carries an experience value.
func (p *CandidateProfile) HasExperience() bool {
	return p != nil && p.ExperienceYears != nil
}

// EducationText returns the education string or "" when absent.
func (p *CandidateProfile) EducationText() string {
	if p == nil || p.Education == nil {
		return ""
	}
	return *p.Education
}

// JobPosting is the title and free-text description of an opening.
type JobPosting struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Text returns the text the scorers search: the title followed by the description.
func (j JobPosting) Text() string {
	return strings.TrimSpace(j.Title + " " + j.Description)
}
