package ingestion

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/jonathan/resume-shortlist/internal/types"
)

// HeuristicEvaluator scores a resume by the share of posting skills it covers.
// It leaves Status empty so the caller applies its pass threshold.
type HeuristicEvaluator struct{}

// NewHeuristicEvaluator creates an offline evaluator.
func NewHeuristicEvaluator() *HeuristicEvaluator {
	return &HeuristicEvaluator{}
}

// Evaluate compares the vocabulary skills of the posting with the candidate's skills.
func (HeuristicEvaluator) Evaluate(_ context.Context, posting types.JobPosting, profile *types.CandidateProfile, resumeText string) (*types.MatchResult, error) {
	required := ExtractSkills(posting.Text())

	var have []string
	if profile != nil {
		have = profile.Skills
	}
	if len(have) == 0 {
		have = ExtractSkills(resumeText)
	}

	result := &types.MatchResult{MatchedSkills: make([]types.SkillMatch, 0, len(required))}
	var matched, missing []string
	for _, skill := range required {
		ok := coversSkill(have, skill)
		relevance := 0.0
		if ok {
			relevance = 1
			matched = append(matched, skill)
		} else {
			missing = append(missing, skill)
		}
		result.MatchedSkills = append(result.MatchedSkills, types.SkillMatch{Skill: skill, Matched: ok, RelevanceScore: relevance})
	}

	if len(required) > 0 {
		result.MatchScore = math.Round(float64(len(matched))/float64(len(required))*1000) / 10
	}
	result.Strengths = matched
	result.Gaps = missing
	result.Justification = justify(len(required), matched, missing)
	return result, nil
}

// coversSkill reports whether any candidate skill contains the required skill.
func coversSkill(have []string, required string) bool {
	required = strings.ToLower(required)
	for _, s := range have {
		if strings.Contains(strings.ToLower(s), required) {
			return true
		}
	}
	return false
}

func justify(total int, matched, missing []string) string {
	if total == 0 {
		return "No recognised skills in the job posting."
	}
	msg := fmt.Sprintf("Matched %d of %d posting skills", len(matched), total)
	if len(matched) > 0 {
		msg += ": " + strings.Join(matched, ", ")
	}
	msg += "."
	if len(missing) > 0 {
		msg += " Missing: " + strings.Join(missing, ", ") + "."
	}
	return msg
}
