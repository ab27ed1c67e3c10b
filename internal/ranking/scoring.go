// Package ranking scores candidates against job postings and orders ranked lists.
package ranking

import (
	"math"

	"github.com/jonathan/resume-shortlist/internal/types"
)

// Composite weights. They sum to 1.0.
const (
	baselineWeight       = 0.70
	experienceWeight     = 0.15
	educationWeight      = 0.10
	skillsQualityWeight  = 0.05
	keywordDensityWeight = 0.05
)

// CompositeScore combines the baseline match score with the four sub-scores.
// Inputs are clamped to [0,100]; the result is rounded to 2 decimals.
func CompositeScore(baseline, experience, education, skillsQuality, keywordDensity float64) float64 {
	composite := baselineWeight*clamp(baseline) +
		experienceWeight*clamp(experience) +
		educationWeight*clamp(education) +
		skillsQualityWeight*clamp(skillsQuality) +
		keywordDensityWeight*clamp(keywordDensity)
	return clamp(math.Round(composite*100) / 100)
}

// ComputeBreakdown runs all four scorers for one candidate and posting and
// aggregates them with the baseline score. A nil profile scores 0 on every
// profile-based sub-score.
func ComputeBreakdown(
	profile *types.CandidateProfile,
	posting types.JobPosting,
	resumeText string,
	baseline float64,
) types.RankingBreakdown {
	if profile == nil {
		profile = &types.CandidateProfile{}
	}
	postingText := posting.Text()

	b := types.RankingBreakdown{
		ExperienceScore:     ScoreExperience(profile.ExperienceYears, postingText),
		EducationScore:      ScoreEducation(profile.Education, postingText),
		SkillsQualityScore:  ScoreSkillsQuality(profile.Skills, postingText),
		KeywordDensityScore: ScoreKeywordDensity(resumeText, postingText),
	}
	b.CompositeScore = CompositeScore(
		baseline,
		b.ExperienceScore,
		b.EducationScore,
		b.SkillsQualityScore,
		b.KeywordDensityScore,
	)
	return b
}

// clamp bounds a score to [0,100]. NaN becomes 0.
func clamp(score float64) float64 {
	if math.IsNaN(score) || score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
