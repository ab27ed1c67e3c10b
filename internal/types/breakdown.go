package types

// RankingBreakdown holds the four heuristic sub-scores and the composite score for one
// candidate/job pair. All values lie in [0,100]. A breakdown is computed once and never
// patched; re-evaluating a candidate produces a new value.
type RankingBreakdown struct {
	ExperienceScore     float64 `json:"experience_score"`
	EducationScore      float64 `json:"education_score"`
	SkillsQualityScore  float64 `json:"skills_quality_score"`
	KeywordDensityScore float64 `json:"keyword_density_score"`
	CompositeScore      float64 `json:"composite_score"`
}
