package ranking

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/jonathan/resume-shortlist/internal/types"
)

// SortEntries orders entries in place and returns them. Sorting by match score
// breaks ties on composite score, experience years and education sub-score; the
// requested direction applies to every key. Any other field is the only key.
// An empty order means descending.
func SortEntries(entries []types.RankedEntry, field types.SortField, order types.SortOrder) []types.RankedEntry {
	sign := -1
	if order == types.SortAsc {
		sign = 1
	}
	slices.SortStableFunc(entries, func(a, b types.RankedEntry) int {
		return sign * compareEntries(&a, &b, field)
	})
	return entries
}

func compareEntries(a, b *types.RankedEntry, field types.SortField) int {
	switch field {
	case types.SortByCompositeScore:
		return cmp.Compare(a.CompositeOrZero(), b.CompositeOrZero())
	case types.SortByEvaluatedAt:
		return a.EvaluatedAt.Compare(b.EvaluatedAt)
	case types.SortByCandidateName:
		return strings.Compare(strings.ToLower(a.NameOrEmpty()), strings.ToLower(b.NameOrEmpty()))
	case types.SortByExperienceYears:
		return cmp.Compare(a.ExperienceOrZero(), b.ExperienceOrZero())
	default:
		if c := cmp.Compare(a.MatchScore, b.MatchScore); c != 0 {
			return c
		}
		if c := cmp.Compare(a.CompositeOrZero(), b.CompositeOrZero()); c != 0 {
			return c
		}
		if c := cmp.Compare(a.ExperienceOrZero(), b.ExperienceOrZero()); c != 0 {
			return c
		}
		return cmp.Compare(a.EducationScoreOrZero(), b.EducationScoreOrZero())
	}
}

// Notes creates a brief explanation of a breakdown.
func Notes(b types.RankingBreakdown) string {
	var parts []string

	switch {
	case b.ExperienceScore >= 80:
		parts = append(parts, "Meets experience requirement")
	case b.ExperienceScore >= 50:
		parts = append(parts, "Partial experience match")
	case b.ExperienceScore > 0:
		parts = append(parts, "Limited experience")
	default:
		parts = append(parts, "No experience data")
	}

	switch {
	case b.EducationScore >= 85:
		parts = append(parts, "Strong education fit")
	case b.EducationScore >= 50:
		parts = append(parts, "Adequate education")
	case b.EducationScore > 0:
		parts = append(parts, "Education below requirement")
	default:
		parts = append(parts, "No recognised degree")
	}

	if b.SkillsQualityScore >= 60 {
		parts = append(parts, "High-value skill set")
	}
	if b.KeywordDensityScore >= 70 {
		parts = append(parts, "Good keyword overlap")
	} else if b.KeywordDensityScore >= 40 {
		parts = append(parts, "Some keyword overlap")
	}

	parts = append(parts, fmt.Sprintf("Composite %.2f", b.CompositeScore))
	return strings.Join(parts, ". ")
}
