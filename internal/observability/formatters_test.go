package observability

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/jonathan/resume-shortlist/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestPrintBreakdown(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintBreakdown(&types.RankingBreakdown{
		ExperienceScore:     100,
		EducationScore:      85,
		SkillsQualityScore:  40,
		KeywordDensityScore: 62.5,
		CompositeScore:      77.13,
	}, "Meets experience requirement")
	output := buf.String()

	assert.Contains(t, output, "RANKING BREAKDOWN")
	assert.Contains(t, output, "100.00")
	assert.Contains(t, output, " 62.50")
	assert.Contains(t, output, "Composite")
	assert.Contains(t, output, "77.13")
	assert.Contains(t, output, strings.Repeat("█", 20))
	assert.Contains(t, output, "Meets experience requirement")
}

func TestPrintBreakdown_Nil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintBreakdown(nil, "")
	assert.Empty(t, buf.String())
}

func TestPrintRankedEntries(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	name := "Jane Doe"
	years := 6.0
	entries := []types.RankedEntry{
		{ID: "1", CandidateName: &name, MatchScore: 88, ExperienceYears: &years, Breakdown: &types.RankingBreakdown{CompositeScore: 81.5}},
		{ID: "resume-2", MatchScore: 70},
	}

	p.PrintRankedEntries(entries, types.SortByMatchScore, types.SortDesc)
	output := buf.String()

	assert.Contains(t, output, "RANKED CANDIDATES")
	assert.Contains(t, output, "sorted by match_score desc")
	assert.Contains(t, output, "#1  Jane Doe")
	assert.Contains(t, output, "Composite: 81.50")
	assert.Contains(t, output, "Exp: 6.0y")
	assert.Contains(t, output, "#2  resume-2")
}

func TestPrintRankedEntries_Many(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	entries := make([]types.RankedEntry, 8)
	for i := range entries {
		entries[i] = types.RankedEntry{ID: fmt.Sprintf("e%d", i), MatchScore: float64(90 - i)}
	}

	p.PrintRankedEntries(entries, types.SortByMatchScore, types.SortDesc)
	output := buf.String()

	assert.Contains(t, output, "#5  e4")
	assert.NotContains(t, output, "#6")
	assert.Contains(t, output, "... and 3 more candidates")
}

func TestPrintProfile(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	years := 4.5
	edu := "M.Sc. Data Science"
	p.PrintProfile(&types.CandidateProfile{
		Skills:          []string{"Python", "Spark"},
		ExperienceYears: &years,
		Education:       &edu,
		PreviousRoles:   []string{"Data Engineer"},
	})
	output := buf.String()

	assert.Contains(t, output, "CANDIDATE PROFILE")
	assert.Contains(t, output, "Experience: 4.5 years")
	assert.Contains(t, output, "M.Sc. Data Science")
	assert.Contains(t, output, "• Spark")
	assert.Contains(t, output, "• Data Engineer")
}

func TestPrintProfile_Unknown(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintProfile(&types.CandidateProfile{})
	assert.Contains(t, buf.String(), "Experience: unknown")
}

func TestPrintMatch(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintMatch(&types.MatchResult{
		MatchScore:    64,
		Justification: "Solid backend experience.",
		Strengths:     []string{"Go"},
		Gaps:          []string{"Kubernetes"},
	}, types.StatusOKToProceed)
	output := buf.String()

	assert.Contains(t, output, "MATCH EVALUATION")
	assert.Contains(t, output, "Match score: 64.00")
	assert.Contains(t, output, "OK to Proceed")
	assert.Contains(t, output, "✓ Go")
	assert.Contains(t, output, "✗ Kubernetes")
	assert.Contains(t, output, "Solid backend experience.")
}

func TestPrintBox_TruncatesLongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.printBox("TITLE", strings.Repeat("é", 100))
	output := buf.String()

	assert.Contains(t, output, "...")
	for _, line := range strings.Split(strings.TrimSpace(output), "\n") {
		assert.Equal(t, boxWidth, len([]rune(line)), line)
	}
}

func TestBar(t *testing.T) {
	assert.Equal(t, strings.Repeat("░", 20), bar(0))
	assert.Equal(t, strings.Repeat("█", 20), bar(100))
	assert.Equal(t, strings.Repeat("█", 10)+strings.Repeat("░", 10), bar(50))
	assert.Equal(t, strings.Repeat("█", 20), bar(140))
}
