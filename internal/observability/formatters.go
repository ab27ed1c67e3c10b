// Package observability provides formatted output utilities for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-shortlist/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// clip shortens s to at most n runes, marking the cut with "...".
func clip(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-3]) + "..."
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, clip(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// bar renders a 0–100 score as a 20-cell bar.
func bar(score float64) string {
	filled := int(score/5 + 0.5)
	filled = max(0, min(filled, 20))
	return strings.Repeat("█", filled) + strings.Repeat("░", 20-filled)
}

// PrintBreakdown outputs the four sub-scores and the composite score.
func (p *Printer) PrintBreakdown(b *types.RankingBreakdown, notes string) {
	if b == nil {
		return
	}

	var sb strings.Builder
	rows := []struct {
		label string
		score float64
	}{
		{"Experience", b.ExperienceScore},
		{"Education", b.EducationScore},
		{"Skills quality", b.SkillsQualityScore},
		{"Keyword density", b.KeywordDensityScore},
	}
	for _, row := range rows {
		sb.WriteString(fmt.Sprintf("%-16s %s %6.2f\n", row.label, bar(row.score), row.score))
	}
	sb.WriteString(fmt.Sprintf("\n%-16s %s %6.2f", "Composite", bar(b.CompositeScore), b.CompositeScore))
	if notes != "" {
		sb.WriteString("\n\n" + notes)
	}

	p.printBox("RANKING BREAKDOWN", sb.String())
}

// PrintRankedEntries outputs the top entries in their ranked order.
func (p *Printer) PrintRankedEntries(entries []types.RankedEntry, field types.SortField, order types.SortOrder) {
	if len(entries) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Candidates: %d  (sorted by %s %s)\n\n", len(entries), field, order))

	count := min(len(entries), maxItemsToShow)
	for i := range count {
		e := entries[i]
		name := e.NameOrEmpty()
		if name == "" {
			name = e.ID
		}
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, clip(name, 40)))
		sb.WriteString(fmt.Sprintf("    Match: %.2f", e.MatchScore))
		if e.Breakdown != nil {
			sb.WriteString(fmt.Sprintf("  Composite: %.2f", e.Breakdown.CompositeScore))
		}
		if e.ExperienceYears != nil {
			sb.WriteString(fmt.Sprintf("  Exp: %.1fy", *e.ExperienceYears))
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(entries) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n\n... and %d more candidates", len(entries)-maxItemsToShow))
	}

	p.printBox("RANKED CANDIDATES", sb.String())
}

// PrintProfile outputs the extracted candidate profile.
func (p *Printer) PrintProfile(profile *types.CandidateProfile) {
	if profile == nil {
		return
	}

	var sb strings.Builder
	if profile.ExperienceYears != nil {
		sb.WriteString(fmt.Sprintf("Experience: %.1f years\n", *profile.ExperienceYears))
	} else {
		sb.WriteString("Experience: unknown\n")
	}
	if edu := profile.EducationText(); edu != "" {
		sb.WriteString("Education:  " + edu + "\n")
	}
	if len(profile.Skills) > 0 {
		sb.WriteString(fmt.Sprintf("\nSkills (%d):\n", len(profile.Skills)))
		count := min(len(profile.Skills), maxItemsToShow*2)
		for _, skill := range profile.Skills[:count] {
			sb.WriteString("  • " + skill + "\n")
		}
		if len(profile.Skills) > count {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(profile.Skills)-count))
		}
	}
	if len(profile.PreviousRoles) > 0 {
		sb.WriteString("\nPrevious roles:\n")
		for _, role := range profile.PreviousRoles[:min(len(profile.PreviousRoles), maxItemsToShow)] {
			sb.WriteString("  • " + role + "\n")
		}
	}

	p.printBox("CANDIDATE PROFILE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintMatch outputs the baseline judgement and the final status label.
func (p *Printer) PrintMatch(result *types.MatchResult, status types.EvaluationStatus) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Match score: %.2f\n", result.MatchScore))
	sb.WriteString(fmt.Sprintf("Status:      %s\n", status))

	if len(result.Strengths) > 0 {
		sb.WriteString("\nStrengths:\n")
		for _, s := range result.Strengths[:min(len(result.Strengths), 3)] {
			sb.WriteString("  ✓ " + s + "\n")
		}
	}
	if len(result.Gaps) > 0 {
		sb.WriteString("\nGaps:\n")
		for _, g := range result.Gaps[:min(len(result.Gaps), 3)] {
			sb.WriteString("  ✗ " + g + "\n")
		}
	}
	if result.Justification != "" {
		sb.WriteString("\n" + result.Justification)
	}

	p.printBox("MATCH EVALUATION", strings.TrimSuffix(sb.String(), "\n"))
}
