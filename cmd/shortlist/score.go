package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jonathan/resume-shortlist/internal/ingestion"
	"github.com/jonathan/resume-shortlist/internal/observability"
	"github.com/jonathan/resume-shortlist/internal/ranking"
	"github.com/jonathan/resume-shortlist/internal/schemas"
	"github.com/jonathan/resume-shortlist/internal/types"
	"github.com/spf13/cobra"
)

var (
	scoreProfileFile string
	scoreJobFile     string
	scoreJobTitle    string
	scoreResumeFile  string
	scoreBaseline    float64
	scoreOutput      string
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Compute the ranking breakdown for one candidate",
	Long: `Score a structured candidate profile against a job posting. The posting file
may be plain text or HTML. The resume text is optional and only feeds the
keyword density score.`,
	RunE: runScore,
}

// scoreResult is the JSON written by the score command.
type scoreResult struct {
	Breakdown types.RankingBreakdown `json:"ranking_breakdown"`
	Notes     string                 `json:"notes"`
}

func init() {
	scoreCmd.Flags().StringVarP(&scoreProfileFile, "profile", "p", "", "Path to CandidateProfile JSON file (required)")
	scoreCmd.Flags().StringVarP(&scoreJobFile, "job", "j", "", "Path to job posting text or HTML file (required)")
	scoreCmd.Flags().StringVarP(&scoreJobTitle, "title", "t", "", "Job title")
	scoreCmd.Flags().StringVarP(&scoreResumeFile, "resume", "r", "", "Path to resume text file")
	scoreCmd.Flags().Float64VarP(&scoreBaseline, "baseline", "b", 0, "Baseline match score 0-100 (required)")
	scoreCmd.Flags().StringVarP(&scoreOutput, "out", "o", "", "Output file (default stdout)")

	for _, name := range []string{"profile", "job", "baseline"} {
		if err := scoreCmd.MarkFlagRequired(name); err != nil {
			panic(fmt.Sprintf("failed to mark %s flag as required: %v", name, err))
		}
	}

	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, _ []string) error {
	profile, err := readProfile(scoreProfileFile)
	if err != nil {
		return err
	}

	description, err := ingestion.LoadPosting(scoreJobFile)
	if err != nil {
		return fmt.Errorf("failed to load job posting: %w", err)
	}

	var resumeText string
	if scoreResumeFile != "" {
		resumeText, err = ingestion.ReadText(scoreResumeFile)
		if err != nil {
			return fmt.Errorf("failed to read resume: %w", err)
		}
	}

	req := types.ScoreRequest{
		Profile:       *profile,
		Job:           types.JobPosting{Title: scoreJobTitle, Description: description},
		ResumeText:    resumeText,
		BaselineScore: scoreBaseline,
	}
	if err := req.Validate(); err != nil {
		return fmt.Errorf("invalid baseline score %v: must be between 0 and 100", scoreBaseline)
	}

	breakdown := ranking.ComputeBreakdown(&req.Profile, req.Job, req.ResumeText, req.BaselineScore)
	notes := ranking.Notes(breakdown)

	if verbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintBreakdown(&breakdown, notes)
	}

	return writeJSON(cmd, scoreOutput, scoreResult{Breakdown: breakdown, Notes: notes})
}

// readProfile reads a CandidateProfile JSON file and validates it against the
// embedded schema.
func readProfile(path string) (*types.CandidateProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile file: %w", err)
	}
	if err := schemas.Validate(schemas.CandidateProfile, data); err != nil {
		return nil, fmt.Errorf("invalid profile %s: %w", path, err)
	}

	var profile types.CandidateProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile: %w", err)
	}
	return &profile, nil
}
