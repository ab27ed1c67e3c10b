package main

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/jonathan/resume-shortlist/internal/evaluation"
	"github.com/jonathan/resume-shortlist/internal/ingestion"
	"github.com/jonathan/resume-shortlist/internal/observability"
	"github.com/jonathan/resume-shortlist/internal/ranking"
	"github.com/jonathan/resume-shortlist/internal/types"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	evaluateResumeFile string
	evaluateJobFile    string
	evaluateJobURL     string
	evaluateJobTitle   string
	evaluateBrowser    bool
	evaluateOffline    bool
	evaluateOutput     string
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Evaluate one resume against a job posting without storing it",
	Long: `Extract a profile from the resume, ask the evaluator for a baseline match score
and compute the ranking breakdown. The posting is read from --job or fetched
from --job-url. Requires GEMINI_API_KEY unless --offline is set.`,
	RunE: runEvaluate,
}

// evaluateResult is the JSON written by the evaluate command.
type evaluateResult struct {
	CandidateName string                  `json:"candidate_name,omitempty"`
	Profile       *types.CandidateProfile `json:"profile"`
	Match         *types.MatchResult      `json:"match"`
	Status        types.EvaluationStatus  `json:"status"`
	Breakdown     types.RankingBreakdown  `json:"ranking_breakdown"`
	Notes         string                  `json:"notes"`
}

func init() {
	evaluateCmd.Flags().StringVarP(&evaluateResumeFile, "resume", "r", "", "Path to resume text file (required)")
	evaluateCmd.Flags().StringVarP(&evaluateJobFile, "job", "j", "", "Path to job posting text or HTML file")
	evaluateCmd.Flags().StringVar(&evaluateJobURL, "job-url", "", "URL of the job posting")
	evaluateCmd.Flags().StringVarP(&evaluateJobTitle, "title", "t", "", "Job title")
	evaluateCmd.Flags().BoolVar(&evaluateBrowser, "browser", false, "Render JavaScript-heavy postings with headless Chrome")
	evaluateCmd.Flags().BoolVar(&evaluateOffline, "offline", false, "Use the heuristic extractor and evaluator")
	evaluateCmd.Flags().StringVarP(&evaluateOutput, "out", "o", "", "Output file (default stdout)")

	if err := evaluateCmd.MarkFlagRequired("resume"); err != nil {
		panic(fmt.Sprintf("failed to mark resume flag as required: %v", err))
	}
	evaluateCmd.MarkFlagsOneRequired("job", "job-url")
	evaluateCmd.MarkFlagsMutuallyExclusive("job", "job-url")

	rootCmd.AddCommand(evaluateCmd)
}

func runEvaluate(cmd *cobra.Command, _ []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	if !evaluateOffline && cfg.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable is required (or use --offline)")
	}

	resumeText, err := ingestion.ReadText(evaluateResumeFile)
	if err != nil {
		return fmt.Errorf("failed to read resume: %w", err)
	}

	ctx := context.Background()
	deps, err := newComponents(ctx, cfg, nil, log, evaluateOffline)
	if err != nil {
		return err
	}
	defer func() {
		if err := deps.Close(); err != nil {
			log.Warn("failed to close clients", zap.Error(err))
		}
	}()

	posting, err := loadEvaluatePosting(ctx, deps, time.Duration(cfg.CacheTTLExtraction), log)
	if err != nil {
		return err
	}

	profile, err := deps.extractor.Extract(ctx, resumeText)
	if err != nil {
		return fmt.Errorf("failed to extract profile: %w", err)
	}
	name := ingestion.ExtractCandidateName(resumeText, filepath.Base(evaluateResumeFile))

	match, err := deps.evaluator.Evaluate(ctx, posting, profile, resumeText)
	if err != nil {
		return fmt.Errorf("failed to evaluate resume: %w", err)
	}

	status := evaluation.ResolveStatus(match.Status, match.MatchScore, cfg.PassThreshold)
	breakdown := ranking.ComputeBreakdown(profile, posting, resumeText, match.MatchScore)
	notes := ranking.Notes(breakdown)

	if verbose {
		p := observability.NewPrinter(cmd.ErrOrStderr())
		p.PrintProfile(profile)
		p.PrintMatch(match, status)
		p.PrintBreakdown(&breakdown, notes)
	}

	return writeJSON(cmd, evaluateOutput, evaluateResult{
		CandidateName: name,
		Profile:       profile,
		Match:         match,
		Status:        status,
		Breakdown:     breakdown,
		Notes:         notes,
	})
}

// loadEvaluatePosting reads the posting from disk or fetches it from the URL.
func loadEvaluatePosting(ctx context.Context, deps *components, ttl time.Duration, log *zap.Logger) (types.JobPosting, error) {
	posting := types.JobPosting{Title: evaluateJobTitle}

	if evaluateJobFile != "" {
		description, err := ingestion.LoadPosting(evaluateJobFile)
		if err != nil {
			return posting, fmt.Errorf("failed to load job posting: %w", err)
		}
		posting.Description = description
		return posting, nil
	}

	opts := ingestion.FetcherOptions{Timeout: ingestion.DefaultTimeout}
	if evaluateBrowser {
		opts.Render = ingestion.RenderWithChrome(2 * ingestion.DefaultTimeout)
	}
	fetched, err := ingestion.NewFetcher(opts, deps.newCache("posting", ttl), log).FetchPosting(ctx, evaluateJobURL)
	if err != nil {
		return posting, fmt.Errorf("failed to fetch job posting: %w", err)
	}
	log.Debug("posting fetched",
		zap.String("platform", fetched.Metadata.Platform),
		zap.Bool("rendered", fetched.Metadata.Rendered),
	)
	posting.Description = fetched.Text
	return posting, nil
}
