package main

import (
	"context"
	"fmt"

	"github.com/jonathan/resume-shortlist/internal/ingestion"
	"github.com/jonathan/resume-shortlist/internal/observability"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	extractResumeFile string
	extractUseLLM     bool
	extractOutput     string
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract a candidate profile from resume text",
	Long: `Extract a CandidateProfile from a resume text file. The heuristic extractor is
used by default. With --llm the Gemini extractor is used and GEMINI_API_KEY must
be set.`,
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().StringVarP(&extractResumeFile, "resume", "r", "", "Path to resume text file (required)")
	extractCmd.Flags().BoolVar(&extractUseLLM, "llm", false, "Use the Gemini extractor")
	extractCmd.Flags().StringVarP(&extractOutput, "out", "o", "", "Output file (default stdout)")

	if err := extractCmd.MarkFlagRequired("resume"); err != nil {
		panic(fmt.Sprintf("failed to mark resume flag as required: %v", err))
	}

	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, _ []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	if extractUseLLM && cfg.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable is required with --llm")
	}

	text, err := ingestion.ReadText(extractResumeFile)
	if err != nil {
		return fmt.Errorf("failed to read resume: %w", err)
	}

	ctx := context.Background()
	deps, err := newComponents(ctx, cfg, nil, log, !extractUseLLM)
	if err != nil {
		return err
	}
	defer func() {
		if err := deps.Close(); err != nil {
			log.Warn("failed to close clients", zap.Error(err))
		}
	}()

	profile, err := deps.extractor.Extract(ctx, text)
	if err != nil {
		return fmt.Errorf("failed to extract profile: %w", err)
	}

	if verbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintProfile(profile)
	}

	return writeJSON(cmd, extractOutput, profile)
}
