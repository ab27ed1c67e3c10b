package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jonathan/resume-shortlist/internal/observability"
	"github.com/jonathan/resume-shortlist/internal/ranking"
	"github.com/jonathan/resume-shortlist/internal/schemas"
	"github.com/jonathan/resume-shortlist/internal/types"
	"github.com/spf13/cobra"
)

var (
	rankEntriesFile string
	rankSortBy      string
	rankOrder       string
	rankOutput      string
)

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Order scored entries by a sort field",
	Long: `Rank a JSON array of scored entries. When sorting by match score, ties are
broken by composite score, then experience years, then education score, all in
the requested direction.`,
	RunE: runRank,
}

func init() {
	rankCmd.Flags().StringVarP(&rankEntriesFile, "entries", "e", "", "Path to JSON array of ranked entries (required)")
	rankCmd.Flags().StringVar(&rankSortBy, "sort-by", string(types.SortByMatchScore),
		"Sort field: match_score, composite_score, evaluated_at, candidate_name, experience_years")
	rankCmd.Flags().StringVar(&rankOrder, "order", string(types.SortDesc), "Sort order: asc or desc")
	rankCmd.Flags().StringVarP(&rankOutput, "out", "o", "", "Output file (default stdout)")

	if err := rankCmd.MarkFlagRequired("entries"); err != nil {
		panic(fmt.Sprintf("failed to mark entries flag as required: %v", err))
	}

	rootCmd.AddCommand(rankCmd)
}

func runRank(cmd *cobra.Command, _ []string) error {
	data, err := os.ReadFile(rankEntriesFile)
	if err != nil {
		return fmt.Errorf("failed to read entries file: %w", err)
	}
	if err := schemas.Validate(schemas.RankedEntries, data); err != nil {
		return fmt.Errorf("invalid entries %s: %w", rankEntriesFile, err)
	}

	req := types.RankRequest{
		SortBy:    types.SortField(rankSortBy),
		SortOrder: types.SortOrder(rankOrder),
	}
	if err := json.Unmarshal(data, &req.Entries); err != nil {
		return fmt.Errorf("failed to unmarshal entries: %w", err)
	}
	if err := req.Validate(); err != nil {
		return fmt.Errorf("invalid sort options (sort-by %q, order %q)", rankSortBy, rankOrder)
	}

	ranked := ranking.SortEntries(req.Entries, req.SortBy, req.SortOrder)

	if verbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintRankedEntries(ranked, req.SortBy, req.SortOrder)
	}

	return writeJSON(cmd, rankOutput, ranked)
}
