package evaluation

import (
	"context"
	"math"
	"strings"

	"github.com/jonathan/resume-shortlist/internal/db"
	"github.com/jonathan/resume-shortlist/internal/events"
	"github.com/jonathan/resume-shortlist/internal/ranking"
	"github.com/jonathan/resume-shortlist/internal/types"
	"go.uber.org/zap"
)

// List returns the evaluations of a job that pass filter, ordered by its sort key.
func (s *Service) List(ctx context.Context, jobID string, filter types.EvaluationFilter) (*types.EvaluationList, error) {
	if err := filter.Validate(); err != nil {
		return nil, invalid(err)
	}
	if filter.MinScore != nil && filter.MaxScore != nil && *filter.MinScore > *filter.MaxScore {
		return nil, &ValidationError{Field: "min_score", Message: "must not exceed max_score"}
	}

	job, err := s.requireJob(ctx, jobID)
	if err != nil {
		return nil, err
	}

	evaluations, err := s.store.ListEvaluations(ctx, db.EvaluationQuery{
		JobID:    job.JobID,
		Status:   filter.Status,
		MinScore: filter.MinScore,
		MaxScore: filter.MaxScore,
	})
	if err != nil {
		return nil, err
	}

	kept := FilterEvaluations(evaluations, filter)
	sorted := SortEvaluations(kept, filter.SortBy, filter.SortOrder)
	return &types.EvaluationList{
		Evaluations: sorted,
		Total:       len(sorted),
		JobID:       job.JobID,
		JobTitle:    job.Title,
	}, nil
}

// FilterEvaluations applies the experience, skills and education criteria,
// keeping the input order. Evaluations without experience fail an experience bound.
func FilterEvaluations(evaluations []types.Evaluation, filter types.EvaluationFilter) []types.Evaluation {
	skillsKeyword := strings.ToLower(strings.TrimSpace(filter.SkillsKeyword))
	educationKeyword := strings.ToLower(strings.TrimSpace(filter.EducationKeyword))

	kept := make([]types.Evaluation, 0, len(evaluations))
	for _, e := range evaluations {
		if filter.MinExperience != nil && (e.ExperienceYears == nil || *e.ExperienceYears < *filter.MinExperience) {
			continue
		}
		if filter.MaxExperience != nil && (e.ExperienceYears == nil || *e.ExperienceYears > *filter.MaxExperience) {
			continue
		}
		if skillsKeyword != "" && !anyContains(e.SkillsExtracted, skillsKeyword) {
			continue
		}
		if educationKeyword != "" && (e.Education == nil || !strings.Contains(strings.ToLower(*e.Education), educationKeyword)) {
			continue
		}
		kept = append(kept, e)
	}
	return kept
}

// SortEvaluations orders evaluations with the ranking sorter.
func SortEvaluations(evaluations []types.Evaluation, field types.SortField, order types.SortOrder) []types.Evaluation {
	entries := make([]types.RankedEntry, len(evaluations))
	byID := make(map[string]types.Evaluation, len(evaluations))
	for i := range evaluations {
		entries[i] = evaluations[i].Entry()
		byID[entries[i].ID] = evaluations[i]
	}

	sorted := make([]types.Evaluation, 0, len(evaluations))
	for _, entry := range ranking.SortEntries(entries, field, order) {
		sorted = append(sorted, byID[entry.ID])
	}
	return sorted
}

func anyContains(items []string, needle string) bool {
	for _, item := range items {
		if strings.Contains(strings.ToLower(item), needle) {
			return true
		}
	}
	return false
}

// Summary aggregates evaluation counts and averages for a job.
func (s *Service) Summary(ctx context.Context, jobID string) (*types.EvaluationSummary, error) {
	job, err := s.requireJob(ctx, jobID)
	if err != nil {
		return nil, err
	}

	total, err := s.store.CountResumes(ctx, job.JobID)
	if err != nil {
		return nil, err
	}
	evaluations, err := s.store.ListEvaluations(ctx, db.EvaluationQuery{JobID: job.JobID})
	if err != nil {
		return nil, err
	}

	summary := Summarize(evaluations, total)
	summary.JobID = job.JobID
	summary.JobTitle = job.Title
	return &summary, nil
}

// Summarize computes the counts and two-decimal averages over evaluations.
// The composite average covers evaluations that carry a breakdown.
func Summarize(evaluations []types.Evaluation, totalResumes int) types.EvaluationSummary {
	summary := types.EvaluationSummary{
		TotalResumes: totalResumes,
		Evaluated:    len(evaluations),
	}

	var scoreSum, compositeSum float64
	withBreakdown := 0
	for _, e := range evaluations {
		switch e.Status {
		case types.StatusOKToProceed:
			summary.OKToProceed++
		case types.StatusNotOK:
			summary.NotOK++
		}
		scoreSum += e.MatchScore
		if e.Breakdown != nil {
			compositeSum += e.Breakdown.CompositeScore
			withBreakdown++
		}
	}

	summary.Pending = max(totalResumes-summary.Evaluated, 0)
	if summary.Evaluated > 0 {
		summary.AverageScore = round2(scoreSum / float64(summary.Evaluated))
	}
	if withBreakdown > 0 {
		summary.AverageComposite = round2(compositeSum / float64(withBreakdown))
	}
	return summary
}

// DeleteByJob removes every evaluation of a job and returns how many were removed.
func (s *Service) DeleteByJob(ctx context.Context, jobID string) (int, error) {
	job, err := s.requireJob(ctx, jobID)
	if err != nil {
		return 0, err
	}

	count, err := s.store.DeleteEvaluationsByJob(ctx, job.JobID)
	if err != nil {
		return 0, err
	}

	s.audit(ctx, db.EntityJob, job.JobID, db.ActionAllEvaluationsDeleted, map[string]any{"count": count})
	s.publish(ctx, events.Event{Type: events.EvaluationDeleted, JobID: job.JobID, Count: count})
	s.log.Info("deleted evaluations", zap.String("job_id", job.JobID), zap.Int("count", count))
	return count, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
