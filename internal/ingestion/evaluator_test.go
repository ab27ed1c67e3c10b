package ingestion

import (
	"context"
	"testing"

	"github.com/jonathan/resume-shortlist/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeuristicEvaluator_Evaluate(t *testing.T) {
	posting := types.JobPosting{Title: "Backend Engineer", Description: "Python, Docker, Kubernetes and PostgreSQL required"}
	profile := &types.CandidateProfile{Skills: []string{"Python 3", "Docker"}}

	result, err := NewHeuristicEvaluator().Evaluate(context.Background(), posting, profile, "")
	require.NoError(t, err)

	assert.Equal(t, 50.0, result.MatchScore)
	assert.Empty(t, result.Status)
	assert.Equal(t, "Matched 2 of 4 posting skills: Python, Docker. Missing: PostgreSQL, Kubernetes.", result.Justification)
	assert.Equal(t, []string{"Python", "Docker"}, result.Strengths)
	assert.Equal(t, []string{"PostgreSQL", "Kubernetes"}, result.Gaps)
	require.Len(t, result.MatchedSkills, 4)
	assert.Equal(t, types.SkillMatch{Skill: "Python", Matched: true, RelevanceScore: 1}, result.MatchedSkills[0])
	assert.Equal(t, types.SkillMatch{Skill: "PostgreSQL", Matched: false, RelevanceScore: 0}, result.MatchedSkills[1])
}

func TestHeuristicEvaluator_FallsBackToResumeText(t *testing.T) {
	posting := types.JobPosting{Title: "ML Engineer", Description: "PyTorch and Kubernetes"}

	result, err := NewHeuristicEvaluator().Evaluate(context.Background(), posting, nil, "Trained models in PyTorch")
	require.NoError(t, err)

	assert.Equal(t, 50.0, result.MatchScore)
}

func TestHeuristicEvaluator_RoundsToOneDecimal(t *testing.T) {
	posting := types.JobPosting{Description: "Python, Docker, Kubernetes"}
	profile := &types.CandidateProfile{Skills: []string{"python"}}

	result, err := NewHeuristicEvaluator().Evaluate(context.Background(), posting, profile, "")
	require.NoError(t, err)

	assert.Equal(t, 33.3, result.MatchScore)
}

func TestHeuristicEvaluator_NoPostingSkills(t *testing.T) {
	result, err := NewHeuristicEvaluator().Evaluate(context.Background(), types.JobPosting{Title: "Barista"}, nil, "Python")
	require.NoError(t, err)

	assert.Equal(t, 0.0, result.MatchScore)
	assert.Equal(t, "No recognised skills in the job posting.", result.Justification)
	assert.Empty(t, result.MatchedSkills)
}
