package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/jonathan/resume-shortlist/internal/cache"
	"github.com/jonathan/resume-shortlist/internal/metrics"
	"github.com/jonathan/resume-shortlist/internal/prompts"
	"github.com/jonathan/resume-shortlist/internal/schemas"
	"github.com/jonathan/resume-shortlist/internal/types"
	"go.uber.org/zap"
)

const (
	maxDescriptionForEval = 3000
	maxResumeForEval      = 2000
)

// MatchEvaluator asks Gemini for the baseline match judgement of a resume.
type MatchEvaluator struct {
	client        Client
	cache         *cache.Cache
	passThreshold float64
	metrics       *metrics.Metrics
	log           *zap.Logger
}

// NewMatchEvaluator creates an evaluator. c and m may be nil.
func NewMatchEvaluator(client Client, c *cache.Cache, passThreshold float64, m *metrics.Metrics, log *zap.Logger) *MatchEvaluator {
	if log == nil {
		log = zap.NewNop()
	}
	return &MatchEvaluator{client: client, cache: c, passThreshold: passThreshold, metrics: m, log: log}
}

// Evaluate scores the resume against the posting. The result score is clamped to [0,100].
func (e *MatchEvaluator) Evaluate(ctx context.Context, posting types.JobPosting, profile *types.CandidateProfile, resumeText string) (*types.MatchResult, error) {
	prompt, err := BuildMatchPrompt(posting, profile, resumeText, e.passThreshold)
	if err != nil {
		return nil, err
	}

	result, err := cache.GetOrCompute(ctx, e.cache, cache.Key(prompt), func(ctx context.Context) (types.MatchResult, error) {
		started := time.Now()
		raw, err := e.client.GenerateJSON(ctx, prompt, TierStandard)
		e.metrics.ObserveLLMCall("evaluate_match", started, err)
		if err != nil {
			return types.MatchResult{}, fmt.Errorf("failed to evaluate match: %w", err)
		}
		return ParseMatchResult(raw)
	})
	if err != nil {
		return nil, err
	}

	e.log.Debug("match evaluated",
		zap.String("job_title", posting.Title),
		zap.Float64("match_score", result.MatchScore),
		zap.String("status", string(result.Status)))
	return &result, nil
}

// BuildMatchPrompt renders the evaluation prompt for one resume.
func BuildMatchPrompt(posting types.JobPosting, profile *types.CandidateProfile, resumeText string, passThreshold float64) (string, error) {
	if profile == nil {
		profile = &types.CandidateProfile{}
	}

	experience := "Not specified"
	if profile.ExperienceYears != nil {
		experience = strconv.FormatFloat(*profile.ExperienceYears, 'f', -1, 64)
	}
	education := profile.EducationText()
	if education == "" {
		education = "Not specified"
	}

	prompt, err := prompts.Render(promptFile, "evaluate-match", map[string]string{
		"JobTitle":        posting.Title,
		"JobDescription":  truncate(posting.Description, maxDescriptionForEval),
		"Skills":          joinOrNone(profile.Skills),
		"ExperienceYears": experience,
		"Education":       education,
		"PreviousRoles":   joinOrNone(profile.PreviousRoles),
		"ResumeText":      truncate(resumeText, maxResumeForEval),
		"PassThreshold":   strconv.FormatFloat(passThreshold, 'f', -1, 64),
	})
	if err != nil {
		return "", fmt.Errorf("failed to render evaluation prompt: %w", err)
	}
	return prompt, nil
}

// ParseMatchResult decodes and validates an evaluator response.
func ParseMatchResult(raw string) (types.MatchResult, error) {
	raw = CleanJSONBlock(raw)
	if err := schemas.Validate(schemas.MatchEvaluation, []byte(raw)); err != nil {
		return types.MatchResult{}, fmt.Errorf("invalid evaluation response: %w", err)
	}

	var result types.MatchResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return types.MatchResult{}, fmt.Errorf("failed to parse evaluation response: %w", err)
	}

	switch {
	case math.IsNaN(result.MatchScore) || result.MatchScore < 0:
		result.MatchScore = 0
	case result.MatchScore > 100:
		result.MatchScore = 100
	}
	if result.MatchedSkills == nil {
		result.MatchedSkills = []types.SkillMatch{}
	}
	result.Justification = strings.TrimSpace(result.Justification)
	return result, nil
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "None"
	}
	return strings.Join(items, ", ")
}
