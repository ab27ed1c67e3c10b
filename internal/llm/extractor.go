package llm

import (
	"context"
	"encoding/json"
	"fmt"
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
	promptFile        = "evaluation.json"
	maxResumeForParse = 8000
)

// BuildProfilePrompt renders the profile extraction prompt for a resume.
func BuildProfilePrompt(resumeText string) (string, error) {
	prompt, err := prompts.Render(promptFile, "extract-profile", map[string]string{
		"ResumeText": truncate(resumeText, maxResumeForParse),
	})
	if err != nil {
		return "", fmt.Errorf("failed to render extraction prompt: %w", err)
	}
	return prompt, nil
}

// EducationFallback finds education lines when the model returns none.
type EducationFallback interface {
	ExtractEducation(resumeText string) *string
}

// ProfileExtractor turns resume text into a CandidateProfile with Gemini.
type ProfileExtractor struct {
	client   Client
	cache    *cache.Cache
	fallback EducationFallback
	metrics  *metrics.Metrics
	log      *zap.Logger
}

// NewProfileExtractor creates an extractor. cache, fallback and m may be nil.
func NewProfileExtractor(client Client, c *cache.Cache, fallback EducationFallback, m *metrics.Metrics, log *zap.Logger) *ProfileExtractor {
	if log == nil {
		log = zap.NewNop()
	}
	return &ProfileExtractor{client: client, cache: c, fallback: fallback, metrics: m, log: log}
}

// Extract returns the profile for resumeText. Responses are cached by resume text.
func (e *ProfileExtractor) Extract(ctx context.Context, resumeText string) (*types.CandidateProfile, error) {
	key := cache.Key(resumeText)
	profile, err := cache.GetOrCompute(ctx, e.cache, key, func(ctx context.Context) (types.CandidateProfile, error) {
		return e.extract(ctx, resumeText)
	})
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (e *ProfileExtractor) extract(ctx context.Context, resumeText string) (types.CandidateProfile, error) {
	prompt, err := BuildProfilePrompt(resumeText)
	if err != nil {
		return types.CandidateProfile{}, err
	}

	started := time.Now()
	raw, err := e.client.GenerateJSON(ctx, prompt, TierLite)
	e.metrics.ObserveLLMCall("extract_profile", started, err)
	if err != nil {
		return types.CandidateProfile{}, fmt.Errorf("failed to extract profile: %w", err)
	}

	profile, err := ParseCandidateProfile(raw)
	if err != nil {
		// Unparseable output degrades to an empty profile with heuristic education.
		e.log.Warn("unparseable profile response", zap.Error(err))
		profile = types.CandidateProfile{Skills: []string{}, PreviousRoles: []string{}}
	}

	if profile.EducationText() == "" && e.fallback != nil {
		profile.Education = e.fallback.ExtractEducation(resumeText)
	}
	return profile, nil
}

// ParseCandidateProfile decodes and validates a profile JSON document.
func ParseCandidateProfile(raw string) (types.CandidateProfile, error) {
	raw = CleanJSONBlock(raw)
	if err := schemas.Validate(schemas.CandidateProfile, []byte(raw)); err != nil {
		return types.CandidateProfile{}, fmt.Errorf("invalid profile response: %w", err)
	}

	var profile types.CandidateProfile
	if err := json.Unmarshal([]byte(raw), &profile); err != nil {
		return types.CandidateProfile{}, fmt.Errorf("failed to parse profile response: %w", err)
	}
	if profile.Skills == nil {
		profile.Skills = []string{}
	}
	if profile.PreviousRoles == nil {
		profile.PreviousRoles = []string{}
	}
	if profile.Education != nil && strings.TrimSpace(*profile.Education) == "" {
		profile.Education = nil
	}
	return profile, nil
}
