// Package llm provides the Gemini-backed profile extractor and match evaluator.
package llm

import (
	"maps"
	"time"
)

// ModelTier represents the complexity/capability level of a model
type ModelTier string

const (
	// TierLite is used for resume profile extraction
	TierLite ModelTier = "lite"
	// TierStandard is used for match evaluation
	TierStandard ModelTier = "standard"
	// TierAdvanced is available for callers that override the evaluator tier
	TierAdvanced ModelTier = "advanced"
)

// Provider represents an LLM provider
type Provider string

// ProviderGemini is the Google Gemini provider
const ProviderGemini Provider = "gemini"

const defaultTemperature float32 = 0.1

// TierSettings configures the model used for one tier.
type TierSettings struct {
	Model       string
	Temperature float32
	// MaxOutputTokens caps response length; zero leaves the model default
	MaxOutputTokens int32
}

// Config selects models per tier and how transient API failures are retried.
type Config struct {
	Provider Provider
	Tiers    map[ModelTier]TierSettings

	// MaxAttempts bounds the calls made for one request (1 disables retries)
	MaxAttempts int
	// RetryBackoff is the first retry delay; it doubles on every further attempt
	RetryBackoff time.Duration
}

// DefaultConfig returns the default Gemini configuration
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Tiers: map[ModelTier]TierSettings{
			TierLite:     {Model: "gemini-2.5-flash-lite", Temperature: 0.1, MaxOutputTokens: 1000},
			TierStandard: {Model: "gemini-2.5-flash", Temperature: 0.2, MaxOutputTokens: 1000},
			TierAdvanced: {Model: "gemini-2.5-pro", Temperature: 0.2},
		},
		MaxAttempts:  3,
		RetryBackoff: 500 * time.Millisecond,
	}
}

// Settings returns the settings for tier. Unknown tiers fall back to the
// standard tier, then the lite tier.
func (c *Config) Settings(tier ModelTier) (TierSettings, bool) {
	for _, t := range []ModelTier{tier, TierStandard, TierLite} {
		if s, ok := c.Tiers[t]; ok && s.Model != "" {
			return s, true
		}
	}
	return TierSettings{}, false
}

// GetModel returns the model name for a tier, or "" when none is configured.
func (c *Config) GetModel(tier ModelTier) string {
	s, _ := c.Settings(tier)
	return s.Model
}

// GetTemperature returns the sampling temperature for a tier.
func (c *Config) GetTemperature(tier ModelTier) float32 {
	if s, ok := c.Tiers[tier]; ok && s.Temperature > 0 {
		return s.Temperature
	}
	return defaultTemperature
}

// attempts is MaxAttempts with a floor of one.
func (c *Config) attempts() int {
	return max(c.MaxAttempts, 1)
}

// WithModel returns a copy of the config using model for tier.
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	clone := *c
	clone.Tiers = maps.Clone(c.Tiers)
	if clone.Tiers == nil {
		clone.Tiers = make(map[ModelTier]TierSettings, 1)
	}
	s := clone.Tiers[tier]
	s.Model = model
	clone.Tiers[tier] = s
	return &clone
}
