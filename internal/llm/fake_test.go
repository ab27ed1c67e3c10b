package llm

import (
	"context"
	"sync"
)

type fakeClient struct {
	mu       sync.Mutex
	response string
	err      error
	prompts  []string
	tiers    []ModelTier
}

func (f *fakeClient) GenerateJSON(_ context.Context, prompt string, tier ModelTier) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, prompt)
	f.tiers = append(f.tiers, tier)
	return f.response, f.err
}

func (f *fakeClient) GetModel(tier ModelTier) string { return DefaultConfig().GetModel(tier) }

func (f *fakeClient) Close() error { return nil }

func (f *fakeClient) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.prompts)
}

type fixedEducation string

func (e fixedEducation) ExtractEducation(string) *string {
	s := string(e)
	if s == "" {
		return nil
	}
	return &s
}
