package main

import (
	"encoding/json"
	"testing"

	"github.com/jonathan/resume-shortlist/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunExtract_Heuristic(t *testing.T) {
	isolateEnv(t)
	extractResumeFile = writeFile(t, "resume.txt", testResume)
	extractUseLLM = false
	extractOutput = ""

	cmd, stdout, _ := newTestCmd()
	require.NoError(t, runExtract(cmd, nil))

	var profile types.CandidateProfile
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &profile))
	require.NotNil(t, profile.ExperienceYears)
	assert.InDelta(t, 6, *profile.ExperienceYears, 0.01)
	assert.Contains(t, profile.Skills, "Python")
	assert.Contains(t, profile.Skills, "Kubernetes")
	require.NotNil(t, profile.Education)
	assert.Contains(t, *profile.Education, "Computer Science")
}

func TestRunExtract_LLMRequiresAPIKey(t *testing.T) {
	isolateEnv(t)
	extractResumeFile = writeFile(t, "resume.txt", testResume)
	extractUseLLM = true
	extractOutput = ""

	cmd, _, _ := newTestCmd()
	err := runExtract(cmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GEMINI_API_KEY")
}

func TestRunExtract_MissingFile(t *testing.T) {
	isolateEnv(t)
	extractResumeFile = "/nonexistent/resume.txt"
	extractUseLLM = false
	extractOutput = ""

	cmd, _, _ := newTestCmd()
	err := runExtract(cmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read resume")
}
