package main

import (
	"encoding/json"
	"testing"

	"github.com/jonathan/resume-shortlist/internal/ranking"
	"github.com/jonathan/resume-shortlist/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setEvaluateFlags(resume, job string, offline bool) {
	evaluateResumeFile = resume
	evaluateJobFile = job
	evaluateJobURL = ""
	evaluateJobTitle = "Senior Backend Engineer"
	evaluateBrowser = false
	evaluateOffline = offline
	evaluateOutput = ""
}

func TestRunEvaluate_Offline(t *testing.T) {
	isolateEnv(t)
	setEvaluateFlags(writeFile(t, "resume.txt", testResume), writeFile(t, "job.txt", testPosting), true)

	cmd, stdout, _ := newTestCmd()
	require.NoError(t, runEvaluate(cmd, nil))

	var got evaluateResult
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &got))
	assert.Equal(t, "Jane Doe", got.CandidateName)
	require.NotNil(t, got.Profile)
	require.NotNil(t, got.Match)
	assert.True(t, types.ValidStatus(got.Status), "status %q", got.Status)
	assert.GreaterOrEqual(t, got.Breakdown.CompositeScore, 0.0)
	assert.LessOrEqual(t, got.Breakdown.CompositeScore, 100.0)
	assert.Equal(t, ranking.Notes(got.Breakdown), got.Notes)
}

func TestRunEvaluate_RequiresAPIKey(t *testing.T) {
	isolateEnv(t)
	setEvaluateFlags(writeFile(t, "resume.txt", testResume), writeFile(t, "job.txt", testPosting), false)

	cmd, _, _ := newTestCmd()
	err := runEvaluate(cmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GEMINI_API_KEY")
}

func TestRunEvaluate_MissingPosting(t *testing.T) {
	isolateEnv(t)
	setEvaluateFlags(writeFile(t, "resume.txt", testResume), "/nonexistent/job.txt", true)

	cmd, _, _ := newTestCmd()
	err := runEvaluate(cmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load job posting")
}

func TestRunMigrate_Print(t *testing.T) {
	migratePrint = true
	t.Cleanup(func() { migratePrint = false })

	cmd, stdout, _ := newTestCmd()
	require.NoError(t, runMigrate(cmd, nil))
	assert.Contains(t, stdout.String(), "CREATE TABLE IF NOT EXISTS evaluations")
}

func TestRunMigrate_RequiresDatabaseURL(t *testing.T) {
	isolateEnv(t)
	migratePrint = false

	cmd, _, _ := newTestCmd()
	err := runMigrate(cmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}
