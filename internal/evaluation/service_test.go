package evaluation

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jonathan/resume-shortlist/internal/db"
	"github.com/jonathan/resume-shortlist/internal/events"
	"github.com/jonathan/resume-shortlist/internal/ranking"
	"github.com/jonathan/resume-shortlist/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testJobTitle       = "Senior Backend Engineer"
	testJobDescription = "We need at least 5 years of experience building Go services on Kubernetes. A bachelor's degree in computer science is preferred."
	testResume         = "Jane Doe\nBackend engineer with 6 years of experience in Go, Kubernetes and PostgreSQL.\nB.Tech in Computer Science"
)

func floatPtr(v float64) *float64 { return &v }
func strPtr(v string) *string     { return &v }

type harness struct {
	store     *fakeStore
	evaluator *fakeEvaluator
	events    *recordingPublisher
	svc       *Service
	profile   types.CandidateProfile
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		store:  newFakeStore(),
		events: &recordingPublisher{},
		profile: types.CandidateProfile{
			Skills:          []string{"Go", "Kubernetes", "PostgreSQL"},
			ExperienceYears: floatPtr(6),
			Education:       strPtr("B.Tech in Computer Science"),
			PreviousRoles:   []string{"Backend Engineer"},
		},
		evaluator: &fakeEvaluator{result: types.MatchResult{
			MatchScore:    72,
			Justification: "Strong Go background.",
			MatchedSkills: []types.SkillMatch{{Skill: "Go", Matched: true, RelevanceScore: 0.9}},
		}},
	}
	h.svc = NewService(h.store, &fakeExtractor{profile: h.profile}, h.evaluator, h.events, nil, nil, Options{Concurrency: 2})
	return h
}

func TestResolveStatus(t *testing.T) {
	tests := []struct {
		name     string
		label    types.EvaluationStatus
		baseline float64
		want     types.EvaluationStatus
	}{
		{"evaluator label kept", types.StatusNotOK, 95, types.StatusNotOK},
		{"above threshold", "", 72, types.StatusOKToProceed},
		{"at threshold", "", 60, types.StatusOKToProceed},
		{"below threshold", "", 59.9, types.StatusNotOK},
		{"pending is not final", types.StatusPending, 80, types.StatusOKToProceed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveStatus(tt.label, tt.baseline, 60))
		})
	}
}

func TestEvaluate_CreatesEvaluation(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	job := h.store.addJob("A1234", testJobTitle, testJobDescription)
	resume := h.store.addResume(job.JobID, "jane_doe.txt", testResume)

	eval, err := h.svc.Evaluate(ctx, resume.ID)
	require.NoError(t, err)
	require.NotNil(t, eval)

	assert.NotEqual(t, uuid.Nil, eval.ID)
	assert.Equal(t, job.JobID, eval.JobID)
	assert.Equal(t, 72.0, eval.MatchScore)
	assert.Equal(t, types.StatusOKToProceed, eval.Status)
	require.NotNil(t, eval.CandidateName)
	assert.Equal(t, "Jane Doe", *eval.CandidateName)
	assert.Equal(t, h.profile.Skills, eval.SkillsExtracted)

	want := ranking.ComputeBreakdown(&h.profile, job.Posting(), testResume, 72)
	require.NotNil(t, eval.Breakdown)
	assert.Equal(t, want, *eval.Breakdown)

	stored, err := h.store.GetResume(ctx, resume.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.CandidateName)
	assert.Equal(t, "Jane Doe", *stored.CandidateName)

	assert.Equal(t, []string{"evaluation:created"}, h.store.auditActions())
	assert.Equal(t, []string{events.EvaluationCreated}, h.events.types())
}

func TestEvaluate_KeepsExistingName(t *testing.T) {
	h := newHarness(t)
	job := h.store.addJob("A1234", testJobTitle, testJobDescription)
	resume := h.store.addResume(job.JobID, "cv.txt", testResume)
	require.NoError(t, h.store.UpdateCandidateName(context.Background(), resume.ID, "J. Doe"))

	eval, err := h.svc.Evaluate(context.Background(), resume.ID)
	require.NoError(t, err)
	assert.Equal(t, "J. Doe", *eval.CandidateName)
}

func TestEvaluate_ReturnsExistingEvaluation(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	job := h.store.addJob("A1234", testJobTitle, testJobDescription)
	resume := h.store.addResume(job.JobID, "jane.txt", testResume)

	first, err := h.svc.Evaluate(ctx, resume.ID)
	require.NoError(t, err)

	h.evaluator.setScore(10)
	second, err := h.svc.Evaluate(ctx, resume.ID)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 72.0, second.MatchScore)
	assert.Equal(t, 1, h.evaluator.calls)
	assert.Len(t, h.events.types(), 1)
}

func TestEvaluate_NotFound(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	_, err := h.svc.Evaluate(ctx, uuid.New())
	var nf *NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "resume", nf.Kind)

	orphan := h.store.addResume("Z9999", "orphan.txt", testResume)
	_, err = h.svc.Evaluate(ctx, orphan.ID)
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "job", nf.Kind)
	assert.Equal(t, "Z9999", nf.ID)
}

func TestEvaluate_EvaluatorFailure(t *testing.T) {
	h := newHarness(t)
	job := h.store.addJob("A1234", testJobTitle, testJobDescription)
	resume := h.store.addResume(job.JobID, "bad.txt", "UNREADABLE scan")

	_, err := h.svc.Evaluate(context.Background(), resume.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to evaluate match")
	assert.Empty(t, h.events.types())
}

func TestEvaluateAll_CollectsFailures(t *testing.T) {
	h := newHarness(t)
	job := h.store.addJob("A1234", testJobTitle, testJobDescription)
	first := h.store.addResume(job.JobID, "one.txt", testResume)
	bad := h.store.addResume(job.JobID, "two.txt", "UNREADABLE")
	third := h.store.addResume(job.JobID, "three.txt", "Sam Lee\n3 years of experience with Go")

	batch, err := h.svc.EvaluateAll(context.Background(), job.JobID)
	require.NoError(t, err)

	require.Len(t, batch.Evaluations, 2)
	assert.Equal(t, first.ID, batch.Evaluations[0].ResumeID)
	assert.Equal(t, third.ID, batch.Evaluations[1].ResumeID)
	require.Len(t, batch.Failed, 1)
	assert.Equal(t, bad.ID, batch.Failed[0].ResumeID)

	got := h.events.types()
	assert.Equal(t, events.BatchCompleted, got[len(got)-1])
}

func TestEvaluateAll_UnknownJob(t *testing.T) {
	h := newHarness(t)
	_, err := h.svc.EvaluateAll(context.Background(), "Q0000")
	var nf *NotFoundError
	assert.True(t, errors.As(err, &nf))
}

func TestReEvaluate_ReplacesEvaluation(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	job := h.store.addJob("A1234", testJobTitle, testJobDescription)
	resume := h.store.addResume(job.JobID, "jane.txt", testResume)

	first, err := h.svc.Evaluate(ctx, resume.ID)
	require.NoError(t, err)

	h.evaluator.setScore(40)
	second, err := h.svc.ReEvaluate(ctx, resume.ID)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, 40.0, second.MatchScore)
	assert.Equal(t, types.StatusNotOK, second.Status)
	assert.NotEqual(t, first.Breakdown.CompositeScore, second.Breakdown.CompositeScore)
	assert.Equal(t, []string{events.EvaluationCreated, events.EvaluationDeleted, events.EvaluationCreated}, h.events.types())

	gone, err := h.store.GetEvaluation(ctx, first.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestGet_NotFound(t *testing.T) {
	h := newHarness(t)
	_, err := h.svc.Get(context.Background(), uuid.New())
	var nf *NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "evaluation", nf.Kind)
}

func TestToSnake(t *testing.T) {
	assert.Equal(t, "min_score", toSnake("MinScore"))
	assert.Equal(t, "title", toSnake("Title"))
	assert.Equal(t, "file_name", toSnake("FileName"))
}

func TestStoreInterfaceSatisfiedByDB(t *testing.T) {
	var _ Store = (*db.DB)(nil)
}
