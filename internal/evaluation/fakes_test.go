package evaluation

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-shortlist/internal/db"
	"github.com/jonathan/resume-shortlist/internal/events"
	"github.com/jonathan/resume-shortlist/internal/types"
)

type auditRow struct {
	entityType, entityID, action string
	details                      map[string]any
}

type fakeStore struct {
	mu          sync.Mutex
	jobs        map[string]*types.Job
	resumes     map[uuid.UUID]*types.Resume
	evaluations map[uuid.UUID]*types.Evaluation
	audits      []auditRow
	clock       time.Time
	nextJobID   int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		jobs:        map[string]*types.Job{},
		resumes:     map[uuid.UUID]*types.Resume{},
		evaluations: map[uuid.UUID]*types.Evaluation{},
		clock:       time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (f *fakeStore) tick() time.Time {
	f.clock = f.clock.Add(time.Minute)
	return f.clock
}

func (f *fakeStore) addJob(jobID, title, description string) *types.Job {
	f.mu.Lock()
	defer f.mu.Unlock()
	job := &types.Job{JobID: jobID, Title: title, Description: description, CreatedAt: f.tick()}
	f.jobs[jobID] = job
	return job
}

func (f *fakeStore) addResume(jobID, fileName, content string) *types.Resume {
	f.mu.Lock()
	defer f.mu.Unlock()
	r := &types.Resume{ID: uuid.New(), JobID: jobID, FileName: fileName, Content: content, UploadedAt: f.tick()}
	f.resumes[r.ID] = r
	return r
}

func (f *fakeStore) addEvaluation(e types.Evaluation) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.EvaluatedAt.IsZero() {
		e.EvaluatedAt = f.tick()
	}
	f.evaluations[e.ID] = &e
}

func (f *fakeStore) CreateJob(_ context.Context, title, description string) (*types.Job, error) {
	f.mu.Lock()
	f.nextJobID++
	id := fmt.Sprintf("J%04d", f.nextJobID)
	f.mu.Unlock()
	return f.addJob(id, title, description), nil
}

func (f *fakeStore) GetJob(_ context.Context, jobID string) (*types.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	job, ok := f.jobs[jobID]
	if !ok {
		return nil, nil
	}
	cp := *job
	return &cp, nil
}

func (f *fakeStore) ListJobs(_ context.Context, query string, page, pageSize int) ([]types.Job, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var all []types.Job
	for _, j := range f.jobs {
		if query == "" || strings.Contains(strings.ToLower(j.Title), strings.ToLower(query)) || strings.Contains(j.JobID, query) {
			all = append(all, *j)
		}
	}
	sort.Slice(all, func(a, b int) bool { return all[a].CreatedAt.After(all[b].CreatedAt) })
	start := min((page-1)*pageSize, len(all))
	end := min(start+pageSize, len(all))
	return all[start:end], len(all), nil
}

func (f *fakeStore) UpdateJob(_ context.Context, jobID string, title, description *string) (*types.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	job, ok := f.jobs[jobID]
	if !ok {
		return nil, nil
	}
	if title != nil {
		job.Title = *title
	}
	if description != nil {
		job.Description = *description
	}
	cp := *job
	return &cp, nil
}

func (f *fakeStore) DeleteJob(_ context.Context, jobID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.jobs[jobID]; !ok {
		return false, nil
	}
	delete(f.jobs, jobID)
	return true, nil
}

func (f *fakeStore) CreateResume(_ context.Context, r *types.Resume) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	r.UploadedAt = f.tick()
	cp := *r
	f.resumes[r.ID] = &cp
	return nil
}

func (f *fakeStore) GetResume(_ context.Context, id uuid.UUID) (*types.Resume, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.resumes[id]
	if !ok {
		return nil, nil
	}
	cp := *r
	return &cp, nil
}

func (f *fakeStore) ListResumes(_ context.Context, jobID string) ([]types.Resume, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []types.Resume{}
	for _, r := range f.resumes {
		if r.JobID == jobID {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].UploadedAt.Before(out[b].UploadedAt) })
	return out, nil
}

func (f *fakeStore) CountResumes(ctx context.Context, jobID string) (int, error) {
	resumes, err := f.ListResumes(ctx, jobID)
	return len(resumes), err
}

func (f *fakeStore) UpdateCandidateName(_ context.Context, id uuid.UUID, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if r, ok := f.resumes[id]; ok {
		r.CandidateName = &name
	}
	return nil
}

func (f *fakeStore) DeleteResume(_ context.Context, id uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.resumes[id]; !ok {
		return false, nil
	}
	delete(f.resumes, id)
	return true, nil
}

func (f *fakeStore) InsertEvaluation(_ context.Context, e *types.Evaluation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.evaluations {
		if existing.ResumeID == e.ResumeID {
			return errors.New("duplicate key value violates unique constraint")
		}
	}
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	e.EvaluatedAt = f.tick()
	cp := *e
	f.evaluations[e.ID] = &cp
	return nil
}

func (f *fakeStore) withResume(e types.Evaluation) *types.Evaluation {
	if r, ok := f.resumes[e.ResumeID]; ok {
		e.CandidateName = r.CandidateName
		e.FileName = r.FileName
	}
	return &e
}

func (f *fakeStore) GetEvaluation(_ context.Context, id uuid.UUID) (*types.Evaluation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.evaluations[id]
	if !ok {
		return nil, nil
	}
	return f.withResume(*e), nil
}

func (f *fakeStore) GetEvaluationByResume(_ context.Context, resumeID uuid.UUID) (*types.Evaluation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.evaluations {
		if e.ResumeID == resumeID {
			return f.withResume(*e), nil
		}
	}
	return nil, nil
}

func (f *fakeStore) ListEvaluations(_ context.Context, q db.EvaluationQuery) ([]types.Evaluation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []types.Evaluation{}
	for _, e := range f.evaluations {
		if e.JobID != q.JobID {
			continue
		}
		if q.Status != nil && e.Status != *q.Status {
			continue
		}
		if q.MinScore != nil && e.MatchScore < *q.MinScore {
			continue
		}
		if q.MaxScore != nil && e.MatchScore > *q.MaxScore {
			continue
		}
		out = append(out, *f.withResume(*e))
	}
	sort.Slice(out, func(a, b int) bool { return out[a].EvaluatedAt.Before(out[b].EvaluatedAt) })
	return out, nil
}

func (f *fakeStore) DeleteEvaluationByResume(_ context.Context, resumeID uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, e := range f.evaluations {
		if e.ResumeID == resumeID {
			delete(f.evaluations, id)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) DeleteEvaluationsByJob(_ context.Context, jobID string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for id, e := range f.evaluations {
		if e.JobID == jobID {
			delete(f.evaluations, id)
			n++
		}
	}
	return n, nil
}

func (f *fakeStore) LogAudit(_ context.Context, entityType, entityID, action string, details map[string]any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.audits = append(f.audits, auditRow{entityType, entityID, action, details})
	return nil
}

func (f *fakeStore) auditActions() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, a := range f.audits {
		out = append(out, a.entityType+":"+a.action)
	}
	return out
}

type fakeExtractor struct {
	profile types.CandidateProfile
}

func (f *fakeExtractor) Extract(context.Context, string) (*types.CandidateProfile, error) {
	p := f.profile
	return &p, nil
}

// fakeEvaluator fails for resumes containing "UNREADABLE".
type fakeEvaluator struct {
	mu     sync.Mutex
	result types.MatchResult
	calls  int
}

func (f *fakeEvaluator) Evaluate(_ context.Context, _ types.JobPosting, _ *types.CandidateProfile, resumeText string) (*types.MatchResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if strings.Contains(resumeText, "UNREADABLE") {
		return nil, errors.New("evaluator rejected resume")
	}
	r := f.result
	return &r, nil
}

func (f *fakeEvaluator) setScore(score float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.result.MatchScore = score
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(_ context.Context, e events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []string
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}
