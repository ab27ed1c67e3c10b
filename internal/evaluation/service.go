// Package evaluation runs the resume evaluation lifecycle: extraction, baseline
// judgement, ranking breakdown, persistence and listing.
package evaluation

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-shortlist/internal/db"
	"github.com/jonathan/resume-shortlist/internal/events"
	"github.com/jonathan/resume-shortlist/internal/ingestion"
	"github.com/jonathan/resume-shortlist/internal/metrics"
	"github.com/jonathan/resume-shortlist/internal/ranking"
	"github.com/jonathan/resume-shortlist/internal/types"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Store is the persistence the service needs. *db.DB implements it.
type Store interface {
	CreateJob(ctx context.Context, title, description string) (*types.Job, error)
	GetJob(ctx context.Context, jobID string) (*types.Job, error)
	ListJobs(ctx context.Context, query string, page, pageSize int) ([]types.Job, int, error)
	UpdateJob(ctx context.Context, jobID string, title, description *string) (*types.Job, error)
	DeleteJob(ctx context.Context, jobID string) (bool, error)

	CreateResume(ctx context.Context, r *types.Resume) error
	GetResume(ctx context.Context, id uuid.UUID) (*types.Resume, error)
	ListResumes(ctx context.Context, jobID string) ([]types.Resume, error)
	CountResumes(ctx context.Context, jobID string) (int, error)
	UpdateCandidateName(ctx context.Context, id uuid.UUID, name string) error
	DeleteResume(ctx context.Context, id uuid.UUID) (bool, error)

	InsertEvaluation(ctx context.Context, e *types.Evaluation) error
	GetEvaluation(ctx context.Context, id uuid.UUID) (*types.Evaluation, error)
	GetEvaluationByResume(ctx context.Context, resumeID uuid.UUID) (*types.Evaluation, error)
	ListEvaluations(ctx context.Context, q db.EvaluationQuery) ([]types.Evaluation, error)
	DeleteEvaluationByResume(ctx context.Context, resumeID uuid.UUID) (bool, error)
	DeleteEvaluationsByJob(ctx context.Context, jobID string) (int, error)

	LogAudit(ctx context.Context, entityType, entityID, action string, details map[string]any) error
}

// Extractor turns resume text into a profile.
type Extractor interface {
	Extract(ctx context.Context, resumeText string) (*types.CandidateProfile, error)
}

// Evaluator produces the baseline match judgement.
type Evaluator interface {
	Evaluate(ctx context.Context, posting types.JobPosting, profile *types.CandidateProfile, resumeText string) (*types.MatchResult, error)
}

// Default options
const (
	DefaultConcurrency   = 4
	DefaultPassThreshold = 60.0
)

// Options tunes the service.
type Options struct {
	Concurrency   int
	PassThreshold float64
}

// Service coordinates evaluations. It is safe for concurrent use.
type Service struct {
	store         Store
	extractor     Extractor
	evaluator     Evaluator
	events        events.Publisher
	metrics       *metrics.Metrics
	log           *zap.Logger
	concurrency   int
	passThreshold float64
}

// NewService creates a Service. publisher, m and log may be nil.
func NewService(store Store, extractor Extractor, evaluator Evaluator, publisher events.Publisher, m *metrics.Metrics, log *zap.Logger, opts Options) *Service {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = DefaultConcurrency
	}
	if opts.PassThreshold <= 0 {
		opts.PassThreshold = DefaultPassThreshold
	}
	return &Service{
		store:         store,
		extractor:     extractor,
		evaluator:     evaluator,
		events:        publisher,
		metrics:       m,
		log:           log,
		concurrency:   opts.Concurrency,
		passThreshold: opts.PassThreshold,
	}
}

// ResolveStatus keeps a final label from the evaluator and otherwise applies
// the pass threshold to the baseline score.
func ResolveStatus(label types.EvaluationStatus, baseline, passThreshold float64) types.EvaluationStatus {
	if types.ValidStatus(label) {
		return label
	}
	if baseline >= passThreshold {
		return types.StatusOKToProceed
	}
	return types.StatusNotOK
}

// Evaluate scores a resume against its job. An existing evaluation is returned unchanged.
func (s *Service) Evaluate(ctx context.Context, resumeID uuid.UUID) (*types.Evaluation, error) {
	resume, err := s.store.GetResume(ctx, resumeID)
	if err != nil {
		return nil, err
	}
	if resume == nil {
		return nil, notFound("resume", resumeID.String())
	}

	existing, err := s.store.GetEvaluationByResume(ctx, resumeID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		s.metrics.ObserveEvaluation("existing", string(existing.Status), 0)
		return existing, nil
	}

	job, err := s.store.GetJob(ctx, resume.JobID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, notFound("job", resume.JobID)
	}

	log := s.log.With(zap.String("job_id", job.JobID), zap.String("resume_id", resumeID.String()))

	candidateName := resume.CandidateName
	if candidateName == nil || *candidateName == "" {
		name := ingestion.ExtractCandidateName(resume.Content, resume.FileName)
		candidateName = &name
		if err := s.store.UpdateCandidateName(ctx, resume.ID, name); err != nil {
			log.Warn("failed to store candidate name", zap.Error(err))
		}
	}

	started := time.Now()
	posting := job.Posting()

	profile, err := s.extractor.Extract(ctx, resume.Content)
	if err != nil {
		s.metrics.ObserveEvaluation("failed", "", 0)
		return nil, fmt.Errorf("failed to extract profile: %w", err)
	}
	if profile == nil {
		profile = &types.CandidateProfile{}
	}

	match, err := s.evaluator.Evaluate(ctx, posting, profile, resume.Content)
	if err != nil {
		s.metrics.ObserveEvaluation("failed", "", 0)
		return nil, fmt.Errorf("failed to evaluate match: %w", err)
	}

	breakdown := ranking.ComputeBreakdown(profile, posting, resume.Content, match.MatchScore)
	eval := &types.Evaluation{
		ResumeID:        resume.ID,
		JobID:           job.JobID,
		CandidateName:   candidateName,
		FileName:        resume.FileName,
		MatchScore:      match.MatchScore,
		Status:          ResolveStatus(match.Status, match.MatchScore, s.passThreshold),
		Justification:   match.Justification,
		SkillsExtracted: profile.Skills,
		SkillsMatched:   match.MatchedSkills,
		ExperienceYears: profile.ExperienceYears,
		Education:       profile.Education,
		PreviousRoles:   profile.PreviousRoles,
		Breakdown:       &breakdown,
	}

	if err := s.store.InsertEvaluation(ctx, eval); err != nil {
		// A concurrent call may have stored the evaluation first.
		if again, getErr := s.store.GetEvaluationByResume(ctx, resumeID); getErr == nil && again != nil {
			return again, nil
		}
		s.metrics.ObserveEvaluation("failed", "", 0)
		return nil, err
	}

	s.audit(ctx, db.EntityEvaluation, eval.ID.String(), db.ActionCreated, map[string]any{
		"resume_id":       resume.ID.String(),
		"job_id":          job.JobID,
		"match_score":     eval.MatchScore,
		"status":          string(eval.Status),
		"composite_score": breakdown.CompositeScore,
	})
	s.publish(ctx, events.Event{
		Type:           events.EvaluationCreated,
		JobID:          job.JobID,
		ResumeID:       resume.ID.String(),
		EvaluationID:   eval.ID.String(),
		Status:         string(eval.Status),
		MatchScore:     eval.MatchScore,
		CompositeScore: breakdown.CompositeScore,
	})
	s.metrics.ObserveEvaluation("created", string(eval.Status), breakdown.CompositeScore)

	log.Info("evaluated resume",
		zap.Float64("match_score", eval.MatchScore),
		zap.Float64("composite_score", breakdown.CompositeScore),
		zap.String("status", string(eval.Status)),
		zap.Duration("duration", time.Since(started)),
	)
	return eval, nil
}

// EvaluateAll evaluates every resume of a job with bounded concurrency.
// Individual failures are logged and reported; they never abort the batch.
func (s *Service) EvaluateAll(ctx context.Context, jobID string) (*types.BatchResult, error) {
	job, err := s.requireJob(ctx, jobID)
	if err != nil {
		return nil, err
	}

	resumes, err := s.store.ListResumes(ctx, job.JobID)
	if err != nil {
		return nil, err
	}

	results := make([]*types.Evaluation, len(resumes))
	var (
		mu     sync.Mutex
		failed []types.BatchError
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i := range resumes {
		resume := resumes[i]
		g.Go(func() error {
			eval, err := s.Evaluate(gctx, resume.ID)
			if err != nil {
				s.log.Error("failed to evaluate resume",
					zap.String("job_id", job.JobID),
					zap.String("resume_id", resume.ID.String()),
					zap.Error(err))
				mu.Lock()
				failed = append(failed, types.BatchError{ResumeID: resume.ID, Error: err.Error()})
				mu.Unlock()
				return nil
			}
			results[i] = eval
			return nil
		})
	}
	_ = g.Wait()

	batch := &types.BatchResult{JobID: job.JobID, Evaluations: make([]types.Evaluation, 0, len(resumes)), Failed: failed}
	for _, eval := range results {
		if eval != nil {
			batch.Evaluations = append(batch.Evaluations, *eval)
		}
	}

	s.publish(ctx, events.Event{Type: events.BatchCompleted, JobID: job.JobID, Count: len(batch.Evaluations)})
	s.log.Info("batch evaluation finished",
		zap.String("job_id", job.JobID),
		zap.Int("evaluated", len(batch.Evaluations)),
		zap.Int("failed", len(failed)))
	return batch, nil
}

// ReEvaluate discards the resume's evaluation and evaluates it again.
func (s *Service) ReEvaluate(ctx context.Context, resumeID uuid.UUID) (*types.Evaluation, error) {
	resume, err := s.store.GetResume(ctx, resumeID)
	if err != nil {
		return nil, err
	}
	if resume == nil {
		return nil, notFound("resume", resumeID.String())
	}

	deleted, err := s.store.DeleteEvaluationByResume(ctx, resumeID)
	if err != nil {
		return nil, err
	}
	if deleted {
		s.publish(ctx, events.Event{Type: events.EvaluationDeleted, JobID: resume.JobID, ResumeID: resumeID.String(), Count: 1})
	}
	return s.Evaluate(ctx, resumeID)
}

// Get returns one evaluation.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*types.Evaluation, error) {
	eval, err := s.store.GetEvaluation(ctx, id)
	if err != nil {
		return nil, err
	}
	if eval == nil {
		return nil, notFound("evaluation", id.String())
	}
	return eval, nil
}

func (s *Service) requireJob(ctx context.Context, jobID string) (*types.Job, error) {
	job, err := s.store.GetJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, notFound("job", jobID)
	}
	return job, nil
}

func (s *Service) audit(ctx context.Context, entityType, entityID, action string, details map[string]any) {
	if err := s.store.LogAudit(ctx, entityType, entityID, action, details); err != nil {
		s.log.Warn("failed to write audit log",
			zap.String("entity_type", entityType),
			zap.String("entity_id", entityID),
			zap.Error(err))
	}
}

func (s *Service) publish(ctx context.Context, event events.Event) {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}
	err := s.events.Publish(ctx, event)
	s.metrics.EventPublished(event.Type, err)
	if err != nil {
		s.log.Warn("failed to publish event", zap.String("type", event.Type), zap.Error(err))
	}
}
