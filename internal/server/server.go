// Package server provides the HTTP REST API for resume shortlisting.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-shortlist/internal/metrics"
	"github.com/jonathan/resume-shortlist/internal/server/ratelimit"
	"github.com/jonathan/resume-shortlist/internal/types"
	"go.uber.org/zap"
)

// Service is the evaluation service behind the API. *evaluation.Service implements it.
type Service interface {
	CreateJob(ctx context.Context, req types.CreateJobRequest) (*types.Job, error)
	GetJob(ctx context.Context, jobID string) (*types.Job, error)
	ListJobs(ctx context.Context, req types.ListJobsRequest) (*types.JobList, error)
	UpdateJob(ctx context.Context, jobID string, req types.UpdateJobRequest) (*types.Job, error)
	DeleteJob(ctx context.Context, jobID string) error

	SubmitResume(ctx context.Context, jobID string, req types.SubmitResumeRequest) (*types.Resume, error)
	ListResumes(ctx context.Context, jobID string) ([]types.Resume, error)
	GetResume(ctx context.Context, id uuid.UUID) (*types.Resume, error)
	DeleteResume(ctx context.Context, id uuid.UUID) error

	Evaluate(ctx context.Context, resumeID uuid.UUID) (*types.Evaluation, error)
	ReEvaluate(ctx context.Context, resumeID uuid.UUID) (*types.Evaluation, error)
	EvaluateAll(ctx context.Context, jobID string) (*types.BatchResult, error)
	Get(ctx context.Context, id uuid.UUID) (*types.Evaluation, error)
	List(ctx context.Context, jobID string, filter types.EvaluationFilter) (*types.EvaluationList, error)
	Summary(ctx context.Context, jobID string) (*types.EvaluationSummary, error)
	DeleteByJob(ctx context.Context, jobID string) (int, error)
}

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	handler     http.Handler
	svc         Service
	health      func(ctx context.Context) error
	metrics     *metrics.Metrics
	log         *zap.Logger
	rateLimiter *ratelimit.Limiter
}

// Config holds server configuration
type Config struct {
	Port int
	// RateLimit defaults to ratelimit.LoadConfig().
	RateLimit *ratelimit.Config
	// Health reports whether dependencies are reachable; nil means always healthy.
	Health func(ctx context.Context) error
}

// New creates a new server instance. m and log may be nil.
func New(cfg Config, svc Service, m *metrics.Metrics, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	rl := cfg.RateLimit
	if rl == nil {
		rl = ratelimit.LoadConfig()
	}

	s := &Server{
		svc:         svc,
		health:      cfg.Health,
		metrics:     m,
		log:         log,
		rateLimiter: ratelimit.NewLimiter(rl),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", m.Handler())

	// Jobs
	mux.HandleFunc("POST /jobs", s.handleCreateJob)
	mux.HandleFunc("GET /jobs", s.handleListJobs)
	mux.HandleFunc("GET /jobs/{job_id}", s.handleGetJob)
	mux.HandleFunc("PUT /jobs/{job_id}", s.handleUpdateJob)
	mux.HandleFunc("DELETE /jobs/{job_id}", s.handleDeleteJob)

	// Resumes
	mux.HandleFunc("POST /jobs/{job_id}/resumes", s.handleSubmitResume)
	mux.HandleFunc("GET /jobs/{job_id}/resumes", s.handleListResumes)
	mux.HandleFunc("GET /resumes/{id}", s.handleGetResume)
	mux.HandleFunc("DELETE /resumes/{id}", s.handleDeleteResume)

	// Evaluations
	mux.HandleFunc("POST /evaluations/resume/{resume_id}", s.handleEvaluateResume)
	mux.HandleFunc("POST /evaluations/resume/{resume_id}/re-evaluate", s.handleReEvaluateResume)
	mux.HandleFunc("POST /evaluations/job/{job_id}/all", s.handleEvaluateAll)
	mux.HandleFunc("GET /evaluations/job/{job_id}", s.handleListEvaluations)
	mux.HandleFunc("GET /evaluations/job/{job_id}/summary", s.handleSummary)
	mux.HandleFunc("DELETE /evaluations/job/{job_id}", s.handleDeleteEvaluations)
	mux.HandleFunc("GET /evaluations/{id}", s.handleGetEvaluation)

	// Stateless scoring
	mux.HandleFunc("POST /score", s.handleScore)
	mux.HandleFunc("POST /rank", s.handleRank)

	s.handler = chain(mux,
		s.withMetrics,
		s.withLogging,
		s.withRateLimit,
		cors(defaultCORS()),
	)
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // Batch evaluation waits on the LLM
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Handler returns the routed handler with all middleware applied.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start serves until SIGINT or SIGTERM, then shuts down gracefully.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		s.rateLimiter.Stop()
		return fmt.Errorf("server failed: %w", err)
	case <-stop:
	}
	s.log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.rateLimiter.Stop()

	s.log.Info("server stopped")
	return nil
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.health != nil {
		if err := s.health(r.Context()); err != nil {
			s.log.Warn("health check failed", zap.Error(err))
			s.jsonResponse(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error("failed to encode JSON response", zap.Error(err))
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}
