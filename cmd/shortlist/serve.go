package main

import (
	"context"
	"fmt"

	"github.com/jonathan/resume-shortlist/internal/db"
	"github.com/jonathan/resume-shortlist/internal/evaluation"
	"github.com/jonathan/resume-shortlist/internal/events"
	"github.com/jonathan/resume-shortlist/internal/metrics"
	"github.com/jonathan/resume-shortlist/internal/server"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	servePort    int
	serveMigrate bool
	serveOffline bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server that exposes the job, resume, evaluation, scoring and
ranking endpoints. Requires DATABASE_URL. Without GEMINI_API_KEY the heuristic
extractor and evaluator are used.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides config, default 8080)")
	serveCmd.Flags().BoolVar(&serveMigrate, "migrate", false, "Apply the database schema before serving")
	serveCmd.Flags().BoolVar(&serveOffline, "offline", false, "Use the heuristic extractor and evaluator even when an API key is set")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}
	if servePort != 0 {
		cfg.Port = servePort
	}

	ctx := context.Background()
	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	if serveMigrate {
		if err := database.Migrate(ctx); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
		log.Info("database schema applied")
	}

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	deps, err := newComponents(ctx, cfg, m, log, serveOffline)
	if err != nil {
		return err
	}
	defer func() {
		if err := deps.Close(); err != nil {
			log.Warn("failed to close clients", zap.Error(err))
		}
	}()

	publisher := events.New(cfg.KafkaBrokers, cfg.KafkaTopic, log)
	defer func() {
		if err := publisher.Close(); err != nil {
			log.Warn("failed to close event publisher", zap.Error(err))
		}
	}()

	svc := evaluation.NewService(database, deps.extractor, deps.evaluator, publisher, m, log, evaluation.Options{
		Concurrency:   cfg.Concurrency,
		PassThreshold: cfg.PassThreshold,
	})

	srv := server.New(server.Config{
		Port:   cfg.Port,
		Health: database.Ping,
	}, svc, m, log)

	return srv.Start()
}
