package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jonathan/resume-shortlist/internal/cache"
	"github.com/jonathan/resume-shortlist/internal/config"
	"github.com/jonathan/resume-shortlist/internal/evaluation"
	"github.com/jonathan/resume-shortlist/internal/ingestion"
	"github.com/jonathan/resume-shortlist/internal/llm"
	"github.com/jonathan/resume-shortlist/internal/metrics"
	"go.uber.org/zap"
)

// components holds the extractor and evaluator pair plus the clients they own.
type components struct {
	extractor evaluation.Extractor
	evaluator evaluation.Evaluator

	client  *llm.GeminiClient
	redis   *cache.RedisStore
	metrics *metrics.Metrics
	log     *zap.Logger
}

// newComponents wires the Gemini-backed extractor and evaluator when an API key
// is configured and offline is false. Otherwise the heuristic pair is used.
// Redis is optional: when it cannot be reached, caching is disabled.
func newComponents(ctx context.Context, cfg config.Config, m *metrics.Metrics, log *zap.Logger, offline bool) (*components, error) {
	c := &components{metrics: m, log: log}

	if cfg.RedisAddr != "" {
		store, err := cache.NewRedisStore(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			log.Warn("redis unavailable, caching disabled", zap.String("addr", cfg.RedisAddr), zap.Error(err))
		} else {
			c.redis = store
		}
	}

	heuristic := ingestion.NewHeuristicExtractor()
	if offline || cfg.APIKey == "" {
		if !offline {
			log.Warn("GEMINI_API_KEY not set, using heuristic extractor and evaluator")
		}
		c.extractor = heuristic
		c.evaluator = ingestion.NewHeuristicEvaluator()
		return c, nil
	}

	client, err := llm.NewGeminiClient(ctx, llm.DefaultConfig(), cfg.APIKey)
	if err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	c.client = client
	c.extractor = llm.NewProfileExtractor(client, c.newCache("profile", time.Duration(cfg.CacheTTLExtraction)), heuristic, m, log)
	c.evaluator = llm.NewMatchEvaluator(client, c.newCache("match", time.Duration(cfg.CacheTTLEvaluation)), cfg.PassThreshold, m, log)
	return c, nil
}

// newCache returns nil when no Redis store is available.
func (c *components) newCache(name string, ttl time.Duration) *cache.Cache {
	if c.redis == nil {
		return nil
	}
	return cache.New(c.redis, name, ttl, c.log, c.metrics)
}

// Close releases the LLM client and the Redis connection.
func (c *components) Close() error {
	var errs []error
	if c.client != nil {
		errs = append(errs, c.client.Close())
	}
	if c.redis != nil {
		errs = append(errs, c.redis.Close())
	}
	return errors.Join(errs...)
}
