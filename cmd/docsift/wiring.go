package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/archivelabs/docsift/internal/config"
	"github.com/archivelabs/docsift/internal/db"
	dbRedis "github.com/archivelabs/docsift/internal/db/redis"
	logpkg "github.com/archivelabs/docsift/internal/logger"
	"github.com/archivelabs/docsift/internal/metrics"
	"github.com/archivelabs/docsift/internal/prompt"
	"github.com/archivelabs/docsift/internal/repository/bodycache"
	"github.com/archivelabs/docsift/internal/store"
	"github.com/archivelabs/docsift/internal/transport/judge"
	"github.com/archivelabs/docsift/internal/transport/ocr"
	"github.com/archivelabs/docsift/internal/transport/solr"
	analyzeuc "github.com/archivelabs/docsift/internal/usecase/analyze"
	classifyuc "github.com/archivelabs/docsift/internal/usecase/classify"
	healthuc "github.com/archivelabs/docsift/internal/usecase/health"
	retrievaluc "github.com/archivelabs/docsift/internal/usecase/retrieval"
	strategyuc "github.com/archivelabs/docsift/internal/usecase/strategy"
	summaryuc "github.com/archivelabs/docsift/internal/usecase/summary"
)

// app holds the wired components shared by the analyze and serve commands.
type app struct {
	cfg      config.Config
	logger   *zap.Logger
	pipeline *analyzeuc.Pipeline
	health   *healthuc.Service
	cache    db.Store // nil when the body cache is disabled
}

// buildApp is the composition root: config, logger, transports, optional
// cache, and the use case services behind the pipeline.
func buildApp(ctx context.Context) (*app, error) {
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	// Register pipeline metrics explicitly (no init())
	metrics.RegisterPipelineMetrics()

	searchClient := solr.NewClient(solr.Config{
		BaseURL:  cfg.Search.BaseURL,
		PageSize: cfg.Search.PageSize,
		Timeout:  time.Duration(cfg.Search.TimeoutSec) * time.Second,
		Logger:   logger,
	})

	ocrClient := ocr.NewClient(ocr.Config{
		BaseURL: cfg.Body.BaseURL,
		Timeout: time.Duration(cfg.Body.TimeoutSec) * time.Second,
		Logger:  logger,
	})

	// Body cache is optional: no addrs, no cache, plain fetcher.
	var fetcher store.BodyFetcher = ocrClient
	var cache db.Store
	if len(cfg.Cache.Addrs) > 0 {
		cache, err = dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Cache.Addrs,
			Password: cfg.Cache.Password,
		})
		if err != nil {
			return nil, fmt.Errorf("create cache store: %w", err)
		}
		readiness := time.Duration(cfg.Cache.ReadinessTimeout) * time.Second
		if err := cache.WaitForReady(ctx, readiness); err != nil {
			cache.Close()
			return nil, fmt.Errorf("cache not ready: %w", err)
		}
		fetcher = bodycache.New(
			ocrClient, cache,
			time.Duration(cfg.Cache.TTLHours)*time.Hour,
			metrics.BodyCacheTotal, logger,
		)
		logger.Info("Body cache enabled", zap.Strings("addrs", cfg.Cache.Addrs))
	}

	judgeClient := judge.New(judge.Config{
		APIKey:            cfg.Judge.APIKey,
		BaseURL:           cfg.Judge.BaseURL,
		Model:             cfg.Judge.Model,
		Timeout:           time.Duration(cfg.Judge.TimeoutSec) * time.Second,
		RequestsPerMinute: cfg.Judge.RequestsPerMinute,
		Logger:            logger,
	})

	prompts := prompt.NewBuilder(cfg.Judge.PromptContentMax)

	strategySvc := strategyuc.New(judgeClient, prompts, logger)
	retrievalSvc := retrievaluc.New(searchClient, cfg.Search.UseCursor, logger)
	classifySvc := classifyuc.New(judgeClient, prompts, logger).WithBatchSize(cfg.Judge.BatchSize)
	summarySvc := summaryuc.New(judgeClient, prompts, logger)

	pipeline := analyzeuc.New(
		strategySvc, retrievalSvc, classifySvc, summarySvc, fetcher,
		analyzeuc.Config{
			TargetPerStrategy: cfg.Pipeline.TargetPerStrategy,
			SummarizeTop:      cfg.Pipeline.SummarizeTop,
			Store: store.Config{
				MaxBodyChars:     cfg.Body.MaxChars,
				SkipBodyFetch:    cfg.Body.SkipFetch,
				FetchConcurrency: cfg.Body.FetchConcurrency,
			},
		},
		logger,
	)

	var cachePinger healthuc.CachePinger
	if cache != nil {
		cachePinger = cache
	}
	healthSvc := healthuc.New(judgeClient, cachePinger)

	return &app{
		cfg:      cfg,
		logger:   logger,
		pipeline: pipeline,
		health:   healthSvc,
		cache:    cache,
	}, nil
}

// Close releases held resources.
func (a *app) Close() {
	if a.cache != nil {
		a.cache.Close()
	}
	_ = a.logger.Sync()
}
