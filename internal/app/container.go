package app

import (
	"context"
	"fmt"

	"github.com/yotambraun/football-scout-rag/internal/agent"
	"github.com/yotambraun/football-scout-rag/internal/catalog"
	"github.com/yotambraun/football-scout-rag/internal/config"
	"github.com/yotambraun/football-scout-rag/internal/service/ai"
	"github.com/yotambraun/football-scout-rag/internal/service/cache"
	"github.com/yotambraun/football-scout-rag/internal/service/database"
	"github.com/yotambraun/football-scout-rag/internal/service/history"
	"github.com/yotambraun/football-scout-rag/internal/service/scraper"
	"github.com/yotambraun/football-scout-rag/internal/storage"
	"go.uber.org/zap"
)

// Container bundles the assembled services behind the agent.
type Container struct {
	Config  *config.Config
	Logger  *zap.Logger
	Agent   *agent.Agent
	Catalog *catalog.Catalog
	History *history.Repository

	closers []func()
}

// Close releases infrastructure resources in reverse construction order.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	c.closers = nil
}

// Build assembles the full dependency graph. Redis and Postgres are optional
// collaborators: when disabled the agent runs with an uncached scraper and no
// durable history. The LLM assistant is wired only when a provider key is
// configured.
func Build(ctx context.Context, cfg *config.Config, logger *zap.Logger) (container *Container, err error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger must not be nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	var closers []func()
	defer func() {
		if err != nil {
			for i := len(closers) - 1; i >= 0; i-- {
				closers[i]()
			}
		}
	}()

	var cacheSvc *cache.Service
	if cfg.Redis.Enabled {
		cacheSvc, err = cache.NewService(cache.Config{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create cache service: %w", err)
		}
		closers = append(closers, func() {
			_ = cacheSvc.Close()
		})
	}

	var historyRepo *history.Repository
	if cfg.Postgres.Enabled {
		postgresSvc, pgErr := database.NewPostgresService(database.PostgresConfig{
			Host:     cfg.Postgres.Host,
			Port:     cfg.Postgres.Port,
			User:     cfg.Postgres.User,
			Password: cfg.Postgres.Password,
			Database: cfg.Postgres.Database,
		}, logger)
		if pgErr != nil {
			return nil, fmt.Errorf("failed to create postgres service: %w", pgErr)
		}
		closers = append(closers, func() {
			_ = postgresSvc.Close()
		})

		historyRepo = history.NewRepository(postgresSvc, logger)
		if err = historyRepo.EnsureSchema(ctx); err != nil {
			return nil, fmt.Errorf("failed to ensure scout history schema: %w", err)
		}
	}

	scraperSvc := scraper.NewService(scraper.Config{
		BaseURL:        cfg.Scraper.BaseURL,
		UserAgent:      cfg.Scraper.UserAgent,
		RequestTimeout: cfg.Scraper.RequestTimeout,
		RequestsPerSec: cfg.Scraper.RequestsPerSec,
		CacheTTL:       cfg.Scraper.CacheTTL,
	}, cacheSvc, logger)

	var assistant *ai.Assistant
	if cfg.HasLLM() {
		modelManager, mmErr := ai.NewModelManager(ctx, ai.ModelManagerConfig{
			GroqAPIKey:     cfg.Groq.APIKey,
			GroqBaseURL:    cfg.Groq.BaseURL,
			GroqModel:      cfg.Groq.Model,
			GeminiAPIKey:   cfg.Gemini.APIKey,
			GeminiModel:    cfg.Gemini.Model,
			MaxTokens:      cfg.Groq.MaxTokens,
			EnableFallback: cfg.Gemini.EnableFallback,
		}, logger)
		if mmErr != nil {
			return nil, fmt.Errorf("failed to create model manager: %w", mmErr)
		}
		assistant = ai.NewAssistant(modelManager, logger)
	} else {
		logger.Warn("No LLM provider configured; ask and AI commentary are disabled")
	}

	store := storage.NewJSONStore(cfg.Data.Dir, logger)
	scoutCatalog := catalog.New()

	deps := &agent.Dependencies{
		Scraper: scraperSvc,
		Catalog: scoutCatalog,
		Store:   store,
		Logger:  logger,
	}
	if assistant != nil {
		deps.Assistant = assistant
	}
	if historyRepo != nil {
		deps.History = historyRepo
	}

	scoutAgent, err := agent.New(deps)
	if err != nil {
		return nil, fmt.Errorf("failed to create agent: %w", err)
	}

	return &Container{
		Config:  cfg,
		Logger:  logger,
		Agent:   scoutAgent,
		Catalog: scoutCatalog,
		History: historyRepo,
		closers: closers,
	}, nil
}
