// Package main provides shared helpers for CLI commands.
package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/spiritx-ai/cricket-engine/internal/cache"
	"github.com/spiritx-ai/cricket-engine/internal/collection"
	"github.com/spiritx-ai/cricket-engine/internal/config"
	"github.com/spiritx-ai/cricket-engine/internal/embedding"
	"github.com/spiritx-ai/cricket-engine/internal/generation"
	"github.com/spiritx-ai/cricket-engine/internal/ingest"
	"github.com/spiritx-ai/cricket-engine/internal/observability"
	"github.com/spiritx-ai/cricket-engine/internal/retrieval"
	"github.com/spiritx-ai/cricket-engine/internal/storage"
	"github.com/spiritx-ai/cricket-engine/internal/vector"
)

// engine holds the wired components a CLI command works against.
type engine struct {
	db         *sql.DB
	cache      cache.Client
	repo       *storage.PlayerRepository
	collection *collection.PlayerCollection
	pipeline   *ingest.Pipeline
	router     *retrieval.Router
}

func (e *engine) Close() {
	if e.cache != nil {
		e.cache.Close()
	}
	if e.db != nil {
		e.db.Close()
	}
}

// buildEngine wires the full stack from configuration. Commands that only
// touch storage still go through here so every path shares one schema and
// one collection lifecycle.
func buildEngine(cfg *config.Config, logger *observability.Logger) (*engine, error) {
	var (
		db  *sql.DB
		err error
	)
	if cfg.Database.Driver == "postgres" {
		pg := cfg.Database.Postgres
		db, err = storage.Open("postgres", pg.DSN, pg.MaxOpenConns, pg.MaxIdleConns, pg.ConnMaxLifetime)
	} else {
		dsn := cfg.Database.SQLite.Path
		if cfg.Database.SQLite.JournalMode != "" {
			dsn += "?_journal_mode=" + cfg.Database.SQLite.JournalMode
		}
		db, err = storage.Open("sqlite", dsn, cfg.Database.SQLite.MaxOpenConns, 1, 0)
	}
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	repo := storage.NewPlayerRepository(db)
	if err := repo.EnsureSchema(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	var cacheClient cache.Client
	if cfg.Cache.Driver == "redis" {
		cacheClient, err = cache.NewRedisClient(cache.RedisConfig{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
			PoolSize: cfg.Cache.Redis.PoolSize,
		})
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("connect redis: %w", err)
		}
	} else {
		cacheClient = cache.NewMemoryClient(cfg.Cache.MaxEntries)
	}

	var embedder embedding.Embedder
	if cfg.Embedding.Provider == "openrouter" {
		embedder, err = embedding.NewClient(embedding.Config{
			APIKey:    cfg.Embedding.APIKey,
			Model:     cfg.Embedding.Model,
			BaseURL:   cfg.Embedding.BaseURL,
			Dimension: cfg.Embedding.Dimension,
			Timeout:   cfg.Embedding.Timeout,
		})
		if err != nil {
			cacheClient.Close()
			db.Close()
			return nil, fmt.Errorf("create embedder: %w", err)
		}
	} else {
		embedder = embedding.NewLocal(cfg.Embedding.Dimension)
	}

	coll := collection.New(repo, embedder, vector.NewMemoryIndex(cfg.Vector.Dimension), cacheClient, collection.Config{
		CacheEmbeddings: cfg.Retrieval.CacheEmbeddings,
		EmbeddingTTL:    cfg.Retrieval.EmbeddingTTL,
	}, logger)

	var gen generation.Generator
	if cfg.Generation.APIKey != "" {
		client, genErr := generation.NewClient(generation.Config{
			APIKey:    cfg.Generation.APIKey,
			Model:     cfg.Generation.Model,
			BaseURL:   cfg.Generation.BaseURL,
			MaxTokens: cfg.Generation.MaxTokens,
			Timeout:   cfg.Generation.Timeout,
		})
		if genErr != nil {
			logger.Warn().Err(genErr).Msg("generation client unavailable, using formatted responses")
		} else {
			gen = client
		}
	}

	return &engine{
		db:         db,
		cache:      cacheClient,
		repo:       repo,
		collection: coll,
		pipeline:   ingest.NewPipeline(repo, coll, logger),
		router: retrieval.NewRouter(coll, gen, retrieval.Config{
			FallbackResults: cfg.Retrieval.FallbackResults,
		}, logger),
	}, nil
}
