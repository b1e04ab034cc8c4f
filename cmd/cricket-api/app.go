// Package main provides application wiring for the API server.
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

// App holds the wired application components.
type App struct {
	DB         *sql.DB
	Cache      cache.Client
	Collection *collection.PlayerCollection
	Pipeline   *ingest.Pipeline
	Router     *retrieval.Router
}

// newApp builds every component from configuration: store, cache, embedder,
// vector index, collection, ingestion pipeline, and the query router.
func newApp(cfg *config.Config, logger *observability.Logger) (*App, error) {
	db, err := openDatabase(cfg)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	repo := storage.NewPlayerRepository(db)
	if err := repo.EnsureSchema(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	cacheClient, err := newCacheClient(cfg)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create cache: %w", err)
	}

	embedder, err := newEmbedder(cfg)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create embedder: %w", err)
	}

	coll := collection.New(repo, embedder, vector.NewMemoryIndex(cfg.Vector.Dimension), cacheClient, collection.Config{
		CacheEmbeddings: cfg.Retrieval.CacheEmbeddings,
		EmbeddingTTL:    cfg.Retrieval.EmbeddingTTL,
	}, logger)

	var gen generation.Generator
	if cfg.Generation.APIKey != "" {
		client, err := generation.NewClient(generation.Config{
			APIKey:    cfg.Generation.APIKey,
			Model:     cfg.Generation.Model,
			BaseURL:   cfg.Generation.BaseURL,
			MaxTokens: cfg.Generation.MaxTokens,
			Timeout:   cfg.Generation.Timeout,
		})
		if err != nil {
			logger.Warn().Err(err).Msg("Generation client unavailable, using formatted responses")
		} else {
			gen = client
		}
	}

	return &App{
		DB:         db,
		Cache:      cacheClient,
		Collection: coll,
		Pipeline:   ingest.NewPipeline(repo, coll, logger),
		Router: retrieval.NewRouter(coll, gen, retrieval.Config{
			FallbackResults: cfg.Retrieval.FallbackResults,
		}, logger),
	}, nil
}

// Close releases the app's resources.
func (a *App) Close() {
	if a.Cache != nil {
		a.Cache.Close()
	}
	if a.DB != nil {
		a.DB.Close()
	}
}

func openDatabase(cfg *config.Config) (*sql.DB, error) {
	if cfg.Database.Driver == "postgres" {
		pg := cfg.Database.Postgres
		return storage.Open("postgres", pg.DSN, pg.MaxOpenConns, pg.MaxIdleConns, pg.ConnMaxLifetime)
	}
	dsn := cfg.Database.SQLite.Path
	if cfg.Database.SQLite.JournalMode != "" {
		dsn += "?_journal_mode=" + cfg.Database.SQLite.JournalMode
	}
	return storage.Open("sqlite", dsn, cfg.Database.SQLite.MaxOpenConns, 1, 0)
}

func newCacheClient(cfg *config.Config) (cache.Client, error) {
	if cfg.Cache.Driver == "redis" {
		return cache.NewRedisClient(cache.RedisConfig{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
			PoolSize: cfg.Cache.Redis.PoolSize,
		})
	}
	return cache.NewMemoryClient(cfg.Cache.MaxEntries), nil
}

func newEmbedder(cfg *config.Config) (embedding.Embedder, error) {
	if cfg.Embedding.Provider == "openrouter" {
		return embedding.NewClient(embedding.Config{
			APIKey:    cfg.Embedding.APIKey,
			Model:     cfg.Embedding.Model,
			BaseURL:   cfg.Embedding.BaseURL,
			Dimension: cfg.Embedding.Dimension,
			Timeout:   cfg.Embedding.Timeout,
		})
	}
	return embedding.NewLocal(cfg.Embedding.Dimension), nil
}
