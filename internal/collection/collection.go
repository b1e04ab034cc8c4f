// Package collection maintains the player collection: the authoritative
// record store mirrored into an embedded vector index for semantic search.
package collection

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/spiritx-ai/cricket-engine/internal/cache"
	"github.com/spiritx-ai/cricket-engine/internal/embedding"
	"github.com/spiritx-ai/cricket-engine/internal/observability"
	"github.com/spiritx-ai/cricket-engine/internal/storage"
	"github.com/spiritx-ai/cricket-engine/internal/vector"
)

// embeddingKeyPrefix namespaces cached query embeddings so a refresh can
// drop them all without touching unrelated keys.
const embeddingKeyPrefix = "emb:"

// Config controls collection behavior.
type Config struct {
	CacheEmbeddings bool
	EmbeddingTTL    time.Duration
}

// PlayerCollection combines the record store with the vector index. All
// reads used for ranking go through the index snapshot so that answers and
// semantic search always see the same generation of data.
type PlayerCollection struct {
	repo     *storage.PlayerRepository
	embedder embedding.Embedder
	index    vector.Adapter
	cache    cache.Client
	cfg      Config
	logger   *observability.Logger
}

// New creates a player collection. The cache client may be nil, in which
// case query embeddings are computed on every call.
func New(repo *storage.PlayerRepository, embedder embedding.Embedder, index vector.Adapter, cacheClient cache.Client, cfg Config, logger *observability.Logger) *PlayerCollection {
	if cfg.EmbeddingTTL <= 0 {
		cfg.EmbeddingTTL = time.Hour
	}
	if logger == nil {
		logger = observability.Nop()
	}
	return &PlayerCollection{
		repo:     repo,
		embedder: embedder,
		index:    index,
		cache:    cacheClient,
		cfg:      cfg,
		logger:   logger.WithComponent("collection"),
	}
}

// Refresh rebuilds the vector index from the record store: every stored
// player is re-classified, re-documented and re-embedded, then the index is
// swapped in one step. Readers never observe a partially built index.
func (c *PlayerCollection) Refresh(ctx context.Context) error {
	start := time.Now()

	records, err := c.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("list players: %w", err)
	}

	docs := make([]string, len(records))
	for i := range records {
		records[i].Role = storage.ClassifyRole(records[i].TotalRuns, records[i].Wickets)
		docs[i] = records[i].Document()
	}

	var entries []vector.Entry
	if len(records) > 0 {
		vectors, err := c.embedder.Embed(ctx, docs)
		if err != nil {
			return fmt.Errorf("embed player documents: %w", err)
		}
		entries = make([]vector.Entry, len(records))
		for i := range records {
			entries[i] = vector.Entry{
				ID:       uuid.New(),
				Vector:   vectors[i],
				Metadata: records[i].Metadata(),
			}
		}
	}

	if err := c.index.ReplaceAll(ctx, entries); err != nil {
		return fmt.Errorf("replace index: %w", err)
	}

	if c.cache != nil {
		if err := c.cache.DeleteByPrefix(ctx, embeddingKeyPrefix); err != nil {
			c.logger.Warn().Err(err).Msg("failed to invalidate embedding cache")
		}
	}

	c.logger.Info().
		Int("players", len(records)).
		Dur("duration", time.Since(start)).
		Msg("collection refreshed")
	return nil
}

// GetAllRecords returns a normalized snapshot of every player in the index,
// in insertion order. An empty slice with a nil error means the collection
// holds no players.
func (c *PlayerCollection) GetAllRecords(ctx context.Context) ([]storage.PlayerRecord, error) {
	metas, err := c.index.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("read index: %w", err)
	}
	records := make([]storage.PlayerRecord, 0, len(metas))
	for _, meta := range metas {
		records = append(records, storage.NormalizeRecord(meta))
	}
	return records, nil
}

// Count reports how many players the index currently holds.
func (c *PlayerCollection) Count(ctx context.Context) (int64, error) {
	return c.index.Count(ctx)
}

// SimilaritySearch embeds the query and returns the k nearest players.
// Query embeddings are cached; ranked results never are.
func (c *PlayerCollection) SimilaritySearch(ctx context.Context, query string, k int) ([]vector.Result, error) {
	vec, err := c.embedQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	results, err := c.index.Search(ctx, vec, k)
	if err != nil {
		return nil, fmt.Errorf("search index: %w", err)
	}
	return results, nil
}

func (c *PlayerCollection) embedQuery(ctx context.Context, query string) ([]float32, error) {
	if c.cache == nil || !c.cfg.CacheEmbeddings {
		return c.embedder.EmbedSingle(ctx, query)
	}

	key := embeddingKeyPrefix + cache.Key("query", query)
	if data, err := c.cache.Get(ctx, key); err == nil {
		var vec []float32
		if err := json.Unmarshal(data, &vec); err == nil {
			return vec, nil
		}
	}

	vec, err := c.embedder.EmbedSingle(ctx, query)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(vec); err == nil {
		if err := c.cache.Set(ctx, key, data, c.cfg.EmbeddingTTL); err != nil {
			c.logger.Warn().Err(err).Msg("failed to cache query embedding")
		}
	}
	return vec, nil
}
