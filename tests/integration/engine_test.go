package integration

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spiritx-ai/cricket-engine/internal/cache"
	"github.com/spiritx-ai/cricket-engine/internal/collection"
	"github.com/spiritx-ai/cricket-engine/internal/embedding"
	"github.com/spiritx-ai/cricket-engine/internal/ingest"
	"github.com/spiritx-ai/cricket-engine/internal/observability"
	"github.com/spiritx-ai/cricket-engine/internal/retrieval"
	"github.com/spiritx-ai/cricket-engine/internal/storage"
	"github.com/spiritx-ai/cricket-engine/internal/vector"
)

// TestEngineAgainstPostgresAndRedis runs the full stack against real
// backing services: player updates flow through Postgres, query embeddings
// through Redis, and queries come back ranked and formatted.
func TestEngineAgainstPostgresAndRedis(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	if os.Getenv("CI") == "" && !isDockerAvailable() {
		t.Skip("Docker not available")
	}

	ctx := context.Background()
	setup := SetupTestContainers(t)
	defer setup.Cleanup()

	db, err := storage.Open("postgres", setup.PostgresConnStr, 5, 2, time.Minute)
	require.NoError(t, err)
	defer db.Close()

	repo := storage.NewPlayerRepository(db)
	require.NoError(t, repo.EnsureSchema(ctx))

	redisCache, err := cache.NewRedisClient(cache.RedisConfig{Addr: setup.RedisAddr})
	require.NoError(t, err)
	defer redisCache.Close()

	logger := observability.Nop()
	coll := collection.New(repo, embedding.NewLocal(128), vector.NewMemoryIndex(128), redisCache,
		collection.Config{CacheEmbeddings: true, EmbeddingTTL: time.Minute}, logger)
	pipeline := ingest.NewPipeline(repo, coll, logger)
	router := retrieval.NewRouter(coll, nil, retrieval.Config{}, logger)

	// Ingest a small roster through the pipeline.
	_, err = pipeline.Apply(ctx, ingest.PlayerUpdate{
		Players: []ingest.PlayerUpdate{
			{Name: "Kusal Mendis", University: "University of Colombo", Category: "Batsman", BasePrice: 850000,
				TournamentData: ingest.TournamentData{Runs: 530, BallsFaced: 588, InningsPlayed: 10}},
			{Name: "Lahiru Kumara", University: "University of Peradeniya", Category: "Bowler", BasePrice: 700000,
				TournamentData: ingest.TournamentData{Runs: 40, Wickets: 14, OversBowled: 70, RunsConceded: 392}},
			{Name: "Wanindu Hasaranga", University: "University of Moratuwa", Category: "All-Rounder", BasePrice: 950000,
				TournamentData: ingest.TournamentData{Runs: 320, Wickets: 12, OversBowled: 60}},
		},
	})
	require.NoError(t, err)

	count, err := coll.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	// Ranked intents answer from the Postgres-backed snapshot.
	out := router.Answer(ctx, "who is the best batsman")
	assert.Contains(t, out, "The best batsman is Kusal Mendis with 530 runs.")

	out = router.Answer(ctx, "who is the best bowler")
	assert.Contains(t, out, "The best bowler is Lahiru Kumara with 14 wickets.")

	// The semantic fallback exercises the Redis embedding cache twice.
	first := router.Answer(ctx, "who had a strong tournament performance")
	second := router.Answer(ctx, "who had a strong tournament performance")
	assert.Equal(t, first, second)
	assert.NotEqual(t, "", first)

	// An update flows through to answers after the pipeline refresh.
	_, err = pipeline.Apply(ctx, ingest.PlayerUpdate{
		Name: "Pathum Nissanka", Category: "Batsman", BasePrice: 900000,
		TournamentData: ingest.TournamentData{Runs: 600, InningsPlayed: 9},
	})
	require.NoError(t, err)

	out = router.Answer(ctx, "who is the best batsman")
	assert.Contains(t, out, "The best batsman is Pathum Nissanka with 600 runs.")

	// Deleting a player removes them from subsequent answers.
	_, err = pipeline.Apply(ctx, ingest.PlayerUpdate{Name: "Pathum Nissanka", DeletePlayer: true})
	require.NoError(t, err)

	out = router.Answer(ctx, "who is the best batsman")
	assert.Contains(t, out, "The best batsman is Kusal Mendis with 530 runs.")
}
