package retrieval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spiritx-ai/cricket-engine/internal/storage"
)

func batsman(name string, runs, price int) storage.PlayerRecord {
	return storage.PlayerRecord{Name: name, Role: storage.RoleBatsman, TotalRuns: runs, BasePrice: price}
}

func bowler(name string, wickets, price int) storage.PlayerRecord {
	return storage.PlayerRecord{Name: name, Role: storage.RoleBowler, Wickets: wickets, BasePrice: price}
}

func allRounder(name string, runs, wickets, price int) storage.PlayerRecord {
	return storage.PlayerRecord{Name: name, Role: storage.RoleAllRounder, TotalRuns: runs, Wickets: wickets, BasePrice: price}
}

func TestBestBatsmanByRuns(t *testing.T) {
	players := []storage.PlayerRecord{
		batsman("Low Scorer", 300, 900000),
		batsman("High Scorer", 500, 100000),
		bowler("Wicket Taker", 20, 950000),
	}

	best, ok := bestBatsman(players)
	require.True(t, ok)
	assert.Equal(t, "High Scorer", best.Name)
}

func TestBestBatsmanTieBrokenByPrice(t *testing.T) {
	players := []storage.PlayerRecord{
		batsman("Cheaper", 400, 500000),
		batsman("Pricier", 400, 800000),
	}

	best, ok := bestBatsman(players)
	require.True(t, ok)
	assert.Equal(t, "Pricier", best.Name)
}

func TestBestBatsmanIgnoresOtherRoles(t *testing.T) {
	players := []storage.PlayerRecord{
		bowler("Only Bowler", 15, 700000),
		allRounder("Only AllRounder", 600, 10, 900000),
	}

	_, ok := bestBatsman(players)
	assert.False(t, ok)
}

func TestBestBowlerByWickets(t *testing.T) {
	players := []storage.PlayerRecord{
		bowler("Few Wickets", 8, 900000),
		bowler("Many Wickets", 16, 400000),
	}

	best, ok := bestBowler(players)
	require.True(t, ok)
	assert.Equal(t, "Many Wickets", best.Name)
}

func TestBestBowlerTieBrokenByPrice(t *testing.T) {
	players := []storage.PlayerRecord{
		bowler("Cheaper", 12, 300000),
		bowler("Pricier", 12, 600000),
	}

	best, ok := bestBowler(players)
	require.True(t, ok)
	assert.Equal(t, "Pricier", best.Name)
}

func TestBestAllRounderByCompositeScore(t *testing.T) {
	// 200 runs + 12 wickets = 320 beats 300 runs + 1 wicket = 310.
	players := []storage.PlayerRecord{
		allRounder("Batting Heavy", 300, 1, 900000),
		allRounder("Balanced", 200, 12, 400000),
	}

	best, ok := bestAllRounder(players)
	require.True(t, ok)
	assert.Equal(t, "Balanced", best.Name)
}

func TestBestAllRounderTieBrokenByPrice(t *testing.T) {
	players := []storage.PlayerRecord{
		allRounder("Cheaper", 200, 10, 300000),
		allRounder("Pricier", 250, 5, 700000), // same score of 300
	}

	best, ok := bestAllRounder(players)
	require.True(t, ok)
	assert.Equal(t, "Pricier", best.Name)
}

func TestTopByValueOrderAndLimit(t *testing.T) {
	players := []storage.PlayerRecord{
		batsman("Third", 0, 300000),
		batsman("First", 0, 900000),
		batsman("Second", 0, 600000),
	}

	top := topByValue(players, 2)
	require.Len(t, top, 2)
	assert.Equal(t, "First", top[0].Name)
	assert.Equal(t, "Second", top[1].Name)
}

func TestSortByValueIsStable(t *testing.T) {
	players := []storage.PlayerRecord{
		batsman("Alpha", 0, 500000),
		batsman("Beta", 0, 500000),
		batsman("Gamma", 0, 500000),
	}

	sorted := sortByValue(players)
	assert.Equal(t, "Alpha", sorted[0].Name)
	assert.Equal(t, "Beta", sorted[1].Name)
	assert.Equal(t, "Gamma", sorted[2].Name)
}

func TestSortByValueDoesNotMutateInput(t *testing.T) {
	players := []storage.PlayerRecord{
		batsman("Cheap", 0, 100000),
		batsman("Dear", 0, 900000),
	}

	_ = sortByValue(players)
	assert.Equal(t, "Cheap", players[0].Name)
}
