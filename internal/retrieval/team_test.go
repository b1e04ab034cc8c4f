package retrieval

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spiritx-ai/cricket-engine/internal/storage"
)

func squad(batsmen, bowlers, allRounders int) []storage.PlayerRecord {
	var players []storage.PlayerRecord
	for i := 0; i < batsmen; i++ {
		players = append(players, batsman(fmt.Sprintf("Batsman %d", i+1), 300, 900000-i*10000))
	}
	for i := 0; i < bowlers; i++ {
		players = append(players, bowler(fmt.Sprintf("Bowler %d", i+1), 10, 800000-i*10000))
	}
	for i := 0; i < allRounders; i++ {
		players = append(players, allRounder(fmt.Sprintf("AllRounder %d", i+1), 200, 8, 700000-i*10000))
	}
	return players
}

func roleCounts(team []storage.PlayerRecord) map[storage.Role]int {
	counts := make(map[storage.Role]int)
	for _, p := range team {
		counts[p.Role]++
	}
	return counts
}

func TestSelectBestTeamBalancedComposition(t *testing.T) {
	team := selectBestTeam(squad(8, 8, 4))

	require.Len(t, team, 11)
	counts := roleCounts(team)
	assert.Equal(t, 5, counts[storage.RoleBatsman])
	assert.Equal(t, 2, counts[storage.RoleAllRounder])
	assert.Equal(t, 4, counts[storage.RoleBowler])
}

func TestSelectBestTeamNeverExceedsEleven(t *testing.T) {
	team := selectBestTeam(squad(20, 20, 20))
	assert.Len(t, team, 11)
}

func TestSelectBestTeamNoDuplicates(t *testing.T) {
	team := selectBestTeam(squad(8, 8, 8))

	seen := make(map[string]bool)
	for _, p := range team {
		assert.False(t, seen[p.Name], "player %s selected twice", p.Name)
		seen[p.Name] = true
	}
}

func TestSelectBestTeamPrefersValue(t *testing.T) {
	players := []storage.PlayerRecord{
		batsman("Budget Bat", 500, 100000),
		batsman("Star Bat", 300, 950000),
	}
	players = append(players, squad(5, 5, 5)...)

	team := selectBestTeam(players)
	names := make(map[string]bool)
	for _, p := range team {
		names[p.Name] = true
	}
	assert.True(t, names["Star Bat"])
}

func TestSelectBestTeamBackfillsAllRounders(t *testing.T) {
	// Only 2 bowlers available: all-rounders fill the remaining slots.
	team := selectBestTeam(squad(6, 2, 8))

	require.Len(t, team, 11)
	counts := roleCounts(team)
	assert.Equal(t, 5, counts[storage.RoleBatsman])
	assert.Equal(t, 2, counts[storage.RoleBowler])
	assert.Equal(t, 4, counts[storage.RoleAllRounder])
}

func TestSelectBestTeamFewerThanElevenPlayers(t *testing.T) {
	team := selectBestTeam(squad(2, 2, 2))
	assert.Len(t, team, 6)
}

func TestSelectBestTeamEmptyPool(t *testing.T) {
	team := selectBestTeam(nil)
	assert.Empty(t, team)
}
