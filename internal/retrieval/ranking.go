package retrieval

import (
	"sort"

	"github.com/spiritx-ai/cricket-engine/internal/storage"
)

// Ranking uses stable sorts throughout so that players tied on every key
// keep their collection order, and repeated queries over the same snapshot
// return identical orderings.

func filterRole(players []storage.PlayerRecord, role storage.Role) []storage.PlayerRecord {
	out := make([]storage.PlayerRecord, 0, len(players))
	for _, p := range players {
		if p.Role == role {
			out = append(out, p)
		}
	}
	return out
}

// bestBatsman returns the specialist batsman with the most runs, breaking
// ties on base price.
func bestBatsman(players []storage.PlayerRecord) (storage.PlayerRecord, bool) {
	batsmen := filterRole(players, storage.RoleBatsman)
	if len(batsmen) == 0 {
		return storage.PlayerRecord{}, false
	}
	sort.SliceStable(batsmen, func(i, j int) bool {
		if batsmen[i].TotalRuns != batsmen[j].TotalRuns {
			return batsmen[i].TotalRuns > batsmen[j].TotalRuns
		}
		return batsmen[i].BasePrice > batsmen[j].BasePrice
	})
	return batsmen[0], true
}

// bestBowler returns the specialist bowler with the most wickets, breaking
// ties on base price.
func bestBowler(players []storage.PlayerRecord) (storage.PlayerRecord, bool) {
	bowlers := filterRole(players, storage.RoleBowler)
	if len(bowlers) == 0 {
		return storage.PlayerRecord{}, false
	}
	sort.SliceStable(bowlers, func(i, j int) bool {
		if bowlers[i].Wickets != bowlers[j].Wickets {
			return bowlers[i].Wickets > bowlers[j].Wickets
		}
		return bowlers[i].BasePrice > bowlers[j].BasePrice
	})
	return bowlers[0], true
}

// bestAllRounder ranks all-rounders by runs plus ten points per wicket,
// breaking ties on base price.
func bestAllRounder(players []storage.PlayerRecord) (storage.PlayerRecord, bool) {
	allRounders := filterRole(players, storage.RoleAllRounder)
	if len(allRounders) == 0 {
		return storage.PlayerRecord{}, false
	}
	sort.SliceStable(allRounders, func(i, j int) bool {
		si, sj := allRounders[i].AllRounderScore(), allRounders[j].AllRounderScore()
		if si != sj {
			return si > sj
		}
		return allRounders[i].BasePrice > allRounders[j].BasePrice
	})
	return allRounders[0], true
}

// sortByValue returns a copy of players ordered by base price descending.
func sortByValue(players []storage.PlayerRecord) []storage.PlayerRecord {
	sorted := make([]storage.PlayerRecord, len(players))
	copy(sorted, players)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].BasePrice > sorted[j].BasePrice
	})
	return sorted
}

// topByValue returns the n most valuable players.
func topByValue(players []storage.PlayerRecord, n int) []storage.PlayerRecord {
	sorted := sortByValue(players)
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// topByValueForRole returns the n most valuable players with the given role.
func topByValueForRole(players []storage.PlayerRecord, role storage.Role, n int) []storage.PlayerRecord {
	return topByValue(filterRole(players, role), n)
}
