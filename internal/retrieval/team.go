package retrieval

import "github.com/spiritx-ai/cricket-engine/internal/storage"

const teamSize = 11

// selectBestTeam builds a balanced eleven by value. Players are taken in
// base-price order: up to five batsmen, all-rounders until the squad reaches
// seven, bowlers until it reaches eleven, then remaining all-rounders and
// finally anyone left. A player never appears twice and the team never
// exceeds eleven even when fewer players exist per role.
func selectBestTeam(players []storage.PlayerRecord) []storage.PlayerRecord {
	byPrice := sortByValue(players)

	batsmen := filterRole(byPrice, storage.RoleBatsman)
	bowlers := filterRole(byPrice, storage.RoleBowler)
	allRounders := filterRole(byPrice, storage.RoleAllRounder)

	team := make([]storage.PlayerRecord, 0, teamSize)
	picked := make(map[string]bool)

	take := func(pool []storage.PlayerRecord, limit int) {
		for _, p := range pool {
			if len(team) >= limit {
				return
			}
			if picked[p.Name] {
				continue
			}
			team = append(team, p)
			picked[p.Name] = true
		}
	}

	take(batsmen, 5)
	take(allRounders, 7)
	take(bowlers, teamSize)
	take(allRounders, teamSize)
	take(byPrice, teamSize)

	return team
}
