package retrieval

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spiritx-ai/cricket-engine/internal/storage"
)

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "₹0"},
		{100, "₹100"},
		{1000, "₹1,000"},
		{850000, "₹850,000"},
		{1234567, "₹1,234,567"},
		{100000000, "₹100,000,000"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatPrice(tt.in))
	}
}

func TestFormatPlayerInfo(t *testing.T) {
	p := storage.PlayerRecord{
		Name:          "Kusal Mendis",
		University:    "University of Colombo",
		Category:      "Batsman",
		Role:          storage.RoleBatsman,
		TotalRuns:     530,
		Wickets:       0,
		InningsPlayed: 10,
		OversBowled:   3,
		RunsConceded:  21,
		BasePrice:     850000,
	}

	out := formatPlayerInfo(p)
	assert.Contains(t, out, "Player: Kusal Mendis")
	assert.Contains(t, out, "Base Price: ₹850,000")
	assert.Contains(t, out, "Kusal Mendis is a Batsman who has scored 530 runs and taken 0 wickets.")
	assert.NotContains(t, strings.ToLower(out), "points")
}

func TestFormatBestBatsman(t *testing.T) {
	out := formatBestBatsman(batsman("Top Bat", 500, 900000))
	assert.Contains(t, out, "The best batsman is Top Bat with 500 runs.")
	assert.Contains(t, out, "Base Price: ₹900,000")
}

func TestFormatBestPlayersNumbering(t *testing.T) {
	players := []storage.PlayerRecord{
		batsman("First", 100, 900000),
		bowler("Second", 10, 800000),
	}

	out := formatBestPlayers(players)
	assert.Contains(t, out, "1. First")
	assert.Contains(t, out, "2. Second")
	assert.NotContains(t, strings.ToLower(out), "points")
}

func TestFormatTeamSections(t *testing.T) {
	team := []storage.PlayerRecord{
		batsman("Bat One", 300, 900000),
		bowler("Ball One", 12, 800000),
		allRounder("Both One", 200, 8, 700000),
	}

	out := formatTeam(team)
	assert.Contains(t, out, "BATSMEN:\n- Bat One")
	assert.Contains(t, out, "BOWLERS:\n- Ball One")
	assert.Contains(t, out, "ALL-ROUNDERS:\n- Both One")
}

func TestRoleListLinePerRole(t *testing.T) {
	batLine := roleListLine(0, batsman("Bat", 300, 500000))
	assert.Contains(t, batLine, "Runs: 300")
	assert.NotContains(t, batLine, "Wickets")

	bowlLine := roleListLine(1, bowler("Ball", 12, 500000))
	assert.Contains(t, bowlLine, "2. Ball")
	assert.Contains(t, bowlLine, "Wickets: 12")
	assert.NotContains(t, bowlLine, "Runs")

	arLine := roleListLine(2, allRounder("Both", 200, 8, 500000))
	assert.Contains(t, arLine, "Runs: 200, Wickets: 8")
}
