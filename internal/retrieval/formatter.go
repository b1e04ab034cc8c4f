package retrieval

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spiritx-ai/cricket-engine/internal/storage"
)

// formatPrice renders a rupee amount with thousands separators. Responses
// always express value as a base price in rupees, never as points.
func formatPrice(n int) string {
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	s := strconv.Itoa(n)
	var sb strings.Builder
	sb.WriteString(sign)
	lead := len(s) % 3
	if lead > 0 {
		sb.WriteString(s[:lead])
		if len(s) > lead {
			sb.WriteByte(',')
		}
	}
	for i := lead; i < len(s); i += 3 {
		sb.WriteString(s[i : i+3])
		if i+3 < len(s) {
			sb.WriteByte(',')
		}
	}
	return "₹" + sb.String()
}

func formatOvers(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// formatPlayerInfo renders the full profile card for one player.
func formatPlayerInfo(p storage.PlayerRecord) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Player: %s\n", p.Name)
	fmt.Fprintf(&sb, "University: %s\n", p.University)
	fmt.Fprintf(&sb, "Category: %s\n", p.Category)
	fmt.Fprintf(&sb, "Role: %s\n", p.Role)
	fmt.Fprintf(&sb, "Base Price: %s\n", formatPrice(p.BasePrice))
	sb.WriteString("Stats:\n")
	fmt.Fprintf(&sb, "  - Total Runs: %d\n", p.TotalRuns)
	fmt.Fprintf(&sb, "  - Wickets: %d\n", p.Wickets)
	fmt.Fprintf(&sb, "  - Innings Played: %d\n", p.InningsPlayed)
	fmt.Fprintf(&sb, "  - Overs Bowled: %s\n", formatOvers(p.OversBowled))
	fmt.Fprintf(&sb, "  - Runs Conceded: %d\n", p.RunsConceded)
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "%s is a %s who has scored %d runs and taken %d wickets.\n", p.Name, p.Role, p.TotalRuns, p.Wickets)
	return sb.String()
}

func formatBestBatsman(p storage.PlayerRecord) string {
	return fmt.Sprintf("The best batsman is %s with %d runs.\nBase Price: %s\n\n%s",
		p.Name, p.TotalRuns, formatPrice(p.BasePrice), formatPlayerInfo(p))
}

func formatBestBowler(p storage.PlayerRecord) string {
	return fmt.Sprintf("The best bowler is %s with %d wickets.\nBase Price: %s\n\n%s",
		p.Name, p.Wickets, formatPrice(p.BasePrice), formatPlayerInfo(p))
}

func formatBestAllRounder(p storage.PlayerRecord) string {
	return fmt.Sprintf("The best all-rounder is %s with %d runs and %d wickets.\nBase Price: %s\n\n%s",
		p.Name, p.TotalRuns, p.Wickets, formatPrice(p.BasePrice), formatPlayerInfo(p))
}

// formatBestPlayers lists the most valuable players with their full line.
func formatBestPlayers(players []storage.PlayerRecord) string {
	var sb strings.Builder
	sb.WriteString("Here are the top cricket players based on their value:\n\n")
	for i, p := range players {
		fmt.Fprintf(&sb, "%d. %s - %s - Base Price: %s - Runs: %d, Wickets: %d\n",
			i+1, p.Name, p.Role, formatPrice(p.BasePrice), p.TotalRuns, p.Wickets)
	}
	return sb.String()
}

// formatTeam renders a selected eleven grouped by role.
func formatTeam(team []storage.PlayerRecord) string {
	var sb strings.Builder
	sb.WriteString("Here's the best cricket team based on player value and role:\n\n")

	sb.WriteString("BATSMEN:\n")
	for _, p := range filterRole(team, storage.RoleBatsman) {
		fmt.Fprintf(&sb, "- %s (Base Price: %s, Runs: %d)\n", p.Name, formatPrice(p.BasePrice), p.TotalRuns)
	}

	sb.WriteString("\nBOWLERS:\n")
	for _, p := range filterRole(team, storage.RoleBowler) {
		fmt.Fprintf(&sb, "- %s (Base Price: %s, Wickets: %d)\n", p.Name, formatPrice(p.BasePrice), p.Wickets)
	}

	sb.WriteString("\nALL-ROUNDERS:\n")
	for _, p := range filterRole(team, storage.RoleAllRounder) {
		fmt.Fprintf(&sb, "- %s (Base Price: %s, Runs: %d, Wickets: %d)\n", p.Name, formatPrice(p.BasePrice), p.TotalRuns, p.Wickets)
	}

	return sb.String()
}

// roleListLine renders one numbered entry for a role listing. Batsman lines
// show runs, bowler lines show wickets, all-rounder lines show both.
func roleListLine(i int, p storage.PlayerRecord) string {
	switch p.Role {
	case storage.RoleBatsman:
		return fmt.Sprintf("%d. %s - Base Price: %s - Runs: %d\n", i+1, p.Name, formatPrice(p.BasePrice), p.TotalRuns)
	case storage.RoleBowler:
		return fmt.Sprintf("%d. %s - Base Price: %s - Wickets: %d\n", i+1, p.Name, formatPrice(p.BasePrice), p.Wickets)
	default:
		return fmt.Sprintf("%d. %s - Base Price: %s - Runs: %d, Wickets: %d\n", i+1, p.Name, formatPrice(p.BasePrice), p.TotalRuns, p.Wickets)
	}
}

func formatRoleList(header string, players []storage.PlayerRecord) string {
	var sb strings.Builder
	sb.WriteString(header + "\n\n")
	for i, p := range players {
		sb.WriteString(roleListLine(i, p))
	}
	return sb.String()
}

// formatMixed renders one section per requested role group.
func formatMixed(header string, sections []mixedSection) string {
	var sb strings.Builder
	sb.WriteString(header + "\n\n")
	for i, sec := range sections {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(sec.title + "\n")
		for j, p := range sec.players {
			sb.WriteString(roleListLine(j, p))
		}
	}
	return sb.String()
}

type mixedSection struct {
	title   string
	players []storage.PlayerRecord
}
