// Package storage provides the player record model and the tabular player store.
package storage

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Role is a player's derived role. It is recomputed from stats at every
// index refresh and never trusted from input.
type Role string

const (
	RoleBatsman    Role = "Batsman"
	RoleBowler     Role = "Bowler"
	RoleAllRounder Role = "All-Rounder"
)

// ClassifyRole derives a role from a player's career stats. The bowler rule
// is evaluated first; the order is part of the contract.
func ClassifyRole(totalRuns, wickets int) Role {
	if wickets > 5 && totalRuns < 50 {
		return RoleBowler
	}
	if totalRuns > 100 && wickets < 3 {
		return RoleBatsman
	}
	return RoleAllRounder
}

// ParseRole canonicalizes a stored role string. Unknown values fall back to
// All-Rounder, the classifier's own catch-all.
func ParseRole(s string) Role {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "batsman":
		return RoleBatsman
	case "bowler":
		return RoleBowler
	default:
		return RoleAllRounder
	}
}

// PlayerRecord is the canonical player unit. Name is the only identity key.
type PlayerRecord struct {
	Name          string
	University    string
	Category      string
	Role          Role
	TotalRuns     int
	BallsFaced    int
	InningsPlayed int
	Wickets       int
	OversBowled   float64
	RunsConceded  int
	BasePrice     int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// AllRounderScore is the combined metric used to rank all-rounders:
// runs plus ten points per wicket.
func (p PlayerRecord) AllRounderScore() int {
	return p.TotalRuns + p.Wickets*10
}

// Document renders the record as the text block that gets embedded into the
// vector index, one stat per line.
func (p PlayerRecord) Document() string {
	return fmt.Sprintf(`Player: %s
University: %s
Category: %s
Role: %s
Total Runs: %d
Balls Faced: %d
Innings Played: %d
Wickets: %d
Overs Bowled: %g
Runs Conceded: %d
Base Price: %d`,
		p.Name, p.University, p.Category, p.Role,
		p.TotalRuns, p.BallsFaced, p.InningsPlayed,
		p.Wickets, p.OversBowled, p.RunsConceded, p.BasePrice)
}

// Metadata renders the record as a metadata map carrying both the snake_case
// and Title Case key styles, kept consistent for downstream consumers that
// expect either.
func (p PlayerRecord) Metadata() map[string]interface{} {
	m := map[string]interface{}{
		"name":           p.Name,
		"university":     p.University,
		"category":       p.Category,
		"role":           string(p.Role),
		"total_runs":     p.TotalRuns,
		"balls_faced":    p.BallsFaced,
		"innings_played": p.InningsPlayed,
		"wickets":        p.Wickets,
		"overs_bowled":   p.OversBowled,
		"runs_conceded":  p.RunsConceded,
		"base_price":     p.BasePrice,
	}
	m["Name"] = m["name"]
	m["University"] = m["university"]
	m["Category"] = m["category"]
	m["Role"] = m["role"]
	m["Total Runs"] = m["total_runs"]
	m["Balls Faced"] = m["balls_faced"]
	m["Innings Played"] = m["innings_played"]
	m["Wickets"] = m["wickets"]
	m["Overs Bowled"] = m["overs_bowled"]
	m["Runs Conceded"] = m["runs_conceded"]
	m["Base Price"] = m["base_price"]
	return m
}

// NormalizeRecord coerces a raw metadata map into a PlayerRecord. Keys may
// appear in snake_case, Title Case, or both; the snake_case value wins when
// they disagree. Missing or unparsable numerics default to zero. It never
// fails: every input produces a fully-populated record.
func NormalizeRecord(meta map[string]interface{}) PlayerRecord {
	return PlayerRecord{
		Name:          dualString(meta, "name", "Name"),
		University:    dualString(meta, "university", "University"),
		Category:      dualString(meta, "category", "Category"),
		Role:          ParseRole(dualString(meta, "role", "Role")),
		TotalRuns:     dualInt(meta, "total_runs", "Total Runs"),
		BallsFaced:    dualInt(meta, "balls_faced", "Balls Faced"),
		InningsPlayed: dualInt(meta, "innings_played", "Innings Played"),
		Wickets:       dualInt(meta, "wickets", "Wickets"),
		OversBowled:   dualFloat(meta, "overs_bowled", "Overs Bowled"),
		RunsConceded:  dualInt(meta, "runs_conceded", "Runs Conceded"),
		BasePrice:     dualInt(meta, "base_price", "Base Price"),
	}
}

// dualString reads the snake_case key first, then the Title Case mirror.
func dualString(meta map[string]interface{}, snake, title string) string {
	if v, ok := meta[snake]; ok {
		if s := asString(v); s != "" {
			return s
		}
	}
	if v, ok := meta[title]; ok {
		return asString(v)
	}
	return ""
}

func dualInt(meta map[string]interface{}, snake, title string) int {
	if v, ok := meta[snake]; ok {
		return asInt(v)
	}
	if v, ok := meta[title]; ok {
		return asInt(v)
	}
	return 0
}

func dualFloat(meta map[string]interface{}, snake, title string) float64 {
	if v, ok := meta[snake]; ok {
		return asFloat(v)
	}
	if v, ok := meta[title]; ok {
		return asFloat(v)
	}
	return 0
}

func asString(v interface{}) string {
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	case fmt.Stringer:
		return strings.TrimSpace(s.String())
	case nil:
		return ""
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", v))
	}
}

// asInt converts a raw value to int, defaulting to zero on anything
// non-numeric, NaN, or negative garbage it cannot parse.
func asInt(v interface{}) int {
	switch n := v.(type) {
	case int:
		return n
	case int32:
		return int(n)
	case int64:
		return int(n)
	case float32:
		return floatToInt(float64(n))
	case float64:
		return floatToInt(n)
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return 0
		}
		if i, err := strconv.Atoi(s); err == nil {
			return i
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return floatToInt(f)
		}
		return 0
	default:
		return 0
	}
}

func asFloat(v interface{}) float64 {
	switch n := v.(type) {
	case int:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case float32:
		return checkedFloat(float64(n))
	case float64:
		return checkedFloat(n)
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return 0
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return checkedFloat(f)
		}
		return 0
	default:
		return 0
	}
}

func floatToInt(f float64) int {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return int(f)
}

func checkedFloat(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
