package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyRole(t *testing.T) {
	tests := []struct {
		name    string
		runs    int
		wickets int
		want    Role
	}{
		{"heavy wickets low runs is a bowler", 40, 6, RoleBowler},
		{"bowler rule wins before batsman rule", 49, 6, RoleBowler},
		{"high runs few wickets is a batsman", 120, 1, RoleBatsman},
		{"high runs and high wickets is an all-rounder", 120, 6, RoleAllRounder},
		{"middling stats default to all-rounder", 80, 4, RoleAllRounder},
		{"zero stats default to all-rounder", 0, 0, RoleAllRounder},
		{"boundary: wickets exactly 5 is not a bowler", 40, 5, RoleAllRounder},
		{"boundary: runs exactly 100 is not a batsman", 100, 1, RoleAllRounder},
		{"boundary: wickets exactly 3 is not a batsman", 150, 3, RoleAllRounder},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ClassifyRole(tc.runs, tc.wickets))
			// Deterministic on repeat.
			assert.Equal(t, tc.want, ClassifyRole(tc.runs, tc.wickets))
		})
	}
}

func TestNormalizeRecord_DualKeys(t *testing.T) {
	t.Run("snake_case wins over Title Case", func(t *testing.T) {
		p := NormalizeRecord(map[string]interface{}{
			"total_runs": 150,
			"Total Runs": 99,
			"name":       "Kusal Mendis",
			"Name":       "Wrong Name",
		})
		assert.Equal(t, 150, p.TotalRuns)
		assert.Equal(t, "Kusal Mendis", p.Name)
	})

	t.Run("Title Case fills in when snake_case is absent", func(t *testing.T) {
		p := NormalizeRecord(map[string]interface{}{
			"Name":       "Angelo Perera",
			"Wickets":    "7",
			"Base Price": 500000,
		})
		assert.Equal(t, "Angelo Perera", p.Name)
		assert.Equal(t, 7, p.Wickets)
		assert.Equal(t, 500000, p.BasePrice)
	})
}

func TestNormalizeRecord_CoercionDefaults(t *testing.T) {
	p := NormalizeRecord(map[string]interface{}{
		"name":         "Test Player",
		"total_runs":   "not a number",
		"wickets":      nil,
		"overs_bowled": "12.5",
		"base_price":   "750000",
	})

	assert.Equal(t, 0, p.TotalRuns)
	assert.Equal(t, 0, p.Wickets)
	assert.Equal(t, 12.5, p.OversBowled)
	assert.Equal(t, 750000, p.BasePrice)
	assert.Equal(t, 0, p.BallsFaced, "absent field defaults to zero")
}

func TestNormalizeRecord_Idempotent(t *testing.T) {
	first := NormalizeRecord(map[string]interface{}{
		"name":       "Dimuth Silva",
		"role":       "Batsman",
		"total_runs": 230,
		"wickets":    1,
		"base_price": 900000,
	})

	second := NormalizeRecord(first.Metadata())
	assert.Equal(t, first, second)
}

func TestMetadata_MirrorsBothKeyStyles(t *testing.T) {
	p := PlayerRecord{Name: "Test", TotalRuns: 42, Role: RoleBatsman}
	m := p.Metadata()

	assert.Equal(t, m["total_runs"], m["Total Runs"])
	assert.Equal(t, m["name"], m["Name"])
	assert.Equal(t, m["role"], m["Role"])
}

func TestParseRole(t *testing.T) {
	assert.Equal(t, RoleBatsman, ParseRole("batsman"))
	assert.Equal(t, RoleBowler, ParseRole(" Bowler "))
	assert.Equal(t, RoleAllRounder, ParseRole("all-rounder"))
	assert.Equal(t, RoleAllRounder, ParseRole("garbage"))
	assert.Equal(t, RoleAllRounder, ParseRole(""))
}
