package storage

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// CSVHeader is the canonical column order of the players dataset.
var CSVHeader = []string{
	"Name", "University", "Category", "Total Runs", "Balls Faced",
	"Innings Played", "Wickets", "Overs Bowled", "Runs Conceded", "Base Price",
}

// ReadCSV parses a players dataset. Column order is taken from the header
// row, so reordered or partial files still load; unknown columns are ignored
// and missing numerics default to zero.
func ReadCSV(r io.Reader) ([]PlayerRecord, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[name] = i
	}

	field := func(row []string, name string) interface{} {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return nil
		}
		return row[i]
	}

	var players []PlayerRecord
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv line %d: %w", line, err)
		}

		meta := map[string]interface{}{}
		for _, name := range CSVHeader {
			if v := field(row, name); v != nil {
				meta[name] = v
			}
		}

		p := NormalizeRecord(meta)
		if p.Name == "" {
			continue
		}
		players = append(players, p)
	}
	return players, nil
}

// ReadCSVFile loads a players dataset from disk.
func ReadCSVFile(path string) ([]PlayerRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()
	return ReadCSV(f)
}

// WriteCSV renders players back to the canonical dataset layout.
func WriteCSV(w io.Writer, players []PlayerRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, p := range players {
		row := []string{
			p.Name,
			p.University,
			p.Category,
			fmt.Sprintf("%d", p.TotalRuns),
			fmt.Sprintf("%d", p.BallsFaced),
			fmt.Sprintf("%d", p.InningsPlayed),
			fmt.Sprintf("%d", p.Wickets),
			fmt.Sprintf("%g", p.OversBowled),
			fmt.Sprintf("%d", p.RunsConceded),
			fmt.Sprintf("%d", p.BasePrice),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row for %q: %w", p.Name, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
