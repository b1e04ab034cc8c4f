// Package ingest applies player data updates to the record store and keeps
// the search collection in sync with them.
package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/spiritx-ai/cricket-engine/internal/collection"
	"github.com/spiritx-ai/cricket-engine/internal/observability"
	"github.com/spiritx-ai/cricket-engine/internal/storage"
)

// TournamentData carries per-tournament performance numbers for one player.
type TournamentData struct {
	Runs          int     `json:"runs"`
	BallsFaced    int     `json:"ballsFaced"`
	InningsPlayed int     `json:"inningsPlayed"`
	Wickets       int     `json:"wickets"`
	OversBowled   float64 `json:"oversBowled"`
	RunsConceded  int     `json:"runsConceded"`
}

// PlayerUpdate is one inbound update. It either upserts a player with fresh
// tournament numbers, deletes one by name, or carries a batch under Players.
type PlayerUpdate struct {
	PlayerID       string         `json:"playerId,omitempty"`
	Name           string         `json:"name"`
	University     string         `json:"university,omitempty"`
	Category       string         `json:"category,omitempty"`
	BasePrice      int            `json:"basePrice,omitempty"`
	TournamentData TournamentData `json:"tournamentData,omitempty"`
	DeletePlayer   bool           `json:"deletePlayer,omitempty"`
	Players        []PlayerUpdate `json:"players,omitempty"`
}

// Result summarizes what one Apply call did.
type Result struct {
	EventID  uuid.UUID
	Upserted int
	Deleted  int
	Skipped  int
	Duration time.Duration
}

// Pipeline writes player updates through to storage and refreshes the
// collection afterwards so answers reflect the new data immediately.
type Pipeline struct {
	repo   *storage.PlayerRepository
	coll   *collection.PlayerCollection
	logger *observability.Logger
}

// NewPipeline creates an ingestion pipeline.
func NewPipeline(repo *storage.PlayerRepository, coll *collection.PlayerCollection, logger *observability.Logger) *Pipeline {
	if logger == nil {
		logger = observability.Nop()
	}
	return &Pipeline{
		repo:   repo,
		coll:   coll,
		logger: logger.WithComponent("ingest"),
	}
}

// Apply processes one update payload. Nameless non-batch updates are skipped
// rather than failed, matching how upstream systems send partial rows. The
// collection is refreshed once at the end regardless of how many players the
// payload touched.
func (p *Pipeline) Apply(ctx context.Context, update PlayerUpdate) (*Result, error) {
	start := time.Now()
	res := &Result{EventID: uuid.New()}

	if update.DeletePlayer {
		if update.Name == "" {
			p.logger.Warn().Str("event_id", res.EventID.String()).Msg("delete requested without a player name")
			res.Skipped++
		} else {
			if err := p.repo.DeleteByName(ctx, update.Name); err != nil {
				return nil, fmt.Errorf("delete player %q: %w", update.Name, err)
			}
			res.Deleted++
		}
	} else if len(update.Players) > 0 {
		for _, player := range update.Players {
			if err := p.upsertOne(ctx, res, player); err != nil {
				return nil, err
			}
		}
	} else {
		if err := p.upsertOne(ctx, res, update); err != nil {
			return nil, err
		}
	}

	if err := p.coll.Refresh(ctx); err != nil {
		return nil, fmt.Errorf("refresh collection: %w", err)
	}

	res.Duration = time.Since(start)
	p.logger.Info().
		Str("event_id", res.EventID.String()).
		Int("upserted", res.Upserted).
		Int("deleted", res.Deleted).
		Int("skipped", res.Skipped).
		Dur("duration", res.Duration).
		Msg("player data applied")
	return res, nil
}

func (p *Pipeline) upsertOne(ctx context.Context, res *Result, update PlayerUpdate) error {
	if update.Name == "" {
		p.logger.Warn().Msg("player update without a name skipped")
		res.Skipped++
		return nil
	}

	record := storage.PlayerRecord{
		Name:          update.Name,
		University:    update.University,
		Category:      update.Category,
		TotalRuns:     update.TournamentData.Runs,
		BallsFaced:    update.TournamentData.BallsFaced,
		InningsPlayed: update.TournamentData.InningsPlayed,
		Wickets:       update.TournamentData.Wickets,
		OversBowled:   update.TournamentData.OversBowled,
		RunsConceded:  update.TournamentData.RunsConceded,
		BasePrice:     update.BasePrice,
	}
	record.Role = storage.ClassifyRole(record.TotalRuns, record.Wickets)

	// Preserve the university when an update omits it for a known player.
	if record.University == "" {
		if existing, err := p.repo.GetByName(ctx, record.Name); err == nil {
			record.University = existing.University
		}
	}

	if err := p.repo.Upsert(ctx, &record); err != nil {
		return fmt.Errorf("upsert player %q: %w", update.Name, err)
	}
	res.Upserted++
	return nil
}

// ImportCSV loads a CSV dataset into storage and refreshes the collection.
// It returns the number of players imported.
func (p *Pipeline) ImportCSV(ctx context.Context, path string, progress func(done, total int)) (int, error) {
	records, err := storage.ReadCSVFile(path)
	if err != nil {
		return 0, fmt.Errorf("read dataset: %w", err)
	}
	for i := range records {
		records[i].Role = storage.ClassifyRole(records[i].TotalRuns, records[i].Wickets)
		if err := p.repo.Upsert(ctx, &records[i]); err != nil {
			return 0, fmt.Errorf("upsert player %q: %w", records[i].Name, err)
		}
		if progress != nil {
			progress(i+1, len(records))
		}
	}
	if err := p.coll.Refresh(ctx); err != nil {
		return 0, fmt.Errorf("refresh collection: %w", err)
	}
	return len(records), nil
}
