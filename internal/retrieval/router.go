// Package retrieval routes chat queries to ranked, formatted answers over
// the player collection. Deterministic keyword intents are tried in order
// before any semantic search, so the engine answers the common questions
// identically with or without an external model.
package retrieval

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spiritx-ai/cricket-engine/internal/generation"
	"github.com/spiritx-ai/cricket-engine/internal/observability"
	"github.com/spiritx-ai/cricket-engine/internal/storage"
	"github.com/spiritx-ai/cricket-engine/internal/vector"
)

// Collection is the read surface the router needs from the player
// collection.
type Collection interface {
	GetAllRecords(ctx context.Context) ([]storage.PlayerRecord, error)
	SimilaritySearch(ctx context.Context, query string, k int) ([]vector.Result, error)
}

// Intent labels which branch answered a query. Used for logging only.
type Intent string

const (
	IntentEmpty            Intent = "empty"
	IntentGreeting         Intent = "greeting"
	IntentOutOfDomain      Intent = "out_of_domain"
	IntentStorageError     Intent = "storage_error"
	IntentNoPlayers        Intent = "no_players"
	IntentPlayerNameSearch Intent = "player_name_search"
	IntentBestBatsman      Intent = "best_batsman"
	IntentBestBowler       Intent = "best_bowler"
	IntentBestAllRounder   Intent = "best_all_rounder"
	IntentBestPlayers      Intent = "best_players"
	IntentBestTeam         Intent = "best_team"
	IntentListBatsmen      Intent = "list_batsmen"
	IntentListBowlers      Intent = "list_bowlers"
	IntentListAllRounders  Intent = "list_all_rounders"
	IntentMixedPlayerTypes Intent = "mixed_player_types"
	IntentFallback         Intent = "semantic_fallback"
	IntentNotFound         Intent = "not_found"
	IntentPanic            Intent = "panic"
)

// User-visible responses for the non-ranking branches. These are part of the
// external contract: clients match on them.
const (
	msgEmptyQuery   = "Please provide a query."
	msgGreeting     = "Hello! Welcome to SpiritxBot. I can help you with cricket player information. Ask me about players, batsmen, bowlers, all-rounders, or the best cricket team!"
	msgOutOfDomain  = "I only provide information about cricket players and teams. Please ask me about cricket players, statistics, or teams."
	msgStorageError = "Error accessing player database. Please try again later."
	msgNoPlayers    = "No players found in the database."
	msgNotFound     = "I couldn't find the information you're looking for. Please try asking about specific cricket players, teams, or statistics."
	msgPanic        = "An error occurred while processing your request."
)

var greetingWords = []string{"hi", "hello", "hey", "greetings", "hola"}

var cricketKeywords = []string{
	"cricket", "player", "batsman", "bowler", "all-rounder", "allrounder",
	"team", "runs", "wickets", "innings", "stats", "statistics", "batting",
	"bowling", "score", "match", "tournament", "performance", "best",
}

// Config controls router behavior.
type Config struct {
	// FallbackResults is how many neighbors the semantic fallback retrieves
	// for model-assisted answers.
	FallbackResults int
}

// Router answers queries against the player collection.
type Router struct {
	coll            Collection
	enh             *enhancer
	logger          *observability.Logger
	fallbackResults int
}

// NewRouter creates a query router. gen may be nil; the router then answers
// every query with deterministic formatting.
func NewRouter(coll Collection, gen generation.Generator, cfg Config, logger *observability.Logger) *Router {
	if logger == nil {
		logger = observability.Nop()
	}
	if cfg.FallbackResults <= 0 {
		cfg.FallbackResults = 3
	}
	return &Router{
		coll:            coll,
		enh:             newEnhancer(gen, logger),
		logger:          logger.WithComponent("retrieval"),
		fallbackResults: cfg.FallbackResults,
	}
}

// Answer resolves one query to a user-visible response. It never returns an
// error: every failure maps to one of the fixed response strings, and a
// panic anywhere in the pipeline yields a generic apology rather than
// crashing the caller.
func (r *Router) Answer(ctx context.Context, query string) (response string) {
	start := time.Now()
	intent := IntentNotFound

	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error().Str("query", query).Str("panic", fmt.Sprintf("%v", rec)).Msg("recovered from panic while answering")
			intent = IntentPanic
			response = msgPanic
		}
		r.logger.Info().
			Str("intent", string(intent)).
			Dur("duration", time.Since(start)).
			Msg("query answered")
	}()

	query = strings.TrimSpace(query)
	if query == "" {
		intent = IntentEmpty
		return msgEmptyQuery
	}

	qLower := strings.ToLower(query)

	for _, word := range greetingWords {
		if qLower == word {
			intent = IntentGreeting
			return msgGreeting
		}
	}

	if !isCricketQuery(qLower) {
		intent = IntentOutOfDomain
		return msgOutOfDomain
	}

	players, err := r.coll.GetAllRecords(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to load player snapshot")
		intent = IntentStorageError
		return msgStorageError
	}
	if len(players) == 0 {
		intent = IntentNoPlayers
		return msgNoPlayers
	}

	if resp, ok := r.answerPlayerSearch(ctx, query, qLower, players); ok {
		intent = IntentPlayerNameSearch
		return resp
	}

	switch {
	case strings.Contains(qLower, "best batsman"):
		intent = IntentBestBatsman
		return r.answerBestBatsman(ctx, players)

	case strings.Contains(qLower, "best bowler"):
		intent = IntentBestBowler
		return r.answerBestBowler(ctx, players)

	case strings.Contains(qLower, "best all-rounder"),
		strings.Contains(qLower, "best all rounder"),
		strings.Contains(qLower, "best allrounder"):
		intent = IntentBestAllRounder
		return r.answerBestAllRounder(ctx, players)

	case strings.Contains(qLower, "best players"):
		intent = IntentBestPlayers
		return r.answerBestPlayers(ctx, players)

	case strings.Contains(qLower, "best team"):
		intent = IntentBestTeam
		return r.answerBestTeam(ctx, players)

	case strings.Contains(qLower, "batsmen"), strings.Contains(qLower, "batsman list"):
		intent = IntentListBatsmen
		return r.answerRoleList(ctx, players, storage.RoleBatsman,
			"Top Batsmen by Value:", "List the top batsmen in cricket")

	case strings.Contains(qLower, "bowlers"), strings.Contains(qLower, "bowler list"):
		intent = IntentListBowlers
		return r.answerRoleList(ctx, players, storage.RoleBowler,
			"Top Bowlers by Value:", "List the top bowlers in cricket")

	case strings.Contains(qLower, "all-rounders"),
		strings.Contains(qLower, "all rounders"),
		strings.Contains(qLower, "allrounders"):
		intent = IntentListAllRounders
		return r.answerRoleList(ctx, players, storage.RoleAllRounder,
			"Top All-Rounders by Value:", "List the top all-rounders in cricket")

	case strings.Contains(qLower, "players"):
		intent = IntentMixedPlayerTypes
		return r.answerMixed(ctx, query, qLower, players)
	}

	if resp, ok := r.answerFallback(ctx, query); ok {
		intent = IntentFallback
		return resp
	}

	intent = IntentNotFound
	return msgNotFound
}

// isCricketQuery reports whether the query mentions any cricket term.
func isCricketQuery(qLower string) bool {
	for _, kw := range cricketKeywords {
		if strings.Contains(qLower, kw) {
			return true
		}
	}
	return false
}

// answerPlayerSearch handles "player" queries that mention a known name.
// Returns ok=false when the query does not name anyone in the collection,
// letting the ranked intents take over.
func (r *Router) answerPlayerSearch(ctx context.Context, query, qLower string, players []storage.PlayerRecord) (string, bool) {
	if !strings.Contains(qLower, "player") || !mentionsKnownName(qLower, players) {
		return "", false
	}

	name, ok := r.enh.extractPlayerName(ctx, query)
	if !ok {
		for _, p := range players {
			if p.Name != "" && strings.Contains(qLower, strings.ToLower(p.Name)) {
				name = p.Name
				ok = true
				break
			}
		}
	}
	if !ok || name == "" {
		return "", false
	}

	matched := searchByName(players, name)
	switch len(matched) {
	case 0:
		return "", false
	case 1:
		if resp, ok := r.enh.enhance(ctx, "Tell me about "+matched[0].Name, matched[0]); ok {
			return resp, true
		}
		return formatPlayerInfo(matched[0]), true
	default:
		names := make([]string, len(matched))
		for i, p := range matched {
			names[i] = p.Name
		}
		return "I found multiple players matching that name: " + strings.Join(names, ", ") +
			". Could you please specify which one you're interested in?", true
	}
}

func mentionsKnownName(qLower string, players []storage.PlayerRecord) bool {
	for _, p := range players {
		if p.Name != "" && strings.Contains(qLower, strings.ToLower(p.Name)) {
			return true
		}
	}
	return false
}

// searchByName returns every player whose name contains the query,
// case-insensitively.
func searchByName(players []storage.PlayerRecord, name string) []storage.PlayerRecord {
	needle := strings.ToLower(strings.TrimSpace(name))
	if needle == "" {
		return nil
	}
	var matched []storage.PlayerRecord
	for _, p := range players {
		if strings.Contains(strings.ToLower(p.Name), needle) {
			matched = append(matched, p)
		}
	}
	return matched
}

func (r *Router) answerBestBatsman(ctx context.Context, players []storage.PlayerRecord) string {
	best, ok := bestBatsman(players)
	if !ok {
		return "No specialized batsmen found in the database."
	}
	if resp, ok := r.enh.enhance(ctx, "Who is the best batsman?", best); ok {
		return resp
	}
	return formatBestBatsman(best)
}

func (r *Router) answerBestBowler(ctx context.Context, players []storage.PlayerRecord) string {
	best, ok := bestBowler(players)
	if !ok {
		return "No specialized bowlers found in the database."
	}
	if resp, ok := r.enh.enhance(ctx, "Who is the best bowler?", best); ok {
		return resp
	}
	return formatBestBowler(best)
}

func (r *Router) answerBestAllRounder(ctx context.Context, players []storage.PlayerRecord) string {
	best, ok := bestAllRounder(players)
	if !ok {
		return "No all-rounders found in the database."
	}
	if resp, ok := r.enh.enhance(ctx, "Who is the best all-rounder?", best); ok {
		return resp
	}
	return formatBestAllRounder(best)
}

func (r *Router) answerBestPlayers(ctx context.Context, players []storage.PlayerRecord) string {
	sorted := sortByValue(players)
	if len(sorted) > 0 {
		top := sorted
		if len(top) > 5 {
			top = top[:5]
		}
		if resp, ok := r.enh.enhance(ctx, "Who are the best cricket players?", top); ok {
			return resp
		}
	}
	if len(sorted) > 10 {
		sorted = sorted[:10]
	}
	return formatBestPlayers(sorted)
}

func (r *Router) answerBestTeam(ctx context.Context, players []storage.PlayerRecord) string {
	team := selectBestTeam(players)
	if len(team) > 0 {
		if resp, ok := r.enh.enhance(ctx, "Create the best cricket team with these players", team); ok {
			return resp
		}
	}
	return formatTeam(team)
}

func (r *Router) answerRoleList(ctx context.Context, players []storage.PlayerRecord, role storage.Role, header, enhanceQuery string) string {
	top := topByValueForRole(players, role, 10)
	if len(top) > 0 {
		if resp, ok := r.enh.enhance(ctx, enhanceQuery, top); ok {
			return resp
		}
	}
	return formatRoleList(header, top)
}

// answerMixed handles generic "players" queries, splitting the answer into
// one section per requested role group, five players each.
func (r *Router) answerMixed(ctx context.Context, query, qLower string, players []storage.PlayerRecord) string {
	types, ok := r.enh.extractPlayerTypes(ctx, query)
	if !ok {
		if strings.Contains(qLower, "batsman") || strings.Contains(qLower, "batsmen") {
			types = append(types, "batsmen")
		}
		if strings.Contains(qLower, "bowler") || strings.Contains(qLower, "bowlers") {
			types = append(types, "bowlers")
		}
		if strings.Contains(qLower, "all-rounder") || strings.Contains(qLower, "all rounder") || strings.Contains(qLower, "allrounder") {
			types = append(types, "all-rounders")
		}
	}

	if len(types) > 0 {
		requested := make(map[string]bool, len(types))
		for _, t := range types {
			requested[t] = true
		}

		var sections []mixedSection
		if requested["batsmen"] {
			sections = append(sections, mixedSection{"Top Batsmen by Value:", topByValueForRole(players, storage.RoleBatsman, 5)})
		}
		if requested["bowlers"] {
			sections = append(sections, mixedSection{"Top Bowlers by Value:", topByValueForRole(players, storage.RoleBowler, 5)})
		}
		if requested["all-rounders"] {
			sections = append(sections, mixedSection{"Top All-Rounders by Value:", topByValueForRole(players, storage.RoleAllRounder, 5)})
		}

		if len(sections) > 0 {
			if resp, ok := r.enh.enhance(ctx, "Show information about cricket "+strings.Join(types, ", "), sections); ok {
				return resp
			}
			return formatMixed("Here are the players you asked about:", sections)
		}
	}

	sections := []mixedSection{
		{"Top Batsmen:", topByValueForRole(players, storage.RoleBatsman, 5)},
		{"Top Bowlers:", topByValueForRole(players, storage.RoleBowler, 5)},
		{"Top All-Rounders:", topByValueForRole(players, storage.RoleAllRounder, 5)},
	}
	if resp, ok := r.enh.enhance(ctx, "Show information about top cricket players of all types", sections); ok {
		return resp
	}
	return formatMixed("Here are the top cricket players across all categories by value:", sections)
}

// answerFallback runs the semantic search path: a model-assisted pass over
// the nearest few players, then a plain nearest-player card.
func (r *Router) answerFallback(ctx context.Context, query string) (string, bool) {
	if r.enh.enabled() {
		results, err := r.coll.SimilaritySearch(ctx, query, r.fallbackResults)
		if err != nil {
			r.logger.Warn().Err(err).Msg("semantic search failed")
		} else if len(results) > 0 {
			neighbors := make([]storage.PlayerRecord, len(results))
			for i, res := range results {
				neighbors[i] = storage.NormalizeRecord(res.Metadata)
			}
			if resp, ok := r.enh.enhance(ctx, query, neighbors); ok {
				return resp, true
			}
			return formatPlayerInfo(neighbors[0]), true
		}
	}

	results, err := r.coll.SimilaritySearch(ctx, query, 1)
	if err != nil {
		r.logger.Warn().Err(err).Msg("semantic search failed")
		return "", false
	}
	if len(results) == 0 {
		return "", false
	}
	return formatPlayerInfo(storage.NormalizeRecord(results[0].Metadata)), true
}
