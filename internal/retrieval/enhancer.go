package retrieval

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spiritx-ai/cricket-engine/internal/generation"
	"github.com/spiritx-ai/cricket-engine/internal/observability"
)

// enhancer wraps the optional generation client. Every call is a single
// attempt: on any failure the caller falls back to deterministic formatting,
// so a missing or misbehaving model never breaks an answer.
type enhancer struct {
	gen    generation.Generator
	logger *observability.Logger
}

func newEnhancer(gen generation.Generator, logger *observability.Logger) *enhancer {
	return &enhancer{gen: gen, logger: logger.WithComponent("enhancer")}
}

func (e *enhancer) enabled() bool {
	return e.gen != nil
}

// enhance asks the model to phrase an answer around the provided player
// data. Returns ok=false when no model is configured or the call fails.
func (e *enhancer) enhance(ctx context.Context, query string, contextData interface{}) (string, bool) {
	if e.gen == nil {
		return "", false
	}

	data, err := json.Marshal(contextData)
	if err != nil {
		return "", false
	}

	prompt := fmt.Sprintf(`Given this cricket data: %s

Please provide a meaningful and conversational response to the user query: %s

FORMAT REQUIREMENTS:
- Format the response in a friendly, readable way
- Highlight key statistics in a natural way
- DO NOT return JSON or technical formats
- Use natural language as if you're having a conversation
- Focus only on the data provided
- IMPORTANT: DO NOT mention player points or reference any point calculations
- When referring to pricing, use the term "base price" or "value" instead`, data, query)

	return e.generate(ctx, prompt)
}

// extractPlayerName asks the model which player the query refers to.
func (e *enhancer) extractPlayerName(ctx context.Context, query string) (string, bool) {
	if e.gen == nil {
		return "", false
	}
	prompt := fmt.Sprintf(`Analyze this cricket player search query: "%s"
Extract the player name the user is looking for.
Return ONLY the player name, nothing else.`, query)
	return e.generate(ctx, prompt)
}

// extractPlayerTypes asks the model which role groups a query mentions.
// The result is lowercased and comma-split.
func (e *enhancer) extractPlayerTypes(ctx context.Context, query string) ([]string, bool) {
	if e.gen == nil {
		return nil, false
	}
	prompt := fmt.Sprintf(`Analyze this cricket query: "%s"
What types of players is the user asking for? Choose from: batsmen, bowlers, all-rounders.
If multiple types are mentioned, list them all separated by commas.
Return ONLY the player types, nothing else.`, query)

	text, ok := e.generate(ctx, prompt)
	if !ok {
		return nil, false
	}
	var types []string
	for _, t := range strings.Split(text, ",") {
		if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
			types = append(types, t)
		}
	}
	if len(types) == 0 {
		return nil, false
	}
	return types, true
}

func (e *enhancer) generate(ctx context.Context, prompt string) (string, bool) {
	start := time.Now()
	text, err := e.gen.Generate(ctx, prompt)
	if err != nil {
		e.logger.Warn().Err(err).Dur("duration", time.Since(start)).Msg("generation failed, using formatted response")
		return "", false
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", false
	}
	return text, true
}
