// Package engine provides the public Go SDK for the cricket engine HTTP API.
package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client is the public SDK client for the cricket engine.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// ClientConfig holds client configuration.
type ClientConfig struct {
	BaseURL string
	Timeout time.Duration
}

// NewClient creates a new cricket engine client.
func NewClient(cfg ClientConfig) (*Client, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:5000"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// AskResponse represents a chatbot query response.
type AskResponse struct {
	Response string `json:"response"`
}

// Ask sends a chat query and returns the engine's answer.
func (c *Client) Ask(ctx context.Context, query string) (string, error) {
	u := fmt.Sprintf("%s/chatbot/query?query=%s", c.baseURL, url.QueryEscape(query))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	var resp AskResponse
	if err := c.do(req, &resp); err != nil {
		return "", err
	}
	return resp.Response, nil
}

// TournamentData carries per-tournament performance numbers for one player.
type TournamentData struct {
	Runs          int     `json:"runs"`
	BallsFaced    int     `json:"ballsFaced"`
	InningsPlayed int     `json:"inningsPlayed"`
	Wickets       int     `json:"wickets"`
	OversBowled   float64 `json:"oversBowled"`
	RunsConceded  int     `json:"runsConceded"`
}

// PlayerUpdate represents one player data update. It either upserts a
// player, deletes one by name, or carries a batch under Players.
type PlayerUpdate struct {
	PlayerID       string         `json:"playerId,omitempty"`
	Name           string         `json:"name,omitempty"`
	University     string         `json:"university,omitempty"`
	Category       string         `json:"category,omitempty"`
	BasePrice      int            `json:"basePrice,omitempty"`
	TournamentData TournamentData `json:"tournamentData,omitempty"`
	DeletePlayer   bool           `json:"deletePlayer,omitempty"`
	Players        []PlayerUpdate `json:"players,omitempty"`
}

// UpdateResponse represents a player data update response.
type UpdateResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// UpdatePlayers pushes a player data update to the engine.
func (c *Client) UpdatePlayers(ctx context.Context, update PlayerUpdate) (*UpdateResponse, error) {
	body, err := json.Marshal(update)
	if err != nil {
		return nil, fmt.Errorf("marshal update: %w", err)
	}

	u := c.baseURL + "/chatbot/api/update-player-data"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var resp UpdateResponse
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// HealthResponse represents a health check response.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// Health checks the service health.
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	var resp HealthResponse
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, body)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
