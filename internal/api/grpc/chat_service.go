// Package grpc provides gRPC/Connect service implementations for the
// cricket engine, used by internal callers that prefer typed RPC over the
// public HTTP surface.
package grpc

import (
	"context"
	"errors"

	"connectrpc.com/connect"

	"github.com/spiritx-ai/cricket-engine/internal/ingest"
	"github.com/spiritx-ai/cricket-engine/internal/observability"
	"github.com/spiritx-ai/cricket-engine/internal/retrieval"
)

// ChatService implements the Connect chat service.
type ChatService struct {
	logger   *observability.Logger
	router   *retrieval.Router
	pipeline *ingest.Pipeline
}

// NewChatService creates a new chat service.
func NewChatService(logger *observability.Logger, router *retrieval.Router, pipeline *ingest.Pipeline) *ChatService {
	return &ChatService{
		logger:   logger,
		router:   router,
		pipeline: pipeline,
	}
}

// AskRequest represents the RPC request message for a chat query.
type AskRequest struct {
	Query string `json:"query"`
}

// AskResponse represents the RPC response message for a chat query.
type AskResponse struct {
	Response string `json:"response"`
}

// UpdatePlayersRequest represents the RPC request message for a player
// data update.
type UpdatePlayersRequest struct {
	Update ingest.PlayerUpdate `json:"update"`
}

// UpdatePlayersResponse represents the RPC response message for a player
// data update.
type UpdatePlayersResponse struct {
	EventID  string `json:"event_id"`
	Upserted int    `json:"upserted"`
	Deleted  int    `json:"deleted"`
	Skipped  int    `json:"skipped"`
}

// Ask handles Connect chat queries.
func (s *ChatService) Ask(ctx context.Context, req *connect.Request[AskRequest]) (*connect.Response[AskResponse], error) {
	if req.Msg.Query == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("query is required"))
	}

	response := s.router.Answer(ctx, req.Msg.Query)
	return connect.NewResponse(&AskResponse{Response: response}), nil
}

// UpdatePlayers handles Connect player data updates.
func (s *ChatService) UpdatePlayers(ctx context.Context, req *connect.Request[UpdatePlayersRequest]) (*connect.Response[UpdatePlayersResponse], error) {
	update := req.Msg.Update
	if update.Name == "" && len(update.Players) == 0 {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("update must name a player or carry a players batch"))
	}

	res, err := s.pipeline.Apply(ctx, update)
	if err != nil {
		s.logger.Error().Err(err).Msg("player update failed")
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	return connect.NewResponse(&UpdatePlayersResponse{
		EventID:  res.EventID.String(),
		Upserted: res.Upserted,
		Deleted:  res.Deleted,
		Skipped:  res.Skipped,
	}), nil
}
