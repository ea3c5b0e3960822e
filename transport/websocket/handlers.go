package websocket

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/reversi-backend/internal/apperror"
	"github.com/rocketscienceinc/reversi-backend/internal/entity"
)

// handleMove - applies a move. The resulting state reaches every subscriber through the hub.
func (that *Server) handleMove(ctx context.Context, client *Client, message *Message) error {
	var payload MovePayload
	if err := json.Unmarshal(message.Payload, &payload); err != nil {
		return fmt.Errorf("%w: %w", apperror.ErrBadRequest, err)
	}

	if payload.Row == nil || payload.Col == nil {
		return fmt.Errorf("%w: r and c are required", apperror.ErrBadRequest)
	}

	if _, err := that.uGame.MakeMove(ctx, client.gameID, entity.Color(payload.Color), *payload.Row, *payload.Col); err != nil {
		return fmt.Errorf("failed to handle move: %w", err)
	}

	return nil
}

func (that *Server) handleEnd(ctx context.Context, client *Client, message *Message) error {
	var payload EndPayload
	if err := json.Unmarshal(message.Payload, &payload); err != nil {
		return fmt.Errorf("%w: %w", apperror.ErrBadRequest, err)
	}

	if _, err := that.uGame.EndGame(ctx, client.gameID, entity.Color(payload.By)); err != nil {
		return fmt.Errorf("failed to handle end: %w", err)
	}

	return nil
}

// handleState - resends the current state to the asking client only.
func (that *Server) handleState(ctx context.Context, client *Client, _ *Message) error {
	that.sendState(ctx, client)

	return nil
}
