package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/reversi-backend/internal/entity"
)

const (
	EventState = "state"
	EventError = "error"

	ActionMove  = "move"
	ActionEnd   = "end"
	ActionState = "state"
)

// Message is sent by a client to act on the game it is subscribed to.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type MovePayload struct {
	Row   *int   `json:"r"`
	Col   *int   `json:"c"`
	Color string `json:"color"`
}

type EndPayload struct {
	By string `json:"by"`
}

// Event is sent by the server: a fresh state for every subscriber, or an error for the client that caused it.
type Event struct {
	Event   string        `json:"event"`
	GameID  string        `json:"game_id"`
	State   *entity.State `json:"state,omitempty"`
	Error   string        `json:"error,omitempty"`
	Message string        `json:"message,omitempty"`
}
