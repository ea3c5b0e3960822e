package websocket

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/rocketscienceinc/reversi-backend/internal/entity"
)

const sendBufferSize = 256

type directMessage struct {
	client *Client
	data   []byte
}

type broadcastMessage struct {
	gameID string
	data   []byte
}

// Hub keeps the subscribers of every game and fans state updates out to them.
// All subscriber bookkeeping happens on the Run goroutine.
type Hub struct {
	logger *slog.Logger

	games map[string]map[*Client]struct{}

	broadcast  chan broadcastMessage
	direct     chan directMessage
	register   chan *Client
	unregister chan *Client

	done chan struct{}
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		logger:     logger.With("component", "ws_hub"),
		games:      make(map[string]map[*Client]struct{}),
		broadcast:  make(chan broadcastMessage),
		direct:     make(chan directMessage),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Run - serves the hub until ctx is cancelled. Every remaining client is disconnected on exit.
func (that *Hub) Run(ctx context.Context) {
	defer close(that.done)

	for {
		select {
		case client := <-that.register:
			that.registerClient(client)

		case client := <-that.unregister:
			that.unregisterClient(client)

		case message := <-that.broadcast:
			that.broadcastMessage(message)

		case message := <-that.direct:
			that.sendDirect(message)

		case <-ctx.Done():
			for _, clients := range that.games {
				for client := range clients {
					that.unregisterClient(client)
				}
			}
			return
		}
	}
}

// Publish - sends state to every subscriber of gameID.
func (that *Hub) Publish(gameID string, state *entity.State) {
	data, err := json.Marshal(Event{Event: EventState, GameID: gameID, State: state})
	if err != nil {
		that.logger.Error("failed to marshal state event", "game_id", gameID, "error", err)
		return
	}

	select {
	case that.broadcast <- broadcastMessage{gameID: gameID, data: data}:
	case <-that.done:
	}
}

// SendTo - queues an event for one client only.
func (that *Hub) SendTo(client *Client, event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		that.logger.Error("failed to marshal event", "game_id", event.GameID, "error", err)
		return
	}

	select {
	case that.direct <- directMessage{client: client, data: data}:
	case <-that.done:
	}
}

// Subscribe - attaches client to the hub. It reports false when the hub is stopped.
func (that *Hub) Subscribe(client *Client) bool {
	select {
	case that.register <- client:
		return true
	case <-that.done:
		return false
	}
}

func (that *Hub) Unsubscribe(client *Client) {
	select {
	case that.unregister <- client:
	case <-that.done:
	}
}

func (that *Hub) registerClient(client *Client) {
	clients, ok := that.games[client.gameID]
	if !ok {
		clients = make(map[*Client]struct{})
		that.games[client.gameID] = clients
	}
	clients[client] = struct{}{}

	that.logger.Debug("client subscribed", "game_id", client.gameID, "subscribers", len(clients))
}

func (that *Hub) unregisterClient(client *Client) {
	clients, ok := that.games[client.gameID]
	if !ok {
		return
	}

	if _, ok = clients[client]; !ok {
		return
	}

	delete(clients, client)
	close(client.send)

	if len(clients) == 0 {
		delete(that.games, client.gameID)
	}

	that.logger.Debug("client unsubscribed", "game_id", client.gameID, "subscribers", len(clients))
}

func (that *Hub) broadcastMessage(message broadcastMessage) {
	for client := range that.games[message.gameID] {
		that.enqueue(client, message.data)
	}
}

func (that *Hub) sendDirect(message directMessage) {
	if _, ok := that.games[message.client.gameID][message.client]; !ok {
		return
	}

	that.enqueue(message.client, message.data)
}

// enqueue - drops a client whose buffer is full instead of blocking the hub.
func (that *Hub) enqueue(client *Client, data []byte) {
	select {
	case client.send <- data:
	default:
		that.logger.Warn("slow client dropped", "game_id", client.gameID)
		that.unregisterClient(client)
	}
}

func (that *Hub) subscribers(gameID string) int {
	return len(that.games[gameID])
}
