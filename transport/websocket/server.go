package websocket

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/rocketscienceinc/reversi-backend/internal/apperror"
	"github.com/rocketscienceinc/reversi-backend/internal/entity"
	"github.com/rocketscienceinc/reversi-backend/transport/rest"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(_ *http.Request) bool {
		return true
	},
}

type uGame interface {
	GetState(ctx context.Context, gameID string) (*entity.State, error)
	MakeMove(ctx context.Context, gameID string, color entity.Color, row, col int) (*entity.State, error)
	EndGame(ctx context.Context, gameID string, by entity.Color) (*entity.State, error)
}

type Server struct {
	logger *slog.Logger
	hub    *Hub
	uGame  uGame

	handlers map[string]func(ctx context.Context, client *Client, message *Message) error
}

func New(logger *slog.Logger, hub *Hub, uGame uGame) *Server {
	server := &Server{
		logger: logger.With("component", "ws_server"),
		hub:    hub,
		uGame:  uGame,

		handlers: make(map[string]func(context.Context, *Client, *Message) error),
	}

	server.handlers[ActionMove] = server.handleMove
	server.handlers[ActionEnd] = server.handleEnd
	server.handlers[ActionState] = server.handleState

	return server
}

func (that *Server) Register(router *mux.Router) {
	router.HandleFunc("/ws/{id}", that.ServeWS).Methods(http.MethodGet)
}

// ServeWS - subscribes the connection to a game and sends it the current state.
func (that *Server) ServeWS(w http.ResponseWriter, r *http.Request) {
	gameID := mux.Vars(r)["id"]
	log := that.logger.With("method", "ServeWS", "game_id", gameID)

	if _, err := that.uGame.GetState(r.Context(), gameID); err != nil {
		code := apperror.Code(err)
		if code == apperror.CodeInternal {
			log.Error("failed to get game state", "error", err)
		}
		http.Error(w, code, rest.StatusFor(code))
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("websocket upgrade failed", "error", err)
		return
	}

	client := newClient(that.hub, conn, gameID, that.logger)
	if !that.hub.Subscribe(client) {
		_ = conn.Close()
		return
	}

	ctx := context.WithoutCancel(r.Context())

	go client.writePump()
	go client.readPump(ctx, that.dispatch)

	// subscribed first, so no update between this read and the first publish is lost
	that.sendState(ctx, client)

	log.Info("websocket connection established")
}

func (that *Server) dispatch(ctx context.Context, client *Client, message *Message) {
	handler, ok := that.handlers[message.Action]
	if !ok {
		that.sendError(client, apperror.ErrBadRequest)
		return
	}

	if err := handler(ctx, client, message); err != nil {
		that.sendError(client, err)
	}
}

func (that *Server) sendState(ctx context.Context, client *Client) {
	state, err := that.uGame.GetState(ctx, client.gameID)
	if err != nil {
		that.sendError(client, err)
		return
	}

	that.hub.SendTo(client, Event{Event: EventState, GameID: client.gameID, State: state})
}

func (that *Server) sendError(client *Client, err error) {
	code := apperror.Code(err)
	message := err.Error()

	if code == apperror.CodeInternal {
		that.logger.Error("websocket request failed", "game_id", client.gameID, "error", err)
		message = "internal server error"
	}

	that.hub.SendTo(client, Event{Event: EventError, GameID: client.gameID, Error: code, Message: message})
}
