package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rocketscienceinc/reversi-backend/internal/apperror"
	"github.com/rocketscienceinc/reversi-backend/internal/entity"
)

type uGame interface {
	CreateGame(ctx context.Context) (*entity.State, error)
	GetState(ctx context.Context, gameID string) (*entity.State, error)
	MakeMove(ctx context.Context, gameID string, color entity.Color, row, col int) (*entity.State, error)
	EndGame(ctx context.Context, gameID string, by entity.Color) (*entity.State, error)
}

// MoveRequest is the body of POST /move/{id}. Coordinates are required.
type MoveRequest struct {
	Row   *int   `json:"r"`
	Col   *int   `json:"c"`
	Color string `json:"color"`
}

// EndRequest is the body of POST /end/{id}.
type EndRequest struct {
	By string `json:"by"`
}

type Handlers struct {
	logger *slog.Logger
	uGame  uGame
}

func NewHandlers(logger *slog.Logger, uGame uGame) *Handlers {
	return &Handlers{
		logger: logger.With("component", "rest"),
		uGame:  uGame,
	}
}

func (that *Handlers) Register(router *mux.Router) {
	router.HandleFunc("/create", that.CreateGame).Methods(http.MethodPost)
	router.HandleFunc("/game_state/{id}", that.GameState).Methods(http.MethodGet)
	router.HandleFunc("/move/{id}", that.Move).Methods(http.MethodPost)
	router.HandleFunc("/end/{id}", that.End).Methods(http.MethodPost)
}

func (that *Handlers) CreateGame(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "CreateGame")

	state, err := that.uGame.CreateGame(r.Context())
	if err != nil {
		respondError(log, w, err)
		return
	}

	respondJSON(w, http.StatusCreated, state)
}

func (that *Handlers) GameState(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "GameState")

	state, err := that.uGame.GetState(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondError(log, w, err)
		return
	}

	respondJSON(w, http.StatusOK, state)
}

func (that *Handlers) Move(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "Move")

	var req MoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(log, w, fmt.Errorf("%w: %w", apperror.ErrBadRequest, err))
		return
	}

	if req.Row == nil || req.Col == nil {
		respondError(log, w, fmt.Errorf("%w: r and c are required", apperror.ErrBadRequest))
		return
	}

	state, err := that.uGame.MakeMove(r.Context(), mux.Vars(r)["id"], entity.Color(req.Color), *req.Row, *req.Col)
	if err != nil {
		respondError(log, w, err)
		return
	}

	respondJSON(w, http.StatusOK, state)
}

func (that *Handlers) End(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "End")

	var req EndRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(log, w, fmt.Errorf("%w: %w", apperror.ErrBadRequest, err))
		return
	}

	state, err := that.uGame.EndGame(r.Context(), mux.Vars(r)["id"], entity.Color(req.By))
	if err != nil {
		respondError(log, w, err)
		return
	}

	respondJSON(w, http.StatusOK, state)
}
