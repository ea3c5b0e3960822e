package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/reversi-backend/internal/entity"
	"github.com/rocketscienceinc/reversi-backend/internal/pkg"
	"github.com/rocketscienceinc/reversi-backend/internal/repository"
	"github.com/rocketscienceinc/reversi-backend/internal/reversi"
)

const createAttempts = 3

type gameRepo interface {
	Create(ctx context.Context, game *entity.Game) error
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
}

type statePublisher interface {
	Publish(gameID string, state *entity.State)
}

// GameManager is the session store: it serializes every mutation of a game id and persists the result.
type GameManager struct {
	logger    *slog.Logger
	gameRepo  gameRepo
	publisher statePublisher
	locker    *keyedLocker
	newID     func() string
}

// NewGameManager - publisher may be nil when nobody listens for updates.
func NewGameManager(logger *slog.Logger, gameRepo gameRepo, publisher statePublisher) *GameManager {
	return &GameManager{
		logger:    logger.With("component", "game_manager"),
		gameRepo:  gameRepo,
		publisher: publisher,
		locker:    newKeyedLocker(),
		newID:     pkg.GenerateGameID,
	}
}

// CreateGame - registers a new game in the starting position under a fresh id.
func (that *GameManager) CreateGame(ctx context.Context) (*entity.State, error) {
	log := that.logger.With("method", "CreateGame")

	var err error
	for range createAttempts {
		game := entity.NewGame(that.newID())

		err = that.gameRepo.Create(ctx, game)
		if err == nil {
			log.Info("game created", "game_id", game.ID)

			return reversi.Snapshot(game), nil
		}

		if !errors.Is(err, repository.ErrGameExists) {
			break
		}

		log.Warn("game id collision", "game_id", game.ID)
	}

	return nil, fmt.Errorf("failed to create game: %w", err)
}

func (that *GameManager) GetState(ctx context.Context, gameID string) (*entity.State, error) {
	unlock := that.locker.RLock(gameID)
	defer unlock()

	game, err := that.getGameByID(ctx, gameID)
	if err != nil {
		return nil, err
	}

	return reversi.Snapshot(game), nil
}

// MakeMove - applies a move of color at (row, col) to the game.
func (that *GameManager) MakeMove(ctx context.Context, gameID string, color entity.Color, row, col int) (*entity.State, error) {
	log := that.logger.With("method", "MakeMove", "game_id", gameID)

	state, err := that.mutate(ctx, gameID, func(game *entity.Game) error {
		return reversi.MakeTurn(game, color, row, col)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to make move: %w", err)
	}

	log.Debug("move applied", "color", color, "row", row, "col", col, "next", state.CurrentPlayer)
	if state.GameOver {
		log.Info("game finished", "winner", state.Winner, "score_a", state.Score.A, "score_b", state.Score.B)
	}

	return state, nil
}

// EndGame - terminates the game on behalf of by.
func (that *GameManager) EndGame(ctx context.Context, gameID string, by entity.Color) (*entity.State, error) {
	log := that.logger.With("method", "EndGame", "game_id", gameID)

	state, err := that.mutate(ctx, gameID, func(game *entity.Game) error {
		return reversi.Terminate(game, by)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to end game: %w", err)
	}

	log.Info("game terminated", "ended_by", by)

	return state, nil
}

// mutate - runs apply on the stored game under the exclusive lock of gameID and saves the result.
// Nothing is saved when apply fails.
func (that *GameManager) mutate(ctx context.Context, gameID string, apply func(game *entity.Game) error) (*entity.State, error) {
	unlock := that.locker.Lock(gameID)
	defer unlock()

	game, err := that.getGameByID(ctx, gameID)
	if err != nil {
		return nil, err
	}

	if err = apply(game); err != nil {
		return nil, err
	}

	if err = that.updateGame(ctx, game); err != nil {
		return nil, err
	}

	state := reversi.Snapshot(game)
	if that.publisher != nil {
		that.publisher.Publish(gameID, state)
	}

	return state, nil
}

func (that *GameManager) getGameByID(ctx context.Context, id string) (*entity.Game, error) {
	existingGame, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return existingGame, nil
}

func (that *GameManager) updateGame(ctx context.Context, game *entity.Game) error {
	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	return nil
}
