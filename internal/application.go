package application

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/gorilla/mux"
	"github.com/rocketscienceinc/reversi-backend/internal/config"
	"github.com/rocketscienceinc/reversi-backend/internal/entity"
	"github.com/rocketscienceinc/reversi-backend/internal/repository"
	"github.com/rocketscienceinc/reversi-backend/internal/repository/storage"
	redistransport "github.com/rocketscienceinc/reversi-backend/internal/transport/redis"
	"github.com/rocketscienceinc/reversi-backend/internal/usecase"
	"github.com/rocketscienceinc/reversi-backend/transport/mcp"
	"github.com/rocketscienceinc/reversi-backend/transport/rest"
	"github.com/rocketscienceinc/reversi-backend/transport/websocket"
)

type statePublisher interface {
	Publish(gameID string, state *entity.State)
}

// RunApp - runs the application until SIGINT or SIGTERM.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	hub := websocket.NewHub(logger)
	go hub.Run(ctx)

	var (
		gameRepo  repository.GameRepository
		publisher statePublisher = hub
	)

	switch conf.Storage {
	case config.StorageRedis:
		redisStorage, err := storage.NewRedisStorage(ctx, conf.Redis.Host, conf.Redis.Port)
		if err != nil {
			return fmt.Errorf("could not connect to redis storage: %w", err)
		}

		defer func() {
			if err = redisStorage.Close(); err != nil {
				log.Error("could not close redis storage", "error", err)
			}
		}()

		relay := redistransport.NewRelay(logger, redisStorage.Connection, hub)
		if err = relay.Start(ctx); err != nil {
			return fmt.Errorf("could not start redis relay: %w", err)
		}

		gameRepo = repository.NewGameRepository(redisStorage.Connection, conf.Redis.GameTTL)
		publisher = relay

		log.Info("using redis game storage", "host", conf.Redis.Host, "port", conf.Redis.Port, "ttl", conf.Redis.GameTTL)
	default:
		gameRepo = repository.NewMemoryGameRepository()

		log.Info("using in-memory game storage")
	}

	gameUseCase := usecase.NewGameManager(logger, gameRepo, publisher)

	router := mux.NewRouter()
	rest.NewPingHandler().Register(router)
	rest.NewHandlers(logger, gameUseCase).Register(router)
	websocket.New(logger, hub, gameUseCase).Register(router)

	if conf.MCP.Enabled {
		mcp.New(logger, gameUseCase).Register(router)
		log.Info("MCP endpoint enabled", "path", "/mcp")
	}

	if err := rest.NewServer(logger, conf.HTTPPort, router).Start(ctx); err != nil {
		return fmt.Errorf("HTTP server error: %w", err)
	}

	log.Info("Application context canceled, shutting down")

	return nil
}
