package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/reversi-backend/internal/entity"
)

const (
	channelPrefix  = "game-events:"
	publishTimeout = 2 * time.Second
)

type localPublisher interface {
	Publish(gameID string, state *entity.State)
}

// Relay fans state updates out through redis pub/sub, so subscribers connected to any
// instance sharing the redis keyspace see every update.
type Relay struct {
	logger *slog.Logger
	client *redis.Client
	local  localPublisher
}

func NewRelay(logger *slog.Logger, client *redis.Client, local localPublisher) *Relay {
	return &Relay{
		logger: logger.With("component", "redis_relay"),
		client: client,
		local:  local,
	}
}

func channel(gameID string) string {
	return channelPrefix + gameID
}

// Publish - sends state to the game channel. When redis is unreachable the update is delivered locally only.
func (that *Relay) Publish(gameID string, state *entity.State) {
	log := that.logger.With("method", "Publish", "game_id", gameID)

	data, err := json.Marshal(state)
	if err != nil {
		log.Error("failed to marshal state", "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	if err = that.client.Publish(ctx, channel(gameID), data).Err(); err != nil {
		log.Error("failed to publish state, delivering locally", "error", err)
		that.local.Publish(gameID, state)
	}
}

// Start - subscribes to every game channel and forwards messages to the local publisher until ctx is done.
// It returns once the subscription is confirmed.
func (that *Relay) Start(ctx context.Context) error {
	pubsub := that.client.PSubscribe(ctx, channelPrefix+"*")

	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return fmt.Errorf("failed to subscribe to game events: %w", err)
	}

	go that.forward(ctx, pubsub)

	return nil
}

func (that *Relay) forward(ctx context.Context, pubsub *redis.PubSub) {
	log := that.logger.With("method", "forward")

	defer func() {
		if err := pubsub.Close(); err != nil {
			log.Error("failed to close subscription", "error", err)
		}
	}()

	messages := pubsub.Channel()

	for {
		select {
		case <-ctx.Done():
			return
		case message, ok := <-messages:
			if !ok {
				return
			}

			gameID := strings.TrimPrefix(message.Channel, channelPrefix)

			var state entity.State
			if err := json.Unmarshal([]byte(message.Payload), &state); err != nil {
				log.Error("failed to unmarshal state", "game_id", gameID, "error", err)
				continue
			}

			that.local.Publish(gameID, &state)
		}
	}
}
