package notify

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/redis/go-redis/v9"
)

const channelPrefix = "game:"

// RedisBridge publishes events through Redis so that subscribers connected
// to any server instance see every update. Received messages are handed to
// the local Broker by Run.
type RedisBridge struct {
	client *redis.Client
	local  *Broker
	logger *slog.Logger
}

func NewRedisBridge(client *redis.Client, local *Broker, logger *slog.Logger) *RedisBridge {
	return &RedisBridge{client: client, local: local, logger: logger}
}

func channelFor(gameID string) string {
	return channelPrefix + gameID
}

// Publish sends the event to Redis. If Redis is unreachable the event is
// delivered locally so this instance's subscribers still refresh.
func (rb *RedisBridge) Publish(ctx context.Context, gameID string) {
	ev := newEvent(gameID)
	data, _ := json.Marshal(ev)
	if err := rb.client.Publish(ctx, channelFor(gameID), data).Err(); err != nil {
		rb.logger.Error("publishing to redis", "game_id", gameID, "error", err)
		rb.local.deliver(ev)
	}
}

func (rb *RedisBridge) Subscribe(gameID string) (<-chan Event, func()) {
	return rb.local.Subscribe(gameID)
}

// Run forwards every game:* message to the local broker until ctx is done.
func (rb *RedisBridge) Run(ctx context.Context) error {
	ps := rb.client.PSubscribe(ctx, channelPrefix+"*")
	defer ps.Close()

	if _, err := ps.Receive(ctx); err != nil {
		return err
	}
	rb.logger.Info("redis bridge subscribed", "pattern", channelPrefix+"*")

	msgs := ps.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-msgs:
			if !ok {
				return nil
			}
			ev, err := decodeMessage(msg.Channel, msg.Payload)
			if err != nil {
				rb.logger.Warn("dropping malformed notification", "channel", msg.Channel, "error", err)
				continue
			}
			rb.local.deliver(ev)
		}
	}
}

// decodeMessage parses a payload. The channel name wins over the payload's
// game id; an empty payload is treated as a bare update.
func decodeMessage(channel, payload string) (Event, error) {
	gameID := strings.TrimPrefix(channel, channelPrefix)
	if payload == "" {
		return newEvent(gameID), nil
	}
	var ev Event
	if err := json.Unmarshal([]byte(payload), &ev); err != nil {
		return Event{}, err
	}
	ev.GameID = gameID
	if ev.Type == "" {
		ev.Type = EventUpdate
	}
	return ev, nil
}
