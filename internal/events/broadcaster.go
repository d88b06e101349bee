package events

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Broadcaster fans events out to external subscribers. Broadcast is
// fire-and-forget: failures are logged, never propagated.
type Broadcaster interface {
	Broadcast(ctx context.Context, eventName string, payload any)
}

type redisBroadcaster struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisBroadcaster publishes events on Redis pub/sub channels named
// after the event type.
func NewRedisBroadcaster(client *redis.Client, logger *zap.Logger) Broadcaster {
	return &redisBroadcaster{client: client, logger: logger}
}

func (b *redisBroadcaster) Broadcast(ctx context.Context, eventName string, payload any) {
	if b.client == nil {
		return
	}
	data, err := json.Marshal(payload)
	if err != nil {
		b.logger.Warn("broadcast marshal failed", zap.String("event", eventName), zap.Error(err))
		return
	}
	if err := b.client.Publish(ctx, eventName, data).Err(); err != nil {
		b.logger.Warn("broadcast publish failed", zap.String("event", eventName), zap.Error(err))
	}
}

// NopBroadcaster discards all events. Used when Redis is not configured.
func NopBroadcaster() Broadcaster {
	return nopBroadcaster{}
}

type nopBroadcaster struct{}

func (nopBroadcaster) Broadcast(context.Context, string, any) {}
