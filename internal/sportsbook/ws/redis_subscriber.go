package ws

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/radieske/league-sportsbook/internal/sportsbook/pubsub"
)

// StartRedisSubscriber escuta o canal de broadcast e repassa cada update ao Hub.
// Roda até ctx ser cancelado.
func StartRedisSubscriber(ctx context.Context, r *redis.Client, channel string, hub *Hub) {
	if channel == "" {
		channel = pubsub.ChannelBroadcast
	}
	sub := r.Subscribe(ctx, channel)
	ch := sub.Channel()
	go func() {
		defer sub.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				hub.Dispatch([]byte(msg.Payload))
			}
		}
	}()
}

// Dispatch decodifica uma mensagem do canal e faz o broadcast
func (h *Hub) Dispatch(raw []byte) {
	var upd pubsub.Update
	if err := json.Unmarshal(raw, &upd); err != nil {
		h.log.Warn("ws subscriber unmarshal", zap.Error(err))
		return
	}
	h.Broadcast(upd)
}
