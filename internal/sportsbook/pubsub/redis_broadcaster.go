package pubsub

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"

	"github.com/radieske/league-sportsbook/pkg/contracts/events"
)

const ChannelBroadcast = "tournament_updates_broadcast"

// Tópicos de assinatura no WS: o nome do grupo, TopicTournament ou TopicWagers
const (
	TopicTournament = "tournament"
	TopicWagers     = "wagers"
)

// Update é o envelope publicado no canal e repassado aos clientes WS
type Update struct {
	Topic   string          `json:"topic"`
	Type    string          `json:"type"` // wager_placed | match_settled | phase_advanced | tournament_reset
	Payload json.RawMessage `json:"payload"`
}

type publisher interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// RedisBroadcaster é um store.Notifier que espalha os eventos via Redis pub/sub,
// permitindo várias instâncias com WS atrás do mesmo canal
type RedisBroadcaster struct {
	r       publisher
	channel string
}

func NewRedisBroadcaster(r *redis.Client, channel string) *RedisBroadcaster {
	if channel == "" {
		channel = ChannelBroadcast
	}
	return &RedisBroadcaster{r: r, channel: channel}
}

func (b *RedisBroadcaster) WagerPlaced(ctx context.Context, e events.WagerPlaced) error {
	return b.publish(ctx, TopicWagers, "wager_placed", e)
}

func (b *RedisBroadcaster) MatchSettled(ctx context.Context, e events.MatchSettled) error {
	return b.publish(ctx, e.Group, "match_settled", e)
}

func (b *RedisBroadcaster) PhaseAdvanced(ctx context.Context, e events.PhaseAdvanced) error {
	return b.publish(ctx, TopicTournament, "phase_advanced", e)
}

func (b *RedisBroadcaster) TournamentReset(ctx context.Context, e events.TournamentReset) error {
	return b.publish(ctx, TopicTournament, "tournament_reset", e)
}

func (b *RedisBroadcaster) publish(ctx context.Context, topic, typ string, v any) error {
	upd, err := NewUpdate(topic, typ, v)
	if err != nil {
		return err
	}
	msg, err := json.Marshal(upd)
	if err != nil {
		return err
	}
	return b.r.Publish(ctx, b.channel, msg).Err()
}

func NewUpdate(topic, typ string, v any) (Update, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return Update{}, err
	}
	return Update{Topic: topic, Type: typ, Payload: payload}, nil
}
