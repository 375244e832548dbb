package ws

import (
	"context"

	"github.com/radieske/league-sportsbook/internal/sportsbook/pubsub"
	"github.com/radieske/league-sportsbook/pkg/contracts/events"
)

// LocalNotifier entrega os eventos direto ao Hub, sem Redis (instância única)
type LocalNotifier struct {
	Hub *Hub
}

func (n LocalNotifier) WagerPlaced(_ context.Context, e events.WagerPlaced) error {
	return n.send(pubsub.TopicWagers, "wager_placed", e)
}

func (n LocalNotifier) MatchSettled(_ context.Context, e events.MatchSettled) error {
	return n.send(e.Group, "match_settled", e)
}

func (n LocalNotifier) PhaseAdvanced(_ context.Context, e events.PhaseAdvanced) error {
	return n.send(pubsub.TopicTournament, "phase_advanced", e)
}

func (n LocalNotifier) TournamentReset(_ context.Context, e events.TournamentReset) error {
	return n.send(pubsub.TopicTournament, "tournament_reset", e)
}

func (n LocalNotifier) send(topic, typ string, v any) error {
	upd, err := pubsub.NewUpdate(topic, typ, v)
	if err != nil {
		return err
	}
	n.Hub.Broadcast(upd)
	return nil
}
