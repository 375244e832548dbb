package producer

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"

	"github.com/radieske/league-sportsbook/pkg/contracts/events"
)

// messageWriter é o subconjunto de *kafka.Writer usado aqui
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// KafkaPublisher publica os eventos do sportsbook, um tópico por tipo de evento
type KafkaPublisher struct {
	WagerWriter messageWriter
	MatchWriter messageWriter
	PhaseWriter messageWriter
	ResetWriter messageWriter
}

func NewKafkaPublisher(wager, match, phase, reset *kafka.Writer) *KafkaPublisher {
	return &KafkaPublisher{WagerWriter: wager, MatchWriter: match, PhaseWriter: phase, ResetWriter: reset}
}

// chave = participante, mantém a ordem das apostas de cada um na partição
func (p *KafkaPublisher) WagerPlaced(ctx context.Context, e events.WagerPlaced) error {
	return write(ctx, p.WagerWriter, e.Participant, e)
}

// chave = confronto
func (p *KafkaPublisher) MatchSettled(ctx context.Context, e events.MatchSettled) error {
	return write(ctx, p.MatchWriter, e.Home+":"+e.Away+":"+e.Phase, e)
}

func (p *KafkaPublisher) PhaseAdvanced(ctx context.Context, e events.PhaseAdvanced) error {
	return write(ctx, p.PhaseWriter, e.To, e)
}

func (p *KafkaPublisher) TournamentReset(ctx context.Context, e events.TournamentReset) error {
	return write(ctx, p.ResetWriter, "reset", e)
}

func write(ctx context.Context, w messageWriter, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	return w.WriteMessages(ctx, kafka.Message{Key: []byte(key), Value: b})
}
